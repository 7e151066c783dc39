package config

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 400 * time.Millisecond

// Manager holds the active configuration behind an atomic pointer so that
// a reload never races in-flight readers: callers get an immutable
// snapshot from Current and keep using it for the life of their request.
type Manager struct {
	path   string
	cfg    atomic.Pointer[Config]
	logger *zap.Logger
}

// NewManager loads the config at path and returns a manager for it.
func NewManager(path string, logger *zap.Logger) (*Manager, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	m := &Manager{path: path, logger: logger}
	m.cfg.Store(cfg)
	return m, nil
}

// Current returns the active configuration snapshot. The returned value
// must be treated as read-only.
func (m *Manager) Current() *Config {
	return m.cfg.Load()
}

// Path returns the config file path the manager was created with.
func (m *Manager) Path() string {
	return m.path
}

// Reload re-reads the config file and swaps it in atomically.
// On failure the previous configuration stays active.
func (m *Manager) Reload() error {
	cfg, err := Load(m.path)
	if err != nil {
		return err
	}
	m.cfg.Store(cfg)
	return nil
}

// Watch reloads the configuration whenever the file changes on disk,
// until ctx is cancelled. Events are debounced because editors commonly
// emit several write events per save.
func (m *Manager) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// Watch the directory, not the file: rename-and-replace saves would
	// otherwise drop the watch.
	if err := watcher.Add(filepath.Dir(m.path)); err != nil {
		_ = watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(m.path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					if err := m.Reload(); err != nil {
						m.logger.Warn("config reload failed", zap.String("path", m.path), zap.Error(err))
						return
					}
					m.logger.Info("config reloaded", zap.String("path", m.path))
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				m.logger.Warn("config watch error", zap.Error(err))
			}
		}
	}()
	return nil
}
