package agent

import (
	"sync"
	"time"

	"github.com/hyperjump/yomitori/internal/models"
)

// Tracker keeps per-request task records in memory, keyed by request id.
// Records are never evicted; they accumulate for the life of the process.
type Tracker struct {
	mu    sync.RWMutex
	tasks map[string]*models.TaskRecord
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{tasks: make(map[string]*models.TaskRecord)}
}

// Start records a new in-flight task for req and returns its record.
func (t *Tracker) Start(req *models.TaskRequest) *models.TaskRecord {
	rec := &models.TaskRecord{
		TaskID:    req.RequestID,
		Request:   req,
		Status:    "processing",
		CreatedAt: time.Now(),
	}
	t.mu.Lock()
	t.tasks[rec.TaskID] = rec
	t.mu.Unlock()
	return rec
}

// Finish marks the task completed or failed. Unknown ids are ignored.
func (t *Tracker) Finish(id string, result map[string]any, errMsg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.tasks[id]
	if !ok {
		return
	}
	now := time.Now()
	rec.CompletedAt = &now
	if errMsg != "" {
		rec.Status = "failed"
		rec.Error = errMsg
		return
	}
	rec.Status = "completed"
	rec.Result = result
}

// Get returns a snapshot of the record for id, if tracked. A copy is
// returned because Finish mutates the live record under the tracker's
// lock; handing out the pointer would let callers read it unlocked.
func (t *Tracker) Get(id string) (*models.TaskRecord, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.tasks[id]
	if !ok {
		return nil, false
	}
	snapshot := *rec
	return &snapshot, true
}

// Len returns the number of tracked records.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.tasks)
}
