// Package config provides configuration loading and structs for the Yomitori servers.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Watsonx  WatsonxConfig  `yaml:"watsonx"`
	ACP      ACPConfig      `yaml:"acp"`
	MCP      MCPConfig      `yaml:"mcp"`
	PDF      PDFConfig      `yaml:"pdf"`
	Logging  LoggingConfig  `yaml:"logging"`
	Security SecurityConfig `yaml:"security"`
}

// WatsonxConfig holds the remote text-generation API settings.
type WatsonxConfig struct {
	APIKey      string  `yaml:"api_key"`
	ProjectID   string  `yaml:"project_id"`
	Endpoint    string  `yaml:"endpoint"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// ACPConfig holds agent-surface HTTP settings.
type ACPConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Timeout     int    `yaml:"timeout"`       // seconds, also bounds the remote model call
	MaxFileSize int64  `yaml:"max_file_size"` // bytes
}

// MCPConfig holds model-context-surface HTTP settings.
type MCPConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Timeout int    `yaml:"timeout"` // seconds
}

// PDFConfig holds document processing settings.
type PDFConfig struct {
	MaxPages      int    `yaml:"max_pages"`
	TempDirectory string `yaml:"temp_directory"`
	ChunkSize     int    `yaml:"chunk_size"` // characters per chunk
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SecurityConfig is accepted for compatibility with existing deployments.
// EnableAuth is not consulted by request handling.
type SecurityConfig struct {
	EnableAuth     bool     `yaml:"enable_auth"`
	APIKeyHeader   string   `yaml:"api_key_header"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads and parses the config file at path, applies defaults, and
// overlays the fixed set of environment variables.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides overlays the fixed environment variable set onto cfg.
// Unset variables leave the file values untouched.
func applyEnvOverrides(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setPort := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if p, err := strconv.Atoi(v); err == nil {
				*dst = p
			}
		}
	}

	setString("WATSONX_API_KEY", &cfg.Watsonx.APIKey)
	setString("WATSONX_PROJECT_ID", &cfg.Watsonx.ProjectID)
	setString("WATSONX_ENDPOINT", &cfg.Watsonx.Endpoint)
	setString("WATSONX_MODEL", &cfg.Watsonx.Model)
	setString("ACP_HOST", &cfg.ACP.Host)
	setPort("ACP_PORT", &cfg.ACP.Port)
	setString("MCP_HOST", &cfg.MCP.Host)
	setPort("MCP_PORT", &cfg.MCP.Port)
}

// Validate checks that required credentials are present.
func (c *Config) Validate() error {
	if c.Watsonx.APIKey == "" {
		return fmt.Errorf("watsonx.api_key is required")
	}
	if c.Watsonx.ProjectID == "" {
		return fmt.Errorf("watsonx.project_id is required")
	}
	return nil
}
