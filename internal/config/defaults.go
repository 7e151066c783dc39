package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Watsonx.Endpoint == "" {
		cfg.Watsonx.Endpoint = "https://us-south.ml.cloud.ibm.com"
	}
	if cfg.Watsonx.Model == "" {
		cfg.Watsonx.Model = "ibm-granite/granite-13b-chat-v2"
	}
	if cfg.Watsonx.MaxTokens == 0 {
		cfg.Watsonx.MaxTokens = 2048
	}
	if cfg.Watsonx.Temperature == 0 {
		cfg.Watsonx.Temperature = 0.7
	}
	if cfg.ACP.Host == "" {
		cfg.ACP.Host = "localhost"
	}
	if cfg.ACP.Port == 0 {
		cfg.ACP.Port = 8080
	}
	if cfg.ACP.Timeout == 0 {
		cfg.ACP.Timeout = 30
	}
	if cfg.ACP.MaxFileSize == 0 {
		cfg.ACP.MaxFileSize = 10485760 // 10MB
	}
	if cfg.MCP.Host == "" {
		cfg.MCP.Host = "localhost"
	}
	if cfg.MCP.Port == 0 {
		cfg.MCP.Port = 8081
	}
	if cfg.MCP.Timeout == 0 {
		cfg.MCP.Timeout = 30
	}
	if cfg.PDF.MaxPages == 0 {
		cfg.PDF.MaxPages = 100
	}
	if cfg.PDF.TempDirectory == "" {
		cfg.PDF.TempDirectory = "./temp"
	}
	if cfg.PDF.ChunkSize == 0 {
		cfg.PDF.ChunkSize = 1000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = "logs/yomitori.log"
	}
	if cfg.Security.APIKeyHeader == "" {
		cfg.Security.APIKeyHeader = "X-API-Key"
	}
	if cfg.Security.AllowedOrigins == nil {
		cfg.Security.AllowedOrigins = []string{"*"}
	}
}
