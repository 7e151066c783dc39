// Package main is the Yomitori CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/yomitori/internal/agent"
	"github.com/hyperjump/yomitori/internal/cli"
	"github.com/hyperjump/yomitori/internal/config"
	"github.com/hyperjump/yomitori/internal/extract"
	"github.com/hyperjump/yomitori/internal/models"
	"github.com/hyperjump/yomitori/internal/pipeline"
	"github.com/hyperjump/yomitori/internal/server"
	"github.com/hyperjump/yomitori/internal/task"
	"github.com/hyperjump/yomitori/internal/watsonx"
	"github.com/hyperjump/yomitori/pkg/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/yomitori/config.yaml"

// resolveConfigPath maps the default path to ./config.yaml when the latter
// exists, so running from the project directory picks up the project's
// config. An explicit -config value is always used as given.
func resolveConfigPath(path string) string {
	if path != defaultConfigPath {
		return path
	}
	if cwd, err := os.Getwd(); err == nil {
		fallback := filepath.Join(cwd, "config.yaml")
		if _, err := os.Stat(fallback); err == nil {
			return fallback
		}
	}
	return path
}

func main() {
	// Credentials commonly live in a .env file during development.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "process":
		runProcess()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("yomitori version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging (extraction steps, prompt previews, etc.)")
	_ = fs.Parse(os.Args[2:])

	resolvedPath := resolveConfigPath(*configPath)
	manager, err := config.NewManager(resolvedPath, zap.NewNop())
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := manager.Current()
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewConfiguredLogger(cfg.Logging.Level, cfg.Logging.File, debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedPath),
		zap.Bool("debug", debugMode),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Missing watsonx credentials; set WATSONX_API_KEY and WATSONX_PROJECT_ID", zap.Error(err))
	}

	components, err := initializeComponents(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if err := manager.Watch(watchCtx); err != nil {
		logger.Warn("config watch disabled", zap.Error(err))
	}

	acpSrv := server.NewAgentServer(components.Agent, manager, logger)
	mcpSrv := server.NewMCPServer(components.Client, manager, logger)

	go func() {
		if err := acpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ACP server failed", zap.Error(err))
		}
	}()
	go func() {
		if err := mcpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("MCP server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = acpSrv.Stop(ctx)
	_ = mcpSrv.Stop(ctx)
}

// buildTaskParameters assembles the parameters map for a process request.
// Only flags relevant to the chosen task are included.
func buildTaskParameters(taskName, question string, maxLength int, extractionType string) map[string]any {
	params := map[string]any{}
	switch taskName {
	case string(models.TaskSummarize):
		if maxLength > 0 {
			params["max_length"] = maxLength
		}
	case string(models.TaskQuestionAnswer):
		if question != "" {
			params["question"] = question
		}
	case string(models.TaskExtract):
		if extractionType != "" {
			params["extraction_type"] = extractionType
		}
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

func runProcess() {
	fs := flag.NewFlagSet("process", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "ACP server URL (empty = process locally without a server)")
	taskName := fs.String("task", "summarize", "task: summarize, question_answer, extract, or analyze")
	question := fs.String("question", "", "question to answer (question_answer task)")
	maxLength := fs.Int("max-length", 0, "maximum summary length in words (summarize task)")
	extractionType := fs.String("extraction-type", "", "what to extract (extract task, default key_points)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: yomitori process [flags] <file.pdf>")
		os.Exit(1)
	}
	path, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid path: %v\n", err)
		os.Exit(1)
	}

	format := cli.OutputText
	switch *outputFormat {
	case "json":
		format = cli.OutputJSON
	case "text":
	default:
		fmt.Printf("Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}

	req := &models.TaskRequest{
		RequestID:    uuid.New().String(),
		Task:         models.TaskKind(*taskName),
		DocumentPath: path,
		Parameters:   buildTaskParameters(*taskName, *question, *maxLength, *extractionType),
		Source:       "cli",
		Timestamp:    time.Now(),
	}

	var resp *models.TaskResponse
	if *serverURL != "" {
		resp, err = processViaHTTP(*serverURL, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		cfg, err := config.Load(resolveConfigPath(*configPath))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Missing watsonx credentials: %v\n", err)
			os.Exit(1)
		}
		components, err := initializeComponents(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		resp = components.Agent.HandleProcess(context.Background(), req)
	}

	if err := cli.WriteTaskResponse(os.Stdout, resp, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
	if !resp.Success {
		os.Exit(1)
	}
}

func processViaHTTP(serverURL string, req *models.TaskRequest) (*models.TaskResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/acp/process", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out models.TaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	serverURL := fs.String("server", "http://localhost:8080", "ACP server URL")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	format := cli.OutputText
	if *outputFormat == "json" {
		format = cli.OutputJSON
	}

	resp, err := http.Get(*serverURL + "/acp/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		fmt.Fprintf(os.Stderr, "Server returned %d: %s\n", resp.StatusCode, string(b))
		os.Exit(1)
	}
	var status models.AgentStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Fprintf(os.Stderr, "Parse failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteAgentStatus(os.Stdout, &status, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Client *watsonx.Client
	Agent  *agent.Agent
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) (*Components, error) {
	client, err := watsonx.NewClient(&cfg.Watsonx, time.Duration(cfg.ACP.Timeout)*time.Second, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize watsonx client: %w", err)
	}

	extractor := extract.NewExtractor(cfg.PDF.MaxPages, logger)
	chunker := pipeline.NewChunker(cfg.PDF.ChunkSize)
	pipe := pipeline.NewPipeline(extractor, chunker, cfg.ACP.MaxFileSize, logger)
	dispatcher := task.NewDispatcher(client, logger)
	ag := agent.New(pipe, dispatcher, cfg.PDF.TempDirectory, logger)

	return &Components{Client: client, Agent: ag}, nil
}

func printUsage() {
	fmt.Println(`yomitori - PDF document processing agent backed by watsonx.ai

Usage:
  yomitori server [flags]            Start the ACP and MCP HTTP servers
  yomitori process [flags] <file>    Process a PDF document
  yomitori status [flags]            Show agent status
  yomitori version                   Show version
  yomitori help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/yomitori/config.yaml)
  --debug            Enable debug logging (extraction steps, prompt previews, etc.)

Process Flags:
  --config string           Config file path (for local mode)
  --server string           ACP server URL (default: http://localhost:8080). Use empty (--server "") to process locally.
  --task string             Task: summarize, question_answer, extract, or analyze (default: summarize)
  --question string         Question to answer (question_answer task)
  --max-length int          Maximum summary length in words (summarize task)
  --extraction-type string  What to extract (extract task, default key_points)
  --output string           Output format: text or json (default: text)

Status Flags:
  --server string    ACP server URL (default: http://localhost:8080)
  --output string    Output format: text or json (default: text)

Examples:
  yomitori server
  yomitori process report.pdf
  yomitori process --task question_answer --question "Who is the author?" report.pdf
  yomitori process --task extract report.pdf
  yomitori process --server "" --task analyze report.pdf
  yomitori status --output json`)
}
