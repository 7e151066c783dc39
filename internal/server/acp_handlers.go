package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hyperjump/yomitori/internal/models"
	"go.uber.org/zap"
)

const maxUploadMemory = 32 << 20

func (s *AgentServer) handleProcess(w http.ResponseWriter, r *http.Request) {
	var req models.TaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RequestID == "" || req.DocumentPath == "" {
		respondError(w, http.StatusBadRequest, "request_id and document_path are required")
		return
	}
	s.logger.Debug("process request",
		zap.String("request_id", req.RequestID),
		zap.String("task", string(req.Task)))

	// Task and file validation failures come back as success=false
	// responses, not transport errors.
	resp := s.agent.HandleProcess(r.Context(), &req)
	respondJSON(w, http.StatusOK, resp)
}

func (s *AgentServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if !s.agent.IsSupportedUpload(header.Filename) {
		respondError(w, http.StatusBadRequest, "only PDF files are supported")
		return
	}
	// Read the ceiling from the live config so a reload applies to the
	// next upload; oversized files are rejected before staging to disk.
	if maxSize := s.manager.Current().ACP.MaxFileSize; header.Size > maxSize {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("file too large: %d bytes", header.Size))
		return
	}

	taskName := r.FormValue("task")
	if taskName == "" {
		taskName = string(models.TaskSummarize)
	}

	var params map[string]any
	if raw := r.FormValue("parameters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &params); err != nil {
			respondError(w, http.StatusBadRequest, "invalid parameters JSON")
			return
		}
	}

	path, err := s.agent.SaveUpload(header.Filename, file)
	if err != nil {
		s.logger.Error("upload staging failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer s.agent.RemoveUpload(path)

	req := &models.TaskRequest{
		RequestID:    uuid.New().String(),
		Task:         models.TaskKind(taskName),
		DocumentPath: path,
		Parameters:   params,
		Source:       "file_upload",
		Timestamp:    time.Now(),
	}
	s.logger.Debug("upload request",
		zap.String("request_id", req.RequestID),
		zap.String("filename", header.Filename),
		zap.String("task", taskName))

	resp := s.agent.HandleProcess(r.Context(), req)
	respondJSON(w, http.StatusOK, resp)
}

func (s *AgentServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.agent.Status())
}

func (s *AgentServer) handleTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, ok := s.agent.Task(id)
	if !ok {
		respondError(w, http.StatusNotFound, "task not found")
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

func (s *AgentServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "acp-agent"})
}
