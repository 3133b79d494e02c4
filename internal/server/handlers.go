package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/docfox/textract/internal/analyze"
	"github.com/docfox/textract/internal/models"
	"go.uber.org/zap"
)

// extractRequest is the upload body: file bytes arrive base64-encoded in
// JSON, the way the original web client sends them.
type extractRequest struct {
	FileData string `json:"fileData"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType,omitempty"`
}

// analyzeRequest extends the upload with optional task descriptions for
// the analysis backend.
type analyzeRequest struct {
	extractRequest
	Tasks []string `json:"tasks,omitempty"`
}

// extractResponse is the extraction result plus the echoed filename.
type extractResponse struct {
	*models.ExtractionResult
	Filename string                 `json:"filename"`
	Analysis *models.AnalysisReport `json:"analysis,omitempty"`
}

func (s *Server) decodeUpload(w http.ResponseWriter, r *http.Request, req *extractRequest) ([]byte, bool) {
	if req.FileData == "" || req.Filename == "" {
		s.respondError(w, http.StatusBadRequest, "fileData and filename are required")
		return nil, false
	}
	content, err := base64.StdEncoding.DecodeString(req.FileData)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid base64 file data")
		return nil, false
	}
	maxBytes := s.config.Limits.MaxFileSizeMB * 1024 * 1024
	if maxBytes > 0 && len(content) > maxBytes {
		s.respondError(w, http.StatusRequestEntityTooLarge,
			"file too large")
		return nil, false
	}
	return content, true
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	content, ok := s.decodeUpload(w, r, &req)
	if !ok {
		return
	}
	s.logger.Debug("extract request",
		zap.String("filename", req.Filename), zap.Int("bytes", len(content)))

	result := s.extractor.Extract(content, req.Filename, req.MimeType)
	s.respondJSON(w, http.StatusOK, &extractResponse{
		ExtractionResult: result,
		Filename:         req.Filename,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	content, ok := s.decodeUpload(w, r, &req.extractRequest)
	if !ok {
		return
	}

	result := s.extractor.Extract(content, req.Filename, req.MimeType)
	resp := &extractResponse{
		ExtractionResult: result,
		Filename:         req.Filename,
	}
	if !result.Success {
		s.respondJSON(w, http.StatusOK, resp)
		return
	}

	tasks := req.Tasks
	if len(tasks) == 0 {
		tasks = analyze.DefaultTasks(req.Filename)
	}
	report, err := s.analyzer.Analyze(r.Context(), &models.AnalysisRequest{
		Filename: req.Filename,
		Text:     result.Text,
		Tasks:    tasks,
	})
	if err != nil {
		// Keep the extraction; analysis is best-effort on top of it.
		s.logger.Warn("analysis failed, returning extraction only",
			zap.String("filename", req.Filename), zap.Error(err))
		report = &models.AnalysisReport{Enabled: false, Error: err.Error()}
	}
	resp.Analysis = report
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reachable, version := s.analyzer.Reachable(r.Context())
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":             "ok",
		"version":            s.version,
		"analysisConfigured": s.analyzer.Configured(),
		"analysisReachable":  reachable,
		"analysisVersion":    version,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]any{"success": false, "error": message})
}
