package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"namecheck/app"
	"namecheck/domain/run"
	apperrors "namecheck/internal/errors"
	"namecheck/internal/report"
	"namecheck/ports"
)

// Server exposes the check and pipeline services over HTTP.
type Server struct {
	router   *chi.Mux
	checks   *app.CheckService
	pipeline *app.PipelineService
	runs     ports.RunRepository
}

// NewServer builds the HTTP surface. runs may be nil when no database
// is configured; run endpoints then return 503.
func NewServer(checks *app.CheckService, pipeline *app.PipelineService, runs ports.RunRepository) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		checks:   checks,
		pipeline: pipeline,
		runs:     runs,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/api/check", s.handleCheck)
	s.router.Post("/api/pipeline", s.handlePipeline)
	s.router.Get("/api/runs", s.handleListRuns)
	s.router.Get("/api/runs/{id}", s.handleGetRun)
	s.router.Get("/api/runs/{id}/report", s.handleRunReport)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type checkRequest struct {
	Name      string   `json:"name"`
	TLDs      []string `json:"tlds,omitempty"`
	Platforms []string `json:"platforms,omitempty"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("request body must be JSON"))
		return
	}

	result, err := s.checks.CheckName(r.Context(), req.Name, req.TLDs, req.Platforms)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type pipelineRequest struct {
	Description   string `json:"description"`
	MaxCandidates int    `json:"max_candidates,omitempty"`
	ExtendedTLDs  bool   `json:"extended_tlds,omitempty"`
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	var req pipelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("request body must be JSON"))
		return
	}

	result, err := s.pipeline.Run(r.Context(), req.Description, req.MaxCandidates, req.ExtendedTLDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, apperrors.NotConfigured("run history"))
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, apperrors.InvalidInput("limit must be a positive integer"))
			return
		}
		limit = n
	}

	summaries, err := s.runs.ListRuns(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	stored, ok := s.loadRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// handleRunReport renders a stored run. format=md (default), html or xlsx.
func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	stored, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "md", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(report.Markdown(*stored)))
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(report.HTML(*stored))
	case "xlsx":
		buf, err := report.Excel(*stored)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="candidates.xlsx"`)
		w.Write(buf.Bytes())
	default:
		writeError(w, apperrors.InvalidInput("format must be md, html or xlsx"))
	}
}

func (s *Server) loadRun(w http.ResponseWriter, r *http.Request) (*run.Run, bool) {
	if s.runs == nil {
		writeError(w, apperrors.NotConfigured("run history"))
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, apperrors.InvalidInput("run id must be a UUID"))
		return nil, false
	}

	stored, err := s.runs.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return stored, true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, statusFor(appErr.Code), map[string]string{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}

func statusFor(code string) int {
	switch code {
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeNotConfigured:
		return http.StatusServiceUnavailable
	case apperrors.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
