package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/octofit/dashboard/internal/loader"
	"github.com/octofit/dashboard/internal/view"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// respondHTML buffers the rendered page so template failures still produce a clean 500
func respondHTML(w http.ResponseWriter, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		slog.Error("failed to render page", "error", err)
		respondError(w, http.StatusInternalServerError, "render_failed", "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("failed to write page", "error", err)
	}
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks, ready := s.checks.Report(ctx)
	if !ready {
		slog.Warn("readiness check failed", "checks", checks)
		respondJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "not_ready",
			"checks": checks,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ready",
		"checks": checks,
	})
}

// Diagnostics handlers

func (s *Server) handleListWarnings(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	if s.warnings == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"warnings": []interface{}{},
			"total":    0,
		})
		return
	}

	warnings, err := s.warnings.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list payload warnings", "error", err)
		respondError(w, http.StatusInternalServerError, "diagnostics_unavailable", "failed to list warnings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"warnings": warnings,
		"total":    len(warnings),
	})
}

// View handlers

// loadView mounts a fresh view for the request and waits for its terminal state.
// It writes an error response and returns false if the request went away first.
func (s *Server) loadView(w http.ResponseWriter, r *http.Request) (*view.View, bool) {
	v := s.newView(PresenterFromContext(r.Context()))
	defer v.Unmount()

	if _, err := v.Load(r.Context()); err != nil {
		if errors.Is(err, loader.ErrDiscarded) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			slog.Warn("view load aborted", "resource", v.Meta().Kind, "error", err)
			respondError(w, http.StatusServiceUnavailable, "load_aborted", "load did not finish")
			return nil, false
		}
		slog.Error("failed to load view", "resource", v.Meta().Kind, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load view")
		return nil, false
	}

	return v, true
}

func (s *Server) handleViewSnapshot(w http.ResponseWriter, r *http.Request) {
	v, ok := s.loadView(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, v.Snapshot())
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	v, ok := s.loadView(w, r)
	if !ok {
		return
	}
	respondHTML(w, func(buf *bytes.Buffer) error {
		return v.Render(buf)
	})
}

// Page handlers

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	respondHTML(w, func(buf *bytes.Buffer) error {
		return view.RenderShell(buf, view.Shell{
			Title: "OctoFit Tracker",
			Nav:   s.nav(),
		})
	})
}

// handleResourcePage serves the shell in its loading state; the live socket does the load
func (s *Server) handleResourcePage(w http.ResponseWriter, r *http.Request) {
	p := PresenterFromContext(r.Context())
	page := s.newView(p).Page()

	respondHTML(w, func(buf *bytes.Buffer) error {
		return view.RenderShell(buf, view.Shell{
			Title: p.Describe().DisplayName + " | OctoFit Tracker",
			Nav:   s.nav(),
			Page:  &page,
			Live:  true,
		})
	})
}
