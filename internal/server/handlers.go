package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dtnitsch/site-growth-analyzer/internal/common"
	"github.com/dtnitsch/site-growth-analyzer/models"
	"github.com/yousuf64/shift"
)

const noURLMessage = "No URL provided"

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	w.WriteHeader(http.StatusOK)
	return nil
}

// handleAnalyze runs one analysis. Only a missing URL is rejected; every
// other failure comes back as a degraded report with status 200.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		s.log.Debug("Unreadable analyze request body",
			slog.String("request_id", RequestID(r.Context())),
			slog.Any("error", err))
		req = models.AnalyzeRequest{}
	}

	cleaned := common.SanitizeURL(req.URL)
	if cleaned == "" {
		return writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: noURLMessage})
	}
	target := common.EnsureScheme(cleaned)

	s.log.Info("Analysis requested",
		slog.String("request_id", RequestID(r.Context())),
		slog.String("url", target),
		slog.String("goal", req.Goal))

	rep := s.analyzer.AnalyzeForGoal(r.Context(), target, req.Goal)
	if rep.Failed() {
		s.log.Warn("Analysis degraded",
			slog.String("request_id", RequestID(r.Context())),
			slog.String("url", target),
			slog.String("error", rep.Error))
	}
	return writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte("OK"))
	return err
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request, route shift.Route) error {
	s.metrics.Handler().ServeHTTP(w, r)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
