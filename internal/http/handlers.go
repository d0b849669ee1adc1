package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"mealgacha/internal/middleware/trace"
)

// writeJSON serializes v with the given status. Errors after the header
// went out are logged, not surfaced.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleStatus reports process uptime and request counters.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	metrics := s.trace.GetMetrics()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":               "ok",
		"request_id":           trace.GetRequestID(r.Context()),
		"uptime":               time.Since(s.startedAt).String(),
		"total_requests":       metrics.TotalRequests,
		"avg_response_time_us": metrics.AverageResponseTime,
	})
}

// handleReady verifies the store and catalog are usable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	if s.records == nil {
		checks["record_store"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else if _, err := s.records.WeekStats(r.Context()); err != nil {
		checks["record_store"] = "failed: " + err.Error()
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["record_store"] = "ok"
	}

	if s.engine == nil {
		checks["draw_engine"] = "not_configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["draw_engine"] = "ok"
	}

	writeJSON(w, httpStatus, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}
