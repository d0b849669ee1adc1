package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"mealgacha/internal/core"
	applog "mealgacha/internal/log"
)

type drawRequest struct {
	Mode string `json:"mode"`
}

type drawResponse struct {
	Ticket string          `json:"ticket"`
	Result core.DrawResult `json:"result"`
}

// handleDraw runs one gashapon draw and parks the result in the hand-off
// cache so the UI can retrieve it after its page transition.
func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	var req drawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	mode, err := core.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "mode must be one of: disciplined, indulgent")
		return
	}

	result, err := s.engine.Draw(mode)
	if err != nil {
		// An empty candidate set is a configuration error, not user error.
		slog.ErrorContext(r.Context(), "Draw failed", "mode", mode, "error", err)
		writeError(w, http.StatusInternalServerError, "draw failed")
		return
	}

	ticket, err := s.tickets.Put(r.Context(), result)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to cache draw result", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to cache draw result")
		return
	}

	fields := applog.NewFields().WithOperation(applog.OpDraw).WithTicket(ticket)
	fields[applog.FieldMode] = string(mode)
	fields[applog.FieldDish] = result.Item.Name
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Draw completed", fields.ToSlice()...)

	writeJSON(w, http.StatusOK, drawResponse{Ticket: ticket, Result: result})
}

func (s *Server) handleGetDraw(w http.ResponseWriter, r *http.Request) {
	ticket := r.PathValue("ticket")

	result, ok, err := s.tickets.Take(r.Context(), ticket)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to read draw cache", "ticket", ticket, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read draw cache")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no draw result for ticket")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleDeleteDraw(w http.ResponseWriter, r *http.Request) {
	ticket := r.PathValue("ticket")

	if err := s.tickets.Delete(r.Context(), ticket); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete draw cache entry", "ticket", ticket, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete draw cache entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
