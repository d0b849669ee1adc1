package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"mealgacha/internal/core"
	applog "mealgacha/internal/log"
	"mealgacha/internal/services"
	"mealgacha/internal/storage"
)

// recordPayload is the request shape for create and update. Amount
// accepts a JSON number or a decimal string, one fractional digit kept.
type recordPayload struct {
	Dish     string     `json:"dish"`
	Amount   core.Money `json:"amount"`
	Calories int        `json:"calories"`
	Mode     string     `json:"mode"`
	Category string     `json:"category"`
}

func (p recordPayload) toInput() services.RecordInput {
	return services.RecordInput{
		Dish:     p.Dish,
		Amount:   p.Amount,
		Calories: p.Calories,
		Mode:     core.Mode(p.Mode),
		Category: p.Category,
	}
}

func parseRecordID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	rec, err := s.records.Save(r.Context(), payload.toInput())
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to save record", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Record created",
		applog.NewFields().
			WithOperation(applog.OpSave).
			WithRecord(rec.ID, rec.Dish, rec.Amount.Tenths, string(rec.Mode)).
			ToSlice()...)

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := parseRecordID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	rec, err := s.records.GetByID(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load record", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load record")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := parseRecordID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	var payload recordPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	// Update on a missing id succeeds as a no-op.
	if err := s.records.Update(r.Context(), id, payload.toInput()); err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to update record", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update record")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := parseRecordID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	// Delete on a missing id succeeds as a no-op.
	if err := s.records.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete record", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete record")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWeekStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.records.WeekStats(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to compute week stats",
			applog.NewFields().WithOperation(applog.OpStats).WithError(err).ToSlice()...)
		writeError(w, http.StatusInternalServerError, "failed to compute week stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleWeekRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.WeekRecords(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list week records", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list week records")
		return
	}
	if records == nil {
		records = []core.Record{}
	}

	writeJSON(w, http.StatusOK, records)
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidMode) ||
		errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrInvalidCalories) ||
		errors.Is(err, core.ErrEmptyDish) ||
		errors.Is(err, core.ErrEmptyCategory)
}
