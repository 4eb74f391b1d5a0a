package handlers

import (
	"log"
	"net/http"
	"strconv"

	"calculator-service/internal/api/response"
	"calculator-service/internal/storage"
)

// HistoryHandler serves the calculation history endpoints.
type HistoryHandler struct {
	logger  *log.Logger
	history *storage.HistoryStore
}

// HistoryResponse is the payload of the history listing endpoint.
type HistoryResponse struct {
	Calculations []storage.Calculation `json:"calculations"`
	Count        int                   `json:"count"`
}

// NewHistoryHandler creates a history handler.
func NewHistoryHandler(logger *log.Logger, history *storage.HistoryStore) *HistoryHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &HistoryHandler{
		logger:  logger,
		history: history,
	}
}

// List returns the most recent calculations, newest first. The optional
// limit query parameter caps the page size.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.WriteBadRequest(w, "Invalid limit parameter", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	calculations, err := h.history.List(r.Context(), limit)
	if err != nil {
		h.logger.Printf("failed to list history: %v", err)
		response.WriteInternalError(w, "Failed to list calculation history")
		return
	}

	response.WriteJSON(w, HistoryResponse{
		Calculations: calculations,
		Count:        len(calculations),
	})
}

// Clear removes every stored calculation.
func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.history.Clear(r.Context()); err != nil {
		h.logger.Printf("failed to clear history: %v", err)
		response.WriteInternalError(w, "Failed to clear calculation history")
		return
	}

	response.WriteJSON(w, map[string]string{"status": "cleared"})
}
