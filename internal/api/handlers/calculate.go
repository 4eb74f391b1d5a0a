package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"calculator-service/internal/api/response"
	"calculator-service/internal/operations"
	"calculator-service/internal/storage"
)

// CalculationRequest carries the two operands of a calculator call.
type CalculationRequest struct {
	A operations.Number `json:"a"`
	B operations.Number `json:"b"`
}

// Operands echoes the request operands back in the response.
type Operands struct {
	A operations.Number `json:"a"`
	B operations.Number `json:"b"`
}

// CalculationResponse is the success payload of every operation endpoint.
type CalculationResponse struct {
	Result    operations.Number `json:"result"`
	Operation string            `json:"operation"`
	Operands  Operands          `json:"operands"`
}

// CalculateHandler serves the six arithmetic endpoints. The history store
// is optional; recording is best-effort and never fails a calculation.
type CalculateHandler struct {
	logger  *log.Logger
	history *storage.HistoryStore
}

// NewCalculateHandler creates a calculation handler. A nil logger falls
// back to the default logger; a nil history disables recording.
func NewCalculateHandler(logger *log.Logger, history *storage.HistoryStore) *CalculateHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &CalculateHandler{
		logger:  logger,
		history: history,
	}
}

// Handle returns the endpoint handler for one operation.
func (h *CalculateHandler) Handle(op operations.Operation) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CalculationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteBadRequest(w, "Invalid JSON request", err.Error())
			return
		}

		h.logger.Printf("%s requested: a=%s b=%s", op.DisplayName, req.A, req.B)

		result, err := op.Apply(req.A, req.B)
		if err != nil {
			var opErr *operations.Error
			if errors.As(err, &opErr) {
				h.logger.Printf("%s failed: %v", op.DisplayName, opErr)
				response.WriteBadRequest(w, opErr.Error())
				return
			}
			h.logger.Printf("unexpected error in %s: %v", op.DisplayName, err)
			response.WriteInternalError(w, "Internal server error")
			return
		}

		h.record(r.Context(), op, &req, result)

		response.WriteJSON(w, CalculationResponse{
			Result:    result,
			Operation: op.DisplayName,
			Operands:  Operands{A: req.A, B: req.B},
		})
	}
}

// record persists a successful calculation when history is enabled.
func (h *CalculateHandler) record(ctx context.Context, op operations.Operation, req *CalculationRequest, result operations.Number) {
	if h.history == nil {
		return
	}

	calc := storage.Calculation{
		Operation: op.Name,
		OperandA:  req.A.String(),
		OperandB:  req.B.String(),
		Result:    result.String(),
	}
	if err := h.history.Record(ctx, &calc); err != nil {
		h.logger.Printf("failed to record %s in history: %v", op.Name, err)
	}
}
