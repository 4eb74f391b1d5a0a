package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"calculator-service/internal/api/response"
	"calculator-service/internal/operations"
)

func mustLookup(t *testing.T, name string) operations.Operation {
	t.Helper()
	op, err := operations.Lookup(name)
	if err != nil {
		t.Fatalf("Unknown operation %q: %v", name, err)
	}
	return op
}

func doCalculation(t *testing.T, op operations.Operation, body string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewCalculateHandler(nil, nil)

	req := httptest.NewRequest("POST", "/"+op.Name, strings.NewReader(body))
	req.Header.Set("Content-Type", contentTypeJSON)
	w := httptest.NewRecorder()

	handler.Handle(op)(w, req)
	return w
}

func TestCalculateHandler_Success(t *testing.T) {
	tests := []struct {
		name       string
		op         string
		body       string
		wantResult string
	}{
		{"add integers", "add", `{"a": 2, "b": 3}`, "5"},
		{"add floats", "add", `{"a": 0.1, "b": 0.2}`, "0.30000000000000004"},
		{"subtract", "subtract", `{"a": 10, "b": 4}`, "6"},
		{"multiply", "multiply", `{"a": 6, "b": 7}`, "42"},
		{"divide is true division", "divide", `{"a": 10, "b": 2}`, "5.0"},
		{"power", "power", `{"a": 2, "b": 10}`, "1024"},
		{"power fractional exponent", "power", `{"a": 4, "b": 0.5}`, "2.0"},
		{"modulo", "modulo", `{"a": 10, "b": 3}`, "1"},
		{"modulo sign follows divisor", "modulo", `{"a": -7, "b": 3}`, "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := mustLookup(t, tt.op)
			w := doCalculation(t, op, tt.body)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
			}
			if contentType := w.Header().Get("Content-Type"); contentType != contentTypeJSON {
				t.Errorf("Expected content type '%s', got '%s'", contentTypeJSON, contentType)
			}

			var resp CalculationResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if got := resp.Result.String(); got != tt.wantResult {
				t.Errorf("Expected result %s, got %s", tt.wantResult, got)
			}
			if resp.Operation != op.DisplayName {
				t.Errorf("Expected operation %q, got %q", op.DisplayName, resp.Operation)
			}
		})
	}
}

func TestCalculateHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		body    string
		wantMsg string
	}{
		{"string operand", "add", `{"a": "2", "b": 3}`, "Both arguments must be numbers"},
		{"null operand", "multiply", `{"a": null, "b": 3}`, "Both arguments must be numbers"},
		{"missing operand", "subtract", `{"a": 1}`, "Both arguments must be numbers"},
		{"boolean operand", "divide", `{"a": true, "b": 2}`, "Both arguments must be numbers"},
		{"division by zero", "divide", `{"a": 5, "b": 0}`, "Division by zero is not allowed"},
		{"modulo by zero", "modulo", `{"a": 5, "b": 0}`, "Modulo by zero is not allowed"},
		{"oversized exponent", "power", `{"a": 2, "b": 1001}`, "Exponent too large, potential overflow"},
		{"negative oversized exponent", "power", `{"a": 2, "b": -1001}`, "Exponent too large, potential overflow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := mustLookup(t, tt.op)
			w := doCalculation(t, op, tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d: %s", w.Code, w.Body.String())
			}

			var resp response.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Message != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, resp.Error.Message)
			}
			if resp.Error.Code != response.ErrorCodeBadRequest {
				t.Errorf("Expected code %s, got %s", response.ErrorCodeBadRequest, resp.Error.Code)
			}
		})
	}
}

func TestCalculateHandler_MalformedJSON(t *testing.T) {
	op := mustLookup(t, "add")
	w := doCalculation(t, op, `{"a": 2,`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var resp response.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Message != "Invalid JSON request" {
		t.Errorf("Expected message 'Invalid JSON request', got %q", resp.Error.Message)
	}
}

func TestCalculateHandler_ValidationBeforeDomainChecks(t *testing.T) {
	// A non-numeric operand wins over a zero divisor.
	op := mustLookup(t, "divide")
	w := doCalculation(t, op, `{"a": "x", "b": 0}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	var resp response.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Message != "Both arguments must be numbers" {
		t.Errorf("Expected type error first, got %q", resp.Error.Message)
	}
}

func TestCalculateHandler_EchoesOperands(t *testing.T) {
	op := mustLookup(t, "add")
	w := doCalculation(t, op, `{"a": 2, "b": 3.5}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp CalculationResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Operands.A.String() != "2" || resp.Operands.B.String() != "3.5" {
		t.Errorf("Expected operands echoed back, got a=%s b=%s",
			resp.Operands.A, resp.Operands.B)
	}
}
