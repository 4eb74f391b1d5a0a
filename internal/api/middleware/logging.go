package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDKey is the context key for request ID
type contextKey string

const RequestIDKey contextKey = "request_id"

// LoggingMiddleware provides request/response logging capabilities
type LoggingMiddleware struct {
	logger *log.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware() *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: log.Default(),
	}
}

// Handler returns the logging middleware handler
func (lm *LoggingMiddleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Generate request ID if not present
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			// Add request ID to context and response headers
			ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
			r = r.WithContext(ctx)
			w.Header().Set("X-Request-ID", requestID)

			// Create response writer wrapper to capture status code
			wrapper := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			lm.logRequest(r, requestID)

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			lm.logResponse(r, wrapper.statusCode, duration, requestID)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code
func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// isQuietPath reports paths whose traffic is too noisy to log.
func isQuietPath(path string) bool {
	switch path {
	case "/health", "/api/v1/health", "/liveness", "/readiness", "/ping":
		return true
	}
	return false
}

// logRequest logs incoming HTTP requests
func (lm *LoggingMiddleware) logRequest(r *http.Request, requestID string) {
	if isQuietPath(r.URL.Path) {
		return
	}

	lm.logger.Printf("[%s] --> %s %s %s | Remote: %s",
		requestID,
		r.Method,
		r.URL.Path,
		r.Proto,
		r.RemoteAddr,
	)
}

// logResponse logs HTTP response information
func (lm *LoggingMiddleware) logResponse(r *http.Request, statusCode int, duration time.Duration, requestID string) {
	if isQuietPath(r.URL.Path) {
		return
	}

	lm.logger.Printf("[%s] <-- %d %s | %v | %s %s",
		requestID,
		statusCode,
		http.StatusText(statusCode),
		duration,
		r.Method,
		r.URL.Path,
	)

	// Log slow requests
	if duration > 1*time.Second {
		lm.logger.Printf("[%s] SLOW REQUEST: %v for %s %s",
			requestID, duration, r.Method, r.URL.Path)
	}

	if statusCode >= 500 {
		lm.logger.Printf("[%s] ERROR: %d %s for %s %s",
			requestID, statusCode, http.StatusText(statusCode), r.Method, r.URL.Path)
	}
}

// GetRequestID extracts request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
