package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse is the uniform error body for both adapters: a message
// plus a field-name to message map. The map stays empty unless the
// failure is a per-field validation error.
type ErrorResponse struct {
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors"`
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithError sends an error response with an empty field map
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{
		Message:     message,
		FieldErrors: map[string]string{},
	})
}

// RespondWithFieldErrors sends a validation error response carrying
// per-field messages
func RespondWithFieldErrors(w http.ResponseWriter, statusCode int, message string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = map[string]string{}
	}
	RespondWithJSON(w, statusCode, ErrorResponse{
		Message:     message,
		FieldErrors: fieldErrors,
	})
}

// ErrorHandlingMiddleware catches panics and converts them to 500
// responses with a generic message, never the panic detail
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
