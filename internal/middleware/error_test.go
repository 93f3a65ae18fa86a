package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

// Feature: product-catalog, Property 1: Error bodies have a consistent structure
func TestProperty_ErrorsHaveConsistentStructure(t *testing.T) {
	properties := gopter.NewProperties(nil)

	standardCodes := []int{
		http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusConflict,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
	}

	properties.Property("every error response carries message and an empty field map", prop.ForAll(
		func(message string) bool {
			statusCode := standardCodes[len(message)%len(standardCodes)]

			w := httptest.NewRecorder()
			RespondWithError(w, statusCode, message)

			if w.Code != statusCode {
				return false
			}
			if w.Header().Get("Content-Type") != "application/json" {
				return false
			}

			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				return false
			}
			if response.Message != message {
				return false
			}
			// fieldErrors is always present, empty for non-validation errors
			return response.FieldErrors != nil && len(response.FieldErrors) == 0
		},
		gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Feature: product-catalog, Property 2: Field errors survive the round trip
func TestProperty_FieldErrorsAreIncluded(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("validation responses carry every field message", prop.ForAll(
		func(fieldErrors map[string]string) bool {
			w := httptest.NewRecorder()
			RespondWithFieldErrors(w, http.StatusBadRequest, "Validation failed", fieldErrors)

			if w.Code != http.StatusBadRequest {
				return false
			}

			var response ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				return false
			}
			if response.Message != "Validation failed" {
				return false
			}
			if response.FieldErrors == nil {
				return false
			}
			for field, message := range fieldErrors {
				if response.FieldErrors[field] != message {
					return false
				}
			}
			return len(response.FieldErrors) == len(fieldErrors)
		},
		gen.MapOf(
			gen.AlphaString().SuchThat(func(s string) bool { return len(s) > 0 }),
			gen.AlphaString(),
		),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRespondWithFieldErrorsNilMap(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithFieldErrors(w, http.StatusBadRequest, "Validation failed", nil)

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if response.FieldErrors == nil {
		t.Error("Nil field map should serialize as an empty object, not null")
	}
}

func TestErrorHandlingMiddlewareRecoversPanics(t *testing.T) {
	handler := ErrorHandlingMiddleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("connection reset during query")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/products", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Status = %d, want 500", w.Code)
	}

	var response ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if response.Message != "Internal server error" {
		t.Errorf("Message = %q, want the generic string", response.Message)
	}
}

// Feature: product-catalog, Property 3: JSON responses are parseable
func TestProperty_JSONResponsesAreValid(t *testing.T) {
	properties := gopter.NewProperties(nil)

	standardCodes := []int{
		http.StatusOK,
		http.StatusCreated,
		http.StatusNoContent,
		http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusInternalServerError,
	}

	properties.Property("JSON payloads round-trip through the writer", prop.ForAll(
		func(useCode int, data map[string]string) bool {
			if useCode < 0 {
				useCode = -useCode
			}
			statusCode := standardCodes[useCode%len(standardCodes)]

			w := httptest.NewRecorder()
			RespondWithJSON(w, statusCode, data)

			if w.Code != statusCode {
				return false
			}
			if w.Header().Get("Content-Type") != "application/json" {
				return false
			}

			var result map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
				return false
			}
			for k, v := range data {
				if result[k] != v {
					return false
				}
			}
			return true
		},
		gen.Int(),
		gen.MapOf(gen.AlphaString(), gen.AlphaString()),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
