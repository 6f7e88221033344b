// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
//
// Consistent response shapes also make life easier for API consumers —
// they always know what error responses look like.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a student, a list, an
// acknowledgment…). Error responses always look like:
//
//	{ "status": "error", "error": "email already exists" }
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

// Status string constants — use these instead of raw string literals so
// a typo is caught by the compiler rather than silently sending "eroor".
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// json.NewEncoder(w) streams directly into w, avoiding an
	// intermediate buffer. Encode() appends a newline after the JSON —
	// handy for CLI testing.
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for client-input errors whose message is safe to expose
// (bad id, empty body, conflict, not found).
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// InternalError is the envelope for dependency failures (record store
// unreachable, query execution error). The real cause is logged
// server-side; the client only sees a generic message, never internal
// detail.
func InternalError() Response {
	return Response{
		Status: StatusError,
		Error:  "internal server error",
	}
}

// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// The go-playground/validator package returns one FieldError per
// failing struct field. We convert each to a plain English sentence and
// join them with ", " so the client sees a single descriptive string.
//
// Example output:
//
//	{ "status": "error", "error": "field Name is required, field Age must be at most 150" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is required", e.Field()))
		case "gte":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		case "lte":
			errMessages = append(errMessages,
				fmt.Sprintf("field %s must be at most %s", e.Field(), e.Param()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}
