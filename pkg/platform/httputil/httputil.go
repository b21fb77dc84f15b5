// Package httputil provides shared helpers for JSON request decoding and
// response writing. Handlers delegate here so error-to-status mapping lives
// in one place.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "regent/pkg/domain-errors"
)

// errorResponse is the wire shape for all error responses.
type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error to an HTTP status and writes the error
// body. Non-domain errors are treated as internal and their message is not
// exposed to the client.
func WriteError(w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) {
		WriteJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   string(dErrors.CodeInternal),
			Message: "internal error",
		})
		return
	}
	WriteJSON(w, statusFor(de.Code), errorResponse{
		Error:   string(de.Code),
		Message: de.Message,
		Fields:  de.Fields,
	})
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeInvalidInput, dErrors.CodeBadRequest:
		return http.StatusBadRequest
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Decode decodes the request body into T, rejecting unknown fields. On
// failure it logs at warn level, writes a bad-request response, and returns
// ok=false so the handler can return early.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (T, bool) {
	var req T
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return req, false
	}
	return req, true
}
