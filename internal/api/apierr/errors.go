package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/danielrhuynh/cs-446-ece-452/internal/model"
)

// ErrorResponse is the wire shape for every error: a flat error string,
// matching what the mobile client expects
type ErrorResponse struct {
	Error string `json:"error"`
}

// httpError combines an HTTP status code with a client-facing message
type httpError struct {
	status  int
	message string
}

// Error implements the error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.message})
}

// toHTTPError maps service errors onto statuses. Rule failures and
// validation problems are 4xx with stable messages; anything unmapped
// is an infrastructure failure and reads as a retryable 500.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidDeviceID),
		errors.Is(err, model.ErrInvalidDisplayName),
		errors.Is(err, model.ErrInvalidCode):
		return &httpError{http.StatusBadRequest, err.Error()}
	case errors.Is(err, model.ErrJoinFailed):
		return &httpError{http.StatusConflict, model.ErrJoinFailed.Error()}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, model.ErrSessionNotFound.Error()}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, model.ErrPlayerNotFound.Error()}
	default:
		return &httpError{http.StatusInternalServerError, "internal server error"}
	}
}

// NewInvalidRequestError creates a 400 error with the given message
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}
