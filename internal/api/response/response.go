package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/formgate/formgate/internal/domain"
	"github.com/rs/zerolog/log"
)

// Response is the standard API envelope.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// JSON sends a JSON response.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	json.NewEncoder(w).Encode(resp)
}

// Error sends an error response.
func Error(w http.ResponseWriter, status int, message any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := Response{
		Success: false,
		Error:   message,
	}

	json.NewEncoder(w).Encode(resp)
}

// OK sends a 200 OK response with data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 Created response with data.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// NoContent sends a 204 No Content response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest sends a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message any) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response.
func Unauthorized(w http.ResponseWriter, message any) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden response.
func Forbidden(w http.ResponseWriter, message any) {
	Error(w, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found response.
func NotFound(w http.ResponseWriter, message any) {
	Error(w, http.StatusNotFound, message)
}

// FromDomainError maps the error taxonomy onto user-facing responses.
// Validation, structural, not-found and configuration failures are
// expected control flow and surface verbatim; anything else is a
// transport failure that gets logged and hidden behind a generic
// message.
func FromDomainError(w http.ResponseWriter, err error) {
	var tooLong *domain.ValueTooLongError
	var cooldown *domain.CooldownError

	switch {
	case errors.As(err, &tooLong):
		BadRequest(w, tooLong.Error())
	case errors.Is(err, domain.ErrTooManyFields),
		errors.Is(err, domain.ErrIllegalAddBefore),
		errors.Is(err, domain.ErrIncompleteSubmission):
		BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrFormNotFound):
		NotFound(w, "this form no longer exists")
	case errors.Is(err, domain.ErrFieldNotFound):
		NotFound(w, "field could not be found")
	case errors.Is(err, domain.ErrSessionExpired):
		Error(w, http.StatusGone, "prompt session expired or cancelled")
	case errors.Is(err, domain.ErrMisconfigured):
		Error(w, http.StatusConflict, "this form is not correctly configured")
	case errors.As(err, &cooldown):
		// Round up so a sub-second remainder never reads as "retry now".
		retryAfter := int((cooldown.Remaining + time.Second - 1) / time.Second)
		Error(w, http.StatusTooManyRequests, map[string]any{
			"message":             "you are on cooldown for this form",
			"retry_after_seconds": retryAfter,
		})
	default:
		log.Error().Err(err).Msg("request failed")
		Error(w, http.StatusInternalServerError, "something went wrong, please try again later")
	}
}
