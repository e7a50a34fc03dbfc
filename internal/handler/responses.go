package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hollowpine/frontier/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequest      = "Invalid request body"
	ErrMsgInvalidRequestSum   = "Invalid request. Please check your inputs."
	ErrMsgMissingQueryParam   = "Missing %s query parameter"
	ErrMsgUnknownProfession   = "Unknown profession"
	ErrMsgPlayerNotTracked    = "Player is not online"
	ErrMsgInvalidAmount       = "XP amount must be positive"
	ErrMsgAbilityNotFound     = "Ability not found"
	ErrMsgAbilitiesDisabled   = "Abilities are disabled on this server"
	ErrMsgSaveIncomplete      = "Some progress could not be saved"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUnknownProfession):
		return http.StatusBadRequest, ErrMsgUnknownProfession
	case errors.Is(err, domain.ErrPlayerNotTracked):
		return http.StatusNotFound, ErrMsgPlayerNotTracked
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmount
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSum
	case errors.Is(err, domain.ErrAbilityNotFound):
		return http.StatusBadRequest, ErrMsgAbilityNotFound
	case errors.Is(err, domain.ErrAbilitiesDisabled):
		return http.StatusForbidden, ErrMsgAbilitiesDisabled
	case errors.Is(err, domain.ErrSaveIncomplete):
		return http.StatusInternalServerError, ErrMsgSaveIncomplete
	}

	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs and maps a service error onto the response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		slog.Default().Error(opName+" failed", "error", err)
	}
	respondError(w, status, message)
}
