package response

import (
	"errors"
	"net/http"

	"github.com/fichador/fichador-backend/internal/domain/auth"
	"github.com/fichador/fichador-backend/internal/domain/sync"
	"github.com/fichador/fichador-backend/internal/domain/user"
	"github.com/fichador/fichador-backend/internal/domain/workday"
	"github.com/fichador/fichador-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// The lunch guard carries the earliest valid return time in its message.
	var lunchErr *workday.LunchTooShortError
	if errors.As(err, &lunchErr) {
		BadRequest(w, lunchErr.Error(), nil)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameTaken):
		Conflict(w, "Username already taken")

	// Workday domain errors
	case errors.Is(err, workday.ErrInvalidPunchType):
		BadRequest(w, "Unknown punch type", nil)
	case errors.Is(err, workday.ErrPunchOrder):
		Conflict(w, "Punch sequence is out of chronological order")
	case errors.Is(err, workday.ErrDayNotFound):
		NotFound(w, "No record for the requested day")
	case errors.Is(err, workday.ErrReasonRequired):
		BadRequest(w, "An overtime reason is required", nil)
	case errors.Is(err, workday.ErrUnknownReason):
		BadRequest(w, "Overtime reason is not one of the accepted values", nil)
	case errors.Is(err, workday.ErrPendingNotFound):
		NotFound(w, "No pending punch with that id")
	case errors.Is(err, workday.ErrPendingExpired):
		Conflict(w, "Pending punch expired before confirmation")

	// Sync domain errors
	case errors.Is(err, sync.ErrSyncDisabled):
		ServiceUnavailable(w, "Spreadsheet sync is not configured")
	case errors.Is(err, sync.ErrSyncInProgress):
		Conflict(w, "A sync run is already in progress")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
