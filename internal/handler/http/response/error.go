package response

import (
	"errors"
	"net/http"

	"github.com/carebridge/evv-backend-go/internal/domain/auth"
	"github.com/carebridge/evv-backend-go/internal/domain/client"
	"github.com/carebridge/evv-backend-go/internal/domain/shift"
	"github.com/carebridge/evv-backend-go/internal/domain/user"
	"github.com/carebridge/evv-backend-go/internal/domain/visit"
	"github.com/carebridge/evv-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationFailed(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrNoToken):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserAlreadyExists):
		Conflict(w, "User already exists")
	case errors.Is(err, user.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrCaregiverAccessOnly):
		Forbidden(w, "Caregiver access only")

	// Client domain errors
	case errors.Is(err, client.ErrClientNotFound):
		NotFound(w, "Client not found")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrCaregiverNotFound):
		NotFound(w, "Caregiver not found")
	case errors.Is(err, shift.ErrInvalidStatus):
		BadRequest(w, "Invalid shift status")

	// Visit lifecycle errors
	case errors.Is(err, visit.ErrAlreadyStarted):
		BadRequest(w, "Visit already started")
	case errors.Is(err, visit.ErrNotStarted):
		BadRequest(w, "Visit has not been started")
	case errors.Is(err, visit.ErrAlreadyEnded):
		BadRequest(w, "Visit already ended")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
