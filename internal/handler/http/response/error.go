package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User / claims errors
	case errors.Is(err, user.ErrInvalidClaims):
		Unauthorized(w, "Invalid token claims")
	case errors.Is(err, user.ErrCompanyIDRequired):
		Forbidden(w, "Company membership required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")
	case errors.Is(err, attendance.ErrNotRegularization):
		BadRequest(w, "Attendance event is not a regularization", nil)
	case errors.Is(err, attendance.ErrAlreadyReviewed):
		Conflict(w, "Regularization already reviewed")
	case errors.Is(err, attendance.ErrInvalidAction):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrRegularizationViaRecord):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrInvalidRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrForbiddenWorkerScope):
		Forbidden(w, err.Error())

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
