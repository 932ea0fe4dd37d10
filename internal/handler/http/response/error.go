package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payrate"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/domain/unavailability"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/authctx"
	"github.com/cmlabs-hris/backoffice-backend-go/internal/pkg/validator"
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
	// Auth
	case errors.Is(err, authctx.ErrMissingUserID):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, profile.ErrInactiveAccount):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, profile.ErrPermissionDenied):
		Forbidden(w, "You do not have permission to perform this action")
	case errors.Is(err, profile.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")
	case errors.Is(err, profile.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Profile not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrPunchNotFound):
		NotFound(w, "Time clock record not found")
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in")
	case errors.Is(err, attendance.ErrNotClockedIn):
		Conflict(w, "Not clocked in")
	case errors.Is(err, attendance.ErrPunchExistsForShift):
		Conflict(w, "Shift already has a time clock record")
	case errors.Is(err, attendance.ErrPunchVersionConflict):
		Conflict(w, "Time clock record was changed by someone else, reload and try again")

	// Roster
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, unavailability.ErrBlockNotFound):
		NotFound(w, "Unavailability not found")
	case errors.Is(err, unavailability.ErrRuleNotFound):
		NotFound(w, "Weekly unavailability rule not found")
	case errors.Is(err, unavailability.ErrSkipNotFound):
		NotFound(w, "Rule is not skipped for this week")
	case errors.Is(err, unavailability.ErrSkipAlreadyExists):
		Conflict(w, "Rule is already skipped for this week")

	// Pay
	case errors.Is(err, payrate.ErrPayRateNotFound):
		NotFound(w, "Pay rate not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
