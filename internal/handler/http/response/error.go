package response

import (
	"errors"
	"net/http"

	"github.com/attendly/attendance-backend-go/internal/domain/analytics"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/correction"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"github.com/attendly/attendance-backend-go/internal/service/export"
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
	// Session state conflicts: the record is unchanged, the caller must
	// re-fetch and retry with corrected intent.
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Session already closed")
	case errors.Is(err, attendance.ErrNoOpenSession):
		Conflict(w, "No open session to check out of")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Correction workflow errors
	case errors.Is(err, correction.ErrCorrectionAlreadyPending):
		Conflict(w, "A correction request is already pending on this record")
	case errors.Is(err, correction.ErrNoPendingCorrection):
		Conflict(w, "No pending correction request on this record")
	case errors.Is(err, correction.ErrInvalidRequestedTime):
		BadRequest(w, "Requested time would leave check-out before check-in", nil)

	// Authorization errors
	case errors.Is(err, user.ErrUnauthorized):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrApproverAccessRequired):
		Forbidden(w, "Approver role required")

	// Directory and aggregation errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, analytics.ErrAggregationUnavailable):
		InternalServerError(w, "Statistics are temporarily unavailable")
	case errors.Is(err, export.ErrUnknownFormat):
		BadRequest(w, "Unknown export format, expected pdf or excel", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
