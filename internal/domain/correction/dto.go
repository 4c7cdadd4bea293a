package correction

import (
	"strings"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

type RequestCorrectionRequest struct {
	Date          string `json:"date"`           // YYYY-MM-DD of the disputed record
	Type          string `json:"type"`           // check_in or check_out
	RequestedTime string `json:"requested_time"` // RFC3339
	Reason        string `json:"reason"`
}

func (r *RequestCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	validTypes := []string{string(attendance.CorrectionCheckIn), string(attendance.CorrectionCheckOut)}
	if !validator.IsInSlice(strings.ToLower(r.Type), validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: check_in, check_out",
		})
	}

	if validator.IsEmpty(r.RequestedTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_time",
			Message: "requested_time is required",
		})
	} else if _, valid := validator.IsValidDateTime(r.RequestedTime); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_time",
			Message: "requested_time must be an RFC3339 timestamp",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResolveCorrectionRequest struct {
	AttendanceID string `json:"attendance_id"`
	Action       string `json:"action"` // approve or reject
}

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

func (r *ResolveCorrectionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AttendanceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "attendance_id",
			Message: "attendance_id is required",
		})
	}

	if !validator.IsInSlice(strings.ToLower(r.Action), []string{ActionApprove, ActionReject}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: approve, reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
