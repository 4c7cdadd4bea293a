package attendance

import (
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	Date *string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil && *r.Date != "" {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Date *string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil && *r.Date != "" {
		if _, valid := validator.IsValidDate(*r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID           string              `json:"id"`
	EmployeeID   string              `json:"employee_id"`
	EmployeeName *string             `json:"employee_name,omitempty"`
	Date         string              `json:"date"`
	InTime       *string             `json:"in_time,omitempty"`
	OutTime      *string             `json:"out_time,omitempty"`
	HoursWorked  *float64            `json:"hours_worked,omitempty"`
	Status       Status              `json:"status"`
	AutoClosed   bool                `json:"auto_closed"`
	Correction   *CorrectionResponse `json:"correction,omitempty"`
}

type CorrectionResponse struct {
	Type          CorrectionType   `json:"type"`
	RequestedTime string           `json:"requested_time"`
	Reason        string           `json:"reason"`
	Status        CorrectionStatus `json:"status"`
	ApproverID    *string          `json:"approver_id,omitempty"`
	RequestedAt   string           `json:"requested_at"`
	ResolvedAt    *string          `json:"resolved_at,omitempty"`
}

// HistoryFilter narrows an employee's own record listing.
type HistoryFilter struct {
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (f *HistoryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListFilter selects the org-wide admin view window.
type ListFilter struct {
	ViewType string  `json:"view_type"`      // daily, week, month
	Date     *string `json:"date,omitempty"` // YYYY-MM-DD reference date, defaults to today
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.ViewType == "" {
		f.ViewType = "daily"
	}
	validViews := []string{"daily", "week", "month"}
	if !validator.IsInSlice(strings.ToLower(f.ViewType), validViews) {
		errs = append(errs, validator.ValidationError{
			Field:   "view_type",
			Message: "view_type must be one of: daily, week, month",
		})
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MapRecordToResponse converts a Record entity to its wire shape.
func MapRecordToResponse(rec Record) RecordResponse {
	var hours *float64
	if rec.WorkMinutes != nil {
		h := float64(*rec.WorkMinutes) / 60.0
		hours = &h
	}

	return RecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         rec.Date.Format("2006-01-02"),
		InTime:       timePtrToString(rec.ClockIn),
		OutTime:      timePtrToString(rec.ClockOut),
		HoursWorked:  hours,
		Status:       rec.Status,
		AutoClosed:   rec.AutoClosed,
		Correction:   mapCorrectionToResponse(rec.Correction),
	}
}

func mapCorrectionToResponse(c *CorrectionRequest) *CorrectionResponse {
	if c == nil {
		return nil
	}
	return &CorrectionResponse{
		Type:          c.Type,
		RequestedTime: c.RequestedTime.Format(time.RFC3339),
		Reason:        c.Reason,
		Status:        c.Status,
		ApproverID:    c.ApproverID,
		RequestedAt:   c.RequestedAt.Format(time.RFC3339),
		ResolvedAt:    timePtrToString(c.ResolvedAt),
	}
}

// timePtrToString safely converts a *time.Time to an RFC3339 string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}
