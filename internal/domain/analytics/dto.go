package analytics

import (
	"strings"

	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ANALYTICS DTOs
// ========================================

type ReportRequest struct {
	PeriodType string  `json:"type"`           // week or month
	Date       *string `json:"date,omitempty"` // YYYY-MM-DD reference, defaults to today
}

func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	validPeriods := []string{string(PeriodWeek), string(PeriodMonth)}
	if !validator.IsInSlice(strings.ToLower(r.PeriodType), validPeriods) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: week, month",
		})
	}

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

// EmployeePeriodStats is one aggregated row per employee over the period.
type EmployeePeriodStats struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	DaysPresent  int     `json:"days_present"`
	DaysAbsent   int     `json:"days_absent"`
	LateCount    int     `json:"late_count"`
	TotalHours   float64 `json:"total_hours"`
}

// ReportSummary carries the period metadata and the rankings.
type ReportSummary struct {
	PeriodType     PeriodType      `json:"period_type"`
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	WorkingDays    int             `json:"working_days"`
	TotalEmployees int             `json:"total_employees"`
	TotalPresent   int             `json:"total_present"`
	TotalAbsent    int             `json:"total_absent"`
	TotalLate      int             `json:"total_late"`
	MostLate       *RankedEmployee `json:"most_late,omitempty"`
	MostAbsent     *RankedEmployee `json:"most_absent,omitempty"`
	GeneratedAt    string          `json:"generated_at"`
}

// RankedEmployee identifies the single representative for a ranking. Ties on
// the maximum count resolve to the lexicographically smallest employee ID.
type RankedEmployee struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Count        int    `json:"count"`
}

type ReportResponse struct {
	Summary ReportSummary         `json:"summary"`
	Report  []EmployeePeriodStats `json:"report"`
}

// DashboardStatsResponse is the today-only headcount snapshot.
type DashboardStatsResponse struct {
	TotalEmployees int    `json:"total_employees"`
	Present        int    `json:"present"`
	Late           int    `json:"late"`
	Absent         int    `json:"absent"`
	Date           string `json:"date"`
}
