package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/analytics"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.Repository
	policy         attendance.Policy

	now func() time.Time
}

func NewAttendanceService(attendanceRepo attendance.Repository, policy attendance.Policy) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		policy:         policy,
		now:            time.Now,
	}
}

func employeeIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return employeeID, nil
}

// CheckIn implements attendance.Service.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	today := s.policy.Day(now)

	// A client-supplied date must match the organizational today; check-ins
	// are never backdated or future-dated.
	if req.Date != nil && *req.Date != "" {
		requested, _ := validator.IsValidDate(*req.Date)
		if !requested.Equal(today) {
			return attendance.RecordResponse{}, validator.ValidationErrors{{
				Field:   "date",
				Message: "date must be today",
			}}
		}
	}

	clockIn := now
	rec := attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       today,
		ClockIn:    &clockIn,
		Status:     attendance.DeriveStatus(&clockIn, nil, today, s.policy),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.attendanceRepo.CreateCheckIn(ctx, rec)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create check-in: %w", err)
	}
	if !created {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	return attendance.MapRecordToResponse(rec), nil
}

// CheckOut implements attendance.Service.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	today := s.policy.Day(now)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get today's record: %w", err)
	}
	if rec == nil || rec.ClockIn == nil {
		return attendance.RecordResponse{}, attendance.ErrNoOpenSession
	}
	if rec.ClockOut != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	clockOut := now
	workMinutes := attendance.WorkMinutes(*rec.ClockIn, clockOut)
	status := attendance.DeriveStatus(rec.ClockIn, &clockOut, today, s.policy)

	closed, err := s.attendanceRepo.CloseSession(ctx, rec.ID, clockOut, workMinutes, status, false)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to close session: %w", err)
	}
	if !closed {
		// A concurrent checkout or the auto-close sweep won the race.
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	updated, err := s.attendanceRepo.GetByID(ctx, rec.ID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to reload record: %w", err)
	}

	return attendance.MapRecordToResponse(updated), nil
}

// GetMyHistory implements attendance.Service.
func (s *AttendanceServiceImpl) GetMyHistory(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employeeID, err := employeeIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	today := s.policy.Day(s.now())

	// Default window is the trailing 30 days.
	from := today.AddDate(0, 0, -30)
	to := today
	if filter.StartDate != nil && *filter.StartDate != "" {
		parsed, _ := validator.IsValidDate(*filter.StartDate)
		from = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, s.policy.Location)
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		parsed, _ := validator.IsValidDate(*filter.EndDate)
		to = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, s.policy.Location)
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.MapRecordToResponse(rec))
	}
	return responses, nil
}

// ListRecords implements attendance.Service.
func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.ListFilter) ([]attendance.RecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	ref := s.policy.Day(s.now())
	if filter.Date != nil && *filter.Date != "" {
		parsed, _ := validator.IsValidDate(*filter.Date)
		ref = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, s.policy.Location)
	}

	var period analytics.PeriodType
	switch filter.ViewType {
	case "week":
		period = analytics.PeriodWeek
	case "month":
		period = analytics.PeriodMonth
	default:
		period = analytics.PeriodDay
	}
	from, to := analytics.ResolveRange(period, ref)

	records, err := s.attendanceRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.MapRecordToResponse(rec))
	}
	return responses, nil
}
