package correction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/correction"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type CorrectionServiceImpl struct {
	attendanceRepo attendance.Repository
	policy         attendance.Policy

	now func() time.Time
}

func NewCorrectionService(attendanceRepo attendance.Repository, policy attendance.Policy) *CorrectionServiceImpl {
	return &CorrectionServiceImpl{
		attendanceRepo: attendanceRepo,
		policy:         policy,
		now:            time.Now,
	}
}

func claimsFromContext(ctx context.Context) (employeeID string, role user.Role, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	roleStr, _ := claims["role"].(string)
	return employeeID, user.Role(roleStr), nil
}

// Request implements correction.Service.
func (s *CorrectionServiceImpl) Request(ctx context.Context, req correction.RequestCorrectionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	parsedDate, _ := validator.IsValidDate(req.Date)
	date := time.Date(parsedDate.Year(), parsedDate.Month(), parsedDate.Day(), 0, 0, 0, 0, s.policy.Location)

	rec, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get record: %w", err)
	}
	if rec == nil {
		return attendance.RecordResponse{}, attendance.ErrRecordNotFound
	}

	corrType := attendance.CorrectionType(strings.ToLower(req.Type))
	requestedTime, _ := validator.IsValidDateTime(req.RequestedTime)

	// The proposed time must keep clock-in before clock-out.
	switch corrType {
	case attendance.CorrectionCheckIn:
		if rec.ClockOut != nil && !requestedTime.Before(*rec.ClockOut) {
			return attendance.RecordResponse{}, correction.ErrInvalidRequestedTime
		}
	case attendance.CorrectionCheckOut:
		if rec.ClockIn != nil && !requestedTime.After(*rec.ClockIn) {
			return attendance.RecordResponse{}, correction.ErrInvalidRequestedTime
		}
	}

	attached, err := s.attendanceRepo.AttachCorrection(ctx, rec.ID, attendance.CorrectionRequest{
		Type:          corrType,
		RequestedTime: requestedTime,
		Reason:        req.Reason,
		Status:        attendance.CorrectionPending,
		RequestedAt:   s.now(),
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to attach correction: %w", err)
	}
	if !attached {
		return attendance.RecordResponse{}, correction.ErrCorrectionAlreadyPending
	}

	updated, err := s.attendanceRepo.GetByID(ctx, rec.ID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to reload record: %w", err)
	}
	return attendance.MapRecordToResponse(updated), nil
}

// Resolve implements correction.Service.
func (s *CorrectionServiceImpl) Resolve(ctx context.Context, req correction.ResolveCorrectionRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	approverID, role, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !user.CanResolveCorrections(role) {
		return attendance.RecordResponse{}, user.ErrApproverAccessRequired
	}

	rec, err := s.attendanceRepo.GetByID(ctx, req.AttendanceID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !rec.HasPendingCorrection() {
		return attendance.RecordResponse{}, correction.ErrNoPendingCorrection
	}

	res := attendance.CorrectionResolution{
		RecordID:   rec.ID,
		ApproverID: approverID,
		ResolvedAt: s.now(),
	}

	if strings.ToLower(req.Action) == correction.ActionApprove {
		res.Outcome = attendance.CorrectionApproved

		newClockIn := rec.ClockIn
		newClockOut := rec.ClockOut
		requested := rec.Correction.RequestedTime
		switch rec.Correction.Type {
		case attendance.CorrectionCheckIn:
			newClockIn = &requested
		case attendance.CorrectionCheckOut:
			newClockOut = &requested
		}

		if newClockIn != nil && newClockOut != nil && !newClockOut.After(*newClockIn) {
			return attendance.RecordResponse{}, correction.ErrInvalidRequestedTime
		}

		res.NewClockIn = newClockIn
		res.NewClockOut = newClockOut
		res.NewStatus = attendance.DeriveStatus(newClockIn, newClockOut, rec.Date, s.policy)
		if newClockIn != nil && newClockOut != nil {
			mins := attendance.WorkMinutes(*newClockIn, *newClockOut)
			res.WorkMinutes = &mins
		}
	} else {
		res.Outcome = attendance.CorrectionRejected
	}

	resolved, err := s.attendanceRepo.ResolveCorrection(ctx, res)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to resolve correction: %w", err)
	}
	if !resolved {
		// A concurrent approver resolved it first.
		return attendance.RecordResponse{}, correction.ErrNoPendingCorrection
	}

	updated, err := s.attendanceRepo.GetByID(ctx, rec.ID)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to reload record: %w", err)
	}
	return attendance.MapRecordToResponse(updated), nil
}

// ListPending implements correction.Service.
func (s *CorrectionServiceImpl) ListPending(ctx context.Context) ([]attendance.RecordResponse, error) {
	records, err := s.attendanceRepo.ListPendingCorrections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending corrections: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.MapRecordToResponse(rec))
	}
	return responses, nil
}
