package correction

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/correction"
	"github.com/attendly/attendance-backend-go/internal/domain/user"
	"github.com/attendly/attendance-backend-go/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(t *testing.T) attendance.Policy {
	t.Helper()
	late, err := attendance.ParseClockTime("09:00")
	require.NoError(t, err)
	cutoff, err := attendance.ParseClockTime("19:30")
	require.NoError(t, err)
	return attendance.Policy{LateThreshold: late, AutoCloseCutoff: cutoff, Location: time.UTC}
}

func claimsContext(t *testing.T, employeeID, role string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"employee_id": employeeID,
		"role":        role,
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

// seedClosedRecord stores a checked-in, checked-out record for emp-1 on
// 2025-03-12, clocked 09:30 -> 17:00 (late).
func seedClosedRecord(t *testing.T, repo *memory.AttendanceRepository) attendance.Record {
	t.Helper()
	policy := testPolicy(t)

	in := time.Date(2025, 3, 12, 9, 30, 0, 0, time.UTC)
	day := policy.Day(in)
	rec := attendance.Record{
		ID:         "att-1",
		EmployeeID: "emp-1",
		Date:       day,
		ClockIn:    &in,
		Status:     attendance.DeriveStatus(&in, nil, day, policy),
	}
	created, err := repo.CreateCheckIn(context.Background(), rec)
	require.NoError(t, err)
	require.True(t, created)

	out := time.Date(2025, 3, 12, 17, 0, 0, 0, time.UTC)
	closed, err := repo.CloseSession(context.Background(), rec.ID, out,
		attendance.WorkMinutes(in, out),
		attendance.DeriveStatus(&in, &out, day, policy), false)
	require.NoError(t, err)
	require.True(t, closed)

	got, err := repo.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
	return got
}

func newTestService(t *testing.T) (*CorrectionServiceImpl, *memory.AttendanceRepository) {
	t.Helper()
	repo := memory.NewAttendanceRepository()
	svc := NewCorrectionService(repo, testPolicy(t))
	svc.now = func() time.Time { return time.Date(2025, 3, 13, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestRequestCorrection(t *testing.T) {
	svc, repo := newTestService(t)
	seedClosedRecord(t, repo)
	ctx := claimsContext(t, "emp-1", "employee")

	resp, err := svc.Request(ctx, correction.RequestCorrectionRequest{
		Date:          "2025-03-12",
		Type:          "check_in",
		RequestedTime: "2025-03-12T08:45:00Z",
		Reason:        "badge reader was down at the door",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Correction)
	assert.Equal(t, attendance.CorrectionPending, resp.Correction.Status)
	// The record itself is untouched until approval.
	assert.Equal(t, attendance.StatusLate, resp.Status)
}

func TestRequestCorrectionNoRecord(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := claimsContext(t, "emp-1", "employee")

	_, err := svc.Request(ctx, correction.RequestCorrectionRequest{
		Date:          "2025-03-12",
		Type:          "check_in",
		RequestedTime: "2025-03-12T08:45:00Z",
		Reason:        "badge reader was down",
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestRequestCorrectionWhileOnePending(t *testing.T) {
	svc, repo := newTestService(t)
	seedClosedRecord(t, repo)
	ctx := claimsContext(t, "emp-1", "employee")

	req := correction.RequestCorrectionRequest{
		Date:          "2025-03-12",
		Type:          "check_in",
		RequestedTime: "2025-03-12T08:45:00Z",
		Reason:        "badge reader was down",
	}
	_, err := svc.Request(ctx, req)
	require.NoError(t, err)

	_, err = svc.Request(ctx, req)
	assert.ErrorIs(t, err, correction.ErrCorrectionAlreadyPending)
}

func TestRequestCorrectionInvalidOrdering(t *testing.T) {
	svc, repo := newTestService(t)
	seedClosedRecord(t, repo)
	ctx := claimsContext(t, "emp-1", "employee")

	// Proposed check-in after the existing check-out.
	_, err := svc.Request(ctx, correction.RequestCorrectionRequest{
		Date:          "2025-03-12",
		Type:          "check_in",
		RequestedTime: "2025-03-12T18:00:00Z",
		Reason:        "wrong badge scan",
	})
	assert.ErrorIs(t, err, correction.ErrInvalidRequestedTime)
}

func TestApproveCheckInCorrection(t *testing.T) {
	svc, repo := newTestService(t)
	seedClosedRecord(t, repo)

	_, err := svc.Request(claimsContext(t, "emp-1", "employee"), correction.RequestCorrectionRequest{
		Date:          "2025-03-12",
		Type:          "check_in",
		RequestedTime: "2025-03-12T08:45:00Z",
		Reason:        "badge reader was down",
	})
	require.NoError(t, err)

	resp, err := svc.Resolve(claimsContext(t, "mgr-1", "manager"), correction.ResolveCorrectionRequest{
		AttendanceID: "att-1",
		Action:       "approve",
	})
	require.NoError(t, err)

	// 08:45 is before the threshold, so the late mark is lifted and the
	// worked duration is recomputed from the corrected clock-in.
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	require.NotNil(t, resp.HoursWorked)
	assert.InDelta(t, 8.25, *resp.HoursWorked, 0.001)
	require.NotNil(t, resp.Correction)
	assert.Equal(t, attendance.CorrectionApproved, resp.Correction.Status)
	require.NotNil(t, resp.Correction.ApproverID)
	assert.Equal(t, "mgr-1", *resp.Correction.ApproverID)
	assert.NotNil(t, resp.Correction.ResolvedAt)
}

func TestRejectCorrectionLeavesRecordUntouched(t *testing.T) {
	svc, repo := newTestService(t)
	before := seedClosedRecord(t, repo)

	_, err := svc.Request(claimsContext(t, "emp-1", "employee"), correction.RequestCorrectionRequest{
		Date:          "2025-03-12",
		Type:          "check_in",
		RequestedTime: "2025-03-12T08:45:00Z",
		Reason:        "badge reader was down",
	})
	require.NoError(t, err)

	resp, err := svc.Resolve(claimsContext(t, "mgr-1", "manager"), correction.ResolveCorrectionRequest{
		AttendanceID: "att-1",
		Action:       "reject",
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLate, resp.Status)
	require.NotNil(t, resp.InTime)
	assert.Equal(t, before.ClockIn.Format(time.RFC3339), *resp.InTime)
	require.NotNil(t, resp.Correction)
	assert.Equal(t, attendance.CorrectionRejected, resp.Correction.Status)
}

func TestResolveRequiresApproverRole(t *testing.T) {
	svc, repo := newTestService(t)
	seedClosedRecord(t, repo)

	_, err := svc.Request(claimsContext(t, "emp-1", "employee"), correction.RequestCorrectionRequest{
		Date:          "2025-03-12",
		Type:          "check_out",
		RequestedTime: "2025-03-12T18:30:00Z",
		Reason:        "forgot to badge out",
	})
	require.NoError(t, err)

	_, err = svc.Resolve(claimsContext(t, "emp-2", "employee"), correction.ResolveCorrectionRequest{
		AttendanceID: "att-1",
		Action:       "approve",
	})
	assert.ErrorIs(t, err, user.ErrApproverAccessRequired)
}

func TestResolveWithoutPendingRequest(t *testing.T) {
	svc, repo := newTestService(t)
	seedClosedRecord(t, repo)

	_, err := svc.Resolve(claimsContext(t, "mgr-1", "manager"), correction.ResolveCorrectionRequest{
		AttendanceID: "att-1",
		Action:       "approve",
	})
	assert.ErrorIs(t, err, correction.ErrNoPendingCorrection)
}

func TestResolveTwice(t *testing.T) {
	svc, repo := newTestService(t)
	seedClosedRecord(t, repo)

	_, err := svc.Request(claimsContext(t, "emp-1", "employee"), correction.RequestCorrectionRequest{
		Date:          "2025-03-12",
		Type:          "check_out",
		RequestedTime: "2025-03-12T18:30:00Z",
		Reason:        "forgot to badge out",
	})
	require.NoError(t, err)

	mgr := claimsContext(t, "mgr-1", "manager")
	_, err = svc.Resolve(mgr, correction.ResolveCorrectionRequest{AttendanceID: "att-1", Action: "approve"})
	require.NoError(t, err)

	_, err = svc.Resolve(mgr, correction.ResolveCorrectionRequest{AttendanceID: "att-1", Action: "reject"})
	assert.ErrorIs(t, err, correction.ErrNoPendingCorrection)
}

func TestListPending(t *testing.T) {
	svc, repo := newTestService(t)
	seedClosedRecord(t, repo)

	pending, err := svc.ListPending(claimsContext(t, "mgr-1", "manager"))
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = svc.Request(claimsContext(t, "emp-1", "employee"), correction.RequestCorrectionRequest{
		Date:          "2025-03-12",
		Type:          "check_out",
		RequestedTime: "2025-03-12T18:30:00Z",
		Reason:        "forgot to badge out",
	})
	require.NoError(t, err)

	pending, err = svc.ListPending(claimsContext(t, "mgr-1", "manager"))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "att-1", pending[0].ID)
}
