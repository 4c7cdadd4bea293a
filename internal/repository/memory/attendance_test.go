package memory

import (
	"context"
	"testing"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedRecord(id, employeeID string) attendance.Record {
	in := time.Date(2025, 3, 12, 8, 30, 0, 0, time.UTC)
	out := time.Date(2025, 3, 12, 17, 0, 0, 0, time.UTC)
	minutes := 510
	return attendance.Record{
		ID:          id,
		EmployeeID:  employeeID,
		Date:        time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		ClockIn:     &in,
		ClockOut:    &out,
		WorkMinutes: &minutes,
		Status:      attendance.StatusPresent,
	}
}

func pendingCorrection() attendance.CorrectionRequest {
	return attendance.CorrectionRequest{
		Type:          attendance.CorrectionCheckOut,
		RequestedTime: time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC),
		Reason:        "forgot to check out",
		Status:        attendance.CorrectionPending,
		RequestedAt:   time.Date(2025, 3, 12, 19, 0, 0, 0, time.UTC),
	}
}

// The correction writes distinguish a record that does not exist from one
// that is merely in the wrong state, the same contract the SQL repository
// honors.
func TestAttachCorrectionMissingRecord(t *testing.T) {
	repo := NewAttendanceRepository()

	attached, err := repo.AttachCorrection(context.Background(), "no-such-id", pendingCorrection())
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
	assert.False(t, attached)
}

func TestAttachCorrectionPendingGuard(t *testing.T) {
	repo := NewAttendanceRepository()
	ctx := context.Background()

	created, err := repo.CreateCheckIn(ctx, closedRecord("att-1", "emp-1"))
	require.NoError(t, err)
	require.True(t, created)

	attached, err := repo.AttachCorrection(ctx, "att-1", pendingCorrection())
	require.NoError(t, err)
	require.True(t, attached)

	// A second request while one is pending loses the guard, without error.
	attached, err = repo.AttachCorrection(ctx, "att-1", pendingCorrection())
	require.NoError(t, err)
	assert.False(t, attached)
}

func TestResolveCorrectionMissingRecord(t *testing.T) {
	repo := NewAttendanceRepository()

	resolved, err := repo.ResolveCorrection(context.Background(), attendance.CorrectionResolution{
		RecordID:   "no-such-id",
		Outcome:    attendance.CorrectionRejected,
		ApproverID: "mgr-1",
		ResolvedAt: time.Date(2025, 3, 13, 9, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
	assert.False(t, resolved)
}
