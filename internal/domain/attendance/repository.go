package attendance

import (
	"context"
	"time"
)

// CorrectionResolution is the full set of fields applied when a pending
// correction is resolved. Timestamp and derived fields are nil/absent on a
// rejection, which only moves the embedded request to its terminal state.
type CorrectionResolution struct {
	RecordID    string
	Outcome     CorrectionStatus
	ApproverID  string
	ResolvedAt  time.Time
	NewClockIn  *time.Time
	NewClockOut *time.Time
	NewStatus   Status
	WorkMinutes *int
}

// Repository is the durable per-(employee, date) record keeper. Every
// mutation is a single conditional write guarded by the record's expected
// prior state; the boolean results report whether the guard matched, so a
// losing racer observes false rather than silently overwriting.
type Repository interface {
	// CreateCheckIn inserts a new record keyed on (employeeID, date).
	// Returns false without modifying anything if a record already exists.
	CreateCheckIn(ctx context.Context, rec Record) (bool, error)

	// GetByID retrieves a record by ID, ErrRecordNotFound when missing.
	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate returns nil when no record exists for that day.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// CloseSession sets clock-out and derived fields, guarded on the session
	// still being open. Returns false if clock-out was already set.
	CloseSession(ctx context.Context, id string, clockOut time.Time, workMinutes int, status Status, autoClosed bool) (bool, error)

	// AttachCorrection embeds a pending request, guarded on no other request
	// being pending. Returns false when one already is.
	AttachCorrection(ctx context.Context, id string, req CorrectionRequest) (bool, error)

	// ResolveCorrection applies a resolution, guarded on the embedded request
	// still being pending. Returns false when none is.
	ResolveCorrection(ctx context.Context, res CorrectionResolution) (bool, error)

	// ListByEmployee returns the employee's records within [from, to], newest first.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// ListByDateRange returns all records within [from, to] with employee
	// identity populated, for admin views and aggregation.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Record, error)

	// ListOpenSessions returns records with a clock-in but no clock-out for
	// any day up to and including through.
	ListOpenSessions(ctx context.Context, through time.Time) ([]Record, error)

	// ListPendingCorrections returns records carrying a pending correction request.
	ListPendingCorrections(ctx context.Context) ([]Record, error)
}
