package attendance

import (
	"time"
)

// Status is derived from the record's timestamps and the attendance policy.
// It is never set independently; see DeriveStatus.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusWorking    Status = "working"
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusAbsent     Status = "absent"
)

type CorrectionType string

const (
	CorrectionCheckIn  CorrectionType = "check_in"
	CorrectionCheckOut CorrectionType = "check_out"
)

type CorrectionStatus string

const (
	CorrectionPending  CorrectionStatus = "pending"
	CorrectionApproved CorrectionStatus = "approved"
	CorrectionRejected CorrectionStatus = "rejected"
)

// Record is the ground-truth attendance row. At most one exists per
// (EmployeeID, Date); Date is a calendar day on the organizational clock.
type Record struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	ClockIn     *time.Time
	ClockOut    *time.Time
	WorkMinutes *int
	Status      Status
	AutoClosed  bool
	Correction  *CorrectionRequest
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
}

// CorrectionRequest is embedded in its parent Record. At most one request
// may be pending per record at any time.
type CorrectionRequest struct {
	Type          CorrectionType
	RequestedTime time.Time
	Reason        string
	Status        CorrectionStatus
	ApproverID    *string
	RequestedAt   time.Time
	ResolvedAt    *time.Time
}

// HasPendingCorrection reports whether the record carries an unresolved
// correction request.
func (r Record) HasPendingCorrection() bool {
	return r.Correction != nil && r.Correction.Status == CorrectionPending
}
