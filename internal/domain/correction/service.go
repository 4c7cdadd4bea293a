package correction

import (
	"context"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

// Service manages the disputed-time request lifecycle on attendance records.
type Service interface {
	// Request files a pending correction on the caller's record for the
	// given date.
	Request(ctx context.Context, req RequestCorrectionRequest) (attendance.RecordResponse, error)

	// Resolve approves or rejects the record's pending request. Approval
	// applies the requested time to the disputed field and recomputes the
	// record's derived fields; rejection leaves the record untouched.
	// Only approver roles may call this.
	Resolve(ctx context.Context, req ResolveCorrectionRequest) (attendance.RecordResponse, error)

	// ListPending returns records carrying an unresolved request, for the
	// approver queue.
	ListPending(ctx context.Context) ([]attendance.RecordResponse, error)
}
