package attendance

import (
	"context"
)

// Service defines the check-in/check-out session lifecycle and record reads.
type Service interface {
	// CheckIn opens today's session for the authenticated employee.
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut closes the authenticated employee's open session.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// GetMyHistory retrieves the authenticated employee's own records.
	GetMyHistory(ctx context.Context, filter HistoryFilter) ([]RecordResponse, error)

	// ListRecords retrieves org-wide records for the admin view, with
	// employee identity populated.
	ListRecords(ctx context.Context, filter ListFilter) ([]RecordResponse, error)
}
