package analytics

import (
	"context"
)

// Service computes presence statistics on demand. Results are always a pure
// function of the record store plus the working-day calendar; nothing is
// persisted.
type Service interface {
	// DashboardStats returns today's headcount snapshot.
	DashboardStats(ctx context.Context) (DashboardStatsResponse, error)

	// Report aggregates per-employee stats and rankings over a week or month.
	Report(ctx context.Context, req ReportRequest) (ReportResponse, error)
}
