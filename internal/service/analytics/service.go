package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/analytics"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/employee"
	"github.com/attendly/attendance-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type AnalyticsServiceImpl struct {
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	policy         attendance.Policy

	now func() time.Time
}

func NewAnalyticsService(attendanceRepo attendance.Repository, employeeRepo employee.Repository, policy attendance.Policy) *AnalyticsServiceImpl {
	return &AnalyticsServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		policy:         policy,
		now:            time.Now,
	}
}

// DashboardStats implements analytics.Service.
func (s *AnalyticsServiceImpl) DashboardStats(ctx context.Context) (analytics.DashboardStatsResponse, error) {
	today := s.policy.Day(s.now())

	var employees []employee.Employee
	var records []attendance.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.ListActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByDateRange(gctx, today, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.DashboardStatsResponse{}, fmt.Errorf("%w: %v", analytics.ErrAggregationUnavailable, err)
	}

	stats := analytics.DashboardStatsResponse{
		TotalEmployees: len(employees),
		Date:           today.Format("2006-01-02"),
	}
	roster := make(map[string]struct{}, len(employees))
	for _, emp := range employees {
		roster[emp.ID] = struct{}{}
	}
	for _, rec := range records {
		if _, ok := roster[rec.EmployeeID]; !ok {
			// Record of a deactivated employee; excluded from the roster view.
			continue
		}
		switch rec.Status {
		case attendance.StatusLate:
			stats.Late++
		case attendance.StatusPresent, attendance.StatusWorking:
			stats.Present++
		}
	}
	// Everyone without a record today has not shown up.
	stats.Absent = stats.TotalEmployees - stats.Present - stats.Late
	if stats.Absent < 0 {
		stats.Absent = 0
	}

	return stats, nil
}

// Report implements analytics.Service.
func (s *AnalyticsServiceImpl) Report(ctx context.Context, req analytics.ReportRequest) (analytics.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return analytics.ReportResponse{}, err
	}

	ref := s.policy.Day(s.now())
	if req.Date != nil && *req.Date != "" {
		parsed, _ := validator.IsValidDate(*req.Date)
		ref = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, s.policy.Location)
	}

	period := analytics.PeriodType(req.PeriodType)
	start, end := analytics.ResolveRange(period, ref)
	workingDays := analytics.WorkingDays(start, end)

	var employees []employee.Employee
	var records []attendance.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.ListActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListByDateRange(gctx, start, end)
		return err
	})
	if err := g.Wait(); err != nil {
		return analytics.ReportResponse{}, fmt.Errorf("%w: %v", analytics.ErrAggregationUnavailable, err)
	}

	statsByEmployee := make(map[string]*analytics.EmployeePeriodStats, len(employees))
	for _, emp := range employees {
		statsByEmployee[emp.ID] = &analytics.EmployeePeriodStats{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
		}
	}

	for _, rec := range records {
		stats, ok := statsByEmployee[rec.EmployeeID]
		if !ok {
			// Record of a deactivated employee; excluded from the roster view.
			continue
		}
		if rec.ClockIn != nil && analytics.IsWorkingDay(rec.Date) {
			stats.DaysPresent++
		}
		if rec.Status == attendance.StatusLate {
			stats.LateCount++
		}
		if rec.WorkMinutes != nil {
			stats.TotalHours += float64(*rec.WorkMinutes) / 60.0
		}
	}

	rows := make([]analytics.EmployeePeriodStats, 0, len(statsByEmployee))
	summary := analytics.ReportSummary{
		PeriodType:     period,
		StartDate:      start.Format("2006-01-02"),
		EndDate:        end.Format("2006-01-02"),
		WorkingDays:    workingDays,
		TotalEmployees: len(employees),
		GeneratedAt:    s.now().Format(time.RFC3339),
	}

	for _, emp := range employees {
		stats := statsByEmployee[emp.ID]
		// Every working day without a present mark counts as absent, so
		// present plus absent always reconciles to the period's working days.
		stats.DaysAbsent = workingDays - stats.DaysPresent
		if stats.DaysAbsent < 0 {
			stats.DaysAbsent = 0
		}

		summary.TotalPresent += stats.DaysPresent
		summary.TotalAbsent += stats.DaysAbsent
		summary.TotalLate += stats.LateCount
		rows = append(rows, *stats)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].EmployeeID < rows[j].EmployeeID })

	summary.MostLate = rankBy(rows, func(r analytics.EmployeePeriodStats) int { return r.LateCount })
	summary.MostAbsent = rankBy(rows, func(r analytics.EmployeePeriodStats) int { return r.DaysAbsent })

	return analytics.ReportResponse{Summary: summary, Report: rows}, nil
}

// rankBy picks the row with the highest count; ties resolve to the smallest
// employee ID, which rows are already sorted by. Nil when every count is zero.
func rankBy(rows []analytics.EmployeePeriodStats, count func(analytics.EmployeePeriodStats) int) *analytics.RankedEmployee {
	var best *analytics.RankedEmployee
	for _, row := range rows {
		c := count(row)
		if c == 0 {
			continue
		}
		if best == nil || c > best.Count {
			best = &analytics.RankedEmployee{
				EmployeeID:   row.EmployeeID,
				EmployeeName: row.EmployeeName,
				Count:        c,
			}
		}
	}
	return best
}
