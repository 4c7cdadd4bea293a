package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

// AttendanceJobs holds the background sweep that closes sessions left open
// past the organization's cutoff.
type AttendanceJobs struct {
	attendanceRepo attendance.Repository
	policy         attendance.Policy
	sweepInterval  time.Duration

	now func() time.Time
}

func NewAttendanceJobs(attendanceRepo attendance.Repository, policy attendance.Policy, sweepInterval time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		policy:         policy,
		sweepInterval:  sweepInterval,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_open_sessions", j.sweepInterval, j.AutoCloseOpenSessions)
}

// AutoCloseOpenSessions closes every open session whose day's cutoff has
// passed, stamping the cutoff instant as the clock-out. Sessions from earlier
// days (missed sweeps, downtime) are closed at their own day's cutoff, so the
// sweep is idempotent and safe to re-run at any frequency.
func (j *AttendanceJobs) AutoCloseOpenSessions(ctx context.Context) error {
	now := j.now()
	today := j.policy.Day(now)

	openSessions, err := j.attendanceRepo.ListOpenSessions(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}

	closedCount := 0
	for _, session := range openSessions {
		cutoff := j.policy.CutoffInstant(session.Date)
		if now.Before(cutoff) {
			continue
		}
		if session.ClockIn == nil || !session.ClockIn.Before(cutoff) {
			// Checked in at or after the day's cutoff; stamping the cutoff as
			// clock-out would put it before clock-in. Leave the session to the
			// employee.
			continue
		}

		workMinutes := attendance.WorkMinutes(*session.ClockIn, cutoff)
		status := attendance.DeriveStatus(session.ClockIn, &cutoff, session.Date, j.policy)

		closed, err := j.attendanceRepo.CloseSession(ctx, session.ID, cutoff, workMinutes, status, true)
		if err != nil {
			slog.Error("Cron: Failed to auto-close session",
				"attendance_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}
		if !closed {
			// Employee checked out between the list and the close. Fine.
			continue
		}

		slog.Info("Cron: Auto-closed session",
			"attendance_id", session.ID,
			"employee_id", session.EmployeeID,
			"date", session.Date.Format("2006-01-02"),
			"status", status)
		closedCount++
	}

	if closedCount > 0 {
		slog.Info("Cron: Auto-close sweep finished", "count", closedCount)
	}
	return nil
}
