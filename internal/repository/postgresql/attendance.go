package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type AttendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.date, a.clock_in, a.clock_out, a.work_minutes,
	a.status, a.auto_closed,
	a.correction_type, a.correction_requested_time, a.correction_reason,
	a.correction_status, a.correction_approver_id, a.correction_requested_at,
	a.correction_resolved_at,
	a.created_at, a.updated_at, e.full_name`

const attendanceFrom = `
	FROM attendances a
	JOIN employees e ON e.id = a.employee_id`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var corrType, corrReason, corrStatus, corrApproverID *string
	var corrRequestedTime, corrRequestedAt, corrResolvedAt *time.Time

	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.WorkMinutes,
		&rec.Status, &rec.AutoClosed,
		&corrType, &corrRequestedTime, &corrReason,
		&corrStatus, &corrApproverID, &corrRequestedAt,
		&corrResolvedAt,
		&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	if corrStatus != nil {
		rec.Correction = &attendance.CorrectionRequest{
			Type:          attendance.CorrectionType(*corrType),
			RequestedTime: *corrRequestedTime,
			Reason:        *corrReason,
			Status:        attendance.CorrectionStatus(*corrStatus),
			ApproverID:    corrApproverID,
			RequestedAt:   *corrRequestedAt,
			ResolvedAt:    corrResolvedAt,
		}
	}

	return rec, nil
}

func collectRecords(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendances: %w", err)
	}
	return records, nil
}

// recordExists reports whether an attendance row with the given id is present.
func (r *AttendanceRepository) recordExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM attendances WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check attendance exists: %w", err)
	}
	return exists, nil
}

// CreateCheckIn relies on the unique (employee_id, date) constraint: a losing
// concurrent insert matches the conflict clause and reports zero rows.
func (r *AttendanceRepository) CreateCheckIn(ctx context.Context, rec attendance.Record) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO attendances (id, employee_id, date, clock_in, status, auto_closed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, false, NOW(), NOW())
		ON CONFLICT (employee_id, date) DO NOTHING
	`, rec.ID, rec.EmployeeID, rec.Date, rec.ClockIn, rec.Status)
	if err != nil {
		return false, fmt.Errorf("insert attendance: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *AttendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	rec, err := scanRecord(r.db.QueryRow(ctx,
		`SELECT `+attendanceColumns+attendanceFrom+` WHERE a.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	if err != nil {
		return attendance.Record{}, fmt.Errorf("get attendance by id: %w", err)
	}
	return rec, nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	rec, err := scanRecord(r.db.QueryRow(ctx,
		`SELECT `+attendanceColumns+attendanceFrom+` WHERE a.employee_id = $1 AND a.date = $2`,
		employeeID, date))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attendance by employee and date: %w", err)
	}
	return &rec, nil
}

// CloseSession is guarded on the session still being open, so a concurrent
// checkout or a sweep racing the employee affects zero rows for the loser.
func (r *AttendanceRepository) CloseSession(ctx context.Context, id string, clockOut time.Time, workMinutes int, status attendance.Status, autoClosed bool) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE attendances
		SET clock_out = $2, work_minutes = $3, status = $4, auto_closed = $5, updated_at = NOW()
		WHERE id = $1 AND clock_in IS NOT NULL AND clock_out IS NULL
	`, id, clockOut, workMinutes, status, autoClosed)
	if err != nil {
		return false, fmt.Errorf("close attendance session: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// AttachCorrection is guarded on no request currently pending. A missing
// record reports ErrRecordNotFound, never a silent false.
func (r *AttendanceRepository) AttachCorrection(ctx context.Context, id string, req attendance.CorrectionRequest) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE attendances
		SET correction_type = $2, correction_requested_time = $3, correction_reason = $4,
		    correction_status = $5, correction_approver_id = NULL,
		    correction_requested_at = $6, correction_resolved_at = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND (correction_status IS NULL OR correction_status <> 'pending')
	`, id, req.Type, req.RequestedTime, req.Reason, req.Status, req.RequestedAt)
	if err != nil {
		return false, fmt.Errorf("attach correction: %w", err)
	}

	if tag.RowsAffected() == 0 {
		exists, err := r.recordExists(ctx, id)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, attendance.ErrRecordNotFound
		}
		return false, nil
	}

	return true, nil
}

// ResolveCorrection is guarded on the request still being pending, so two
// concurrent approvers cannot both win. A missing record reports
// ErrRecordNotFound.
func (r *AttendanceRepository) ResolveCorrection(ctx context.Context, res attendance.CorrectionResolution) (bool, error) {
	var tagErr error
	var rowsAffected int64

	if res.Outcome == attendance.CorrectionApproved {
		tag, err := r.db.Exec(ctx, `
			UPDATE attendances
			SET correction_status = $2, correction_approver_id = $3, correction_resolved_at = $4,
			    clock_in = $5, clock_out = $6, status = $7, work_minutes = $8,
			    updated_at = NOW()
			WHERE id = $1 AND correction_status = 'pending'
		`, res.RecordID, res.Outcome, res.ApproverID, res.ResolvedAt,
			res.NewClockIn, res.NewClockOut, res.NewStatus, res.WorkMinutes)
		tagErr = err
		rowsAffected = tag.RowsAffected()
	} else {
		tag, err := r.db.Exec(ctx, `
			UPDATE attendances
			SET correction_status = $2, correction_approver_id = $3, correction_resolved_at = $4,
			    updated_at = NOW()
			WHERE id = $1 AND correction_status = 'pending'
		`, res.RecordID, res.Outcome, res.ApproverID, res.ResolvedAt)
		tagErr = err
		rowsAffected = tag.RowsAffected()
	}

	if tagErr != nil {
		return false, fmt.Errorf("resolve correction: %w", tagErr)
	}

	if rowsAffected == 0 {
		exists, err := r.recordExists(ctx, res.RecordID)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, attendance.ErrRecordNotFound
		}
		return false, nil
	}

	return true, nil
}

func (r *AttendanceRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+attendanceColumns+attendanceFrom+`
		 WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		 ORDER BY a.date DESC`,
		employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendances by employee: %w", err)
	}
	return collectRecords(rows)
}

func (r *AttendanceRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+attendanceColumns+attendanceFrom+`
		 WHERE a.date BETWEEN $1 AND $2
		 ORDER BY a.date DESC, a.employee_id ASC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("list attendances by date range: %w", err)
	}
	return collectRecords(rows)
}

func (r *AttendanceRepository) ListOpenSessions(ctx context.Context, through time.Time) ([]attendance.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+attendanceColumns+attendanceFrom+`
		 WHERE a.clock_in IS NOT NULL AND a.clock_out IS NULL AND a.date <= $1
		 ORDER BY a.date DESC`,
		through)
	if err != nil {
		return nil, fmt.Errorf("list open sessions: %w", err)
	}
	return collectRecords(rows)
}

func (r *AttendanceRepository) ListPendingCorrections(ctx context.Context) ([]attendance.Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+attendanceColumns+attendanceFrom+`
		 WHERE a.correction_status = 'pending'
		 ORDER BY a.correction_requested_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pending corrections: %w", err)
	}
	return collectRecords(rows)
}
