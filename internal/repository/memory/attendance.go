// Package memory provides mutex-guarded in-memory repository implementations
// with the same conditional-write semantics as the PostgreSQL repositories.
// They back the test suites and local development without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu      sync.RWMutex
	byID    map[string]attendance.Record
	byEmpDT map[string]string // employeeID + "|" + YYYY-MM-DD -> record ID
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{
		byID:    make(map[string]attendance.Record),
		byEmpDT: make(map[string]string),
	}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (r *AttendanceRepository) CreateCheckIn(_ context.Context, rec attendance.Record) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(rec.EmployeeID, rec.Date)
	if _, exists := r.byEmpDT[key]; exists {
		return false, nil
	}

	r.byID[rec.ID] = cloneRecord(rec)
	r.byEmpDT[key] = rec.ID
	return true, nil
}

func (r *AttendanceRepository) GetByID(_ context.Context, id string) (attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byID[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return cloneRecord(rec), nil
}

func (r *AttendanceRepository) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmpDT[dayKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	rec := cloneRecord(r.byID[id])
	return &rec, nil
}

func (r *AttendanceRepository) CloseSession(_ context.Context, id string, clockOut time.Time, workMinutes int, status attendance.Status, autoClosed bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok || rec.ClockIn == nil || rec.ClockOut != nil {
		return false, nil
	}

	out := clockOut
	rec.ClockOut = &out
	rec.WorkMinutes = &workMinutes
	rec.Status = status
	rec.AutoClosed = autoClosed
	rec.UpdatedAt = time.Now()
	r.byID[id] = rec
	return true, nil
}

func (r *AttendanceRepository) AttachCorrection(_ context.Context, id string, req attendance.CorrectionRequest) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[id]
	if !ok {
		return false, attendance.ErrRecordNotFound
	}
	if rec.HasPendingCorrection() {
		return false, nil
	}

	cp := req
	rec.Correction = &cp
	rec.UpdatedAt = time.Now()
	r.byID[id] = rec
	return true, nil
}

func (r *AttendanceRepository) ResolveCorrection(_ context.Context, res attendance.CorrectionResolution) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byID[res.RecordID]
	if !ok {
		return false, attendance.ErrRecordNotFound
	}
	if !rec.HasPendingCorrection() {
		return false, nil
	}

	corr := *rec.Correction
	corr.Status = res.Outcome
	approver := res.ApproverID
	corr.ApproverID = &approver
	resolvedAt := res.ResolvedAt
	corr.ResolvedAt = &resolvedAt
	rec.Correction = &corr

	if res.Outcome == attendance.CorrectionApproved {
		rec.ClockIn = copyTime(res.NewClockIn)
		rec.ClockOut = copyTime(res.NewClockOut)
		rec.Status = res.NewStatus
		rec.WorkMinutes = copyInt(res.WorkMinutes)
	}

	rec.UpdatedAt = time.Now()
	r.byID[res.RecordID] = rec
	return true, nil
}

func (r *AttendanceRepository) ListByEmployee(_ context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []attendance.Record
	for _, rec := range r.byID {
		if rec.EmployeeID != employeeID {
			continue
		}
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *AttendanceRepository) ListByDateRange(_ context.Context, from, to time.Time) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []attendance.Record
	for _, rec := range r.byID {
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *AttendanceRepository) ListOpenSessions(_ context.Context, through time.Time) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []attendance.Record
	for _, rec := range r.byID {
		if rec.ClockIn == nil || rec.ClockOut != nil {
			continue
		}
		if rec.Date.After(through) {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *AttendanceRepository) ListPendingCorrections(_ context.Context) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []attendance.Record
	for _, rec := range r.byID {
		if !rec.HasPendingCorrection() {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Correction.RequestedAt.Before(out[j].Correction.RequestedAt)
	})
	return out, nil
}

func sortNewestFirst(recs []attendance.Record) {
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].Date.Equal(recs[j].Date) {
			return recs[i].Date.After(recs[j].Date)
		}
		return recs[i].EmployeeID < recs[j].EmployeeID
	})
}

func cloneRecord(rec attendance.Record) attendance.Record {
	rec.ClockIn = copyTime(rec.ClockIn)
	rec.ClockOut = copyTime(rec.ClockOut)
	rec.WorkMinutes = copyInt(rec.WorkMinutes)
	if rec.Correction != nil {
		corr := *rec.Correction
		corr.ApproverID = copyString(corr.ApproverID)
		corr.ResolvedAt = copyTime(corr.ResolvedAt)
		rec.Correction = &corr
	}
	rec.EmployeeName = copyString(rec.EmployeeName)
	return rec
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}
	cp := *i
	return &cp
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}
