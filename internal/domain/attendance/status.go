package attendance

import (
	"fmt"
	"time"
)

// ClockTime is a wall-clock instant within a day on the organizational clock.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses "HH:MM" (24h).
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return ClockTime{}, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// On anchors the clock time to the calendar day of t in loc.
func (c ClockTime) On(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), c.Hour, c.Minute, 0, 0, loc)
}

// Policy holds the named attendance parameters: the daily start threshold
// after which a check-in counts as late, the cutoff instant used by the
// auto-close sweep, and the single organizational clock.
type Policy struct {
	LateThreshold   ClockTime
	AutoCloseCutoff ClockTime
	Location        *time.Location
}

// LateDeadline returns the instant after which a check-in on day is late.
func (p Policy) LateDeadline(day time.Time) time.Time {
	return p.LateThreshold.On(day, p.Location)
}

// CutoffInstant returns the auto-close cutoff for day.
func (p Policy) CutoffInstant(day time.Time) time.Time {
	return p.AutoCloseCutoff.On(day, p.Location)
}

// Day truncates t to its calendar day on the organizational clock.
func (p Policy) Day(t time.Time) time.Time {
	local := t.In(p.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.Location)
}

// DeriveStatus is the single owner of status derivation. Every consumer
// (services, sweep, aggregator) derives from the record's timestamps through
// this function; nothing stores an independently chosen status.
//
//	no clockIn               -> NotStarted
//	clockIn after deadline   -> Late (final, survives checkout)
//	clockIn, no clockOut     -> Working
//	otherwise                -> Present
func DeriveStatus(clockIn, clockOut *time.Time, day time.Time, p Policy) Status {
	if clockIn == nil {
		return StatusNotStarted
	}
	if clockIn.After(p.LateDeadline(day)) {
		return StatusLate
	}
	if clockOut == nil {
		return StatusWorking
	}
	return StatusPresent
}

// WorkMinutes computes the worked duration between in and out, floored to
// whole minutes. Negative spans clamp to zero.
func WorkMinutes(in, out time.Time) int {
	mins := int(out.Sub(in).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}
