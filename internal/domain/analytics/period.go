package analytics

import (
	"time"
)

type PeriodType string

const (
	PeriodDay   PeriodType = "day"
	PeriodWeek  PeriodType = "week"
	PeriodMonth PeriodType = "month"
)

// ResolveRange maps a period type and reference date to an inclusive
// [start, end] day range: the single day, the Monday-Sunday week containing
// ref, or the first-last calendar day of ref's month.
func ResolveRange(pt PeriodType, ref time.Time) (time.Time, time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())

	switch pt {
	case PeriodWeek:
		offset := int(day.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7 // Sunday
		}
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6)
	case PeriodMonth:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		return start, start.AddDate(0, 1, -1)
	default:
		return day, day
	}
}

// IsWorkingDay reports whether t falls on a weekday. Fixed Mon-Fri policy,
// no holiday calendar.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WorkingDays counts working days in the inclusive [start, end] range.
func WorkingDays(start, end time.Time) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if IsWorkingDay(d) {
			count++
		}
	}
	return count
}
