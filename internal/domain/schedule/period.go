package schedule

import (
	"fmt"
	"time"
)

// DefaultPeriodStart is the weekday a rotation period begins on when no
// override is configured.
const DefaultPeriodStart = time.Monday

// Period is one rotation window: Start at 00:00:00.000 on the period's first
// day, End at 23:59:59.999 on its last.
type Period struct {
	Start time.Time
	End   time.Time
}

// PeriodContaining returns the period that contains ref for the given start
// weekday. A ref falling on the start weekday begins a new period that day.
func PeriodContaining(ref time.Time, startDay time.Weekday) (Period, error) {
	if ref.IsZero() {
		return Period{}, fmt.Errorf("reference time is required")
	}
	if startDay < time.Sunday || startDay > time.Saturday {
		return Period{}, fmt.Errorf("invalid period start weekday %d", startDay)
	}

	offset := (int(ref.Weekday()) - int(startDay) + 7) % 7
	start := DateOnly(ref).AddDate(0, 0, -offset)
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)

	return Period{Start: start, End: end}, nil
}

// Contains reports whether t falls inside the period, boundaries included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// DateKey renders t's calendar date as YYYY-MM-DD. Daily assignment
// uniqueness is keyed on this value.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
