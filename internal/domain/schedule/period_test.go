package schedule

import (
	"testing"
	"time"
)

func TestPeriodContaining_MondayStart(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
	}{
		{
			name:      "midweek",
			ref:       time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC), // Thursday
			wantStart: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "on period start day",
			ref:       time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), // Monday
			wantStart: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "sunday belongs to previous monday",
			ref:       time.Date(2026, 8, 23, 23, 59, 0, 0, time.UTC), // Sunday
			wantStart: time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p, err := PeriodContaining(tc.ref, time.Monday)
			if err != nil {
				t.Fatalf("PeriodContaining: %v", err)
			}
			if !p.Start.Equal(tc.wantStart) {
				t.Fatalf("start = %v, want %v", p.Start, tc.wantStart)
			}

			wantEnd := tc.wantStart.AddDate(0, 0, 7).Add(-time.Millisecond)
			if !p.End.Equal(wantEnd) {
				t.Fatalf("end = %v, want %v", p.End, wantEnd)
			}
			if !p.Contains(tc.ref) {
				t.Fatal("period does not contain its reference time")
			}
		})
	}
}

func TestPeriodContaining_ConfigurableStartDay(t *testing.T) {
	t.Parallel()

	ref := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC) // Thursday
	p, err := PeriodContaining(ref, time.Sunday)
	if err != nil {
		t.Fatalf("PeriodContaining: %v", err)
	}

	wantStart := time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC)
	if !p.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", p.Start, wantStart)
	}
}

func TestPeriodContaining_LastDayOfPeriod(t *testing.T) {
	t.Parallel()

	end := time.Date(2026, 8, 23, 23, 59, 59, 999000000, time.UTC)
	p, err := PeriodContaining(end, time.Monday)
	if err != nil {
		t.Fatalf("PeriodContaining: %v", err)
	}
	if !p.End.Equal(end) {
		t.Fatalf("end = %v, want %v", p.End, end)
	}
}

func TestPeriodContaining_RejectsZeroTime(t *testing.T) {
	t.Parallel()

	if _, err := PeriodContaining(time.Time{}, time.Monday); err == nil {
		t.Fatal("expected error for zero reference time")
	}
}

func TestDateKey(t *testing.T) {
	t.Parallel()

	if got := DateKey(time.Date(2026, 8, 5, 18, 4, 0, 0, time.UTC)); got != "2026-08-05" {
		t.Fatalf("DateKey = %q", got)
	}
}
