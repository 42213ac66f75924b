package progression

import "testing"

func TestXPRequiredForLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 150},
		{3, 225},
		{4, 337},
		{5, 506},
	}

	for _, tc := range cases {
		if got := XPRequiredForLevel(tc.level); got != tc.want {
			t.Errorf("XPRequiredForLevel(%d) = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestLevelFromTotalXP_Thresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		totalXP int
		want    int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{474, 3},
		{475, 4},
	}

	for _, tc := range cases {
		if got := LevelFromTotalXP(tc.totalXP); got != tc.want {
			t.Errorf("LevelFromTotalXP(%d) = %d, want %d", tc.totalXP, got, tc.want)
		}
	}
}

func TestLevelFromTotalXP_Monotonic(t *testing.T) {
	t.Parallel()

	prev := LevelFromTotalXP(0)
	for total := 1; total <= 5000; total++ {
		got := LevelFromTotalXP(total)
		if got < prev {
			t.Fatalf("level decreased from %d to %d at total %d", prev, got, total)
		}
		prev = got
	}
}

func TestProgressWithinLevel(t *testing.T) {
	t.Parallel()

	p := ProgressWithinLevel(160, 2)
	if p.CurrentXP != 60 {
		t.Fatalf("CurrentXP = %d, want 60", p.CurrentXP)
	}
	if p.NeededXP != 150 {
		t.Fatalf("NeededXP = %d, want 150", p.NeededXP)
	}
	if p.Percentage != 40 {
		t.Fatalf("Percentage = %d, want 40", p.Percentage)
	}

	boundary := ProgressWithinLevel(100, 2)
	if boundary.CurrentXP != 0 {
		t.Fatalf("boundary CurrentXP = %d, want 0", boundary.CurrentXP)
	}

	for total := 0; total <= 3000; total += 7 {
		level := LevelFromTotalXP(total)
		pr := ProgressWithinLevel(total, level)
		if pr.CurrentXP < 0 || pr.CurrentXP >= pr.NeededXP {
			t.Fatalf("total %d level %d: CurrentXP %d outside [0, %d)", total, level, pr.CurrentXP, pr.NeededXP)
		}
	}
}

func TestTitleForLevel(t *testing.T) {
	t.Parallel()

	if got := TitleForLevel(1); got != "Chore Rookie" {
		t.Fatalf("TitleForLevel(1) = %q", got)
	}
	if got := TitleForLevel(11); got != "Legendary Cleaner" {
		t.Fatalf("TitleForLevel(11) = %q", got)
	}
	if got := TitleForLevel(50); got != "Legendary Cleaner (Level 50)" {
		t.Fatalf("TitleForLevel(50) = %q", got)
	}
}
