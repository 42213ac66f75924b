package progression

// Progression is one member's leveling state. Level is always the pure
// function of TotalXP; the two are persisted together so they cannot drift.
type Progression struct {
	MemberID    string
	HouseholdID string
	Level       int
	TotalXP     int
}

// NewDefault is the implicit state before any experience is awarded.
func NewDefault(householdID, memberID string) Progression {
	return Progression{
		MemberID:    memberID,
		HouseholdID: householdID,
		Level:       1,
		TotalXP:     0,
	}
}

// LevelProgress locates a member inside their current level.
type LevelProgress struct {
	CurrentXP  int
	NeededXP   int
	Percentage int
}

// AwardResult is returned from an experience award so callers can surface
// level-ups.
type AwardResult struct {
	LeveledUp bool
	OldLevel  int
	NewLevel  int
	XPGained  int
	TotalXP   int
	Progress  LevelProgress
}

// LeaderboardEntry is one ranked row. Ranks are sequential from 1 in sorted
// order; exact ties keep a stable order rather than sharing a rank.
type LeaderboardEntry struct {
	Rank        int
	MemberID    string
	DisplayName string
	Level       int
	TotalXP     int
	Title       string
	Progress    LevelProgress
}
