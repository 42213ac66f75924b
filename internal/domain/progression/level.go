package progression

import (
	"fmt"
	"math"
)

// XPRequiredForLevel is the cost of advancing from level n to n+1:
// floor(100 * 1.5^(n-1)). Level 1 to 2 costs 100, each next step 50% more.
// This curve is a compatibility contract with stored leaderboard data and
// must not change.
func XPRequiredForLevel(level int) int {
	if level < 1 {
		return 0
	}
	return int(math.Floor(100 * math.Pow(1.5, float64(level-1))))
}

// LevelFromTotalXP derives the level reached with total cumulative XP. Pure:
// the same total always yields the same level.
func LevelFromTotalXP(totalXP int) int {
	level := 1
	xpNeeded := 0
	for xpNeeded <= totalXP {
		xpNeeded += XPRequiredForLevel(level)
		if xpNeeded <= totalXP {
			level++
		}
	}
	return level
}

// ProgressWithinLevel reports how far into the given level a total sits.
// CurrentXP stays in [0, NeededXP) except exactly at a boundary where it is 0.
func ProgressWithinLevel(totalXP, level int) LevelProgress {
	spent := 0
	for l := 1; l < level; l++ {
		spent += XPRequiredForLevel(l)
	}

	currentXP := totalXP - spent
	if currentXP < 0 {
		currentXP = 0
	}
	neededXP := XPRequiredForLevel(level)

	percentage := 0
	if neededXP > 0 {
		percentage = currentXP * 100 / neededXP
	}

	return LevelProgress{
		CurrentXP:  currentXP,
		NeededXP:   neededXP,
		Percentage: percentage,
	}
}

var levelTitles = []string{
	"Chore Rookie",
	"Task Helper",
	"Cleaning Cadet",
	"Chore Champion",
	"Tidiness Expert",
	"Organization Guru",
	"Cleanliness Master",
	"Chore Warrior",
	"Household Hero",
	"Supreme Organizer",
	"Legendary Cleaner",
}

// TitleForLevel maps a level to its display title. Levels past the table
// keep the top title with the level spelled out.
func TitleForLevel(level int) string {
	if level < 1 {
		level = 1
	}
	if level <= len(levelTitles) {
		return levelTitles[level-1]
	}
	return fmt.Sprintf("%s (Level %d)", levelTitles[len(levelTitles)-1], level)
}
