package postgres

import "time"

type progressionTableModel struct {
	ID          int64      `db:"id"`
	HouseholdID string     `db:"household_public_id"`
	MemberID    string     `db:"member_public_id"`
	Level       int        `db:"level"`
	TotalXP     int        `db:"total_xp"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type progressionInsertModel struct {
	HouseholdID string `db:"household_public_id"`
	MemberID    string `db:"member_public_id"`
	Level       int    `db:"level"`
	TotalXP     int    `db:"total_xp"`
}
