package postgres

import "time"

type choreTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	HouseholdID string     `db:"household_public_id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Points      int        `db:"points"`
	IsBonus     bool       `db:"is_bonus"`
	IsActive    bool       `db:"is_active"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type choreInsertModel struct {
	PublicID    string `db:"public_id"`
	HouseholdID string `db:"household_public_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Points      int    `db:"points"`
	IsBonus     bool   `db:"is_bonus"`
	IsActive    bool   `db:"is_active"`
}
