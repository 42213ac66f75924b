package postgres

import "time"

type memberTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	HouseholdID string     `db:"household_public_id"`
	DisplayName string     `db:"display_name"`
	IsEligible  bool       `db:"is_eligible"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}
