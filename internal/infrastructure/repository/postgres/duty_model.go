package postgres

import (
	"time"

	"github.com/lib/pq"
)

type dutyTypeTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	HouseholdID string     `db:"household_public_id"`
	Name        string     `db:"name"`
	Icon        string     `db:"icon"`
	Description string     `db:"description"`
	IsActive    bool       `db:"is_active"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type dutyTypeInsertModel struct {
	PublicID    string `db:"public_id"`
	HouseholdID string `db:"household_public_id"`
	Name        string `db:"name"`
	Icon        string `db:"icon"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
}

type rotationOrderTableModel struct {
	ID          int64          `db:"id"`
	HouseholdID string         `db:"household_public_id"`
	DutyTypeID  string         `db:"duty_type_public_id"`
	MemberIDs   pq.StringArray `db:"member_public_ids"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
	DeletedAt   *time.Time     `db:"deleted_at"`
}

type rotationOrderInsertModel struct {
	HouseholdID string         `db:"household_public_id"`
	DutyTypeID  string         `db:"duty_type_public_id"`
	MemberIDs   pq.StringArray `db:"member_public_ids"`
}
