package postgres

import (
	"database/sql"
	"time"
)

type dailyAssignmentTableModel struct {
	ID           int64         `db:"id"`
	PublicID     string        `db:"public_id"`
	HouseholdID  string        `db:"household_public_id"`
	MemberID     string        `db:"member_public_id"`
	ChoreID      string        `db:"chore_public_id"`
	ChoreName    string        `db:"chore_name"`
	Points       int           `db:"points"`
	IsBonus      bool          `db:"is_bonus"`
	AssignedDate int64         `db:"assigned_date"`
	Completed    bool          `db:"completed"`
	CompletedAt  sql.NullInt64 `db:"completed_at"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
	DeletedAt    *time.Time    `db:"deleted_at"`
}

type dailyAssignmentInsertModel struct {
	PublicID     string `db:"public_id"`
	HouseholdID  string `db:"household_public_id"`
	MemberID     string `db:"member_public_id"`
	ChoreID      string `db:"chore_public_id"`
	ChoreName    string `db:"chore_name"`
	Points       int    `db:"points"`
	IsBonus      bool   `db:"is_bonus"`
	AssignedDate int64  `db:"assigned_date"`
	Completed    bool   `db:"completed"`
	CompletedAt  *int64 `db:"completed_at"`
}

type weeklyAssignmentTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	HouseholdID string     `db:"household_public_id"`
	DutyTypeID  string     `db:"duty_type_public_id"`
	MemberID    string     `db:"member_public_id"`
	PeriodStart int64      `db:"period_start"`
	PeriodEnd   int64      `db:"period_end"`
	IsActive    bool       `db:"is_active"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type weeklyAssignmentInsertModel struct {
	PublicID    string `db:"public_id"`
	HouseholdID string `db:"household_public_id"`
	DutyTypeID  string `db:"duty_type_public_id"`
	MemberID    string `db:"member_public_id"`
	PeriodStart int64  `db:"period_start"`
	PeriodEnd   int64  `db:"period_end"`
	IsActive    bool   `db:"is_active"`
}

type completionTableModel struct {
	ID          int64      `db:"id"`
	PublicID    string     `db:"public_id"`
	HouseholdID string     `db:"household_public_id"`
	MemberID    string     `db:"member_public_id"`
	ChoreID     string     `db:"chore_public_id"`
	Points      int        `db:"points"`
	XPAwarded   int        `db:"xp_awarded"`
	PeriodStart int64      `db:"period_start"`
	CompletedAt int64      `db:"completed_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type completionInsertModel struct {
	PublicID    string `db:"public_id"`
	HouseholdID string `db:"household_public_id"`
	MemberID    string `db:"member_public_id"`
	ChoreID     string `db:"chore_public_id"`
	Points      int    `db:"points"`
	XPAwarded   int    `db:"xp_awarded"`
	PeriodStart int64  `db:"period_start"`
	CompletedAt int64  `db:"completed_at"`
}
