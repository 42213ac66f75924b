package memory

import (
	"time"

	"github.com/choreworld/choreworld/internal/domain/chore"
	"github.com/choreworld/choreworld/internal/domain/duty"
	"github.com/choreworld/choreworld/internal/domain/household"
	"github.com/choreworld/choreworld/internal/domain/member"
)

const (
	HouseholdIDDemo = "hh_demo"
)

func SeedHouseholds() []household.Household {
	return []household.Household{
		{ID: HouseholdIDDemo, Name: "Demo Household", IsActive: true},
	}
}

func SeedMembers() []member.Member {
	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	return []member.Member{
		{ID: "mbr_alex", HouseholdID: HouseholdIDDemo, DisplayName: "Alex", IsEligible: true, CreatedAt: created},
		{ID: "mbr_billie", HouseholdID: HouseholdIDDemo, DisplayName: "Billie", IsEligible: true, CreatedAt: created.Add(time.Minute)},
		{ID: "mbr_casey", HouseholdID: HouseholdIDDemo, DisplayName: "Casey", IsEligible: true, CreatedAt: created.Add(2 * time.Minute)},
		{ID: "mbr_devon", HouseholdID: HouseholdIDDemo, DisplayName: "Devon", IsEligible: true, CreatedAt: created.Add(3 * time.Minute)},
	}
}

func SeedChores() []chore.Chore {
	created := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	return []chore.Chore{
		{ID: "chr_dishes", HouseholdID: HouseholdIDDemo, Name: "Wash the dishes", Points: 10, IsActive: true, CreatedAt: created, UpdatedAt: created},
		{ID: "chr_vacuum", HouseholdID: HouseholdIDDemo, Name: "Vacuum the living room", Points: 15, IsActive: true, CreatedAt: created, UpdatedAt: created},
		{ID: "chr_laundry", HouseholdID: HouseholdIDDemo, Name: "Do the laundry", Points: 20, IsActive: true, CreatedAt: created, UpdatedAt: created},
		{ID: "chr_plants", HouseholdID: HouseholdIDDemo, Name: "Water the plants", Points: 5, IsActive: true, CreatedAt: created, UpdatedAt: created},
		{ID: "chr_garage", HouseholdID: HouseholdIDDemo, Name: "Deep clean the garage", Description: "Weekend project", Points: 40, IsBonus: true, IsActive: true, CreatedAt: created, UpdatedAt: created},
	}
}

func SeedDutyTypes() []duty.Type {
	created := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	return []duty.Type{
		{ID: "dty_trash", HouseholdID: HouseholdIDDemo, Name: "Trash duty", Icon: "🗑️", Description: "Take bins out on collection days", IsActive: true, CreatedAt: created, UpdatedAt: created},
		{ID: "dty_kitchen", HouseholdID: HouseholdIDDemo, Name: "Kitchen patrol", Icon: "🍳", Description: "Wipe counters and restock supplies", IsActive: true, CreatedAt: created, UpdatedAt: created},
	}
}
