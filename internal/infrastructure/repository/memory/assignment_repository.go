package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/choreworld/choreworld/internal/domain/assignment"
)

type AssignmentRepository struct {
	mu          sync.RWMutex
	dailies     map[string]assignment.Daily
	dailyOrders []string
	weeklies    []assignment.Weekly
	completions []assignment.Completion
}

func NewAssignmentRepository() *AssignmentRepository {
	return &AssignmentRepository{
		dailies: make(map[string]assignment.Daily),
	}
}

func (r *AssignmentRepository) HasDailyAssignments(_ context.Context, householdID string, date time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.dailyOrders {
		d := r.dailies[id]
		if d.HouseholdID == householdID && d.Date.Equal(date) {
			return true, nil
		}
	}

	return false, nil
}

func (r *AssignmentRepository) CreateDailyAssignment(_ context.Context, d assignment.Daily) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.dailies[d.ID]; !ok {
		r.dailyOrders = append(r.dailyOrders, d.ID)
	}
	r.dailies[d.ID] = d

	return nil
}

func (r *AssignmentRepository) GetDailyAssignment(_ context.Context, householdID, assignmentID string) (assignment.Daily, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.dailies[assignmentID]
	if !ok || d.HouseholdID != householdID {
		return assignment.Daily{}, false, nil
	}

	return d, true, nil
}

func (r *AssignmentRepository) ListDailyAssignments(_ context.Context, householdID string, date time.Time) ([]assignment.Daily, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Daily, 0, len(r.dailyOrders))
	for _, id := range r.dailyOrders {
		d := r.dailies[id]
		if d.HouseholdID == householdID && d.Date.Equal(date) {
			out = append(out, d)
		}
	}

	return out, nil
}

func (r *AssignmentRepository) MarkDailyAssignmentCompleted(_ context.Context, householdID, assignmentID string, completedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.dailies[assignmentID]
	if !ok || d.HouseholdID != householdID {
		return nil
	}
	d.Completed = true
	d.CompletedAt = &completedAt
	r.dailies[assignmentID] = d

	return nil
}

func (r *AssignmentRepository) DeleteDailyAssignment(_ context.Context, householdID, assignmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.dailies[assignmentID]
	if !ok || d.HouseholdID != householdID {
		return nil
	}
	delete(r.dailies, assignmentID)
	for i, id := range r.dailyOrders {
		if id == assignmentID {
			r.dailyOrders = append(r.dailyOrders[:i], r.dailyOrders[i+1:]...)
			break
		}
	}

	return nil
}

func (r *AssignmentRepository) DeleteDailyAssignmentsForMember(_ context.Context, householdID, memberID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.dailyOrders[:0]
	for _, id := range r.dailyOrders {
		d := r.dailies[id]
		if d.HouseholdID == householdID && d.MemberID == memberID && d.Date.Equal(date) {
			delete(r.dailies, id)
			continue
		}
		kept = append(kept, id)
	}
	r.dailyOrders = kept

	return nil
}

func (r *AssignmentRepository) FindLastWeeklyAssignment(_ context.Context, householdID, dutyTypeID string) (assignment.Weekly, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var last assignment.Weekly
	found := false
	for _, w := range r.weeklies {
		if w.HouseholdID != householdID || w.DutyTypeID != dutyTypeID {
			continue
		}
		if !found || w.PeriodStart.After(last.PeriodStart) {
			last = w
			found = true
		}
	}

	return last, found, nil
}

func (r *AssignmentRepository) HasWeeklyAssignment(_ context.Context, householdID, dutyTypeID string, periodStart time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.weeklies {
		if w.HouseholdID == householdID && w.DutyTypeID == dutyTypeID && w.PeriodStart.Equal(periodStart) {
			return true, nil
		}
	}

	return false, nil
}

func (r *AssignmentRepository) ListActiveWeeklyAssignments(_ context.Context, householdID string) ([]assignment.Weekly, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Weekly, 0, len(r.weeklies))
	for _, w := range r.weeklies {
		if w.HouseholdID == householdID && w.IsActive {
			out = append(out, w)
		}
	}

	return out, nil
}

func (r *AssignmentRepository) DeactivateWeeklyAssignments(_ context.Context, householdID, dutyTypeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, w := range r.weeklies {
		if w.HouseholdID == householdID && w.DutyTypeID == dutyTypeID {
			r.weeklies[i].IsActive = false
		}
	}

	return nil
}

func (r *AssignmentRepository) CreateWeeklyAssignment(_ context.Context, w assignment.Weekly) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.weeklies = append(r.weeklies, w)

	return nil
}

func (r *AssignmentRepository) ListWeeklyPeriodStarts(_ context.Context, householdID string) ([]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[time.Time]bool)
	out := make([]time.Time, 0)
	for _, w := range r.weeklies {
		if w.HouseholdID != householdID || seen[w.PeriodStart] {
			continue
		}
		seen[w.PeriodStart] = true
		out = append(out, w.PeriodStart)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })

	return out, nil
}

func (r *AssignmentRepository) RecordCompletion(_ context.Context, c assignment.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.completions = append(r.completions, c)

	return nil
}

func (r *AssignmentRepository) ListCompletionsInRange(_ context.Context, householdID string, from, to time.Time) ([]assignment.Completion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]assignment.Completion, 0, len(r.completions))
	for _, c := range r.completions {
		if c.HouseholdID != householdID {
			continue
		}
		if c.CompletedAt.Before(from) || c.CompletedAt.After(to) {
			continue
		}
		out = append(out, c)
	}

	return out, nil
}
