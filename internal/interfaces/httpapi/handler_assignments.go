package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/choreworld/choreworld/internal/domain/assignment"
	"github.com/choreworld/choreworld/internal/domain/progression"
	"github.com/choreworld/choreworld/internal/domain/schedule"
	"github.com/choreworld/choreworld/internal/usecase"
)

func (h *Handler) ListDailyAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDailyAssignments")
	defer span.End()

	householdID, _, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := parseDateParam(r, "date")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.assignmentService.ListDaily(ctx, householdID, date)
	if err != nil {
		h.logger.WarnContext(ctx, "list daily assignments failed", "household_id", householdID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]dailyAssignmentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dailyAssignmentToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

// RunDistributionNow triggers daily distribution for one household outside
// the schedule, the "assign now" action. Idempotent per day.
func (h *Handler) RunDistributionNow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDistributionNow")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !principal.Privileged {
		writeError(ctx, w, fmt.Errorf("%w: distributing chores requires privilege", usecase.ErrUnauthorized))
		return
	}

	date, err := parseDateParam(r, "date")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	if err := h.distributionService.DistributeDaily(ctx, householdID, date); err != nil {
		h.logger.WarnContext(ctx, "manual distribution failed", "household_id", householdID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items, err := h.assignmentService.ListDaily(ctx, householdID, date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]dailyAssignmentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dailyAssignmentToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateManualAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateManualAssignment")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req manualAssignmentRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.assignmentService.AssignManual(ctx, householdID, req.MemberID, req.ChoreID, date, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "manual assignment failed",
			"household_id", householdID,
			"member_id", req.MemberID,
			"chore_id", req.ChoreID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, dailyAssignmentToDTO(item))
}

func (h *Handler) CompleteAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CompleteAssignment")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	assignmentID := strings.TrimSpace(r.PathValue("assignmentID"))
	result, err := h.assignmentService.Complete(ctx, householdID, assignmentID, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "complete assignment failed",
			"household_id", householdID,
			"assignment_id", assignmentID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, completionResultDTO{
		Assignment: dailyAssignmentToDTO(result.Assignment),
		Award:      awardToDTO(result.Award),
	})
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteAssignment")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	assignmentID := strings.TrimSpace(r.PathValue("assignmentID"))
	if err := h.assignmentService.Delete(ctx, householdID, assignmentID, principal); err != nil {
		h.logger.WarnContext(ctx, "delete assignment failed",
			"household_id", householdID,
			"assignment_id", assignmentID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) GetWeeklySummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklySummary")
	defer span.End()

	householdID, _, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	ref, err := parseDateParam(r, "week")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.assignmentService.Summary(ctx, householdID, ref)
	if err != nil {
		h.logger.WarnContext(ctx, "weekly summary failed", "household_id", householdID, "error", err)
		writeError(ctx, w, err)
		return
	}

	members := make([]memberWeeklySummaryDTO, 0, len(summary.Members))
	for _, m := range summary.Members {
		members = append(members, memberWeeklySummaryDTO{
			MemberID:       m.MemberID,
			DisplayName:    m.DisplayName,
			CompletedCount: m.CompletedCount,
			PointsEarned:   m.PointsEarned,
			XPEarned:       m.XPEarned,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, weeklySummaryDTO{
		PeriodStart: schedule.DateKey(summary.PeriodStart),
		PeriodEnd:   schedule.DateKey(summary.PeriodEnd),
		Members:     members,
	})
}

func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeeks")
	defer span.End()

	householdID, _, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	starts, err := h.assignmentService.ListWeeks(ctx, householdID)
	if err != nil {
		h.logger.WarnContext(ctx, "list weeks failed", "household_id", householdID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]string, 0, len(starts))
	for _, start := range starts {
		out = append(out, schedule.DateKey(start))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetDutyRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDutyRoster")
	defer span.End()

	householdID, _, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.assignmentService.DutyRoster(ctx, householdID)
	if err != nil {
		h.logger.WarnContext(ctx, "duty roster failed", "household_id", householdID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]weeklyAssignmentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, weeklyAssignmentToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func parseOptionalDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date, expected YYYY-MM-DD: %v", usecase.ErrInvalidInput, err)
	}
	return parsed, nil
}

type manualAssignmentRequest struct {
	MemberID string `json:"member_id" validate:"required"`
	ChoreID  string `json:"chore_id" validate:"required"`
	Date     string `json:"date" validate:"omitempty,len=10"`
}

type dailyAssignmentDTO struct {
	ID          string `json:"id"`
	MemberID    string `json:"member_id"`
	ChoreID     string `json:"chore_id"`
	ChoreName   string `json:"chore_name"`
	Points      int    `json:"points"`
	IsBonus     bool   `json:"is_bonus"`
	Date        string `json:"date"`
	Completed   bool   `json:"completed"`
	CompletedAt string `json:"completed_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type completionResultDTO struct {
	Assignment dailyAssignmentDTO `json:"assignment"`
	Award      awardDTO           `json:"award"`
}

type awardDTO struct {
	LeveledUp bool             `json:"leveled_up"`
	OldLevel  int              `json:"old_level"`
	NewLevel  int              `json:"new_level"`
	XPGained  int              `json:"xp_gained"`
	TotalXP   int              `json:"total_xp"`
	Progress  levelProgressDTO `json:"progress"`
}

type levelProgressDTO struct {
	CurrentXP  int `json:"current_xp"`
	NeededXP   int `json:"needed_xp"`
	Percentage int `json:"percentage"`
}

type weeklySummaryDTO struct {
	PeriodStart string                   `json:"period_start"`
	PeriodEnd   string                   `json:"period_end"`
	Members     []memberWeeklySummaryDTO `json:"members"`
}

type memberWeeklySummaryDTO struct {
	MemberID       string `json:"member_id"`
	DisplayName    string `json:"display_name"`
	CompletedCount int    `json:"completed_count"`
	PointsEarned   int    `json:"points_earned"`
	XPEarned       int    `json:"xp_earned"`
}

type weeklyAssignmentDTO struct {
	ID          string `json:"id"`
	DutyTypeID  string `json:"duty_type_id"`
	MemberID    string `json:"member_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	IsActive    bool   `json:"is_active"`
}

func dailyAssignmentToDTO(v assignment.Daily) dailyAssignmentDTO {
	return dailyAssignmentDTO{
		ID:          v.ID,
		MemberID:    v.MemberID,
		ChoreID:     v.ChoreID,
		ChoreName:   v.ChoreName,
		Points:      v.Points,
		IsBonus:     v.IsBonus,
		Date:        schedule.DateKey(v.Date),
		Completed:   v.Completed,
		CompletedAt: formatOptionalTime(v.CompletedAt),
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func weeklyAssignmentToDTO(v assignment.Weekly) weeklyAssignmentDTO {
	return weeklyAssignmentDTO{
		ID:          v.ID,
		DutyTypeID:  v.DutyTypeID,
		MemberID:    v.MemberID,
		PeriodStart: schedule.DateKey(v.PeriodStart),
		PeriodEnd:   schedule.DateKey(v.PeriodEnd),
		IsActive:    v.IsActive,
	}
}

func awardToDTO(v progression.AwardResult) awardDTO {
	return awardDTO{
		LeveledUp: v.LeveledUp,
		OldLevel:  v.OldLevel,
		NewLevel:  v.NewLevel,
		XPGained:  v.XPGained,
		TotalXP:   v.TotalXP,
		Progress: levelProgressDTO{
			CurrentXP:  v.Progress.CurrentXP,
			NeededXP:   v.Progress.NeededXP,
			Percentage: v.Progress.Percentage,
		},
	}
}

func formatOptionalTime(v *time.Time) string {
	if v == nil || v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
