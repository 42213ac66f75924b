package httpapi

import (
	"net/http"
	"strings"

	"github.com/choreworld/choreworld/internal/domain/progression"
)

type leaderboardEntryDTO struct {
	Rank        int              `json:"rank"`
	MemberID    string           `json:"member_id"`
	DisplayName string           `json:"display_name"`
	Level       int              `json:"level"`
	TotalXP     int              `json:"total_xp"`
	Title       string           `json:"title"`
	Progress    levelProgressDTO `json:"progress"`
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	householdID, _, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.progressionService.Leaderboard(ctx, householdID)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard failed", "household_id", householdID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, leaderboardEntryToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMemberStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMemberStats")
	defer span.End()

	householdID, _, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	memberID := strings.TrimSpace(r.PathValue("memberID"))
	entry, err := h.progressionService.MemberStats(ctx, householdID, memberID)
	if err != nil {
		h.logger.WarnContext(ctx, "member stats failed", "household_id", householdID, "member_id", memberID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardEntryToDTO(entry))
}

func leaderboardEntryToDTO(v progression.LeaderboardEntry) leaderboardEntryDTO {
	return leaderboardEntryDTO{
		Rank:        v.Rank,
		MemberID:    v.MemberID,
		DisplayName: v.DisplayName,
		Level:       v.Level,
		TotalXP:     v.TotalXP,
		Title:       v.Title,
		Progress: levelProgressDTO{
			CurrentXP:  v.Progress.CurrentXP,
			NeededXP:   v.Progress.NeededXP,
			Percentage: v.Progress.Percentage,
		},
	}
}
