package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/choreworld/choreworld/internal/domain/chore"
	"github.com/choreworld/choreworld/internal/usecase"
)

type choreUpsertRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Description string `json:"description" validate:"max=500"`
	Points      int    `json:"points" validate:"required,gt=0"`
	IsBonus     bool   `json:"is_bonus"`
}

type choreDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Points      int    `json:"points"`
	IsBonus     bool   `json:"is_bonus"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (h *Handler) ListChores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChores")
	defer span.End()

	householdID, _, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.choreService.List(ctx, householdID)
	if err != nil {
		h.logger.WarnContext(ctx, "list chores failed", "household_id", householdID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]choreDTO, 0, len(items))
	for _, item := range items {
		out = append(out, choreToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateChore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateChore")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req, err := decodeChoreUpsertRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.choreService.Create(ctx, householdID, usecase.ChoreInput{
		Name:        req.Name,
		Description: req.Description,
		Points:      req.Points,
		IsBonus:     req.IsBonus,
	}, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "create chore failed", "household_id", householdID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, choreToDTO(item))
}

func (h *Handler) UpdateChore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateChore")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	choreID := strings.TrimSpace(r.PathValue("choreID"))
	req, err := decodeChoreUpsertRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.choreService.Update(ctx, householdID, choreID, usecase.ChoreInput{
		Name:        req.Name,
		Description: req.Description,
		Points:      req.Points,
		IsBonus:     req.IsBonus,
	}, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "update chore failed", "household_id", householdID, "chore_id", choreID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, choreToDTO(item))
}

func (h *Handler) DeleteChore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteChore")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	choreID := strings.TrimSpace(r.PathValue("choreID"))
	if err := h.choreService.Delete(ctx, householdID, choreID, principal); err != nil {
		h.logger.WarnContext(ctx, "delete chore failed", "household_id", householdID, "chore_id", choreID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func decodeChoreUpsertRequest(r *http.Request) (choreUpsertRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req choreUpsertRequest
	if err := decoder.Decode(&req); err != nil {
		return choreUpsertRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}

func choreToDTO(v chore.Chore) choreDTO {
	return choreDTO{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Points:      v.Points,
		IsBonus:     v.IsBonus,
		IsActive:    v.IsActive,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
