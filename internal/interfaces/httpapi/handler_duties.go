package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/choreworld/choreworld/internal/domain/duty"
	"github.com/choreworld/choreworld/internal/usecase"
)

type dutyTypeUpsertRequest struct {
	Name        string `json:"name" validate:"required,max=120"`
	Icon        string `json:"icon" validate:"max=16"`
	Description string `json:"description" validate:"max=500"`
}

type rotationOrderRequest struct {
	MemberIDs []string `json:"member_ids" validate:"required,min=1,dive,required"`
}

type dutyTypeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (h *Handler) ListDutyTypes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListDutyTypes")
	defer span.End()

	householdID, _, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.dutyService.List(ctx, householdID)
	if err != nil {
		h.logger.WarnContext(ctx, "list duty types failed", "household_id", householdID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]dutyTypeDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dutyTypeToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreateDutyType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateDutyType")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req, err := decodeDutyTypeUpsertRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.dutyService.Create(ctx, householdID, usecase.DutyTypeInput{
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
	}, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "create duty type failed", "household_id", householdID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, dutyTypeToDTO(item))
}

func (h *Handler) UpdateDutyType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateDutyType")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dutyTypeID := strings.TrimSpace(r.PathValue("dutyTypeID"))
	req, err := decodeDutyTypeUpsertRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.dutyService.Update(ctx, householdID, dutyTypeID, usecase.DutyTypeInput{
		Name:        req.Name,
		Icon:        req.Icon,
		Description: req.Description,
	}, principal)
	if err != nil {
		h.logger.WarnContext(ctx, "update duty type failed", "household_id", householdID, "duty_type_id", dutyTypeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dutyTypeToDTO(item))
}

func (h *Handler) DeleteDutyType(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteDutyType")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dutyTypeID := strings.TrimSpace(r.PathValue("dutyTypeID"))
	if err := h.dutyService.Delete(ctx, householdID, dutyTypeID, principal); err != nil {
		h.logger.WarnContext(ctx, "delete duty type failed", "household_id", householdID, "duty_type_id", dutyTypeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func (h *Handler) GetRotationOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRotationOrder")
	defer span.End()

	householdID, _, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dutyTypeID := strings.TrimSpace(r.PathValue("dutyTypeID"))
	order, err := h.dutyService.GetRotationOrder(ctx, householdID, dutyTypeID)
	if err != nil {
		h.logger.WarnContext(ctx, "get rotation order failed", "household_id", householdID, "duty_type_id", dutyTypeID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if order == nil {
		order = []string{}
	}

	writeSuccess(ctx, w, http.StatusOK, map[string][]string{"member_ids": order})
}

func (h *Handler) SetRotationOrder(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetRotationOrder")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dutyTypeID := strings.TrimSpace(r.PathValue("dutyTypeID"))

	var req rotationOrderRequest
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

	if err := h.dutyService.SetRotationOrder(ctx, householdID, dutyTypeID, req.MemberIDs, principal); err != nil {
		h.logger.WarnContext(ctx, "set rotation order failed", "household_id", householdID, "duty_type_id", dutyTypeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string][]string{"member_ids": req.MemberIDs})
}

// RotateDutyNow runs the rotation engine for one duty type outside the
// schedule. The engine stays idempotent per period, so repeating the call
// within the same week is a no-op.
func (h *Handler) RotateDutyNow(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RotateDutyNow")
	defer span.End()

	householdID, principal, err := householdScope(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !principal.Privileged {
		writeError(ctx, w, fmt.Errorf("%w: rotating duties requires privilege", usecase.ErrUnauthorized))
		return
	}

	dutyTypeID := strings.TrimSpace(r.PathValue("dutyTypeID"))
	if err := h.rotationService.RotateWeekly(ctx, householdID, dutyTypeID, time.Now().UTC()); err != nil {
		h.logger.WarnContext(ctx, "manual rotation failed", "household_id", householdID, "duty_type_id", dutyTypeID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "rotated"})
}

func decodeDutyTypeUpsertRequest(r *http.Request) (dutyTypeUpsertRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req dutyTypeUpsertRequest
	if err := decoder.Decode(&req); err != nil {
		return dutyTypeUpsertRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return req, nil
}

func dutyTypeToDTO(v duty.Type) dutyTypeDTO {
	return dutyTypeDTO{
		ID:          v.ID,
		Name:        v.Name,
		Icon:        v.Icon,
		Description: v.Description,
		IsActive:    v.IsActive,
		CreatedAt:   v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
