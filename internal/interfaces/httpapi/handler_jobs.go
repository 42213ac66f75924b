package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/trace"

	"github.com/choreworld/choreworld/internal/domain/jobdispatch"
	"github.com/choreworld/choreworld/internal/usecase"
)

var internalJobDispatchUnsafeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

type internalJobRunRequest struct {
	HouseholdID string `json:"household_id"`
	Force       bool   `json:"force"`
	DispatchID  string `json:"dispatch_id"`
}

func (h *Handler) RunDailyDistributionJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunDailyDistributionJob")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeInternalJobRunRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.jobOrchestrator.RunDailyDistribution(ctx, usecase.JobRunInput{
		HouseholdID: req.HouseholdID,
		Force:       req.Force,
	})
	if err != nil {
		h.recordInternalJobDispatch(ctx, req, jobdispatch.Event{
			JobName:      "daily-distribution",
			JobPath:      "/v1/internal/jobs/daily-distribution",
			HouseholdID:  req.HouseholdID,
			Status:       jobdispatch.StatusFailed,
			Payload:      buildInternalJobPayload(req),
			ErrorMessage: err.Error(),
			OccurredAt:   time.Now().UTC(),
		})
		h.logger.WarnContext(ctx, "run daily distribution job failed", "household_id", req.HouseholdID, "force", req.Force, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.recordInternalJobDispatch(ctx, req, jobdispatch.Event{
		JobName:     "daily-distribution",
		JobPath:     "/v1/internal/jobs/daily-distribution",
		HouseholdID: req.HouseholdID,
		Status:      jobdispatch.StatusCompleted,
		Payload:     buildInternalJobPayload(req),
		OccurredAt:  time.Now().UTC(),
	})

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunWeeklyRotationJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWeeklyRotationJob")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeInternalJobRunRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.jobOrchestrator.RunWeeklyRotation(ctx, usecase.JobRunInput{
		HouseholdID: req.HouseholdID,
		Force:       req.Force,
	})
	if err != nil {
		h.recordInternalJobDispatch(ctx, req, jobdispatch.Event{
			JobName:      "weekly-rotation",
			JobPath:      "/v1/internal/jobs/weekly-rotation",
			HouseholdID:  req.HouseholdID,
			Status:       jobdispatch.StatusFailed,
			Payload:      buildInternalJobPayload(req),
			ErrorMessage: err.Error(),
			OccurredAt:   time.Now().UTC(),
		})
		h.logger.WarnContext(ctx, "run weekly rotation job failed", "household_id", req.HouseholdID, "force", req.Force, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.recordInternalJobDispatch(ctx, req, jobdispatch.Event{
		JobName:     "weekly-rotation",
		JobPath:     "/v1/internal/jobs/weekly-rotation",
		HouseholdID: req.HouseholdID,
		Status:      jobdispatch.StatusCompleted,
		Payload:     buildInternalJobPayload(req),
		OccurredAt:  time.Now().UTC(),
	})

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunBootstrapJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBootstrapJob")
	defer span.End()

	if h.jobOrchestrator == nil {
		writeError(ctx, w, fmt.Errorf("%w: job orchestrator is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	req, err := decodeInternalJobRunRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.jobOrchestrator.Bootstrap(ctx)
	if err != nil {
		h.recordInternalJobDispatch(ctx, req, jobdispatch.Event{
			JobName:      "bootstrap",
			JobPath:      "/v1/internal/jobs/bootstrap",
			Status:       jobdispatch.StatusFailed,
			Payload:      buildInternalJobPayload(req),
			ErrorMessage: err.Error(),
			OccurredAt:   time.Now().UTC(),
		})
		h.logger.WarnContext(ctx, "run bootstrap job failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	h.recordInternalJobDispatch(ctx, req, jobdispatch.Event{
		JobName:    "bootstrap",
		JobPath:    "/v1/internal/jobs/bootstrap",
		Status:     jobdispatch.StatusCompleted,
		Payload:    buildInternalJobPayload(req),
		OccurredAt: time.Now().UTC(),
	})

	writeSuccess(ctx, w, http.StatusOK, result)
}

func decodeInternalJobRunRequest(r *http.Request) (internalJobRunRequest, error) {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req internalJobRunRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return internalJobRunRequest{}, nil
		}
		return internalJobRunRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

func (h *Handler) recordInternalJobDispatch(ctx context.Context, req internalJobRunRequest, event jobdispatch.Event) {
	if h.jobDispatchRepo == nil {
		return
	}

	dispatchID := strings.TrimSpace(req.DispatchID)
	if dispatchID == "" {
		dispatchID = buildManualDispatchID(event.JobName, req.HouseholdID, event.OccurredAt)
	}
	event.DispatchID = dispatchID

	traceID, spanID := handlerTraceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID

	if err := h.jobDispatchRepo.UpsertEvent(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "record internal job dispatch failed",
			"dispatch_id", event.DispatchID,
			"job_name", event.JobName,
			"status", event.Status,
			"error", err,
		)
	}
}

func buildInternalJobPayload(req internalJobRunRequest) map[string]any {
	payload := map[string]any{
		"household_id": req.HouseholdID,
		"force":        req.Force,
	}
	if strings.TrimSpace(req.DispatchID) != "" {
		payload["dispatch_id"] = req.DispatchID
	}
	return payload
}

func buildManualDispatchID(jobName, householdID string, now time.Time) string {
	jobName = sanitizeDispatchPart(jobName)
	householdID = sanitizeDispatchPart(householdID)
	ts := now.UTC().Format("20060102T150405.000000000Z")
	return "manual-" + jobName + "-" + householdID + "-" + ts
}

func sanitizeDispatchPart(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return internalJobDispatchUnsafeRegex.ReplaceAllString(value, "-")
}

func handlerTraceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
