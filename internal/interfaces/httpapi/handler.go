package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/choreworld/choreworld/internal/domain/jobdispatch"
	"github.com/choreworld/choreworld/internal/domain/member"
	"github.com/choreworld/choreworld/internal/platform/logging"
	"github.com/choreworld/choreworld/internal/usecase"
)

type Handler struct {
	choreService        *usecase.ChoreService
	dutyService         *usecase.DutyService
	assignmentService   *usecase.AssignmentService
	progressionService  *usecase.ProgressionService
	distributionService *usecase.DistributionService
	rotationService     *usecase.RotationService
	jobOrchestrator     *usecase.JobOrchestratorService
	jobDispatchRepo     jobdispatch.Repository
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(
	choreService *usecase.ChoreService,
	dutyService *usecase.DutyService,
	assignmentService *usecase.AssignmentService,
	progressionService *usecase.ProgressionService,
	distributionService *usecase.DistributionService,
	rotationService *usecase.RotationService,
	jobOrchestrator *usecase.JobOrchestratorService,
	jobDispatchRepo jobdispatch.Repository,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		choreService:        choreService,
		dutyService:         dutyService,
		assignmentService:   assignmentService,
		progressionService:  progressionService,
		distributionService: distributionService,
		rotationService:     rotationService,
		jobOrchestrator:     jobOrchestrator,
		jobDispatchRepo:     jobDispatchRepo,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// householdScope resolves the household path segment and checks the caller
// belongs to it. Privileged principals may reach into any household.
func householdScope(ctx context.Context, r *http.Request) (string, member.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return "", member.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}

	householdID := strings.TrimSpace(r.PathValue("householdID"))
	if householdID == "" {
		return "", member.Principal{}, fmt.Errorf("%w: household id is required", usecase.ErrInvalidInput)
	}
	if !principal.Privileged && principal.HouseholdID != householdID {
		return "", member.Principal{}, fmt.Errorf("%w: member=%s does not belong to household=%s", usecase.ErrUnauthorized, principal.MemberID, householdID)
	}

	return householdID, principal, nil
}

// parseDateParam reads an optional YYYY-MM-DD query value. A zero time means
// the caller did not pin a date.
func parseDateParam(r *http.Request, key string) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return time.Time{}, nil
	}

	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s, expected YYYY-MM-DD: %v", usecase.ErrInvalidInput, key, err)
	}
	return parsed, nil
}
