package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/choreworld/choreworld/internal/domain/household"
	"github.com/choreworld/choreworld/internal/domain/jobdispatch"
	"github.com/choreworld/choreworld/internal/domain/schedule"
	"github.com/choreworld/choreworld/internal/platform/logging"
)

// JobQueue hands a job callback to the external scheduler backend.
type JobQueue interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type noopJobQueue struct{}

func (noopJobQueue) Enqueue(_ context.Context, _ string, _ any, _ time.Duration, _ string) error {
	return nil
}

func NewNoopJobQueue() JobQueue {
	return noopJobQueue{}
}

const (
	jobDailyDistribution = "daily-distribution"
	jobWeeklyRotation    = "weekly-rotation"

	jobDailyPath  = "/v1/internal/jobs/daily-distribution"
	jobWeeklyPath = "/v1/internal/jobs/weekly-rotation"

	jobStatusSuccess = "success"
	jobStatusFailed  = "failed"
)

type JobOrchestratorConfig struct {
	// DailyRunHour is the UTC hour the daily distribution fires.
	DailyRunHour int
	// WeeklyRunOffset delays the rotation past period-start midnight so the
	// period boundary is unambiguous.
	WeeklyRunOffset time.Duration
	MaxWorkers      int
	PeriodStartDay  time.Weekday
}

type JobRunInput struct {
	HouseholdID string
	Reference   time.Time
	Force       bool
}

type JobRunResult struct {
	Mode           string               `json:"mode"`
	HouseholdCount int                  `json:"household_count"`
	SucceededCount int                  `json:"succeeded_count"`
	FailedCount    int                  `json:"failed_count"`
	WorkerCount    int                  `json:"worker_count"`
	Households     []JobHouseholdResult `json:"households"`
	NextRunQueued  bool                 `json:"next_run_queued"`
}

type JobHouseholdResult struct {
	HouseholdID string `json:"household_id"`
	Status      string `json:"status"`
	DurationMs  int64  `json:"duration_ms"`
	Message     string `json:"message,omitempty"`
}

// JobOrchestratorService runs the scheduled engines across households and
// keeps the next trigger queued.
type JobOrchestratorService struct {
	householdRepo   household.Repository
	distributionSvc *DistributionService
	rotationSvc     *RotationService
	queue           JobQueue
	dispatchRepo    jobdispatch.Repository
	cfg             JobOrchestratorConfig
	logger          *logging.Logger
	now             func() time.Time
}

var dedupUnsafeCharRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

func NewJobOrchestratorService(
	householdRepo household.Repository,
	distributionSvc *DistributionService,
	rotationSvc *RotationService,
	queue JobQueue,
	dispatchRepo jobdispatch.Repository,
	cfg JobOrchestratorConfig,
	logger *logging.Logger,
) *JobOrchestratorService {
	if queue == nil {
		queue = NewNoopJobQueue()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DailyRunHour < 0 || cfg.DailyRunHour > 23 {
		cfg.DailyRunHour = 1
	}
	if cfg.WeeklyRunOffset <= 0 {
		cfg.WeeklyRunOffset = time.Minute
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 4
	}
	if cfg.PeriodStartDay < time.Sunday || cfg.PeriodStartDay > time.Saturday {
		cfg.PeriodStartDay = schedule.DefaultPeriodStart
	}

	return &JobOrchestratorService{
		householdRepo:   householdRepo,
		distributionSvc: distributionSvc,
		rotationSvc:     rotationSvc,
		queue:           queue,
		dispatchRepo:    dispatchRepo,
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
	}
}

// RunDailyDistribution distributes chores for every targeted household and
// queues the next daily trigger.
func (s *JobOrchestratorService) RunDailyDistribution(ctx context.Context, input JobRunInput) (JobRunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.RunDailyDistribution")
	defer span.End()

	ref := input.Reference
	if ref.IsZero() {
		ref = s.now().UTC()
	}

	result, err := s.fanOut(ctx, jobDailyDistribution, input.HouseholdID, func(ctx context.Context, h household.Household) error {
		return s.distributionSvc.DistributeDaily(ctx, h.ID, ref)
	})
	if err != nil {
		return JobRunResult{}, err
	}

	delay := s.nextDailyDelay(ref)
	if input.Force {
		delay = 0
	}
	if err := s.enqueueJob(ctx, jobDailyDistribution, jobDailyPath, delay, 24*time.Hour); err != nil {
		s.logger.WarnContext(ctx, "enqueue next daily distribution failed", "error", err)
	} else {
		result.NextRunQueued = true
	}

	return result, nil
}

// RunWeeklyRotation rotates every active duty of every targeted household and
// queues the next weekly trigger.
func (s *JobOrchestratorService) RunWeeklyRotation(ctx context.Context, input JobRunInput) (JobRunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.RunWeeklyRotation")
	defer span.End()

	ref := input.Reference
	if ref.IsZero() {
		ref = s.now().UTC()
	}

	result, err := s.fanOut(ctx, jobWeeklyRotation, input.HouseholdID, func(ctx context.Context, h household.Household) error {
		return s.rotationSvc.RotateAll(ctx, h.ID, ref)
	})
	if err != nil {
		return JobRunResult{}, err
	}

	delay, derr := s.nextWeeklyDelay(ref)
	if derr != nil {
		return JobRunResult{}, derr
	}
	if input.Force {
		delay = 0
	}
	if err := s.enqueueJob(ctx, jobWeeklyRotation, jobWeeklyPath, delay, 7*24*time.Hour); err != nil {
		s.logger.WarnContext(ctx, "enqueue next weekly rotation failed", "error", err)
	} else {
		result.NextRunQueued = true
	}

	return result, nil
}

// Bootstrap queues the first trigger of both jobs, used once at rollout.
func (s *JobOrchestratorService) Bootstrap(ctx context.Context) (JobRunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.JobOrchestratorService.Bootstrap")
	defer span.End()

	now := s.now().UTC()
	if err := s.enqueueJob(ctx, jobDailyDistribution, jobDailyPath, s.nextDailyDelay(now), 24*time.Hour); err != nil {
		return JobRunResult{}, err
	}
	weeklyDelay, err := s.nextWeeklyDelay(now)
	if err != nil {
		return JobRunResult{}, err
	}
	if err := s.enqueueJob(ctx, jobWeeklyRotation, jobWeeklyPath, weeklyDelay, 7*24*time.Hour); err != nil {
		return JobRunResult{}, err
	}

	return JobRunResult{Mode: "bootstrap", NextRunQueued: true}, nil
}

func (s *JobOrchestratorService) fanOut(
	ctx context.Context,
	mode string,
	householdID string,
	run func(ctx context.Context, h household.Household) error,
) (JobRunResult, error) {
	households, err := s.pickHouseholds(ctx, householdID)
	if err != nil {
		return JobRunResult{}, err
	}

	workerCount := s.cfg.MaxWorkers
	if workerCount > len(households) {
		workerCount = len(households)
	}
	if workerCount < 1 {
		workerCount = 1
	}

	result := JobRunResult{
		Mode:           mode,
		HouseholdCount: len(households),
		WorkerCount:    workerCount,
		Households:     make([]JobHouseholdResult, 0, len(households)),
	}
	if len(households) == 0 {
		return result, nil
	}

	rows := make(chan JobHouseholdResult, len(households))
	var succeeded atomic.Int32
	var failed atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return JobRunResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, h := range households {
		h := h
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := JobHouseholdResult{HouseholdID: h.ID, Status: jobStatusSuccess}
			if runErr := run(ctx, h); runErr != nil {
				row.Status = jobStatusFailed
				row.Message = runErr.Error()
				failed.Add(1)
			} else {
				succeeded.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()
			rows <- row
		}); err != nil {
			workers.Done()
			return JobRunResult{}, fmt.Errorf("submit household job to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Households = append(result.Households, row)
	}
	sort.SliceStable(result.Households, func(i, j int) bool {
		return result.Households[i].HouseholdID < result.Households[j].HouseholdID
	})

	result.SucceededCount = int(succeeded.Load())
	result.FailedCount = int(failed.Load())
	return result, nil
}

func (s *JobOrchestratorService) pickHouseholds(ctx context.Context, householdID string) ([]household.Household, error) {
	householdID = strings.TrimSpace(householdID)
	if householdID == "" {
		items, err := s.householdRepo.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("list households for jobs: %w", err)
		}
		return items, nil
	}

	item, exists, err := s.householdRepo.GetByID(ctx, householdID)
	if err != nil {
		return nil, fmt.Errorf("get household for jobs: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: household=%s", ErrNotFound, householdID)
	}

	return []household.Household{item}, nil
}

func (s *JobOrchestratorService) enqueueJob(ctx context.Context, jobName, jobPath string, delay time.Duration, bucket time.Duration) error {
	now := s.now().UTC()
	dedupID := dedupKey(jobName, now.Add(delay), bucket)
	payload := map[string]any{
		"dispatch_id":   dedupID,
		"scheduled_for": now.Add(delay).Format(time.RFC3339),
	}

	if err := s.queue.Enqueue(ctx, jobPath, payload, delay, dedupID); err != nil {
		s.recordDispatchEvent(ctx, jobdispatch.Event{
			DispatchID:   dedupID,
			JobName:      jobName,
			JobPath:      jobPath,
			Status:       jobdispatch.StatusFailed,
			Payload:      payload,
			ErrorMessage: err.Error(),
			OccurredAt:   now,
		})
		return fmt.Errorf("enqueue %s: %w", jobName, err)
	}

	s.recordDispatchEvent(ctx, jobdispatch.Event{
		DispatchID: dedupID,
		JobName:    jobName,
		JobPath:    jobPath,
		Status:     jobdispatch.StatusSent,
		Payload:    payload,
		OccurredAt: now,
	})
	return nil
}

func (s *JobOrchestratorService) nextDailyDelay(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.cfg.DailyRunHour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}

func (s *JobOrchestratorService) nextWeeklyDelay(now time.Time) (time.Duration, error) {
	now = now.UTC()
	period, err := schedule.PeriodContaining(now, s.cfg.PeriodStartDay)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	next := period.Start.AddDate(0, 0, 7).Add(s.cfg.WeeklyRunOffset)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next.Sub(now), nil
}

func dedupKey(jobName string, at time.Time, bucket time.Duration) string {
	if bucket <= 0 {
		bucket = time.Minute
	}
	slot := at.UTC().Truncate(bucket).Format("20060102T150405Z")
	return sanitizeDedupSegment(jobName) + "-" + slot
}

func sanitizeDedupSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return dedupUnsafeCharRegex.ReplaceAllString(value, "-")
}

func (s *JobOrchestratorService) recordDispatchEvent(ctx context.Context, event jobdispatch.Event) {
	if s.dispatchRepo == nil || strings.TrimSpace(event.DispatchID) == "" {
		return
	}
	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.dispatchRepo.UpsertEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job dispatch event failed",
			"dispatch_id", event.DispatchID,
			"status", event.Status,
			"error", err,
		)
	}
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
