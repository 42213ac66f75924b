package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/internal/domain/assignment"
	"github.com/choreworld/choreworld/internal/domain/chore"
	"github.com/choreworld/choreworld/internal/domain/duty"
	"github.com/choreworld/choreworld/internal/domain/household"
	"github.com/choreworld/choreworld/internal/domain/jobdispatch"
	"github.com/choreworld/choreworld/internal/domain/member"
	"github.com/choreworld/choreworld/internal/domain/progression"
	"github.com/choreworld/choreworld/internal/infrastructure/account/accountsvc"
	"github.com/choreworld/choreworld/internal/infrastructure/jobqueue"
	cachedrepo "github.com/choreworld/choreworld/internal/infrastructure/repository/cache"
	"github.com/choreworld/choreworld/internal/infrastructure/repository/memory"
	"github.com/choreworld/choreworld/internal/infrastructure/repository/postgres"
	"github.com/choreworld/choreworld/internal/interfaces/httpapi"
	"github.com/choreworld/choreworld/internal/platform/cache"
	idgen "github.com/choreworld/choreworld/internal/platform/id"
	"github.com/choreworld/choreworld/internal/platform/logging"
	"github.com/choreworld/choreworld/internal/platform/resilience"
	"github.com/choreworld/choreworld/internal/usecase"
)

type repositories struct {
	households  household.Repository
	members     member.Repository
	chores      chore.Repository
	duties      duty.Repository
	assignments assignment.Repository
	progression progression.Repository
	dispatches  jobdispatch.Repository
	close       func() error
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.NewJSON(cfg.LogLevel)
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CacheEnabled {
		catalogCache := cache.NewStore(cfg.CacheTTL)
		repos.households = cachedrepo.NewHouseholdRepository(repos.households, catalogCache)
		repos.members = cachedrepo.NewMemberRepository(repos.members, catalogCache)
		repos.chores = cachedrepo.NewChoreRepository(repos.chores, catalogCache)
		repos.duties = cachedrepo.NewDutyRepository(repos.duties, catalogCache)
	}

	gen := idgen.NewRandomGenerator()

	var boardCache *cache.Store
	if cfg.CacheEnabled {
		boardCache = cache.NewStore(cfg.CacheTTL)
	}

	progressionSvc := usecase.NewProgressionService(repos.members, repos.progression, boardCache, logger)
	choreSvc := usecase.NewChoreService(repos.chores, gen, logger)
	dutySvc := usecase.NewDutyService(repos.duties, repos.members, repos.assignments, gen, logger)
	assignmentSvc := usecase.NewAssignmentService(
		repos.members,
		repos.chores,
		repos.assignments,
		progressionSvc,
		gen,
		cfg.PeriodStartWeekday,
		logger,
	)
	distributionSvc := usecase.NewDistributionService(repos.members, repos.chores, repos.assignments, gen, logger)
	rotationSvc := usecase.NewRotationService(repos.members, repos.duties, repos.assignments, gen, cfg.PeriodStartWeekday, logger)

	var queue usecase.JobQueue = usecase.NewNoopJobQueue()
	if cfg.QStashEnabled {
		queue = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				ProbeLimit:       cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
	}

	orchestrator := usecase.NewJobOrchestratorService(
		repos.households,
		distributionSvc,
		rotationSvc,
		queue,
		repos.dispatches,
		usecase.JobOrchestratorConfig{
			DailyRunHour:    cfg.DailyRunHour,
			WeeklyRunOffset: cfg.WeeklyRunOffset,
			MaxWorkers:      cfg.JobMaxWorkers,
			PeriodStartDay:  cfg.PeriodStartWeekday,
		},
		logger,
	)

	verifier := accountsvc.NewClient(
		&http.Client{Timeout: cfg.AccountTimeout},
		cfg.AccountBaseURL,
		cfg.AccountIntrospectPath,
		cfg.AccountAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCircuitEnabled,
			FailureThreshold: cfg.AccountCircuitFailureCount,
			OpenTimeout:      cfg.AccountCircuitOpenTimeout,
			ProbeLimit:       cfg.AccountCircuitHalfOpenMaxReq,
		},
		cfg.AccountPrincipalCacheTTL,
		logger,
	)

	handler := httpapi.NewHandler(
		choreSvc,
		dutySvc,
		assignmentSvc,
		progressionSvc,
		distributionSvc,
		rotationSvc,
		orchestrator,
		repos.dispatches,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func(context.Context) error {
		if repos.close == nil {
			return nil
		}
		return repos.close()
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	dbURL := cfg.DBURL
	if dbURL == "" {
		return buildMemoryRepositories(logger), nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, err
	}

	seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.BootstrapSeed(seedCtx, db); err != nil {
		_ = db.Close()
		return repositories{}, fmt.Errorf("seed database: %w", err)
	}

	logger.Info("using postgres repositories", "db_name", dbNameFromURL(dbURL))
	return repositories{
		households:  postgres.NewHouseholdRepository(db),
		members:     postgres.NewMemberRepository(db),
		chores:      postgres.NewChoreRepository(db),
		duties:      postgres.NewDutyRepository(db),
		assignments: postgres.NewAssignmentRepository(db),
		progression: postgres.NewProgressionRepository(db),
		dispatches:  postgres.NewJobDispatchRepository(db),
		close:       db.Close,
	}, nil
}

func buildMemoryRepositories(logger *logging.Logger) repositories {
	logger.Info("using in-memory repositories", "reason", "DB_URL empty")
	return repositories{
		households:  memory.NewHouseholdRepository(memory.SeedHouseholds()),
		members:     memory.NewMemberRepository(memory.SeedMembers()),
		chores:      memory.NewChoreRepository(memory.SeedChores()),
		duties:      memory.NewDutyRepository(memory.SeedDutyTypes()),
		assignments: memory.NewAssignmentRepository(),
		progression: memory.NewProgressionRepository(),
		dispatches:  memory.NewJobDispatchRepository(),
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.name", dbNameFromURL(cfg.DBURL)),
		),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
