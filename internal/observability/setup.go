package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/internal/platform/logging"
)

const pprofStopTimeout = 5 * time.Second

// Setup boots the log shipper, tracing, the continuous profiler and the
// pprof listener, in that order, so each component logs through the shipper
// fanout. The returned logger should become the process default. The
// returned shutdown stops the components in reverse order, the shipper last
// so teardown logs still reach it.
func Setup(cfg config.Config, baseLogger *logging.Logger) (*logging.Logger, func(context.Context) error, error) {
	logger, stopLogShipper, err := InitBetterStackLogger(cfg, baseLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("init log shipper: %w", err)
	}

	shutdownTracing, err := initTracing(cfg, logger)
	if err != nil {
		_ = stopLogShipper(context.Background())
		return nil, nil, fmt.Errorf("init tracing: %w", err)
	}

	stopProfiler, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = shutdownTracing(context.Background())
		_ = stopLogShipper(context.Background())
		return nil, nil, fmt.Errorf("init pyroscope: %w", err)
	}

	pprofSrv, err := StartPprofServer(cfg, logger)
	if err != nil {
		_ = stopProfiler()
		_ = shutdownTracing(context.Background())
		_ = stopLogShipper(context.Background())
		return nil, nil, fmt.Errorf("start pprof server: %w", err)
	}

	shutdown := func(ctx context.Context) error {
		var errs []error
		if err := StopPprofServer(pprofSrv, logger, pprofStopTimeout); err != nil {
			errs = append(errs, fmt.Errorf("stop pprof server: %w", err))
		}
		if err := stopProfiler(); err != nil {
			errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
		}
		if err := shutdownTracing(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown tracing: %w", err))
		}
		if err := stopLogShipper(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop log shipper: %w", err))
		}
		return errors.Join(errs...)
	}

	return logger, shutdown, nil
}
