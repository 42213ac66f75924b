package observability

import (
	"context"
	"strings"

	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

// initTracing points the global OpenTelemetry providers at Uptrace and, when
// log export is on, installs a mirror that copies every log record into the
// OTLP pipeline. Disabled configs leave a noop shutdown so callers never
// branch.
func initTracing(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if reason, off := tracingOff(cfg); off {
		logging.SetMirror(nil)
		logger.Info("uptrace disabled", "reason", reason)
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(tracingOptions(cfg)...)

	var mirror logging.MirrorFunc
	if cfg.UptraceLogsEnabled {
		mirror = newUptraceLogMirror(cfg.ServiceVersion)
	}
	logging.SetMirror(mirror)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}

func tracingOff(cfg config.Config) (reason string, off bool) {
	switch {
	case !cfg.UptraceEnabled:
		return "UPTRACE_ENABLED=false", true
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		return "UPTRACE_DSN empty", true
	}
	return "", false
}

func tracingOptions(cfg config.Config) []uptrace.Option {
	return []uptrace.Option{
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	}
}

func noopShutdown(context.Context) error { return nil }
