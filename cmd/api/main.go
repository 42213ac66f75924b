package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/choreworld/choreworld/internal/app"
	"github.com/choreworld/choreworld/internal/config"
	"github.com/choreworld/choreworld/internal/observability"
	"github.com/choreworld/choreworld/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	baseLogger := logging.NewJSON(cfg.LogLevel)
	logger, stopObservability, err := observability.Setup(cfg, baseLogger)
	if err != nil {
		baseLogger.Error("init observability", "error", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	srv, cleanup, err := app.NewHTTPServer(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := cleanup(shutdownCtx); err != nil {
		logger.Error("close repositories", "error", err)
	}
	if err := stopObservability(shutdownCtx); err != nil {
		baseLogger.Error("stop observability stack", "error", err)
	}

	logger.Info("http server stopped")
}
