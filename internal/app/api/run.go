package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Apurer/souvenir-registry/internal/app/registry"
	manufacturerworkflows "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/adapters/workflows"
	manufacturerports "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	"github.com/Apurer/souvenir-registry/internal/platform/config"
	platformobservability "github.com/Apurer/souvenir-registry/internal/platform/observability"
	platformtemporal "github.com/Apurer/souvenir-registry/internal/platform/temporal"
	manufactureractivities "github.com/Apurer/souvenir-registry/internal/platform/temporal/activities/manufacturers"
)

const serviceName = "souvenir-registry-api"

// Run boots the registry HTTP API with observability, repositories, and
// workflows wired. It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	reg, cleanup, err := registry.New(ctx, cfg,
		registry.WithLogger(logger),
		registry.WithRegisterer(instruments.Registry),
		registry.WithInstruments(instruments),
	)
	if err != nil {
		return err
	}
	defer cleanup()

	workflows, stopWorkflows := buildWorkflows(cfg, reg, instruments)
	defer stopWorkflows()

	router := NewRouter(serviceName, reg, workflows, instruments.Registry)
	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Souvenir registry API listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Souvenir registry API server exited", slog.String("addr", srv.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("Souvenir registry API stopped")
	return nil
}

// buildWorkflows returns the Temporal orchestrator, with its worker running
// in this process, when Temporal is enabled and reachable. Otherwise the
// cascade runs inline.
func buildWorkflows(cfg config.Config, reg *registry.Registry, instruments *platformobservability.Instruments) (manufacturerports.WorkflowOrchestrator, func()) {
	logger := instruments.Logger
	inline := manufacturerworkflows.NewInlineWorkflows(reg.Manufacturers)
	if !cfg.Temporal.Enabled {
		logger.Info("Temporal disabled, running manufacturer deletion inline")
		return inline, func() {}
	}

	temporalCfg := platformtemporal.Config{
		Address:   cfg.Temporal.Address,
		Namespace: cfg.Temporal.Namespace,
		TaskQueue: cfg.Temporal.TaskQueue,
	}
	c, err := platformtemporal.Dial(temporalCfg, logger, instruments.Tracer("temporal-client"))
	if err != nil {
		logger.Warn("Temporal workflows unavailable, running manufacturer deletion inline", slog.String("error", err.Error()))
		return inline, func() {}
	}

	activities := manufactureractivities.NewActivities(reg.ManufacturerRepository, reg.SouvenirRepository)
	w := platformtemporal.NewWorker(c, cfg.Temporal.TaskQueue, activities)
	if err := w.Start(); err != nil {
		c.Close()
		logger.Warn("Temporal worker failed to start, running manufacturer deletion inline", slog.String("error", err.Error()))
		return inline, func() {}
	}

	logger.Info("Temporal workflows enabled",
		slog.String("namespace", cfg.Temporal.Namespace),
		slog.String("taskQueue", platformtemporal.TaskQueue(cfg.Temporal.TaskQueue)),
	)
	return manufacturerworkflows.NewTemporalWorkflows(c, cfg.Temporal.TaskQueue), func() {
		w.Stop()
		c.Close()
	}
}
