// Package registry assembles the repositories and services shared by every
// binary: blob backend, set stores, repositories, services, and their
// observability decorators.
package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	manufacturermemory "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/adapters/memory"
	manufacturerobs "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/adapters/observability"
	manufacturersnapshot "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/adapters/persistence/snapshot"
	manufacturerapp "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/application"
	manufacturerports "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	souvenirmemory "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/adapters/memory"
	souvenirobs "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/adapters/observability"
	souvenirsnapshot "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/adapters/persistence/snapshot"
	souvenirapp "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/application"
	souvenirports "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/ports"
	"github.com/Apurer/souvenir-registry/internal/platform/blob"
	"github.com/Apurer/souvenir-registry/internal/platform/config"
	platformobservability "github.com/Apurer/souvenir-registry/internal/platform/observability"
	"github.com/Apurer/souvenir-registry/internal/platform/repository"
	"github.com/Apurer/souvenir-registry/internal/platform/setstore"
)

// Registry holds the wired components of one process.
type Registry struct {
	Blobs                  blob.Store
	ManufacturerRepository manufacturerports.Repository
	SouvenirRepository     souvenirports.Repository
	Manufacturers          manufacturerports.Service
	Souvenirs              souvenirports.Service
}

type settings struct {
	logger      *slog.Logger
	registerer  prometheus.Registerer
	instruments *platformobservability.Instruments
	blobs       blob.Store
}

type Option func(*settings)

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithRegisterer exposes set store metrics on r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(s *settings) {
		s.registerer = r
	}
}

// WithInstruments enables tracing and otel metrics on the services.
func WithInstruments(i *platformobservability.Instruments) Option {
	return func(s *settings) {
		s.instruments = i
	}
}

// WithBlobStore skips opening the configured backend and uses blobs instead.
func WithBlobStore(blobs blob.Store) Option {
	return func(s *settings) {
		s.blobs = blobs
	}
}

// New opens the configured blob backend and builds both domains on top of
// it. The cleanup releases the backend.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Registry, func(), error) {
	s := settings{}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cleanup := func() {}
	blobs := s.blobs
	if blobs == nil {
		opened, closeBlobs, err := blob.Open(ctx, cfg.Blob(), s.logger)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open %s blob store: %w", cfg.Storage.Driver, err)
		}
		blobs, cleanup = opened, closeBlobs
	}
	s.logger.Info("snapshot storage configured",
		slog.String("driver", string(blobs.Driver())),
		slog.String("manufacturers", cfg.Manufacturers.FilePath),
		slog.String("souvenirs", cfg.Souvenirs.FilePath),
	)

	storeOpts := []setstore.Option{setstore.WithLogger(s.logger)}
	if s.registerer != nil {
		storeOpts = append(storeOpts, setstore.WithMetrics(setstore.NewMetrics(s.registerer)))
	}
	repoOpts := []repository.Option{repository.WithLogger(s.logger)}

	manufacturerRepo := manufacturermemory.NewRepository(ctx, manufacturersnapshot.NewStore(blobs, cfg.Manufacturers.FilePath, storeOpts...), repoOpts...)
	souvenirRepo := souvenirmemory.NewRepository(ctx, souvenirsnapshot.NewStore(blobs, cfg.Souvenirs.FilePath, storeOpts...), repoOpts...)

	var manufacturers manufacturerports.Service = manufacturerapp.NewService(
		manufacturerRepo,
		souvenirRepo,
		manufacturerapp.WithLogger(s.logger),
	)
	var souvenirs souvenirports.Service = souvenirapp.NewService(souvenirRepo, manufacturerRepo)
	manufacturers = manufacturerobs.New(
		manufacturers,
		manufacturerobs.WithLogger(s.logger),
		manufacturerobs.WithTracer(s.instruments.Tracer("internal.manufacturers.application")),
		manufacturerobs.WithMeter(s.instruments.Meter("internal.manufacturers.application")),
	)
	souvenirs = souvenirobs.New(
		souvenirs,
		souvenirobs.WithLogger(s.logger),
		souvenirobs.WithTracer(s.instruments.Tracer("internal.souvenirs.application")),
		souvenirobs.WithMeter(s.instruments.Meter("internal.souvenirs.application")),
	)

	return &Registry{
		Blobs:                  blobs,
		ManufacturerRepository: manufacturerRepo,
		SouvenirRepository:     souvenirRepo,
		Manufacturers:          manufacturers,
		Souvenirs:              souvenirs,
	}, cleanup, nil
}
