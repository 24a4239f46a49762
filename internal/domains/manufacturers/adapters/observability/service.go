package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/domain"
	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
)

const tracerName = "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/adapters/observability/service"

// Service decorates the manufacturer service with tracing, logging, and metrics.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core manufacturer service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) AddManufacturer(ctx context.Context, m *domain.Manufacturer) (*domain.Manufacturer, error) {
	ctx, span := s.tracer.Start(ctx, "ManufacturerService.AddManufacturer",
		trace.WithAttributes(attribute.String("manufacturer.name", nameOf(m))))
	defer span.End()

	s.logInfo(ctx, "adding manufacturer", slog.String("manufacturer.name", nameOf(m)))
	result, err := s.inner.AddManufacturer(ctx, m)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add manufacturer", slog.String("manufacturer.name", nameOf(m)))
	}
	span.SetAttributes(attribute.Int64("manufacturer.id", result.ID))
	s.metrics.recordMutation(ctx, "add")
	s.logInfo(ctx, "manufacturer added", slog.Int64("manufacturer.id", result.ID))
	return result, nil
}

func (s *Service) UpdateManufacturer(ctx context.Context, m *domain.Manufacturer) (*domain.Manufacturer, error) {
	ctx, span := s.tracer.Start(ctx, "ManufacturerService.UpdateManufacturer",
		trace.WithAttributes(attribute.Int64("manufacturer.id", idOf(m))))
	defer span.End()

	s.logInfo(ctx, "updating manufacturer", slog.Int64("manufacturer.id", idOf(m)))
	result, err := s.inner.UpdateManufacturer(ctx, m)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update manufacturer", slog.Int64("manufacturer.id", idOf(m)))
	}
	s.metrics.recordMutation(ctx, "update")
	s.logInfo(ctx, "manufacturer updated", slog.Int64("manufacturer.id", result.ID))
	return result, nil
}

func (s *Service) DeleteManufacturer(ctx context.Context, id int64) (*ports.DeletionReport, error) {
	ctx, span := s.tracer.Start(ctx, "ManufacturerService.DeleteManufacturer",
		trace.WithAttributes(attribute.Int64("manufacturer.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting manufacturer", slog.Int64("manufacturer.id", id))
	report, err := s.inner.DeleteManufacturer(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to delete manufacturer", slog.Int64("manufacturer.id", id))
	}
	span.SetAttributes(
		attribute.Int("cascade.removed", len(report.RemovedSouvenirs)),
		attribute.Int("cascade.failed", len(report.FailedSouvenirs)),
	)
	s.metrics.recordMutation(ctx, "delete")
	s.metrics.recordCascade(ctx, len(report.RemovedSouvenirs))
	if !report.Complete() {
		span.SetStatus(codes.Error, "cascade incomplete")
		s.logger.LogAttrs(ctx, slog.LevelWarn, "manufacturer deleted with orphaned souvenirs",
			slog.Int64("manufacturer.id", id), slog.Any("souvenir.ids", report.FailedSouvenirs))
		return report, nil
	}
	s.logInfo(ctx, "manufacturer deleted", slog.Int64("manufacturer.id", id), slog.Int("souvenirs.removed", len(report.RemovedSouvenirs)))
	return report, nil
}

func (s *Service) GetManufacturer(ctx context.Context, id int64) (*domain.Manufacturer, error) {
	ctx, span := s.tracer.Start(ctx, "ManufacturerService.GetManufacturer",
		trace.WithAttributes(attribute.Int64("manufacturer.id", id)))
	defer span.End()

	result, err := s.inner.GetManufacturer(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load manufacturer", slog.Int64("manufacturer.id", id))
	}
	return result, nil
}

func (s *Service) ListManufacturers(ctx context.Context) ([]*domain.Manufacturer, error) {
	ctx, span := s.tracer.Start(ctx, "ManufacturerService.ListManufacturers")
	defer span.End()

	result, err := s.inner.ListManufacturers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list manufacturers")
	}
	span.SetAttributes(attribute.Int("manufacturers.count", len(result)))
	return result, nil
}

func (s *Service) ManufacturersByMaxPrice(ctx context.Context, price float64) ([]*domain.Manufacturer, error) {
	ctx, span := s.tracer.Start(ctx, "ManufacturerService.ManufacturersByMaxPrice",
		trace.WithAttributes(attribute.Float64("price.max", price)))
	defer span.End()

	result, err := s.inner.ManufacturersByMaxPrice(ctx, price)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to filter manufacturers by price", slog.Float64("price.max", price))
	}
	span.SetAttributes(attribute.Int("manufacturers.count", len(result)))
	return result, nil
}

func (s *Service) ManufacturersWithSouvenirs(ctx context.Context) ([]ports.Catalog, error) {
	ctx, span := s.tracer.Start(ctx, "ManufacturerService.ManufacturersWithSouvenirs")
	defer span.End()

	result, err := s.inner.ManufacturersWithSouvenirs(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build manufacturer catalog")
	}
	span.SetAttributes(attribute.Int("manufacturers.count", len(result)))
	return result, nil
}

func (s *Service) ManufacturersOfSouvenirByYear(ctx context.Context, name string, year int) ([]*domain.Manufacturer, error) {
	ctx, span := s.tracer.Start(ctx, "ManufacturerService.ManufacturersOfSouvenirByYear",
		trace.WithAttributes(attribute.String("souvenir.name", name), attribute.Int("souvenir.year", year)))
	defer span.End()

	result, err := s.inner.ManufacturersOfSouvenirByYear(ctx, name, year)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to find manufacturers of souvenir",
			slog.String("souvenir.name", name), slog.Int("souvenir.year", year))
	}
	span.SetAttributes(attribute.Int("manufacturers.count", len(result)))
	return result, nil
}

func (s *Service) Countries(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "ManufacturerService.Countries")
	defer span.End()

	result, err := s.inner.Countries(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list countries")
	}
	span.SetAttributes(attribute.Int("countries.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func nameOf(m *domain.Manufacturer) string {
	if m == nil {
		return ""
	}
	return m.Name
}

func idOf(m *domain.Manufacturer) int64 {
	if m == nil {
		return 0
	}
	return m.ID
}

type serviceMetrics struct {
	mutations        metric.Int64Counter
	cascadeSouvenirs metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("manufacturers.service.mutations", metric.WithDescription("Number of successful manufacturer writes"))
	cascade, _ := m.Int64Counter("manufacturers.service.cascade_souvenirs", metric.WithDescription("Number of souvenirs removed by manufacturer deletes"))
	return serviceMetrics{mutations: mutations, cascadeSouvenirs: cascade}
}

func (m serviceMetrics) recordMutation(ctx context.Context, operation string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
	}
}

func (m serviceMetrics) recordCascade(ctx context.Context, removed int) {
	if m.cascadeSouvenirs != nil && removed > 0 {
		m.cascadeSouvenirs.Add(ctx, int64(removed))
	}
}

var _ ports.Service = (*Service)(nil)
