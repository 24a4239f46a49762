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

	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/domain"
	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/ports"
)

const tracerName = "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/adapters/observability/service"

// Service decorates the souvenir service with tracing, logging, and metrics.
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

// New wraps the core souvenir service.
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

func (s *Service) AddSouvenir(ctx context.Context, souvenir *domain.Souvenir) (*domain.Souvenir, error) {
	attrs := souvenirAttrs(souvenir)
	ctx, span := s.tracer.Start(ctx, "SouvenirService.AddSouvenir", trace.WithAttributes(attrs...))
	defer span.End()

	s.logInfo(ctx, "adding souvenir", slog.String("souvenir.name", nameOf(souvenir)), slog.Int64("manufacturer.id", manufacturerOf(souvenir)))
	result, err := s.inner.AddSouvenir(ctx, souvenir)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add souvenir", slog.String("souvenir.name", nameOf(souvenir)))
	}
	span.SetAttributes(attribute.Int64("souvenir.id", result.ID))
	s.metrics.recordMutation(ctx, "add")
	s.logInfo(ctx, "souvenir added", slog.Int64("souvenir.id", result.ID))
	return result, nil
}

func (s *Service) UpdateSouvenir(ctx context.Context, souvenir *domain.Souvenir) (*domain.Souvenir, error) {
	attrs := souvenirAttrs(souvenir)
	ctx, span := s.tracer.Start(ctx, "SouvenirService.UpdateSouvenir", trace.WithAttributes(attrs...))
	defer span.End()

	s.logInfo(ctx, "updating souvenir", slog.Int64("souvenir.id", idOf(souvenir)))
	result, err := s.inner.UpdateSouvenir(ctx, souvenir)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update souvenir", slog.Int64("souvenir.id", idOf(souvenir)))
	}
	s.metrics.recordMutation(ctx, "update")
	s.logInfo(ctx, "souvenir updated", slog.Int64("souvenir.id", result.ID))
	return result, nil
}

func (s *Service) DeleteSouvenir(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "SouvenirService.DeleteSouvenir", trace.WithAttributes(attribute.Int64("souvenir.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting souvenir", slog.Int64("souvenir.id", id))
	if err := s.inner.DeleteSouvenir(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete souvenir", slog.Int64("souvenir.id", id))
	}
	s.metrics.recordMutation(ctx, "delete")
	s.logInfo(ctx, "souvenir deleted", slog.Int64("souvenir.id", id))
	return nil
}

func (s *Service) GetSouvenir(ctx context.Context, id int64) (*domain.Souvenir, error) {
	ctx, span := s.tracer.Start(ctx, "SouvenirService.GetSouvenir", trace.WithAttributes(attribute.Int64("souvenir.id", id)))
	defer span.End()

	result, err := s.inner.GetSouvenir(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load souvenir", slog.Int64("souvenir.id", id))
	}
	return result, nil
}

func (s *Service) ListSouvenirs(ctx context.Context) ([]*domain.Souvenir, error) {
	ctx, span := s.tracer.Start(ctx, "SouvenirService.ListSouvenirs")
	defer span.End()

	result, err := s.inner.ListSouvenirs(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list souvenirs")
	}
	span.SetAttributes(attribute.Int("souvenirs.count", len(result)))
	return result, nil
}

func (s *Service) SouvenirsByManufacturer(ctx context.Context, manufacturerID int64) ([]*domain.Souvenir, error) {
	ctx, span := s.tracer.Start(ctx, "SouvenirService.SouvenirsByManufacturer",
		trace.WithAttributes(attribute.Int64("manufacturer.id", manufacturerID)))
	defer span.End()

	result, err := s.inner.SouvenirsByManufacturer(ctx, manufacturerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list souvenirs of manufacturer", slog.Int64("manufacturer.id", manufacturerID))
	}
	span.SetAttributes(attribute.Int("souvenirs.count", len(result)))
	return result, nil
}

func (s *Service) SouvenirsByCountry(ctx context.Context, country string) ([]*domain.Souvenir, error) {
	ctx, span := s.tracer.Start(ctx, "SouvenirService.SouvenirsByCountry",
		trace.WithAttributes(attribute.String("manufacturer.country", country)))
	defer span.End()

	result, err := s.inner.SouvenirsByCountry(ctx, country)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list souvenirs by country", slog.String("manufacturer.country", country))
	}
	span.SetAttributes(attribute.Int("souvenirs.count", len(result)))
	return result, nil
}

func (s *Service) SouvenirsByYear(ctx context.Context) (map[int][]*domain.Souvenir, error) {
	ctx, span := s.tracer.Start(ctx, "SouvenirService.SouvenirsByYear")
	defer span.End()

	result, err := s.inner.SouvenirsByYear(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to group souvenirs by year")
	}
	span.SetAttributes(attribute.Int("years.count", len(result)))
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

func souvenirAttrs(souvenir *domain.Souvenir) []attribute.KeyValue {
	if souvenir == nil {
		return nil
	}
	return []attribute.KeyValue{
		attribute.Int64("souvenir.id", souvenir.ID),
		attribute.String("souvenir.name", souvenir.Name),
		attribute.Int64("manufacturer.id", souvenir.ManufacturerID),
	}
}

func nameOf(souvenir *domain.Souvenir) string {
	if souvenir == nil {
		return ""
	}
	return souvenir.Name
}

func idOf(souvenir *domain.Souvenir) int64 {
	if souvenir == nil {
		return 0
	}
	return souvenir.ID
}

func manufacturerOf(souvenir *domain.Souvenir) int64 {
	if souvenir == nil {
		return 0
	}
	return souvenir.ManufacturerID
}

type serviceMetrics struct {
	mutations metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	mutations, _ := m.Int64Counter("souvenirs.service.mutations", metric.WithDescription("Number of successful souvenir writes"))
	return serviceMetrics{mutations: mutations}
}

func (m serviceMetrics) recordMutation(ctx context.Context, operation string) {
	if m.mutations != nil {
		m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
	}
}

var _ ports.Service = (*Service)(nil)
