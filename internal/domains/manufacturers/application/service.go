package application

import (
	"context"
	"io"
	"log/slog"
	"math"

	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/domain"
	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	souvenirdomain "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/domain"
	souvenirports "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/ports"
	"github.com/Apurer/souvenir-registry/internal/shared/validation"
)

// Service orchestrates manufacturer use cases. It reads souvenirs to answer
// aggregate queries and to cascade deletes.
type Service struct {
	repo      ports.Repository
	souvenirs souvenirports.Repository
	validator validation.Validator[*domain.Manufacturer]
	logger    *slog.Logger
}

// ServiceOption configures optional collaborators.
type ServiceOption func(*Service)

// WithValidator replaces the default field rules.
func WithValidator(v validation.Validator[*domain.Manufacturer]) ServiceOption {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithLogger reports cascade failures.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, souvenirs souvenirports.Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:      repo,
		souvenirs: souvenirs,
		validator: domain.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) AddManufacturer(ctx context.Context, m *domain.Manufacturer) (*domain.Manufacturer, error) {
	if err := s.validator.Validate(m).Err(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Add(ctx, m)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) UpdateManufacturer(ctx context.Context, m *domain.Manufacturer) (*domain.Manufacturer, error) {
	if err := s.validator.Validate(m).Err(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByID(ctx, m.ID); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, m)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteManufacturer removes the manufacturer and then, one by one, every
// souvenir referencing it. The second phase is best effort: failures are
// reported, not rolled back, so a partial cascade can leave orphans.
func (s *Service) DeleteManufacturer(ctx context.Context, id int64) (*ports.DeletionReport, error) {
	if err := s.repo.Remove(ctx, id); err != nil {
		return nil, mapError(err)
	}
	report := &ports.DeletionReport{ManufacturerID: id}
	dependents, err := s.souvenirs.GetByManufacturerID(ctx, id)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to list souvenirs for cascade",
			slog.Int64("manufacturer.id", id), slog.String("error", err.Error()))
		return report, nil
	}
	for _, souvenir := range dependents {
		if err := s.souvenirs.Remove(ctx, souvenir.ID); err != nil {
			report.FailedSouvenirs = append(report.FailedSouvenirs, souvenir.ID)
			s.logger.LogAttrs(ctx, slog.LevelError, "failed to remove souvenir during cascade",
				slog.Int64("manufacturer.id", id), slog.Int64("souvenir.id", souvenir.ID), slog.String("error", err.Error()))
			continue
		}
		report.RemovedSouvenirs = append(report.RemovedSouvenirs, souvenir.ID)
	}
	return report, nil
}

func (s *Service) GetManufacturer(ctx context.Context, id int64) (*domain.Manufacturer, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return m, nil
}

func (s *Service) ListManufacturers(ctx context.Context) ([]*domain.Manufacturer, error) {
	return s.repo.GetAll(ctx)
}

// ManufacturersByMaxPrice returns manufacturers none of whose souvenirs costs
// more than price. A manufacturer without souvenirs qualifies. A NaN or
// infinite price is rejected as invalid input.
func (s *Service) ManufacturersByMaxPrice(ctx context.Context, price float64) ([]*domain.Manufacturer, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, mapError(&validation.Error{Messages: []string{"Price must be a finite number."}})
	}
	manufacturers, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	souvenirs, err := s.souvenirs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	over := map[int64]bool{}
	for _, souvenir := range souvenirs {
		if souvenir.Price > price {
			over[souvenir.ManufacturerID] = true
		}
	}
	result := make([]*domain.Manufacturer, 0, len(manufacturers))
	for _, m := range manufacturers {
		if !over[m.ID] {
			result = append(result, m)
		}
	}
	return result, nil
}

// ManufacturersWithSouvenirs lists every manufacturer alongside its souvenirs.
func (s *Service) ManufacturersWithSouvenirs(ctx context.Context) ([]ports.Catalog, error) {
	manufacturers, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	souvenirs, err := s.souvenirs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byManufacturer := map[int64][]*souvenirdomain.Souvenir{}
	for _, souvenir := range souvenirs {
		byManufacturer[souvenir.ManufacturerID] = append(byManufacturer[souvenir.ManufacturerID], souvenir)
	}
	catalogs := make([]ports.Catalog, 0, len(manufacturers))
	for _, m := range manufacturers {
		items := byManufacturer[m.ID]
		if items == nil {
			items = []*souvenirdomain.Souvenir{}
		}
		catalogs = append(catalogs, ports.Catalog{Manufacturer: m, Souvenirs: items})
	}
	return catalogs, nil
}

// ManufacturersOfSouvenirByYear returns, once each, the manufacturers that
// produced a souvenir called name during year. Souvenirs pointing at a
// manufacturer that no longer exists are ignored.
func (s *Service) ManufacturersOfSouvenirByYear(ctx context.Context, name string, year int) ([]*domain.Manufacturer, error) {
	souvenirs, err := s.souvenirs.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	seen := map[int64]bool{}
	result := []*domain.Manufacturer{}
	for _, souvenir := range souvenirs {
		if souvenir.Year() != year || seen[souvenir.ManufacturerID] {
			continue
		}
		seen[souvenir.ManufacturerID] = true
		m, err := s.repo.GetByID(ctx, souvenir.ManufacturerID)
		if err != nil {
			continue
		}
		result = append(result, m)
	}
	return result, nil
}

// Countries lists each manufacturer country once.
func (s *Service) Countries(ctx context.Context) ([]string, error) {
	manufacturers, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	countries := []string{}
	for _, m := range manufacturers {
		if seen[m.Country] {
			continue
		}
		seen[m.Country] = true
		countries = append(countries, m.Country)
	}
	return countries, nil
}

var _ ports.Service = (*Service)(nil)
