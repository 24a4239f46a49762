package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	manufacturerports "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/domain"
	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/ports"
	"github.com/Apurer/souvenir-registry/internal/shared/validation"
)

// Service orchestrates souvenir use cases. Every souvenir written through it
// references a manufacturer that existed at the time of the write.
type Service struct {
	repo          ports.Repository
	manufacturers manufacturerports.Repository
	validator     validation.Validator[*domain.Souvenir]
}

type ServiceOption func(*Service)

// WithValidator replaces the default field rules.
func WithValidator(v validation.Validator[*domain.Souvenir]) ServiceOption {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithClock sets what "now" means for the production date rule.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.validator = domain.NewValidator(now)
		}
	}
}

func NewService(repo ports.Repository, manufacturers manufacturerports.Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:          repo,
		manufacturers: manufacturers,
		validator:     domain.NewValidator(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func (s *Service) AddSouvenir(ctx context.Context, souvenir *domain.Souvenir) (*domain.Souvenir, error) {
	if err := s.validator.Validate(souvenir).Err(); err != nil {
		return nil, mapError(err)
	}
	if err := s.ensureManufacturer(ctx, souvenir.ManufacturerID); err != nil {
		return nil, err
	}
	saved, err := s.repo.Add(ctx, souvenir)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) UpdateSouvenir(ctx context.Context, souvenir *domain.Souvenir) (*domain.Souvenir, error) {
	if err := s.validator.Validate(souvenir).Err(); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByID(ctx, souvenir.ID); err != nil {
		return nil, mapError(err)
	}
	if err := s.ensureManufacturer(ctx, souvenir.ManufacturerID); err != nil {
		return nil, err
	}
	saved, err := s.repo.Update(ctx, souvenir)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) DeleteSouvenir(ctx context.Context, id int64) error {
	return mapError(s.repo.Remove(ctx, id))
}

func (s *Service) GetSouvenir(ctx context.Context, id int64) (*domain.Souvenir, error) {
	souvenir, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return souvenir, nil
}

func (s *Service) ListSouvenirs(ctx context.Context) ([]*domain.Souvenir, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) SouvenirsByManufacturer(ctx context.Context, manufacturerID int64) ([]*domain.Souvenir, error) {
	return s.repo.GetByManufacturerID(ctx, manufacturerID)
}

// SouvenirsByCountry unions the souvenirs of every manufacturer located in country.
func (s *Service) SouvenirsByCountry(ctx context.Context, country string) ([]*domain.Souvenir, error) {
	manufacturers, err := s.manufacturers.GetByCountry(ctx, country)
	if err != nil {
		return nil, err
	}
	result := []*domain.Souvenir{}
	for _, m := range manufacturers {
		items, err := s.repo.GetByManufacturerID(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, items...)
	}
	return result, nil
}

// SouvenirsByYear groups all souvenirs by production year.
func (s *Service) SouvenirsByYear(ctx context.Context) (map[int][]*domain.Souvenir, error) {
	souvenirs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	groups := map[int][]*domain.Souvenir{}
	for _, souvenir := range souvenirs {
		groups[souvenir.Year()] = append(groups[souvenir.Year()], souvenir)
	}
	return groups, nil
}

func (s *Service) ensureManufacturer(ctx context.Context, id int64) error {
	if _, err := s.manufacturers.GetByID(ctx, id); err != nil {
		if errors.Is(err, manufacturerports.ErrNotFound) {
			return fmt.Errorf("%w: manufacturer %d", ErrUnknownManufacturer, id)
		}
		return err
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
