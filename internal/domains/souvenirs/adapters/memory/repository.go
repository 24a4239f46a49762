package memory

import (
	"context"
	"errors"

	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/domain"
	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/ports"
	"github.com/Apurer/souvenir-registry/internal/platform/repository"
)

var _ ports.Repository = (*Repository)(nil)

var schema = repository.Schema[domain.Souvenir, int64, domain.Key]{
	ID:     func(s domain.Souvenir) int64 { return s.ID },
	WithID: func(s domain.Souvenir, id int64) domain.Souvenir {
		s.ID = id
		return s
	},
	Key: domain.KeyOf,
}

// Repository keeps souvenirs in memory and writes the full collection to its
// persister after every change.
type Repository struct {
	records *repository.Repository[domain.Souvenir, int64, domain.Key]
}

func NewRepository(ctx context.Context, store repository.Persister[domain.Souvenir], opts ...repository.Option) *Repository {
	return &Repository{records: repository.New(ctx, store, schema, opts...)}
}

func (r *Repository) Add(ctx context.Context, s *domain.Souvenir) (*domain.Souvenir, error) {
	if s == nil {
		return nil, errors.New("souvenir is nil")
	}
	saved, err := r.records.Add(ctx, *s)
	if err != nil {
		return nil, mapError(err)
	}
	return &saved, nil
}

func (r *Repository) Update(ctx context.Context, s *domain.Souvenir) (*domain.Souvenir, error) {
	if s == nil {
		return nil, errors.New("souvenir is nil")
	}
	saved, err := r.records.Update(ctx, *s)
	if err != nil {
		return nil, mapError(err)
	}
	return &saved, nil
}

func (r *Repository) Remove(ctx context.Context, id int64) error {
	if _, err := r.records.Remove(ctx, id); err != nil {
		return mapError(err)
	}
	return nil
}

func (r *Repository) GetAll(ctx context.Context) ([]*domain.Souvenir, error) {
	return toPointers(r.records.GetAll(ctx)), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Souvenir, error) {
	s, err := r.records.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &s, nil
}

func (r *Repository) GetByName(ctx context.Context, name string) ([]*domain.Souvenir, error) {
	return toPointers(r.records.Filter(ctx, func(s domain.Souvenir) bool {
		return s.Name == name
	})), nil
}

func (r *Repository) GetByManufacturerID(ctx context.Context, manufacturerID int64) ([]*domain.Souvenir, error) {
	return toPointers(r.records.Filter(ctx, func(s domain.Souvenir) bool {
		return s.ManufacturerID == manufacturerID
	})), nil
}

func toPointers(list []domain.Souvenir) []*domain.Souvenir {
	out := make([]*domain.Souvenir, 0, len(list))
	for i := range list {
		out = append(out, &list[i])
	}
	return out
}

func mapError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ports.ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ports.ErrDuplicate
	default:
		return err
	}
}
