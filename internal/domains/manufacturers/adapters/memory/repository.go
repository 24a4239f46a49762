package memory

import (
	"context"
	"errors"

	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/domain"
	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	"github.com/Apurer/souvenir-registry/internal/platform/repository"
)

var _ ports.Repository = (*Repository)(nil)

var schema = repository.Schema[domain.Manufacturer, int64, string]{
	ID:     func(m domain.Manufacturer) int64 { return m.ID },
	WithID: func(m domain.Manufacturer, id int64) domain.Manufacturer {
		m.ID = id
		return m
	},
	Key: domain.Key,
}

// Repository keeps manufacturers in memory and writes the full collection to
// its persister after every change.
type Repository struct {
	records *repository.Repository[domain.Manufacturer, int64, string]
}

// NewRepository loads the stored manufacturers from store.
func NewRepository(ctx context.Context, store repository.Persister[domain.Manufacturer], opts ...repository.Option) *Repository {
	return &Repository{records: repository.New(ctx, store, schema, opts...)}
}

func (r *Repository) Add(ctx context.Context, m *domain.Manufacturer) (*domain.Manufacturer, error) {
	if m == nil {
		return nil, errors.New("manufacturer is nil")
	}
	saved, err := r.records.Add(ctx, *m)
	if err != nil {
		return nil, mapError(err)
	}
	return &saved, nil
}

func (r *Repository) Update(ctx context.Context, m *domain.Manufacturer) (*domain.Manufacturer, error) {
	if m == nil {
		return nil, errors.New("manufacturer is nil")
	}
	saved, err := r.records.Update(ctx, *m)
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

func (r *Repository) GetAll(ctx context.Context) ([]*domain.Manufacturer, error) {
	return toPointers(r.records.GetAll(ctx)), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Manufacturer, error) {
	m, err := r.records.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &m, nil
}

func (r *Repository) GetByCountry(ctx context.Context, country string) ([]*domain.Manufacturer, error) {
	return toPointers(r.records.Filter(ctx, func(m domain.Manufacturer) bool {
		return m.Country == country
	})), nil
}

func toPointers(list []domain.Manufacturer) []*domain.Manufacturer {
	out := make([]*domain.Manufacturer, 0, len(list))
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
