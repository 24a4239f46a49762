package ports

import (
	"context"
	"errors"

	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/domain"
)

var (
	ErrNotFound  = errors.New("manufacturer not found")
	ErrDuplicate = errors.New("manufacturer with the same name already exists")
)

// Repository stores manufacturers, unique by id and by name.
type Repository interface {
	Add(ctx context.Context, m *domain.Manufacturer) (*domain.Manufacturer, error)
	Update(ctx context.Context, m *domain.Manufacturer) (*domain.Manufacturer, error)
	Remove(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]*domain.Manufacturer, error)
	GetByID(ctx context.Context, id int64) (*domain.Manufacturer, error)
	GetByCountry(ctx context.Context, country string) ([]*domain.Manufacturer, error)
}
