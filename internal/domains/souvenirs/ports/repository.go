package ports

import (
	"context"
	"errors"

	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/domain"
)

var (
	ErrNotFound  = errors.New("souvenir not found")
	ErrDuplicate = errors.New("souvenir with the same name already exists for this manufacturer")
)

// Repository stores souvenirs, unique by id and by (name, manufacturer id).
type Repository interface {
	Add(ctx context.Context, s *domain.Souvenir) (*domain.Souvenir, error)
	Update(ctx context.Context, s *domain.Souvenir) (*domain.Souvenir, error)
	Remove(ctx context.Context, id int64) error
	GetAll(ctx context.Context) ([]*domain.Souvenir, error)
	GetByID(ctx context.Context, id int64) (*domain.Souvenir, error)
	GetByName(ctx context.Context, name string) ([]*domain.Souvenir, error)
	GetByManufacturerID(ctx context.Context, manufacturerID int64) ([]*domain.Souvenir, error)
}
