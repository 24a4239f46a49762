package ports

import (
	"context"

	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/domain"
)

// Service exposes souvenir use cases to adapters.
type Service interface {
	AddSouvenir(ctx context.Context, s *domain.Souvenir) (*domain.Souvenir, error)
	UpdateSouvenir(ctx context.Context, s *domain.Souvenir) (*domain.Souvenir, error)
	DeleteSouvenir(ctx context.Context, id int64) error
	GetSouvenir(ctx context.Context, id int64) (*domain.Souvenir, error)
	ListSouvenirs(ctx context.Context) ([]*domain.Souvenir, error)
	SouvenirsByManufacturer(ctx context.Context, manufacturerID int64) ([]*domain.Souvenir, error)
	SouvenirsByCountry(ctx context.Context, country string) ([]*domain.Souvenir, error)
	SouvenirsByYear(ctx context.Context) (map[int][]*domain.Souvenir, error)
}
