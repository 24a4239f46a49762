package ports

import (
	"context"

	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/domain"
	souvenirdomain "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/domain"
)

// Catalog pairs a manufacturer with the souvenirs it produces.
type Catalog struct {
	Manufacturer *domain.Manufacturer
	Souvenirs    []*souvenirdomain.Souvenir
}

// DeletionReport describes the outcome of a cascading manufacturer delete.
type DeletionReport struct {
	ManufacturerID   int64
	RemovedSouvenirs []int64
	FailedSouvenirs  []int64
}

// Complete reports whether every dependent souvenir was removed.
func (r *DeletionReport) Complete() bool {
	return r != nil && len(r.FailedSouvenirs) == 0
}

// Service exposes manufacturer use cases to adapters.
type Service interface {
	AddManufacturer(ctx context.Context, m *domain.Manufacturer) (*domain.Manufacturer, error)
	UpdateManufacturer(ctx context.Context, m *domain.Manufacturer) (*domain.Manufacturer, error)
	DeleteManufacturer(ctx context.Context, id int64) (*DeletionReport, error)
	GetManufacturer(ctx context.Context, id int64) (*domain.Manufacturer, error)
	ListManufacturers(ctx context.Context) ([]*domain.Manufacturer, error)
	ManufacturersByMaxPrice(ctx context.Context, price float64) ([]*domain.Manufacturer, error)
	ManufacturersWithSouvenirs(ctx context.Context) ([]Catalog, error)
	ManufacturersOfSouvenirByYear(ctx context.Context, name string, year int) ([]*domain.Manufacturer, error)
	Countries(ctx context.Context) ([]string, error)
}
