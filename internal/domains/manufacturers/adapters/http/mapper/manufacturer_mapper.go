package mapper

import (
	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/domain"
	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	souvenirmapper "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/adapters/http/mapper"
)

// Manufacturer is the transport representation of a stored manufacturer.
type Manufacturer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// ManufacturerInput is the body accepted when creating or replacing a manufacturer.
type ManufacturerInput struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Catalog pairs a manufacturer with its souvenirs.
type Catalog struct {
	Manufacturer Manufacturer              `json:"manufacturer"`
	Souvenirs    []souvenirmapper.Souvenir `json:"souvenirs"`
}

// DeletionReport summarises a cascading delete.
type DeletionReport struct {
	ManufacturerID   int64   `json:"manufacturerId"`
	RemovedSouvenirs []int64 `json:"removedSouvenirs"`
	FailedSouvenirs  []int64 `json:"failedSouvenirs"`
}

func ToDomainManufacturer(id int64, input ManufacturerInput) *domain.Manufacturer {
	m := domain.NewManufacturer(input.Name, input.Country)
	m.ID = id
	return m
}

func FromDomainManufacturer(m *domain.Manufacturer) Manufacturer {
	if m == nil {
		return Manufacturer{}
	}
	return Manufacturer{ID: m.ID, Name: m.Name, Country: m.Country}
}

func FromDomainManufacturers(list []*domain.Manufacturer) []Manufacturer {
	out := make([]Manufacturer, 0, len(list))
	for _, m := range list {
		out = append(out, FromDomainManufacturer(m))
	}
	return out
}

func FromCatalogs(list []ports.Catalog) []Catalog {
	out := make([]Catalog, 0, len(list))
	for _, catalog := range list {
		out = append(out, Catalog{
			Manufacturer: FromDomainManufacturer(catalog.Manufacturer),
			Souvenirs:    souvenirmapper.FromDomainSouvenirs(catalog.Souvenirs),
		})
	}
	return out
}

func FromDeletionReport(report *ports.DeletionReport) DeletionReport {
	out := DeletionReport{RemovedSouvenirs: []int64{}, FailedSouvenirs: []int64{}}
	if report == nil {
		return out
	}
	out.ManufacturerID = report.ManufacturerID
	out.RemovedSouvenirs = append(out.RemovedSouvenirs, report.RemovedSouvenirs...)
	out.FailedSouvenirs = append(out.FailedSouvenirs, report.FailedSouvenirs...)
	return out
}
