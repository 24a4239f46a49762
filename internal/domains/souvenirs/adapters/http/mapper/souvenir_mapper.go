package mapper

import (
	"sort"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/domain"
)

// Souvenir is the transport representation of a stored souvenir.
type Souvenir struct {
	ID             int64              `json:"id"`
	Name           string             `json:"name"`
	ManufacturerID int64              `json:"manufacturerId"`
	ProductionDate openapi_types.Date `json:"productionDate"`
	Price          float64            `json:"price"`
}

// SouvenirInput is the body accepted when creating or replacing a souvenir.
type SouvenirInput struct {
	Name           string              `json:"name"`
	ManufacturerID int64               `json:"manufacturerId"`
	ProductionDate *openapi_types.Date `json:"productionDate"`
	Price          float64             `json:"price"`
}

// YearGroup lists the souvenirs produced in one year.
type YearGroup struct {
	Year      int        `json:"year"`
	Souvenirs []Souvenir `json:"souvenirs"`
}

// ToDomainSouvenir converts a request body into a domain souvenir carrying id.
func ToDomainSouvenir(id int64, input SouvenirInput) *domain.Souvenir {
	var produced time.Time
	if input.ProductionDate != nil {
		produced = input.ProductionDate.Time
	}
	souvenir := domain.NewSouvenir(input.Name, input.ManufacturerID, produced, input.Price)
	souvenir.ID = id
	return souvenir
}

func FromDomainSouvenir(s *domain.Souvenir) Souvenir {
	if s == nil {
		return Souvenir{}
	}
	return Souvenir{
		ID:             s.ID,
		Name:           s.Name,
		ManufacturerID: s.ManufacturerID,
		ProductionDate: openapi_types.Date{Time: s.ProductionDate},
		Price:          s.Price,
	}
}

func FromDomainSouvenirs(list []*domain.Souvenir) []Souvenir {
	out := make([]Souvenir, 0, len(list))
	for _, s := range list {
		out = append(out, FromDomainSouvenir(s))
	}
	return out
}

// FromYearGroups flattens the year map into a list ordered by year.
func FromYearGroups(groups map[int][]*domain.Souvenir) []YearGroup {
	out := make([]YearGroup, 0, len(groups))
	for year, list := range groups {
		out = append(out, YearGroup{Year: year, Souvenirs: FromDomainSouvenirs(list)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
