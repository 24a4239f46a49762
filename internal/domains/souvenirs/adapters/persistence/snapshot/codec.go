// Package snapshot maps souvenirs to the records written in a collection
// snapshot.
package snapshot

import (
	"fmt"
	"time"

	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/domain"
	"github.com/Apurer/souvenir-registry/internal/platform/blob"
	"github.com/Apurer/souvenir-registry/internal/platform/setstore"
)

const Label = "souvenirs"

// souvenirRecord is the persisted shape of a souvenir; dates are stored as YYYY-MM-DD.
type souvenirRecord struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	ManufacturerID int64   `json:"manufacturerId"`
	ProductionDate string  `json:"productionDate"`
	Price          float64 `json:"price"`
}

func Codec() setstore.Codec[domain.Souvenir] {
	return setstore.MappedCodec[domain.Souvenir, souvenirRecord]{
		ToRecord: toRecord,
		ToDomain: toDomain,
	}
}

// NewStore binds a souvenir set store to key.
func NewStore(blobs blob.Store, key string, opts ...setstore.Option) *setstore.Store[domain.Souvenir] {
	opts = append(opts, setstore.WithLabels(Label))
	return setstore.New(blobs, key, Codec(), opts...)
}

func toRecord(s domain.Souvenir) souvenirRecord {
	rec := souvenirRecord{
		ID:             s.ID,
		Name:           s.Name,
		ManufacturerID: s.ManufacturerID,
		Price:          s.Price,
	}
	if !s.ProductionDate.IsZero() {
		rec.ProductionDate = s.ProductionDate.Format(domain.DateLayout)
	}
	return rec
}

func toDomain(r souvenirRecord) (domain.Souvenir, error) {
	var produced time.Time
	if r.ProductionDate != "" {
		parsed, err := time.Parse(domain.DateLayout, r.ProductionDate)
		if err != nil {
			return domain.Souvenir{}, fmt.Errorf("souvenir %d: production date: %w", r.ID, err)
		}
		produced = parsed
	}
	return domain.Souvenir{
		ID:             r.ID,
		Name:           r.Name,
		ManufacturerID: r.ManufacturerID,
		ProductionDate: produced,
		Price:          r.Price,
	}, nil
}
