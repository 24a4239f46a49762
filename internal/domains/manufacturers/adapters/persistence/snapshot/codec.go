// Package snapshot maps manufacturers to the records written in a collection
// snapshot.
package snapshot

import (
	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/domain"
	"github.com/Apurer/souvenir-registry/internal/platform/blob"
	"github.com/Apurer/souvenir-registry/internal/platform/setstore"
)

// Label tags manufacturer snapshots in backends that keep labels.
const Label = "manufacturers"

// manufacturerRecord is the persisted shape of a manufacturer.
type manufacturerRecord struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Codec encodes manufacturer collections as a JSON array of records.
func Codec() setstore.Codec[domain.Manufacturer] {
	return setstore.MappedCodec[domain.Manufacturer, manufacturerRecord]{
		ToRecord: toRecord,
		ToDomain: toDomain,
	}
}

// NewStore binds a manufacturer set store to key.
func NewStore(blobs blob.Store, key string, opts ...setstore.Option) *setstore.Store[domain.Manufacturer] {
	opts = append(opts, setstore.WithLabels(Label))
	return setstore.New(blobs, key, Codec(), opts...)
}

func toRecord(m domain.Manufacturer) manufacturerRecord {
	return manufacturerRecord{ID: m.ID, Name: m.Name, Country: m.Country}
}

func toDomain(r manufacturerRecord) (domain.Manufacturer, error) {
	return domain.Manufacturer{ID: r.ID, Name: r.Name, Country: r.Country}, nil
}
