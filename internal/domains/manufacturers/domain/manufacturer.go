package domain

import "strings"

// Manufacturer is a producer of souvenirs. ID is assigned by the repository.
type Manufacturer struct {
	ID      int64
	Name    string `validate:"notblank"`
	Country string `validate:"notblank"`
}

// NewManufacturer builds an unsaved manufacturer with trimmed fields.
func NewManufacturer(name, country string) *Manufacturer {
	return &Manufacturer{Name: strings.TrimSpace(name), Country: strings.TrimSpace(country)}
}

// Key is the business key: two manufacturers with the same name are the same
// manufacturer regardless of country or id.
func Key(m Manufacturer) string {
	return m.Name
}

// Clone returns a copy that shares nothing with m.
func (m *Manufacturer) Clone() *Manufacturer {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}
