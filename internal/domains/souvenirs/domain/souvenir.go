package domain

import (
	"strings"
	"time"
)

// DateLayout is the canonical calendar date format.
const DateLayout = "2006-01-02"

// Souvenir is an item produced by a manufacturer. ManufacturerID must point at
// an existing manufacturer; the service layer enforces that.
type Souvenir struct {
	ID             int64
	Name           string    `validate:"notblank"`
	ManufacturerID int64     `validate:"gt=0"`
	ProductionDate time.Time `validate:"past"`
	Price          float64   `validate:"gt=0,finite"`
}

// Key identifies a souvenir by name within its manufacturer.
type Key struct {
	Name           string
	ManufacturerID int64
}

// KeyOf returns the business key; date, price and id do not take part.
func KeyOf(s Souvenir) Key {
	return Key{Name: s.Name, ManufacturerID: s.ManufacturerID}
}

// NewSouvenir builds an unsaved souvenir. The production date is truncated to
// a calendar date.
func NewSouvenir(name string, manufacturerID int64, produced time.Time, price float64) *Souvenir {
	return &Souvenir{
		Name:           strings.TrimSpace(name),
		ManufacturerID: manufacturerID,
		ProductionDate: Date(produced),
		Price:          price,
	}
}

// Year is the calendar year the souvenir was produced in.
func (s *Souvenir) Year() int {
	return s.ProductionDate.Year()
}

func (s *Souvenir) Clone() *Souvenir {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

// Date drops the clock part of t, keeping its calendar date in UTC.
func Date(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD as well as the older DD-MM-YYYY form.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.Parse(DateLayout, raw)
	if err == nil {
		return t, nil
	}
	if legacy, legacyErr := time.Parse("02-01-2006", raw); legacyErr == nil {
		return legacy, nil
	}
	return time.Time{}, err
}
