package domain

import (
	"time"

	"github.com/Apurer/souvenir-registry/internal/shared/validation"
)

var messages = validation.Messages{
	"Name.notblank":       "Name cannot be empty.",
	"ManufacturerID.gt":   "Manufacturer ID must be greater than 0.",
	"ProductionDate.past": "Production date must be in the past.",
	"Price.gt":            "Price cannot be negative or zero.",
	"Price.finite":        "Price must be a finite number.",
}

// NewValidator returns the field rules applied before a souvenir is stored.
// now decides what "in the past" means; nil uses time.Now.
func NewValidator(now func() time.Time) validation.Validator[*Souvenir] {
	opts := []validation.StructOption{validation.WithNilMessage("Souvenir cannot be null.")}
	if now != nil {
		opts = append(opts, validation.WithClock(now))
	}
	return validation.NewStruct[Souvenir](messages, opts...)
}
