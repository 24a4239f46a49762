package domain

import (
	"github.com/Apurer/souvenir-registry/internal/shared/validation"
)

var messages = validation.Messages{
	"Name.notblank":    "Name cannot be empty.",
	"Country.notblank": "Country cannot be empty.",
}

// NewValidator returns the field rules applied before a manufacturer is stored.
func NewValidator() validation.Validator[*Manufacturer] {
	return validation.NewStruct[Manufacturer](messages, validation.WithNilMessage("Manufacturer cannot be null."))
}
