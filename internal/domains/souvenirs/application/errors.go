package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/souvenir-registry/internal/domains/souvenirs/ports"
	"github.com/Apurer/souvenir-registry/internal/shared/validation"
)

var (
	// ErrInvalidInput signals the souvenir failed field validation.
	ErrInvalidInput = errors.New("invalid souvenir input")
	// ErrAlreadyExists signals the manufacturer already has a souvenir with that name.
	ErrAlreadyExists = errors.New("souvenir is already present in the system")
	// ErrNotFound signals no souvenir carries the requested id.
	ErrNotFound = errors.New("there is no souvenir with such id in the system")
	// ErrUnknownManufacturer signals the referenced manufacturer does not exist.
	ErrUnknownManufacturer = errors.New("there is no such manufacturer in the system")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var invalid *validation.Error
	switch {
	case errors.As(err, &invalid):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case errors.Is(err, ports.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
