package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	"github.com/Apurer/souvenir-registry/internal/shared/validation"
)

var (
	// ErrInvalidInput signals the manufacturer failed field validation.
	ErrInvalidInput = errors.New("invalid manufacturer input")
	// ErrAlreadyExists signals another manufacturer already uses the name.
	ErrAlreadyExists = errors.New("manufacturer is already present in the system")
	// ErrNotFound signals no manufacturer carries the requested id.
	ErrNotFound = errors.New("there is no manufacturer with such id in the system")
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
