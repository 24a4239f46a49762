package manufacturers

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	manufacturerports "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	souvenirports "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/ports"
)

const (
	// RemoveManufacturerActivityName deletes the manufacturer record itself.
	RemoveManufacturerActivityName = "manufacturers.activities.RemoveManufacturer"
	// ListSouvenirIDsActivityName lists the souvenirs still referencing a manufacturer.
	ListSouvenirIDsActivityName = "manufacturers.activities.ListSouvenirIDs"
	// RemoveSouvenirActivityName deletes one dependent souvenir.
	RemoveSouvenirActivityName = "manufacturers.activities.RemoveSouvenir"

	// ErrTypeManufacturerNotFound tags the non-retryable failure raised for a missing manufacturer.
	ErrTypeManufacturerNotFound = "ManufacturerNotFound"
	// ErrTypeSouvenirNotFound tags the non-retryable failure raised for a missing souvenir.
	ErrTypeSouvenirNotFound = "SouvenirNotFound"
)

// Activities groups the repository calls a cascading manufacturer delete is made of.
type Activities struct {
	manufacturers manufacturerports.Repository
	souvenirs     souvenirports.Repository
}

func NewActivities(manufacturers manufacturerports.Repository, souvenirs souvenirports.Repository) *Activities {
	return &Activities{manufacturers: manufacturers, souvenirs: souvenirs}
}

// RemoveManufacturer deletes the manufacturer. A missing id is not retried.
func (a *Activities) RemoveManufacturer(ctx context.Context, id int64) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.manufacturers == nil {
		logger.Error("manufacturer activities not initialized", "manufacturerId", id)
		return errors.New("manufacturer activities not initialized")
	}
	if err := a.manufacturers.Remove(ctx, id); err != nil {
		if errors.Is(err, manufacturerports.ErrNotFound) {
			return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeManufacturerNotFound, err)
		}
		logger.Error("RemoveManufacturer activity failed", "manufacturerId", id, "error", err)
		return err
	}
	logger.Info("RemoveManufacturer activity completed", "manufacturerId", id)
	return nil
}

// ListSouvenirIDs returns the ids of souvenirs referencing manufacturerID.
func (a *Activities) ListSouvenirIDs(ctx context.Context, manufacturerID int64) ([]int64, error) {
	if a == nil || a.souvenirs == nil {
		return nil, errors.New("manufacturer activities not initialized")
	}
	souvenirs, err := a.souvenirs.GetByManufacturerID(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(souvenirs))
	for _, s := range souvenirs {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// RemoveSouvenir deletes one souvenir. A missing id is not retried.
func (a *Activities) RemoveSouvenir(ctx context.Context, id int64) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.souvenirs == nil {
		return errors.New("manufacturer activities not initialized")
	}
	if err := a.souvenirs.Remove(ctx, id); err != nil {
		if errors.Is(err, souvenirports.ErrNotFound) {
			return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeSouvenirNotFound, err)
		}
		logger.Error("RemoveSouvenir activity failed", "souvenirId", id, "error", err)
		return err
	}
	return nil
}
