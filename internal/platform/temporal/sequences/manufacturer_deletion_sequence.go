package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	manufacturerports "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	manufactureractivities "github.com/Apurer/souvenir-registry/internal/platform/temporal/activities/manufacturers"
)

// RunManufacturerDeletionSequence removes the manufacturer first and then each
// dependent souvenir. Souvenir failures are collected in the report; they do
// not undo the manufacturer removal.
func RunManufacturerDeletionSequence(ctx workflow.Context, manufacturerID int64) (*manufacturerports.DeletionReport, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("manufacturer deletion sequence started", "manufacturerId", manufacturerID)
	removeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	cascadeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	removeCtx := workflow.WithActivityOptions(ctx, removeOptions)
	if err := workflow.ExecuteActivity(removeCtx, manufactureractivities.RemoveManufacturerActivityName, manufacturerID).Get(ctx, nil); err != nil {
		logger.Error("manufacturer deletion sequence failed", "manufacturerId", manufacturerID, "error", err)
		return nil, err
	}

	report := &manufacturerports.DeletionReport{ManufacturerID: manufacturerID}
	cascadeCtx := workflow.WithActivityOptions(ctx, cascadeOptions)
	var souvenirIDs []int64
	if err := workflow.ExecuteActivity(cascadeCtx, manufactureractivities.ListSouvenirIDsActivityName, manufacturerID).Get(ctx, &souvenirIDs); err != nil {
		logger.Error("manufacturer deletion sequence could not list souvenirs", "manufacturerId", manufacturerID, "error", err)
		return report, nil
	}
	for _, id := range souvenirIDs {
		if err := workflow.ExecuteActivity(cascadeCtx, manufactureractivities.RemoveSouvenirActivityName, id).Get(ctx, nil); err != nil {
			logger.Warn("souvenir removal failed during cascade", "manufacturerId", manufacturerID, "souvenirId", id, "error", err)
			report.FailedSouvenirs = append(report.FailedSouvenirs, id)
			continue
		}
		report.RemovedSouvenirs = append(report.RemovedSouvenirs, id)
	}
	logger.Info("manufacturer deletion sequence completed", "manufacturerId", manufacturerID,
		"removed", len(report.RemovedSouvenirs), "failed", len(report.FailedSouvenirs))
	return report, nil
}
