package manufacturers

import (
	"go.temporal.io/sdk/workflow"

	manufacturerports "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	"github.com/Apurer/souvenir-registry/internal/platform/temporal/sequences"
)

const (
	// DeletionWorkflowName is the public identifier for registering the workflow.
	DeletionWorkflowName = "manufacturers.workflows.Deletion"
	// DeletionTaskQueue is the default queue consumed by the in-process worker.
	DeletionTaskQueue = "MANUFACTURER_DELETION"
)

// DeletionWorkflowInput identifies the manufacturer to delete.
type DeletionWorkflowInput struct {
	ManufacturerID int64
	TraceID        string
}

// DeletionWorkflow deletes a manufacturer and cascades to its souvenirs.
func DeletionWorkflow(ctx workflow.Context, input DeletionWorkflowInput) (*manufacturerports.DeletionReport, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("DeletionWorkflow started", withTraceID(input.TraceID, "manufacturerId", input.ManufacturerID)...)
	report, err := sequences.RunManufacturerDeletionSequence(ctx, input.ManufacturerID)
	if err != nil {
		logger.Error("DeletionWorkflow failed", withTraceID(input.TraceID, "manufacturerId", input.ManufacturerID, "error", err)...)
		return nil, err
	}
	logger.Info("DeletionWorkflow completed", withTraceID(input.TraceID, "manufacturerId", input.ManufacturerID)...)
	return report, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
