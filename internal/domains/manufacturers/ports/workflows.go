package ports

import "context"

// WorkflowOrchestrator runs multi-step manufacturer operations, either inline
// or on a durable workflow engine.
type WorkflowOrchestrator interface {
	DeleteManufacturer(ctx context.Context, id int64) (*DeletionReport, error)
}
