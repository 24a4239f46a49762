package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/application"
	"github.com/Apurer/souvenir-registry/internal/domains/manufacturers/ports"
	manufactureractivities "github.com/Apurer/souvenir-registry/internal/platform/temporal/activities/manufacturers"
	manufacturerworkflows "github.com/Apurer/souvenir-registry/internal/platform/temporal/workflows/manufacturers"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineWorkflows)(nil)
)

// TemporalWorkflows starts manufacturer workflows on a Temporal cluster.
type TemporalWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalWorkflows wires a Temporal client into the orchestrator.
func NewTemporalWorkflows(c client.Client, taskQueue string) *TemporalWorkflows {
	if taskQueue == "" {
		taskQueue = manufacturerworkflows.DeletionTaskQueue
	}
	return &TemporalWorkflows{client: c, taskQueue: taskQueue}
}

// DeleteManufacturer runs the cascading delete as a workflow and waits for its report.
func (o *TemporalWorkflows) DeleteManufacturer(ctx context.Context, id int64) (*ports.DeletionReport, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal manufacturer workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := fmt.Sprintf("manufacturer-deletion-%d-%s", id, traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		manufacturerworkflows.DeletionWorkflowName,
		manufacturerworkflows.DeletionWorkflowInput{ManufacturerID: id, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var report ports.DeletionReport
	if err := run.Get(ctx, &report); err != nil {
		return nil, mapWorkflowError(err)
	}
	return &report, nil
}

// InlineWorkflows executes the service directly without Temporal.
type InlineWorkflows struct {
	service ports.Service
}

// NewInlineWorkflows wraps the manufacturer service for synchronous execution.
func NewInlineWorkflows(service ports.Service) *InlineWorkflows {
	return &InlineWorkflows{service: service}
}

func (o *InlineWorkflows) DeleteManufacturer(ctx context.Context, id int64) (*ports.DeletionReport, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline manufacturer workflows not configured")
	}
	return o.service.DeleteManufacturer(ctx, id)
}

func mapWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == manufactureractivities.ErrTypeManufacturerNotFound {
		return fmt.Errorf("%w: %w", application.ErrNotFound, err)
	}
	return err
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return "fallback-" + uuid.NewString()
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
