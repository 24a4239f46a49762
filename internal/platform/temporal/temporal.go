// Package temporal dials the Temporal cluster and hosts the in-process worker
// that executes manufacturer workflows against this process's repositories.
package temporal

import (
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	manufactureractivities "github.com/Apurer/souvenir-registry/internal/platform/temporal/activities/manufacturers"
	manufacturerworkflows "github.com/Apurer/souvenir-registry/internal/platform/temporal/workflows/manufacturers"
)

// Config locates the Temporal frontend.
type Config struct {
	Address   string
	Namespace string
	TaskQueue string
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = client.DefaultHostPort
	}
	if strings.TrimSpace(c.Namespace) == "" {
		c.Namespace = client.DefaultNamespace
	}
	c.TaskQueue = TaskQueue(c.TaskQueue)
	return c
}

// TaskQueue returns q, or the deletion task queue when q is blank.
func TaskQueue(q string) string {
	if strings.TrimSpace(q) == "" {
		return manufacturerworkflows.DeletionTaskQueue
	}
	return q
}

// Dial connects to Temporal with tracing and structured logging enabled.
func Dial(cfg Config, logger *slog.Logger, tracer trace.Tracer) (client.Client, error) {
	cfg = cfg.withDefaults()
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: tracer})
	if err != nil {
		return nil, fmt.Errorf("configure temporal tracing interceptor: %w", err)
	}
	options := client.Options{
		HostPort:  cfg.Address,
		Namespace: cfg.Namespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	c, err := client.Dial(options)
	if err != nil {
		return nil, fmt.Errorf("dial temporal %s: %w", cfg.Address, err)
	}
	return c, nil
}

// NewWorker registers the manufacturer deletion workflow and its activities
// on taskQueue. The caller starts and stops the worker.
func NewWorker(c client.Client, taskQueue string, acts *manufactureractivities.Activities) worker.Worker {
	w := worker.New(c, TaskQueue(taskQueue), worker.Options{})
	Register(w, acts)
	return w
}

// Register adds the workflow and activities to any registry (a worker or a
// test environment).
func Register(r worker.Registry, acts *manufactureractivities.Activities) {
	r.RegisterWorkflowWithOptions(manufacturerworkflows.DeletionWorkflow, workflow.RegisterOptions{Name: manufacturerworkflows.DeletionWorkflowName})
	r.RegisterActivityWithOptions(acts.RemoveManufacturer, activity.RegisterOptions{Name: manufactureractivities.RemoveManufacturerActivityName})
	r.RegisterActivityWithOptions(acts.ListSouvenirIDs, activity.RegisterOptions{Name: manufactureractivities.ListSouvenirIDsActivityName})
	r.RegisterActivityWithOptions(acts.RemoveSouvenir, activity.RegisterOptions{Name: manufactureractivities.RemoveSouvenirActivityName})
}
