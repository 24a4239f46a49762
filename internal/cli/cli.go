// Package cli implements the souvenirs command line front end on top of the
// domain services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/Apurer/souvenir-registry/internal/app/registry"
	"github.com/Apurer/souvenir-registry/internal/platform/config"
	platformobservability "github.com/Apurer/souvenir-registry/internal/platform/observability"
	"github.com/Apurer/souvenir-registry/internal/shared/validation"
)

// Main is the entrypoint for the CLI. Call Main from an actual main function.
func Main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := New(ctx)
	if err := cmd.Execute(); err != nil {
		printError(cmd.ErrOrStderr(), err)
		stop()
		os.Exit(1)
	}
}

type app struct {
	ctx        context.Context
	configPath string
	verbose    bool
	registry   *registry.Registry
	cleanup    func()

	// openRegistry builds the registry from the loaded config.
	openRegistry func(ctx context.Context, cfg config.Config, opts ...registry.Option) (*registry.Registry, func(), error)
}

type Option func(*app)

// WithRegistry runs the commands against reg instead of the configured storage.
func WithRegistry(reg *registry.Registry) Option {
	return func(a *app) {
		a.registry = reg
	}
}

// New returns the root command.
func New(ctx context.Context, opts ...Option) *cobra.Command {
	a := &app{ctx: ctx, cleanup: func() {}, openRegistry: registry.New}
	for _, opt := range opts {
		opt(a)
	}

	cmd := &cobra.Command{
		Use:           "souvenirs",
		Short:         "Manage manufacturers and their souvenirs",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: heredoc.Doc(`
			Manage the manufacturers and souvenirs registry.

			Both collections are loaded from the configured storage on start
			and written back in full after every change.
		`),
		Example: heredoc.Doc(`
			$ souvenirs manufacturer add --name Acme --country USA
			$ souvenirs souvenir add --name Mug --manufacturer 1 --date 2020-05-01 --price 9.5
			$ souvenirs manufacturer by-max-price 10
		`),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(
		&a.configPath,
		"config", "c",
		envOr("SOUVENIRS_CONFIG", config.DefaultPath),
		"Path to the registry config file",
	)
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log storage activity to stderr")

	cmd.AddCommand(manufacturerCmd(a), souvenirCmd(a))
	a.closeAfterRun(cmd)
	return cmd
}

// closeAfterRun makes every runnable command release the registry when it
// returns, failed or not. cobra skips post-run hooks after a RunE error.
func (a *app) closeAfterRun(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		a.closeAfterRun(sub)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		defer a.close()
		return run(cmd, args)
	}
}

func (a *app) close() {
	cleanup := a.cleanup
	a.cleanup = func() {}
	cleanup()
}

func (a *app) open(cmd *cobra.Command) error {
	if a.registry != nil {
		return nil
	}
	cfg, err := config.LoadFromPath(a.configPath)
	if err != nil {
		return err
	}
	logger := platformobservability.NewCLILogger(cmd.ErrOrStderr(), a.verbose)
	reg, cleanup, err := a.openRegistry(a.context(), cfg, registry.WithLogger(logger))
	if err != nil {
		return err
	}
	a.registry, a.cleanup = reg, cleanup
	return nil
}

func (a *app) context() context.Context {
	if a.ctx == nil {
		return context.Background()
	}
	return a.ctx
}

func printError(w io.Writer, err error) {
	var invalid *validation.Error
	if errors.As(err, &invalid) {
		for _, msg := range invalid.Messages {
			fmt.Fprintln(w, aurora.Red(msg))
		}
		return
	}
	fmt.Fprintln(w, aurora.Red(err))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
