package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/Apurer/souvenir-registry/internal/app/snapshotcopy"
	"github.com/Apurer/souvenir-registry/internal/platform/blob"
	"github.com/Apurer/souvenir-registry/internal/platform/config"
	platformobservability "github.com/Apurer/souvenir-registry/internal/platform/observability"
)

func main() {
	log.SetFlags(0)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newCommand(ctx).Execute(); err != nil {
		stop()
		log.Fatal(aurora.Red(err))
	}
}

func newCommand(ctx context.Context) *cobra.Command {
	var (
		configPath string
		target     config.StorageConfig
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:           "snapshot-copy",
		Short:         "Copy the registry snapshots to another storage driver",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: heredoc.Doc(`
			Copy the manufacturers and souvenirs snapshots from the configured
			storage to another driver. Snapshots are decoded before they are
			written, so a corrupt source aborts the copy.
		`),
		Example: heredoc.Doc(`
			$ snapshot-copy --to postgres --postgres-dsn "postgres://localhost/souvenirs"
			$ snapshot-copy --to sqlite --sqlite-path backup.db
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFromPath(configPath)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			logger := platformobservability.NewCLILogger(cmd.ErrOrStderr(), true)

			src, closeSrc, err := blob.Open(ctx, cfg.Blob(), logger)
			if err != nil {
				return fmt.Errorf("open source: %w", err)
			}
			defer closeSrc()

			dstCfg := cfg
			dstCfg.Storage = target
			if err := dstCfg.Validate(); err != nil {
				return fmt.Errorf("target: %w", err)
			}
			dst, closeDst, err := blob.Open(ctx, dstCfg.Blob(), logger)
			if err != nil {
				return fmt.Errorf("open target: %w", err)
			}
			defer closeDst()

			result, err := snapshotcopy.Copy(ctx, src, dst, snapshotcopy.Keys{
				Manufacturers: cfg.Manufacturers.FilePath,
				Souvenirs:     cfg.Souvenirs.FilePath,
			}, logger)
			if err != nil {
				return err
			}
			cmd.Print(aurora.Green(heredoc.Docf(`
				Snapshots copied from %s to %s.

				Manufacturers: %d
				Souvenirs:     %d
			`, src.Driver(), dst.Driver(), result.Manufacturers, result.Souvenirs)).String())
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", envOr("SOUVENIRS_CONFIG", config.DefaultPath), "Path to the registry config file")
	flags.StringVar(&target.Driver, "to", "", "Target driver: fs, sqlite, postgres or s3")
	flags.StringVar(&target.Root, "root", "", "Target directory for the fs driver")
	flags.StringVar(&target.SQLitePath, "sqlite-path", "", "Target database file for the sqlite driver")
	flags.StringVar(&target.PostgresDSN, "postgres-dsn", "", "Target DSN for the postgres driver")
	flags.StringVar(&target.S3.Bucket, "s3-bucket", "", "Target bucket for the s3 driver")
	flags.StringVar(&target.S3.Region, "s3-region", "", "Target region for the s3 driver")
	flags.StringVar(&target.S3.Endpoint, "s3-endpoint", "", "Custom S3 endpoint, e.g. MinIO")
	flags.StringVar(&target.S3.Prefix, "s3-prefix", "", "Key prefix inside the target bucket")
	flags.DurationVar(&timeout, "timeout", 30*time.Second, "Overall timeout")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
