// Package blob selects and opens the blob storage backend snapshots are
// written to.
package blob

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Apurer/souvenir-registry/internal/platform/blob/core"
	blobfs "github.com/Apurer/souvenir-registry/internal/platform/blob/fs"
	blobmemory "github.com/Apurer/souvenir-registry/internal/platform/blob/memory"
	blobpostgres "github.com/Apurer/souvenir-registry/internal/platform/blob/postgres"
	blobs3 "github.com/Apurer/souvenir-registry/internal/platform/blob/s3"
	blobsqlite "github.com/Apurer/souvenir-registry/internal/platform/blob/sqlite"
	"github.com/Apurer/souvenir-registry/internal/platform/migrations"
	platformpostgres "github.com/Apurer/souvenir-registry/internal/platform/postgres"
)

type (
	Store      = core.Store
	Driver     = core.Driver
	PutOptions = core.PutOptions
	S3Config   = blobs3.Config
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverMemory     = core.DriverMemory
	DriverSQLite     = core.DriverSQLite
	DriverPostgres   = core.DriverPostgres
	DriverS3         = core.DriverS3
)

var ErrNotFound = core.ErrNotFound

// Config describes which backend to open and how to reach it.
type Config struct {
	Driver      Driver
	Root        string // fs: directory relative keys resolve against
	SQLitePath  string
	PostgresDSN string
	S3          blobs3.Config
}

// Open constructs the configured backend. The returned cleanup releases any
// connection the backend holds and is always safe to call.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (Store, func(), error) {
	driver := Driver(strings.ToLower(strings.TrimSpace(string(cfg.Driver))))
	if driver == "" {
		driver = DriverFilesystem
	}
	noop := func() {}
	switch driver {
	case DriverFilesystem:
		return blobfs.New(cfg.Root), noop, nil
	case DriverMemory:
		return blobmemory.New(), noop, nil
	case DriverSQLite:
		store, err := blobsqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil
	case DriverPostgres:
		db, cleanup, err := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, noop, err
		}
		if err := migrations.Run(db); err != nil {
			cleanup()
			return nil, noop, fmt.Errorf("migrate blob schema: %w", err)
		}
		return blobpostgres.New(db), cleanup, nil
	case DriverS3:
		store, err := blobs3.New(ctx, cfg.S3)
		if err != nil {
			return nil, noop, err
		}
		return store, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}
