// Package core defines the blob storage abstraction the set stores write
// their snapshots through.
package core

import (
	"context"
	"errors"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local filesystem (default)
	DriverMemory     Driver = "memory" // in-memory (tests)
	DriverSQLite     Driver = "sqlite"
	DriverPostgres   Driver = "postgres"
	DriverS3         Driver = "s3" // S3 / MinIO compatible
)

// PutOptions specifies optional parameters for Put.
type PutOptions struct {
	ContentType string   // MIME type, optional
	Labels      []string // free-form tags stored next to the payload
}

// Store is a keyed byte store. Put always replaces the whole payload.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, opts PutOptions) error
	Driver() Driver
}

// ErrNotFound is returned by Get when the key holds no payload.
var ErrNotFound = errors.New("blobstore: blob not found")
