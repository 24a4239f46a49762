// Package snapshotcopy moves both collection snapshots from one blob backend
// to another, for example when switching a deployment from fs to postgres.
package snapshotcopy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	manufacturersnapshot "github.com/Apurer/souvenir-registry/internal/domains/manufacturers/adapters/persistence/snapshot"
	souvenirsnapshot "github.com/Apurer/souvenir-registry/internal/domains/souvenirs/adapters/persistence/snapshot"
	"github.com/Apurer/souvenir-registry/internal/platform/blob"
	"github.com/Apurer/souvenir-registry/internal/platform/setstore"
)

// Keys names the snapshot of each collection.
type Keys struct {
	Manufacturers string
	Souvenirs     string
}

// Result reports how many records were written per collection.
type Result struct {
	Manufacturers int
	Souvenirs     int
}

// Copy decodes each snapshot from src and rewrites it to dst under the same
// key. A missing source snapshot is copied as an empty collection; a corrupt
// one aborts the copy before anything is written for that collection.
func Copy(ctx context.Context, src, dst blob.Store, keys Keys, logger *slog.Logger) (Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	opts := []setstore.Option{setstore.WithLogger(logger)}

	var result Result
	n, err := copyCollection(ctx,
		manufacturersnapshot.NewStore(src, keys.Manufacturers, opts...),
		manufacturersnapshot.NewStore(dst, keys.Manufacturers, opts...),
		logger,
	)
	if err != nil {
		return result, err
	}
	result.Manufacturers = n

	n, err = copyCollection(ctx,
		souvenirsnapshot.NewStore(src, keys.Souvenirs, opts...),
		souvenirsnapshot.NewStore(dst, keys.Souvenirs, opts...),
		logger,
	)
	if err != nil {
		return result, err
	}
	result.Souvenirs = n
	return result, nil
}

func copyCollection[T any](ctx context.Context, from, to *setstore.Store[T], logger *slog.Logger) (int, error) {
	records, err := from.Read(ctx)
	if err != nil {
		if !errors.Is(err, setstore.ErrMissing) {
			return 0, fmt.Errorf("copy %s: %w", from.Key(), err)
		}
		logger.Warn("source snapshot missing, writing empty collection", slog.String("key", from.Key()))
		records = []T{}
	}
	if err := to.Save(ctx, records); err != nil {
		return 0, fmt.Errorf("copy %s: %w", from.Key(), err)
	}
	logger.Info("snapshot copied", slog.String("key", from.Key()), slog.Int("records", len(records)))
	return len(records), nil
}
