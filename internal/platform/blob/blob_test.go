package blob

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SelectsDriver(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	cases := []struct {
		name string
		cfg  Config
		want Driver
	}{
		{name: "default", cfg: Config{}, want: DriverFilesystem},
		{name: "fs", cfg: Config{Driver: "FS", Root: t.TempDir()}, want: DriverFilesystem},
		{name: "memory", cfg: Config{Driver: DriverMemory}, want: DriverMemory},
		{name: "sqlite", cfg: Config{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "b.db")}, want: DriverSQLite},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, cleanup, err := Open(ctx, tc.cfg, logger)
			require.NoError(t, err)
			defer cleanup()
			assert.Equal(t, tc.want, store.Driver())
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, cleanup, err := Open(context.Background(), Config{Driver: "floppy"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.ErrorContains(t, err, "floppy")
	cleanup()
}

func TestOpen_SQLiteRequiresPath(t *testing.T) {
	_, _, err := Open(context.Background(), Config{Driver: DriverSQLite}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Error(t, err)
}
