package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestOpen_RejectsBlankDSN(t *testing.T) {
	db, cleanup, err := Open(context.Background(), "  ", nil)

	require.ErrorIs(t, err, ErrEmptyDSN)
	assert.Nil(t, db)
	cleanup()
}

func TestGormLogger_WritesWarningsThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	newGormLogger(log).Warn(context.Background(), "slow snapshot upsert %s", "manufacturers.json")

	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), "slow snapshot upsert manufacturers.json")
}

func TestGormLogger_SilencedLevelsStayQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	newGormLogger(log).LogMode(gormlogger.Silent).Warn(context.Background(), "ignored")

	assert.Empty(t, buf.String())
}
