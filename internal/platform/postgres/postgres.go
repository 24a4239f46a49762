// Package postgres opens the gorm connection used by the postgres blob driver.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Snapshot writes are whole-collection upserts issued one at a time per
// repository, so a small pool is plenty.
const (
	maxOpenConns    = 4
	maxIdleConns    = 2
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
	slowQuery       = 500 * time.Millisecond
)

var ErrEmptyDSN = errors.New("postgres DSN is empty")

// Open dials PostgreSQL, verifies it answers, and returns the DB plus a
// cleanup that closes the pool. gorm's own warnings are written to log.
func Open(ctx context.Context, dsn string, log *slog.Logger) (*gorm.DB, func(), error) {
	noop := func() {}
	if strings.TrimSpace(dsn) == "" {
		return nil, noop, ErrEmptyDSN
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newGormLogger(log)})
	if err != nil {
		return nil, noop, fmt.Errorf("connect postgres: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, noop, fmt.Errorf("unwrap postgres connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, noop, fmt.Errorf("ping postgres: %w", err)
	}

	log.Info("postgres connection established", slog.Int("maxOpenConns", maxOpenConns))
	return db, func() { _ = sqlDB.Close() }, nil
}

func newGormLogger(log *slog.Logger) gormlogger.Interface {
	return gormlogger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		gormlogger.Config{
			SlowThreshold:             slowQuery,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}
