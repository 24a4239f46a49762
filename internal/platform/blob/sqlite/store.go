package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/Apurer/souvenir-registry/internal/platform/blob/core"
)

const table = "blobs"

const schema = `CREATE TABLE IF NOT EXISTS blobs (
	key TEXT PRIMARY KEY,
	payload BLOB NOT NULL,
	content_type TEXT NOT NULL DEFAULT '',
	labels TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMP NOT NULL
)`

// Store keeps blobs in a single SQLite table.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates (if needed) and opens the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Driver() core.Driver { return core.DriverSQLite }

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := squirrel.Select("payload").From(table).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}
	var payload []byte
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("select blob %s: %w", key, err)
	}
	return payload, nil
}

func (s *Store) Put(ctx context.Context, key string, data []byte, opts core.PutOptions) error {
	query, args, err := squirrel.
		Insert(table).
		Columns("key", "payload", "content_type", "labels", "updated_at").
		Values(key, data, opts.ContentType, strings.Join(opts.Labels, ","), time.Now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET payload=excluded.payload, content_type=excluded.content_type, labels=excluded.labels, updated_at=excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert query: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert blob %s: %w", key, err)
	}
	return nil
}

// Labels returns the labels stored with key.
func (s *Store) Labels(ctx context.Context, key string) ([]string, error) {
	query, args, err := squirrel.Select("labels").From(table).Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}
	var raw string
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("select labels %s: %w", key, err)
	}
	if raw == "" {
		return nil, nil
	}
	return strings.Split(raw, ","), nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ core.Store = (*Store)(nil)
