// Package setstore loads and saves a whole collection of records as one
// blob. It never partially updates the blob: every Save rewrites it.
package setstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Apurer/souvenir-registry/internal/platform/blob"
)

// Store persists a collection of T under a single blob key.
type Store[T any] struct {
	blobs   blob.Store
	key     string
	codec   Codec[T]
	logger  *slog.Logger
	metrics *Metrics
	labels  []string
}

type settings struct {
	logger  *slog.Logger
	metrics *Metrics
	labels  []string
}

type Option func(*settings)

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}

// WithLabels tags every saved blob, e.g. with the entity kind.
func WithLabels(labels ...string) Option {
	return func(s *settings) {
		s.labels = append([]string(nil), labels...)
	}
}

// New binds a store to key on blobs. A nil codec selects JSONCodec.
func New[T any](blobs blob.Store, key string, codec Codec[T], opts ...Option) *Store[T] {
	cfg := settings{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if codec == nil {
		codec = JSONCodec[T]{}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store[T]{
		blobs:   blobs,
		key:     key,
		codec:   codec,
		logger:  cfg.logger.With(slog.String("component", "setstore"), slog.String("key", key)),
		metrics: cfg.metrics,
		labels:  cfg.labels,
	}
}

// Key returns the blob key this store reads and writes.
func (s *Store[T]) Key() string { return s.key }

var (
	// ErrMissing means no snapshot exists under the key yet.
	ErrMissing = errors.New("snapshot not found")
	// ErrCorrupt means the snapshot exists but cannot be decoded.
	ErrCorrupt = errors.New("snapshot is corrupt")
)

// Load returns the persisted collection. A missing, unreadable or corrupt
// blob yields an empty collection; the cause is logged, never returned.
func (s *Store[T]) Load(ctx context.Context) []T {
	records, err := s.Read(ctx)
	switch {
	case err == nil:
		s.logger.LogAttrs(ctx, slog.LevelDebug, "snapshot loaded", slog.Int("records", len(records)))
		return records
	case errors.Is(err, ErrMissing):
		s.logger.LogAttrs(ctx, slog.LevelInfo, "no snapshot found, starting empty")
	default:
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to load snapshot, starting empty",
			slog.String("error", err.Error()))
	}
	return []T{}
}

// Read is Load without the fallback: it reports ErrMissing, ErrCorrupt or
// the blob store's error instead of returning an empty collection.
func (s *Store[T]) Read(ctx context.Context) ([]T, error) {
	started := time.Now()
	data, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			s.metrics.observe(s.key, operationLoad, resultMissing, started)
			return nil, fmt.Errorf("%w: %s", ErrMissing, s.key)
		}
		s.metrics.observe(s.key, operationLoad, resultError, started)
		return nil, fmt.Errorf("read snapshot %s: %w", s.key, err)
	}
	if len(data) == 0 {
		s.metrics.observe(s.key, operationLoad, resultCorrupt, started)
		return nil, fmt.Errorf("%w: %s is empty", ErrCorrupt, s.key)
	}
	records, err := s.codec.Unmarshal(data)
	if err != nil {
		s.metrics.observe(s.key, operationLoad, resultCorrupt, started)
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, s.key, err)
	}
	if records == nil {
		records = []T{}
	}
	s.metrics.observe(s.key, operationLoad, resultOK, started)
	return records, nil
}

// Save replaces the persisted collection with records.
func (s *Store[T]) Save(ctx context.Context, records []T) error {
	started := time.Now()
	data, err := s.codec.Marshal(records)
	if err != nil {
		s.metrics.observe(s.key, operationSave, resultError, started)
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to encode snapshot", slog.String("error", err.Error()))
		return fmt.Errorf("encode snapshot %s: %w", s.key, err)
	}
	opts := blob.PutOptions{ContentType: s.codec.ContentType(), Labels: s.labels}
	if err := s.blobs.Put(ctx, s.key, data, opts); err != nil {
		s.metrics.observe(s.key, operationSave, resultError, started)
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to write snapshot", slog.String("error", err.Error()))
		return fmt.Errorf("write snapshot %s: %w", s.key, err)
	}
	s.metrics.observe(s.key, operationSave, resultOK, started)
	s.logger.LogAttrs(ctx, slog.LevelDebug, "snapshot saved", slog.Int("records", len(records)))
	return nil
}
