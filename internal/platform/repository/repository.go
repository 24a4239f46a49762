// Package repository holds records in memory with two uniqueness rules: a
// repository-assigned integer id and a caller-defined business key. The
// whole collection is written back through a Persister after every
// successful mutation.
package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/exp/constraints"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record with the same key already exists")
)

// Persister loads and saves the full collection.
type Persister[T any] interface {
	Load(ctx context.Context) []T
	Save(ctx context.Context, records []T) error
}

// Schema tells the repository how to read identity and business key from a record.
// Key is separate from full-value equality: two records with the
// same key are duplicates even if every other field differs.
type Schema[T any, ID constraints.Integer, K comparable] struct {
	ID     func(T) ID
	WithID func(T, ID) T
	Key    func(T) K
	// Clone deep-copies a record. Nil means a plain value copy is enough.
	Clone func(T) T
}

// Repository is safe for concurrent use. Sequences spanning several calls
// (or several repositories) are not atomic.
type Repository[T any, ID constraints.Integer, K comparable] struct {
	mu      sync.RWMutex
	schema  Schema[T, ID, K]
	store   Persister[T]
	logger  *slog.Logger
	records map[ID]T
	keys    map[K]ID
}

type Option func(*settings)

type settings struct {
	logger *slog.Logger
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// New builds a repository and populates it from store. Loaded records whose
// id or key repeats an earlier one are dropped and logged.
func New[T any, ID constraints.Integer, K comparable](ctx context.Context, store Persister[T], schema Schema[T, ID, K], opts ...Option) *Repository[T, ID, K] {
	cfg := settings{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Repository[T, ID, K]{
		schema:  schema,
		store:   store,
		logger:  cfg.logger,
		records: map[ID]T{},
		keys:    map[K]ID{},
	}
	for _, record := range store.Load(ctx) {
		id, key := schema.ID(record), schema.Key(record)
		if id <= 0 {
			r.logger.LogAttrs(ctx, slog.LevelWarn, "skipping stored record without id")
			continue
		}
		if _, taken := r.records[id]; taken {
			r.logger.LogAttrs(ctx, slog.LevelWarn, "skipping stored record with duplicate id", slog.Int64("id", int64(id)))
			continue
		}
		if _, taken := r.keys[key]; taken {
			r.logger.LogAttrs(ctx, slog.LevelWarn, "skipping stored record with duplicate key", slog.Int64("id", int64(id)))
			continue
		}
		r.insert(r.clone(record))
	}
	return r
}

// Add assigns the next id (max existing id + 1, or 1 when empty) and stores a
// copy of record. It fails with ErrDuplicate when the key is already taken.
func (r *Repository[T, ID, K]) Add(ctx context.Context, record T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	if _, taken := r.keys[r.schema.Key(record)]; taken {
		return zero, ErrDuplicate
	}
	stored := r.schema.WithID(r.clone(record), r.nextID())
	r.insert(stored)
	r.persist(ctx)
	return r.clone(stored), nil
}

// Update replaces the record carrying record's id. When the new value collides
// with another record's key the previous value is restored and nothing is
// persisted.
func (r *Repository[T, ID, K]) Update(ctx context.Context, record T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	id := r.schema.ID(record)
	previous, ok := r.records[id]
	if !ok {
		return zero, ErrNotFound
	}
	r.delete(id)
	if _, taken := r.keys[r.schema.Key(record)]; taken {
		r.insert(previous)
		return zero, ErrDuplicate
	}
	stored := r.clone(record)
	r.insert(stored)
	r.persist(ctx)
	return r.clone(stored), nil
}

// Remove deletes the record with id. It reports false and ErrNotFound when
// there was nothing to delete, in which case nothing is persisted.
func (r *Repository[T, ID, K]) Remove(ctx context.Context, id ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return false, ErrNotFound
	}
	r.delete(id)
	r.persist(ctx)
	return true, nil
}

// GetAll returns copies of every record, ordered by id.
func (r *Repository[T, ID, K]) GetAll(ctx context.Context) []T {
	return r.Filter(ctx, nil)
}

// GetByID returns a copy of the record with id.
func (r *Repository[T, ID, K]) GetByID(_ context.Context, id ID) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return r.clone(record), nil
}

// Filter returns copies of the records matching keep (all when keep is nil),
// ordered by id.
func (r *Repository[T, ID, K]) Filter(_ context.Context, keep func(T) bool) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]T, 0, len(r.records))
	for _, record := range r.records {
		if keep == nil || keep(record) {
			list = append(list, r.clone(record))
		}
	}
	sort.Slice(list, func(i, j int) bool { return r.schema.ID(list[i]) < r.schema.ID(list[j]) })
	return list
}

// Len reports how many records are stored.
func (r *Repository[T, ID, K]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func (r *Repository[T, ID, K]) nextID() ID {
	var highest ID
	for id := range r.records {
		if id > highest {
			highest = id
		}
	}
	return highest + 1
}

func (r *Repository[T, ID, K]) insert(record T) {
	id := r.schema.ID(record)
	r.records[id] = record
	r.keys[r.schema.Key(record)] = id
}

func (r *Repository[T, ID, K]) delete(id ID) {
	record, ok := r.records[id]
	if !ok {
		return
	}
	delete(r.keys, r.schema.Key(record))
	delete(r.records, id)
}

// persist writes the whole collection. A failed write is logged and the
// in-memory change is kept.
func (r *Repository[T, ID, K]) persist(ctx context.Context) {
	snapshot := make([]T, 0, len(r.records))
	for _, record := range r.records {
		snapshot = append(snapshot, r.clone(record))
	}
	sort.Slice(snapshot, func(i, j int) bool { return r.schema.ID(snapshot[i]) < r.schema.ID(snapshot[j]) })
	if err := r.store.Save(ctx, snapshot); err != nil {
		r.logger.LogAttrs(ctx, slog.LevelError, "failed to persist collection, keeping in-memory state",
			slog.Int("records", len(snapshot)), slog.String("error", err.Error()))
	}
}

func (r *Repository[T, ID, K]) clone(record T) T {
	if r.schema.Clone == nil {
		return record
	}
	return r.schema.Clone(record)
}
