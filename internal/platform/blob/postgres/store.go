package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/souvenir-registry/internal/platform/blob/core"
)

var _ core.Store = (*Store)(nil)

// Store persists blobs in PostgreSQL using GORM. Caller manages DB lifecycle.
type Store struct {
	db *gorm.DB
}

// New wires a PostgreSQL-backed blob store.
func New(db *gorm.DB) *Store {
	store := &Store{db: db}
	if db != nil {
		_ = db.AutoMigrate(&blobRecord{})
	}
	return store
}

// blobRecord maps one snapshot to a row.
type blobRecord struct {
	Key         string         `gorm:"primaryKey;column:key;size:512"`
	Payload     []byte         `gorm:"column:payload;type:bytea"`
	ContentType string         `gorm:"column:content_type;type:varchar(128)"`
	Labels      pq.StringArray `gorm:"column:labels;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;index"`
}

func (blobRecord) TableName() string { return "blobs" }

func (s *Store) Driver() core.Driver { return core.DriverPostgres }

// Get fetches the payload stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record blobRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return record.Payload, nil
}

// Put inserts or replaces the payload stored under key.
func (s *Store) Put(ctx context.Context, key string, data []byte, opts core.PutOptions) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := blobRecord{
		Key:         key,
		Payload:     data,
		ContentType: opts.ContentType,
		Labels:      pq.StringArray(opts.Labels),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key"}},
			DoUpdates: clause.Assignments(map[string]any{
				"payload":      record.Payload,
				"content_type": record.ContentType,
				"labels":       record.Labels,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error
}

// Labels returns the labels recorded with the blob.
func (s *Store) Labels(ctx context.Context, key string) ([]string, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record blobRecord
	if err := s.db.WithContext(ctx).Select("key", "labels").First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	return []string(record.Labels), nil
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres blob store not configured")
	}
	return nil
}
