package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema used by the postgres blob driver.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&blobRecord{})
}

// Blob schema mirrors the postgres blob store.
type blobRecord struct {
	Key         string         `gorm:"primaryKey;column:key;size:512"`
	Payload     []byte         `gorm:"column:payload;type:bytea"`
	ContentType string         `gorm:"column:content_type;type:varchar(128)"`
	Labels      pq.StringArray `gorm:"column:labels;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;index"`
}

func (blobRecord) TableName() string { return "blobs" }
