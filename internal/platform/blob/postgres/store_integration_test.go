//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/souvenir-registry/internal/platform/blob/core"
	"github.com/Apurer/souvenir-registry/internal/platform/migrations"
)

func setupBlobsPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("souvenirs_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestStore_PutAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupBlobsPostgresContainer(t)
	defer cleanup()

	store := New(db)
	ctx := context.Background()

	err := store.Put(ctx, "manufacturers.json", []byte(`[{"id":1,"name":"Acme","country":"USA"}]`), core.PutOptions{
		ContentType: "application/json",
		Labels:      []string{"manufacturers"},
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, "manufacturers.json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Acme","country":"USA"}]`, string(got))

	labels, err := store.Labels(ctx, "manufacturers.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"manufacturers"}, labels)
}

func TestStore_PutReplacesPayload(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupBlobsPostgresContainer(t)
	defer cleanup()

	store := New(db)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "souvenirs.json", []byte(`[{"id":1}]`), core.PutOptions{}))
	require.NoError(t, store.Put(ctx, "souvenirs.json", []byte(`[]`), core.PutOptions{Labels: []string{"souvenirs"}}))

	got, err := store.Get(ctx, "souvenirs.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	var count int64
	require.NoError(t, db.Model(&blobRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStore_GetMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupBlobsPostgresContainer(t)
	defer cleanup()

	_, err := New(db).Get(context.Background(), "absent.json")
	require.ErrorIs(t, err, core.ErrNotFound)
}
