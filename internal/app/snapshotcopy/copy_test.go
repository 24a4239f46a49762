package snapshotcopy

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/souvenir-registry/internal/platform/blob"
	blobmemory "github.com/Apurer/souvenir-registry/internal/platform/blob/memory"
	blobsqlite "github.com/Apurer/souvenir-registry/internal/platform/blob/sqlite"
	"github.com/Apurer/souvenir-registry/internal/platform/setstore"
)

var keys = Keys{Manufacturers: "manufacturers.json", Souvenirs: "souvenirs.json"}

func TestCopy_MovesBothCollections(t *testing.T) {
	ctx := context.Background()
	src := blobmemory.New()
	require.NoError(t, src.Put(ctx, keys.Manufacturers, []byte(`[{"id":1,"name":"Acme","country":"USA"},{"id":2,"name":"Globex","country":"UK"}]`), blob.PutOptions{}))
	require.NoError(t, src.Put(ctx, keys.Souvenirs, []byte(`[{"id":1,"name":"Mug","manufacturerId":1,"productionDate":"2020-05-01","price":9.5}]`), blob.PutOptions{}))

	dst, err := blobsqlite.Open(ctx, filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	defer dst.Close()

	result, err := Copy(ctx, src, dst, keys, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Manufacturers: 2, Souvenirs: 1}, result)

	souvenirs, err := dst.Get(ctx, keys.Souvenirs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Mug","manufacturerId":1,"productionDate":"2020-05-01","price":9.5}]`, string(souvenirs))

	labels, err := dst.Labels(ctx, keys.Manufacturers)
	require.NoError(t, err)
	assert.Equal(t, []string{"manufacturers"}, labels)
}

func TestCopy_MissingSourceWritesEmptyCollection(t *testing.T) {
	ctx := context.Background()
	src, dst := blobmemory.New(), blobmemory.New()

	result, err := Copy(ctx, src, dst, keys, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{}, result)

	data, err := dst.Get(ctx, keys.Manufacturers)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCopy_CorruptSourceAborts(t *testing.T) {
	ctx := context.Background()
	src, dst := blobmemory.New(), blobmemory.New()
	require.NoError(t, src.Put(ctx, keys.Manufacturers, []byte(`[{"id":1,"name":"Acme"`), blob.PutOptions{}))

	_, err := Copy(ctx, src, dst, keys, nil)
	require.ErrorIs(t, err, setstore.ErrCorrupt)
	assert.Empty(t, dst.Keys())
}
