package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/souvenir-registry/internal/platform/blob/core"
)

func TestStore_CopiesPayloads(t *testing.T) {
	store := New()
	ctx := context.Background()
	payload := []byte("abc")

	require.NoError(t, store.Put(ctx, "k", payload, core.PutOptions{}))
	payload[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'y'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
	assert.Equal(t, []string{"k"}, store.Keys())
}

func TestStore_GetMissing(t *testing.T) {
	_, err := New().Get(context.Background(), "k")
	require.ErrorIs(t, err, core.ErrNotFound)
}
