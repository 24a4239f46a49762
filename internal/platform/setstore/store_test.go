package setstore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/souvenir-registry/internal/platform/blob"
	blobmemory "github.com/Apurer/souvenir-registry/internal/platform/blob/memory"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type recordingBlobs struct {
	*blobmemory.Store
	opts    blob.PutOptions
	getErr  error
	putErr  error
	getHits int
}

func newRecordingBlobs() *recordingBlobs {
	return &recordingBlobs{Store: blobmemory.New()}
}

func (r *recordingBlobs) Get(ctx context.Context, key string) ([]byte, error) {
	r.getHits++
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.Store.Get(ctx, key)
}

func (r *recordingBlobs) Put(ctx context.Context, key string, data []byte, opts blob.PutOptions) error {
	if r.putErr != nil {
		return r.putErr
	}
	r.opts = opts
	return r.Store.Put(ctx, key, data, opts)
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	blobs := newRecordingBlobs()
	store := New[item](blobs, "items.json", nil, WithLabels("items"))
	ctx := context.Background()

	want := []item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	require.NoError(t, store.Save(ctx, want))

	assert.Empty(t, cmp.Diff(want, store.Load(ctx)))
	assert.Equal(t, "application/json", blobs.opts.ContentType)
	assert.Equal(t, []string{"items"}, blobs.opts.Labels)
}

func TestSave_EmptyCollectionWritesEmptyArray(t *testing.T) {
	blobs := newRecordingBlobs()
	store := New[item](blobs, "items.json", nil)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, nil))
	raw, err := blobs.Store.Get(ctx, "items.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))
	assert.NotNil(t, store.Load(ctx))
	assert.Empty(t, store.Load(ctx))
}

func TestLoad_MissingSnapshotIsEmpty(t *testing.T) {
	store := New[item](newRecordingBlobs(), "absent.json", nil)

	got := store.Load(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err := store.Read(context.Background())
	require.ErrorIs(t, err, ErrMissing)
}

func TestLoad_CorruptSnapshotIsEmpty(t *testing.T) {
	cases := map[string]string{
		"empty":     "",
		"truncated": `[{"id":1,"name":"a"`,
		"wrong":     `{"id":1}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			blobs := newRecordingBlobs()
			ctx := context.Background()
			require.NoError(t, blobs.Store.Put(ctx, "items.json", []byte(payload), blob.PutOptions{}))
			store := New[item](blobs, "items.json", nil)

			assert.Empty(t, store.Load(ctx))
			_, err := store.Read(ctx)
			require.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestLoad_ReadFailureIsEmpty(t *testing.T) {
	blobs := newRecordingBlobs()
	blobs.getErr = errors.New("connection reset")
	store := New[item](blobs, "items.json", nil)

	assert.Empty(t, store.Load(context.Background()))
	_, err := store.Read(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissing)
	assert.NotErrorIs(t, err, ErrCorrupt)
}

func TestSave_PropagatesWriteFailure(t *testing.T) {
	blobs := newRecordingBlobs()
	blobs.putErr = errors.New("read-only filesystem")
	store := New[item](blobs, "items.json", nil)

	err := store.Save(context.Background(), []item{{ID: 1}})
	require.ErrorContains(t, err, "read-only filesystem")
	assert.ErrorContains(t, err, "items.json")
}

func TestMappedCodec_ConvertsRecords(t *testing.T) {
	type wire struct {
		Label string `json:"label"`
	}
	codec := MappedCodec[item, wire]{
		ToRecord: func(i item) wire { return wire{Label: i.Name} },
		ToDomain: func(w wire) (item, error) {
			if w.Label == "" {
				return item{}, errors.New("label required")
			}
			return item{Name: w.Label}, nil
		},
	}

	data, err := codec.Marshal([]item{{ID: 9, Name: "a"}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"label": "a"`)

	back, err := codec.Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, []item{{Name: "a"}}, back)

	_, err = codec.Unmarshal([]byte(`[{"label":""}]`))
	require.Error(t, err)
}

func TestMetrics_CountOutcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	blobs := newRecordingBlobs()
	store := New[item](blobs, "items.json", nil, WithMetrics(metrics))
	ctx := context.Background()

	store.Load(ctx)
	require.NoError(t, store.Save(ctx, []item{{ID: 1}}))
	store.Load(ctx)
	require.NoError(t, blobs.Store.Put(ctx, "items.json", []byte("{"), blob.PutOptions{}))
	store.Load(ctx)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("items.json", operationLoad, resultMissing)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("items.json", operationLoad, resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("items.json", operationLoad, resultCorrupt)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("items.json", operationSave, resultOK)))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.duration))
}

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	first := NewMetrics(registry)
	second := NewMetrics(registry)

	first.observe("k", operationSave, resultOK, time.Now())
	second.observe("k", operationSave, resultOK, time.Now())
	assert.Equal(t, 2.0, testutil.ToFloat64(first.operations.WithLabelValues("k", operationSave, resultOK)))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var metrics *Metrics
	assert.NotPanics(t, func() {
		metrics.observe("k", operationLoad, resultOK, time.Now())
	})
}
