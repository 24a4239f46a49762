package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/souvenir-registry/internal/platform/blob/core"
)

type fakeClient struct {
	objects  map[string][]byte
	lastPut  *s3.PutObjectInput
	failWith error
}

func newFakeClient() *fakeClient {
	return &fakeClient{objects: map[string][]byte{}}
}

func (f *fakeClient) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	f.lastPut = in
	return &s3.PutObjectOutput{}, nil
}

func TestStore_PutGetWithPrefix(t *testing.T) {
	client := newFakeClient()
	store := NewWithClient(client, "registry", "/snapshots/")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "/souvenirs.json", []byte("[]"), core.PutOptions{
		ContentType: "application/json",
		Labels:      []string{"souvenirs"},
	}))

	assert.Contains(t, client.objects, "registry/snapshots/souvenirs.json")
	assert.Equal(t, "application/json", aws.ToString(client.lastPut.ContentType))
	assert.Equal(t, "souvenirs", client.lastPut.Metadata[labelsMetadataKey])

	got, err := store.Get(ctx, "souvenirs.json")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestStore_GetMissing(t *testing.T) {
	store := NewWithClient(newFakeClient(), "registry", "")

	_, err := store.Get(context.Background(), "absent.json")
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_WrapsClientErrors(t *testing.T) {
	client := newFakeClient()
	client.failWith = errors.New("access denied")
	store := NewWithClient(client, "registry", "")

	_, err := store.Get(context.Background(), "k")
	require.ErrorContains(t, err, "access denied")
	assert.NotErrorIs(t, err, core.ErrNotFound)
	require.ErrorContains(t, store.Put(context.Background(), "k", nil, core.PutOptions{}), "access denied")
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	require.Error(t, err)
}
