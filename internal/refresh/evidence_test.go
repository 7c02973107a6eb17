package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloneboot/cloneboot/internal/platform/pcloud"
)

type fakeStore struct {
	buckets []string
	objects map[string][]byte
	putErr  error
}

func (s *fakeStore) EnsureBucket(_ context.Context, bucket string) error {
	s.buckets = append(s.buckets, bucket)
	return nil
}

func (s *fakeStore) PutObject(_ context.Context, bucket, key string, data []byte) error {
	if s.putErr != nil {
		return s.putErr
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[bucket+"/"+key] = data
	return nil
}

func TestWriteEvidence_WritesBundleLocally(t *testing.T) {
	ctx := newTestContext(t, &pcloud.MockClient{})
	ctx.State.FailedStage = StageAttachVolume
	ctx.State.BootVolumeID = "clone-boot"
	dir := t.TempDir()

	path := WriteEvidence(ctx, nil, "", dir, errors.New("attachment never confirmed"))
	require.NotEmpty(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var bundle Bundle
	require.NoError(t, json.Unmarshal(data, &bundle))
	assert.Equal(t, "dr-lpar", bundle.Target)
	assert.Equal(t, StageAttachVolume, bundle.FailedStage)
	assert.Contains(t, bundle.Error, "attachment never confirmed")
	assert.Equal(t, "clone-boot", bundle.State.BootVolumeID)
}

func TestWriteEvidence_UploadsWhenStoreConfigured(t *testing.T) {
	ctx := newTestContext(t, &pcloud.MockClient{})
	ctx.State.FailedStage = StageStartup
	store := &fakeStore{}

	path := WriteEvidence(ctx, store, "evidence", t.TempDir(), errors.New("boom"))
	require.NotEmpty(t, path)

	assert.Equal(t, []string{"evidence"}, store.buckets)
	require.Len(t, store.objects, 1)
	for key := range store.objects {
		assert.Contains(t, key, "evidence/dr-lpar/")
	}
}

func TestWriteEvidence_UploadFailureIsWarningOnly(t *testing.T) {
	ctx := newTestContext(t, &pcloud.MockClient{})
	store := &fakeStore{putErr: errors.New("access denied")}

	path := WriteEvidence(ctx, store, "evidence", t.TempDir(), errors.New("boom"))
	assert.NotEmpty(t, path)

	obs := ctx.Observer.(*testObserver)
	assert.NotEmpty(t, obs.warnings)
}

func TestWriteEvidence_NoOpOnSuccess(t *testing.T) {
	ctx := newTestContext(t, &pcloud.MockClient{})
	store := &fakeStore{}

	path := WriteEvidence(ctx, store, "evidence", t.TempDir(), nil)
	assert.Empty(t, path)
	assert.Empty(t, store.buckets)
}
