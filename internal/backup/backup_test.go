package backup

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/quire/internal/binder"
	"github.com/Paintersrp/quire/internal/config"
)

type fakeUploader struct {
	objects map[string]string
	fail    string
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	key := aws.ToString(input.Key)
	if key == f.fail {
		return nil, errors.New("boom")
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = make(map[string]string)
	}
	f.objects[key] = string(data)
	return &manager.UploadOutput{}, nil
}

func project(t *testing.T) *binder.Binder {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"draft/one.md":        "one",
		"draft/_folder.yaml":  "order: [one.md]\n",
		"research/cover.png":  "png",
		"research/ignore.doc": "nope",
	}
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	b, err := binder.Load(root)
	require.NoError(t, err)
	return b
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), "novel", config.BackupConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestPrefix(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	assert.Equal(t, "quire/novel/20240506T070809Z", Prefix("/quire/", "novel", at))
	assert.Equal(t, "novel/20240506T070809Z", Prefix("", "novel", at))
}

func TestRunUploadsBinderFiles(t *testing.T) {
	up := &fakeUploader{}
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	bk, err := New(context.Background(), "novel",
		config.BackupConfig{Bucket: "shelf", Prefix: "quire"},
		WithUploader(up),
		WithClock(func() time.Time { return at }),
	)
	require.NoError(t, err)

	res, err := bk.Run(context.Background(), project(t))
	require.NoError(t, err)

	assert.Equal(t, "shelf", res.Bucket)
	assert.Equal(t, []string{
		"quire/novel/20240506T070809Z/draft/_folder.yaml",
		"quire/novel/20240506T070809Z/draft/one.md",
		"quire/novel/20240506T070809Z/research/cover.png",
	}, res.Keys)
	assert.Equal(t, "one", up.objects["quire/novel/20240506T070809Z/draft/one.md"])
}

func TestRunStopsOnFailure(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	up := &fakeUploader{fail: "novel/20240506T070809Z/draft/one.md"}

	bk, err := New(context.Background(), "novel",
		config.BackupConfig{Bucket: "shelf"},
		WithUploader(up),
		WithClock(func() time.Time { return at }),
	)
	require.NoError(t, err)

	res, err := bk.Run(context.Background(), project(t))
	require.Error(t, err)
	assert.Equal(t, []string{"novel/20240506T070809Z/draft/_folder.yaml"}, res.Keys)
}

func TestRunHonoursCancellation(t *testing.T) {
	bk, err := New(context.Background(), "novel",
		config.BackupConfig{Bucket: "shelf"},
		WithUploader(&fakeUploader{}),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = bk.Run(ctx, project(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv(EnvAccessKeyID, "")
	t.Setenv(EnvSecretAccessKey, "")
	_, ok := envCredentials()
	assert.False(t, ok)

	t.Setenv(EnvAccessKeyID, "AKID")
	t.Setenv(EnvSecretAccessKey, "secret")
	provider, ok := envCredentials()
	require.True(t, ok)

	creds, err := provider.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKID", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}
