package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sangkips/remodela-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestPutImage(t *testing.T) {
	fake := &fakePutter{}
	store := newS3ImageStore(fake, "media", "https://cdn.remodela.cr/", 1024, zap.NewNop())
	store.now = func() time.Time { return time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC) }

	url, err := store.PutImage(context.Background(), "quotes", pngHeader)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://cdn.remodela.cr/quotes/2026/03/"))
	assert.True(t, strings.HasSuffix(url, ".png"))
	assert.Equal(t, "media", *fake.input.Bucket)
	assert.Equal(t, "image/png", *fake.input.ContentType)
	assert.Equal(t, pngHeader, fake.body)
}

func TestPutImage_Rejections(t *testing.T) {
	store := newS3ImageStore(&fakePutter{}, "media", "https://cdn", 8, zap.NewNop())

	_, err := store.PutImage(context.Background(), "x", pngHeader)
	assert.ErrorIs(t, err, ErrTooLarge)

	store.maxSize = 0
	_, err = store.PutImage(context.Background(), "x", []byte("plain text, not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestPutImage_UploadFailure(t *testing.T) {
	store := newS3ImageStore(&fakePutter{err: errors.New("boom")}, "media", "https://cdn", 0, zap.NewNop())
	_, err := store.PutImage(context.Background(), "x", pngHeader)
	assert.Error(t, err)
}

func TestNewS3ImageStore_NotConfigured(t *testing.T) {
	_, err := NewS3ImageStore(context.Background(), config.StorageConfig{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
