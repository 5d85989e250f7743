// Package storage uploads catalog and quote images to an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sangkips/remodela-api/internal/config"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured    = errors.New("storage: bucket not configured")
	ErrUnsupportedImage = errors.New("storage: unsupported image type")
	ErrTooLarge         = errors.New("storage: file too large")
)

var allowedImages = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// ImageStore persists an image and returns the URL it is publicly served from.
type ImageStore interface {
	PutImage(ctx context.Context, folder string, data []byte) (string, error)
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3ImageStore struct {
	client    objectPutter
	bucket    string
	publicURL string
	maxSize   int64
	now       func() time.Time
	log       *zap.Logger
}

// NewS3ImageStore builds a path-style client so MinIO and R2 endpoints work.
func NewS3ImageStore(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (*S3ImageStore, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		if cfg.Endpoint != "" {
			publicURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return newS3ImageStore(client, cfg.Bucket, publicURL, cfg.UploadMaxSize, log), nil
}

func newS3ImageStore(client objectPutter, bucket, publicURL string, maxSize int64, log *zap.Logger) *S3ImageStore {
	return &S3ImageStore{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		maxSize:   maxSize,
		now:       time.Now,
		log:       log,
	}
}

// PutImage sniffs the content type, stores the object under
// folder/yyyy/mm/<uuid>.<ext> and returns its public URL.
func (s *S3ImageStore) PutImage(ctx context.Context, folder string, data []byte) (string, error) {
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return "", ErrTooLarge
	}
	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImages...) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedImage, mtype.String())
	}

	key := path.Join(folder, s.now().UTC().Format("2006/01"), uuid.NewString()+mtype.Extension())
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(mtype.String()),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	s.log.Info("image uploaded", zap.String("key", key), zap.Int("bytes", len(data)))
	return s.publicURL + "/" + key, nil
}
