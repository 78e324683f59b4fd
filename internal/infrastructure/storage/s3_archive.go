// Package storage provides object storage implementations for archiving
// uploaded statement files.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	financeapp "github.com/strivehq/backend/internal/application/finance"
	infraconfig "github.com/strivehq/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Ensure S3StatementArchive implements StatementArchive
var _ financeapp.StatementArchive = (*S3StatementArchive)(nil)

// S3StatementArchive stores original statement uploads using the AWS S3 SDK v2.
// It is compatible with any S3-compatible storage (AWS S3, MinIO, RustFS, etc.)
type S3StatementArchive struct {
	client *s3.Client
	bucket string
	logger *zap.Logger
}

// S3StatementArchiveOption is a functional option for configuring S3StatementArchive
type S3StatementArchiveOption func(*S3StatementArchive)

// WithLogger sets a custom logger for S3StatementArchive
func WithLogger(logger *zap.Logger) S3StatementArchiveOption {
	return func(s *S3StatementArchive) {
		s.logger = logger
	}
}

// NewS3StatementArchive creates a new S3StatementArchive from configuration.
func NewS3StatementArchive(cfg *infraconfig.StorageConfig, opts ...S3StatementArchiveOption) (*S3StatementArchive, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:9000"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid storage endpoint: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	archive := &S3StatementArchive{
		client: client,
		bucket: cfg.Bucket,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(archive)
	}

	return archive, nil
}

// EnsureBucket creates the bucket if it doesn't exist.
// Call this during application startup.
func (s *S3StatementArchive) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		// Ignore "BucketAlreadyOwnedByYou" error (race condition)
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// Store uploads an original statement file under the given key
func (s *S3StatementArchive) Store(ctx context.Context, key, contentType string, data []byte) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	if len(data) == 0 {
		return errors.New("data is required")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	start := time.Now()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to archive statement: %w", err)
	}

	s.logger.Debug("statement archived",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// Delete removes an archived statement
func (s *S3StatementArchive) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete archived statement: %w", err)
	}
	return nil
}
