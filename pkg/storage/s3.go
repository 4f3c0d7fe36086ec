package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"erp-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

var ErrDisabled = errors.New("file storage is not configured")

type Storage interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// New returns an S3 backed storage, or one that rejects uploads when no bucket is configured.
func New(ctx context.Context, cfg utils.StorageConfig, log *zap.Logger) (Storage, error) {
	if cfg.Bucket == "" {
		log.Info("S3 bucket not configured, profile picture uploads are disabled")
		return disabled{}, nil
	}
	return NewS3Storage(ctx, cfg, log)
}

type S3Storage struct {
	client *s3.Client
	cfg    utils.StorageConfig
	log    *zap.Logger
}

func NewS3Storage(ctx context.Context, cfg utils.StorageConfig, log *zap.Logger) (*S3Storage, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Storage{
		client: client,
		cfg:    cfg,
		log:    log.With(zap.String("component", "storage")),
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		s.log.Error("Failed to upload object",
			zap.Error(err),
			zap.String("bucket", s.cfg.Bucket),
			zap.String("key", key),
		)
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return ObjectURL(s.cfg, key), nil
}

// ObjectURL builds the public URL of an object key.
func ObjectURL(cfg utils.StorageConfig, key string) string {
	key = strings.TrimLeft(key, "/")
	switch {
	case cfg.PublicURL != "":
		return cfg.PublicURL + "/" + key
	case cfg.Endpoint != "":
		return strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", cfg.Bucket, cfg.Region, key)
	}
}

type disabled struct{}

func (disabled) Upload(context.Context, string, io.Reader, int64, string) (string, error) {
	return "", ErrDisabled
}
