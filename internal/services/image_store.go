package services

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"campaignhub/internal/config"
)

// ImageStore saves an uploaded campaign image and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

type s3Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type S3ImageStore struct {
	uploader      s3Uploader
	bucket        string
	publicBaseURL string
}

func NewS3ImageStore(cfg *config.S3Config) *S3ImageStore {
	return &S3ImageStore{
		uploader:      manager.NewUploader(cfg.Client),
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}
}

func (s *S3ImageStore) Put(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s.publicBaseURL, "/") + "/" + key, nil
}
