// internal/config/s3.go
package config

import (
	"context"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the client and bucket used for campaign images.
type S3Config struct {
	Client        *s3.Client
	Bucket        string
	PublicBaseURL string
}

// NewS3Config builds an S3 client from cfg. Static credentials are used when
// both keys are set, otherwise the default AWS credential chain applies.
func NewS3Config(ctx context.Context, cfg *Config) (*S3Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	publicBase := cfg.S3PublicBaseURL
	if publicBase == "" {
		publicBase = "https://" + cfg.S3Bucket + ".s3." + cfg.AWSRegion + ".amazonaws.com"
	}

	return &S3Config{
		Client:        s3.NewFromConfig(awsCfg),
		Bucket:        cfg.S3Bucket,
		PublicBaseURL: strings.TrimRight(publicBase, "/"),
	}, nil
}
