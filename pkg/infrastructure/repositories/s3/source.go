// Package s3 provides a dataset source reading CSV files from an S3 or
// MinIO bucket.
package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	csvrepo "github.com/avelkar/supplysight/pkg/infrastructure/repositories/csv"
)

// Config holds connection settings for the bucket
type Config struct {
	Bucket string
	Prefix string
	Region string
	// Endpoint overrides the AWS endpoint, for MinIO or other S3
	// compatible stores. Empty uses AWS proper.
	Endpoint string
	// AccessKeyID and SecretAccessKey enable static credentials. Empty
	// falls back to the default AWS credential chain.
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
}

// Source opens dataset files stored under a bucket prefix
type Source struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// Verify interface compliance
var _ csvrepo.DatasetSource = (*Source)(nil)

// NewSource connects to the bucket described by the config
func NewSource(ctx context.Context, cfg Config, logger *zap.Logger) (*Source, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket cannot be empty")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AccessKeyID != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				if cfg.UseSSL {
					endpoint = "https://" + endpoint
				} else {
					endpoint = "http://" + endpoint
				}
			}
			o.BaseEndpoint = aws.String(endpoint)
			// Path-style addressing for MinIO compatibility
			o.UsePathStyle = true
		}
	})

	return &Source{
		client: client,
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
		logger: logger,
	}, nil
}

// Ping verifies bucket connectivity by listing a single object
func (s *Source) Ping(ctx context.Context) error {
	_, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.prefix),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to S3: %w", err)
	}
	return nil
}

// Open fetches an object under the configured prefix
func (s *Source) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := path.Join(s.prefix, name)

	s.logger.Debug("fetching dataset object",
		zap.String("bucket", s.bucket),
		zap.String("key", key))

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, key, err)
	}
	return result.Body, nil
}
