package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/golang/snappy"
)

// S3BlobStoreConfig configures the S3 blob store.
type S3BlobStoreConfig struct {
	Bucket string
	Region string
	// Endpoint overrides the S3 endpoint for compatible services
	// (MinIO, R2, localstack).
	Endpoint string
	// AccessKeyID and SecretAccessKey are optional static credentials.
	// Prefer IAM roles or the AWS_* environment variables; never commit
	// credentials to source control.
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
	UsePathStyle    bool
}

// S3BlobStore keeps blobs as snappy-compressed objects in an S3 or
// S3-compatible bucket.
type S3BlobStore struct {
	client *s3.Client
	config S3BlobStoreConfig
}

// NewS3BlobStore creates an S3-backed blob store.
func NewS3BlobStore(ctx context.Context, cfg S3BlobStoreConfig) (*S3BlobStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	var opts []func(*awsconfig.LoadOptions) error
	opts = append(opts, awsconfig.WithRegion(cfg.Region))
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.UsePathStyle
		})
	}

	return &S3BlobStore{
		client: s3.NewFromConfig(awsCfg, s3Opts...),
		config: cfg,
	}, nil
}

// Read implements BlobStore.
func (s *S3BlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.config.Prefix + key),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("S3 get object failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	compressed, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("S3 read body failed: %w", err)
	}
	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress blob %s: %w", key, err)
	}
	return data, nil
}

// Write implements BlobStore.
func (s *S3BlobStore) Write(ctx context.Context, key string, data []byte) error {
	compressed := snappy.Encode(nil, data)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.config.Prefix + key),
		Body:   bytes.NewReader(compressed),
	})
	if err != nil {
		return fmt.Errorf("S3 put object failed: %w", err)
	}
	return nil
}

// Exists implements BlobStore.
func (s *S3BlobStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.config.Prefix + key),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("S3 head object failed: %w", err)
	}
	return true, nil
}

// Close implements BlobStore.
func (s *S3BlobStore) Close() error {
	return nil
}
