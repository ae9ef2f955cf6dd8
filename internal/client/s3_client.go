package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	appConfig "form-service/internal/config"
	"form-service/internal/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrObjectNotFound is returned when a key does not exist in the bucket
var ErrObjectNotFound = errors.New("object not found")

// S3ClientInterface defines the bucket operations the artifact store needs
type S3ClientInterface interface {
	ArtifactKey(prefix, name string) string
	UploadFile(ctx context.Context, key string, file io.Reader, contentType string) error
	GetFile(ctx context.Context, key string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, key string) error
	ListKeysOlderThan(ctx context.Context, prefix string, cutoff time.Time) ([]string, error)
}

// S3Client wraps the AWS S3 client
type S3Client struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
	metrics  *metrics.Metrics
}

// NewS3Client creates a new S3 client; an endpoint selects a path-style S3 compatible store such as MinIO
func NewS3Client(cfg *appConfig.S3Config, m *metrics.Metrics) (*S3Client, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("S3 region is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.Endpoint != "" {
		if cfg.AccessKey == "" || cfg.SecretKey == "" {
			return nil, fmt.Errorf("access key and secret key are required for a custom endpoint")
		}
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Client{
		client:   s3Client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: cfg.Endpoint,
		metrics:  m,
	}, nil
}

// ArtifactKey joins the prefix and the artifact name into an object key
func (c *S3Client) ArtifactKey(prefix, name string) string {
	return artifactKey(prefix, name)
}

func artifactKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func (c *S3Client) record(op, method, key string, start time.Time, err error) {
	status := 200
	if err != nil {
		status = 0
		if errors.Is(err, ErrObjectNotFound) {
			status = 404
		}
	}
	c.metrics.RecordExternalAPICall("s3:"+op+":"+key, method, status, time.Since(start), err)
}

// UploadFile uploads an object
func (c *S3Client) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (err error) {
	start := time.Now()
	defer func() { c.record("put", "PUT", key, start, err) }()

	_, err = c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}
	return nil
}

// GetFile opens an object for reading; a missing key yields ErrObjectNotFound
func (c *S3Client) GetFile(ctx context.Context, key string) (rc io.ReadCloser, err error) {
	start := time.Now()
	defer func() { c.record("get", "GET", key, start, err) }()

	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ErrObjectNotFound
		}
		return nil, fmt.Errorf("failed to get file from S3: %w", err)
	}
	return out.Body, nil
}

// DeleteFile deletes an object
func (c *S3Client) DeleteFile(ctx context.Context, key string) (err error) {
	start := time.Now()
	defer func() { c.record("delete", "DELETE", key, start, err) }()

	_, err = c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// ListKeysOlderThan lists the keys under prefix last modified before cutoff
func (c *S3Client) ListKeysOlderThan(ctx context.Context, prefix string, cutoff time.Time) (keys []string, err error) {
	start := time.Now()
	defer func() { c.record("list", "GET", prefix, start, err) }()

	listPrefix := strings.Trim(prefix, "/")
	if listPrefix != "" {
		listPrefix += "/"
	}

	paginator := s3.NewListObjectsV2Paginator(c.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(listPrefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list S3 objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || obj.LastModified == nil {
				continue
			}
			if obj.LastModified.Before(cutoff) {
				keys = append(keys, *obj.Key)
			}
		}
	}
	return keys, nil
}
