package emit

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// WriteRequest is one named output object
type WriteRequest struct {
	Name        string
	Data        []byte
	ContentType string
}

// Sink stores output objects.
type Sink interface {
	Write(ctx context.Context, req WriteRequest) error
}

// Content types for output objects
const (
	ContentTypeMIF     = "text/plain; charset=windows-1252"
	ContentTypeHTML    = "text/html; charset=utf-8"
	ContentTypeParquet = "application/vnd.apache.parquet"
	ContentTypeMetrics = "text/plain; version=0.0.4; charset=utf-8"
)

// DirSink writes objects as files in a local directory
type DirSink struct {
	dir string
}

// NewDirSink creates dir if needed and returns a sink writing into it.
func NewDirSink(dir string) (*DirSink, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &DirSink{dir: dir}, nil
}

// Dir returns the output directory.
func (s *DirSink) Dir() string {
	return s.dir
}

func (s *DirSink) Write(ctx context.Context, req WriteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if req.Name == "" || req.Name != filepath.Base(req.Name) {
		return fmt.Errorf("invalid output name %q", req.Name)
	}
	path := filepath.Join(s.dir, req.Name)
	if err := os.WriteFile(path, req.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// s3API is the subset of the S3 client used by S3Sink
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Sink uploads objects under a bucket prefix
type S3Sink struct {
	client s3API
	bucket string
	prefix string
}

// NewS3Sink returns a sink writing through client.
func NewS3Sink(client s3API, bucket, prefix string) (*S3Sink, error) {
	if client == nil {
		return nil, fmt.Errorf("s3 client is required")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	return &S3Sink{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}, nil
}

// NewS3SinkFromEnv builds an S3 client from the default AWS configuration
// chain (environment, shared config, instance role). An empty region keeps
// the chain's region.
func NewS3SinkFromEnv(ctx context.Context, region, bucket, prefix string) (*S3Sink, error) {
	var optFns []func(*config.LoadOptions) error
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewS3Sink(s3.NewFromConfig(awsCfg), bucket, prefix)
}

// Key returns the object key for an output name.
func (s *S3Sink) Key(name string) string {
	key := strings.TrimLeft(name, "/")
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	return key
}

func (s *S3Sink) Write(ctx context.Context, req WriteRequest) error {
	if req.Name == "" {
		return fmt.Errorf("empty key")
	}

	key := s.Key(req.Name)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(req.Data),
		ContentLength: aws.Int64(int64(len(req.Data))),
	}
	if req.ContentType != "" {
		input.ContentType = aws.String(req.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put s3 object key=%q: %w", key, err)
	}
	return nil
}
