package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Spaces archives source PDFs in an S3-compatible object store (DigitalOcean
// Spaces by default), the way the teacher's storage.SpacesService uploads
// processed documents — adapted here to archive ingest inputs instead of
// serving processed outputs (SPEC_FULL.md §11).
type Spaces struct {
	client *s3.Client
	bucket string
}

// SpacesConfig carries the connection parameters for an S3-compatible
// backend; field names mirror internal/config.StorageConfig.
type SpacesConfig struct {
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Endpoint  string // e.g. "https://nyc3.digitaloceanspaces.com"; empty uses AWS default resolution
}

// NewSpaces builds a Spaces archiver from cfg, resolving a custom endpoint
// the same way the teacher's NewSpacesService does for DigitalOcean.
func NewSpaces(ctx context.Context, cfg SpacesConfig) (*Spaces, error) {
	var resolverOpts []func(*awsconfig.LoadOptions) error
	resolverOpts = append(resolverOpts,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, resolverOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = false
	})

	return &Spaces{client: client, bucket: cfg.Bucket}, nil
}

func (sp *Spaces) Put(ctx context.Context, sourceTitle string, content []byte) (string, error) {
	key := Key(sourceTitle, content)
	_, err := sp.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(sp.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put %s: %w", key, err)
	}
	return key, nil
}

func (sp *Spaces) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := sp.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(sp.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: get %s: %w", key, err)
	}
	defer out.Body.Close()
	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", key, err)
	}
	return content, nil
}

func (sp *Spaces) IsHealthy(ctx context.Context) bool {
	_, err := sp.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(sp.bucket)})
	return err == nil
}
