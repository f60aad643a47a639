package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config holds settings for the S3-compatible image bucket.
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	Endpoint        string // optional, for S3-compatible providers (path-style)
}

// ImageStore stores uploaded images in an S3-compatible bucket. Images are
// downscaled and re-encoded as JPEG before upload.
type ImageStore struct {
	client *s3.Client
	bucket string

	// base URL objects are served from, without trailing slash
	publicBase string
}

func NewImageStore(ctx context.Context, cfg Config) (*ImageStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	var publicBase string

	if cfg.Endpoint != "" {
		endpoint := strings.TrimRight(cfg.Endpoint, "/")
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + endpoint)
			o.UsePathStyle = true
		})
		publicBase = fmt.Sprintf("https://%s/%s", endpoint, cfg.Bucket)
	} else {
		client = s3.NewFromConfig(awsCfg)
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &ImageStore{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: publicBase,
	}, nil
}

// Upload compresses the image and writes it under the given folder with a
// generated key. Returns the public URL and the object key.
func (s *ImageStore) Upload(ctx context.Context, folder string, data []byte, contentType string) (string, string, error) {
	compressed, err := compressImage(data, maxImageDimension, jpegQuality)
	if err != nil {
		return "", "", fmt.Errorf("storage: %w", err)
	}

	key := fmt.Sprintf("%s/%s.jpg", strings.Trim(folder, "/"), uuid.NewString())

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(compressed),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", "", fmt.Errorf("storage: upload failed: %w", err)
	}

	return s.publicBase + "/" + key, key, nil
}

// Delete removes an object by key.
func (s *ImageStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: delete failed: %w", err)
	}
	return nil
}
