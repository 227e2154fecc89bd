// Package s3 implements the FileStorage collaborator on top of an
// S3-compatible object store.
package s3

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/amoghdiagnostic/site-api/internal/core/ports"
)

// Config captures the settings for the object storage backend.
type Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the AWS endpoint for S3-compatible stores (MinIO).
	Endpoint string
}

// Storage uploads files to a single bucket and returns their public URLs.
type Storage struct {
	client *s3.Client
	cfg    Config
}

// New builds the S3 client. Static credentials are used when provided,
// otherwise the default AWS credential chain applies.
func New(ctx context.Context, cfg Config) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Storage{client: client, cfg: cfg}, nil
}

// Upload streams the multipart file into the bucket under folder and
// returns its public URL. Keys are date-partitioned and randomized so
// uploads never collide.
func (s *Storage) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := s.objectKey(folder, file.Filename)
	contentType := file.Header.Get("Content-Type")

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentLength: aws.Int64(file.Size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return s.objectURL(key), nil
}

// Delete removes the object addressed by a URL previously returned from
// Upload. Unknown URLs are rejected before any API call.
func (s *Storage) Delete(ctx context.Context, rawURL string) error {
	key, err := s.keyFromURL(rawURL)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (s *Storage) objectKey(folder, filename string) string {
	d := time.Now().UTC()
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s/%d/%02d/%s%s", folder, d.Year(), d.Month(), uuid.New(), ext)
}

func (s *Storage) objectURL(key string) string {
	if s.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.cfg.Endpoint, "/"), s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

func (s *Storage) keyFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse object url: %w", err)
	}
	path := strings.TrimPrefix(u.Path, "/")
	// Path-style URLs carry the bucket as the first path segment.
	if rest, ok := strings.CutPrefix(path, s.cfg.Bucket+"/"); ok {
		return rest, nil
	}
	if path == "" {
		return "", fmt.Errorf("object url has no key: %s", rawURL)
	}
	return path, nil
}

var _ ports.FileStorage = (*Storage)(nil)
