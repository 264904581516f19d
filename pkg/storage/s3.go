package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
)

// S3Store wraps the AWS S3 client for S3/R2/MinIO compatible storage
type S3Store struct {
	client   *s3.Client
	bucket   string
	cdnURL   string // optional CDN base URL
	basePath string // prefix for all objects (e.g. "voin/")
	maxSize  int64
}

// S3Config holds S3-compatible storage configuration
type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	CDNURL          string
	BasePath        string
	ForcePathStyle  bool // true for MinIO/R2
	MaxSize         int64
}

// NewS3Store creates a new S3-compatible storage client
func NewS3Store(cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	client := s3.New(s3.Options{}, func(o *s3.Options) {
		o.Region = cfg.Region
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})

	pkglogger.GetLogger().Info().
		Str("bucket", cfg.Bucket).
		Str("endpoint", cfg.Endpoint).
		Msg("S3 storage client initialized")

	return &S3Store{
		client:   client,
		bucket:   cfg.Bucket,
		cdnURL:   strings.TrimRight(cfg.CDNURL, "/"),
		basePath: cfg.BasePath,
		maxSize:  cfg.MaxSize,
	}, nil
}

// Save validates and uploads a profile image, returning its public URL
func (c *S3Store) Save(ctx context.Context, data []byte, ext string) (string, error) {
	if err := ValidateImage(ext, int64(len(data)), c.maxSize); err != nil {
		return "", err
	}

	key := c.basePath + GenerateKey("profiles", ext, time.Now())
	contentType := mime.TypeByExtension("." + ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}
	return c.PublicURL(key), nil
}

// PublicURL returns the CDN URL for a key, falling back to the S3 URL
func (c *S3Store) PublicURL(key string) string {
	if c.cdnURL != "" {
		return c.cdnURL + "/" + (&url.URL{Path: key}).EscapedPath()
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, key)
}

// GenerateKey creates "<prefix>/yyyy/mm/dd/<uuid>.<ext>"
func GenerateKey(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%d/%02d/%02d/%s",
		prefix, now.Year(), now.Month(), now.Day(), GenerateFileName(ext))
}
