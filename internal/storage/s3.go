package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config describes an S3-compatible bucket (AWS, MinIO, R2...).
//
// PublicBaseURL is the prefix clients use to fetch objects; when empty the
// path-style endpoint URL "<Endpoint>/<Bucket>" is used.
type S3Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
	UsePathStyle  bool
}

// objectAPI is the subset of *s3.Client used by S3Sink.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Sink struct {
	api        objectAPI
	bucket     string
	publicBase string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

func NewS3Sink(ctx context.Context, c S3Config) (*S3Sink, error) {
	if c.Bucket == "" {
		return nil, fmt.Errorf("s3: bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3: load config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = c.UsePathStyle
	})

	return newS3Sink(client, c), nil
}

func newS3Sink(api objectAPI, c S3Config) *S3Sink {
	base := strings.TrimRight(c.PublicBaseURL, "/")
	if base == "" {
		endpoint := strings.TrimRight(c.Endpoint, "/")
		if endpoint == "" {
			endpoint = fmt.Sprintf("https://s3.%s.amazonaws.com", c.Region)
		}
		base = endpoint + "/" + c.Bucket
	}
	return &S3Sink{api: api, bucket: c.Bucket, publicBase: base}
}

func (s *S3Sink) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("s3: put %s: %w", key, err)
	}
	return s.publicBase + "/" + url.PathEscape(key), nil
}

// DeleteIfExists relies on S3 DeleteObject being idempotent for absent keys.
// URLs that do not belong to this sink are ignored.
func (s *S3Sink) DeleteIfExists(ctx context.Context, rawURL string) error {
	key, ok := s.KeyFromURL(rawURL)
	if !ok {
		return nil
	}
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3: delete %s: %w", key, err)
	}
	return nil
}

// KeyFromURL extracts the object key from a URL produced by Put.
func (s *S3Sink) KeyFromURL(rawURL string) (string, bool) {
	rest, found := strings.CutPrefix(rawURL, s.publicBase+"/")
	if !found || rest == "" {
		return "", false
	}
	key, err := url.PathUnescape(rest)
	if err != nil {
		return "", false
	}
	return key, true
}
