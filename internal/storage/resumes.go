// Package storage stores résumé files in an S3-compatible object store.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds the object store connection settings
type Config struct {
	Endpoint      string // custom endpoint for S3-compatible stores, empty for AWS
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // base URL under which stored objects are publicly readable
}

// Store uploads and retrieves résumé objects
type Store struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// UploadError indicates a file upload to the object store failed
type UploadError struct {
	Key   string
	Cause error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to store resume %s: %v", e.Key, e.Cause)
}

func (e *UploadError) Unwrap() error { return e.Cause }

// New creates a store from static credentials
func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// ObjectKey builds a collision-resistant storage key from the original
// filename: a unix-millis prefix plus the name with whitespace replaced by
// underscores.
func ObjectKey(filename string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(filename))
}

// Upload stores the file under key and returns its publicly resolvable URL.
// The stored object has no access control.
func (s *Store) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", &UploadError{Key: key, Cause: err}
	}
	return s.URL(key), nil
}

// Download fetches the object a previously returned URL refers to
func (s *Store) Download(ctx context.Context, resumeURL string) ([]byte, error) {
	key := KeyFromURL(resumeURL)

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", key, err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("failed to read object body: %w", err)
	}
	return buf.Bytes(), nil
}

// URL returns the public URL for a storage key
func (s *Store) URL(key string) string {
	return s.publicBaseURL + "/" + key
}

// KeyFromURL extracts the storage key from a public URL. Keys never contain
// slashes, so the last path segment is the key.
func KeyFromURL(resumeURL string) string {
	if i := strings.LastIndex(resumeURL, "/"); i >= 0 {
		return resumeURL[i+1:]
	}
	return resumeURL
}

func sanitizeFilename(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, name)
}
