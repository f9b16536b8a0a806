package upload

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config holds connection settings for an S3-compatible object store.
type S3Config struct {
	Endpoint        string // e.g. "minio:9000"
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	// PublicBaseURL is prepended to object keys in stored URLs. When empty
	// the endpoint and bucket form the URL.
	PublicBaseURL string
}

// S3 stores uploads in a single bucket on an S3-compatible endpoint.
type S3 struct {
	mc      *minio.Client
	bucket  string
	baseURL string
}

// NewS3 connects to the endpoint and ensures the bucket exists.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.Bucket, err)
		}
	}

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &S3{mc: mc, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

func (s *S3) Save(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	if size > MaxUploadSize {
		return "", ErrTooLarge
	}
	name, err := objectName(filename)
	if err != nil {
		return "", err
	}

	_, err = s.mc.PutObject(ctx, s.bucket, name, r, size,
		minio.PutObjectOptions{ContentType: contentTypeFor(name)})
	if err != nil {
		return "", fmt.Errorf("put object %q: %w", name, err)
	}
	return s.baseURL + "/" + name, nil
}

func (s *S3) Remove(ctx context.Context, url string) error {
	name, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || name == "" {
		return nil
	}
	return s.mc.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{})
}
