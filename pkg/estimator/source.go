package estimator

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Source yields the bytes of a model artifact.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

// FileSource reads an artifact from the local filesystem.
type FileSource struct {
	Path string
}

func (s FileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(s.Path) == "" {
		return nil, fmt.Errorf("estimator: file source has no path")
	}
	return os.Open(s.Path)
}

func (s FileSource) String() string { return "file:" + s.Path }

// MinioConfig locates an artifact object in a MinIO (or S3 compatible) bucket.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Object    string
	Secure    bool
}

// MinioSource reads an artifact object from a bucket.
type MinioSource struct {
	client *minio.Client
	bucket string
	object string
}

// NewMinioSource connects a minio client for cfg.
func NewMinioSource(cfg MinioConfig) (*MinioSource, error) {
	switch {
	case strings.TrimSpace(cfg.Endpoint) == "":
		return nil, fmt.Errorf("estimator: minio endpoint is required")
	case strings.TrimSpace(cfg.Bucket) == "":
		return nil, fmt.Errorf("estimator: minio bucket is required")
	case strings.TrimSpace(cfg.Object) == "":
		return nil, fmt.Errorf("estimator: minio object is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("estimator: minio client: %w", err)
	}
	return &MinioSource{client: client, bucket: cfg.Bucket, object: cfg.Object}, nil
}

// Open fetches the object. Missing objects surface on the first read, so the
// object is stat'ed up front to fail early.
func (s *MinioSource) Open(ctx context.Context) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

func (s *MinioSource) String() string {
	return "minio:" + s.bucket + "/" + s.object
}
