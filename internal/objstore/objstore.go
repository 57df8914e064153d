// Package objstore uploads generated files to S3-compatible object storage.
package objstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/willfong/fintech-datagen/internal/config"
)

// ObjectStore is the subset of an object store the uploader needs
type ObjectStore interface {
	Put(ctx context.Context, bucket, obj string, reader io.Reader, size int64, contentType string) error
}

// MinioObjectStore implements ObjectStore on a minio client
type MinioObjectStore struct {
	client *minio.Client
}

// NewMinioObjectStore wraps an existing client
func NewMinioObjectStore(client *minio.Client) *MinioObjectStore {
	return &MinioObjectStore{client: client}
}

// NewMinioClient creates a client from storage settings
func NewMinioClient(cfg config.StorageConfig) (*minio.Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, nil
}

// Put uploads one object
func (s *MinioObjectStore) Put(ctx context.Context, bucket, obj string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, obj, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", bucket, obj, err)
	}
	return nil
}

// EnsureBucket creates the bucket unless it already exists
func (s *MinioObjectStore) EnsureBucket(ctx context.Context, bucket, region string) error {
	err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region})
	if err == nil {
		return nil
	}
	exists, existsErr := s.client.BucketExists(ctx, bucket)
	if existsErr != nil || !exists {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// Uploaded describes one file copied to the bucket
type Uploaded struct {
	Path string
	Key  string
	Size int64
}

// UploadDir copies every .csv and .csv.xz file in dir to bucket under
// prefix, in file name order. done, if set, is called after each upload.
func UploadDir(ctx context.Context, store ObjectStore, dir, bucket, prefix string, done func(Uploaded)) ([]Uploaded, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || ContentType(e.Name()) == "" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no CSV files found in %s", dir)
	}

	uploaded := make([]Uploaded, 0, len(names))
	for _, name := range names {
		u, err := uploadFile(ctx, store, filepath.Join(dir, name), bucket, ObjectKey(prefix, name))
		if err != nil {
			return uploaded, err
		}
		uploaded = append(uploaded, u)
		if done != nil {
			done(u)
		}
	}
	return uploaded, nil
}

func uploadFile(ctx context.Context, store ObjectStore, filePath, bucket, key string) (Uploaded, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return Uploaded{}, fmt.Errorf("failed to open %s: %w", filePath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Uploaded{}, fmt.Errorf("failed to stat %s: %w", filePath, err)
	}

	if err := store.Put(ctx, bucket, key, f, info.Size(), ContentType(filePath)); err != nil {
		return Uploaded{}, err
	}
	return Uploaded{Path: filePath, Key: key, Size: info.Size()}, nil
}

// ObjectKey joins a prefix and file name with single slashes
func ObjectKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

// ContentType returns the MIME type of an output file, or "" for files
// that are not table output.
func ContentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".csv.xz"):
		return "application/x-xz"
	case strings.HasSuffix(name, ".csv"):
		return "text/csv"
	default:
		return ""
	}
}
