package storage

import (
	"context"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSStorage mirrors artifacts to a Cloud Storage bucket.
type GCSStorage struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSStorage(ctx context.Context, bucket, prefix string) (*GCSStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}

	return &GCSStorage{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

func (s *GCSStorage) SaveScript(ctx context.Context, filename string, content []byte) (string, error) {
	return s.upload(ctx, filename, content, "text/plain; charset=utf-8")
}

func (s *GCSStorage) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	return s.upload(ctx, filename, data, "image/png")
}

// List returns the artifact object names under the configured prefix.
func (s *GCSStorage) List(ctx context.Context) ([]string, error) {
	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: s.prefix + "/"})

	var names []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list bucket objects: %w", err)
		}
		names = append(names, path.Base(attrs.Name))
	}
	return names, nil
}

func (s *GCSStorage) upload(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	object := path.Join(s.prefix, filename)
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload artifact: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, object), nil
}
