package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	gcs "cloud.google.com/go/storage"
)

// GCSBucket stores objects in Google Cloud Storage.
type GCSBucket struct {
	handle *gcs.BucketHandle
	name   string
}

func NewGCSBucket(handle *gcs.BucketHandle, name string) *GCSBucket {
	return &GCSBucket{handle: handle, name: name}
}

// Upload writes r to path, replacing any existing object.
func (b *GCSBucket) Upload(ctx context.Context, path string, r io.Reader, contentType string) error {
	w := b.handle.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to copy upload to gs://%s/%s: %w", b.name, path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close GCS writer for %s: %w", path, err)
	}
	return nil
}

func (b *GCSBucket) PublicURL(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "https://storage.googleapis.com/" + b.name + "/" + strings.Join(segments, "/")
}
