package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalBucket stores objects on disk under root/name and serves them from baseURL.
// Used in development when no cloud bucket is configured.
type LocalBucket struct {
	dir     string
	baseURL string
	name    string
}

func NewLocalBucket(root, baseURL, name string) *LocalBucket {
	return &LocalBucket{
		dir:     filepath.Join(root, name),
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
	}
}

func (b *LocalBucket) Upload(ctx context.Context, path string, r io.Reader, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean := filepath.Clean("/" + path)
	target := filepath.Join(b.dir, clean)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", target, err)
	}
	return f.Close()
}

func (b *LocalBucket) PublicURL(path string) string {
	return b.baseURL + "/" + b.name + "/" + strings.TrimLeft(filepath.ToSlash(filepath.Clean("/"+path)), "/")
}
