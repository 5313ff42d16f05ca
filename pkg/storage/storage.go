// Package storage uploads post media and avatars and builds their public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Bucket is a named object store accepting uploads at caller-chosen paths.
type Bucket interface {
	Upload(ctx context.Context, path string, r io.Reader, contentType string) error
	PublicURL(path string) string
}

// ObjectPath builds "{category}/{userID}_{unixMillis}.{ext}". The timestamp keeps
// two uploads by the same user from colliding.
func ObjectPath(category string, userID uint, at time.Time, filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%d_%d.%s", category, userID, at.UnixMilli(), ext)
}
