// Package objectstore keeps listing images in an S3-compatible bucket.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImagePrefix is the folder every listing image is stored under.
const ImagePrefix = "startupImages"

var ErrNotFound = errors.New("object not found")

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

type Store interface {
	// Upload writes body under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	PublicURL(key string) string
	// PresignUpload returns a URL a client can PUT the object to directly.
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	Stat(ctx context.Context, key string) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

// ImageKey builds a unique key for an uploaded listing image, keeping the
// original file extension.
func ImageKey(now time.Time, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%d-%s%s", ImagePrefix, now.UnixMilli(), uuid.NewString(), ext)
}

// IsImageKey reports whether key names an object under ImagePrefix.
func IsImageKey(key string) bool {
	rest, ok := strings.CutPrefix(key, ImagePrefix+"/")
	return ok && rest != "" && !strings.Contains(rest, "..")
}
