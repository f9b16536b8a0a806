// Package upload stores product images. The default backend writes to a
// local directory served under /uploads/; when an S3-compatible endpoint is
// configured, objects go to MinIO instead and the stored URL points at the
// bucket.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadSize caps a single image upload.
const MaxUploadSize = 10 << 20 // 10 MiB

var allowedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ErrUnsupportedType reports a file extension outside the image whitelist.
var ErrUnsupportedType = errors.New("unsupported file type")

// ErrTooLarge reports an upload over MaxUploadSize.
var ErrTooLarge = errors.New("upload exceeds size limit")

// Storage persists uploaded images and serves back public URLs.
type Storage interface {
	// Save stores the object and returns its public URL.
	Save(ctx context.Context, filename string, r io.Reader, size int64) (string, error)
	// Remove deletes a previously saved object by its public URL. Unknown
	// URLs are ignored.
	Remove(ctx context.Context, url string) error
}

// objectName builds a collision-free stored name from the original
// filename, keeping the extension for content-type sniffing.
func objectName(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExts[ext] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String() + ext, nil
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
