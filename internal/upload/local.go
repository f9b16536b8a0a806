package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local writes uploads to a directory on disk. The server mounts the same
// directory under the public URL prefix.
type Local struct {
	dir    string
	prefix string
}

// NewLocal creates the upload directory if needed. prefix is the public URL
// path the directory is served under, normally "/uploads".
func NewLocal(dir, prefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, prefix: strings.TrimSuffix(prefix, "/")}, nil
}

// Dir returns the directory uploads are written to.
func (l *Local) Dir() string { return l.dir }

func (l *Local) Save(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	if size > MaxUploadSize {
		return "", ErrTooLarge
	}
	name, err := objectName(filename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(l.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	defer f.Close()

	// Read one byte past the cap so a reader longer than its declared size
	// is caught instead of silently truncated.
	n, err := io.Copy(f, io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if n > MaxUploadSize {
		os.Remove(f.Name())
		return "", ErrTooLarge
	}
	return l.prefix + "/" + name, nil
}

func (l *Local) Remove(ctx context.Context, url string) error {
	name, ok := strings.CutPrefix(url, l.prefix+"/")
	if !ok || name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(l.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
