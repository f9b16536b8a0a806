package upload

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "/uploads")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	ctx := context.Background()

	url, err := l.Save(ctx, "photo.JPG", strings.NewReader("fake image bytes"), 16)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/") || !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("url = %q", url)
	}

	name := strings.TrimPrefix(url, "/uploads/")
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "fake image bytes" {
		t.Fatalf("content = %q", b)
	}

	if err := l.Remove(ctx, url); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
		t.Fatal("file still exists after remove")
	}

	// Removing an unknown URL is a no-op.
	if err := l.Remove(ctx, url); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestLocalRejectsNonImages(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "/uploads")
	if err != nil {
		t.Fatal(err)
	}

	_, err = l.Save(context.Background(), "malware.exe", strings.NewReader("x"), 1)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestLocalRejectsOversize(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "/uploads")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	// Declared size over the cap fails before any bytes are read.
	_, err = l.Save(ctx, "big.png", strings.NewReader("x"), MaxUploadSize+1)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("declared oversize: expected ErrTooLarge, got %v", err)
	}

	// A reader longer than its declared size must error, not truncate.
	payload := bytes.NewReader(make([]byte, MaxUploadSize+4096))
	_, err = l.Save(ctx, "liar.png", payload, 16)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("lying size: expected ErrTooLarge, got %v", err)
	}

	// Nothing is left behind on either path.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected upload left %d files behind", len(entries))
	}

	// Exactly at the cap still works.
	if _, err := l.Save(ctx, "full.png", bytes.NewReader(make([]byte, MaxUploadSize)), MaxUploadSize); err != nil {
		t.Fatalf("at-cap save: %v", err)
	}
}

func TestLocalRemoveIgnoresTraversal(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "/uploads")
	if err != nil {
		t.Fatal(err)
	}

	outside := filepath.Join(dir, "..", "victim.txt")
	if err := os.WriteFile(outside, []byte("keep me"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := l.Remove(context.Background(), "/uploads/../victim.txt"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatal("traversal deleted a file outside the upload dir")
	}
}

func TestObjectNameUnique(t *testing.T) {
	a, err := objectName("x.png")
	if err != nil {
		t.Fatal(err)
	}
	b, err := objectName("x.png")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("object names collide")
	}
}
