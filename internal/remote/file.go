package remote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
)

// FileBlobStore keeps blobs as snappy-compressed files under a base
// directory. Writes go through a temp file and rename so a crashed
// server never leaves a torn snapshot behind.
type FileBlobStore struct {
	baseDir string
}

// NewFileBlobStore creates a file-backed blob store rooted at baseDir.
func NewFileBlobStore(baseDir string) (*FileBlobStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}
	return &FileBlobStore{baseDir: filepath.Clean(absDir)}, nil
}

// safePath validates that key resolves inside the base directory.
func (f *FileBlobStore) safePath(key string) (string, error) {
	resolved := filepath.Clean(filepath.Join(f.baseDir, filepath.Clean(key)+".snappy"))
	if resolved != f.baseDir && !strings.HasPrefix(resolved, f.baseDir+string(os.PathSeparator)) {
		return "", errors.New("invalid key: path traversal attempt detected")
	}
	return resolved, nil
}

// Read implements BlobStore.
func (f *FileBlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	path, err := f.safePath(key)
	if err != nil {
		return nil, err
	}
	compressed, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress blob %s: %w", key, err)
	}
	return data, nil
}

// Write implements BlobStore.
func (f *FileBlobStore) Write(ctx context.Context, key string, data []byte) error {
	path, err := f.safePath(key)
	if err != nil {
		return err
	}
	compressed := snappy.Encode(nil, data)

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, compressed, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Exists implements BlobStore.
func (f *FileBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	path, err := f.safePath(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Close implements BlobStore.
func (f *FileBlobStore) Close() error {
	return nil
}
