// Package remote implements the remote side of the sync protocol: the
// single-slot endpoint handlers and the blob stores behind them.
//
// The remote slot is an opaque string-keyed blob holding one log store
// snapshot. The endpoint does last-write-wins at the transport level;
// conflict resolution happens on the client before anything reaches
// this package.
package remote

import (
	"context"
	"os"
	"sync"
)

// SlotKey is the fixed key naming the single logical remote slot.
const SlotKey = "store"

// BlobStore abstracts where the remote server keeps its snapshot blob:
// memory for tests, a local file, or an S3-compatible bucket.
type BlobStore interface {
	// Read returns the blob for key, or os.ErrNotExist when the slot
	// has never been written.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write unconditionally overwrites the blob for key.
	Write(ctx context.Context, key string, data []byte) error

	// Exists reports whether the slot holds a blob.
	Exists(ctx context.Context, key string) (bool, error)

	// Close releases any resources.
	Close() error
}

// Ensure interfaces are implemented.
var (
	_ BlobStore = (*MemoryBlobStore)(nil)
	_ BlobStore = (*FileBlobStore)(nil)
	_ BlobStore = (*S3BlobStore)(nil)
)

// MemoryBlobStore keeps blobs in a map. Used in tests and throwaway
// dev servers.
type MemoryBlobStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBlobStore creates an empty in-memory blob store.
func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{data: make(map[string][]byte)}
}

// Read implements BlobStore.
func (m *MemoryBlobStore) Read(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

// Write implements BlobStore.
func (m *MemoryBlobStore) Write(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), data...)
	return nil
}

// Exists implements BlobStore.
func (m *MemoryBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.data[key]
	return ok, nil
}

// Close implements BlobStore.
func (m *MemoryBlobStore) Close() error {
	return nil
}
