package remote

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// =====================================================
// MemoryBlobStore Tests
// =====================================================

// TestMemoryBlobStore verifies basic read/write/exists behavior.
func TestMemoryBlobStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBlobStore()

	if _, err := store.Read(ctx, SlotKey); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read on empty slot = %v, want ErrNotExist", err)
	}
	if ok, _ := store.Exists(ctx, SlotKey); ok {
		t.Error("Exists on empty slot = true")
	}

	if err := store.Write(ctx, SlotKey, []byte("snapshot-1")); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	got, err := store.Read(ctx, SlotKey)
	if err != nil || string(got) != "snapshot-1" {
		t.Errorf("Read = %q, %v, want snapshot-1", got, err)
	}
	if ok, _ := store.Exists(ctx, SlotKey); !ok {
		t.Error("Exists after Write = false")
	}

	// Overwrite is unconditional.
	store.Write(ctx, SlotKey, []byte("snapshot-2"))
	got, _ = store.Read(ctx, SlotKey)
	if string(got) != "snapshot-2" {
		t.Errorf("Read after overwrite = %q, want snapshot-2", got)
	}
}

// TestMemoryBlobStoreCopies verifies stored bytes are isolated from
// caller buffers.
func TestMemoryBlobStoreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryBlobStore()

	buf := []byte("original")
	store.Write(ctx, SlotKey, buf)
	buf[0] = 'X'

	got, _ := store.Read(ctx, SlotKey)
	if string(got) != "original" {
		t.Errorf("stored blob mutated via caller buffer: %q", got)
	}
}

// =====================================================
// FileBlobStore Tests
// =====================================================

// TestFileBlobStoreRoundTrip verifies the compressed file round trip.
func TestFileBlobStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewFileBlobStore(dir)
	if err != nil {
		t.Fatalf("NewFileBlobStore error: %v", err)
	}

	payload := []byte(`{"units":"lb","sets":[]}`)
	if err := store.Write(ctx, SlotKey, payload); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	got, err := store.Read(ctx, SlotKey)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Read = %q, want %q", got, payload)
	}

	// The on-disk bytes are compressed, not the raw payload.
	raw, err := os.ReadFile(filepath.Join(dir, SlotKey+".snappy"))
	if err != nil {
		t.Fatalf("reading blob file: %v", err)
	}
	if string(raw) == string(payload) {
		t.Error("blob stored uncompressed")
	}

	if ok, _ := store.Exists(ctx, SlotKey); !ok {
		t.Error("Exists after Write = false")
	}
}

// TestFileBlobStoreMissing verifies ErrNotExist on an unwritten slot.
func TestFileBlobStoreMissing(t *testing.T) {
	store, err := NewFileBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBlobStore error: %v", err)
	}

	if _, err := store.Read(context.Background(), SlotKey); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read on missing slot = %v, want ErrNotExist", err)
	}
	if ok, _ := store.Exists(context.Background(), SlotKey); ok {
		t.Error("Exists on missing slot = true")
	}
}

// TestFileBlobStoreTraversal verifies path traversal keys are rejected.
func TestFileBlobStoreTraversal(t *testing.T) {
	store, err := NewFileBlobStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileBlobStore error: %v", err)
	}

	if err := store.Write(context.Background(), "../escape", []byte("x")); err == nil {
		t.Error("Write with traversal key succeeded")
	}
	if _, err := store.Read(context.Background(), "../../etc/passwd"); err == nil {
		t.Error("Read with traversal key succeeded")
	}
}
