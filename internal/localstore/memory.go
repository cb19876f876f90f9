package localstore

import (
	"sync"

	"github.com/liftbook/liftbook/internal/models"
)

// MemoryStore implements Adapter entirely in memory. It backs tests
// and ephemeral sessions where nothing should touch disk.
type MemoryStore struct {
	mu      sync.Mutex
	payload []byte
	// SaveCount counts Save calls, for tests asserting that every
	// mutation writes the full snapshot.
	SaveCount int
}

// NewMemoryStore creates an empty in-memory adapter.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load decodes the held payload, or returns the default empty store.
func (m *MemoryStore) Load() *models.LogStore {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.payload == nil {
		return models.NewLogStore()
	}
	snapshot, err := models.UnmarshalLogStore(m.payload)
	if err != nil {
		return models.NewLogStore()
	}
	return snapshot
}

// Save stores the serialized snapshot.
func (m *MemoryStore) Save(snapshot *models.LogStore) {
	payload, err := snapshot.Marshal()
	if err != nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = payload
	m.SaveCount++
}

// Corrupt replaces the held payload with garbage, for tests exercising
// the decode-failure fallback.
func (m *MemoryStore) Corrupt() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = []byte("{not json")
	m.SaveCount++
}

// Close implements Adapter.
func (m *MemoryStore) Close() error {
	return nil
}
