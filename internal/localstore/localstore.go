// Package localstore persists the log store snapshot on the device.
//
// The adapter is a thin full-snapshot wrapper around a single
// key/value slot: every mutation of the in-memory log is followed by a
// complete rewrite of the slot, and startup reads it back once. Load
// never fails from the caller's point of view and Save is best-effort,
// so remote or disk trouble can never block local usability.
package localstore

import "github.com/liftbook/liftbook/internal/models"

// SlotKey is the single local slot holding the serialized log store.
const SlotKey = "store"

// Adapter is the local persistence dependency of the session store.
// Implementations must return the default empty log store from Load on
// absence or corruption, and swallow Save failures after logging them.
type Adapter interface {
	// Load reads the persisted snapshot, or the default empty store
	// when nothing usable is persisted.
	Load() *models.LogStore

	// Save overwrites the slot with the given snapshot. Best-effort.
	Save(snapshot *models.LogStore)

	// Close releases any resources held by the adapter.
	Close() error
}
