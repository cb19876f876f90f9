// Package session owns the authoritative in-memory log store for one
// running application session.
//
// Every mutation is followed by a full-snapshot write to the local
// persistence adapter; nothing is ever partially persisted. The store
// is mutex-guarded because the sync orchestrator and HTTP handlers
// touch it from different goroutines.
package session

import (
	"sync"

	apperrors "github.com/liftbook/liftbook/internal/errors"
	"github.com/liftbook/liftbook/internal/localstore"
	"github.com/liftbook/liftbook/internal/logging"
	"github.com/liftbook/liftbook/internal/models"
)

// Store holds the live log for the session.
type Store struct {
	mu       sync.Mutex
	snapshot *models.LogStore
	persist  localstore.Adapter
}

// NewStore loads the persisted snapshot and wraps it in a live store.
func NewStore(persist localstore.Adapter) *Store {
	return &Store{
		snapshot: persist.Load(),
		persist:  persist,
	}
}

// Snapshot returns a deep copy of the current log. Consumers (stats,
// sync, handlers) never receive live references.
func (s *Store) Snapshot() *models.LogStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Clone()
}

// Len returns the current entry count.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshot.Sets)
}

// Units returns the current display unit.
func (s *Store) Units() models.Units {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Units
}

// AddEntry validates and appends a new entry. A missing id is assigned
// here; a caller-supplied id is kept, since merged-in remote entries
// arrive with their identity fixed.
func (s *Store) AddEntry(e models.Entry) (models.Entry, error) {
	if e.ID == "" {
		e.ID = models.NewEntryID()
	}
	if err := e.Validate(); err != nil {
		return models.Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.snapshot.IDs()[e.ID]; exists {
		return models.Entry{}, apperrors.New(apperrors.ErrEntryInvalid, "entry id already present")
	}

	s.snapshot.Sets = append(s.snapshot.Sets, e.Clone())
	s.persist.Save(s.snapshot)
	return e, nil
}

// DeleteEntry removes an entry from the local log.
//
// There is no tombstone model: the delete is purely local and is not
// propagated to the remote slot or other devices. An entry deleted
// here can reappear after a sync from a device that still holds it.
func (s *Store) DeleteEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.snapshot.Sets {
		if e.ID == id {
			s.snapshot.Sets = append(s.snapshot.Sets[:i], s.snapshot.Sets[i+1:]...)
			s.persist.Save(s.snapshot)
			return nil
		}
	}
	return apperrors.New(apperrors.ErrEntryNotFound, "no entry with id "+id)
}

// SetUnits changes the display unit for the whole log. Weights are not
// converted; the unit is a label applied uniformly to the snapshot.
func (s *Store) SetUnits(u models.Units) error {
	if !u.Valid() {
		return apperrors.New(apperrors.ErrInvalid, "units must be lb or kg")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Units = u
	s.persist.Save(s.snapshot)
	return nil
}

// Adopt replaces the live snapshot with a merged one and persists it.
// Used by the sync orchestrator when the remote copy holds entries the
// local one lacks.
func (s *Store) Adopt(snapshot *models.LogStore) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.snapshot.Sets)
	s.snapshot = snapshot.Clone()
	s.persist.Save(s.snapshot)

	if after := len(s.snapshot.Sets); after != before {
		logging.Info("adopted merged snapshot", logging.Fields{
			"entries_before": before,
			"entries_after":  after,
		})
	}
}
