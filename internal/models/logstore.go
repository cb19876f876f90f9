package models

import (
	"encoding/json"

	apperrors "github.com/liftbook/liftbook/internal/errors"
)

// errMissingSets flags a payload that parses as JSON but lacks the
// sets array, which callers must treat as corrupt.
var errMissingSets = apperrors.New(apperrors.ErrStorageDecode, "log store payload missing sets array")

// Units is the display and storage weight unit of a log snapshot.
// It applies uniformly to every entry in the snapshot; there is no
// per-entry unit tagging.
type Units string

const (
	UnitsPounds    Units = "lb"
	UnitsKilograms Units = "kg"
)

// Valid reports whether the units value is one of the known units.
func (u Units) Valid() bool {
	return u == UnitsPounds || u == UnitsKilograms
}

// LogStore is the full workout log for one user: an unordered
// collection of entries plus the unit setting. This is the aggregate
// that is persisted locally and synchronized remotely, always as a
// whole snapshot.
type LogStore struct {
	Units Units   `json:"units"`
	Sets  []Entry `json:"sets"`
}

// NewLogStore returns the default empty log store. It is also the
// fallback whenever a persisted or remote payload cannot be decoded.
func NewLogStore() *LogStore {
	return &LogStore{Units: UnitsPounds, Sets: []Entry{}}
}

// Clone returns a deep copy of the snapshot.
func (s *LogStore) Clone() *LogStore {
	out := &LogStore{Units: s.Units, Sets: make([]Entry, 0, len(s.Sets))}
	for _, e := range s.Sets {
		out.Sets = append(out.Sets, e.Clone())
	}
	return out
}

// IDs returns the set of entry ids present in the snapshot.
func (s *LogStore) IDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(s.Sets))
	for _, e := range s.Sets {
		ids[e.ID] = struct{}{}
	}
	return ids
}

// Len returns the number of entries in the snapshot.
func (s *LogStore) Len() int {
	return len(s.Sets)
}

// Marshal encodes the snapshot as JSON, the single wire and storage
// format used by both the local slot and the remote endpoint.
func (s *LogStore) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// UnmarshalLogStore decodes a snapshot from JSON. A payload without a
// sets array is rejected so corrupt blobs surface as decode errors
// instead of silently empty logs.
func UnmarshalLogStore(data []byte) (*LogStore, error) {
	var raw struct {
		Units Units            `json:"units"`
		Sets  *json.RawMessage `json:"sets"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	s := &LogStore{Units: raw.Units}
	if !s.Units.Valid() {
		s.Units = UnitsPounds
	}
	if raw.Sets == nil {
		return nil, errMissingSets
	}
	if err := json.Unmarshal(*raw.Sets, &s.Sets); err != nil {
		return nil, err
	}
	if s.Sets == nil {
		s.Sets = []Entry{}
	}
	return s, nil
}
