// Package models provides data model definitions for the liftbook backend.
package models

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/liftbook/liftbook/internal/errors"
)

// Category classifies a logged set into one of the training groups.
type Category string

const (
	CategoryPush Category = "push"
	CategoryPull Category = "pull"
	CategoryLegs Category = "legs"
)

// Valid reports whether the category is one of the known groups.
func (c Category) Valid() bool {
	switch c {
	case CategoryPush, CategoryPull, CategoryLegs:
		return true
	}
	return false
}

// DateLayout is the calendar-date format used on every entry.
// ISO 8601 dates sort lexicographically in chronological order, which
// the merge engine relies on.
const DateLayout = "2006-01-02"

// Entry represents one logged exercise set.
//
// ID is assigned at creation and immutable afterwards. It is the sole
// identity used when reconciling local and remote copies of the log:
// two entries with the same ID denote the same logical set everywhere.
type Entry struct {
	ID       string   `json:"id"`
	Date     string   `json:"date"`
	Exercise string   `json:"exercise"`
	Category Category `json:"category"`
	Weight   float64  `json:"weight"`
	Reps     int      `json:"reps"`
	RPE      *float64 `json:"rpe,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// NewEntryID returns a fresh globally unique entry identifier.
func NewEntryID() string {
	return uuid.NewString()
}

// Validate checks the entry against the required-field rules applied
// before an entry may enter a log store.
func (e *Entry) Validate() error {
	if e.ID == "" {
		return apperrors.New(apperrors.ErrEntryInvalid, "entry id is required")
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return apperrors.Wrap(apperrors.ErrEntryInvalid, "date must be YYYY-MM-DD", err)
	}
	if e.Exercise == "" {
		return apperrors.New(apperrors.ErrEntryInvalid, "exercise name is required")
	}
	if !e.Category.Valid() {
		return apperrors.New(apperrors.ErrEntryInvalid, "category must be push, pull or legs")
	}
	if e.Weight < 0 {
		return apperrors.New(apperrors.ErrEntryInvalid, "weight must be non-negative")
	}
	if e.Reps <= 0 {
		return apperrors.New(apperrors.ErrEntryInvalid, "reps must be a positive count")
	}
	return nil
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	out := e
	if e.RPE != nil {
		rpe := *e.RPE
		out.RPE = &rpe
	}
	return out
}
