// Package merge reconciles two log store snapshots into one.
//
// The merge is a deterministic union keyed on entry id: no entry is
// ever removed, mutated, or deduplicated by content. Run against the
// same inputs in either order it yields the same set of entries, and
// merging a snapshot with itself is a no-op. This is what makes the
// periodic fetch/merge/push cycle safe without a central authority
// resolving conflicts.
package merge

import (
	"sort"

	"github.com/liftbook/liftbook/internal/models"
)

// Merge unions two snapshots by entry id.
//
// The result starts as a copy of primary; every entry of secondary
// whose id is not already present is appended. The primary's units
// setting wins unconditionally and no weight conversion is performed,
// even when the two snapshots disagree on units (see UnitsMismatch).
//
// Entries are returned sorted by date ascending. Dates are ISO 8601
// strings so plain string comparison is chronological; the sort is
// stable so same-date entries keep their primary-then-secondary
// insertion order.
func Merge(primary, secondary *models.LogStore) *models.LogStore {
	result := primary.Clone()

	seen := make(map[string]struct{}, len(result.Sets))
	for _, e := range result.Sets {
		seen[e.ID] = struct{}{}
	}

	for _, e := range secondary.Sets {
		if _, ok := seen[e.ID]; ok {
			continue
		}
		seen[e.ID] = struct{}{}
		result.Sets = append(result.Sets, e.Clone())
	}

	sort.SliceStable(result.Sets, func(i, j int) bool {
		return result.Sets[i].Date < result.Sets[j].Date
	})

	return result
}

// UnitsMismatch reports whether merging the two snapshots discards a
// differing units setting. The weights themselves are never converted;
// callers that care should log the mismatch.
func UnitsMismatch(primary, secondary *models.LogStore) bool {
	return primary.Units != secondary.Units
}
