package merge

import (
	"reflect"
	"sort"
	"testing"

	"github.com/liftbook/liftbook/internal/models"
)

// =====================================================
// Test Helpers
// =====================================================

func entry(id, date string) models.Entry {
	return models.Entry{
		ID:       id,
		Date:     date,
		Exercise: "bench press",
		Category: models.CategoryPush,
		Weight:   100,
		Reps:     5,
	}
}

func store(units models.Units, entries ...models.Entry) *models.LogStore {
	s := &models.LogStore{Units: units, Sets: []models.Entry{}}
	s.Sets = append(s.Sets, entries...)
	return s
}

func ids(s *models.LogStore) []string {
	out := make([]string, 0, len(s.Sets))
	for _, e := range s.Sets {
		out = append(out, e.ID)
	}
	sort.Strings(out)
	return out
}

// =====================================================
// Merge Property Tests
// =====================================================

// TestMergeDisjoint verifies the union of disjoint snapshots, ordered by date.
func TestMergeDisjoint(t *testing.T) {
	local := store(models.UnitsPounds, entry("1", "2024-01-01"))
	remote := store(models.UnitsPounds, entry("2", "2024-01-02"))

	got := Merge(local, remote)

	if got.Len() != 2 {
		t.Fatalf("merged len = %d, want 2", got.Len())
	}
	if got.Sets[0].ID != "1" || got.Sets[1].ID != "2" {
		t.Errorf("merged order = [%s %s], want [1 2]", got.Sets[0].ID, got.Sets[1].ID)
	}
}

// TestMergeDuplicateID verifies id-keyed deduplication.
func TestMergeDuplicateID(t *testing.T) {
	a := store(models.UnitsPounds, entry("1", "2024-01-01"))
	b := store(models.UnitsPounds, entry("1", "2024-01-01"))

	got := Merge(a, b)

	if got.Len() != 1 {
		t.Fatalf("merged len = %d, want 1", got.Len())
	}
	if got.Sets[0].ID != "1" {
		t.Errorf("merged entry id = %s, want 1", got.Sets[0].ID)
	}
}

// TestMergeIdempotent verifies merge(A, A) == A as a set.
func TestMergeIdempotent(t *testing.T) {
	a := store(models.UnitsKilograms,
		entry("a", "2024-03-01"),
		entry("b", "2024-03-02"),
		entry("c", "2024-03-03"),
	)

	got := Merge(a, a)

	if !reflect.DeepEqual(ids(got), ids(a)) {
		t.Errorf("merge(A, A) ids = %v, want %v", ids(got), ids(a))
	}
	if got.Len() != a.Len() {
		t.Errorf("merge(A, A) len = %d, want %d", got.Len(), a.Len())
	}
}

// TestMergeCommutativeContent verifies both orders yield the same id set.
func TestMergeCommutativeContent(t *testing.T) {
	a := store(models.UnitsPounds,
		entry("a", "2024-01-01"),
		entry("shared", "2024-01-02"),
	)
	b := store(models.UnitsKilograms,
		entry("b", "2024-01-03"),
		entry("shared", "2024-01-02"),
	)

	ab := Merge(a, b)
	ba := Merge(b, a)

	if !reflect.DeepEqual(ids(ab), ids(ba)) {
		t.Errorf("merge(A,B) ids = %v, merge(B,A) ids = %v", ids(ab), ids(ba))
	}
}

// TestMergeMonotonic verifies |merge| == |A| + |B| - |intersection|.
func TestMergeMonotonic(t *testing.T) {
	a := store(models.UnitsPounds,
		entry("a", "2024-01-01"),
		entry("x", "2024-01-02"),
		entry("y", "2024-01-03"),
	)
	b := store(models.UnitsPounds,
		entry("b", "2024-01-04"),
		entry("x", "2024-01-02"),
		entry("y", "2024-01-03"),
	)

	got := Merge(a, b)

	want := 3 + 3 - 2
	if got.Len() != want {
		t.Errorf("merged len = %d, want %d", got.Len(), want)
	}
	if got.Len() < a.Len() || got.Len() < b.Len() {
		t.Errorf("merged len %d shrank below an input", got.Len())
	}
}

// TestMergeSortInvariant verifies non-decreasing dates after merge.
func TestMergeSortInvariant(t *testing.T) {
	a := store(models.UnitsPounds,
		entry("late", "2024-06-01"),
		entry("early", "2024-01-15"),
	)
	b := store(models.UnitsPounds,
		entry("mid", "2024-03-10"),
	)

	got := Merge(a, b)

	for i := 1; i < got.Len(); i++ {
		if got.Sets[i-1].Date > got.Sets[i].Date {
			t.Fatalf("dates out of order at %d: %s > %s", i, got.Sets[i-1].Date, got.Sets[i].Date)
		}
	}
}

// TestMergeStableSameDate verifies same-date ties keep primary-then-secondary order.
func TestMergeStableSameDate(t *testing.T) {
	a := store(models.UnitsPounds, entry("first", "2024-02-01"))
	b := store(models.UnitsPounds, entry("second", "2024-02-01"))

	got := Merge(a, b)

	if got.Sets[0].ID != "first" || got.Sets[1].ID != "second" {
		t.Errorf("same-date order = [%s %s], want [first second]", got.Sets[0].ID, got.Sets[1].ID)
	}
}

// TestMergeUnitsPreserved verifies the primary's units always win, unconverted.
func TestMergeUnitsPreserved(t *testing.T) {
	a := store(models.UnitsKilograms, entry("a", "2024-01-01"))
	b := store(models.UnitsPounds, entry("b", "2024-01-02"))

	got := Merge(a, b)
	if got.Units != models.UnitsKilograms {
		t.Errorf("merge(A,B).Units = %s, want kg", got.Units)
	}

	got = Merge(b, a)
	if got.Units != models.UnitsPounds {
		t.Errorf("merge(B,A).Units = %s, want lb", got.Units)
	}

	// Weights keep their numbers under the winning label.
	for _, e := range got.Sets {
		if e.Weight != 100 {
			t.Errorf("weight converted to %v, want 100", e.Weight)
		}
	}
}

// TestMergeDoesNotMutateInputs verifies inputs survive untouched.
func TestMergeDoesNotMutateInputs(t *testing.T) {
	a := store(models.UnitsPounds, entry("z", "2024-05-05"), entry("a", "2024-01-01"))
	b := store(models.UnitsKilograms, entry("m", "2024-02-02"))

	aIDs := append([]string{}, a.Sets[0].ID, a.Sets[1].ID)
	Merge(a, b)

	if a.Sets[0].ID != aIDs[0] || a.Sets[1].ID != aIDs[1] || a.Len() != 2 {
		t.Error("merge mutated primary input")
	}
	if b.Len() != 1 || b.Units != models.UnitsKilograms {
		t.Error("merge mutated secondary input")
	}
}

// TestUnitsMismatch verifies mismatch detection.
func TestUnitsMismatch(t *testing.T) {
	lb := store(models.UnitsPounds)
	kg := store(models.UnitsKilograms)

	if !UnitsMismatch(lb, kg) {
		t.Error("UnitsMismatch(lb, kg) = false, want true")
	}
	if UnitsMismatch(lb, lb) {
		t.Error("UnitsMismatch(lb, lb) = true, want false")
	}
}

// TestMergeEmpty verifies merging with empty snapshots.
func TestMergeEmpty(t *testing.T) {
	empty := models.NewLogStore()
	a := store(models.UnitsKilograms, entry("a", "2024-01-01"))

	got := Merge(empty, a)
	if got.Len() != 1 {
		t.Errorf("merge(empty, A) len = %d, want 1", got.Len())
	}
	if got.Units != models.UnitsPounds {
		t.Errorf("merge(empty, A).Units = %s, want lb (primary default)", got.Units)
	}

	got = Merge(a, empty)
	if got.Len() != 1 || got.Units != models.UnitsKilograms {
		t.Errorf("merge(A, empty) = %d entries units %s, want 1 entry kg", got.Len(), got.Units)
	}
}
