package localstore

import (
	"testing"

	"github.com/liftbook/liftbook/internal/models"
)

// =====================================================
// MemoryStore Tests
// =====================================================

// TestMemoryStoreDefault verifies Load before any Save.
func TestMemoryStoreDefault(t *testing.T) {
	m := NewMemoryStore()

	got := m.Load()
	if got.Units != models.UnitsPounds || got.Len() != 0 {
		t.Errorf("Load() = %+v, want default empty store", got)
	}
}

// TestMemoryStoreRoundTrip verifies save-then-load equality.
func TestMemoryStoreRoundTrip(t *testing.T) {
	m := NewMemoryStore()
	s := &models.LogStore{
		Units: models.UnitsKilograms,
		Sets: []models.Entry{
			{ID: "a", Date: "2024-01-01", Exercise: "squat", Category: models.CategoryLegs, Weight: 120, Reps: 5},
		},
	}

	m.Save(s)
	got := m.Load()

	if got.Units != models.UnitsKilograms || got.Len() != 1 || got.Sets[0].ID != "a" {
		t.Errorf("Load() after Save() = %+v, want saved snapshot", got)
	}
}

// TestMemoryStoreCorrupt verifies the parse-failure fallback.
func TestMemoryStoreCorrupt(t *testing.T) {
	m := NewMemoryStore()
	m.Corrupt()

	got := m.Load()
	if got.Units != models.UnitsPounds || got.Len() != 0 {
		t.Errorf("Load() on corrupt payload = %+v, want default empty store", got)
	}
}

// =====================================================
// SQLiteStore Tests
// =====================================================

// TestSQLiteStoreRoundTrip verifies persistence across reopen.
func TestSQLiteStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	s := &models.LogStore{
		Units: models.UnitsKilograms,
		Sets: []models.Entry{
			{ID: "a", Date: "2024-02-01", Exercise: "bench press", Category: models.CategoryPush, Weight: 90, Reps: 5},
			{ID: "b", Date: "2024-02-02", Exercise: "chin up", Category: models.CategoryPull, Weight: 0, Reps: 10},
		},
	}
	store.Save(s)

	if err := store.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer reopened.Close()

	got := reopened.Load()
	if got.Units != models.UnitsKilograms || got.Len() != 2 {
		t.Fatalf("Load() after reopen = %d entries units %s, want 2 entries kg", got.Len(), got.Units)
	}
	if got.Sets[0].ID != "a" || got.Sets[1].ID != "b" {
		t.Errorf("Load() entries = [%s %s], want [a b]", got.Sets[0].ID, got.Sets[1].ID)
	}
}

// TestSQLiteStoreEmpty verifies Load on a fresh database.
func TestSQLiteStoreEmpty(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	got := store.Load()
	if got.Units != models.UnitsPounds || got.Len() != 0 {
		t.Errorf("Load() on fresh db = %+v, want default empty store", got)
	}
}

// TestSQLiteStoreOverwrite verifies every save fully replaces the slot.
func TestSQLiteStoreOverwrite(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer store.Close()

	first := &models.LogStore{Units: models.UnitsPounds, Sets: []models.Entry{{ID: "a"}, {ID: "b"}}}
	store.Save(first)

	second := &models.LogStore{Units: models.UnitsKilograms, Sets: []models.Entry{{ID: "c"}}}
	store.Save(second)

	got := store.Load()
	if got.Len() != 1 || got.Sets[0].ID != "c" || got.Units != models.UnitsKilograms {
		t.Errorf("Load() = %+v, want only the second snapshot", got)
	}
}
