package localstore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/liftbook/liftbook/internal/logging"
	"github.com/liftbook/liftbook/internal/models"
)

// SQLiteStore implements Adapter on top of a single-table SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the liftbook database under dataDir.
// The database is opened with WAL mode and a single connection, since
// SQLite does not support multiple writers.
func Open(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "liftbook.db")

	// Pure Go driver, no CGO.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	schema := `CREATE TABLE IF NOT EXISTS slots (
		key        TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create slots table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Load reads the snapshot from the slot. Absence and corruption both
// yield the default empty store; corruption is logged but not repaired.
func (s *SQLiteStore) Load() *models.LogStore {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM slots WHERE key = ?", SlotKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewLogStore()
	}
	if err != nil {
		logging.Warn("local slot read failed, starting empty", logging.Fields{
			"slot": SlotKey, "error": err.Error(),
		})
		return models.NewLogStore()
	}

	snapshot, err := models.UnmarshalLogStore(payload)
	if err != nil {
		logging.Warn("local slot payload corrupt, starting empty", logging.Fields{
			"slot": SlotKey, "error": err.Error(),
		})
		return models.NewLogStore()
	}
	return snapshot
}

// Save overwrites the slot with the snapshot. Failures are logged and
// swallowed.
func (s *SQLiteStore) Save(snapshot *models.LogStore) {
	payload, err := snapshot.Marshal()
	if err != nil {
		logging.Error("failed to encode snapshot for local slot", err, nil)
		return
	}

	_, err = s.db.Exec(
		`INSERT INTO slots (key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		SlotKey, payload, time.Now().Unix(),
	)
	if err != nil {
		logging.Error("failed to write local slot", err, logging.Fields{"slot": SlotKey})
	}
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
