package app

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteHistoryStore is the database-backed archive. On first open it imports
// the legacy JSON blob, if any, so switching storage backends keeps history.
type SQLiteHistoryStore struct {
	Root   string
	dbPath string

	mu sync.Mutex
	db *sql.DB

	// Used only for the one-time legacy import.
	legacy *FileHistoryStore
}

func NewSQLiteHistoryStore(root string, logger *Logger) (*SQLiteHistoryStore, error) {
	if strings.TrimSpace(root) == "" {
		root = DefaultStorageRoot()
	}
	root = filepath.Clean(root)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	st := &SQLiteHistoryStore{
		Root:   root,
		dbPath: filepath.Join(root, "studio.db"),
		legacy: NewFileHistoryStore(root, logger),
	}
	// Initialize eagerly so callers fail fast and can fall back.
	if err := st.init(); err != nil {
		return nil, err
	}
	_ = st.importLegacyIfNeeded()
	return st, nil
}

func (s *SQLiteHistoryStore) init() error {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS history (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		title      TEXT NOT NULL,
		created_at TEXT NOT NULL,
		inputs     TEXT NOT NULL,
		results    TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return err
	}
	s.db = db
	return nil
}

// importLegacyIfNeeded copies the JSON blob into the table once, oldest first
// so the auto-increment sequence preserves newest-first listing.
func (s *SQLiteHistoryStore) importLegacyIfNeeded() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&n); err != nil || n > 0 {
		return err
	}
	records, err := s.legacy.List()
	if err != nil || len(records) == 0 {
		return err
	}
	for i := len(records) - 1; i >= 0; i-- {
		if err := s.insert(records[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteHistoryStore) insert(rec HistoryRecord) error {
	inputs, err := json.Marshal(rec.Inputs)
	if err != nil {
		return err
	}
	results, err := json.Marshal(rec.Results)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO history (id, title, created_at, inputs, results) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.CreatedAt.UTC().Format(time.RFC3339Nano), string(inputs), string(results),
	)
	return err
}

func (s *SQLiteHistoryStore) Append(rec HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(rec)
}

func (s *SQLiteHistoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM history WHERE id = ?`, id)
	return err
}

func (s *SQLiteHistoryStore) List() ([]HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, title, created_at, inputs, results FROM history ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var rec HistoryRecord
		var createdAt, inputs, results string
		if err := rows.Scan(&rec.ID, &rec.Title, &createdAt, &inputs, &results); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = t
		}
		if err := json.Unmarshal([]byte(inputs), &rec.Inputs); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(results), &rec.Results); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteHistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
