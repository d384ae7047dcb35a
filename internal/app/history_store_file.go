package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileHistoryStore keeps the archive as one JSON blob on disk. Every mutation
// rewrites the whole collection, so the file is always a consistent snapshot.
// A corrupt or unparseable blob reads as an empty archive.
type FileHistoryStore struct {
	Root   string
	Logger *Logger

	mu sync.Mutex
}

func NewFileHistoryStore(root string, logger *Logger) *FileHistoryStore {
	if strings.TrimSpace(root) == "" {
		root = DefaultStorageRoot()
	}
	return &FileHistoryStore{Root: filepath.Clean(root), Logger: logger}
}

func (s *FileHistoryStore) path() string {
	return filepath.Join(s.Root, "history.json")
}

func (s *FileHistoryStore) Append(rec HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.load()
	records = append([]HistoryRecord{rec}, records...)
	return s.save(records)
}

func (s *FileHistoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.load()
	kept := records[:0]
	for _, r := range records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return s.save(kept)
}

func (s *FileHistoryStore) List() ([]HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(), nil
}

func (s *FileHistoryStore) load() []HistoryRecord {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.Logger.Error("history read failed", map[string]interface{}{"path": s.path(), "error": err.Error()})
		}
		return nil
	}
	var records []HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		// Corrupt archive is non-fatal: log and start over empty.
		s.Logger.Error("history blob corrupt", map[string]interface{}{"path": s.path(), "error": err.Error()})
		return nil
	}
	return records
}

func (s *FileHistoryStore) save(records []HistoryRecord) error {
	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return err
	}
	if records == nil {
		records = []HistoryRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0o644)
}
