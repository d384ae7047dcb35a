package app

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord is an immutable archival snapshot of one completed run.
// Loading a record copies it into the session; the archived record is never
// mutated afterwards.
type HistoryRecord struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	Inputs    SessionInputs  `json:"inputs"`
	Results   SessionResults `json:"results"`
}

func NewHistoryRecord(inputs SessionInputs, results SessionResults) HistoryRecord {
	return HistoryRecord{
		ID:        uuid.NewString(),
		Title:     inputs.Title,
		CreatedAt: time.Now().UTC(),
		Inputs:    inputs,
		Results:   results.Clone(),
	}
}

// HistoryStore persists completed runs, newest first.
//
// Implementations must keep insertion order (Append puts the record at the
// front), must not deduplicate, and must treat an unreadable persisted
// collection as empty rather than failing.
type HistoryStore interface {
	Append(rec HistoryRecord) error
	Remove(id string) error
	List() ([]HistoryRecord, error)
}
