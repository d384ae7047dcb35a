package app

import (
	"testing"
)

func TestSQLiteHistoryStoreRoundTrip(t *testing.T) {
	store, err := NewSQLiteHistoryStore(t.TempDir(), NewLogger(nil))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	first := NewHistoryRecord(SessionInputs{Title: "first", Brief: "b"}, SessionResults{"script": "1"})
	second := NewHistoryRecord(SessionInputs{Title: "second", Brief: "b"}, SessionResults{"script": "2"})
	if err := store.Append(first); err != nil {
		t.Fatal(err)
	}
	if err := store.Append(second); err != nil {
		t.Fatal(err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Title != "second" || records[1].Title != "first" {
		t.Fatalf("records not newest first: %s, %s", records[0].Title, records[1].Title)
	}
	if records[1].Results["script"] != "1" {
		t.Fatal("results did not survive persistence")
	}

	if err := store.Remove(first.ID); err != nil {
		t.Fatal(err)
	}
	records, _ = store.List()
	if len(records) != 1 || records[0].ID != second.ID {
		t.Fatalf("unexpected records after remove: %+v", records)
	}
}

func TestSQLiteHistoryStoreImportsLegacyBlob(t *testing.T) {
	root := t.TempDir()
	legacy := NewFileHistoryStore(root, NewLogger(nil))

	older := NewHistoryRecord(SessionInputs{Title: "older", Brief: "b"}, SessionResults{})
	newer := NewHistoryRecord(SessionInputs{Title: "newer", Brief: "b"}, SessionResults{})
	if err := legacy.Append(older); err != nil {
		t.Fatal(err)
	}
	if err := legacy.Append(newer); err != nil {
		t.Fatal(err)
	}

	store, err := NewSQLiteHistoryStore(root, NewLogger(nil))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	records, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("legacy import lost records: got %d", len(records))
	}
	if records[0].Title != "newer" || records[1].Title != "older" {
		t.Fatalf("legacy order not preserved: %s, %s", records[0].Title, records[1].Title)
	}
}
