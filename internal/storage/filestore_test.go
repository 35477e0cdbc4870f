package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func record(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return data
}

type testRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestFileStore_SeedsCollections(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	for _, name := range Collections {
		if _, err := os.Stat(filepath.Join(dir, name+".json")); err != nil {
			t.Errorf("Expected seeded file for %s: %v", name, err)
		}
		records, err := store.List(context.Background(), name)
		if err != nil {
			t.Fatalf("List(%s) failed: %v", name, err)
		}
		if records == nil || len(records) != 0 {
			t.Errorf("List(%s) = %v, want empty slice", name, records)
		}
	}
}

func TestFileStore_CRUDRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	store.Add(ctx, Subjects, record(t, testRecord{ID: "1", Name: "Math"}))
	store.Add(ctx, Subjects, record(t, testRecord{ID: "2", Name: "Physics"}))

	records, err := store.List(ctx, Subjects)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	// Insertion order preserved
	var first testRecord
	json.Unmarshal(records[0], &first)
	if first.Name != "Math" {
		t.Errorf("Expected Math first, got %q", first.Name)
	}

	matched, err := store.Update(ctx, Subjects, "id", record(t, testRecord{ID: "2", Name: "Chemistry"}))
	if err != nil || !matched {
		t.Fatalf("Update = %v, %v; want match", matched, err)
	}
	records, _ = store.List(ctx, Subjects)
	var second testRecord
	json.Unmarshal(records[1], &second)
	if second.Name != "Chemistry" {
		t.Errorf("Expected updated record, got %q", second.Name)
	}

	matched, err = store.Update(ctx, Subjects, "id", record(t, testRecord{ID: "404", Name: "X"}))
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if matched {
		t.Error("Update of missing id reported a match")
	}

	removed, err := store.Delete(ctx, Subjects, "id", "1")
	if err != nil || removed != 1 {
		t.Fatalf("Delete = %d, %v; want 1 removed", removed, err)
	}
	removed, _ = store.Delete(ctx, Subjects, "id", "1")
	if removed != 0 {
		t.Errorf("Second delete removed %d records, want 0", removed)
	}
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	store.Add(ctx, Tasks, record(t, testRecord{ID: "1", Name: "Persist me"}))

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	records, err := reopened.List(ctx, Tasks)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected record to survive reopen, got %d records", len(records))
	}
}

func TestFileStore_MalformedDataReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, Sessions+".json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("corrupt write failed: %v", err)
	}

	records, err := store.List(context.Background(), Sessions)
	if err != nil {
		t.Fatalf("List on malformed data failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Malformed data should read as empty, got %d records", len(records))
	}

	// The collection is writable again afterwards
	if err := store.Add(context.Background(), Sessions, record(t, testRecord{ID: "1"})); err != nil {
		t.Fatalf("Add after corruption failed: %v", err)
	}
}

func TestFileStore_ClearAll(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	for _, name := range Collections {
		store.Add(ctx, name, record(t, testRecord{ID: "1"}))
	}
	if err := store.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	for _, name := range Collections {
		records, _ := store.List(ctx, name)
		if len(records) != 0 {
			t.Errorf("Collection %s not cleared: %d records", name, len(records))
		}
	}
}

func TestFileStore_Replace(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	ctx := context.Background()

	store.Add(ctx, Exams, record(t, testRecord{ID: "old"}))
	replacement := []json.RawMessage{
		record(t, testRecord{ID: "a"}),
		record(t, testRecord{ID: "b"}),
	}
	if err := store.Replace(ctx, Exams, replacement); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	records, _ := store.List(ctx, Exams)
	if len(records) != 2 {
		t.Errorf("Expected replaced contents, got %d records", len(records))
	}
}
