package services

import (
	"context"
	"testing"

	"planner-backend/internal/events"
	"planner-backend/internal/models"
	"planner-backend/internal/repository"
	"planner-backend/internal/storage"
)

func TestSubjectService_Add(t *testing.T) {
	s := NewSubjectService(repository.NewSubjectRepo(storage.NewMemoryStore()), events.Noop{})
	ctx := context.Background()

	subject, err := s.Add(ctx, "  Mathematics  ", "#2196F3")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if subject.Name != "Mathematics" {
		t.Errorf("Expected trimmed name, got %q", subject.Name)
	}
	if subject.ID == "" {
		t.Error("Expected an assigned id")
	}

	// Default color when none given
	subject, err = s.Add(ctx, "Physics", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if subject.Color != defaultSubjectColor {
		t.Errorf("Expected default color %s, got %s", defaultSubjectColor, subject.Color)
	}

	if _, err := s.Add(ctx, "   ", "#fff"); err == nil {
		t.Error("Expected error for blank name")
	}

	count, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}
}

func TestSubjectService_LookupFallback(t *testing.T) {
	s := NewSubjectService(repository.NewSubjectRepo(storage.NewMemoryStore()), events.Noop{})
	ctx := context.Background()

	subject, err := s.Add(ctx, "Chemistry", "#E91E63")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	found, err := s.Lookup(ctx, subject.ID)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if found.Name != "Chemistry" || found.Color != "#E91E63" {
		t.Errorf("Lookup returned %+v", found)
	}

	// Deleted or never-existing subjects resolve to the fallback display
	unknown, err := s.Lookup(ctx, "gone")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if unknown.Name != models.UnknownSubjectName || unknown.Color != models.UnknownSubjectColor {
		t.Errorf("Expected unknown-subject fallback, got %+v", unknown)
	}
}

func TestSubjectService_DeleteKeepsDependents(t *testing.T) {
	store := storage.NewMemoryStore()
	subjects := NewSubjectService(repository.NewSubjectRepo(store), events.Noop{})
	sessions := repository.NewSessionRepo(store)
	ctx := context.Background()

	subject, err := subjects.Add(ctx, "Doomed", "#000")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	session := models.StudySession{ID: "s1", SubjectID: subject.ID, Date: "2024-06-01", StartTime: "09:00", EndTime: "10:00"}
	if err := sessions.Add(ctx, session); err != nil {
		t.Fatalf("session Add failed: %v", err)
	}

	if err := subjects.Delete(ctx, subject.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	// The session survives with a dangling reference
	remaining, err := sessions.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].SubjectID != subject.ID {
		t.Errorf("Expected session with dangling subject id, got %+v", remaining)
	}

	resolved, err := subjects.Lookup(ctx, subject.ID)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if resolved.Name != models.UnknownSubjectName {
		t.Errorf("Dangling reference should resolve to fallback, got %+v", resolved)
	}

	err = subjects.Delete(ctx, subject.ID)
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("Expected NotFoundError on second delete, got %v", err)
	}
}
