package services

import (
	"context"
	"testing"
	"time"

	"planner-backend/internal/events"
	"planner-backend/internal/repository"
	"planner-backend/internal/storage"
)

func newTestExamService(t *testing.T, now time.Time) *ExamService {
	t.Helper()
	repo := repository.NewExamRepo(storage.NewMemoryStore())
	return NewExamService(repo, events.Noop{}, fixedClock(now))
}

func TestExamService_ListSortedByDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestExamService(t, now)
	ctx := context.Background()

	s.Add(ctx, "math", "Final", "2024-07-01T09:00", "Final", "everything")
	s.Add(ctx, "math", "Quiz", "2024-06-05T09:00", "Quiz", "chapter 3")

	exams, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(exams) != 2 {
		t.Fatalf("Expected 2 exams, got %d", len(exams))
	}
	if exams[0].Title != "Quiz" || exams[1].Title != "Final" {
		t.Errorf("Expected date order, got %s then %s", exams[0].Title, exams[1].Title)
	}
}

func TestExamService_UpcomingCount(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestExamService(t, now)
	ctx := context.Background()

	s.Add(ctx, "math", "Past quiz", "2024-05-01T09:00", "Quiz", "")
	s.Add(ctx, "math", "Upcoming final", "2024-07-01T09:00", "Final", "")
	s.Add(ctx, "physics", "Also upcoming", "2024-06-02T09:00", "Test", "")

	count, err := s.UpcomingCount(ctx)
	if err != nil {
		t.Fatalf("UpcomingCount failed: %v", err)
	}
	if count != 2 {
		t.Errorf("UpcomingCount = %d, want 2", count)
	}
}

func TestExamService_Validation(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestExamService(t, now)
	ctx := context.Background()

	tests := []struct {
		name                         string
		subject, title, date         string
		field                        string
	}{
		{"missing title", "math", " ", "2024-07-01T09:00", "title"},
		{"missing subject", "", "Final", "2024-07-01T09:00", "subjectId"},
		{"bad date", "math", "Final", "next week", "date"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Add(ctx, tc.subject, tc.title, tc.date, "Final", "")
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if _, ok := verr.Fields[tc.field]; !ok {
				t.Errorf("Expected field %q in %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestExamService_Delete(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestExamService(t, now)
	ctx := context.Background()

	exam, err := s.Add(ctx, "math", "Final", "2024-07-01T09:00", "Final", "")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Delete(ctx, exam.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	err = s.Delete(ctx, exam.ID)
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("Expected NotFoundError on second delete, got %v", err)
	}
}
