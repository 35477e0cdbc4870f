package services

import (
	"context"
	"testing"

	"planner-backend/internal/models"
	"planner-backend/internal/repository"
	"planner-backend/internal/storage"
)

func newTestAnalytics(t *testing.T) (*AnalyticsService, *repository.SessionRepo, *repository.SubjectRepo, *repository.TaskRepo) {
	t.Helper()
	store := storage.NewMemoryStore()
	sessions := repository.NewSessionRepo(store)
	subjects := repository.NewSubjectRepo(store)
	tasks := repository.NewTaskRepo(store)
	return NewAnalyticsService(sessions, subjects, tasks), sessions, subjects, tasks
}

func TestTimeBySubject(t *testing.T) {
	analytics, sessions, subjects, _ := newTestAnalytics(t)
	ctx := context.Background()

	subjects.Add(ctx, models.Subject{ID: "math", Name: "Math", Color: "#f00"})
	subjects.Add(ctx, models.Subject{ID: "physics", Name: "Physics", Color: "#0f0"})

	seed := []models.StudySession{
		{ID: "1", SubjectID: "math", Date: "2024-06-01", StartTime: "09:00", EndTime: "10:30"},
		{ID: "2", SubjectID: "math", Date: "2024-06-02", StartTime: "09:00", EndTime: "09:30"},
		{ID: "3", SubjectID: "physics", Date: "2024-06-01", StartTime: "11:00", EndTime: "11:45"},
		// Dangling subject reference is excluded from the chart
		{ID: "4", SubjectID: "deleted", Date: "2024-06-01", StartTime: "13:00", EndTime: "14:00"},
	}
	for _, session := range seed {
		if err := sessions.Add(ctx, session); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	totals, err := analytics.TimeBySubject(ctx)
	if err != nil {
		t.Fatalf("TimeBySubject failed: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("Expected 2 subjects, got %d", len(totals))
	}

	// Sorted most-studied first: Math 120 min, Physics 45 min
	if totals[0].Name != "Math" || totals[0].Minutes != 120 {
		t.Errorf("totals[0] = %+v, want Math with 120 minutes", totals[0])
	}
	if totals[0].Hours != 2.0 {
		t.Errorf("Math hours = %v, want 2.0", totals[0].Hours)
	}
	if totals[1].Name != "Physics" || totals[1].Minutes != 45 {
		t.Errorf("totals[1] = %+v, want Physics with 45 minutes", totals[1])
	}
}

func TestTimeBySubject_Empty(t *testing.T) {
	analytics, _, _, _ := newTestAnalytics(t)

	totals, err := analytics.TimeBySubject(context.Background())
	if err != nil {
		t.Fatalf("TimeBySubject failed: %v", err)
	}
	if len(totals) != 0 {
		t.Errorf("Expected no totals, got %+v", totals)
	}
}

func TestTaskCompletion(t *testing.T) {
	analytics, _, _, tasks := newTestAnalytics(t)
	ctx := context.Background()

	stats, err := analytics.TaskCompletion(ctx)
	if err != nil {
		t.Fatalf("TaskCompletion failed: %v", err)
	}
	if stats.Total != 0 || stats.Percent != 0 {
		t.Errorf("Empty stats = %+v, want zeros", stats)
	}

	seed := []models.Task{
		{ID: "1", Title: "A", SubjectID: "math", DueDate: "2024-06-10T10:00", Priority: "low", Completed: true},
		{ID: "2", Title: "B", SubjectID: "math", DueDate: "2024-06-11T10:00", Priority: "low", Completed: true},
		{ID: "3", Title: "C", SubjectID: "math", DueDate: "2024-06-12T10:00", Priority: "low"},
	}
	for _, task := range seed {
		if err := tasks.Add(ctx, task); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	stats, err = analytics.TaskCompletion(ctx)
	if err != nil {
		t.Fatalf("TaskCompletion failed: %v", err)
	}
	if stats.Total != 3 || stats.Completed != 2 || stats.Pending != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Percent != 67 {
		t.Errorf("Percent = %d, want 67", stats.Percent)
	}
}
