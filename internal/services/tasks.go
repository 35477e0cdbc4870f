package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"planner-backend/internal/events"
	"planner-backend/internal/models"
	"planner-backend/internal/repository"
	"planner-backend/internal/storage"
)

// Task list filters.
const (
	FilterAll       = "all"
	FilterPending   = "pending"
	FilterCompleted = "completed"
	FilterOverdue   = "overdue"
)

type TaskService struct {
	tasks  *repository.TaskRepo
	events events.Publisher
	now    func() time.Time
}

func NewTaskService(tasks *repository.TaskRepo, pub events.Publisher, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{tasks: tasks, events: pub, now: now}
}

// List returns tasks sorted by due date (soonest first), optionally
// narrowed by filter. An empty filter means all.
func (s *TaskService) List(ctx context.Context, filter string) ([]models.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		di, _ := parseDateTime(tasks[i].DueDate)
		dj, _ := parseDateTime(tasks[j].DueDate)
		return di.Before(dj)
	})

	switch filter {
	case "", FilterAll:
		return tasks, nil
	case FilterPending:
		return filterTasks(tasks, func(t models.Task) bool { return !t.Completed }), nil
	case FilterCompleted:
		return filterTasks(tasks, func(t models.Task) bool { return t.Completed }), nil
	case FilterOverdue:
		now := s.now()
		return filterTasks(tasks, func(t models.Task) bool { return isOverdue(t, now) }), nil
	default:
		return nil, validationError("filter", "Unknown filter: "+filter)
	}
}

func filterTasks(tasks []models.Task, keep func(models.Task) bool) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// isOverdue derives the overdue state; it is never stored.
func isOverdue(t models.Task, now time.Time) bool {
	if t.Completed {
		return false
	}
	due, ok := parseDateTime(t.DueDate)
	if !ok {
		return false
	}
	return due.Before(now)
}

// IsOverdue reports whether the task is pending past its due date.
func (s *TaskService) IsOverdue(t models.Task) bool {
	return isOverdue(t, s.now())
}

func (s *TaskService) Add(ctx context.Context, title, subjectID, dueDate, priority string) (*models.Task, error) {
	fields := map[string]string{}
	if strings.TrimSpace(title) == "" {
		fields["title"] = "Task title is required"
	}
	if subjectID == "" {
		fields["subjectId"] = "Please select a subject"
	}
	if _, ok := parseDateTime(dueDate); !ok {
		fields["dueDate"] = "Invalid due date"
	}
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		fields["priority"] = "Priority must be low, medium or high"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	task := models.Task{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		SubjectID: subjectID,
		DueDate:   dueDate,
		Priority:  priority,
		Completed: false,
	}
	if err := s.tasks.Add(ctx, task); err != nil {
		return nil, err
	}

	s.events.Publish(events.TasksChanged)
	return &task, nil
}

// ToggleComplete flips a task's completed flag and returns the updated
// task.
func (s *TaskService) ToggleComplete(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, &NotFoundError{Message: "Task not found"}
	}

	task.Completed = !task.Completed
	if err := s.tasks.Update(ctx, *task); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &NotFoundError{Message: "Task not found"}
		}
		return nil, err
	}

	s.events.Publish(events.TasksChanged)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &NotFoundError{Message: "Task not found"}
		}
		return err
	}

	s.events.Publish(events.TasksChanged)
	return nil
}

func (s *TaskService) PendingCount(ctx context.Context) (int, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, t := range tasks {
		if !t.Completed {
			count++
		}
	}
	return count, nil
}
