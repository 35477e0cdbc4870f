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

// ExamTypes are the kinds offered by the exam form.
var ExamTypes = []string{"Quiz", "Midterm", "Final", "Test", "Assignment"}

type ExamService struct {
	exams  *repository.ExamRepo
	events events.Publisher
	now    func() time.Time
}

func NewExamService(exams *repository.ExamRepo, pub events.Publisher, now func() time.Time) *ExamService {
	if now == nil {
		now = time.Now
	}
	return &ExamService{exams: exams, events: pub, now: now}
}

// List returns exams sorted by date ascending.
func (s *ExamService) List(ctx context.Context) ([]models.Exam, error) {
	exams, err := s.exams.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(exams, func(i, j int) bool {
		di, _ := parseDateTime(exams[i].Date)
		dj, _ := parseDateTime(exams[j].Date)
		return di.Before(dj)
	})
	return exams, nil
}

func (s *ExamService) Add(ctx context.Context, subjectID, title, date, examType, topics string) (*models.Exam, error) {
	fields := map[string]string{}
	if strings.TrimSpace(title) == "" {
		fields["title"] = "Exam title is required"
	}
	if subjectID == "" {
		fields["subjectId"] = "Please select a subject"
	}
	if _, ok := parseDateTime(date); !ok {
		fields["date"] = "Invalid exam date"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	exam := models.Exam{
		ID:        uuid.NewString(),
		SubjectID: subjectID,
		Title:     strings.TrimSpace(title),
		Date:      date,
		Type:      examType,
		Topics:    topics,
	}
	if err := s.exams.Add(ctx, exam); err != nil {
		return nil, err
	}

	s.events.Publish(events.ExamsChanged)
	return &exam, nil
}

func (s *ExamService) Delete(ctx context.Context, id string) error {
	if err := s.exams.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &NotFoundError{Message: "Exam not found"}
		}
		return err
	}

	s.events.Publish(events.ExamsChanged)
	return nil
}

// UpcomingCount counts exams dated now or later.
func (s *ExamService) UpcomingCount(ctx context.Context) (int, error) {
	exams, err := s.exams.List(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	count := 0
	for _, e := range exams {
		if date, ok := parseDateTime(e.Date); ok && !date.Before(now) {
			count++
		}
	}
	return count, nil
}
