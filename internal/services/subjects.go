package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"planner-backend/internal/events"
	"planner-backend/internal/models"
	"planner-backend/internal/repository"
	"planner-backend/internal/storage"
)

const defaultSubjectColor = "#4CAF50"

type SubjectService struct {
	subjects *repository.SubjectRepo
	events   events.Publisher
}

func NewSubjectService(subjects *repository.SubjectRepo, pub events.Publisher) *SubjectService {
	return &SubjectService{subjects: subjects, events: pub}
}

func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	return s.subjects.List(ctx)
}

func (s *SubjectService) Count(ctx context.Context) (int, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(subjects), nil
}

func (s *SubjectService) Add(ctx context.Context, name, color string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("name", "Subject name is required")
	}
	if color == "" {
		color = defaultSubjectColor
	}

	subject := models.Subject{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	}
	if err := s.subjects.Add(ctx, subject); err != nil {
		return nil, err
	}

	s.events.Publish(events.SubjectsChanged)
	return &subject, nil
}

// Delete removes a subject. Tasks, sessions and exams referencing it are
// kept and fall back to the unknown-subject display values.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if err := s.subjects.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &NotFoundError{Message: "Subject not found"}
		}
		return err
	}

	s.events.Publish(events.SubjectsChanged)
	return nil
}

// Lookup resolves a subject reference for display. Absent ids resolve to
// the unknown-subject fallback rather than an error.
func (s *SubjectService) Lookup(ctx context.Context, id string) (models.Subject, error) {
	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		return models.Subject{}, err
	}
	if subject == nil {
		return models.Subject{
			ID:    id,
			Name:  models.UnknownSubjectName,
			Color: models.UnknownSubjectColor,
		}, nil
	}
	return *subject, nil
}

// LookupMap builds an id-to-subject index for render passes that resolve
// many references at once.
func (s *SubjectService) LookupMap(ctx context.Context) (map[string]models.Subject, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]models.Subject, len(subjects))
	for _, subject := range subjects {
		index[subject.ID] = subject
	}
	return index, nil
}
