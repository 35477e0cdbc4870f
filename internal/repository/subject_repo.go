package repository

import (
	"context"
	"encoding/json"

	"planner-backend/internal/models"
	"planner-backend/internal/storage"
)

type SubjectRepo struct {
	store storage.Store
}

func NewSubjectRepo(store storage.Store) *SubjectRepo {
	return &SubjectRepo{store: store}
}

func (r *SubjectRepo) List(ctx context.Context) ([]models.Subject, error) {
	records, err := r.store.List(ctx, storage.Subjects)
	if err != nil {
		return nil, err
	}

	subjects := make([]models.Subject, 0, len(records))
	for _, record := range records {
		var s models.Subject
		if err := json.Unmarshal(record, &s); err != nil {
			continue
		}
		subjects = append(subjects, s)
	}
	return subjects, nil
}

func (r *SubjectRepo) GetByID(ctx context.Context, id string) (*models.Subject, error) {
	subjects, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range subjects {
		if subjects[i].ID == id {
			return &subjects[i], nil
		}
	}
	return nil, nil
}

func (r *SubjectRepo) Add(ctx context.Context, s models.Subject) error {
	record, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.store.Add(ctx, storage.Subjects, record)
}

func (r *SubjectRepo) Delete(ctx context.Context, id string) error {
	removed, err := r.store.Delete(ctx, storage.Subjects, "id", id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return storage.ErrNotFound
	}
	return nil
}
