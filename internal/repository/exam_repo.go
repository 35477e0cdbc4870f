package repository

import (
	"context"
	"encoding/json"

	"planner-backend/internal/models"
	"planner-backend/internal/storage"
)

type ExamRepo struct {
	store storage.Store
}

func NewExamRepo(store storage.Store) *ExamRepo {
	return &ExamRepo{store: store}
}

func (r *ExamRepo) List(ctx context.Context) ([]models.Exam, error) {
	records, err := r.store.List(ctx, storage.Exams)
	if err != nil {
		return nil, err
	}

	exams := make([]models.Exam, 0, len(records))
	for _, record := range records {
		var e models.Exam
		if err := json.Unmarshal(record, &e); err != nil {
			continue
		}
		exams = append(exams, e)
	}
	return exams, nil
}

func (r *ExamRepo) Add(ctx context.Context, e models.Exam) error {
	record, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.store.Add(ctx, storage.Exams, record)
}

func (r *ExamRepo) Delete(ctx context.Context, id string) error {
	removed, err := r.store.Delete(ctx, storage.Exams, "id", id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return storage.ErrNotFound
	}
	return nil
}
