package repository

import (
	"context"
	"encoding/json"

	"planner-backend/internal/models"
	"planner-backend/internal/storage"
)

type TaskRepo struct {
	store storage.Store
}

func NewTaskRepo(store storage.Store) *TaskRepo {
	return &TaskRepo{store: store}
}

func (r *TaskRepo) List(ctx context.Context) ([]models.Task, error) {
	records, err := r.store.List(ctx, storage.Tasks)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(records))
	for _, record := range records {
		var t models.Task
		if err := json.Unmarshal(record, &t); err != nil {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	tasks, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, nil
}

func (r *TaskRepo) Add(ctx context.Context, t models.Task) error {
	record, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return r.store.Add(ctx, storage.Tasks, record)
}

func (r *TaskRepo) Update(ctx context.Context, t models.Task) error {
	record, err := json.Marshal(t)
	if err != nil {
		return err
	}
	matched, err := r.store.Update(ctx, storage.Tasks, "id", record)
	if err != nil {
		return err
	}
	if !matched {
		return storage.ErrNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id string) error {
	removed, err := r.store.Delete(ctx, storage.Tasks, "id", id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return storage.ErrNotFound
	}
	return nil
}
