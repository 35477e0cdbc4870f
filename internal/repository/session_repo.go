package repository

import (
	"context"
	"encoding/json"

	"planner-backend/internal/models"
	"planner-backend/internal/storage"
)

type SessionRepo struct {
	store storage.Store
}

func NewSessionRepo(store storage.Store) *SessionRepo {
	return &SessionRepo{store: store}
}

func (r *SessionRepo) List(ctx context.Context) ([]models.StudySession, error) {
	records, err := r.store.List(ctx, storage.Sessions)
	if err != nil {
		return nil, err
	}

	sessions := make([]models.StudySession, 0, len(records))
	for _, record := range records {
		var s models.StudySession
		if err := json.Unmarshal(record, &s); err != nil {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// ListByDate filters the full session list by exact date-string equality.
// Linear over the lifetime session count, which stays small at personal
// planner scale.
func (r *SessionRepo) ListByDate(ctx context.Context, date string) ([]models.StudySession, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make([]models.StudySession, 0, len(all))
	for _, s := range all {
		if s.Date == date {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

func (r *SessionRepo) Add(ctx context.Context, s models.StudySession) error {
	record, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.store.Add(ctx, storage.Sessions, record)
}

func (r *SessionRepo) Delete(ctx context.Context, id string) error {
	removed, err := r.store.Delete(ctx, storage.Sessions, "id", id)
	if err != nil {
		return err
	}
	if removed == 0 {
		return storage.ErrNotFound
	}
	return nil
}
