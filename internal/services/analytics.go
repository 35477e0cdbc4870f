package services

import (
	"context"
	"math"
	"sort"

	"planner-backend/internal/models"
	"planner-backend/internal/repository"
)

// SubjectTime is the total scheduled study time for one subject.
type SubjectTime struct {
	Name    string  `json:"name"`
	Color   string  `json:"color"`
	Minutes int     `json:"minutes"`
	Hours   float64 `json:"hours"`
}

// TaskCompletion summarizes how many tasks are done.
type TaskCompletion struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Percent   int `json:"percent"`
}

type AnalyticsService struct {
	sessions *repository.SessionRepo
	subjects *repository.SubjectRepo
	tasks    *repository.TaskRepo
}

func NewAnalyticsService(sessions *repository.SessionRepo, subjects *repository.SubjectRepo, tasks *repository.TaskRepo) *AnalyticsService {
	return &AnalyticsService{sessions: sessions, subjects: subjects, tasks: tasks}
}

// TimeBySubject totals session minutes per subject, sorted most-studied
// first. Sessions whose subject has been deleted are excluded, matching
// the time chart's behavior.
func (s *AnalyticsService) TimeBySubject(ctx context.Context) ([]SubjectTime, error) {
	sessions, err := s.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]models.Subject, len(subjects))
	for _, subject := range subjects {
		index[subject.ID] = subject
	}

	minutes := map[string]int{}
	for _, session := range sessions {
		subject, ok := index[session.SubjectID]
		if !ok {
			continue
		}
		start, err := MinutesOfDay(session.StartTime)
		if err != nil {
			continue
		}
		end, err := MinutesOfDay(session.EndTime)
		if err != nil {
			continue
		}
		minutes[subject.ID] += end - start
	}

	totals := make([]SubjectTime, 0, len(minutes))
	for _, subject := range subjects {
		m, ok := minutes[subject.ID]
		if !ok {
			continue
		}
		totals = append(totals, SubjectTime{
			Name:    subject.Name,
			Color:   subject.Color,
			Minutes: m,
			Hours:   math.Round(float64(m)/60*10) / 10,
		})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Minutes > totals[j].Minutes
	})
	return totals, nil
}

// TaskCompletion reports the completed/pending split. Percent is rounded
// to the nearest integer and zero when no tasks exist.
func (s *AnalyticsService) TaskCompletion(ctx context.Context) (TaskCompletion, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return TaskCompletion{}, err
	}

	stats := TaskCompletion{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.Percent = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats, nil
}
