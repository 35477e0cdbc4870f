package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"planner-backend/internal/events"
	"planner-backend/internal/models"
	"planner-backend/internal/repository"
	"planner-backend/internal/storage"
)

// ConflictStatus classifies the outcome of a conflict check.
type ConflictStatus int

const (
	ConflictNone ConflictStatus = iota
	ConflictInvalidRange
	ConflictOverlap
)

// ConflictResult carries the first overlapping session when Status is
// ConflictOverlap.
type ConflictResult struct {
	Status ConflictStatus
	With   *models.StudySession
}

// SessionInput is a candidate study session before an id is assigned.
type SessionInput struct {
	SubjectID string `json:"subjectId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SessionLayout projects a session onto a normalized 24-hour timeline.
// Fractions are of the whole day: a 09:00 start sits at 540/1440.
type SessionLayout struct {
	Session        models.StudySession `json:"session"`
	TopFraction    float64             `json:"topFraction"`
	HeightFraction float64             `json:"heightFraction"`
}

// Scheduler owns date-scoped session queries, overlap validation and the
// timeline layout. Session data is fetched fresh from the store per call;
// the only mutable state is the viewed-date cursor.
type Scheduler struct {
	sessions *repository.SessionRepo
	events   events.Publisher
	now      func() time.Time

	mu       sync.Mutex
	viewDate time.Time
}

// NewScheduler builds a Scheduler with the view cursor on today. A nil
// clock defaults to time.Now.
func NewScheduler(sessions *repository.SessionRepo, pub events.Publisher, now func() time.Time) *Scheduler {
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		sessions: sessions,
		events:   pub,
		now:      now,
		viewDate: now(),
	}
}

// SessionsForDate returns the sessions on date in insertion order.
func (s *Scheduler) SessionsForDate(ctx context.Context, date string) ([]models.StudySession, error) {
	return s.sessions.ListByDate(ctx, date)
}

// CheckConflict validates the candidate's time range and tests it against
// every existing session on the same date. Two ranges overlap iff
// start1 < end2 && end1 > start2; sessions sharing an exact boundary are
// back-to-back, not overlapping. Returns the first conflicting session.
func (s *Scheduler) CheckConflict(ctx context.Context, candidate SessionInput) (ConflictResult, error) {
	newStart, err := MinutesOfDay(candidate.StartTime)
	if err != nil {
		return ConflictResult{}, validationError("startTime", err.Error())
	}
	newEnd, err := MinutesOfDay(candidate.EndTime)
	if err != nil {
		return ConflictResult{}, validationError("endTime", err.Error())
	}

	if newStart >= newEnd {
		return ConflictResult{Status: ConflictInvalidRange}, nil
	}

	existing, err := s.sessions.ListByDate(ctx, candidate.Date)
	if err != nil {
		return ConflictResult{}, err
	}

	for i := range existing {
		existStart, err := MinutesOfDay(existing[i].StartTime)
		if err != nil {
			continue
		}
		existEnd, err := MinutesOfDay(existing[i].EndTime)
		if err != nil {
			continue
		}
		if newStart < existEnd && newEnd > existStart {
			return ConflictResult{Status: ConflictOverlap, With: &existing[i]}, nil
		}
	}

	return ConflictResult{Status: ConflictNone}, nil
}

// AddSession validates the candidate, checks for conflicts and persists
// it. Nothing is written on failure.
func (s *Scheduler) AddSession(ctx context.Context, in SessionInput) (*models.StudySession, error) {
	fields := map[string]string{}
	if in.SubjectID == "" {
		fields["subjectId"] = "Please select a subject"
	}
	if _, err := ParseDate(in.Date); err != nil {
		fields["date"] = err.Error()
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	result, err := s.CheckConflict(ctx, in)
	if err != nil {
		return nil, err
	}
	switch result.Status {
	case ConflictInvalidRange:
		return nil, validationError("endTime", "End time must be after start time")
	case ConflictOverlap:
		return nil, &ConflictError{Message: "Time conflict with an existing session"}
	}

	session := models.StudySession{
		ID:        uuid.NewString(),
		SubjectID: in.SubjectID,
		Date:      in.Date,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}
	if err := s.sessions.Add(ctx, session); err != nil {
		return nil, err
	}

	s.events.Publish(events.SessionsChanged)
	return &session, nil
}

// DeleteSession removes a session by id. Removal cannot create overlap,
// so no conflict re-validation happens.
func (s *Scheduler) DeleteSession(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &NotFoundError{Message: "Study session not found"}
		}
		return err
	}

	s.events.Publish(events.SessionsChanged)
	return nil
}

// LayoutForDate returns the sessions on date sorted by start time and
// positioned on the 0..1 daily timeline. Insertion order breaks exact
// start-time ties so the layout is stable across calls.
func (s *Scheduler) LayoutForDate(ctx context.Context, date string) ([]SessionLayout, error) {
	sessions, err := s.sessions.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	sortByStartTime(sessions)

	layout := make([]SessionLayout, 0, len(sessions))
	for _, session := range sessions {
		startMinutes, err := MinutesOfDay(session.StartTime)
		if err != nil {
			continue
		}
		endMinutes, err := MinutesOfDay(session.EndTime)
		if err != nil {
			continue
		}
		layout = append(layout, SessionLayout{
			Session:        session,
			TopFraction:    float64(startMinutes) / MinutesPerDay,
			HeightFraction: float64(endMinutes-startMinutes) / MinutesPerDay,
		})
	}
	return layout, nil
}

// TodaysSessions returns today's sessions sorted by start time, truncated
// to limit entries when limit > 0. Used for dashboard previews.
func (s *Scheduler) TodaysSessions(ctx context.Context, limit int) ([]models.StudySession, error) {
	sessions, err := s.sessions.ListByDate(ctx, FormatDate(s.now()))
	if err != nil {
		return nil, err
	}
	sortByStartTime(sessions)

	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// ViewDate reports the current view cursor as YYYY-MM-DD.
func (s *Scheduler) ViewDate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FormatDate(s.viewDate)
}

// NextDay advances the cursor one day and returns the new date. Calendar
// arithmetic handles month and year rollover.
func (s *Scheduler) NextDay() string {
	return s.shiftDays(1)
}

// PrevDay moves the cursor one day back and returns the new date.
func (s *Scheduler) PrevDay() string {
	return s.shiftDays(-1)
}

func (s *Scheduler) shiftDays(days int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewDate = s.viewDate.AddDate(0, 0, days)
	return FormatDate(s.viewDate)
}

// GoToDate moves the cursor to an explicit date.
func (s *Scheduler) GoToDate(date string) error {
	t, err := ParseDate(date)
	if err != nil {
		return validationError("date", err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewDate = t
	return nil
}

// sortByStartTime sorts sessions by start time. Lexicographic compare is
// valid for the fixed-width HH:MM form; the sort is stable so insertion
// order is the secondary key.
func sortByStartTime(sessions []models.StudySession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime < sessions[j].StartTime
	})
}
