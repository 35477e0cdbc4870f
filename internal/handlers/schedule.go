package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"planner-backend/internal/models"
	"planner-backend/internal/services"
)

const defaultPreviewLimit = 3

type ScheduleHandler struct {
	scheduler *services.Scheduler
	subjects  *services.SubjectService
}

func NewScheduleHandler(scheduler *services.Scheduler, subjects *services.SubjectService) *ScheduleHandler {
	return &ScheduleHandler{scheduler: scheduler, subjects: subjects}
}

// sessionView resolves the subject reference for display.
type sessionView struct {
	models.StudySession
	SubjectName  string `json:"subjectName"`
	SubjectColor string `json:"subjectColor"`
}

// blockView is a timeline block positioned on the 24-hour day.
type blockView struct {
	sessionView
	TopFraction    float64 `json:"topFraction"`
	HeightFraction float64 `json:"heightFraction"`
}

func (h *ScheduleHandler) resolve(r *http.Request, sessions []models.StudySession) ([]sessionView, error) {
	index, err := h.subjects.LookupMap(r.Context())
	if err != nil {
		return nil, err
	}

	views := make([]sessionView, 0, len(sessions))
	for _, session := range sessions {
		view := sessionView{
			StudySession: session,
			SubjectName:  models.UnknownSubjectName,
			SubjectColor: models.UnknownSubjectColor,
		}
		if subject, ok := index[session.SubjectID]; ok {
			view.SubjectName = subject.Name
			view.SubjectColor = subject.Color
		}
		views = append(views, view)
	}
	return views, nil
}

// Day returns the sessions for the requested date, defaulting to the
// current view cursor.
func (h *ScheduleHandler) Day(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.scheduler.ViewDate()
	}

	sessions, err := h.scheduler.SessionsForDate(r.Context(), date)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	views, err := h.resolve(r, sessions)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"date": date, "sessions": views})
}

// Layout returns the day's sessions as proportional timeline blocks.
func (h *ScheduleHandler) Layout(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.scheduler.ViewDate()
	}

	layout, err := h.scheduler.LayoutForDate(r.Context(), date)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	sessions := make([]models.StudySession, 0, len(layout))
	for _, block := range layout {
		sessions = append(sessions, block.Session)
	}
	views, err := h.resolve(r, sessions)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	blocks := make([]blockView, 0, len(layout))
	for i, block := range layout {
		blocks = append(blocks, blockView{
			sessionView:    views[i],
			TopFraction:    block.TopFraction,
			HeightFraction: block.HeightFraction,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"date": date, "blocks": blocks})
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.SessionInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	session, err := h.scheduler.AddSession(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"session": session})
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Study session deleted"})
}

// Today returns the dashboard preview of today's sessions.
func (h *ScheduleHandler) Today(w http.ResponseWriter, r *http.Request) {
	limit := defaultPreviewLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "limit must be a non-negative integer", r))
			return
		}
		limit = n
	}

	sessions, err := h.scheduler.TodaysSessions(r.Context(), limit)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	views, err := h.resolve(r, sessions)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": views})
}

func (h *ScheduleHandler) View(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"date": h.scheduler.ViewDate()})
}

func (h *ScheduleHandler) ViewNext(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"date": h.scheduler.NextDay()})
}

func (h *ScheduleHandler) ViewPrev(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"date": h.scheduler.PrevDay()})
}

func (h *ScheduleHandler) SetView(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := h.scheduler.GoToDate(req.Date); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"date": h.scheduler.ViewDate()})
}
