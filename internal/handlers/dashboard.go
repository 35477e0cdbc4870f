package handlers

import (
	"net/http"

	"planner-backend/internal/services"
)

type DashboardHandler struct {
	subjects  *services.SubjectService
	tasks     *services.TaskService
	exams     *services.ExamService
	scheduler *services.Scheduler
	schedule  *ScheduleHandler
}

func NewDashboardHandler(
	subjects *services.SubjectService,
	tasks *services.TaskService,
	exams *services.ExamService,
	scheduler *services.Scheduler,
	schedule *ScheduleHandler,
) *DashboardHandler {
	return &DashboardHandler{
		subjects:  subjects,
		tasks:     tasks,
		exams:     exams,
		scheduler: scheduler,
		schedule:  schedule,
	}
}

// Stats answers the dashboard counters plus today's session preview.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subjectCount, err := h.subjects.Count(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	pendingTasks, err := h.tasks.PendingCount(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	upcomingExams, err := h.exams.UpcomingCount(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	today, err := h.scheduler.TodaysSessions(ctx, defaultPreviewLimit)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	preview, err := h.schedule.resolve(r, today)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"subjects":      subjectCount,
		"pendingTasks":  pendingTasks,
		"upcomingExams": upcomingExams,
		"today":         preview,
	})
}
