package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"planner-backend/internal/events"
	"planner-backend/internal/handlers"
	"planner-backend/internal/middleware"
)

func New(
	subjectHandler *handlers.SubjectHandler,
	taskHandler *handlers.TaskHandler,
	examHandler *handlers.ExamHandler,
	scheduleHandler *handlers.ScheduleHandler,
	dashboardHandler *handlers.DashboardHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	exportHandler *handlers.ExportHandler,
	hub *events.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Subjects ────
		r.Route("/subjects", func(r chi.Router) {
			r.Get("/", subjectHandler.List)
			r.Post("/", subjectHandler.Create)
			r.Delete("/{id}", subjectHandler.Delete)
		})

		// ──── Tasks ────
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Put("/{id}/toggle", taskHandler.Toggle)
			r.Delete("/{id}", taskHandler.Delete)
		})

		// ──── Exams ────
		r.Route("/exams", func(r chi.Router) {
			r.Get("/", examHandler.List)
			r.Post("/", examHandler.Create)
			r.Get("/types", examHandler.Types)
			r.Delete("/{id}", examHandler.Delete)
		})

		// ──── Schedule ────
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", scheduleHandler.Day)
			r.Post("/", scheduleHandler.Create)
			r.Get("/layout", scheduleHandler.Layout)
			r.Get("/today", scheduleHandler.Today)
			r.Delete("/{id}", scheduleHandler.Delete)

			r.Route("/view", func(r chi.Router) {
				r.Get("/", scheduleHandler.View)
				r.Put("/", scheduleHandler.SetView)
				r.Post("/next", scheduleHandler.ViewNext)
				r.Post("/prev", scheduleHandler.ViewPrev)
			})
		})

		// ──── Dashboard & Analytics ────
		r.Get("/dashboard", dashboardHandler.Stats)
		r.Get("/analytics", analyticsHandler.Stats)

		// ──── Export & Reset ────
		r.Get("/export", exportHandler.ExportJSON)
		r.Get("/export/report", exportHandler.Report)
		r.Get("/export/report.xlsx", exportHandler.ReportXLSX)
		r.Post("/reset", exportHandler.Reset)

		// ──── Change notifications ────
		r.Get("/events", hub.HandleWebSocket)
	})

	return r
}
