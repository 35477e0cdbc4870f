package handlers

import (
	"net/http"

	"planner-backend/internal/services"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	timeBySubject, err := h.analytics.TimeBySubject(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	completion, err := h.analytics.TaskCompletion(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"timeBySubject":  timeBySubject,
		"taskCompletion": completion,
	})
}
