package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"planner-backend/internal/services"
)

type ExamHandler struct {
	exams *services.ExamService
}

func NewExamHandler(exams *services.ExamService) *ExamHandler {
	return &ExamHandler{exams: exams}
}

func (h *ExamHandler) List(w http.ResponseWriter, r *http.Request) {
	exams, err := h.exams.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"exams": exams})
}

func (h *ExamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SubjectID string `json:"subjectId"`
		Title     string `json:"title"`
		Date      string `json:"date"`
		Type      string `json:"type"`
		Topics    string `json:"topics"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	exam, err := h.exams.Add(r.Context(), req.SubjectID, req.Title, req.Date, req.Type, req.Topics)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"exam": exam})
}

func (h *ExamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.exams.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Exam deleted"})
}

func (h *ExamHandler) Types(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"types": services.ExamTypes})
}
