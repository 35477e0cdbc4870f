package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"sort"

	"github.com/xuri/excelize/v2"

	"planner-backend/internal/events"
	"planner-backend/internal/models"
	"planner-backend/internal/repository"
	"planner-backend/internal/storage"
)

type ExportHandler struct {
	subjects *repository.SubjectRepo
	tasks    *repository.TaskRepo
	sessions *repository.SessionRepo
	exams    *repository.ExamRepo
	store    storage.Store
	events   events.Publisher
}

func NewExportHandler(
	subjects *repository.SubjectRepo,
	tasks *repository.TaskRepo,
	sessions *repository.SessionRepo,
	exams *repository.ExamRepo,
	store storage.Store,
	pub events.Publisher,
) *ExportHandler {
	return &ExportHandler{
		subjects: subjects,
		tasks:    tasks,
		sessions: sessions,
		exams:    exams,
		store:    store,
		events:   pub,
	}
}

type exportData struct {
	Subjects []models.Subject      `json:"subjects"`
	Tasks    []models.Task         `json:"tasks"`
	Sessions []models.StudySession `json:"sessions"`
	Exams    []models.Exam         `json:"exams"`
}

// subjectName resolves a possibly dangling subject reference.
func (d *exportData) subjectName(id string) string {
	for _, subject := range d.Subjects {
		if subject.ID == id {
			return subject.Name
		}
	}
	return models.UnknownSubjectName
}

func (h *ExportHandler) collect(r *http.Request) (*exportData, error) {
	ctx := r.Context()

	subjects, err := h.subjects.List(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := h.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := h.sessions.List(ctx)
	if err != nil {
		return nil, err
	}
	exams, err := h.exams.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Date != sessions[j].Date {
			return sessions[i].Date < sessions[j].Date
		}
		return sessions[i].StartTime < sessions[j].StartTime
	})

	return &exportData{Subjects: subjects, Tasks: tasks, Sessions: sessions, Exams: exams}, nil
}

// ExportJSON dumps every collection as one JSON document.
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := h.collect(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename=study-planner-export.json`)
	writeJSON(w, http.StatusOK, data)
}

// Report view rows with subject references resolved for display.
type taskRow struct {
	Title    string
	Subject  string
	Due      string
	Priority string
	Done     bool
}

type sessionRow struct {
	Date    string
	Start   string
	End     string
	Subject string
}

type examRow struct {
	Title   string
	Subject string
	Date    string
	Type    string
	Topics  string
}

type reportView struct {
	Subjects []models.Subject
	Tasks    []taskRow
	Sessions []sessionRow
	Exams    []examRow
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<title>Study Planner Export</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; padding: 20px; color: #333; }
h1 { text-align: center; color: #2c3e50; border-bottom: 2px solid #2c3e50; padding-bottom: 10px; }
h2 { color: #2c3e50; margin-top: 30px; }
table { width: 100%; border-collapse: collapse; margin-top: 10px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f5f5f5; }
.swatch { display: inline-block; width: 12px; height: 12px; border-radius: 50%; }
</style>
</head>
<body>
<h1>Study Planner Report</h1>

<h2>Subjects</h2>
{{if .Subjects}}<table>
<tr><th>Name</th><th>Color</th></tr>
{{range .Subjects}}<tr><td>{{.Name}}</td><td><span class="swatch" style="background-color: {{.Color}}"></span> {{.Color}}</td></tr>
{{end}}</table>{{else}}<p>No subjects.</p>{{end}}

<h2>Tasks</h2>
{{if .Tasks}}<table>
<tr><th>Title</th><th>Subject</th><th>Due</th><th>Priority</th><th>Status</th></tr>
{{range .Tasks}}<tr><td>{{.Title}}</td><td>{{.Subject}}</td><td>{{.Due}}</td><td>{{.Priority}}</td><td>{{if .Done}}Done{{else}}Pending{{end}}</td></tr>
{{end}}</table>{{else}}<p>No tasks.</p>{{end}}

<h2>Study Schedule</h2>
{{if .Sessions}}<table>
<tr><th>Date</th><th>Start</th><th>End</th><th>Subject</th></tr>
{{range .Sessions}}<tr><td>{{.Date}}</td><td>{{.Start}}</td><td>{{.End}}</td><td>{{.Subject}}</td></tr>
{{end}}</table>{{else}}<p>No study sessions.</p>{{end}}

<h2>Exams</h2>
{{if .Exams}}<table>
<tr><th>Title</th><th>Subject</th><th>Date</th><th>Type</th><th>Topics</th></tr>
{{range .Exams}}<tr><td>{{.Title}}</td><td>{{.Subject}}</td><td>{{.Date}}</td><td>{{.Type}}</td><td>{{.Topics}}</td></tr>
{{end}}</table>{{else}}<p>No exams.</p>{{end}}

</body>
</html>
`))

func buildReportView(data *exportData) reportView {
	view := reportView{Subjects: data.Subjects}
	for _, task := range data.Tasks {
		view.Tasks = append(view.Tasks, taskRow{
			Title:    task.Title,
			Subject:  data.subjectName(task.SubjectID),
			Due:      task.DueDate,
			Priority: task.Priority,
			Done:     task.Completed,
		})
	}
	for _, session := range data.Sessions {
		view.Sessions = append(view.Sessions, sessionRow{
			Date:    session.Date,
			Start:   session.StartTime,
			End:     session.EndTime,
			Subject: data.subjectName(session.SubjectID),
		})
	}
	for _, exam := range data.Exams {
		view.Exams = append(view.Exams, examRow{
			Title:   exam.Title,
			Subject: data.subjectName(exam.SubjectID),
			Date:    exam.Date,
			Type:    exam.Type,
			Topics:  exam.Topics,
		})
	}
	return view
}

// Report renders the printable HTML report.
func (h *ExportHandler) Report(w http.ResponseWriter, r *http.Request) {
	data, err := h.collect(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := reportTemplate.Execute(w, buildReportView(data)); err != nil {
		log.Printf("Error rendering report: %v", err)
	}
}

// ReportXLSX writes one workbook with a sheet per collection.
func (h *ExportHandler) ReportXLSX(w http.ResponseWriter, r *http.Request) {
	data, err := h.collect(r)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing workbook: %v", err)
		}
	}()

	writeRow := func(sheet string, row int, values ...interface{}) {
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				log.Printf("Error writing cell %s!%s: %v", sheet, cell, err)
			}
		}
	}

	if err := f.SetSheetName("Sheet1", "Subjects"); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeRow("Subjects", 1, "Name", "Color")
	for i, subject := range data.Subjects {
		writeRow("Subjects", i+2, subject.Name, subject.Color)
	}

	if _, err := f.NewSheet("Tasks"); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeRow("Tasks", 1, "Title", "Subject", "Due", "Priority", "Completed")
	for i, task := range data.Tasks {
		writeRow("Tasks", i+2, task.Title, data.subjectName(task.SubjectID), task.DueDate, task.Priority, task.Completed)
	}

	if _, err := f.NewSheet("Schedule"); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeRow("Schedule", 1, "Date", "Start", "End", "Subject")
	for i, session := range data.Sessions {
		writeRow("Schedule", i+2, session.Date, session.StartTime, session.EndTime, data.subjectName(session.SubjectID))
	}

	if _, err := f.NewSheet("Exams"); err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeRow("Exams", 1, "Title", "Subject", "Date", "Type", "Topics")
	for i, exam := range data.Exams {
		writeRow("Exams", i+2, exam.Title, data.subjectName(exam.SubjectID), exam.Date, exam.Type, exam.Topics)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename=study-planner-report.xlsx`)
	if err := f.Write(w); err != nil {
		log.Printf("Error writing workbook: %v", err)
	}
}

// Reset wipes every collection. Irreversible; the client confirms first.
func (h *ExportHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearAll(r.Context()); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", fmt.Sprintf("Failed to reset data: %v", err), r))
		return
	}

	h.events.Publish(events.DataCleared)
	writeJSON(w, http.StatusOK, map[string]string{"message": "All data cleared"})
}
