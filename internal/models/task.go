package models

// Task priorities accepted on input.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	SubjectID string `json:"subjectId"`
	DueDate   string `json:"dueDate"`
	Priority  string `json:"priority"`
	Completed bool   `json:"completed"`
}
