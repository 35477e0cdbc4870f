package models

type Exam struct {
	ID        string `json:"id"`
	SubjectID string `json:"subjectId"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	Type      string `json:"type"`
	Topics    string `json:"topics"`
}
