package models

// StudySession is a single-day time block. Date is YYYY-MM-DD, times are
// 24h HH:MM; a session never spans midnight. Sessions are immutable once
// created: the UI deletes and recreates instead of editing.
type StudySession struct {
	ID        string `json:"id"`
	SubjectID string `json:"subjectId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}
