package models

type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Fallback values shown when a record references a subject that has
// been deleted. Dangling references are allowed; see Subject deletion.
const (
	UnknownSubjectName  = "Unknown Subject"
	UnknownSubjectColor = "#ccc"
)
