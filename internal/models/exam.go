package models

type Exam struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	FacultyID   int64  `json:"faculty_id" db:"faculty_id"`
	Date        string `json:"date" db:"date"` // YYYY-MM-DD
}

type ExamWithQuestions struct {
	Exam
	Status    string     `json:"status"`
	Questions []Question `json:"questions"`
}

type ExamStatus string

const (
	ExamStatusUpcoming  ExamStatus = "upcoming"
	ExamStatusOngoing   ExamStatus = "ongoing"
	ExamStatusCompleted ExamStatus = "completed"
	ExamStatusUnknown   ExamStatus = "unknown"
)

func (s ExamStatus) String() string {
	return string(s)
}
