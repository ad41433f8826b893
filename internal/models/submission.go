package models

type Submission struct {
	ID         int64   `json:"id" db:"id"`
	ExamID     int64   `json:"exam_id" db:"exam_id"`
	StudentID  int64   `json:"student_id" db:"student_id"`
	QuestionID int64   `json:"question_id" db:"question_id"`
	Code       string  `json:"code" db:"code"`
	Language   string  `json:"language" db:"language"`
	Hash       string  `json:"hash" db:"hash"` // caller-supplied content fingerprint, stored as-is
	Timestamp  int64   `json:"timestamp" db:"timestamp"`
	Status     string  `json:"status" db:"status"` // pending, graded
	Score      int     `json:"score" db:"score"`
	Feedback   *string `json:"feedback" db:"feedback"`
}

type SubmissionWithDetails struct {
	Submission
	StudentName   string `json:"student_name" db:"student_name"`
	ExamTitle     string `json:"exam_title" db:"exam_title"`
	QuestionTitle string `json:"question_title,omitempty" db:"question_title"`
}

type SubmissionStatus string

const (
	SubmissionStatusPending SubmissionStatus = "pending"
	SubmissionStatusGraded  SubmissionStatus = "graded"
)

func (ss SubmissionStatus) String() string {
	return string(ss)
}
