package models

type EventLog struct {
	ID            int64  `json:"id" db:"id"`
	StudentID     int64  `json:"student_id" db:"student_id"`
	ExamID        *int64 `json:"exam_id" db:"exam_id"`
	EventType     string `json:"event_type" db:"event_type"`
	Timestamp     int64  `json:"timestamp" db:"timestamp"`
	ContentLength *int64 `json:"content_length" db:"content_length"`
}

type SubmissionReceivedEvent struct {
	SubmissionID int64  `json:"submission_id"`
	ExamID       int64  `json:"exam_id"`
	StudentID    int64  `json:"student_id"`
	QuestionID   int64  `json:"question_id"`
	Hash         string `json:"hash"`
	Timestamp    int64  `json:"timestamp"`
}
