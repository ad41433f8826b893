package models

// Data Transfer Objects

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=student faculty admin"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status string `json:"status"`
	Token  string `json:"token,omitempty"`
	UserID int64  `json:"user_id,omitempty"`
	Role   string `json:"role,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type VerifyResetTokenRequest struct {
	Token string `json:"token"`
}

type VerifyResetTokenResponse struct {
	Valid bool `json:"valid"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type SubmitRequest struct {
	ExamID     int64  `json:"exam_id"`
	StudentID  int64  `json:"student_id"`
	QuestionID int64  `json:"question_id"`
	Code       string `json:"code"`
	Language   string `json:"language"`
	Hash       string `json:"hash"`
	Timestamp  int64  `json:"timestamp"`
}

type GradeRequest struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

type EventEntry struct {
	ExamID        *int64 `json:"exam_id,omitempty"`
	EventType     string `json:"event_type"`
	Timestamp     int64  `json:"timestamp,omitempty"`
	ContentLength *int64 `json:"content_length,omitempty"`
}

// IngestEventsRequest carries either a batch of logs or a single inline event.
type IngestEventsRequest struct {
	StudentID     int64        `json:"student_id"`
	ExamID        *int64       `json:"exam_id,omitempty"`
	Logs          []EventEntry `json:"logs,omitempty"`
	EventType     string       `json:"event_type,omitempty"`
	Timestamp     int64        `json:"timestamp,omitempty"`
	ContentLength *int64       `json:"content_length,omitempty"`
}

type RunCodeRequest struct {
	Code string `json:"code"`
}

type RunCodeResponse struct {
	Status string `json:"status"`
	Output string `json:"output"`
}

type CreateExamRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	FacultyID   int64   `json:"faculty_id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Questions   []int64 `json:"questions,omitempty"`
}

type CreateExamResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ExamID  int64  `json:"exam_id"`
}

type CreateQuestionRequest struct {
	Title        string `json:"title"`
	Statement    string `json:"statement"`
	InputFormat  string `json:"input_format"`
	OutputFormat string `json:"output_format"`
	SampleTests  string `json:"sample_tests"`
	HiddenTests  string `json:"hidden_tests"`
	FacultyID    int64  `json:"faculty_id"`
	Language     string `json:"language"`
}

type AdminResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
