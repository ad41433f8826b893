package models

type Question struct {
	ID           int64  `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	Statement    string `json:"statement" db:"statement"`
	InputFormat  string `json:"input_format" db:"input_format"`
	OutputFormat string `json:"output_format" db:"output_format"`
	SampleTests  string `json:"sample_tests" db:"sample_tests"`
	HiddenTests  string `json:"hidden_tests" db:"hidden_tests"`
	FacultyID    int64  `json:"faculty_id" db:"faculty_id"`
	Language     string `json:"language" db:"language"`
}
