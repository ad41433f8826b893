package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/config"
	"github.com/codewatch/exam-service/internal/models"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) (int64, error)
	GetByFacultyID(ctx context.Context, facultyID int64) ([]models.Question, error)
	Delete(ctx context.Context, id int64) error
}

type questionRepository struct {
	*SQLiteRepository
}

func NewQuestionRepository(db *sql.DB, cfg config.DatabaseConfig, logger zerolog.Logger) QuestionRepository {
	return &questionRepository{
		SQLiteRepository: NewSQLiteRepository(db, cfg, logger),
	}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) (int64, error) {
	query := `
		INSERT INTO questions (title, statement, input_format, output_format, sample_tests, hidden_tests, faculty_id, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.Exec(ctx, query,
		question.Title,
		question.Statement,
		question.InputFormat,
		question.OutputFormat,
		question.SampleTests,
		question.HiddenTests,
		question.FacultyID,
		question.Language,
	)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

func (r *questionRepository) GetByFacultyID(ctx context.Context, facultyID int64) ([]models.Question, error) {
	query := `
		SELECT id, title, statement, input_format, output_format, sample_tests, hidden_tests, faculty_id, language
		FROM questions
		WHERE faculty_id = ?
		ORDER BY id ASC
	`

	rows, err := r.Query(ctx, query, facultyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		err := rows.Scan(
			&q.ID, &q.Title, &q.Statement, &q.InputFormat, &q.OutputFormat,
			&q.SampleTests, &q.HiddenTests, &q.FacultyID, &q.Language,
		)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.Exec(ctx, `DELETE FROM questions WHERE id = ?`, id)
	return err
}
