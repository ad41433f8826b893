package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/config"
	"github.com/codewatch/exam-service/internal/models"
)

type ExamRepository interface {
	Create(ctx context.Context, exam *models.Exam, questionIDs []int64) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Exam, error)
	GetAll(ctx context.Context) ([]models.Exam, error)
	GetByFacultyID(ctx context.Context, facultyID int64) ([]models.Exam, error)
	GetQuestions(ctx context.Context, examID int64) ([]models.Question, error)
	Delete(ctx context.Context, id int64) error
}

type examRepository struct {
	*SQLiteRepository
}

func NewExamRepository(db *sql.DB, cfg config.DatabaseConfig, logger zerolog.Logger) ExamRepository {
	return &examRepository{
		SQLiteRepository: NewSQLiteRepository(db, cfg, logger),
	}
}

// Create inserts the exam and its question links in one transaction.
func (r *examRepository) Create(ctx context.Context, exam *models.Exam, questionIDs []int64) (int64, error) {
	var examID int64

	err := r.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO exams (title, description, faculty_id, date)
			VALUES (?, ?, ?, ?)
		`, exam.Title, exam.Description, exam.FacultyID, exam.Date)
		if err != nil {
			return err
		}

		examID, err = res.LastInsertId()
		if err != nil {
			return err
		}

		for _, questionID := range questionIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO exam_questions (exam_id, question_id) VALUES (?, ?)
			`, examID, questionID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return examID, nil
}

func (r *examRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	query := `SELECT id, title, description, faculty_id, date FROM exams WHERE id = ?`

	exam := &models.Exam{}
	err := r.QueryRow(ctx, query, id).Scan(
		&exam.ID,
		&exam.Title,
		&exam.Description,
		&exam.FacultyID,
		&exam.Date,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return exam, nil
}

func (r *examRepository) GetAll(ctx context.Context) ([]models.Exam, error) {
	query := `SELECT id, title, description, faculty_id, date FROM exams ORDER BY date ASC`
	return r.queryExams(ctx, query)
}

func (r *examRepository) GetByFacultyID(ctx context.Context, facultyID int64) ([]models.Exam, error) {
	query := `SELECT id, title, description, faculty_id, date FROM exams WHERE faculty_id = ? ORDER BY date ASC`
	return r.queryExams(ctx, query, facultyID)
}

func (r *examRepository) queryExams(ctx context.Context, query string, args ...interface{}) ([]models.Exam, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []models.Exam
	for rows.Next() {
		var exam models.Exam
		if err := rows.Scan(&exam.ID, &exam.Title, &exam.Description, &exam.FacultyID, &exam.Date); err != nil {
			return nil, err
		}
		exams = append(exams, exam)
	}

	return exams, rows.Err()
}

func (r *examRepository) GetQuestions(ctx context.Context, examID int64) ([]models.Question, error) {
	query := `
		SELECT q.id, q.title, q.statement, q.input_format, q.output_format,
		       q.sample_tests, q.hidden_tests, q.faculty_id, q.language
		FROM questions q
		JOIN exam_questions eq ON eq.question_id = q.id
		WHERE eq.exam_id = ?
		ORDER BY q.id ASC
	`

	rows, err := r.Query(ctx, query, examID)
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

// Delete removes the exam and its question links in one transaction.
func (r *examRepository) Delete(ctx context.Context, id int64) error {
	return r.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM exam_questions WHERE exam_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM exams WHERE id = ?`, id)
		return err
	})
}
