package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/config"
	"github.com/codewatch/exam-service/internal/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *models.Submission) (int64, error)
	Grade(ctx context.Context, id int64, score int, feedback string) (bool, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]models.Submission, error)
	GetByExamID(ctx context.Context, examID int64) ([]models.SubmissionWithDetails, error)
	GetGraded(ctx context.Context) ([]models.SubmissionWithDetails, error)
	GetAll(ctx context.Context) ([]models.Submission, error)
	ExistsForExamAndStudent(ctx context.Context, examID, studentID int64) (bool, error)
}

type submissionRepository struct {
	*SQLiteRepository
}

func NewSubmissionRepository(db *sql.DB, cfg config.DatabaseConfig, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		SQLiteRepository: NewSQLiteRepository(db, cfg, logger),
	}
}

// Create always inserts a fresh pending row; one row per submit call, no
// upsert.
func (r *submissionRepository) Create(ctx context.Context, sub *models.Submission) (int64, error) {
	query := `
		INSERT INTO submissions (exam_id, student_id, question_id, code, language, hash, timestamp, status, score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0)
	`

	res, err := r.Exec(ctx, query,
		sub.ExamID,
		sub.StudentID,
		sub.QuestionID,
		sub.Code,
		sub.Language,
		sub.Hash,
		sub.Timestamp,
		models.SubmissionStatusPending.String(),
	)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// Grade flips the row to graded unconditionally. Calling it twice overwrites
// score and feedback: last write wins.
func (r *submissionRepository) Grade(ctx context.Context, id int64, score int, feedback string) (bool, error) {
	query := `UPDATE submissions SET status = ?, score = ?, feedback = ? WHERE id = ?`

	res, err := r.Exec(ctx, query, models.SubmissionStatusGraded.String(), score, feedback, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

const submissionColumns = `id, exam_id, student_id, question_id, code, language, hash, timestamp, status, score, feedback`

func scanSubmission(rows *sql.Rows, sub *models.Submission) error {
	return rows.Scan(
		&sub.ID,
		&sub.ExamID,
		&sub.StudentID,
		&sub.QuestionID,
		&sub.Code,
		&sub.Language,
		&sub.Hash,
		&sub.Timestamp,
		&sub.Status,
		&sub.Score,
		&sub.Feedback,
	)
}

// GetByStudentID orders by the caller-supplied timestamp column, not by row
// id, so out-of-order submit timestamps reorder results accordingly.
func (r *submissionRepository) GetByStudentID(ctx context.Context, studentID int64) ([]models.Submission, error) {
	query := `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE student_id = ?
		ORDER BY timestamp DESC
	`

	rows, err := r.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := scanSubmission(rows, &sub); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func (r *submissionRepository) GetByExamID(ctx context.Context, examID int64) ([]models.SubmissionWithDetails, error) {
	query := `
		SELECT
			s.id, s.exam_id, s.student_id, s.question_id, s.code, s.language, s.hash,
			s.timestamp, s.status, s.score, s.feedback,
			u.name AS student_name, e.title AS exam_title
		FROM submissions s
		JOIN users u ON s.student_id = u.id
		JOIN exams e ON s.exam_id = e.id
		WHERE s.exam_id = ?
		ORDER BY s.timestamp DESC
	`

	rows, err := r.Query(ctx, query, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.SubmissionWithDetails
	for rows.Next() {
		var sub models.SubmissionWithDetails
		err := rows.Scan(
			&sub.ID, &sub.ExamID, &sub.StudentID, &sub.QuestionID, &sub.Code, &sub.Language, &sub.Hash,
			&sub.Timestamp, &sub.Status, &sub.Score, &sub.Feedback,
			&sub.StudentName, &sub.ExamTitle,
		)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func (r *submissionRepository) GetGraded(ctx context.Context) ([]models.SubmissionWithDetails, error) {
	query := `
		SELECT
			s.id, s.exam_id, s.student_id, s.question_id, s.code, s.language, s.hash,
			s.timestamp, s.status, s.score, s.feedback,
			u.name AS student_name, e.title AS exam_title, q.title AS question_title
		FROM submissions s
		JOIN users u ON s.student_id = u.id
		JOIN exams e ON s.exam_id = e.id
		JOIN questions q ON s.question_id = q.id
		WHERE s.status = ?
		ORDER BY s.timestamp DESC
	`

	rows, err := r.Query(ctx, query, models.SubmissionStatusGraded.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.SubmissionWithDetails
	for rows.Next() {
		var sub models.SubmissionWithDetails
		err := rows.Scan(
			&sub.ID, &sub.ExamID, &sub.StudentID, &sub.QuestionID, &sub.Code, &sub.Language, &sub.Hash,
			&sub.Timestamp, &sub.Status, &sub.Score, &sub.Feedback,
			&sub.StudentName, &sub.ExamTitle, &sub.QuestionTitle,
		)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func (r *submissionRepository) GetAll(ctx context.Context) ([]models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions ORDER BY timestamp DESC`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		if err := scanSubmission(rows, &sub); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func (r *submissionRepository) ExistsForExamAndStudent(ctx context.Context, examID, studentID int64) (bool, error) {
	query := `SELECT 1 FROM submissions WHERE exam_id = ? AND student_id = ? LIMIT 1`

	var one int
	err := r.QueryRow(ctx, query, examID, studentID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
