package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/config"
	"github.com/codewatch/exam-service/internal/models"
)

type EventRepository interface {
	CreateBatch(ctx context.Context, events []models.EventLog) error
	GetAll(ctx context.Context) ([]models.EventLog, error)
	GetByStudentID(ctx context.Context, studentID int64) ([]models.EventLog, error)
}

type eventRepository struct {
	*SQLiteRepository
}

func NewEventRepository(db *sql.DB, cfg config.DatabaseConfig, logger zerolog.Logger) EventRepository {
	return &eventRepository{
		SQLiteRepository: NewSQLiteRepository(db, cfg, logger),
	}
}

// CreateBatch appends each event as exactly one immutable row. The batch goes
// in a single transaction so a burst either lands whole or not at all.
func (r *eventRepository) CreateBatch(ctx context.Context, events []models.EventLog) error {
	if len(events) == 0 {
		return nil
	}

	return r.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO event_logs (student_id, exam_id, event_type, timestamp, content_length)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, event := range events {
			if _, err := stmt.ExecContext(ctx,
				event.StudentID,
				event.ExamID,
				event.EventType,
				event.Timestamp,
				event.ContentLength,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *eventRepository) GetAll(ctx context.Context) ([]models.EventLog, error) {
	query := `
		SELECT id, student_id, exam_id, event_type, timestamp, content_length
		FROM event_logs
		ORDER BY timestamp DESC
	`
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) GetByStudentID(ctx context.Context, studentID int64) ([]models.EventLog, error) {
	query := `
		SELECT id, student_id, exam_id, event_type, timestamp, content_length
		FROM event_logs
		WHERE student_id = ?
		ORDER BY id ASC
	`
	return r.queryEvents(ctx, query, studentID)
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...interface{}) ([]models.EventLog, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.EventLog
	for rows.Next() {
		var event models.EventLog
		err := rows.Scan(
			&event.ID,
			&event.StudentID,
			&event.ExamID,
			&event.EventType,
			&event.Timestamp,
			&event.ContentLength,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
