package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/models"
	"github.com/codewatch/exam-service/internal/repository"
)

type EventService interface {
	Ingest(ctx context.Context, req *models.IngestEventsRequest) (int, error)
	GetAll(ctx context.Context) ([]models.EventLog, error)
	GetByStudent(ctx context.Context, studentID int64) ([]models.EventLog, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	now       func() time.Time
	logger    zerolog.Logger
}

func NewEventService(eventRepo repository.EventRepository, logger zerolog.Logger) EventService {
	return &eventService{
		eventRepo: eventRepo,
		now:       time.Now,
		logger:    logger,
	}
}

// Ingest accepts either a batch of logs or a single inline event. A per-event
// exam_id overrides the batch-level one; a missing timestamp defaults to
// ingestion time. Timestamps are caller-supplied and may be non-monotonic;
// no dedup or reordering happens here.
func (s *eventService) Ingest(ctx context.Context, req *models.IngestEventsRequest) (int, error) {
	entries := req.Logs
	if len(entries) == 0 {
		entries = []models.EventEntry{{
			ExamID:        req.ExamID,
			EventType:     req.EventType,
			Timestamp:     req.Timestamp,
			ContentLength: req.ContentLength,
		}}
	}

	events := make([]models.EventLog, 0, len(entries))
	for _, entry := range entries {
		if entry.EventType == "" {
			return 0, fmt.Errorf("%w: event_type is required", ErrValidation)
		}

		examID := entry.ExamID
		if examID == nil {
			examID = req.ExamID
		}

		timestamp := entry.Timestamp
		if timestamp == 0 {
			timestamp = s.now().UnixMilli()
		}

		events = append(events, models.EventLog{
			StudentID:     req.StudentID,
			ExamID:        examID,
			EventType:     entry.EventType,
			Timestamp:     timestamp,
			ContentLength: entry.ContentLength,
		})
	}

	if err := s.eventRepo.CreateBatch(ctx, events); err != nil {
		return 0, fmt.Errorf("failed to store events: %w", err)
	}

	s.logger.Info().
		Int64("student_id", req.StudentID).
		Int("count", len(events)).
		Msg("Events logged")

	return len(events), nil
}

func (s *eventService) GetAll(ctx context.Context) ([]models.EventLog, error) {
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetByStudent(ctx context.Context, studentID int64) ([]models.EventLog, error) {
	events, err := s.eventRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	return events, nil
}
