package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/models"
	"github.com/codewatch/exam-service/internal/repository"
	"github.com/codewatch/exam-service/internal/service/integration"
)

type SubmissionService interface {
	Submit(ctx context.Context, req *models.SubmitRequest) (int64, error)
	Grade(ctx context.Context, id int64, score int, feedback string) error
	Results(ctx context.Context, studentID int64) ([]models.Submission, error)
	GetByExam(ctx context.Context, examID int64) ([]models.SubmissionWithDetails, error)
	GetGraded(ctx context.Context) ([]models.SubmissionWithDetails, error)
	GetAll(ctx context.Context) ([]models.Submission, error)
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	rabbitmqClient integration.RabbitMQClient
	logger         zerolog.Logger
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	rabbitmqClient integration.RabbitMQClient,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		rabbitmqClient: rabbitmqClient,
		logger:         logger,
	}
}

// Submit always inserts a fresh pending row. Exam/question linkage is not
// validated here; the exam client submits against the questions it was
// handed.
func (s *submissionService) Submit(ctx context.Context, req *models.SubmitRequest) (int64, error) {
	language := req.Language
	if language == "" {
		language = "python"
	}

	timestamp := req.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}

	sub := &models.Submission{
		ExamID:     req.ExamID,
		StudentID:  req.StudentID,
		QuestionID: req.QuestionID,
		Code:       req.Code,
		Language:   language,
		Hash:       req.Hash,
		Timestamp:  timestamp,
	}

	id, err := s.submissionRepo.Create(ctx, sub)
	if err != nil {
		return 0, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logger.Info().
		Int64("submission_id", id).
		Int64("student_id", req.StudentID).
		Int64("exam_id", req.ExamID).
		Msg("Submission received")

	if s.rabbitmqClient != nil {
		event := &models.SubmissionReceivedEvent{
			SubmissionID: id,
			ExamID:       req.ExamID,
			StudentID:    req.StudentID,
			QuestionID:   req.QuestionID,
			Hash:         req.Hash,
			Timestamp:    timestamp,
		}
		if err := s.rabbitmqClient.PublishSubmissionReceived(ctx, event); err != nil {
			// Analysis fan-out is best effort; the submission itself is safe.
			s.logger.Error().Err(err).Msg("Failed to publish submission received event")
		}
	}

	return id, nil
}

// Grade overwrites score and feedback unconditionally: last write wins.
func (s *submissionService) Grade(ctx context.Context, id int64, score int, feedback string) error {
	updated, err := s.submissionRepo.Grade(ctx, id, score, feedback)
	if err != nil {
		return fmt.Errorf("failed to grade submission: %w", err)
	}
	if !updated {
		return ErrNotFound
	}

	s.logger.Info().Int64("submission_id", id).Int("score", score).Msg("Submission graded")
	return nil
}

func (s *submissionService) Results(ctx context.Context, studentID int64) ([]models.Submission, error) {
	subs, err := s.submissionRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}
	return subs, nil
}

func (s *submissionService) GetByExam(ctx context.Context, examID int64) ([]models.SubmissionWithDetails, error) {
	subs, err := s.submissionRepo.GetByExamID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam submissions: %w", err)
	}
	return subs, nil
}

func (s *submissionService) GetGraded(ctx context.Context) ([]models.SubmissionWithDetails, error) {
	subs, err := s.submissionRepo.GetGraded(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get graded submissions: %w", err)
	}
	return subs, nil
}

func (s *submissionService) GetAll(ctx context.Context) ([]models.Submission, error) {
	subs, err := s.submissionRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions: %w", err)
	}
	return subs, nil
}
