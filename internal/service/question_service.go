package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/models"
	"github.com/codewatch/exam-service/internal/repository"
)

type QuestionService interface {
	Create(ctx context.Context, req *models.CreateQuestionRequest) (int64, error)
	GetByFaculty(ctx context.Context, facultyID int64) ([]models.Question, error)
	Delete(ctx context.Context, id int64) error
}

type questionService struct {
	questionRepo repository.QuestionRepository
	logger       zerolog.Logger
}

func NewQuestionService(questionRepo repository.QuestionRepository, logger zerolog.Logger) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		logger:       logger,
	}
}

func (s *questionService) Create(ctx context.Context, req *models.CreateQuestionRequest) (int64, error) {
	if req.Title == "" || req.Statement == "" || req.FacultyID == 0 {
		return 0, fmt.Errorf("%w: title, statement and faculty_id are required", ErrValidation)
	}

	language := req.Language
	if language == "" {
		language = "python"
	}

	question := &models.Question{
		Title:        req.Title,
		Statement:    req.Statement,
		InputFormat:  req.InputFormat,
		OutputFormat: req.OutputFormat,
		SampleTests:  req.SampleTests,
		HiddenTests:  req.HiddenTests,
		FacultyID:    req.FacultyID,
		Language:     language,
	}

	id, err := s.questionRepo.Create(ctx, question)
	if err != nil {
		return 0, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.Info().Int64("question_id", id).Int64("faculty_id", req.FacultyID).Msg("Question added")
	return id, nil
}

func (s *questionService) GetByFaculty(ctx context.Context, facultyID int64) ([]models.Question, error) {
	questions, err := s.questionRepo.GetByFacultyID(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	return questions, nil
}

func (s *questionService) Delete(ctx context.Context, id int64) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	s.logger.Info().Int64("question_id", id).Msg("Question deleted")
	return nil
}
