package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/models"
	"github.com/codewatch/exam-service/internal/repository"
)

type ExamService interface {
	Create(ctx context.Context, req *models.CreateExamRequest) (int64, error)
	GetAll(ctx context.Context) ([]models.ExamWithQuestions, error)
	GetByFaculty(ctx context.Context, facultyID int64) ([]models.ExamWithQuestions, error)
	GetForStudent(ctx context.Context, studentID int64) ([]models.ExamWithQuestions, error)
	GetDetail(ctx context.Context, examID int64) (*models.ExamWithQuestions, error)
	GetQuestions(ctx context.Context, examID int64) ([]models.Question, error)
	Delete(ctx context.Context, examID int64) error
}

type examService struct {
	examRepo       repository.ExamRepository
	submissionRepo repository.SubmissionRepository
	now            func() time.Time
	logger         zerolog.Logger
}

func NewExamService(examRepo repository.ExamRepository, submissionRepo repository.SubmissionRepository, logger zerolog.Logger) ExamService {
	return &examService{
		examRepo:       examRepo,
		submissionRepo: submissionRepo,
		now:            time.Now,
		logger:         logger,
	}
}

// computeStatus derives the exam lifecycle from its date alone.
func computeStatus(examDate string, today time.Time) models.ExamStatus {
	date, err := time.Parse("2006-01-02", examDate)
	if err != nil {
		return models.ExamStatusUnknown
	}

	todayDate := today.Format("2006-01-02")
	switch {
	case examDate == todayDate:
		return models.ExamStatusOngoing
	case date.After(today):
		return models.ExamStatusUpcoming
	default:
		return models.ExamStatusCompleted
	}
}

func (s *examService) Create(ctx context.Context, req *models.CreateExamRequest) (int64, error) {
	if req.Title == "" || req.Date == "" || req.FacultyID == 0 {
		return 0, fmt.Errorf("%w: title, date and faculty_id are required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return 0, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	exam := &models.Exam{
		Title:       req.Title,
		Description: req.Description,
		FacultyID:   req.FacultyID,
		Date:        req.Date,
	}

	id, err := s.examRepo.Create(ctx, exam, req.Questions)
	if err != nil {
		return 0, fmt.Errorf("failed to create exam: %w", err)
	}

	s.logger.Info().
		Int64("exam_id", id).
		Int64("faculty_id", req.FacultyID).
		Int("questions", len(req.Questions)).
		Msg("Exam created")

	return id, nil
}

func (s *examService) decorate(ctx context.Context, exams []models.Exam) ([]models.ExamWithQuestions, error) {
	today := s.now()

	out := make([]models.ExamWithQuestions, 0, len(exams))
	for _, exam := range exams {
		questions, err := s.examRepo.GetQuestions(ctx, exam.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get exam questions: %w", err)
		}
		out = append(out, models.ExamWithQuestions{
			Exam:      exam,
			Status:    computeStatus(exam.Date, today).String(),
			Questions: questions,
		})
	}

	return out, nil
}

func (s *examService) GetAll(ctx context.Context) ([]models.ExamWithQuestions, error) {
	exams, err := s.examRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get exams: %w", err)
	}
	return s.decorate(ctx, exams)
}

func (s *examService) GetByFaculty(ctx context.Context, facultyID int64) ([]models.ExamWithQuestions, error) {
	exams, err := s.examRepo.GetByFacultyID(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exams: %w", err)
	}
	return s.decorate(ctx, exams)
}

// GetForStudent computes status per student: an exam held today counts as
// completed once the student has submitted anything for it.
func (s *examService) GetForStudent(ctx context.Context, studentID int64) ([]models.ExamWithQuestions, error) {
	exams, err := s.examRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get exams: %w", err)
	}

	decorated, err := s.decorate(ctx, exams)
	if err != nil {
		return nil, err
	}

	for i := range decorated {
		if decorated[i].Status != models.ExamStatusOngoing.String() {
			continue
		}
		submitted, err := s.submissionRepo.ExistsForExamAndStudent(ctx, decorated[i].ID, studentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check submissions: %w", err)
		}
		if submitted {
			decorated[i].Status = models.ExamStatusCompleted.String()
		}
	}

	return decorated, nil
}

func (s *examService) GetDetail(ctx context.Context, examID int64) (*models.ExamWithQuestions, error) {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam: %w", err)
	}
	if exam == nil {
		return nil, ErrNotFound
	}

	questions, err := s.examRepo.GetQuestions(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam questions: %w", err)
	}

	return &models.ExamWithQuestions{
		Exam:      *exam,
		Status:    computeStatus(exam.Date, s.now()).String(),
		Questions: questions,
	}, nil
}

func (s *examService) GetQuestions(ctx context.Context, examID int64) ([]models.Question, error) {
	questions, err := s.examRepo.GetQuestions(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exam questions: %w", err)
	}
	return questions, nil
}

func (s *examService) Delete(ctx context.Context, examID int64) error {
	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return fmt.Errorf("failed to get exam: %w", err)
	}
	if exam == nil {
		return ErrNotFound
	}

	if err := s.examRepo.Delete(ctx, examID); err != nil {
		return fmt.Errorf("failed to delete exam: %w", err)
	}

	s.logger.Info().Int64("exam_id", examID).Msg("Exam deleted")
	return nil
}
