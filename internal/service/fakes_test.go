package service

import (
	"context"
	"errors"
	"sync"

	"github.com/codewatch/exam-service/internal/models"
)

// In-memory stand-ins for the repository and mail collaborators.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email {
			return 0, errors.New("UNIQUE constraint failed: users.email")
		}
	}

	f.nextID++
	stored := *user
	stored.ID = f.nextID
	f.users[stored.ID] = &stored
	return stored.ID, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByResetToken(_ context.Context, token string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, email, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			u.PasswordHash = passwordHash
		}
	}
	return nil
}

func (f *fakeUserRepo) SetResetToken(_ context.Context, email, token string, expires int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			u.ResetToken = &token
			u.ResetExpires = &expires
		}
	}
	return nil
}

func (f *fakeUserRepo) ClearResetToken(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			u.ResetToken = nil
			u.ResetExpires = nil
		}
	}
	return nil
}

func (f *fakeUserRepo) DeleteCascade(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.users, id)
	return nil
}

type fakeMailClient struct {
	mu        sync.Mutex
	fail      bool
	sent      []string
	lastToken string
}

func (f *fakeMailClient) SendPasswordReset(_ context.Context, recipient, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("smtp connection refused")
	}
	f.sent = append(f.sent, recipient)
	f.lastToken = token
	return nil
}

type fakeEventRepo struct {
	batches [][]models.EventLog
}

func (f *fakeEventRepo) CreateBatch(_ context.Context, events []models.EventLog) error {
	f.batches = append(f.batches, events)
	return nil
}

func (f *fakeEventRepo) GetAll(_ context.Context) ([]models.EventLog, error) {
	var out []models.EventLog
	for _, b := range f.batches {
		out = append(out, b...)
	}
	return out, nil
}

func (f *fakeEventRepo) GetByStudentID(_ context.Context, studentID int64) ([]models.EventLog, error) {
	var out []models.EventLog
	for _, b := range f.batches {
		for _, e := range b {
			if e.StudentID == studentID {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

type fakeExamRepo struct {
	exams     []models.Exam
	questions map[int64][]models.Question
}

func (f *fakeExamRepo) Create(_ context.Context, exam *models.Exam, _ []int64) (int64, error) {
	id := int64(len(f.exams) + 1)
	stored := *exam
	stored.ID = id
	f.exams = append(f.exams, stored)
	return id, nil
}

func (f *fakeExamRepo) GetByID(_ context.Context, id int64) (*models.Exam, error) {
	for _, e := range f.exams {
		if e.ID == id {
			copied := e
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeExamRepo) GetAll(_ context.Context) ([]models.Exam, error) {
	return f.exams, nil
}

func (f *fakeExamRepo) GetByFacultyID(_ context.Context, facultyID int64) ([]models.Exam, error) {
	var out []models.Exam
	for _, e := range f.exams {
		if e.FacultyID == facultyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeExamRepo) GetQuestions(_ context.Context, examID int64) ([]models.Question, error) {
	return f.questions[examID], nil
}

func (f *fakeExamRepo) Delete(_ context.Context, id int64) error {
	for i, e := range f.exams {
		if e.ID == id {
			f.exams = append(f.exams[:i], f.exams[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeSubmissionRepo struct {
	subs   []models.Submission
	nextID int64
}

func (f *fakeSubmissionRepo) Create(_ context.Context, sub *models.Submission) (int64, error) {
	f.nextID++
	stored := *sub
	stored.ID = f.nextID
	stored.Status = models.SubmissionStatusPending.String()
	f.subs = append(f.subs, stored)
	return stored.ID, nil
}

func (f *fakeSubmissionRepo) Grade(_ context.Context, id int64, score int, feedback string) (bool, error) {
	for i := range f.subs {
		if f.subs[i].ID == id {
			f.subs[i].Status = models.SubmissionStatusGraded.String()
			f.subs[i].Score = score
			f.subs[i].Feedback = &feedback
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSubmissionRepo) GetByStudentID(_ context.Context, studentID int64) ([]models.Submission, error) {
	var out []models.Submission
	for _, s := range f.subs {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionRepo) GetByExamID(_ context.Context, _ int64) ([]models.SubmissionWithDetails, error) {
	return nil, nil
}

func (f *fakeSubmissionRepo) GetGraded(_ context.Context) ([]models.SubmissionWithDetails, error) {
	return nil, nil
}

func (f *fakeSubmissionRepo) GetAll(_ context.Context) ([]models.Submission, error) {
	return f.subs, nil
}

func (f *fakeSubmissionRepo) ExistsForExamAndStudent(_ context.Context, examID, studentID int64) (bool, error) {
	for _, s := range f.subs {
		if s.ExamID == examID && s.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}
