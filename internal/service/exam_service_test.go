package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/models"
)

func TestComputeStatus(t *testing.T) {
	today := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		date string
		want models.ExamStatus
	}{
		{"2026-09-15", models.ExamStatusOngoing},
		{"2026-09-16", models.ExamStatusUpcoming},
		{"2027-01-01", models.ExamStatusUpcoming},
		{"2026-09-14", models.ExamStatusCompleted},
		{"2020-01-01", models.ExamStatusCompleted},
		{"not-a-date", models.ExamStatusUnknown},
		{"", models.ExamStatusUnknown},
	}

	for _, tc := range cases {
		if got := computeStatus(tc.date, today); got != tc.want {
			t.Errorf("computeStatus(%q) = %v, want %v", tc.date, got, tc.want)
		}
	}
}

func TestCreateExamValidation(t *testing.T) {
	svc := &examService{
		examRepo: &fakeExamRepo{},
		now:      time.Now,
		logger:   zerolog.Nop(),
	}

	cases := []*models.CreateExamRequest{
		{Date: "2026-09-15", FacultyID: 1},                 // missing title
		{Title: "Final", FacultyID: 1},                     // missing date
		{Title: "Final", Date: "2026-09-15"},               // missing faculty
		{Title: "Final", Date: "15/09/2026", FacultyID: 1}, // wrong format
	}

	for i, req := range cases {
		if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: expected ErrValidation, got %v", i, err)
		}
	}

	id, err := svc.Create(context.Background(), &models.CreateExamRequest{
		Title: "Final", Date: "2026-09-15", FacultyID: 1,
	})
	if err != nil {
		t.Fatalf("valid create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero exam id")
	}
}

func TestGetForStudentMarksSubmittedOngoingCompleted(t *testing.T) {
	today := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	todayStr := today.Format("2006-01-02")

	examRepo := &fakeExamRepo{
		exams: []models.Exam{
			{ID: 1, Title: "Submitted today", Date: todayStr},
			{ID: 2, Title: "Not submitted today", Date: todayStr},
			{ID: 3, Title: "Future", Date: "2026-12-01"},
		},
	}
	subRepo := &fakeSubmissionRepo{
		subs: []models.Submission{{ID: 1, ExamID: 1, StudentID: 42}},
	}

	svc := &examService{
		examRepo:       examRepo,
		submissionRepo: subRepo,
		now:            func() time.Time { return today },
		logger:         zerolog.Nop(),
	}

	exams, err := svc.GetForStudent(context.Background(), 42)
	if err != nil {
		t.Fatalf("get for student: %v", err)
	}
	if len(exams) != 3 {
		t.Fatalf("expected 3 exams, got %d", len(exams))
	}

	want := map[int64]string{
		1: models.ExamStatusCompleted.String(),
		2: models.ExamStatusOngoing.String(),
		3: models.ExamStatusUpcoming.String(),
	}
	for _, exam := range exams {
		if exam.Status != want[exam.ID] {
			t.Errorf("exam %d: expected status %s, got %s", exam.ID, want[exam.ID], exam.Status)
		}
	}
}

func TestGetDetailMissingExam(t *testing.T) {
	svc := &examService{
		examRepo: &fakeExamRepo{},
		now:      time.Now,
		logger:   zerolog.Nop(),
	}

	_, err := svc.GetDetail(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
