package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/models"
)

func newTestEventService(repo *fakeEventRepo, now time.Time) *eventService {
	return &eventService{
		eventRepo: repo,
		now:       func() time.Time { return now },
		logger:    zerolog.Nop(),
	}
}

func ptr(v int64) *int64 { return &v }

func TestIngestBatchInheritsExamID(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := newTestEventService(repo, time.Now())

	count, err := svc.Ingest(context.Background(), &models.IngestEventsRequest{
		StudentID: 5,
		ExamID:    ptr(7),
		Logs: []models.EventEntry{
			{EventType: "tab_switch", Timestamp: 100},
			{EventType: "paste", Timestamp: 200, ContentLength: ptr(33)},
		},
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 events, got %d", count)
	}

	if len(repo.batches) != 1 || len(repo.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2, got %+v", repo.batches)
	}
	for _, e := range repo.batches[0] {
		if e.ExamID == nil || *e.ExamID != 7 {
			t.Fatalf("expected inherited exam id 7, got %v", e.ExamID)
		}
		if e.StudentID != 5 {
			t.Fatalf("expected student 5, got %d", e.StudentID)
		}
	}
}

func TestIngestEntryExamIDWins(t *testing.T) {
	repo := &fakeEventRepo{}
	svc := newTestEventService(repo, time.Now())

	_, err := svc.Ingest(context.Background(), &models.IngestEventsRequest{
		StudentID: 5,
		ExamID:    ptr(7),
		Logs: []models.EventEntry{
			{EventType: "tab_switch", Timestamp: 100, ExamID: ptr(9)},
		},
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if got := repo.batches[0][0].ExamID; got == nil || *got != 9 {
		t.Fatalf("expected entry-level exam id 9, got %v", got)
	}
}

func TestIngestSingleInlineEvent(t *testing.T) {
	repo := &fakeEventRepo{}
	now := time.Now()
	svc := newTestEventService(repo, now)

	count, err := svc.Ingest(context.Background(), &models.IngestEventsRequest{
		StudentID: 3,
		EventType: "window_blur",
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 event, got %d", count)
	}

	event := repo.batches[0][0]
	if event.EventType != "window_blur" {
		t.Fatalf("unexpected event type %q", event.EventType)
	}
	if event.Timestamp != now.UnixMilli() {
		t.Fatalf("expected defaulted timestamp %d, got %d", now.UnixMilli(), event.Timestamp)
	}
}

func TestIngestMissingEventType(t *testing.T) {
	svc := newTestEventService(&fakeEventRepo{}, time.Now())

	_, err := svc.Ingest(context.Background(), &models.IngestEventsRequest{
		StudentID: 3,
		Logs:      []models.EventEntry{{Timestamp: 100}},
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
