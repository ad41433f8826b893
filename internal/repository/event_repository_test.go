package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/codewatch/exam-service/internal/models"
)

func newTestEventRepo(t *testing.T) EventRepository {
	t.Helper()
	db, cfg := newTestDB(t)
	return NewEventRepository(db, cfg, zerolog.Nop())
}

func int64Ptr(v int64) *int64 { return &v }

func TestEventCreateBatchAppendOnly(t *testing.T) {
	repo := newTestEventRepo(t)
	ctx := context.Background()

	batch := []models.EventLog{
		{StudentID: 5, ExamID: int64Ptr(7), EventType: "tab_switch", Timestamp: 300},
		{StudentID: 5, ExamID: int64Ptr(7), EventType: "paste", Timestamp: 100, ContentLength: int64Ptr(42)},
	}
	if err := repo.CreateBatch(ctx, batch); err != nil {
		t.Fatalf("create batch: %v", err)
	}

	// Same batch again: rows accumulate, nothing is deduplicated.
	if err := repo.CreateBatch(ctx, batch); err != nil {
		t.Fatalf("second batch: %v", err)
	}

	events, err := repo.GetByStudentID(ctx, 5)
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}

	// Insertion order, not timestamp order.
	if events[0].EventType != "tab_switch" || events[1].EventType != "paste" {
		t.Fatalf("unexpected order: %q, %q", events[0].EventType, events[1].EventType)
	}
	if events[1].ContentLength == nil || *events[1].ContentLength != 42 {
		t.Fatalf("unexpected content length: %v", events[1].ContentLength)
	}
	if events[0].ExamID == nil || *events[0].ExamID != 7 {
		t.Fatalf("unexpected exam id: %v", events[0].ExamID)
	}
}

func TestEventCreateBatchEmpty(t *testing.T) {
	repo := newTestEventRepo(t)

	if err := repo.CreateBatch(context.Background(), nil); err != nil {
		t.Fatalf("empty batch: %v", err)
	}
}

func TestEventNullableExamID(t *testing.T) {
	repo := newTestEventRepo(t)
	ctx := context.Background()

	if err := repo.CreateBatch(ctx, []models.EventLog{
		{StudentID: 9, EventType: "window_blur", Timestamp: 1},
	}); err != nil {
		t.Fatalf("create batch: %v", err)
	}

	events, err := repo.GetByStudentID(ctx, 9)
	if err != nil {
		t.Fatalf("get events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ExamID != nil {
		t.Fatalf("expected nil exam id, got %v", *events[0].ExamID)
	}
}
