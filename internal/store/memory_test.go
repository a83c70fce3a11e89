package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/isavita/sugai/internal/models"
)

func TestMemoryStore_SaveAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	report := models.AnalysisReport{
		ID:        "r-1",
		Status:    models.StatusComplete,
		CreatedAt: time.Now(),
	}

	if err := s.Save(ctx, report); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Get(ctx, "r-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.StatusComplete {
		t.Errorf("Expected status complete, got %s", got.Status)
	}
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrReportNotFound) {
		t.Errorf("Expected ErrReportNotFound, got %v", err)
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"old", "mid", "new"} {
		report := models.AnalysisReport{
			ID:        id,
			Status:    models.StatusComplete,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := s.Save(ctx, report); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	reports, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}
	if reports[0].ID != "new" || reports[1].ID != "mid" {
		t.Errorf("Expected newest first, got %s, %s", reports[0].ID, reports[1].ID)
	}
}
