package store

import (
	"context"
	"errors"

	"github.com/isavita/sugai/internal/models"
)

var ErrReportNotFound = errors.New("report not found")

// ReportStore persists analysis reports for later retrieval.
type ReportStore interface {
	Save(ctx context.Context, report models.AnalysisReport) error
	Get(ctx context.Context, id string) (models.AnalysisReport, error)
	List(ctx context.Context, limit int) ([]models.AnalysisReport, error)
}
