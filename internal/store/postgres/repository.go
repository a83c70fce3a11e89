package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/isavita/sugai/internal/models"
	"github.com/isavita/sugai/internal/store"
	"github.com/jackc/pgx/v5"
)

// ReportRepository persists analysis reports in the reports table. The full
// report rides in a JSONB column; id, status and created_at are promoted for
// indexing. Schema lives in migrations/001_reports.sql.
type ReportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Save(ctx context.Context, report models.AnalysisReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report %s: %w", report.ID, err)
	}

	query := `
		INSERT INTO reports (id, status, payload, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, payload = EXCLUDED.payload`

	if _, err := r.db.Pool.Exec(ctx, query, report.ID, string(report.Status), payload, report.CreatedAt); err != nil {
		return fmt.Errorf("failed to save report %s: %w", report.ID, err)
	}

	return nil
}

func (r *ReportRepository) Get(ctx context.Context, id string) (models.AnalysisReport, error) {
	query := `SELECT payload FROM reports WHERE id = $1`

	var payload []byte
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.AnalysisReport{}, store.ErrReportNotFound
	}
	if err != nil {
		return models.AnalysisReport{}, fmt.Errorf("failed to load report %s: %w", id, err)
	}

	var report models.AnalysisReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return models.AnalysisReport{}, fmt.Errorf("failed to unmarshal report %s: %w", id, err)
	}

	return report, nil
}

func (r *ReportRepository) List(ctx context.Context, limit int) ([]models.AnalysisReport, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT payload FROM reports ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []models.AnalysisReport
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}

		var report models.AnalysisReport
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report row: %w", err)
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
