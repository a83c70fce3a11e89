package store

import (
	"context"
	"sort"
	"sync"

	"github.com/isavita/sugai/internal/models"
)

// MemoryStore keeps reports in process memory. It is the default when no
// database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	reports map[string]models.AnalysisReport
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]models.AnalysisReport)}
}

func (s *MemoryStore) Save(ctx context.Context, report models.AnalysisReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[report.ID] = report
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (models.AnalysisReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[id]
	if !ok {
		return models.AnalysisReport{}, ErrReportNotFound
	}
	return report, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]models.AnalysisReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	reports := make([]models.AnalysisReport, 0, len(s.reports))
	for _, report := range s.reports {
		reports = append(reports, report)
	}

	// Newest first
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})

	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}

	return reports, nil
}
