package batch

import (
	"context"
	"sync"
	"time"

	"github.com/isavita/sugai/internal/analyzer"
	"github.com/isavita/sugai/internal/importer"
	"github.com/isavita/sugai/internal/models"
	"github.com/rs/zerolog"
)

// Processor runs batch analysis jobs through a fixed-size worker pool.
type Processor struct {
	analyzer *analyzer.Analyzer
	importer *importer.Importer
	workers  int
	logger   *zerolog.Logger
}

func NewProcessor(anz *analyzer.Analyzer, imp *importer.Importer, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		analyzer: anz,
		importer: imp,
		workers:  workers,
		logger:   logger,
	}
}

// Process fans the records out to the worker pool and streams reports back.
// Records that failed to parse come back as failed reports so the output
// file stays aligned with the input.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan models.AnalysisReport {
	jobs := make(chan InputRecord)
	results := make(chan models.AnalysisReport, p.workers)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				results <- p.processOne(ctx, record)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, record := range records {
			select {
			case jobs <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

func (p *Processor) processOne(ctx context.Context, record InputRecord) models.AnalysisReport {
	if record.Error != nil {
		p.logger.Error().
			Int("line", record.LineNumber).
			Err(record.Error).
			Msg("Skipping malformed record")
		return failedReport(record.Job.RequestID)
	}

	data, err := p.importer.ImportFile(record.Job.ExportPath)
	if err != nil {
		p.logger.Error().
			Int("line", record.LineNumber).
			Str("export_path", record.Job.ExportPath).
			Err(err).
			Msg("Failed to import export archive")
		return failedReport(record.Job.RequestID)
	}

	settings := models.DefaultSettings()
	if record.Job.Settings != nil {
		settings = *record.Job.Settings
	}

	request := models.AnalysisRequest{
		RequestID: record.Job.RequestID,
		Settings:  settings,
		Data:      *data,
	}

	return p.analyzer.Analyze(ctx, request)
}

func failedReport(id string) models.AnalysisReport {
	return models.AnalysisReport{
		ID:        id,
		Status:    models.StatusFailed,
		Checks:    []models.CheckResult{},
		Sections:  []models.AdvisorSection{},
		CreatedAt: time.Now(),
	}
}
