package analyzer

import (
	"context"
	"time"

	"github.com/isavita/sugai/internal/insights"
	"github.com/isavita/sugai/internal/models"
	"github.com/isavita/sugai/internal/prompt"
	"github.com/rs/zerolog"
)

// PrecheckRunner runs the deterministic data-quality gates.
type PrecheckRunner interface {
	Run(request models.AnalysisRequest) []models.CheckResult
}

// AdvisorRunner fans the formatted data out to the LLM advisors.
type AdvisorRunner interface {
	Run(ctx context.Context, input prompt.Input) []models.AdvisorSection
}

type Analyzer struct {
	precheckRunner     PrecheckRunner
	advisorRunner      AdvisorRunner
	earlyExitThreshold float64
	logger             *zerolog.Logger
}

func NewAnalyzer(
	prechecks PrecheckRunner,
	advisorRunner AdvisorRunner,
	earlyExitThreshold float64,
	logger *zerolog.Logger,
) *Analyzer {
	return &Analyzer{
		precheckRunner:     prechecks,
		advisorRunner:      advisorRunner,
		earlyExitThreshold: earlyExitThreshold,
		logger:             logger,
	}
}

// Analyze runs the full pipeline: data-quality checks, summary statistics,
// prompt construction and the advisor fan-out. Exports that fail the quality
// gate never reach the LLM.
func (a *Analyzer) Analyze(ctx context.Context, request models.AnalysisRequest) models.AnalysisReport {
	id := request.RequestID
	a.logger.Info().Str("requestID", id).Msg("starting analysis")

	report := models.AnalysisReport{
		ID:        id,
		Status:    models.StatusFailed,
		Checks:    []models.CheckResult{},
		Sections:  []models.AdvisorSection{},
		CreatedAt: time.Now(),
	}

	checkResults := a.precheckRunner.Run(request)
	if len(checkResults) == 0 {
		return report
	}
	report.Checks = checkResults

	checkScore := 0.0
	for _, check := range checkResults {
		checkScore += check.Score
	}
	checkAvgScore := checkScore / float64(len(checkResults))

	if checkAvgScore < a.earlyExitThreshold {
		report.Status = models.StatusInsufficientData
		a.logger.Info().
			Str("requestID", id).
			Float64("avgScore", checkAvgScore).
			Msg("early exit triggered, export not analyzed")
		return report
	}

	computed := insights.Compute(&request.Data)
	report.Insights = computed

	input, err := prompt.Build(request, computed)
	if err != nil {
		a.logger.Error().Err(err).Str("requestID", id).Msg("failed to build prompt input")
		return report
	}

	sections := a.advisorRunner.Run(ctx, *input)
	report.Sections = sections

	report.Status = models.StatusComplete
	if allFailed(sections) {
		report.Status = models.StatusFailed
	}

	a.logger.Info().
		Str("requestID", id).
		Str("status", string(report.Status)).
		Int("sections", len(sections)).
		Msg("analysis complete")

	return report
}

func allFailed(sections []models.AdvisorSection) bool {
	if len(sections) == 0 {
		return true
	}
	for _, section := range sections {
		if section.Error == "" {
			return false
		}
	}
	return true
}
