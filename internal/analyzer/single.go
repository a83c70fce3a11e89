package analyzer

import (
	"context"
	"errors"
	"time"

	"github.com/isavita/sugai/internal/advisor"
	"github.com/isavita/sugai/internal/insights"
	"github.com/isavita/sugai/internal/models"
	"github.com/isavita/sugai/internal/prompt"
	"github.com/rs/zerolog"
)

// AdvisorFactory resolves a single advisor by name.
type AdvisorFactory interface {
	Get(advisorName string) (advisor.Advisor, error)
}

// SingleAdvisorAnalyzer runs one named advisor without the quality gate,
// for targeted re-runs of a single recommendation.
type SingleAdvisorAnalyzer struct {
	advisors AdvisorFactory
	logger   *zerolog.Logger
}

func NewSingleAdvisorAnalyzer(advisors AdvisorFactory, logger *zerolog.Logger) *SingleAdvisorAnalyzer {
	return &SingleAdvisorAnalyzer{
		advisors: advisors,
		logger:   logger,
	}
}

var ErrAdvisorNotFound = errors.New("advisor not found")

func (e *SingleAdvisorAnalyzer) Analyze(ctx context.Context, advisorName string, request models.AnalysisRequest) (models.AnalysisReport, error) {
	id := request.RequestID
	e.logger.Info().Str("requestID", id).Str("advisor", advisorName).Msg("starting single-advisor analysis")

	report := models.AnalysisReport{
		ID:        id,
		Status:    models.StatusFailed,
		Checks:    []models.CheckResult{},
		Sections:  []models.AdvisorSection{},
		CreatedAt: time.Now(),
	}

	adv, err := e.advisors.Get(advisorName)
	if err != nil {
		e.logger.Error().Err(err).Str("advisor", advisorName).Msg("Advisor not found")
		return report, ErrAdvisorNotFound
	}

	computed := insights.Compute(&request.Data)
	report.Insights = computed

	input, err := prompt.Build(request, computed)
	if err != nil {
		return report, err
	}

	section := adv.Advise(ctx, *input)
	report.Sections = append(report.Sections, section)

	if section.Error == "" {
		report.Status = models.StatusComplete
	}

	return report, nil
}
