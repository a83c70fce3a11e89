package prechecks

import (
	"fmt"
	"time"

	"github.com/isavita/sugai/internal/models"
)

type CoverageChecker struct {
	MinReadings int
	MinSpan     time.Duration
}

func NewCoverageChecker() *CoverageChecker {
	return &CoverageChecker{}
}

// CoverageChecker scores the export on how much CGM data it carries. An
// export with too few samples or too short a span cannot support a
// time-block recommendation.
func (c *CoverageChecker) Check(request models.AnalysisRequest) models.CheckResult {
	minReadings := c.MinReadings
	if minReadings == 0 {
		minReadings = 48
	}
	minSpan := c.MinSpan
	if minSpan == 0 {
		minSpan = 24 * time.Hour
	}

	result := models.CheckResult{
		Name:     "coverage-checker",
		Score:    0.0,
		Reason:   "",
		Duration: 0,
	}

	now := time.Now()
	readings := request.Data.Readings

	if len(readings) == 0 {
		result.Reason = "No CGM readings in export"
		result.Duration = time.Since(now)
		return result
	}

	first, last := readings[0].Timestamp, readings[0].Timestamp
	for _, reading := range readings {
		if reading.Timestamp.Before(first) {
			first = reading.Timestamp
		}
		if reading.Timestamp.After(last) {
			last = reading.Timestamp
		}
	}
	span := last.Sub(first)

	if len(readings) < minReadings {
		result.Score = 0.3
		result.Reason = fmt.Sprintf("Only %d CGM readings, need at least %d", len(readings), minReadings)
	} else if span < minSpan {
		result.Score = 0.5
		result.Reason = fmt.Sprintf("CGM data spans %.1f hours, need at least %.1f", span.Hours(), minSpan.Hours())
	} else {
		result.Score = 1.0
		result.Reason = fmt.Sprintf("%d readings over %.1f hours", len(readings), span.Hours())
	}

	result.Duration = time.Since(now)
	return result
}
