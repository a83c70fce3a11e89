package prechecks

import (
	"fmt"
	"sort"
	"time"

	"github.com/isavita/sugai/internal/models"
)

type GapChecker struct {
	MaxGap time.Duration
}

func NewGapChecker() *GapChecker {
	return &GapChecker{}
}

// GapChecker scores the export on its longest sensor outage. Long gaps make
// the hourly pattern unreliable for the gap's time blocks.
func (c *GapChecker) Check(request models.AnalysisRequest) models.CheckResult {
	maxGap := c.MaxGap
	if maxGap == 0 {
		maxGap = 3 * time.Hour
	}

	result := models.CheckResult{
		Name:     "gap-checker",
		Score:    0.0,
		Reason:   "",
		Duration: 0,
	}

	now := time.Now()
	readings := request.Data.Readings

	if len(readings) < 2 {
		result.Reason = "Not enough CGM readings to measure gaps"
		result.Duration = time.Since(now)
		return result
	}

	timestamps := make([]time.Time, len(readings))
	for i, reading := range readings {
		timestamps[i] = reading.Timestamp
	}
	sort.Slice(timestamps, func(i, j int) bool { return timestamps[i].Before(timestamps[j]) })

	longest := time.Duration(0)
	for i := 1; i < len(timestamps); i++ {
		if gap := timestamps[i].Sub(timestamps[i-1]); gap > longest {
			longest = gap
		}
	}

	if longest <= maxGap {
		result.Score = 1.0
		result.Reason = fmt.Sprintf("Longest CGM gap is %.1f hours", longest.Hours())
	} else if longest <= 2*maxGap {
		result.Score = 0.5
		result.Reason = fmt.Sprintf("Longest CGM gap is %.1f hours, pattern may be unreliable", longest.Hours())
	} else {
		result.Score = 0.1
		result.Reason = fmt.Sprintf("Longest CGM gap is %.1f hours, exceeds %.1f hour limit", longest.Hours(), (2 * maxGap).Hours())
	}

	result.Duration = time.Since(now)
	return result
}
