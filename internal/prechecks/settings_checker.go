package prechecks

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/isavita/sugai/internal/models"
)

type SettingsChecker struct {
}

func NewSettingsChecker() *SettingsChecker {
	return &SettingsChecker{}
}

// SettingsChecker validates the 24-block pump profile: ratio fields must be
// "1:<number>", basal rates non-negative, target BG in a plausible mmol/L
// window. An unusable profile would make any recommendation meaningless.
func (c *SettingsChecker) Check(request models.AnalysisRequest) models.CheckResult {
	result := models.CheckResult{
		Name:     "settings-checker",
		Score:    0.0,
		Reason:   "",
		Duration: 0,
	}

	now := time.Now()
	blocks := request.Settings.TimedSettings

	if len(blocks) != 24 {
		result.Reason = fmt.Sprintf("Expected 24 settings blocks, got %d", len(blocks))
		result.Duration = time.Since(now)
		return result
	}

	var problems []string
	for _, block := range blocks {
		if block.BasalRate < 0 {
			problems = append(problems, fmt.Sprintf("%s: negative basal rate", block.TimeRange))
		}
		if _, err := ParseRatio(block.CorrectionFactor); err != nil {
			problems = append(problems, fmt.Sprintf("%s: bad correction factor %q", block.TimeRange, block.CorrectionFactor))
		}
		if _, err := ParseRatio(block.CarbRatio); err != nil {
			problems = append(problems, fmt.Sprintf("%s: bad carb ratio %q", block.TimeRange, block.CarbRatio))
		}
		if block.TargetBG < 3.0 || block.TargetBG > 10.0 {
			problems = append(problems, fmt.Sprintf("%s: target BG %.1f outside 3.0-10.0 mmol/L", block.TimeRange, block.TargetBG))
		}
	}

	if len(problems) > 0 {
		// Cap the reason so a fully broken profile doesn't flood the report.
		if len(problems) > 5 {
			problems = append(problems[:5], fmt.Sprintf("and %d more", len(problems)-5))
		}
		result.Reason = "Invalid settings: " + strings.Join(problems, "; ")
		result.Duration = time.Since(now)
		return result
	}

	result.Score = 1.0
	result.Reason = "Settings profile is valid"
	result.Duration = time.Since(now)
	return result
}

// ParseRatio parses a "1:<number>" pump ratio and returns the denominator.
func ParseRatio(s string) (float64, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != "1" {
		return 0, fmt.Errorf("ratio %q is not in 1:<number> form", s)
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, fmt.Errorf("ratio %q has a non-numeric denominator", s)
	}
	if value <= 0 {
		return 0, fmt.Errorf("ratio %q must have a positive denominator", s)
	}

	return value, nil
}
