package prechecks

import (
	"strings"
	"testing"
	"time"

	"github.com/isavita/sugai/internal/models"
)

func readingsEvery(start time.Time, step time.Duration, count int) []models.GlucoseReading {
	readings := make([]models.GlucoseReading, 0, count)
	for i := 0; i < count; i++ {
		readings = append(readings, models.GlucoseReading{
			Timestamp: start.Add(time.Duration(i) * step),
			Glucose:   6.0,
		})
	}
	return readings
}

func TestCoverageChecker_NoReadings(t *testing.T) {
	checker := NewCoverageChecker()

	result := checker.Check(models.AnalysisRequest{})
	if result.Score != 0.0 {
		t.Errorf("Expected score 0.0, got %f", result.Score)
	}
	if result.Reason != "No CGM readings in export" {
		t.Errorf("Unexpected reason: %s", result.Reason)
	}
}

func TestCoverageChecker_TooFewReadings(t *testing.T) {
	checker := NewCoverageChecker()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	request := models.AnalysisRequest{
		Data: models.PumpData{Readings: readingsEvery(start, time.Hour, 10)},
	}

	result := checker.Check(request)
	if result.Score != 0.3 {
		t.Errorf("Expected score 0.3, got %f", result.Score)
	}
}

func TestCoverageChecker_GoodCoverage(t *testing.T) {
	checker := NewCoverageChecker()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	request := models.AnalysisRequest{
		Data: models.PumpData{Readings: readingsEvery(start, 30*time.Minute, 96)},
	}

	result := checker.Check(request)
	if result.Score != 1.0 {
		t.Errorf("Expected score 1.0, got %f (%s)", result.Score, result.Reason)
	}
}

func TestGapChecker_NoGaps(t *testing.T) {
	checker := NewGapChecker()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	request := models.AnalysisRequest{
		Data: models.PumpData{Readings: readingsEvery(start, 5*time.Minute, 100)},
	}

	result := checker.Check(request)
	if result.Score != 1.0 {
		t.Errorf("Expected score 1.0, got %f (%s)", result.Score, result.Reason)
	}
}

func TestGapChecker_LongOutage(t *testing.T) {
	checker := NewGapChecker()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	readings := readingsEvery(start, 5*time.Minute, 10)
	readings = append(readings, readingsEvery(start.Add(12*time.Hour), 5*time.Minute, 10)...)

	request := models.AnalysisRequest{Data: models.PumpData{Readings: readings}}

	result := checker.Check(request)
	if result.Score != 0.1 {
		t.Errorf("Expected score 0.1 for 11+ hour gap, got %f (%s)", result.Score, result.Reason)
	}
}

func TestGapChecker_SingleReading(t *testing.T) {
	checker := NewGapChecker()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	request := models.AnalysisRequest{
		Data: models.PumpData{Readings: readingsEvery(start, time.Hour, 1)},
	}

	result := checker.Check(request)
	if result.Score != 0.0 {
		t.Errorf("Expected score 0.0 for single reading, got %f", result.Score)
	}
}

func TestSettingsChecker_ValidProfile(t *testing.T) {
	checker := NewSettingsChecker()

	request := models.AnalysisRequest{Settings: models.DefaultSettings()}

	result := checker.Check(request)
	if result.Score != 1.0 {
		t.Errorf("Expected score 1.0 for default profile, got %f (%s)", result.Score, result.Reason)
	}
}

func TestSettingsChecker_WrongBlockCount(t *testing.T) {
	checker := NewSettingsChecker()

	settings := models.DefaultSettings()
	settings.TimedSettings = settings.TimedSettings[:12]

	result := checker.Check(models.AnalysisRequest{Settings: settings})
	if result.Score != 0.0 {
		t.Errorf("Expected score 0.0, got %f", result.Score)
	}
}

func TestSettingsChecker_BadRatio(t *testing.T) {
	checker := NewSettingsChecker()

	settings := models.DefaultSettings()
	settings.TimedSettings[3].CarbRatio = "ten grams"

	result := checker.Check(models.AnalysisRequest{Settings: settings})
	if result.Score != 0.0 {
		t.Errorf("Expected score 0.0, got %f", result.Score)
	}
	if !strings.Contains(result.Reason, "03:00") {
		t.Errorf("Expected reason to name the bad block, got: %s", result.Reason)
	}
}

func TestParseRatio(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"1:10", 10, false},
		{"1:3.0", 3.0, false},
		{" 1 : 2.5 ", 2.5, false},
		{"2:10", 0, true},
		{"1:", 0, true},
		{"1:-4", 0, true},
		{"garbage", 0, true},
	}

	for _, tc := range tests {
		got, err := ParseRatio(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseRatio(%q): expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRatio(%q): unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRatio(%q) = %f, want %f", tc.input, got, tc.want)
		}
	}
}

func TestStageRunner_RunsAllCheckers(t *testing.T) {
	runner := NewStageRunner([]Checker{
		NewCoverageChecker(),
		NewGapChecker(),
		NewSettingsChecker(),
	})

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	request := models.AnalysisRequest{
		Settings: models.DefaultSettings(),
		Data:     models.PumpData{Readings: readingsEvery(start, 30*time.Minute, 96)},
	}

	results := runner.Run(request)
	if len(results) != 3 {
		t.Fatalf("Expected 3 check results, got %d", len(results))
	}

	seen := make(map[string]bool)
	for _, result := range results {
		seen[result.Name] = true
		if result.Score != 1.0 {
			t.Errorf("Checker %s: expected score 1.0, got %f (%s)", result.Name, result.Score, result.Reason)
		}
	}
	for _, name := range []string{"coverage-checker", "gap-checker", "settings-checker"} {
		if !seen[name] {
			t.Errorf("Missing result for %s", name)
		}
	}
}
