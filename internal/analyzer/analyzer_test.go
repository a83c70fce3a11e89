package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/isavita/sugai/internal/analyzer/mocks"
	"github.com/isavita/sugai/internal/models"
	"github.com/isavita/sugai/internal/prompt"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func testRequest() models.AnalysisRequest {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	readings := make([]models.GlucoseReading, 0, 48)
	for i := 0; i < 48; i++ {
		readings = append(readings, models.GlucoseReading{
			Timestamp: start.Add(time.Duration(i) * 30 * time.Minute),
			Glucose:   6.0,
		})
	}

	return models.AnalysisRequest{
		RequestID: "req-1",
		Settings:  models.DefaultSettings(),
		Data:      models.PumpData{Readings: readings},
	}
}

func passChecks() []models.CheckResult {
	return []models.CheckResult{
		{Name: "coverage-checker", Score: 1.0, Reason: "ok"},
		{Name: "settings-checker", Score: 1.0, Reason: "ok"},
	}
}

func TestAnalyzer_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	request := testRequest()

	mockPrechecks := mocks.NewMockPrecheckRunner(ctrl)
	mockAdvisors := mocks.NewMockAdvisorRunner(ctrl)

	mockPrechecks.EXPECT().Run(request).Return(passChecks())
	mockAdvisors.EXPECT().Run(gomock.Any(), gomock.Any()).Return([]models.AdvisorSection{
		{Name: "basal-advisor", Recommendation: "### Pattern Identified\nOvernight lows."},
	})

	a := NewAnalyzer(mockPrechecks, mockAdvisors, 0.5, newTestLogger())
	report := a.Analyze(context.Background(), request)

	if report.Status != models.StatusComplete {
		t.Errorf("Expected status complete, got %s", report.Status)
	}
	if report.ID != "req-1" {
		t.Errorf("Expected report ID 'req-1', got '%s'", report.ID)
	}
	if len(report.Sections) != 1 {
		t.Errorf("Expected 1 section, got %d", len(report.Sections))
	}
	if report.Insights == nil || report.Insights.ReadingCount != 48 {
		t.Error("Expected insights with 48 readings")
	}
}

func TestAnalyzer_EarlyExit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	request := testRequest()

	mockPrechecks := mocks.NewMockPrecheckRunner(ctrl)
	mockAdvisors := mocks.NewMockAdvisorRunner(ctrl)

	// No expectation on the advisor runner: a call would fail the test.
	mockPrechecks.EXPECT().Run(request).Return([]models.CheckResult{
		{Name: "coverage-checker", Score: 0.0, Reason: "No CGM readings in export"},
		{Name: "settings-checker", Score: 0.3, Reason: "bad"},
	})

	a := NewAnalyzer(mockPrechecks, mockAdvisors, 0.5, newTestLogger())
	report := a.Analyze(context.Background(), request)

	if report.Status != models.StatusInsufficientData {
		t.Errorf("Expected status insufficient_data, got %s", report.Status)
	}
	if len(report.Checks) != 2 {
		t.Errorf("Expected check results in report, got %d", len(report.Checks))
	}
}

func TestAnalyzer_NoCheckResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	request := testRequest()

	mockPrechecks := mocks.NewMockPrecheckRunner(ctrl)
	mockAdvisors := mocks.NewMockAdvisorRunner(ctrl)

	mockPrechecks.EXPECT().Run(request).Return(nil)

	a := NewAnalyzer(mockPrechecks, mockAdvisors, 0.5, newTestLogger())
	report := a.Analyze(context.Background(), request)

	if report.Status != models.StatusFailed {
		t.Errorf("Expected status failed, got %s", report.Status)
	}
}

func TestAnalyzer_AllAdvisorsFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	request := testRequest()

	mockPrechecks := mocks.NewMockPrecheckRunner(ctrl)
	mockAdvisors := mocks.NewMockAdvisorRunner(ctrl)

	mockPrechecks.EXPECT().Run(request).Return(passChecks())
	mockAdvisors.EXPECT().Run(gomock.Any(), gomock.Any()).Return([]models.AdvisorSection{
		{Name: "basal-advisor", Error: "Failed to call LLM"},
		{Name: "bolus-advisor", Error: "Failed to call LLM"},
	})

	a := NewAnalyzer(mockPrechecks, mockAdvisors, 0.5, newTestLogger())
	report := a.Analyze(context.Background(), request)

	if report.Status != models.StatusFailed {
		t.Errorf("Expected status failed when every advisor errored, got %s", report.Status)
	}
}

func TestAnalyzer_PartialAdvisorFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	request := testRequest()

	mockPrechecks := mocks.NewMockPrecheckRunner(ctrl)
	mockAdvisors := mocks.NewMockAdvisorRunner(ctrl)

	mockPrechecks.EXPECT().Run(request).Return(passChecks())
	mockAdvisors.EXPECT().Run(gomock.Any(), gomock.Any()).Return([]models.AdvisorSection{
		{Name: "basal-advisor", Recommendation: "adjust 02:00 block"},
		{Name: "bolus-advisor", Error: "Failed to call LLM"},
	})

	a := NewAnalyzer(mockPrechecks, mockAdvisors, 0.5, newTestLogger())
	report := a.Analyze(context.Background(), request)

	if report.Status != models.StatusComplete {
		t.Errorf("One failed advisor must not fail the report, got %s", report.Status)
	}
}

func TestAnalyzer_PromptInputReachesAdvisors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	request := testRequest()

	mockPrechecks := mocks.NewMockPrecheckRunner(ctrl)
	mockAdvisors := mocks.NewMockAdvisorRunner(ctrl)

	mockPrechecks.EXPECT().Run(request).Return(passChecks())

	var gotInput prompt.Input
	mockAdvisors.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, input prompt.Input) []models.AdvisorSection {
			gotInput = input
			return []models.AdvisorSection{{Name: "basal-advisor", Recommendation: "ok"}}
		})

	a := NewAnalyzer(mockPrechecks, mockAdvisors, 0.5, newTestLogger())
	a.Analyze(context.Background(), request)

	if gotInput.SettingsJSON == "" {
		t.Error("Expected settings JSON in the advisor input")
	}
	if gotInput.CGMTable == "" || gotInput.CGMTable == "No CGM readings." {
		t.Error("Expected CGM table in the advisor input")
	}
}
