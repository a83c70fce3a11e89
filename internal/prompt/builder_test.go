package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/isavita/sugai/internal/insights"
	"github.com/isavita/sugai/internal/models"
)

func TestBuild_IncludesSettingsAndTables(t *testing.T) {
	start := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	data := models.PumpData{
		Readings: []models.GlucoseReading{
			{Timestamp: start, Glucose: 7.0},
			{Timestamp: start.Add(time.Hour), Glucose: 3.8},
		},
		Boluses: []models.BolusEvent{
			{Timestamp: start.Add(6 * time.Hour), Insulin: 4.5, Carbs: 45},
		},
		Basal: []models.BasalEvent{
			{Timestamp: start, Rate: 0.8},
		},
		Alarms: []models.AlarmEvent{
			{Timestamp: start.Add(time.Hour), Event: "Low Glucose Alert"},
		},
	}

	request := models.AnalysisRequest{
		RequestID: "req-1",
		Settings:  models.DefaultSettings(),
		Data:      data,
	}

	input, err := Build(request, insights.Compute(&data))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if !strings.Contains(input.SettingsJSON, `"timed_settings"`) {
		t.Error("Expected settings JSON to contain timed_settings")
	}
	if !strings.Contains(input.SettingsJSON, `"1:10"`) {
		t.Error("Expected settings JSON to contain default carb ratio")
	}
	if !strings.Contains(input.CGMTable, "2024-03-01 03:00 | 3.8") {
		t.Errorf("CGM table missing expected row:\n%s", input.CGMTable)
	}
	if !strings.Contains(input.BolusTable, "4.50 | 45") {
		t.Errorf("Bolus table missing expected row:\n%s", input.BolusTable)
	}
	if !strings.Contains(input.AlarmTable, "Low Glucose Alert") {
		t.Errorf("Alarm table missing expected row:\n%s", input.AlarmTable)
	}
	if !strings.Contains(input.HourlyTable, "02:00 | 1 | 7.0") {
		t.Errorf("Hourly table missing expected row:\n%s", input.HourlyTable)
	}
	if !strings.Contains(input.StatsSummary, "Readings: 2") {
		t.Errorf("Stats summary missing reading count:\n%s", input.StatsSummary)
	}
}

func TestBuild_EmptyData(t *testing.T) {
	data := models.PumpData{}
	request := models.AnalysisRequest{Settings: models.DefaultSettings(), Data: data}

	input, err := Build(request, insights.Compute(&data))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if input.CGMTable != "No CGM readings." {
		t.Errorf("Unexpected empty CGM table: %s", input.CGMTable)
	}
	if input.StatsSummary != "No CGM data available." {
		t.Errorf("Unexpected empty stats summary: %s", input.StatsSummary)
	}
}

func TestBuild_CapsTableRows(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var readings []models.GlucoseReading
	for i := 0; i < MaxTableRows+50; i++ {
		readings = append(readings, models.GlucoseReading{
			Timestamp: start.Add(time.Duration(i) * 5 * time.Minute),
			Glucose:   6.0,
		})
	}

	data := models.PumpData{Readings: readings}
	request := models.AnalysisRequest{Settings: models.DefaultSettings(), Data: data}

	input, err := Build(request, insights.Compute(&data))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Header plus at most MaxTableRows data lines
	lines := strings.Count(input.CGMTable, "\n") + 1
	if lines != MaxTableRows+1 {
		t.Errorf("Expected %d lines in capped CGM table, got %d", MaxTableRows+1, lines)
	}

	// The excerpt keeps the most recent rows
	last := readings[len(readings)-1].Timestamp.Format("2006-01-02 15:04")
	if !strings.Contains(input.CGMTable, last) {
		t.Error("Expected capped table to keep the most recent reading")
	}
}
