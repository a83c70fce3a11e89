package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/isavita/sugai/internal/models"
)

// MaxTableRows caps each raw data excerpt so prompts stay within model
// context limits. The most recent rows win.
const MaxTableRows = 288

const timestampLayout = "2006-01-02 15:04"

// Input is what advisor prompt templates render against.
type Input struct {
	SettingsJSON string
	StatsSummary string
	HourlyTable  string
	CGMTable     string
	BolusTable   string
	BasalTable   string
	AlarmTable   string
}

// Build formats the request and its computed insights into the template
// input. This is the formatter seam: tabular data in, prompt strings out.
func Build(request models.AnalysisRequest, insights *models.Insights) (*Input, error) {
	settingsJSON, err := json.MarshalIndent(request.Settings, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}

	return &Input{
		SettingsJSON: string(settingsJSON),
		StatsSummary: statsSummary(insights),
		HourlyTable:  hourlyTable(insights),
		CGMTable:     cgmTable(request.Data.Readings),
		BolusTable:   bolusTable(request.Data.Boluses),
		BasalTable:   basalTable(request.Data.Basal),
		AlarmTable:   alarmTable(request.Data.Alarms),
	}, nil
}

func statsSummary(insights *models.Insights) string {
	if insights == nil || insights.ReadingCount == 0 {
		return "No CGM data available."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Readings: %d from %s to %s\n",
		insights.ReadingCount,
		insights.From.Format(timestampLayout),
		insights.To.Format(timestampLayout))
	fmt.Fprintf(&b, "Mean glucose: %.1f mmol/L\n", insights.MeanGlucose)
	fmt.Fprintf(&b, "Time in range (3.9-10.0): %.1f%%, below: %.1f%%, above: %.1f%%\n",
		insights.TimeInRange, insights.TimeBelow, insights.TimeAbove)
	fmt.Fprintf(&b, "Total bolus insulin: %.1f U, mean basal rate: %.2f U/hr",
		insights.TotalBolus, insights.MeanBasalRate)
	return b.String()
}

func hourlyTable(insights *models.Insights) string {
	if insights == nil || len(insights.Hourly) == 0 {
		return "No hourly statistics available."
	}

	var b strings.Builder
	b.WriteString("Hour | Samples | Mean | Min | Max (mmol/L)\n")
	for _, stat := range insights.Hourly {
		fmt.Fprintf(&b, "%02d:00 | %d | %.1f | %.1f | %.1f\n",
			stat.Hour, stat.Count, stat.Mean, stat.Min, stat.Max)
	}
	return strings.TrimRight(b.String(), "\n")
}

func cgmTable(readings []models.GlucoseReading) string {
	if len(readings) == 0 {
		return "No CGM readings."
	}
	if len(readings) > MaxTableRows {
		readings = readings[len(readings)-MaxTableRows:]
	}

	var b strings.Builder
	b.WriteString("Timestamp | Glucose (mmol/L)\n")
	for _, reading := range readings {
		fmt.Fprintf(&b, "%s | %.1f\n", reading.Timestamp.Format(timestampLayout), reading.Glucose)
	}
	return strings.TrimRight(b.String(), "\n")
}

func bolusTable(boluses []models.BolusEvent) string {
	if len(boluses) == 0 {
		return "No bolus entries."
	}
	if len(boluses) > MaxTableRows {
		boluses = boluses[len(boluses)-MaxTableRows:]
	}

	var b strings.Builder
	b.WriteString("Timestamp | Insulin (U) | Carbs (g)\n")
	for _, bolus := range boluses {
		fmt.Fprintf(&b, "%s | %.2f | %.0f\n", bolus.Timestamp.Format(timestampLayout), bolus.Insulin, bolus.Carbs)
	}
	return strings.TrimRight(b.String(), "\n")
}

func basalTable(events []models.BasalEvent) string {
	if len(events) == 0 {
		return "No basal entries."
	}
	if len(events) > MaxTableRows {
		events = events[len(events)-MaxTableRows:]
	}

	var b strings.Builder
	b.WriteString("Timestamp | Rate (U/hr)\n")
	for _, event := range events {
		fmt.Fprintf(&b, "%s | %.2f\n", event.Timestamp.Format(timestampLayout), event.Rate)
	}
	return strings.TrimRight(b.String(), "\n")
}

func alarmTable(alarms []models.AlarmEvent) string {
	if len(alarms) == 0 {
		return "No alarms."
	}
	if len(alarms) > MaxTableRows {
		alarms = alarms[len(alarms)-MaxTableRows:]
	}

	var b strings.Builder
	b.WriteString("Timestamp | Alarm/Event\n")
	for _, alarm := range alarms {
		fmt.Fprintf(&b, "%s | %s\n", alarm.Timestamp.Format(timestampLayout), alarm.Event)
	}
	return strings.TrimRight(b.String(), "\n")
}
