package models

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusComplete         Status = "complete"
	StatusInsufficientData Status = "insufficient_data"
	StatusFailed           Status = "failed"
)

// GlucoseReading is one CGM sample in mmol/L.
type GlucoseReading struct {
	Timestamp time.Time `json:"timestamp"`
	Glucose   float64   `json:"glucose_mmol_l"`
}

// BasalEvent is a basal rate change reported by the pump.
type BasalEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Rate      float64   `json:"rate_u_hr"`
}

// BolusEvent is a delivered bolus with the carbs it covered (if any).
type BolusEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Insulin   float64   `json:"insulin_u"`
	Carbs     float64   `json:"carbs_g"`
}

// AlarmEvent is a pump or sensor alarm entry.
type AlarmEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
}

// PumpData holds the four series parsed from one export archive.
type PumpData struct {
	Readings []GlucoseReading `json:"readings"`
	Basal    []BasalEvent     `json:"basal"`
	Boluses  []BolusEvent     `json:"boluses"`
	Alarms   []AlarmEvent     `json:"alarms"`
}

// SettingsBlock is one hourly block of pump settings.
type SettingsBlock struct {
	TimeRange        string  `json:"time_range"`
	BasalRate        float64 `json:"basal_rate"`
	CorrectionFactor string  `json:"correction_factor"`
	CarbRatio        string  `json:"carb_ratio"`
	TargetBG         float64 `json:"target_bg"`
}

// PumpSettings is the full 24-block profile entered by the user.
type PumpSettings struct {
	TimedSettings []SettingsBlock `json:"timed_settings"`
}

// Input message

type AnalysisRequest struct {
	RequestID string       `json:"request_id"`
	Settings  PumpSettings `json:"settings"`
	Data      PumpData     `json:"data"`
}

// AnalysisJob is the queue message consumed by the worker. The export stays
// on shared storage; only its path travels through the stream.
type AnalysisJob struct {
	RequestID  string        `json:"request_id"`
	ExportPath string        `json:"export_path"`
	Settings   *PumpSettings `json:"settings,omitempty"`
}

// One data-quality checker's output.
type CheckResult struct {
	Name     string        `json:"name"`
	Score    float64       `json:"score"`
	Reason   string        `json:"reason"`
	Duration time.Duration `json:"duration_ns"`
}

// AdvisorSection is one advisor's markdown recommendation.
type AdvisorSection struct {
	Name           string        `json:"name"`
	Recommendation string        `json:"recommendation"`
	Error          string        `json:"error,omitempty"`
	Duration       time.Duration `json:"duration_ns"`
}

// Insights are the deterministic statistics sent to the advisors and
// echoed back in the report. No dosing logic lives here.
type Insights struct {
	ReadingCount  int            `json:"reading_count"`
	From          time.Time      `json:"from"`
	To            time.Time      `json:"to"`
	MeanGlucose   float64        `json:"mean_glucose"`
	TimeInRange   float64        `json:"time_in_range_pct"`
	TimeBelow     float64        `json:"time_below_pct"`
	TimeAbove     float64        `json:"time_above_pct"`
	TotalBolus    float64        `json:"total_bolus_u"`
	MeanBasalRate float64        `json:"mean_basal_rate"`
	AlarmCounts   map[string]int `json:"alarm_counts,omitempty"`
	Hourly        []HourlyStat   `json:"hourly"`
}

// HourlyStat aggregates CGM samples falling into one hour-of-day block.
type HourlyStat struct {
	Hour  int     `json:"hour"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Final output returned to the caller and persisted in the store.
type AnalysisReport struct {
	ID        string           `json:"id"`
	Status    Status           `json:"status"`
	Checks    []CheckResult    `json:"checks"`
	Insights  *Insights        `json:"insights,omitempty"`
	Sections  []AdvisorSection `json:"sections"`
	CreatedAt time.Time        `json:"created_at"`
}

// DefaultSettings returns the 24-block profile with the form defaults.
func DefaultSettings() PumpSettings {
	blocks := make([]SettingsBlock, 0, 24)
	for hour := 0; hour < 24; hour++ {
		blocks = append(blocks, SettingsBlock{
			TimeRange:        fmt.Sprintf("%02d:00", hour),
			BasalRate:        0.0,
			CorrectionFactor: "1:3.0",
			CarbRatio:        "1:10",
			TargetBG:         5.6,
		})
	}
	return PumpSettings{TimedSettings: blocks}
}
