package insights

import (
	"math"

	"github.com/isavita/sugai/internal/models"
)

// Glucose band used for time-in-range statistics, in mmol/L.
const (
	RangeLow  = 3.9
	RangeHigh = 10.0
)

// Compute derives summary statistics from one export. It only aggregates;
// recommendations are produced downstream by the advisors.
func Compute(data *models.PumpData) *models.Insights {
	result := &models.Insights{
		ReadingCount: len(data.Readings),
	}

	if len(data.Readings) > 0 {
		result.From = data.Readings[0].Timestamp
		result.To = data.Readings[0].Timestamp

		sum := 0.0
		below, inRange, above := 0, 0, 0
		for _, reading := range data.Readings {
			sum += reading.Glucose

			switch {
			case reading.Glucose < RangeLow:
				below++
			case reading.Glucose > RangeHigh:
				above++
			default:
				inRange++
			}

			if reading.Timestamp.Before(result.From) {
				result.From = reading.Timestamp
			}
			if reading.Timestamp.After(result.To) {
				result.To = reading.Timestamp
			}
		}

		n := float64(len(data.Readings))
		result.MeanGlucose = round1(sum / n)
		result.TimeInRange = round1(100 * float64(inRange) / n)
		result.TimeBelow = round1(100 * float64(below) / n)
		result.TimeAbove = round1(100 * float64(above) / n)
	}

	for _, bolus := range data.Boluses {
		result.TotalBolus += bolus.Insulin
	}
	result.TotalBolus = round1(result.TotalBolus)

	if len(data.Basal) > 0 {
		sum := 0.0
		for _, event := range data.Basal {
			sum += event.Rate
		}
		result.MeanBasalRate = round2(sum / float64(len(data.Basal)))
	}

	if len(data.Alarms) > 0 {
		result.AlarmCounts = make(map[string]int)
		for _, alarm := range data.Alarms {
			result.AlarmCounts[alarm.Event]++
		}
	}

	result.Hourly = hourlyStats(data.Readings)

	return result
}

// hourlyStats buckets readings by hour of day. Hours without samples are
// omitted so the prompt stays compact.
func hourlyStats(readings []models.GlucoseReading) []models.HourlyStat {
	type acc struct {
		count    int
		sum      float64
		min, max float64
	}

	var buckets [24]acc
	for _, reading := range readings {
		hour := reading.Timestamp.Hour()
		b := &buckets[hour]
		if b.count == 0 {
			b.min = reading.Glucose
			b.max = reading.Glucose
		} else {
			b.min = math.Min(b.min, reading.Glucose)
			b.max = math.Max(b.max, reading.Glucose)
		}
		b.count++
		b.sum += reading.Glucose
	}

	var stats []models.HourlyStat
	for hour, b := range buckets {
		if b.count == 0 {
			continue
		}
		stats = append(stats, models.HourlyStat{
			Hour:  hour,
			Count: b.count,
			Mean:  round1(b.sum / float64(b.count)),
			Min:   b.min,
			Max:   b.max,
		})
	}

	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
