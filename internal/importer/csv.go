package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/isavita/sugai/internal/models"
)

// Column names as they appear in the export header rows. Every file carries
// one vendor preamble line before the header, which the parser skips.
const (
	colTimestamp = "Timestamp"
	colGlucose   = "Glucose (mmol/L)"
	colInsulin   = "Insulin (U)"
	colCarbs     = "Carbs (g)"
	colRate      = "Rate (U/hr)"
	colAlarm     = "Alarm/Event"
)

// Alarm entries that carry no clinical signal and are dropped on import.
var excludedAlarms = map[string]bool{
	"tandem_cgm_sensor_expiring": true,
	"tandem_cgm_replace_sensor":  true,
	"Cartridge Loaded":           true,
	"Resume Pump Alarm (18A)":    true,
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"1/2/2006 15:04",
}

type row struct {
	line   int
	fields map[string]string
}

// readRows skips the preamble line, reads the header and returns the data
// rows keyed by column name. Trailing bookkeeping columns without a header
// are ignored.
func readRows(r io.Reader) ([]row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	// Preamble line
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("file is empty")
		}
		return nil, fmt.Errorf("failed to read preamble: %w", err)
	}

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var rows []row
	line := 2
	for {
		record, err := cr.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv error at line %d: %w", line, err)
		}

		fields := make(map[string]string, len(index))
		for name, i := range index {
			if i < len(record) {
				fields[name] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row{line: line, fields: fields})
	}

	return rows, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// ParseCGM parses cgm_data_1.csv. Rows with an unparseable timestamp or
// glucose value are skipped and counted.
func ParseCGM(r io.Reader) ([]models.GlucoseReading, int, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, 0, err
	}

	var readings []models.GlucoseReading
	skipped := 0
	for _, row := range rows {
		ts, err := parseTimestamp(row.fields[colTimestamp])
		if err != nil {
			skipped++
			continue
		}
		glucose, err := strconv.ParseFloat(row.fields[colGlucose], 64)
		if err != nil {
			skipped++
			continue
		}
		readings = append(readings, models.GlucoseReading{Timestamp: ts, Glucose: glucose})
	}

	return readings, skipped, nil
}

// ParseBolus parses bolus_data_1.csv. A missing carbs value is treated as 0.
func ParseBolus(r io.Reader) ([]models.BolusEvent, int, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, 0, err
	}

	var boluses []models.BolusEvent
	skipped := 0
	for _, row := range rows {
		ts, err := parseTimestamp(row.fields[colTimestamp])
		if err != nil {
			skipped++
			continue
		}
		insulin, err := strconv.ParseFloat(row.fields[colInsulin], 64)
		if err != nil {
			skipped++
			continue
		}
		carbs, err := strconv.ParseFloat(row.fields[colCarbs], 64)
		if err != nil {
			carbs = 0
		}
		boluses = append(boluses, models.BolusEvent{Timestamp: ts, Insulin: insulin, Carbs: carbs})
	}

	return boluses, skipped, nil
}

// ParseBasal parses basal_data_1.csv.
func ParseBasal(r io.Reader) ([]models.BasalEvent, int, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, 0, err
	}

	var events []models.BasalEvent
	skipped := 0
	for _, row := range rows {
		ts, err := parseTimestamp(row.fields[colTimestamp])
		if err != nil {
			skipped++
			continue
		}
		rate, err := strconv.ParseFloat(row.fields[colRate], 64)
		if err != nil {
			skipped++
			continue
		}
		events = append(events, models.BasalEvent{Timestamp: ts, Rate: rate})
	}

	return events, skipped, nil
}

// ParseAlarms parses alarms_data_1.csv, dropping maintenance events that
// carry no clinical signal.
func ParseAlarms(r io.Reader) ([]models.AlarmEvent, int, error) {
	rows, err := readRows(r)
	if err != nil {
		return nil, 0, err
	}

	var alarms []models.AlarmEvent
	skipped := 0
	for _, row := range rows {
		event := row.fields[colAlarm]
		if event == "" || excludedAlarms[event] {
			skipped++
			continue
		}
		ts, err := parseTimestamp(row.fields[colTimestamp])
		if err != nil {
			skipped++
			continue
		}
		alarms = append(alarms, models.AlarmEvent{Timestamp: ts, Event: event})
	}

	return alarms, skipped, nil
}
