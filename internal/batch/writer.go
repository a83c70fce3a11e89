package batch

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/isavita/sugai/internal/models"
	"github.com/rs/zerolog"
)

// Writer serializes batch reports. The "jsonl" format writes one report per
// line; "summary" counts outcomes and writes a single JSON object on Close.
type Writer struct {
	output  io.Writer
	format  string
	logger  *zerolog.Logger
	encoder *json.Encoder

	total            int
	complete         int
	insufficientData int
	failed           int
}

func NewWriter(output io.Writer, format string, logger *zerolog.Logger) (*Writer, error) {
	switch format {
	case "jsonl", "summary":
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return &Writer{
		output:  output,
		format:  format,
		logger:  logger,
		encoder: json.NewEncoder(output),
	}, nil
}

func (w *Writer) Write(report models.AnalysisReport) error {
	w.total++
	switch report.Status {
	case models.StatusComplete:
		w.complete++
	case models.StatusInsufficientData:
		w.insufficientData++
	default:
		w.failed++
	}

	if w.format == "jsonl" {
		return w.encoder.Encode(report)
	}
	return nil
}

type batchSummary struct {
	Total            int `json:"total"`
	Complete         int `json:"complete"`
	InsufficientData int `json:"insufficient_data"`
	Failed           int `json:"failed"`
}

func (w *Writer) Close() error {
	if w.format != "summary" {
		return nil
	}

	summary := batchSummary{
		Total:            w.total,
		Complete:         w.complete,
		InsufficientData: w.insufficientData,
		Failed:           w.failed,
	}
	return w.encoder.Encode(summary)
}
