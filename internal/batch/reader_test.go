package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/isavita/sugai/internal/models"
	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func TestReader_InvalidFile(t *testing.T) {
	file := strings.NewReader("invalid file content")

	reader := NewReader(file, newTestLogger())
	ctx := context.Background()
	ch := reader.ReadAll(ctx)

	for record := range ch {
		if record.Error == nil {
			t.Errorf("expected parse error for invalid JSON, but got none")
		}
	}
}

func TestReader_ValidFile(t *testing.T) {
	inputFile := `{"request_id":"1","export_path":"/data/export-1.zip"}
{"request_id":"2","export_path":"/data/export-2.zip"}`

	file := strings.NewReader(inputFile)

	ctx := context.Background()
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(ctx)
	count := 0
	for record := range ch {
		count += 1
		if record.Error != nil {
			t.Errorf("Error reading the analysis job record. Got: %s", record.Error)
		}
	}
	if count != 2 {
		t.Errorf("Expected 2 analysis job messages. Got: %d", count)
	}
}

func TestReader_MissingExportPath(t *testing.T) {
	file := strings.NewReader(`{"request_id":"1"}`)

	reader := NewReader(file, newTestLogger())
	ch := reader.ReadAll(context.Background())

	for record := range ch {
		if record.Error == nil {
			t.Error("expected error for job without export_path")
		}
	}
}

func TestReader_ContextCancellation(t *testing.T) {
	// Large input with many lines
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, `{"request_id":"1","export_path":"/data/export.zip"}`)
	}
	file := strings.NewReader(strings.Join(lines, "\n"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(ctx)
	count := 0
	for range ch {
		count++
		if count == 5 {
			cancel() // Cancel after 5 records
			break
		}
	}

	// Should have stopped early
	if count >= 100 {
		t.Errorf("expected early cancellation, but read all records")
	}
}

func TestReader_LineNumbers(t *testing.T) {
	inputFile := `{"request_id":"1","export_path":"/data/export-1.zip"}

{"invalid json}
{"request_id":"2","export_path":"/data/export-2.zip"}`

	file := strings.NewReader(inputFile)
	reader := NewReader(file, newTestLogger())

	ch := reader.ReadAll(context.Background())
	records := []InputRecord{}
	for record := range ch {
		records = append(records, record)
	}

	// Check line numbers
	if records[0].LineNumber != 1 {
		t.Errorf("first record should be line 1, got %d", records[0].LineNumber)
	}
	if records[1].LineNumber != 3 {
		t.Errorf("error record should be line 3, got %d", records[1].LineNumber)
	}
	if records[2].LineNumber != 4 {
		t.Errorf("third record should be line 4, got %d", records[2].LineNumber)
	}
}

func TestWriter_JSONL(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, "jsonl", newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	reports := []models.AnalysisReport{
		{ID: "a", Status: models.StatusComplete},
		{ID: "b", Status: models.StatusFailed},
	}
	for _, report := range reports {
		if err := writer.Write(report); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 output lines, got %d", len(lines))
	}

	var first models.AnalysisReport
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("Failed to parse output line: %v", err)
	}
	if first.ID != "a" {
		t.Errorf("Expected first report 'a', got '%s'", first.ID)
	}
}

func TestWriter_Summary(t *testing.T) {
	var buf bytes.Buffer
	writer, err := NewWriter(&buf, "summary", newTestLogger())
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	statuses := []models.Status{
		models.StatusComplete,
		models.StatusComplete,
		models.StatusInsufficientData,
		models.StatusFailed,
	}
	for i, status := range statuses {
		if err := writer.Write(models.AnalysisReport{ID: string(rune('a' + i)), Status: status}); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	var summary struct {
		Total            int `json:"total"`
		Complete         int `json:"complete"`
		InsufficientData int `json:"insufficient_data"`
		Failed           int `json:"failed"`
	}
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("Failed to parse summary: %v", err)
	}

	if summary.Total != 4 || summary.Complete != 2 || summary.InsufficientData != 1 || summary.Failed != 1 {
		t.Errorf("Unexpected summary: %+v", summary)
	}
}

func TestWriter_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if _, err := NewWriter(&buf, "xml", newTestLogger()); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
