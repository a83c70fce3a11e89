package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/isavita/sugai/internal/models"
	"github.com/rs/zerolog"
)

// InputRecord is one parsed line of the JSONL input. A malformed line is
// reported with its Error set so the caller can decide whether to abort.
type InputRecord struct {
	LineNumber int
	Job        models.AnalysisJob
	Error      error
}

type Reader struct {
	input  io.Reader
	logger *zerolog.Logger
}

func NewReader(input io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		input:  input,
		logger: logger,
	}
}

// ReadAll streams the JSONL input line by line. Blank lines are skipped;
// the channel closes when the input is exhausted or the context is cancelled.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.input)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}

			var job models.AnalysisJob
			if err := json.Unmarshal([]byte(line), &job); err != nil {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
			} else if job.ExportPath == "" {
				record.Error = fmt.Errorf("line %d: missing export_path", lineNumber)
			} else {
				record.Job = job
			}

			select {
			case out <- record:
			case <-ctx.Done():
				r.logger.Warn().Int("line", lineNumber).Msg("Reader cancelled")
				return
			}
		}

		if err := scanner.Err(); err != nil {
			select {
			case out <- InputRecord{LineNumber: lineNumber + 1, Error: err}:
			case <-ctx.Done():
			}
		}
	}()

	return out
}
