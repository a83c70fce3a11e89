package importer

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/isavita/sugai/internal/models"
	"github.com/rs/zerolog"
)

// Member paths inside the export archive.
const (
	memberAlarms = "alarms_data_1.csv"
	memberCGM    = "cgm_data_1.csv"
	memberBolus  = "Insulin data/bolus_data_1.csv"
	memberBasal  = "Insulin data/basal_data_1.csv"
)

// MaxMemberSize caps a single decompressed CSV member.
const MaxMemberSize = 32 << 20 // 32 MiB

// ErrMemberTooLarge is returned when a member decompresses past the size cap.
var ErrMemberTooLarge = errors.New("decompressed member exceeds the size limit")

// cappedReader fails once more than limit bytes have been read, so an
// oversized member is rejected instead of silently truncated. The budget is
// limit+1: a member of exactly limit bytes still parses.
type cappedReader struct {
	r         io.Reader
	remaining int64
}

func newCappedReader(r io.Reader, limit int64) *cappedReader {
	return &cappedReader{r: r, remaining: limit + 1}
}

func (c *cappedReader) Read(p []byte) (int, error) {
	if c.remaining <= 0 {
		return 0, ErrMemberTooLarge
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining <= 0 {
		return n, ErrMemberTooLarge
	}
	return n, err
}

type Importer struct {
	logger        *zerolog.Logger
	maxMemberSize int64
}

func NewImporter(logger *zerolog.Logger) *Importer {
	return &Importer{logger: logger, maxMemberSize: MaxMemberSize}
}

// ImportZip reads an export archive from r and parses the four data series.
func (im *Importer) ImportZip(r io.ReaderAt, size int64) (*models.PumpData, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("not a valid zip archive: %w", err)
	}

	members := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		name := path.Clean(f.Name)
		if strings.HasPrefix(name, "..") || path.IsAbs(name) {
			return nil, fmt.Errorf("archive member %q escapes the archive root", f.Name)
		}
		members[name] = f
	}

	data := &models.PumpData{}

	type series struct {
		member string
		parse  func(io.Reader) (int, error)
	}

	parsers := []series{
		{memberCGM, func(r io.Reader) (int, error) {
			readings, skipped, err := ParseCGM(r)
			data.Readings = readings
			return skipped, err
		}},
		{memberBolus, func(r io.Reader) (int, error) {
			boluses, skipped, err := ParseBolus(r)
			data.Boluses = boluses
			return skipped, err
		}},
		{memberBasal, func(r io.Reader) (int, error) {
			basal, skipped, err := ParseBasal(r)
			data.Basal = basal
			return skipped, err
		}},
		{memberAlarms, func(r io.Reader) (int, error) {
			alarms, skipped, err := ParseAlarms(r)
			data.Alarms = alarms
			return skipped, err
		}},
	}

	for _, s := range parsers {
		f, ok := members[s.member]
		if !ok {
			return nil, fmt.Errorf("archive is missing member %q", s.member)
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open member %q: %w", s.member, err)
		}

		skipped, err := s.parse(newCappedReader(rc, im.maxMemberSize))
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", s.member, err)
		}

		if skipped > 0 {
			im.logger.Warn().
				Str("member", s.member).
				Int("skipped", skipped).
				Msg("Skipped unparseable rows")
		}
	}

	im.logger.Info().
		Int("readings", len(data.Readings)).
		Int("boluses", len(data.Boluses)).
		Int("basal", len(data.Basal)).
		Int("alarms", len(data.Alarms)).
		Msg("Export imported")

	return data, nil
}

// ImportFile opens an export archive on disk and imports it.
func (im *Importer) ImportFile(filePath string) (*models.PumpData, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open export %s: %w", filePath, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat export %s: %w", filePath, err)
	}

	return im.ImportZip(f, info.Size())
}
