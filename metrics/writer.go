package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

// MoveRecord is one row of a search-metrics CSV: the metrics a single
// ChooseMove call reported, plus the move it returned (rendered with
// fmt.Sprint so Writer stays free of the Move type parameter).
type MoveRecord struct {
	Step int
	Move string
	SearchMetric
}

// Writer persists MoveRecords to a CSV file under a timestamped directory.
type Writer struct {
	baseDir string
}

// NewWriter creates baseDir/<UTC timestamp>/ and returns a Writer rooted
// there.
func NewWriter(baseDir string) (*Writer, error) {
	dir := filepath.Join(baseDir, time.Now().UTC().Format(time.RFC3339))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("metrics: create directory: %w", err)
	}
	return &Writer{baseDir: dir}, nil
}

// WriteMoveRecords writes one CSV file, "moves.csv", with one row per
// record.
func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	path := filepath.Join(w.baseDir, "moves.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metrics: create moves file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	header := []string{"step", "move", "execution_policy", "workers", "iterations", "duration"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("metrics: write moves header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Step),
			r.Move,
			r.ExecutionPolicy,
			strconv.Itoa(r.Workers),
			strconv.Itoa(r.Iterations),
			r.Duration.String(),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("metrics: write move row: %w", err)
		}
	}
	return nil
}

// NewConsoleWriter returns a zerolog logger for CLI-style consumers of this
// module, writing human-readable (and, on a terminal, coloured) lines to
// stdout rather than the JSON a library embedded in a service would want.
func NewConsoleWriter() zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: colorable.NewColorableStdout()}
	return zerolog.New(out).With().Timestamp().Logger()
}
