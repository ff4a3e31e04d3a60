package sinks

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wonny/marketdesk/internal/contracts"
	"github.com/wonny/marketdesk/pkg/logger"
)

// CSVSink writes the sorted report rows to a local RFC-4180 CSV.
// Write-once per run; nil fields render as empty strings and the column
// order is identical for every row.
type CSVSink struct {
	path   string
	logger *logger.Logger
}

// NewCSVSink creates a CSV sink writing to path
func NewCSVSink(path string, log *logger.Logger) *CSVSink {
	return &CSVSink{path: path, logger: log}
}

// Name identifies the sink in logs
func (s *CSVSink) Name() string { return "csv" }

// Path returns the output file path
func (s *CSVSink) Path() string { return s.path }

// Emit writes all rows. The file handle is scoped to this call.
func (s *CSVSink) Emit(_ context.Context, rows []contracts.Row, _ time.Time) error {
	if err := WriteRowsCSV(s.path, rows); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"path": s.path,
		"rows": len(rows),
	}).Info("Results CSV written")

	return nil
}

// WriteRowsCSV writes report rows with the shared column header
func WriteRowsCSV(path string, rows []contracts.Row) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write(contracts.RowColumns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range rows {
		if err := w.Write(row.Record()); err != nil {
			return fmt.Errorf("write csv row for %s: %w", row.Score.Ticker, err)
		}
	}

	w.Flush()
	return w.Error()
}
