package sinks

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wonny/marketdesk/internal/contracts"
	"github.com/wonny/marketdesk/pkg/logger"
)

// watchlistColumns is the exact column set of the derived watchlist CSV
var watchlistColumns = []string{"Ticker", "Price", "1D", "5D", "1M", "6M"}

// WatchlistSink derives a compact watchlist CSV (ticker, price and a few
// return windows) from the report rows
type WatchlistSink struct {
	path   string
	logger *logger.Logger
}

// NewWatchlistSink creates the watchlist CSV sink
func NewWatchlistSink(path string, log *logger.Logger) *WatchlistSink {
	return &WatchlistSink{path: path, logger: log}
}

// Name identifies the sink in logs
func (s *WatchlistSink) Name() string { return "watchlist_csv" }

// Path returns the output file path
func (s *WatchlistSink) Path() string { return s.path }

// Emit writes the derived watchlist CSV
func (s *WatchlistSink) Emit(_ context.Context, rows []contracts.Row, _ time.Time) error {
	if err := WriteWatchlistCSV(s.path, rows); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"path": s.path,
		"rows": len(rows),
	}).Info("Watchlist CSV written")

	return nil
}

// WriteWatchlistCSV writes the Ticker/Price/1D/5D/1M/6M projection;
// missing windows render as N/A
func WriteWatchlistCSV(path string, rows []contracts.Row) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create watchlist csv %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write(watchlistColumns); err != nil {
		return fmt.Errorf("write watchlist header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Score.Ticker,
			naFloat(row.CurrentPrice),
			naFloat(row.Indicators.Ret1DPct),
			naFloat(row.Indicators.Ret5DPct),
			naFloat(row.Indicators.Ret21DPct),
			naFloat(row.Indicators.Ret126DPct),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write watchlist row for %s: %w", row.Score.Ticker, err)
		}
	}

	w.Flush()
	return w.Error()
}

func naFloat(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
