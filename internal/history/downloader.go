package history

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/wonny/marketdesk/internal/contracts"
	"github.com/wonny/marketdesk/internal/screen"
	"github.com/wonny/marketdesk/internal/sinks"
	"github.com/wonny/marketdesk/pkg/logger"
)

// lookbackDays is the default download window (one trading year plus
// slack for holidays)
const lookbackDays = 380

// Downloader publishes normalized per-ticker price CSVs locally and,
// when configured, to object storage
type Downloader struct {
	quotes   screen.QuoteProvider
	outDir   string
	uploader *sinks.Uploader // nil disables uploads
	logger   *logger.Logger
}

// NewDownloader creates a price-history downloader
func NewDownloader(quotes screen.QuoteProvider, outDir string, uploader *sinks.Uploader, log *logger.Logger) *Downloader {
	return &Downloader{
		quotes:   quotes,
		outDir:   outDir,
		uploader: uploader,
		logger:   log,
	}
}

// Run downloads history for every ticker. Per-ticker isolation: one
// failure logs and continues. Returns how many tickers were written.
func (d *Downloader) Run(ctx context.Context, tickers []string) (int, error) {
	if len(tickers) == 0 {
		return 0, fmt.Errorf("no tickers to download")
	}

	if err := os.MkdirAll(d.outDir, 0o755); err != nil {
		return 0, fmt.Errorf("create output dir %s: %w", d.outDir, err)
	}

	now := time.Now()
	start := now.AddDate(0, 0, -lookbackDays)
	written := 0

	for _, ticker := range tickers {
		if err := d.downloadTicker(ctx, ticker, start, now); err != nil {
			d.logger.WithError(err).WithField("ticker", ticker).Warn("History download skipped")
			continue
		}
		written++
	}

	if written == 0 {
		return 0, fmt.Errorf("no price history written for any ticker")
	}

	return written, nil
}

func (d *Downloader) downloadTicker(ctx context.Context, ticker string, start, end time.Time) error {
	bars, err := d.quotes.FetchHistory(ctx, ticker, start, end, "1d")
	if err != nil {
		return err
	}
	if len(bars) == 0 {
		return contracts.ErrProviderEmpty
	}

	path := filepath.Join(d.outDir, ticker+".csv")
	if err := writeBarsCSV(path, bars); err != nil {
		return err
	}

	d.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"bars":   len(bars),
		"path":   path,
	}).Info("Price history written")

	if d.uploader != nil {
		key := fmt.Sprintf("prices/%s_%s.csv", ticker, end.Format("2006-01-02"))
		if err := d.uploader.UploadFile(ctx, key, path); err != nil {
			// Upload failure keeps the local file; nothing else to do
			d.logger.WithError(err).WithField("ticker", ticker).Error("History upload failed")
		}
	}

	return nil
}

// writeBarsCSV writes the normalized schema: date,open,high,low,close,volume
func writeBarsCSV(path string, bars []contracts.Bar) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)

	if err := w.Write([]string{"date", "open", "high", "low", "close", "volume"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, bar := range bars {
		record := []string{
			bar.Date.Format("2006-01-02"),
			strconv.FormatFloat(bar.Open, 'f', -1, 64),
			strconv.FormatFloat(bar.High, 'f', -1, 64),
			strconv.FormatFloat(bar.Low, 'f', -1, 64),
			strconv.FormatFloat(bar.Close, 'f', -1, 64),
			strconv.FormatInt(bar.Volume, 10),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write bar: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
