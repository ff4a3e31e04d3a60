package screen

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/wonny/marketdesk/pkg/logger"
)

// Curator asks an LLM for a curated list of n tickers
type Curator interface {
	CurateWatchlist(ctx context.Context, n int) ([]string, error)
}

// defaultWatchlist is the built-in universe used when neither the LLM nor
// a tickers file can supply one
var defaultWatchlist = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA",
	"META", "TSLA", "AVGO", "AMD", "CRM",
}

// WatchlistSource resolves the ticker universe for a run.
// Sources are tried in order: LLM curation, local tickers file, built-in
// default list. LLM failures never propagate, they fall through.
type WatchlistSource struct {
	curator     Curator // nil when no LLM credential is configured
	tickersFile string
	logger      *logger.Logger
}

// NewWatchlistSource creates a watchlist source
func NewWatchlistSource(curator Curator, tickersFile string, log *logger.Logger) *WatchlistSource {
	return &WatchlistSource{
		curator:     curator,
		tickersFile: tickersFile,
		logger:      log,
	}
}

// Resolve yields the ticker list for this run
func (w *WatchlistSource) Resolve(ctx context.Context, n int) ([]string, error) {
	if w.curator != nil {
		tickers, err := w.curator.CurateWatchlist(ctx, n)
		if err != nil {
			w.logger.WithError(err).Warn("LLM watchlist curation failed, falling back to tickers file")
		} else if len(tickers) > 0 {
			w.logger.WithFields(map[string]interface{}{
				"source": "llm",
				"count":  len(tickers),
			}).Info("Watchlist resolved")
			return normalizeTickers(tickers), nil
		}
	}

	if tickers := w.readTickersFile(); len(tickers) > 0 {
		w.logger.WithFields(map[string]interface{}{
			"source": "file",
			"file":   w.tickersFile,
			"count":  len(tickers),
		}).Info("Watchlist resolved")
		return tickers, nil
	}

	if len(defaultWatchlist) == 0 {
		return nil, fmt.Errorf("no tickers resolvable from any source")
	}

	w.logger.WithFields(map[string]interface{}{
		"source": "default",
		"count":  len(defaultWatchlist),
	}).Info("Watchlist resolved")

	tickers := make([]string, len(defaultWatchlist))
	copy(tickers, defaultWatchlist)
	return tickers, nil
}

// readTickersFile parses the newline-delimited universe file.
// Blank lines and #-comments are skipped; symbols are uppercased.
func (w *WatchlistSource) readTickersFile() []string {
	if w.tickersFile == "" {
		return nil
	}

	data, err := os.ReadFile(w.tickersFile)
	if err != nil {
		w.logger.WithError(err).WithField("file", w.tickersFile).Debug("Tickers file not readable")
		return nil
	}

	return ParseTickerLines(string(data))
}

// ParseTickerLines parses ticker-per-line text, ignoring blanks and
// #-prefixed comment lines
func ParseTickerLines(text string) []string {
	var tickers []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tickers = append(tickers, strings.ToUpper(line))
	}
	return tickers
}

func normalizeTickers(tickers []string) []string {
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
