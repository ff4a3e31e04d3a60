package screen

import (
	"context"
	"time"

	"github.com/wonny/marketdesk/internal/contracts"
	"github.com/wonny/marketdesk/pkg/logger"
)

// historyDays is the calendar lookback fetched per ticker; generous
// enough for MA200 and the 252-close 52-week window
const historyDays = 400

// QuoteProvider fetches daily bars and the raw info record for a ticker.
// Empty results are not errors; errors mean the call itself failed.
type QuoteProvider interface {
	FetchHistory(ctx context.Context, ticker string, start, end time.Time, interval string) ([]contracts.Bar, error)
	FetchInfo(ctx context.Context, ticker string) (contracts.InfoRecord, error)
}

// HeadlineProvider fetches recent news for a ticker. Failures yield an
// empty list, never an error.
type HeadlineProvider interface {
	FetchHeadlines(ctx context.Context, ticker string, limit int) []contracts.Headline
}

// Sink is a terminal destination for the assembled rows
type Sink interface {
	Name() string
	Emit(ctx context.Context, rows []contracts.Row, date time.Time) error
}

// tickerState tracks one ticker through the per-run state machine:
// Queued → Fetching → Scoring → Assembled → Emitted, with Skipped
// terminal from Fetching or Scoring.
type tickerState string

const (
	stateQueued    tickerState = "queued"
	stateFetching  tickerState = "fetching"
	stateScoring   tickerState = "scoring"
	stateAssembled tickerState = "assembled"
	stateEmitted   tickerState = "emitted"
	stateSkipped   tickerState = "skipped"
)

// Result summarizes one screening run
type Result struct {
	Date     time.Time
	Screened int
	Skipped  int
	Rows     []contracts.Row
	Elapsed  time.Duration
}

// Pipeline drives the per-ticker screening loop and fans results out to
// the configured sinks. One run is single-shot; per-ticker failures are
// isolated and never abort the batch.
// ⭐ SSOT: 스크리닝 오케스트레이션은 여기서만
type Pipeline struct {
	quotes             QuoteProvider
	news               HeadlineProvider
	scorer             Scorer
	watchlist          *WatchlistSource
	sinks              []Sink
	headlinesPerTicker int
	watchlistSize      int
	logger             *logger.Logger

	// Injectable clock for deterministic tests
	now func() time.Time
}

// NewPipeline wires the screening pipeline. Sinks may be empty; nil
// sinks are ignored.
func NewPipeline(
	quotes QuoteProvider,
	news HeadlineProvider,
	scorer Scorer,
	watchlist *WatchlistSource,
	sinks []Sink,
	headlinesPerTicker int,
	watchlistSize int,
	log *logger.Logger,
) *Pipeline {
	live := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}

	return &Pipeline{
		quotes:             quotes,
		news:               news,
		scorer:             scorer,
		watchlist:          watchlist,
		sinks:              live,
		headlinesPerTicker: headlinesPerTicker,
		watchlistSize:      watchlistSize,
		logger:             log,
		now:                time.Now,
	}
}

// Run executes one screening batch. Returns contracts.ErrNoRows when no
// ticker survives; the caller maps that to a non-zero exit.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := p.now()
	date := start

	tickers, err := p.watchlist.Resolve(ctx, p.watchlistSize)
	if err != nil {
		return nil, err
	}

	p.logger.WithFields(map[string]interface{}{
		"tickers": len(tickers),
		"scorer":  p.scorer.Name(),
	}).Info("Screening run started")

	rows := make([]contracts.Row, 0, len(tickers))
	skipped := 0

	for _, ticker := range tickers {
		row, err := p.screenTicker(ctx, ticker, date)
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		p.logger.WithField("skipped", skipped).Error("No rows survived screening")
		return nil, contracts.ErrNoRows
	}

	SortRows(rows)

	for _, sink := range p.sinks {
		if err := sink.Emit(ctx, rows, date); err != nil {
			// Sink failures never fail the run; the CSV stays on disk
			p.logger.WithError(err).WithField("sink", sink.Name()).Error("Sink emit failed")
		}
	}

	p.logTransitions(rows, stateEmitted)

	result := &Result{
		Date:     date,
		Screened: len(tickers),
		Skipped:  skipped,
		Rows:     rows,
		Elapsed:  time.Since(start),
	}

	p.logger.WithFields(map[string]interface{}{
		"rows":    len(result.Rows),
		"skipped": result.Skipped,
		"elapsed": result.Elapsed,
	}).Info("Screening run completed")

	return result, nil
}

// screenTicker runs one ticker through fetch → extract → indicators →
// headlines → score → assemble. Any failure skips the ticker.
func (p *Pipeline) screenTicker(ctx context.Context, ticker string, date time.Time) (contracts.Row, error) {
	state := stateQueued
	log := p.logger.WithField("ticker", ticker)

	skip := func(err error) (contracts.Row, error) {
		log.WithError(err).WithFields(map[string]interface{}{
			"state": string(state),
			"to":    string(stateSkipped),
		}).Warn("Ticker skipped")
		return contracts.Row{}, err
	}

	state = stateFetching
	end := date
	startHist := end.AddDate(0, 0, -historyDays)

	bars, err := p.quotes.FetchHistory(ctx, ticker, startHist, end, "1d")
	if err != nil {
		return skip(err)
	}
	if len(bars) == 0 {
		return skip(contracts.ErrProviderEmpty)
	}

	info, err := p.quotes.FetchInfo(ctx, ticker)
	if err != nil {
		return skip(err)
	}

	closes := contracts.Closes(bars)
	price := contracts.Float(closes[len(closes)-1])

	indicators := ComputeIndicators(closes)
	fundamentals := ExtractFundamentals(ticker, info, price, bars, date)
	headlines := p.news.FetchHeadlines(ctx, ticker, p.headlinesPerTicker)

	state = stateScoring
	score, err := p.scorer.Score(ctx, ScoringInput{
		Fundamentals: fundamentals,
		Indicators:   indicators,
		Headlines:    headlines,
	})
	if err != nil {
		return skip(err)
	}

	state = stateAssembled
	row := BuildRow(score, fundamentals, indicators, headlines, date)

	log.WithFields(map[string]interface{}{
		"state":  string(state),
		"upside": score.UpsideScore,
	}).Debug("Ticker assembled")

	return row, nil
}

func (p *Pipeline) logTransitions(rows []contracts.Row, state tickerState) {
	for _, row := range rows {
		p.logger.WithFields(map[string]interface{}{
			"ticker": row.Score.Ticker,
			"state":  string(state),
		}).Debug("Ticker emitted")
	}
}
