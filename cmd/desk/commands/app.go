package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/marketdesk/internal/external/openai"
	"github.com/wonny/marketdesk/internal/external/yahoo"
	"github.com/wonny/marketdesk/internal/screen"
	"github.com/wonny/marketdesk/internal/sinks"
	"github.com/wonny/marketdesk/pkg/config"
	"github.com/wonny/marketdesk/pkg/httputil"
	"github.com/wonny/marketdesk/pkg/logger"
)

// app holds the wired application components shared by the commands
// ⭐ SSOT: 컴포넌트 조립은 여기서만
type app struct {
	cfg       *config.Config
	logger    *logger.Logger
	quotes    *yahoo.Client
	watchlist *screen.WatchlistSource
	pipeline  *screen.Pipeline
	uploader  *sinks.Uploader
	repo      *sinks.Repository
}

// newApp loads configuration and wires every pipeline component.
// LLM components are wired whenever OPENAI_API_KEY is configured.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	// Yahoo endpoints throttle aggressively; keep well under their limit
	quoteHTTP := httputil.New(log, 30*time.Second).WithRateLimit(2.0, 2)
	quotes := yahoo.NewClient(quoteHTTP, log)

	scorer, curator, err := buildScorer(cfg, log)
	if err != nil {
		return nil, err
	}

	watchlist := screen.NewWatchlistSource(curator, cfg.Screening.TickersFile, log)

	uploader, err := sinks.NewUploader(ctx, cfg.S3, log)
	if err != nil {
		return nil, err
	}

	repo, err := sinks.NewRepository(ctx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	var slackSink *sinks.SlackSink
	if cfg.Slack.Enabled() {
		slackHTTP := httputil.New(log, cfg.Slack.Timeout)
		slackSink = sinks.NewSlackSink(cfg.Slack.WebhookURL, slackHTTP, log)
	}

	// Order matters: local CSVs are written before S3 reads them back
	pipelineSinks := []screen.Sink{
		sinks.NewCSVSink(cfg.Screening.OutputFile, log),
		sinks.NewWatchlistSink(cfg.Screening.WatchlistFile, log),
	}
	if s3Sink := sinks.NewS3Sink(uploader, cfg.Screening.OutputFile, cfg.Screening.WatchlistFile); s3Sink != nil {
		pipelineSinks = append(pipelineSinks, s3Sink)
	}
	if slackSink != nil {
		pipelineSinks = append(pipelineSinks, slackSink)
	}
	if repo != nil {
		pipelineSinks = append(pipelineSinks, repo)
	}

	pipeline := screen.NewPipeline(
		quotes,
		quotes,
		scorer,
		watchlist,
		pipelineSinks,
		cfg.Screening.HeadlinesPerTicker,
		cfg.Screening.WatchlistSize,
		log,
	)

	return &app{
		cfg:       cfg,
		logger:    log,
		quotes:    quotes,
		watchlist: watchlist,
		pipeline:  pipeline,
		uploader:  uploader,
		repo:      repo,
	}, nil
}

// buildScorer selects the scoring backend. A configured OPENAI_API_KEY
// enables the LLM scorer and watchlist curation on its own; --use-llm is
// the explicit request and fails loudly when no key is set.
func buildScorer(cfg *config.Config, log *logger.Logger) (screen.Scorer, screen.Curator, error) {
	if !cfg.OpenAI.Enabled() {
		if useLLM {
			return nil, nil, fmt.Errorf("--use-llm requires OPENAI_API_KEY")
		}
		return screen.NewHeuristicScorer(), nil, nil
	}

	llm, err := openai.NewClient(cfg.OpenAI, log)
	if err != nil {
		return nil, nil, err
	}

	return screen.NewLLMScorer(llm), llm, nil
}

// close releases held resources
func (a *app) close() {
	if a.repo != nil {
		a.repo.Close()
	}
}
