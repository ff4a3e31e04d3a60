package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/wonny/marketdesk/internal/contracts"
	"github.com/wonny/marketdesk/pkg/config"
	"github.com/wonny/marketdesk/pkg/logger"
)

// Low temperature keeps scoring stable across runs
const scoringTemperature = 0.1

// Client wraps the official OpenAI SDK for the two calls this system
// makes: watchlist curation and per-ticker scoring.
// ⭐ SSOT: OpenAI API 호출은 이 클라이언트에서만
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
	logger  *logger.Logger
}

// NewClient creates an OpenAI client from config. Returns an error when
// no API key is configured; callers decide whether that is fatal.
func NewClient(cfg config.OpenAIConfig, log *logger.Logger) (*Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("OPENAI_API_KEY is not configured")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		client:  openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		timeout: timeout,
		logger:  log,
	}, nil
}

// CurateWatchlist asks the model for n liquid US tickers as a strict
// JSON array of uppercase symbols. Anything that does not parse as a
// JSON array of strings is an error; the caller falls back.
func (c *Client) CurateWatchlist(ctx context.Context, n int) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Curate a watchlist of %d liquid, large-cap US equities worth screening today. "+
			"Respond with ONLY a JSON array of %d uppercase ticker symbols, nothing else. "+
			`Example: ["AAPL","MSFT"]`, n, n)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are an equity screening assistant. You only output machine-readable JSON."),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(scoringTemperature),
	})
	if err != nil {
		return nil, fmt.Errorf("watchlist curation call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("watchlist curation: %w", contracts.ErrProviderEmpty)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	var tickers []string
	if err := json.Unmarshal([]byte(content), &tickers); err != nil {
		return nil, fmt.Errorf("watchlist curation: response is not a JSON array of strings: %w", err)
	}

	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"requested": n,
		"returned":  len(out),
	}).Debug("LLM watchlist curated")

	return out, nil
}

// ScorePayload is the minimal projection sent to the model for scoring
type ScorePayload struct {
	Ticker       string               `json:"ticker"`
	Fundamentals ScoreFundamentals    `json:"fundamentals"`
	Indicators   contracts.Indicators `json:"indicators"`
	Headlines    []string             `json:"headlines"`
}

// ScoreFundamentals is the fundamentals subset the model sees
type ScoreFundamentals struct {
	Sector            *string  `json:"sector"`
	Industry          *string  `json:"industry"`
	MarketCapBillions *float64 `json:"market_cap_billions"`
	CurrentPrice      *float64 `json:"current_price"`
	PE                *float64 `json:"pe"`
	ForwardPE         *float64 `json:"forward_pe"`
	RevenueGrowth     *float64 `json:"revenue_growth"`
	EarningsGrowth    *float64 `json:"earnings_growth"`
	ProfitMargin      *float64 `json:"profit_margin"`
	MonthPctDown      *float64 `json:"month_pct_down"`
	UpsideToTargetPct *float64 `json:"upside_to_target_pct"`
}

// ScoreStock scores one ticker using a schema-constrained completion.
// The response must validate against the score schema; any violation is
// reported as contracts.ErrSchemaViolation so the pipeline skips the
// ticker instead of guessing.
func (c *Client) ScoreStock(ctx context.Context, payload ScorePayload) (contracts.ScoreCard, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return contracts.ScoreCard{}, fmt.Errorf("marshal score payload: %w", err)
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(scoringSystemPrompt),
			openai.UserMessage(string(body)),
		},
		Temperature: openai.Float(scoringTemperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "stock_score",
					Description: openai.String("Multi-criterion screening score for one equity"),
					Strict:      openai.Bool(true),
					Schema:      scoreSchema,
				},
			},
		},
	})
	if err != nil {
		return contracts.ScoreCard{}, fmt.Errorf("scoring call for %s failed: %w", payload.Ticker, err)
	}

	if len(resp.Choices) == 0 {
		return contracts.ScoreCard{}, fmt.Errorf("scoring %s: %w", payload.Ticker, contracts.ErrProviderEmpty)
	}

	card, err := ParseScoreCard(resp.Choices[0].Message.Content)
	if err != nil {
		return contracts.ScoreCard{}, fmt.Errorf("scoring %s: %w", payload.Ticker, err)
	}

	card.Ticker = payload.Ticker
	if card.Sector == "" && payload.Fundamentals.Sector != nil {
		card.Sector = *payload.Fundamentals.Sector
	}

	return card, nil
}

// ParseScoreCard parses and validates a schema-constrained response body.
// Free-text fields are truncated to their caps after parsing.
func ParseScoreCard(content string) (contracts.ScoreCard, error) {
	var card contracts.ScoreCard
	if err := json.Unmarshal([]byte(content), &card); err != nil {
		return contracts.ScoreCard{}, fmt.Errorf("%w: %v", contracts.ErrSchemaViolation, err)
	}

	card.KeyBullThesis = contracts.Truncate(card.KeyBullThesis, contracts.MaxBullThesisLen)
	card.KeyRisk = contracts.Truncate(card.KeyRisk, contracts.MaxKeyRiskLen)
	card.TechnicalSetup = contracts.Truncate(card.TechnicalSetup, contracts.MaxTechnicalSetupLen)

	if !card.Valid() {
		return contracts.ScoreCard{}, fmt.Errorf("%w: score out of range or invalid enum", contracts.ErrSchemaViolation)
	}

	return card, nil
}

const scoringSystemPrompt = `You are a sell-side equity analyst scoring stocks for a daily screening desk.
Score the supplied ticker on value, growth, technicals and upside (1-10 integers each),
classify earnings beat probability and your confidence, and write a terse bull thesis,
key risk and technical setup. Base everything strictly on the supplied data.`
