package screen

import (
	"context"

	"github.com/wonny/marketdesk/internal/contracts"
	openaiclient "github.com/wonny/marketdesk/internal/external/openai"
)

// topHeadlinesForLLM caps the headlines included in the scoring payload
const topHeadlinesForLLM = 3

// StockScorer is the LLM call the scorer depends on
type StockScorer interface {
	ScoreStock(ctx context.Context, payload openaiclient.ScorePayload) (contracts.ScoreCard, error)
}

// LLMScorer scores tickers through a schema-constrained chat completion.
// Validation failures surface as contracts.ErrSchemaViolation and the
// pipeline skips the ticker.
type LLMScorer struct {
	client StockScorer
}

// NewLLMScorer creates an LLM-backed scorer
func NewLLMScorer(client StockScorer) *LLMScorer {
	return &LLMScorer{client: client}
}

// Name returns the backend name
func (s *LLMScorer) Name() string { return "llm" }

// Score sends the minimal projection and validates the response
func (s *LLMScorer) Score(ctx context.Context, input ScoringInput) (contracts.ScoreCard, error) {
	f := input.Fundamentals

	headlines := make([]string, 0, topHeadlinesForLLM)
	for i, h := range input.Headlines {
		if i == topHeadlinesForLLM {
			break
		}
		headlines = append(headlines, h.Title)
	}

	payload := openaiclient.ScorePayload{
		Ticker: f.Ticker,
		Fundamentals: openaiclient.ScoreFundamentals{
			Sector:            f.Sector,
			Industry:          f.Industry,
			MarketCapBillions: f.MarketCapBillions,
			CurrentPrice:      f.CurrentPrice,
			PE:                f.PE,
			ForwardPE:         f.ForwardPE,
			RevenueGrowth:     f.RevenueGrowth,
			EarningsGrowth:    f.EarningsGrowth,
			ProfitMargin:      f.ProfitMargin,
			MonthPctDown:      f.MonthPctDown,
			UpsideToTargetPct: f.UpsideToTargetPct,
		},
		Indicators: input.Indicators,
		Headlines:  headlines,
	}

	return s.client.ScoreStock(ctx, payload)
}
