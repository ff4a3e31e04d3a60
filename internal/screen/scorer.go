package screen

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/wonny/marketdesk/internal/contracts"
)

// ScoringInput is everything a scorer sees for one ticker
type ScoringInput struct {
	Fundamentals contracts.Fundamentals
	Indicators   contracts.Indicators
	Headlines    []contracts.Headline
}

// Scorer produces a score card for one ticker. The LLM and heuristic
// backends are interchangeable behind this interface.
type Scorer interface {
	Name() string
	Score(ctx context.Context, input ScoringInput) (contracts.ScoreCard, error)
}

// HeuristicScorer maps fundamentals + indicators + the first headline to
// scores deterministically. Used whenever no LLM credential is configured.
type HeuristicScorer struct{}

// NewHeuristicScorer creates a heuristic scorer
func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

// Name returns the backend name
func (s *HeuristicScorer) Name() string { return "heuristic" }

// Score computes the deterministic score card. Never fails.
func (s *HeuristicScorer) Score(_ context.Context, input ScoringInput) (contracts.ScoreCard, error) {
	f := input.Fundamentals
	ind := input.Indicators
	trend := ind.TrendLabel(f.CurrentPrice)

	card := contracts.ScoreCard{
		Ticker:                  f.Ticker,
		Sector:                  strOrEmpty(f.Sector),
		ValueScore:              valueScore(f.PE),
		GrowthScore:             growthScore(f.RevenueGrowth, f.EarningsGrowth),
		TechnicalScore:          technicalScore(trend, ind.RSI14, f.CurrentPrice != nil && ind.HasMovingAverages()),
		UpsideScore:             upsideScore(f.UpsideToTargetPct),
		EarningsBeatProbability: beatProbability(f.ProfitMargin, f.RevenueGrowth),
		ConfidenceLevel:         confidenceLevel(f, ind),
	}

	card.KeyBullThesis = bullThesis(f, ind, trend, input.Headlines)
	card.KeyRisk = keyRisk(f.PE, trend)
	card.TechnicalSetup = technicalSetup(ind, trend)

	card.Normalize()
	return card, nil
}

// valueScore scores the trailing PE on a log curve anchored at
// 8 @ PE 10, 5 @ PE 25 and 2 @ PE 60. Default 5 when PE is absent or
// non-positive.
func valueScore(pe *float64) int {
	if pe == nil || *pe <= 0 {
		return 5
	}
	return contracts.ClampScore(int(math.Round(15.5 - 3.25*math.Log(*pe))))
}

// growthScore scales revenue growth (or earnings growth as backup) onto
// the score range. The neutral default acts as the floor: weak growth
// scores 5, never below.
func growthScore(revenueGrowth, earningsGrowth *float64) int {
	var raw float64
	switch {
	case revenueGrowth != nil:
		raw = *revenueGrowth * 20
	case earningsGrowth != nil:
		raw = *earningsGrowth * 18
	default:
		return 5
	}

	score := int(math.Round(raw))
	if score < 5 {
		return 5
	}
	if score > contracts.ScoreMax {
		return contracts.ScoreMax
	}
	return score
}

// technicalScore starts neutral and nudges on trend and RSI. The Weak
// penalty applies only when the averages actually classified the trend;
// an indeterminate series stays neutral.
func technicalScore(trend string, rsi *float64, trendKnown bool) int {
	score := 5

	switch trend {
	case contracts.TrendUptrend:
		score += 2
	case contracts.TrendMomentum:
		score++
	case contracts.TrendWeak:
		if trendKnown {
			score--
		}
	}

	if rsi != nil {
		if *rsi < 35 {
			score++
		} else if *rsi > 72 {
			score--
		}
	}

	return contracts.ClampScore(score)
}

// upsideScore maps analyst upside (percent) to the score range,
// roughly one point per 5% of upside
func upsideScore(upsidePct *float64) int {
	if upsidePct == nil {
		return 5
	}
	return contracts.ClampScore(int(math.Round(*upsidePct / 5)))
}

// beatProbability classifies earnings-beat likelihood from margins and
// revenue growth
func beatProbability(profitMargin, revenueGrowth *float64) string {
	if profitMargin != nil && revenueGrowth != nil {
		if *profitMargin > 0.15 && *revenueGrowth > 0.15 {
			return contracts.LevelHigh
		}
		if *profitMargin < 0.05 && *revenueGrowth < 0.05 {
			return contracts.LevelLow
		}
	}
	return contracts.LevelMedium
}

// confidenceLevel counts how many key inputs were actually numeric
func confidenceLevel(f contracts.Fundamentals, ind contracts.Indicators) string {
	present := 0
	for _, v := range []*float64{f.PE, f.RevenueGrowth, f.UpsideToTargetPct, ind.RSI14} {
		if v != nil {
			present++
		}
	}

	switch {
	case present >= 3:
		return contracts.LevelHigh
	case present == 2:
		return contracts.LevelMedium
	default:
		return contracts.LevelLow
	}
}

func bullThesis(f contracts.Fundamentals, ind contracts.Indicators, trend string, headlines []contracts.Headline) string {
	var parts []string

	switch trend {
	case contracts.TrendUptrend:
		parts = append(parts, "Price in a confirmed uptrend above all key moving averages")
	case contracts.TrendMomentum:
		parts = append(parts, "Momentum building above the 50-day average")
	case contracts.TrendBase:
		parts = append(parts, "Basing above long-term support")
	default:
		parts = append(parts, "Contrarian setup while price repairs")
	}

	if f.UpsideToTargetPct != nil && *f.UpsideToTargetPct > 0 {
		parts = append(parts, fmt.Sprintf("~%.0f%% upside to the mean analyst target", *f.UpsideToTargetPct))
	}
	if ind.RSI14 != nil && *ind.RSI14 < 35 {
		parts = append(parts, fmt.Sprintf("RSI %.0f leaves room to rebound", *ind.RSI14))
	}
	if len(headlines) > 0 {
		parts = append(parts, "latest: "+headlines[0].Title)
	}

	return strings.Join(parts, "; ")
}

func keyRisk(pe *float64, trend string) string {
	switch {
	case pe != nil && *pe > 40:
		return fmt.Sprintf("Valuation risk: PE %.0f leaves little room for execution misses.", *pe)
	case trend == contracts.TrendWeak:
		return "Weak price action below key moving averages; trend has not confirmed."
	default:
		return "Macro and sector rotation could pressure near-term results."
	}
}

func technicalSetup(ind contracts.Indicators, trend string) string {
	setup := trend + " setup"

	if ind.RSI14 != nil {
		switch {
		case *ind.RSI14 < 35:
			setup += fmt.Sprintf(", RSI %.0f oversold", *ind.RSI14)
		case *ind.RSI14 > 72:
			setup += fmt.Sprintf(", RSI %.0f stretched", *ind.RSI14)
		default:
			setup += fmt.Sprintf(", RSI %.0f neutral", *ind.RSI14)
		}
	}

	if ind.DistanceFrom52WHighPct != nil {
		setup += fmt.Sprintf("; %.1f%% below the 52-week high", *ind.DistanceFrom52WHighPct)
	}

	return setup
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
