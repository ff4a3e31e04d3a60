package contracts

import "unicode/utf8"

// Score bounds and narrative caps shared by both scorer backends
const (
	ScoreMin = 1
	ScoreMax = 10

	MaxBullThesisLen     = 280
	MaxKeyRiskLen        = 220
	MaxTechnicalSetupLen = 220
)

// Categorical levels for beat probability and confidence (case-sensitive)
const (
	LevelHigh   = "High"
	LevelMedium = "Medium"
	LevelLow    = "Low"
)

// ValidLevel reports whether s is one of the enumerated levels
func ValidLevel(s string) bool {
	return s == LevelHigh || s == LevelMedium || s == LevelLow
}

// ScoreCard is the scorer output for one ticker.
// Both the LLM and the heuristic backend produce this exact shape.
type ScoreCard struct {
	Ticker string `json:"ticker"`
	Sector string `json:"sector"`

	ValueScore     int `json:"value_score"`     // 1..10
	GrowthScore    int `json:"growth_score"`    // 1..10
	TechnicalScore int `json:"technical_score"` // 1..10
	UpsideScore    int `json:"upside_score"`    // 1..10

	EarningsBeatProbability string `json:"earnings_beat_probability"` // High|Medium|Low
	ConfidenceLevel         string `json:"confidence_level"`          // High|Medium|Low

	KeyBullThesis  string `json:"key_bull_thesis"` // <= 280 chars
	KeyRisk        string `json:"key_risk"`        // <= 220 chars
	TechnicalSetup string `json:"technical_setup"` // <= 220 chars
}

// ClampScore clamps v into [ScoreMin, ScoreMax]
func ClampScore(v int) int {
	if v < ScoreMin {
		return ScoreMin
	}
	if v > ScoreMax {
		return ScoreMax
	}
	return v
}

// Truncate cuts s to at most max characters, rune-aware so multibyte
// text never splits into invalid UTF-8 at the cap
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

// Normalize clamps scores and truncates narratives in place
func (s *ScoreCard) Normalize() {
	s.ValueScore = ClampScore(s.ValueScore)
	s.GrowthScore = ClampScore(s.GrowthScore)
	s.TechnicalScore = ClampScore(s.TechnicalScore)
	s.UpsideScore = ClampScore(s.UpsideScore)

	s.KeyBullThesis = Truncate(s.KeyBullThesis, MaxBullThesisLen)
	s.KeyRisk = Truncate(s.KeyRisk, MaxKeyRiskLen)
	s.TechnicalSetup = Truncate(s.TechnicalSetup, MaxTechnicalSetupLen)
}

// Valid reports whether every score is in range and every categorical
// field belongs to its enumerated set
func (s ScoreCard) Valid() bool {
	inRange := func(v int) bool { return v >= ScoreMin && v <= ScoreMax }

	return inRange(s.ValueScore) &&
		inRange(s.GrowthScore) &&
		inRange(s.TechnicalScore) &&
		inRange(s.UpsideScore) &&
		ValidLevel(s.EarningsBeatProbability) &&
		ValidLevel(s.ConfidenceLevel)
}
