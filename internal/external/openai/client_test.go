package openai

import (
	"errors"
	"strings"
	"testing"

	"github.com/wonny/marketdesk/internal/contracts"
	"github.com/wonny/marketdesk/pkg/config"
)

const validScoreJSON = `{
  "ticker": "AAPL",
  "sector": "Technology",
  "value_score": 6,
  "growth_score": 7,
  "technical_score": 8,
  "upside_score": 7,
  "earnings_beat_probability": "High",
  "confidence_level": "Medium",
  "key_bull_thesis": "Services mix keeps margins expanding",
  "key_risk": "China demand softness",
  "technical_setup": "Uptrend above the 50-day"
}`

func TestParseScoreCard_Valid(t *testing.T) {
	card, err := ParseScoreCard(validScoreJSON)
	if err != nil {
		t.Fatalf("ParseScoreCard() error = %v", err)
	}

	if card.Ticker != "AAPL" || card.ValueScore != 6 || card.UpsideScore != 7 {
		t.Errorf("card = %+v", card)
	}
	if card.EarningsBeatProbability != contracts.LevelHigh {
		t.Errorf("EarningsBeatProbability = %q", card.EarningsBeatProbability)
	}
}

func TestParseScoreCard_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "the stock looks great"},
		{"json but wrong shape", `["AAPL"]`},
		{"score out of range", strings.Replace(validScoreJSON, `"value_score": 6`, `"value_score": 14`, 1)},
		{"zero score", strings.Replace(validScoreJSON, `"value_score": 6`, `"value_score": 0`, 1)},
		{"bad enum", strings.Replace(validScoreJSON, `"High"`, `"Certain"`, 1)},
		{"lowercase enum", strings.Replace(validScoreJSON, `"High"`, `"high"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScoreCard(tt.content)
			if !errors.Is(err, contracts.ErrSchemaViolation) {
				t.Errorf("ParseScoreCard() error = %v, want ErrSchemaViolation", err)
			}
		})
	}
}

func TestParseScoreCard_TruncatesNarratives(t *testing.T) {
	long := strings.Replace(validScoreJSON,
		"Services mix keeps margins expanding",
		strings.Repeat("x", contracts.MaxBullThesisLen+100), 1)

	card, err := ParseScoreCard(long)
	if err != nil {
		t.Fatalf("ParseScoreCard() error = %v", err)
	}
	if len(card.KeyBullThesis) != contracts.MaxBullThesisLen {
		t.Errorf("KeyBullThesis length = %d, want %d", len(card.KeyBullThesis), contracts.MaxBullThesisLen)
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(config.OpenAIConfig{}, nil)
	if err == nil {
		t.Fatal("NewClient without API key should fail")
	}
}

func TestScoreSchema_CoversEveryCardField(t *testing.T) {
	required, ok := scoreSchema["required"].([]string)
	if !ok {
		t.Fatal("schema required list missing")
	}

	props, ok := scoreSchema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("schema properties missing")
	}

	if len(required) != len(props) {
		t.Errorf("strict mode requires every property: %d required vs %d properties",
			len(required), len(props))
	}
	for _, field := range required {
		if _, ok := props[field]; !ok {
			t.Errorf("required field %q has no property definition", field)
		}
	}

	if scoreSchema["additionalProperties"] != false {
		t.Error("schema must forbid additional properties")
	}
}
