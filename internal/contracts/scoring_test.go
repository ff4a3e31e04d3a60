package contracts

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {5, 5}, {10, 10}, {11, 10}, {40, 10},
	}

	for _, tt := range tests {
		if got := ClampScore(tt.in); got != tt.want {
			t.Errorf("ClampScore(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{LevelHigh, LevelMedium, LevelLow} {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false", level)
		}
	}
	for _, bad := range []string{"", "high", "HIGH", "Maybe"} {
		if ValidLevel(bad) {
			t.Errorf("ValidLevel(%q) = true, want false", bad)
		}
	}
}

func TestScoreCard_Normalize(t *testing.T) {
	card := ScoreCard{
		ValueScore:     0,
		GrowthScore:    15,
		TechnicalScore: 7,
		UpsideScore:    -2,
		KeyBullThesis:  strings.Repeat("a", MaxBullThesisLen+50),
		KeyRisk:        strings.Repeat("b", 10),
		TechnicalSetup: strings.Repeat("c", MaxTechnicalSetupLen+1),
	}

	card.Normalize()

	if card.ValueScore != 1 || card.GrowthScore != 10 || card.UpsideScore != 1 {
		t.Errorf("scores not clamped: V=%d G=%d U=%d", card.ValueScore, card.GrowthScore, card.UpsideScore)
	}
	if card.TechnicalScore != 7 {
		t.Errorf("in-range score changed: %d", card.TechnicalScore)
	}
	if len(card.KeyBullThesis) != MaxBullThesisLen {
		t.Errorf("KeyBullThesis length = %d, want %d", len(card.KeyBullThesis), MaxBullThesisLen)
	}
	if len(card.KeyRisk) != 10 {
		t.Errorf("short KeyRisk should be untouched, length = %d", len(card.KeyRisk))
	}
	if len(card.TechnicalSetup) != MaxTechnicalSetupLen {
		t.Errorf("TechnicalSetup length = %d, want %d", len(card.TechnicalSetup), MaxTechnicalSetupLen)
	}
}

func TestTruncate_Multibyte(t *testing.T) {
	s := strings.Repeat("한", MaxKeyRiskLen+30)

	got := Truncate(s, MaxKeyRiskLen)

	if !utf8.ValidString(got) {
		t.Fatal("truncation produced invalid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != MaxKeyRiskLen {
		t.Errorf("rune count = %d, want %d", n, MaxKeyRiskLen)
	}

	short := "실적 서프라이즈"
	if got := Truncate(short, MaxKeyRiskLen); got != short {
		t.Errorf("short multibyte string changed: %q", got)
	}
}

func TestScoreCard_Valid(t *testing.T) {
	good := ScoreCard{
		ValueScore:              5,
		GrowthScore:             5,
		TechnicalScore:          5,
		UpsideScore:             5,
		EarningsBeatProbability: LevelMedium,
		ConfidenceLevel:         LevelLow,
	}
	if !good.Valid() {
		t.Error("well-formed card reported invalid")
	}

	outOfRange := good
	outOfRange.UpsideScore = 11
	if outOfRange.Valid() {
		t.Error("out-of-range score reported valid")
	}

	badLevel := good
	badLevel.ConfidenceLevel = "certain"
	if badLevel.Valid() {
		t.Error("bad categorical level reported valid")
	}

	empty := ScoreCard{}
	if empty.Valid() {
		t.Error("zero card reported valid")
	}
}
