package sinks

import (
	"strings"
	"testing"
	"time"

	"github.com/wonny/marketdesk/internal/contracts"
)

func sampleRows() []contracts.Row {
	return []contracts.Row{
		{
			Score: contracts.ScoreCard{
				Ticker:                  "AAPL",
				ValueScore:              7,
				GrowthScore:             6,
				TechnicalScore:          8,
				UpsideScore:             9,
				EarningsBeatProbability: contracts.LevelHigh,
				ConfidenceLevel:         contracts.LevelMedium,
				KeyBullThesis:           "Services growth compounding",
				KeyRisk:                 "Hardware cycle softness",
				TechnicalSetup:          "Uptrend setup, RSI 55 neutral",
			},
			CurrentPrice:      contracts.Float(1234.5),
			UpsideToTargetPct: contracts.Float(12.34),
			Indicators: contracts.Indicators{
				Ret1DPct:  contracts.Float(1.5),
				Ret5DPct:  contracts.Float(-2.25),
				Ret21DPct: contracts.Float(8.1),
				RSI14:     contracts.Float(55.4),
			},
			Headlines: "Apple beats; Apple guides higher",
		},
		{
			Score: contracts.ScoreCard{
				Ticker:                  "XOM",
				UpsideScore:             4,
				EarningsBeatProbability: contracts.LevelMedium,
				ConfidenceLevel:         contracts.LevelLow,
			},
		},
	}
}

func TestBuildDeskReport_BlockOrder(t *testing.T) {
	date := time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC)
	report := BuildDeskReport(sampleRows(), date)

	if !strings.Contains(report.Text, "2026-08-21") || !strings.Contains(report.Text, "2 tickers") {
		t.Errorf("fallback text = %q", report.Text)
	}

	wantTypes := []string{"header", "context", "divider", "section", "divider", "section", "context"}
	if len(report.Blocks) != len(wantTypes) {
		t.Fatalf("got %d blocks, want %d", len(report.Blocks), len(wantTypes))
	}
	for i, wt := range wantTypes {
		if report.Blocks[i].Type != wt {
			t.Errorf("block[%d].Type = %s, want %s", i, report.Blocks[i].Type, wt)
		}
	}

	// Header carries the date; last context block carries the disclaimer
	if !strings.Contains(report.Blocks[0].Text.Text, "2026-08-21") {
		t.Errorf("header = %q, want the screening date", report.Blocks[0].Text.Text)
	}
	last := report.Blocks[len(report.Blocks)-1]
	if len(last.Elements) != 1 || last.Elements[0].Text != disclaimerText {
		t.Errorf("final context block should carry the disclaimer, got %+v", last)
	}

	// Snapshot table is fenced monospace
	table := report.Blocks[5].Text.Text
	if !strings.HasPrefix(table, "```") || !strings.HasSuffix(table, "```") {
		t.Errorf("snapshot table should be code-fenced: %q", table[:20])
	}
}

func TestRenderTopPicks(t *testing.T) {
	text := renderTopPicks(sampleRows())

	if !strings.Contains(text, "*1. AAPL* · V7 G6 T8 U9 · High beat · Medium confidence") {
		t.Errorf("top pick line missing or malformed:\n%s", text)
	}
	if !strings.Contains(text, "_Services growth compounding_") {
		t.Errorf("bull thesis missing:\n%s", text)
	}
	if !strings.Contains(text, "⚠ Hardware cycle softness") {
		t.Errorf("risk line missing:\n%s", text)
	}
	if !strings.Contains(text, "📰 Apple beats; Apple guides higher") {
		t.Errorf("headlines line missing:\n%s", text)
	}

	// XOM has no narratives; its line still renders
	if !strings.Contains(text, "*2. XOM*") {
		t.Errorf("second pick missing:\n%s", text)
	}
}

func TestRenderTopPicks_CapsAtLimit(t *testing.T) {
	rows := make([]contracts.Row, topPicks+5)
	for i := range rows {
		rows[i] = contracts.Row{Score: contracts.ScoreCard{Ticker: "T"}}
	}

	text := renderTopPicks(rows)
	if strings.Contains(text, "*9.") {
		t.Errorf("top picks should cap at %d entries", topPicks)
	}
	if !strings.Contains(text, "*8.") {
		t.Error("top picks should include the 8th entry")
	}
}

func TestRenderSnapshotTable(t *testing.T) {
	table := renderSnapshotTable(sampleRows())
	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Ticker") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "$1,234.50") {
		t.Errorf("AAPL row should format price with thousands separator: %q", lines[1])
	}
	if !strings.Contains(lines[1], "+1.50%") || !strings.Contains(lines[1], "-2.25%") {
		t.Errorf("AAPL row should carry signed returns: %q", lines[1])
	}
	if !strings.Contains(lines[2], "n/a") {
		t.Errorf("XOM row should render nil fields as n/a: %q", lines[2])
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatMoney(contracts.Float(1234.5)); got != "$1,234.50" {
		t.Errorf("FormatMoney(1234.5) = %q, want $1,234.50", got)
	}
	if got := FormatMoney(nil); got != "n/a" {
		t.Errorf("FormatMoney(nil) = %q", got)
	}
	if got := FormatSignedPct(contracts.Float(3.456)); got != "+3.46%" {
		t.Errorf("FormatSignedPct(3.456) = %q, want +3.46%%", got)
	}
	if got := FormatSignedPct(contracts.Float(-0.5)); got != "-0.50%" {
		t.Errorf("FormatSignedPct(-0.5) = %q, want -0.50%%", got)
	}
	if got := FormatPlain(contracts.Float(55.4)); got != "55.40" {
		t.Errorf("FormatPlain(55.4) = %q, want 55.40", got)
	}
	if got := FormatPlain(nil); got != "n/a" {
		t.Errorf("FormatPlain(nil) = %q", got)
	}
}

func TestNewSlackSink_EmptyURL(t *testing.T) {
	if NewSlackSink("", nil, nil) != nil {
		t.Error("NewSlackSink with empty URL must return nil")
	}
}
