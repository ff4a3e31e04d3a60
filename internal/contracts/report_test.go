package contracts

import "testing"

func TestRowColumns_ReturnsCopy(t *testing.T) {
	cols := RowColumns()
	cols[0] = "mutated"

	if RowColumns()[0] != "ticker" {
		t.Error("RowColumns() must return a copy of the shared column set")
	}
}

func TestRow_Record_WidthMatchesColumns(t *testing.T) {
	row := Row{Score: ScoreCard{Ticker: "AAPL"}}

	record := row.Record()
	if len(record) != len(RowColumns()) {
		t.Fatalf("record width %d != columns %d", len(record), len(RowColumns()))
	}
}

func TestRow_Record_NilRendering(t *testing.T) {
	row := Row{
		Score: ScoreCard{
			Ticker:                  "AAPL",
			ValueScore:              7,
			EarningsBeatProbability: LevelHigh,
		},
		CurrentPrice: Float(230.5),
		Indicators: Indicators{
			PriceAboveMA20: Bool(true),
		},
		Headlines:     "a; b",
		ScreeningDate: "2026-08-21",
	}

	record := row.Record()

	if record[0] != "AAPL" || record[2] != "7" || record[6] != "High" {
		t.Errorf("scalar fields wrong: %v", record[:8])
	}
	if record[11] != "230.5" {
		t.Errorf("current_price = %q, want minimal float form 230.5", record[11])
	}
	// market_cap nil → empty string
	if record[12] != "" {
		t.Errorf("nil float should render empty, got %q", record[12])
	}
	if record[20] != "true" {
		t.Errorf("price_above_ma20 = %q, want true", record[20])
	}
	// price_above_ma50 nil → empty
	if record[21] != "" {
		t.Errorf("nil bool should render empty, got %q", record[21])
	}
	if record[len(record)-1] != "2026-08-21" {
		t.Errorf("screening_date = %q", record[len(record)-1])
	}
}

func TestCloses(t *testing.T) {
	bars := []Bar{
		{Close: 100}, {Close: 101.5}, {Close: 99},
	}

	closes := Closes(bars)
	if len(closes) != 3 || closes[1] != 101.5 {
		t.Errorf("Closes() = %v", closes)
	}

	if Closes(nil) != nil && len(Closes(nil)) != 0 {
		t.Error("Closes(nil) should be empty")
	}
}
