package contracts

import "strconv"

// Row is one assembled report line per ticker: scorer output, selected
// fundamentals, the full indicator record, joined headlines and the
// screening date. Rows are immutable after assembly.
// ⭐ SSOT: 리포트 컬럼 집합은 여기서만 정의
type Row struct {
	Score ScoreCard

	CurrentPrice       *float64
	MarketCap          *float64
	MonthPctDown       *float64
	AnalystTargetPrice *float64
	UpsideToTargetPct  *float64

	Indicators Indicators

	Headlines     string // top two titles joined with "; "
	ScreeningDate string // ISO date
}

// rowColumns is the single CSV column order shared by every row
var rowColumns = []string{
	"ticker",
	"sector",
	"value_score",
	"growth_score",
	"technical_score",
	"upside_score",
	"earnings_beat_probability",
	"confidence_level",
	"key_bull_thesis",
	"key_risk",
	"technical_setup",
	"current_price",
	"market_cap",
	"month_pct_down",
	"analyst_target_price",
	"upside_to_target_pct",
	"rsi_14",
	"ma_20",
	"ma_50",
	"ma_200",
	"price_above_ma20",
	"price_above_ma50",
	"price_above_ma200",
	"ma20_above_ma50",
	"ma50_above_ma200",
	"52w_high",
	"52w_low",
	"distance_from_52w_high_pct",
	"distance_from_52w_low_pct",
	"ret_1d_pct",
	"ret_5d_pct",
	"ret_21d_pct",
	"ret_63d_pct",
	"ret_126d_pct",
	"headlines",
	"screening_date",
}

// RowColumns returns the CSV header in column order
func RowColumns() []string {
	columns := make([]string, len(rowColumns))
	copy(columns, rowColumns)
	return columns
}

// Record stringifies the row in column order; nil renders as ""
func (r Row) Record() []string {
	return []string{
		r.Score.Ticker,
		r.Score.Sector,
		strconv.Itoa(r.Score.ValueScore),
		strconv.Itoa(r.Score.GrowthScore),
		strconv.Itoa(r.Score.TechnicalScore),
		strconv.Itoa(r.Score.UpsideScore),
		r.Score.EarningsBeatProbability,
		r.Score.ConfidenceLevel,
		r.Score.KeyBullThesis,
		r.Score.KeyRisk,
		r.Score.TechnicalSetup,
		floatField(r.CurrentPrice),
		floatField(r.MarketCap),
		floatField(r.MonthPctDown),
		floatField(r.AnalystTargetPrice),
		floatField(r.UpsideToTargetPct),
		floatField(r.Indicators.RSI14),
		floatField(r.Indicators.MA20),
		floatField(r.Indicators.MA50),
		floatField(r.Indicators.MA200),
		boolField(r.Indicators.PriceAboveMA20),
		boolField(r.Indicators.PriceAboveMA50),
		boolField(r.Indicators.PriceAboveMA200),
		boolField(r.Indicators.MA20AboveMA50),
		boolField(r.Indicators.MA50AboveMA200),
		floatField(r.Indicators.High52W),
		floatField(r.Indicators.Low52W),
		floatField(r.Indicators.DistanceFrom52WHighPct),
		floatField(r.Indicators.DistanceFrom52WLowPct),
		floatField(r.Indicators.Ret1DPct),
		floatField(r.Indicators.Ret5DPct),
		floatField(r.Indicators.Ret21DPct),
		floatField(r.Indicators.Ret63DPct),
		floatField(r.Indicators.Ret126DPct),
		r.Headlines,
		r.ScreeningDate,
	}
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func boolField(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
