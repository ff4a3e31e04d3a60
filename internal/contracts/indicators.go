package contracts

// Indicators holds the technical snapshot for a single ticker.
// All numeric fields are rounded to two decimals and may be nil when the
// close series is too short; comparison booleans are nil when either
// operand is nil.
type Indicators struct {
	RSI14 *float64 `json:"rsi_14"`

	MA20  *float64 `json:"ma_20"`
	MA50  *float64 `json:"ma_50"`
	MA200 *float64 `json:"ma_200"`

	PriceAboveMA20  *bool `json:"price_above_ma20"`
	PriceAboveMA50  *bool `json:"price_above_ma50"`
	PriceAboveMA200 *bool `json:"price_above_ma200"`
	MA20AboveMA50   *bool `json:"ma20_above_ma50"`
	MA50AboveMA200  *bool `json:"ma50_above_ma200"`

	High52W                *float64 `json:"52w_high"`
	Low52W                 *float64 `json:"52w_low"`
	DistanceFrom52WHighPct *float64 `json:"distance_from_52w_high_pct"`
	DistanceFrom52WLowPct  *float64 `json:"distance_from_52w_low_pct"`

	Ret1DPct   *float64 `json:"ret_1d_pct"`
	Ret5DPct   *float64 `json:"ret_5d_pct"`
	Ret21DPct  *float64 `json:"ret_21d_pct"`
	Ret63DPct  *float64 `json:"ret_63d_pct"`
	Ret126DPct *float64 `json:"ret_126d_pct"`
}

// Trend labels classifying price vs moving-average alignment
const (
	TrendUptrend  = "Uptrend"
	TrendMomentum = "Momentum"
	TrendBase     = "Base"
	TrendWeak     = "Weak"
)

// HasMovingAverages reports whether at least one moving average was
// computed for the series
func (i Indicators) HasMovingAverages() bool {
	return i.MA20 != nil || i.MA50 != nil || i.MA200 != nil
}

// TrendLabel classifies the moving-average alignment for price.
// Uptrend:  price > MA20 > MA50 > MA200
// Momentum: price > MA50 and MA20 > MA50
// Base:     price > MA200
// Weak:     everything else (including missing averages)
func (i Indicators) TrendLabel(price *float64) string {
	above := func(a, b *float64) bool {
		return a != nil && b != nil && *a > *b
	}

	switch {
	case above(price, i.MA20) && above(i.MA20, i.MA50) && above(i.MA50, i.MA200):
		return TrendUptrend
	case above(price, i.MA50) && above(i.MA20, i.MA50):
		return TrendMomentum
	case above(price, i.MA200):
		return TrendBase
	default:
		return TrendWeak
	}
}
