package contracts

// Fundamentals is the fixed-schema projection of a provider info record.
// ⭐ SSOT: 펀더멘털 스키마는 여기서만 정의
// Every field except Ticker may be nil. Percentages are in percent units
// (12.5 means 12.5%).
type Fundamentals struct {
	Ticker            string   `json:"ticker"`
	Sector            *string  `json:"sector"`
	Industry          *string  `json:"industry"`
	MarketCap         *float64 `json:"market_cap"`
	MarketCapBillions *float64 `json:"market_cap_billions"` // market_cap / 1e9
	CurrentPrice      *float64 `json:"current_price"`
	PE                *float64 `json:"pe"`
	ForwardPE         *float64 `json:"forward_pe"`
	PEGRatio          *float64 `json:"peg_ratio"`
	PriceToSales      *float64 `json:"price_to_sales"`
	PriceToBook       *float64 `json:"price_to_book"`
	RevenueGrowth     *float64 `json:"revenue_growth"`  // fraction, 0.15 = 15%
	EarningsGrowth    *float64 `json:"earnings_growth"` // fraction
	ProfitMargin      *float64 `json:"profit_margin"`   // fraction
	DebtToEquity      *float64 `json:"debt_to_equity"`
	FreeCashFlow      *float64 `json:"free_cash_flow"`
	// Absolute value of the month-to-date decline; nil for flat or up
	// months, so 0 never appears here.
	MonthPctDown       *float64 `json:"month_pct_down"`
	AnalystTargetPrice *float64 `json:"analyst_target_price"`
	UpsideToTargetPct  *float64 `json:"upside_to_target_pct"` // (target-price)/price*100
}
