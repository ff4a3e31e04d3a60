package screen

import (
	"math"
	"time"

	"github.com/wonny/marketdesk/internal/contracts"
)

// ExtractFundamentals projects a raw provider info record into the fixed
// fundamentals schema. Missing sub-inputs propagate as nil; the function
// never panics on malformed provider values.
// monthBars supplies the current-month history for the MTD drawdown.
func ExtractFundamentals(
	ticker string,
	info contracts.InfoRecord,
	currentPrice *float64,
	monthBars []contracts.Bar,
	now time.Time,
) contracts.Fundamentals {
	f := contracts.Fundamentals{
		Ticker:         ticker,
		Sector:         strField(info, "sector"),
		Industry:       strField(info, "industry"),
		MarketCap:      numField(info, "marketCap"),
		PE:             numField(info, "trailingPE"),
		ForwardPE:      numField(info, "forwardPE"),
		PEGRatio:       numField(info, "pegRatio"),
		PriceToSales:   numField(info, "priceToSalesTrailing12Months"),
		PriceToBook:    numField(info, "priceToBook"),
		RevenueGrowth:  numField(info, "revenueGrowth"),
		EarningsGrowth: numField(info, "earningsGrowth"),
		ProfitMargin:   numField(info, "profitMargins"),
		DebtToEquity:   numField(info, "debtToEquity"),
		FreeCashFlow:   numField(info, "freeCashflow"),
	}

	f.CurrentPrice = currentPrice
	if f.CurrentPrice == nil {
		f.CurrentPrice = numField(info, "currentPrice")
	}

	if f.MarketCap != nil {
		f.MarketCapBillions = contracts.Float(round2(*f.MarketCap / 1e9))
	}

	f.AnalystTargetPrice = numField(info, "targetMeanPrice")
	f.UpsideToTargetPct = upsideToTarget(f.AnalystTargetPrice, f.CurrentPrice)
	f.MonthPctDown = monthPctDown(monthBars, f.CurrentPrice, now)

	return f
}

// upsideToTarget is (target - price) / price * 100, nil unless both
// operands are present and positive
func upsideToTarget(target, price *float64) *float64 {
	if target == nil || price == nil || *target <= 0 || *price <= 0 {
		return nil
	}
	return contracts.Float(round2((*target - *price) / *price * 100))
}

// monthPctDown derives the absolute month-to-date decline from the open
// of the first trading day of the current calendar month. Flat or up
// months yield nil, not zero.
func monthPctDown(bars []contracts.Bar, price *float64, now time.Time) *float64 {
	if price == nil || *price <= 0 {
		return nil
	}

	var base float64
	for _, b := range bars {
		if b.Date.Year() == now.Year() && b.Date.Month() == now.Month() {
			base = b.Open
			break
		}
	}
	if base <= 0 {
		return nil
	}

	pct := (*price - base) / base * 100
	if pct >= 0 {
		return nil
	}
	return contracts.Float(round2(math.Abs(pct)))
}

// numField reads a numeric info value, tolerating the scalar types the
// provider actually sends
func numField(info contracts.InfoRecord, key string) *float64 {
	v, ok := info[key]
	if !ok || v == nil {
		return nil
	}

	switch val := v.(type) {
	case float64:
		return contracts.Float(val)
	case float32:
		return contracts.Float(float64(val))
	case int:
		return contracts.Float(float64(val))
	case int64:
		return contracts.Float(float64(val))
	default:
		return nil
	}
}

func strField(info contracts.InfoRecord, key string) *string {
	v, ok := info[key]
	if !ok || v == nil {
		return nil
	}

	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}
