package screen

import (
	"math"

	"github.com/markcheno/go-talib"

	"github.com/wonny/marketdesk/internal/contracts"
)

// Return windows in trading days: 1D, 1W, 1M, 3M, 6M
var returnWindows = []int{1, 5, 21, 63, 126}

const (
	rsiPeriod  = 14
	yearWindow = 252 // trading days in a 52-week lookback
)

// ComputeIndicators derives the technical snapshot from a daily close
// series. Pure function: a field is nil whenever the series is too short
// for its window. All outputs are rounded to two decimals.
func ComputeIndicators(closes []float64) contracts.Indicators {
	ind := contracts.Indicators{}
	if len(closes) == 0 {
		return ind
	}

	price := closes[len(closes)-1]

	ind.RSI14 = computeRSI(closes, rsiPeriod)
	ind.MA20 = lastSMA(closes, 20)
	ind.MA50 = lastSMA(closes, 50)
	ind.MA200 = lastSMA(closes, 200)

	ind.PriceAboveMA20 = greaterThan(&price, ind.MA20)
	ind.PriceAboveMA50 = greaterThan(&price, ind.MA50)
	ind.PriceAboveMA200 = greaterThan(&price, ind.MA200)
	ind.MA20AboveMA50 = greaterThan(ind.MA20, ind.MA50)
	ind.MA50AboveMA200 = greaterThan(ind.MA50, ind.MA200)

	high, low := yearExtremes(closes)
	ind.High52W = round2p(high)
	ind.Low52W = round2p(low)
	if price > 0 {
		if high != nil {
			ind.DistanceFrom52WHighPct = round2p(contracts.Float((*high - price) / price * 100))
		}
		if low != nil {
			ind.DistanceFrom52WLowPct = round2p(contracts.Float((price - *low) / price * 100))
		}
	}

	for _, n := range returnWindows {
		ret := computeReturn(closes, n)
		switch n {
		case 1:
			ind.Ret1DPct = ret
		case 5:
			ind.Ret5DPct = ret
		case 21:
			ind.Ret21DPct = ret
		case 63:
			ind.Ret63DPct = ret
		case 126:
			ind.Ret126DPct = ret
		}
	}

	return ind
}

// computeRSI calculates RSI with a rolling mean of gains and losses over
// the last `period` changes. mean_loss == 0 pins RSI at 100.
func computeRSI(closes []float64, period int) *float64 {
	if len(closes) < period+1 {
		return nil
	}

	var gains, losses float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains += change
		} else {
			losses += -change
		}
	}

	meanGain := gains / float64(period)
	meanLoss := losses / float64(period)

	if meanLoss == 0 {
		return contracts.Float(100.0)
	}

	rs := meanGain / meanLoss
	rsi := 100 - 100/(1+rs)

	return round2p(&rsi)
}

// lastSMA returns the most recent simple moving average, nil when the
// window is not full
func lastSMA(closes []float64, period int) *float64 {
	if len(closes) < period {
		return nil
	}

	sma := talib.Sma(closes, period)
	return round2p(&sma[len(sma)-1])
}

// computeReturn is the percent change over n periods, nil when the series
// is too short or the base close is zero
func computeReturn(closes []float64, n int) *float64 {
	if len(closes) < n+1 {
		return nil
	}

	base := closes[len(closes)-(n+1)]
	if base == 0 {
		return nil
	}

	ret := (closes[len(closes)-1] - base) / base * 100
	return round2p(&ret)
}

// yearExtremes finds the 52-week high/low over the last 252 closes
func yearExtremes(closes []float64) (high, low *float64) {
	window := closes
	if len(window) > yearWindow {
		window = window[len(window)-yearWindow:]
	}
	if len(window) == 0 {
		return nil, nil
	}

	h, l := window[0], window[0]
	for _, c := range window[1:] {
		if c > h {
			h = c
		}
		if c < l {
			l = c
		}
	}
	return &h, &l
}

// greaterThan compares through nil: nil when either operand is nil
func greaterThan(a, b *float64) *bool {
	if a == nil || b == nil {
		return nil
	}
	return contracts.Bool(*a > *b)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round2p(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return contracts.Float(round2(*v))
}
