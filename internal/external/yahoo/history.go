package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wonny/marketdesk/internal/contracts"
)

// chartResponse mirrors the chart API envelope
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchHistory fetches daily OHLCV bars for [start, end) at the given
// interval. A provider-empty result yields an empty slice and nil error;
// only transport-level failures return an error.
func (c *Client) FetchHistory(ctx context.Context, ticker string, start, end time.Time, interval string) ([]contracts.Bar, error) {
	params := url.Values{}
	params.Set("period1", strconv.FormatInt(start.Unix(), 10))
	params.Set("period2", strconv.FormatInt(end.Unix(), 10))
	params.Set("interval", interval)
	params.Set("events", "history")

	body, err := c.fetchJSON(ctx, "/v8/finance/chart/"+url.PathEscape(ticker), params)
	if err != nil {
		if err == contracts.ErrProviderEmpty {
			return nil, nil
		}
		return nil, err
	}

	bars, err := parseChart(body)
	if err != nil {
		return nil, fmt.Errorf("parse chart for %s: %w", ticker, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"bars":   len(bars),
	}).Debug("Fetched history")

	return bars, nil
}

// parseChart flattens the chart envelope into bars, dropping rows where
// the close is missing (halted or padded sessions)
func parseChart(body []byte) ([]contracts.Bar, error) {
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal chart response: %w", err)
	}

	if resp.Chart.Error != nil {
		// The provider answered; there is just nothing usable
		return nil, nil
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := resp.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	bars := make([]contracts.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}

		bar := contracts.Bar{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}

		bars = append(bars, bar)
	}

	return bars, nil
}
