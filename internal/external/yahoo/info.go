package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/wonny/marketdesk/internal/contracts"
)

// quoteSummary modules holding the fundamentals this system projects
const infoModules = "summaryProfile,financialData,defaultKeyStatistics,price"

// FetchInfo fetches the raw info record for a ticker. The record may be
// empty; that is not an error. Only transport failures return an error.
func (c *Client) FetchInfo(ctx context.Context, ticker string) (contracts.InfoRecord, error) {
	params := url.Values{}
	params.Set("modules", infoModules)

	body, err := c.fetchJSON(ctx, "/v10/finance/quoteSummary/"+url.PathEscape(ticker), params)
	if err != nil {
		if err == contracts.ErrProviderEmpty {
			return contracts.InfoRecord{}, nil
		}
		return nil, err
	}

	info, err := parseQuoteSummary(body)
	if err != nil {
		return nil, fmt.Errorf("parse info for %s: %w", ticker, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker": ticker,
		"keys":   len(info),
	}).Debug("Fetched info")

	return info, nil
}

// parseQuoteSummary flattens all modules into one key-value record.
// Formatted values like {"raw": 1.23, "fmt": "1.23"} collapse to their
// raw scalar; plain scalars pass through.
func parseQuoteSummary(body []byte) (contracts.InfoRecord, error) {
	var resp struct {
		QuoteSummary struct {
			Result []map[string]map[string]interface{} `json:"result"`
		} `json:"quoteSummary"`
	}

	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal quoteSummary response: %w", err)
	}

	info := contracts.InfoRecord{}
	if len(resp.QuoteSummary.Result) == 0 {
		return info, nil
	}

	for _, module := range resp.QuoteSummary.Result[0] {
		for key, value := range module {
			if flat := flattenValue(value); flat != nil {
				info[key] = flat
			}
		}
	}

	return info, nil
}

// flattenValue unwraps {"raw": x} wrappers and keeps plain scalars
func flattenValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		if raw, ok := val["raw"]; ok {
			return raw
		}
		return nil
	case string, float64, bool:
		return val
	default:
		return nil
	}
}
