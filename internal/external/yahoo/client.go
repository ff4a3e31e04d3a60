package yahoo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/wonny/marketdesk/internal/contracts"
	"github.com/wonny/marketdesk/pkg/httputil"
	"github.com/wonny/marketdesk/pkg/logger"
)

const (
	defaultAPIBaseURL = "https://query1.finance.yahoo.com"
	defaultWebBaseURL = "https://finance.yahoo.com"

	// Yahoo rejects requests without a browser-ish user agent
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// Client handles communication with Yahoo Finance
// ⭐ SSOT: Yahoo Finance 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	apiBaseURL string
	webBaseURL string
}

// NewClient creates a new Yahoo Finance client
func NewClient(httpClient *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		apiBaseURL: defaultAPIBaseURL,
		webBaseURL: defaultWebBaseURL,
	}
}

// WithBaseURLs overrides endpoints; used by tests against httptest servers
func (c *Client) WithBaseURLs(apiBase, webBase string) *Client {
	c.apiBaseURL = apiBase
	c.webBaseURL = webBase
	return c
}

// fetchJSON performs a GET and returns the raw body.
// 404 means "no such data" and maps to contracts.ErrProviderEmpty;
// other failures are transport-level and map to ErrProviderUnavailable.
func (c *Client) fetchJSON(ctx context.Context, path string, params url.Values) ([]byte, error) {
	fullURL := c.apiBaseURL + path
	if len(params) > 0 {
		fullURL = fmt.Sprintf("%s?%s", fullURL, params.Encode())
	}

	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, map[string]string{
		"User-Agent": userAgent,
		"Accept":     "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contracts.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, contracts.ErrProviderEmpty
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status code %d", contracts.ErrProviderUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", contracts.ErrProviderUnavailable, err)
	}

	return body, nil
}
