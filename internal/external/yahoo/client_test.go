package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wonny/marketdesk/internal/contracts"
	"github.com/wonny/marketdesk/pkg/config"
	"github.com/wonny/marketdesk/pkg/httputil"
	"github.com/wonny/marketdesk/pkg/logger"
)

func testClient(server *httptest.Server) *Client {
	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	httpClient := httputil.New(log, 5*time.Second).DisableRetry()
	return NewClient(httpClient, log).WithBaseURLs(server.URL, server.URL)
}

const chartBody = `{
  "chart": {
    "result": [{
      "timestamp": [1755734400, 1755820800, 1755907200],
      "indicators": {
        "quote": [{
          "open":   [100.0, 102.0, null],
          "high":   [103.0, 104.0, null],
          "low":    [99.0, 101.0, null],
          "close":  [102.0, 103.5, null],
          "volume": [1000, 1100, null]
        }]
      }
    }],
    "error": null
  }
}`

func TestFetchHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/AAPL" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("interval = %q, want 1d", r.URL.Query().Get("interval"))
		}
		if r.Header.Get("User-Agent") == "" {
			t.Error("request should carry a user agent")
		}
		fmt.Fprint(w, chartBody)
	}))
	defer server.Close()

	c := testClient(server)
	bars, err := c.FetchHistory(context.Background(), "AAPL",
		time.Now().AddDate(0, 0, -10), time.Now(), "1d")
	if err != nil {
		t.Fatalf("FetchHistory() error = %v", err)
	}

	// The null-close third row is dropped
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if bars[0].Close != 102.0 || bars[0].Open != 100.0 || bars[0].Volume != 1000 {
		t.Errorf("bars[0] = %+v", bars[0])
	}
	if bars[1].Close != 103.5 {
		t.Errorf("bars[1].Close = %v, want 103.5", bars[1].Close)
	}
}

func TestFetchHistory_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	bars, err := testClient(server).FetchHistory(context.Background(), "NOPE",
		time.Now().AddDate(0, 0, -10), time.Now(), "1d")
	if err != nil {
		t.Fatalf("404 should not be an error, got %v", err)
	}
	if len(bars) != 0 {
		t.Errorf("got %d bars, want 0", len(bars))
	}
}

func TestFetchHistory_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server).FetchHistory(context.Background(), "AAPL",
		time.Now().AddDate(0, 0, -10), time.Now(), "1d")
	if !errors.Is(err, contracts.ErrProviderUnavailable) {
		t.Fatalf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestFetchInfo_FlattensRawWrappers(t *testing.T) {
	body := `{
	  "quoteSummary": {
	    "result": [{
	      "financialData": {
	        "targetMeanPrice": {"raw": 250.5, "fmt": "250.50"},
	        "revenueGrowth": {"raw": 0.12, "fmt": "12.00%"},
	        "numberOfAnalystOpinions": {}
	      },
	      "summaryProfile": {
	        "sector": "Technology",
	        "fullTimeEmployees": 150000.0
	      }
	    }]
	  }
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v10/finance/quoteSummary/AAPL" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	info, err := testClient(server).FetchInfo(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchInfo() error = %v", err)
	}

	if got := info["targetMeanPrice"]; got != 250.5 {
		t.Errorf("targetMeanPrice = %v, want raw 250.5", got)
	}
	if got := info["sector"]; got != "Technology" {
		t.Errorf("sector = %v, want plain string pass-through", got)
	}
	if _, ok := info["numberOfAnalystOpinions"]; ok {
		t.Error("empty formatted value should be dropped")
	}
}

func TestFetchInfo_NotFoundYieldsEmptyRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	info, err := testClient(server).FetchInfo(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("FetchInfo() error = %v", err)
	}
	if len(info) != 0 {
		t.Errorf("got %d keys, want empty record", len(info))
	}
}

func TestFetchHeadlines_SearchEndpoint(t *testing.T) {
	body := `{"news": [
	  {"title": "Apple ships", "publisher": "Reuters", "link": "https://e/1"},
	  {"title": "", "publisher": "skip me", "link": "https://e/2"},
	  {"title": "Apple guides", "publisher": "WSJ", "link": "https://e/3"},
	  {"title": "One too many", "publisher": "X", "link": "https://e/4"}
	]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/finance/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	headlines := testClient(server).FetchHeadlines(context.Background(), "AAPL", 2)

	if len(headlines) != 2 {
		t.Fatalf("got %d headlines, want 2", len(headlines))
	}
	if headlines[0].Title != "Apple ships" {
		t.Errorf("headlines[0].Title = %q", headlines[0].Title)
	}
	if headlines[0].Publisher == nil || *headlines[0].Publisher != "Reuters" {
		t.Errorf("headlines[0].Publisher = %v", headlines[0].Publisher)
	}
	// Untitled items are skipped, so the second kept item is the third sent
	if headlines[1].Title != "Apple guides" {
		t.Errorf("headlines[1].Title = %q", headlines[1].Title)
	}
}

func TestFetchHeadlines_NeverErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	headlines := testClient(server).FetchHeadlines(context.Background(), "AAPL", 3)
	if len(headlines) != 0 {
		t.Errorf("dead feed should yield an empty list, got %d", len(headlines))
	}
}

func TestFetchHeadlines_ZeroLimit(t *testing.T) {
	// No server: a zero limit must short-circuit before any request
	c := NewClient(nil, logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"}))
	if got := c.FetchHeadlines(context.Background(), "AAPL", 0); got != nil {
		t.Errorf("FetchHeadlines(limit=0) = %v, want nil", got)
	}
}
