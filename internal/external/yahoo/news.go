package yahoo

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/marketdesk/internal/contracts"
)

// FetchHeadlines fetches recent news for a ticker, at most limit items in
// provider order. Failures never propagate: any error yields an empty
// list so a dead news feed cannot take a ticker down.
func (c *Client) FetchHeadlines(ctx context.Context, ticker string, limit int) []contracts.Headline {
	if limit <= 0 {
		return nil
	}

	headlines, err := c.searchNews(ctx, ticker, limit)
	if err != nil {
		c.logger.WithError(err).WithField("ticker", ticker).Debug("News search failed, trying HTML fallback")
		headlines = c.scrapeNews(ctx, ticker, limit)
	}

	c.logger.WithFields(map[string]interface{}{
		"ticker":    ticker,
		"headlines": len(headlines),
	}).Debug("Fetched headlines")

	return headlines
}

// searchNews hits the JSON search endpoint
func (c *Client) searchNews(ctx context.Context, ticker string, limit int) ([]contracts.Headline, error) {
	params := url.Values{}
	params.Set("q", ticker)
	params.Set("newsCount", strconv.Itoa(limit))
	params.Set("quotesCount", "0")

	body, err := c.fetchJSON(ctx, "/v1/finance/search", params)
	if err != nil {
		return nil, err
	}

	var resp struct {
		News []struct {
			Title     string `json:"title"`
			Publisher string `json:"publisher"`
			Link      string `json:"link"`
		} `json:"news"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	headlines := make([]contracts.Headline, 0, limit)
	for _, item := range resp.News {
		if len(headlines) == limit {
			break
		}
		if item.Title == "" {
			continue
		}

		h := contracts.Headline{Title: item.Title, Link: item.Link}
		if item.Publisher != "" {
			h.Publisher = contracts.String(item.Publisher)
		}
		headlines = append(headlines, h)
	}

	return headlines, nil
}

// scrapeNews parses the quote page's news anchors as a fallback; a
// best-effort path, so every error collapses to "no headlines"
func (c *Client) scrapeNews(ctx context.Context, ticker string, limit int) []contracts.Headline {
	pageURL := c.webBaseURL + "/quote/" + url.PathEscape(ticker) + "/news"

	resp, err := c.httpClient.GetWithHeaders(ctx, pageURL, map[string]string{
		"User-Agent": userAgent,
	})
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil
	}

	var headlines []contracts.Headline
	doc.Find("h3 a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Text())
		if title == "" {
			return true
		}

		link, _ := sel.Attr("href")
		if strings.HasPrefix(link, "/") {
			link = c.webBaseURL + link
		}

		headlines = append(headlines, contracts.Headline{Title: title, Link: link})
		return len(headlines) < limit
	})

	return headlines
}
