package sinks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/wonny/marketdesk/internal/contracts"
	"github.com/wonny/marketdesk/pkg/httputil"
	"github.com/wonny/marketdesk/pkg/logger"
)

const (
	snapshotRows = 12 // monospace table depth
	topPicks     = 8  // narrative section depth

	disclaimerText = "Informational only. Not investment advice."
)

// SlackSink posts the desk report to an incoming-webhook URL: a
// monospace snapshot table plus a narrative of the top picks
type SlackSink struct {
	webhookURL string
	httpClient *httputil.Client
	logger     *logger.Logger
}

// NewSlackSink creates the webhook sink; empty URL yields nil (skipped)
func NewSlackSink(webhookURL string, httpClient *httputil.Client, log *logger.Logger) *SlackSink {
	if webhookURL == "" {
		return nil
	}

	return &SlackSink{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     log,
	}
}

// Name identifies the sink in logs
func (s *SlackSink) Name() string { return "slack" }

// Emit posts the desk report. Failures are returned for logging but the
// pipeline never fails the run on them.
func (s *SlackSink) Emit(ctx context.Context, rows []contracts.Row, date time.Time) error {
	payload := BuildDeskReport(rows, date)

	resp, err := s.httpClient.PostJSON(ctx, s.webhookURL, payload)
	if err != nil {
		return fmt.Errorf("post desk report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("desk report rejected: status %d: %s", resp.StatusCode, string(body))
	}

	s.logger.WithField("rows", len(rows)).Info("Desk report posted")
	return nil
}

// block types for the Slack Block Kit payload

type textObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type block struct {
	Type     string       `json:"type"`
	Text     *textObject  `json:"text,omitempty"`
	Elements []textObject `json:"elements,omitempty"`
}

// DeskReport is the webhook payload
type DeskReport struct {
	Text   string  `json:"text"`
	Blocks []block `json:"blocks"`
}

// BuildDeskReport renders rows into the block-kit desk report:
// header, context, divider, top picks, divider, snapshot table,
// disclaimer
func BuildDeskReport(rows []contracts.Row, date time.Time) DeskReport {
	day := date.Format("2006-01-02")

	return DeskReport{
		Text: fmt.Sprintf("Daily screening — %s (%d tickers)", day, len(rows)),
		Blocks: []block{
			{
				Type: "header",
				Text: &textObject{Type: "plain_text", Text: fmt.Sprintf("📈 Daily Screening — %s", day)},
			},
			{
				Type: "context",
				Elements: []textObject{
					{Type: "mrkdwn", Text: fmt.Sprintf("%d tickers screened · sorted by upside score", len(rows))},
				},
			},
			{Type: "divider"},
			{
				Type: "section",
				Text: &textObject{Type: "mrkdwn", Text: renderTopPicks(rows)},
			},
			{Type: "divider"},
			{
				Type: "section",
				Text: &textObject{Type: "mrkdwn", Text: "```" + renderSnapshotTable(rows) + "```"},
			},
			{
				Type: "context",
				Elements: []textObject{
					{Type: "mrkdwn", Text: disclaimerText},
				},
			},
		},
	}
}

// renderTopPicks writes the narrative section for up to topPicks rows
func renderTopPicks(rows []contracts.Row) string {
	var b strings.Builder
	b.WriteString("*Top picks*\n")

	for i, row := range rows {
		if i == topPicks {
			break
		}

		s := row.Score
		fmt.Fprintf(&b, "\n*%d. %s* · V%d G%d T%d U%d · %s beat · %s confidence\n",
			i+1, s.Ticker,
			s.ValueScore, s.GrowthScore, s.TechnicalScore, s.UpsideScore,
			s.EarningsBeatProbability, s.ConfidenceLevel)

		if s.KeyBullThesis != "" {
			fmt.Fprintf(&b, "_%s_\n", s.KeyBullThesis)
		}
		if s.KeyRisk != "" {
			fmt.Fprintf(&b, "⚠ %s\n", s.KeyRisk)
		}
		if s.TechnicalSetup != "" {
			fmt.Fprintf(&b, "📐 %s\n", s.TechnicalSetup)
		}
		if row.Headlines != "" {
			fmt.Fprintf(&b, "📰 %s\n", row.Headlines)
		}
	}

	return b.String()
}

// renderSnapshotTable writes the fixed-width market snapshot for up to
// snapshotRows rows
func renderSnapshotTable(rows []contracts.Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-7s %12s %8s %8s %8s %8s %6s %-9s %8s\n",
		"Ticker", "Price", "1D", "5D", "1M", "3M", "RSI", "Trend", "Upside")

	for i, row := range rows {
		if i == snapshotRows {
			break
		}

		ind := row.Indicators
		fmt.Fprintf(&b, "%-7s %12s %8s %8s %8s %8s %6s %-9s %8s\n",
			row.Score.Ticker,
			FormatMoney(row.CurrentPrice),
			FormatSignedPct(ind.Ret1DPct),
			FormatSignedPct(ind.Ret5DPct),
			FormatSignedPct(ind.Ret21DPct),
			FormatSignedPct(ind.Ret63DPct),
			FormatPlain(ind.RSI14),
			ind.TrendLabel(row.CurrentPrice),
			FormatSignedPct(row.UpsideToTargetPct))
	}

	return b.String()
}

// FormatMoney renders a price as $X,XXX.XX, n/a when nil
func FormatMoney(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return "$" + humanize.FormatFloat("#,###.##", *v)
}

// FormatSignedPct renders a signed two-decimal percentage, n/a when nil
func FormatSignedPct(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", *v)
}

// FormatPlain renders a two-decimal number, n/a when nil
func FormatPlain(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", *v)
}
