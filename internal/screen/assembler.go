package screen

import (
	"sort"
	"strings"
	"time"

	"github.com/wonny/marketdesk/internal/contracts"
)

// joinedHeadlines caps how many titles land in the report row
const joinedHeadlines = 2

// BuildRow merges scorer output, selected fundamentals, the indicator
// record and the joined headlines into one flat report row
func BuildRow(
	score contracts.ScoreCard,
	f contracts.Fundamentals,
	ind contracts.Indicators,
	headlines []contracts.Headline,
	date time.Time,
) contracts.Row {
	titles := make([]string, 0, joinedHeadlines)
	for i, h := range headlines {
		if i == joinedHeadlines {
			break
		}
		titles = append(titles, h.Title)
	}

	return contracts.Row{
		Score:              score,
		CurrentPrice:       f.CurrentPrice,
		MarketCap:          f.MarketCap,
		MonthPctDown:       f.MonthPctDown,
		AnalystTargetPrice: f.AnalystTargetPrice,
		UpsideToTargetPct:  f.UpsideToTargetPct,
		Indicators:         ind,
		Headlines:          strings.Join(titles, "; "),
		ScreeningDate:      date.Format("2006-01-02"),
	}
}

// SortRows orders rows by descending upside score. Stable: ties keep
// input order.
func SortRows(rows []contracts.Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score.UpsideScore > rows[j].Score.UpsideScore
	})
}
