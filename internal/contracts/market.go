package contracts

import "time"

// Bar represents one daily OHLCV bar
// Dates are strictly increasing per ticker; closes are non-negative.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// InfoRecord is the raw provider snapshot for a ticker.
// Keys are provider-defined; values are numbers, strings or nil.
// Accessed only through the fundamentals extractor.
type InfoRecord map[string]interface{}

// Headline is one news item for a ticker
type Headline struct {
	Title     string  `json:"title"`
	Publisher *string `json:"publisher"`
	Link      string  `json:"link"`
}

// Closes extracts the close series from a bar sequence
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// Pointer helpers for nullable record fields

// Float returns a pointer to v
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v
func Bool(v bool) *bool { return &v }

// String returns a pointer to v
func String(v string) *string { return &v }
