package domain

import "time"

// Candle represents a single OHLCV candle for a trading pair at a given interval.
type Candle struct {
	Symbol   string    `json:"symbol"`
	Interval string    `json:"interval"`
	OpenTime time.Time `json:"open_time"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
}

// Kline intervals understood by the exchange.
const (
	IntervalDay   = "1d"
	IntervalMonth = "1M"
)

// Highs returns the high of every candle in order.
func Highs(candles []Candle) []float64 {
	out := make([]float64, 0, len(candles))
	for _, c := range candles {
		out = append(out, c.High)
	}
	return out
}

// Closes returns the close of every candle in order.
func Closes(candles []Candle) []float64 {
	out := make([]float64, 0, len(candles))
	for _, c := range candles {
		out = append(out, c.Close)
	}
	return out
}
