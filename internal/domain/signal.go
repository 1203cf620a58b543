package domain

import "time"

type SignalCategory string

const (
	CategoryBTC        SignalCategory = "btc"
	CategoryETF        SignalCategory = "etf"
	CategorySentiment  SignalCategory = "sentiment"
	CategoryVolatility SignalCategory = "volatility"
	CategoryValuation  SignalCategory = "valuation"
)

// Signal is one human-readable advisory produced by the evaluator.
type Signal struct {
	Category SignalCategory `json:"category"`
	Text     string         `json:"text"`
}

// Digest is the outcome of one collection and evaluation cycle.
type Digest struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Snapshot    MetricSnapshot `json:"snapshot"`
	Premiums    ETFPremiums    `json:"premiums"`
	Signals     []Signal       `json:"signals"`
	Title       string         `json:"title"`
	Body        string         `json:"body"`
}

// SignalTexts returns the advisory texts in evaluation order.
func (d Digest) SignalTexts() []string {
	out := make([]string, 0, len(d.Signals))
	for _, s := range d.Signals {
		out = append(out, s.Text)
	}
	return out
}
