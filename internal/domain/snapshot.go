package domain

import "time"

// BTCDrawdown is the current BTC price measured against its all-time high.
type BTCDrawdown struct {
	CurrentPrice float64 `json:"current_price"`
	AllTimeHigh  float64 `json:"all_time_high"`
	PercentDrop  float64 `json:"percent_drop"`
}

// FearGreed is the latest crypto fear & greed reading.
type FearGreed struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// MetricSnapshot holds every metric collected during one run.
// A nil field means the metric could not be fetched or computed.
type MetricSnapshot struct {
	BTC        *BTCDrawdown `json:"btc,omitempty"`
	FearGreed  *FearGreed   `json:"fear_greed,omitempty"`
	Volatility *float64     `json:"volatility,omitempty"`
	AHR999     *float64     `json:"ahr999,omitempty"`
	TakenAt    time.Time    `json:"taken_at"`
}

// Fund identifies one exchange-traded fund tracked for premium/discount.
type Fund struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// DefaultFunds is the fixed list of QDII funds scraped on every run.
var DefaultFunds = []Fund{
	{Code: "513500", Name: "博时标普500"},
	{Code: "159612", Name: "国泰标普500"},
	{Code: "159632", Name: "华安纳斯达克100"},
	{Code: "513100", Name: "国泰纳斯达克100"},
}

// ETFPremium is the scraped premium of one fund. Premium is nil when the
// scrape failed; Err then carries the reason.
type ETFPremium struct {
	Fund    Fund     `json:"fund"`
	Premium *float64 `json:"premium_percent,omitempty"`
	Err     error    `json:"-"`
}

// Available reports whether the premium was scraped successfully.
func (p ETFPremium) Available() bool {
	return p.Premium != nil
}

// ETFPremiums keeps the scrape results in fund-list order.
type ETFPremiums []ETFPremium

// ByCode returns the code -> premium mapping of the funds that were scraped.
func (ps ETFPremiums) ByCode() map[string]float64 {
	out := make(map[string]float64, len(ps))
	for _, p := range ps {
		if p.Premium != nil {
			out[p.Fund.Code] = *p.Premium
		}
	}
	return out
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}
