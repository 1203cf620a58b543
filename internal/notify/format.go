package notify

import (
	"fmt"
	"strings"
	"time"

	"market-pulse/internal/domain"
	"market-pulse/internal/marketdata"

	"github.com/dustin/go-humanize"
)

const (
	placeholderFetchFailed = "fetch failed"
	placeholderUnknown     = "unable to determine"
	placeholderCalcFailed  = "calculation failed"
	placeholderNoSignal    = "no signal today"
)

type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Format renders the push title and body for a digest. Timestamps are shown
// in loc; a nil loc means UTC.
func Format(d domain.Digest, loc *time.Location) Message {
	if loc == nil {
		loc = time.UTC
	}
	at := d.GeneratedAt.In(loc)
	snap := d.Snapshot

	price := "BTC: " + placeholderFetchFailed
	if snap.BTC != nil {
		price = fmt.Sprintf("BTC: %s USD", usd(snap.BTC.CurrentPrice))
	}
	title := fmt.Sprintf("Market signals (%s) - %s", at.Format("15:04"), price)

	var b strings.Builder
	fmt.Fprintf(&b, "[Generated at: %s]\n\n", at.Format("2006-01-02 15:04:05"))

	b.WriteString("--- Trading signals ---\n")
	if len(d.Signals) == 0 {
		b.WriteString(placeholderNoSignal + "\n")
	}
	for _, s := range d.Signals {
		fmt.Fprintf(&b, "**%s**\n", s.Text)
	}

	b.WriteString("\n--- BTC / crypto ---\n")
	if snap.BTC != nil {
		fmt.Fprintf(&b, "Current price: %s USD\n", usd(snap.BTC.CurrentPrice))
		fmt.Fprintf(&b, "All-time high: %s USD\n", usd(snap.BTC.AllTimeHigh))
		fmt.Fprintf(&b, "Change: %.2f%%\n", snap.BTC.PercentDrop)
	} else {
		fmt.Fprintf(&b, "Current price: %s\n", placeholderFetchFailed)
		fmt.Fprintf(&b, "All-time high: %s\n", placeholderFetchFailed)
		fmt.Fprintf(&b, "Change: %s\n", placeholderFetchFailed)
	}
	if snap.FearGreed != nil {
		label := snap.FearGreed.Label
		if label == "" {
			label = placeholderUnknown
		}
		fmt.Fprintf(&b, "Crypto fear & greed: %d (%s)\n", snap.FearGreed.Value, label)
	} else {
		fmt.Fprintf(&b, "Crypto fear & greed: %s (%s)\n", placeholderFetchFailed, placeholderUnknown)
	}
	if snap.Volatility != nil {
		fmt.Fprintf(&b, "VIX: %.2f\n", *snap.Volatility)
	} else {
		fmt.Fprintf(&b, "VIX: %s\n", placeholderFetchFailed)
	}
	if snap.AHR999 != nil {
		fmt.Fprintf(&b, "AHR999: %.4f\n", *snap.AHR999)
	} else {
		fmt.Fprintf(&b, "AHR999: %s\n", placeholderCalcFailed)
	}

	b.WriteString("\n--- QDII ETF premiums (haoetf) ---\n")
	for _, line := range marketdata.PremiumLines(d.Premiums) {
		fmt.Fprintf(&b, "    %s\n", line)
	}

	return Message{Title: title, Body: b.String()}
}

func usd(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}
