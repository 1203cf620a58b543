// Package valuation implements the AHR999 BTC valuation index.
//
// The index multiplies the deviation of the price from its 200-day moving
// average by the deviation from a log-regression fair value fitted on the age
// of the network:
//
//	fair  = 10^(5.84*log10(ageDays) - 17.01)
//	index = (price/MA200) * (price/fair)
package valuation

import (
	"fmt"
	"math"
	"time"

	"market-pulse/internal/domain"
	"market-pulse/internal/ta"
)

const (
	// MAWindow is the number of daily closes averaged.
	MAWindow = 200
	// SampleSize is the number of daily closes requested from the exchange.
	SampleSize = 210

	slope     = 5.84
	intercept = -17.01
)

// Genesis is the origin date of the fair-value regression.
var Genesis = time.Date(2009, time.January, 3, 0, 0, 0, 0, time.UTC)

// AgeDays returns the whole number of calendar days between origin and the
// calendar date of now.
func AgeDays(now, origin time.Time) int {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	oy, om, od := origin.Date()
	start := time.Date(oy, om, od, 0, 0, 0, 0, time.UTC)
	return int(today.Sub(start) / (24 * time.Hour))
}

// FairValue returns the log-regression fair price for a network age in days.
func FairValue(ageDays int) float64 {
	if ageDays <= 0 {
		return 0
	}
	return math.Pow(10, slope*math.Log10(float64(ageDays))+intercept)
}

// AHR999 computes the index from daily closes ordered oldest first, using the
// last close as the current price. The result is rounded to 4 decimals.
func AHR999(closes []float64, now time.Time) (float64, error) {
	return AHR999From(closes, now, Genesis)
}

// AHR999From is AHR999 with an explicit regression origin.
func AHR999From(closes []float64, now, origin time.Time) (float64, error) {
	valid := make([]float64, 0, len(closes))
	for _, c := range closes {
		if math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 {
			continue
		}
		valid = append(valid, c)
	}

	ma, ok := ta.SMA(valid, MAWindow)
	if !ok {
		return 0, fmt.Errorf("ahr999 needs %d closes, have %d: %w", MAWindow, len(valid), domain.ErrInsufficientData)
	}
	fair := FairValue(AgeDays(now, origin))
	if ma <= 0 || fair <= 0 {
		return 0, fmt.Errorf("ahr999 non-positive inputs ma200=%f fair=%f: %w", ma, fair, domain.ErrParse)
	}

	price := valid[len(valid)-1]
	return ta.Round((price/ma)*(price/fair), 4), nil
}
