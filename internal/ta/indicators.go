package ta

import "math"

// Mean returns the arithmetic mean of values, or NaN when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SMA returns the simple moving average of the last period values.
// ok is false when there are fewer than period values.
func SMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	return Mean(values[len(values)-period:]), true
}
