package signal

// Thresholds holds every cut-off used by Evaluate.
type Thresholds struct {
	BTCWatchDrop      float64
	BTCAccumulateDrop float64

	ETFSellPremium float64
	ETFBuyCeiling  float64

	FearMax  int
	GreedMin int

	VIXExtremeFear float64
	VIXHighFear    float64
	VIXCalmMax     float64

	AHRExtremeUnder float64
	AHRUnder        float64
	AHRNeutral      float64
	AHROver         float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		BTCWatchDrop:      -20,
		BTCAccumulateDrop: -50,
		ETFSellPremium:    10,
		ETFBuyCeiling:     2,
		FearMax:           10,
		GreedMin:          85,
		VIXExtremeFear:    40,
		VIXHighFear:       30,
		VIXCalmMax:        10,
		AHRExtremeUnder:   0.45,
		AHRUnder:          0.8,
		AHRNeutral:        1.2,
		AHROver:           2.0,
	}
}

type PremiumBand int

const (
	PremiumNone PremiumBand = iota
	PremiumBuy
	PremiumWait
	PremiumSell
)

// ClassifyPremium partitions premiums into [10,inf) sell, (2,10) wait,
// [0,2] buy and anything negative into no band.
func ClassifyPremium(premium float64, th Thresholds) PremiumBand {
	switch {
	case premium >= th.ETFSellPremium:
		return PremiumSell
	case premium > th.ETFBuyCeiling:
		return PremiumWait
	case premium >= 0:
		return PremiumBuy
	default:
		return PremiumNone
	}
}

type SentimentBand int

const (
	SentimentExtremeFear SentimentBand = iota
	SentimentNormal
	SentimentExtremeGreed
)

// ClassifySentiment assigns 85 to extreme greed so the bands never overlap.
func ClassifySentiment(value int, th Thresholds) SentimentBand {
	switch {
	case value <= th.FearMax:
		return SentimentExtremeFear
	case value >= th.GreedMin:
		return SentimentExtremeGreed
	default:
		return SentimentNormal
	}
}

type VolatilityBand int

const (
	VolatilityExtremeFear VolatilityBand = iota
	VolatilityHighFear
	VolatilityNormal
	VolatilityExtremeCalm
)

func ClassifyVolatility(vix float64, th Thresholds) VolatilityBand {
	switch {
	case vix >= th.VIXExtremeFear:
		return VolatilityExtremeFear
	case vix >= th.VIXHighFear:
		return VolatilityHighFear
	case vix > th.VIXCalmMax:
		return VolatilityNormal
	default:
		return VolatilityExtremeCalm
	}
}

type ValuationBand int

const (
	ValuationExtremeUnder ValuationBand = iota
	ValuationUnder
	ValuationNeutral
	ValuationOver
	ValuationExtremeOver
)

// ClassifyValuation uses lower-inclusive bands.
func ClassifyValuation(ahr float64, th Thresholds) ValuationBand {
	switch {
	case ahr < th.AHRExtremeUnder:
		return ValuationExtremeUnder
	case ahr < th.AHRUnder:
		return ValuationUnder
	case ahr < th.AHRNeutral:
		return ValuationNeutral
	case ahr < th.AHROver:
		return ValuationOver
	default:
		return ValuationExtremeOver
	}
}
