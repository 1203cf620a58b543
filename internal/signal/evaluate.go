// Package signal turns a metric snapshot into ordered advisory texts.
package signal

import (
	"fmt"
	"strings"

	"market-pulse/internal/domain"
)

// Evaluate never fails; unavailable metrics simply produce no advisory.
// Order is BTC, ETF, sentiment, volatility, valuation.
func Evaluate(snap domain.MetricSnapshot, premiums domain.ETFPremiums, th Thresholds) []domain.Signal {
	var out []domain.Signal
	out = append(out, btcSignals(snap.BTC, th)...)
	out = append(out, etfSignals(premiums, th)...)
	if s, ok := sentimentSignal(snap.FearGreed, th); ok {
		out = append(out, s)
	}
	if s, ok := volatilitySignal(snap.Volatility, th); ok {
		out = append(out, s)
	}
	if s, ok := valuationSignal(snap.AHR999, th); ok {
		out = append(out, s)
	}
	return out
}

func btcSignals(dd *domain.BTCDrawdown, th Thresholds) []domain.Signal {
	if dd == nil {
		return nil
	}
	var out []domain.Signal
	if dd.PercentDrop <= th.BTCWatchDrop {
		out = append(out, domain.Signal{
			Category: domain.CategoryBTC,
			Text:     fmt.Sprintf("[BTC watch] down more than %g%% from the high: hold off or keep positions light", -th.BTCWatchDrop),
		})
	}
	if dd.PercentDrop <= th.BTCAccumulateDrop {
		out = append(out, domain.Signal{
			Category: domain.CategoryBTC,
			Text:     fmt.Sprintf("[BTC + alts accumulate] BTC is down more than %g%%: consider accumulating BTC and alt-assets", -th.BTCAccumulateDrop),
		})
	}
	return out
}

func etfSignals(premiums domain.ETFPremiums, th Thresholds) []domain.Signal {
	var sell, wait, buy []string
	for _, p := range premiums {
		if !p.Available() {
			continue
		}
		name := p.Fund.Name
		if name == "" {
			name = p.Fund.Code
		}
		switch ClassifyPremium(*p.Premium, th) {
		case PremiumSell:
			sell = append(sell, name)
		case PremiumWait:
			wait = append(wait, name)
		case PremiumBuy:
			buy = append(buy, name)
		}
	}

	var out []domain.Signal
	if len(sell) > 0 {
		out = append(out, domain.Signal{
			Category: domain.CategoryETF,
			Text:     fmt.Sprintf("[ETF sell] %s premium >= %g%%: sell or arbitrage", strings.Join(sell, ", "), th.ETFSellPremium),
		})
	}
	if len(wait) > 0 {
		out = append(out, domain.Signal{
			Category: domain.CategoryETF,
			Text:     fmt.Sprintf("[ETF wait] %s premium between %g%% and %g%%: wait", strings.Join(wait, ", "), th.ETFBuyCeiling, th.ETFSellPremium),
		})
	}
	if len(buy) > 0 {
		out = append(out, domain.Signal{
			Category: domain.CategoryETF,
			Text:     fmt.Sprintf("[ETF buy] %s premium <= %g%%: subscribe", strings.Join(buy, ", "), th.ETFBuyCeiling),
		})
	}
	return out
}

func sentimentSignal(fg *domain.FearGreed, th Thresholds) (domain.Signal, bool) {
	if fg == nil {
		return domain.Signal{}, false
	}
	var text string
	switch ClassifySentiment(fg.Value, th) {
	case SentimentExtremeFear:
		text = fmt.Sprintf("[Crypto sentiment: extreme fear] index at %d: historic bottom signal, accumulate", fg.Value)
	case SentimentExtremeGreed:
		text = fmt.Sprintf("[Crypto sentiment: extreme greed] index at %d: historic top signal, distribute", fg.Value)
	default:
		text = fmt.Sprintf("[Crypto sentiment: normal] index at %d: wait", fg.Value)
	}
	return domain.Signal{Category: domain.CategorySentiment, Text: text}, true
}

func volatilitySignal(vix *float64, th Thresholds) (domain.Signal, bool) {
	if vix == nil {
		return domain.Signal{}, false
	}
	v := *vix
	var text string
	switch ClassifyVolatility(v, th) {
	case VolatilityExtremeFear:
		text = fmt.Sprintf("[VIX extreme fear] VIX %.2f: historic bottom signal, buy", v)
	case VolatilityHighFear:
		text = fmt.Sprintf("[VIX high fear] VIX %.2f: heavy swings, hedge or wait", v)
	case VolatilityNormal:
		text = fmt.Sprintf("[VIX normal] VIX %.2f: wait", v)
	default:
		text = fmt.Sprintf("[VIX extreme calm] VIX %.2f: complacent market, pullback risk", v)
	}
	return domain.Signal{Category: domain.CategoryVolatility, Text: text}, true
}

func valuationSignal(ahr *float64, th Thresholds) (domain.Signal, bool) {
	if ahr == nil {
		return domain.Signal{}, false
	}
	v := *ahr
	var text string
	switch ClassifyValuation(v, th) {
	case ValuationExtremeUnder:
		text = fmt.Sprintf("[AHR999 extreme undervaluation] %.4f: buy heavily, historic bottom signal", v)
	case ValuationUnder:
		text = fmt.Sprintf("[AHR999 undervalued] %.4f: accumulate on a schedule", v)
	case ValuationNeutral:
		text = fmt.Sprintf("[AHR999 neutral] %.4f: hold or wait", v)
	case ValuationOver:
		text = fmt.Sprintf("[AHR999 overvalued] %.4f: take profit gradually", v)
	default:
		text = fmt.Sprintf("[AHR999 extreme overvaluation] %.4f: exit, historic top signal", v)
	}
	return domain.Signal{Category: domain.CategoryValuation, Text: text}, true
}
