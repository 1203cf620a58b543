package marketdata

import (
	"context"
	"fmt"
	"math"
	"time"

	"market-pulse/internal/domain"
	"market-pulse/internal/provider"
	"market-pulse/internal/ta"
	"market-pulse/internal/valuation"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

type KlineReader interface {
	FetchKlines(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error)
	FetchTickerPrice(ctx context.Context, symbol string) (float64, error)
}

type FearGreedReader interface {
	FetchLatest(ctx context.Context) (*provider.FearGreedPoint, error)
}

type VolatilityReader interface {
	FetchLatest(ctx context.Context) (float64, error)
}

// PremiumFetcher isolates the fund page scraping strategy.
type PremiumFetcher interface {
	FetchPremium(ctx context.Context, code string) (float64, error)
}

type Config struct {
	Symbol string
	// ATHFloor is a known historical peak used when candle history is incomplete.
	ATHFloor           float64
	MonthlyCandleLimit int
	DailyCandleLimit   int
	ValuationOrigin    time.Time
	Funds              []domain.Fund
	MaxParallelScrapes int
}

func DefaultConfig() Config {
	return Config{
		Symbol:             "BTCUSDT",
		ATHFloor:           126000,
		MonthlyCandleLimit: 1000,
		DailyCandleLimit:   valuation.SampleSize,
		ValuationOrigin:    valuation.Genesis,
		Funds:              append([]domain.Fund(nil), domain.DefaultFunds...),
		MaxParallelScrapes: 4,
	}
}

// Gateway collects every metric of a run. Each source is isolated: a failure
// is logged and reported as a nil (unavailable) value, never as an error.
type Gateway struct {
	tracer    trace.Tracer
	klines    KlineReader
	fearGreed FearGreedReader
	vix       VolatilityReader
	premiums  PremiumFetcher
	cfg       Config
}

func NewGateway(
	tracer trace.Tracer,
	klines KlineReader,
	fearGreed FearGreedReader,
	vix VolatilityReader,
	premiums PremiumFetcher,
	cfg Config,
) *Gateway {
	def := DefaultConfig()
	if cfg.Symbol == "" {
		cfg.Symbol = def.Symbol
	}
	if cfg.ATHFloor < 0 {
		cfg.ATHFloor = def.ATHFloor
	}
	if cfg.MonthlyCandleLimit <= 0 {
		cfg.MonthlyCandleLimit = def.MonthlyCandleLimit
	}
	if cfg.DailyCandleLimit <= 0 {
		cfg.DailyCandleLimit = def.DailyCandleLimit
	}
	if cfg.ValuationOrigin.IsZero() {
		cfg.ValuationOrigin = def.ValuationOrigin
	}
	if cfg.MaxParallelScrapes <= 0 {
		cfg.MaxParallelScrapes = def.MaxParallelScrapes
	}
	return &Gateway{
		tracer:    tracer,
		klines:    klines,
		fearGreed: fearGreed,
		vix:       vix,
		premiums:  premiums,
		cfg:       cfg,
	}
}

// Collect fetches all metrics concurrently and joins them before returning.
func (g *Gateway) Collect(ctx context.Context, now time.Time) (domain.MetricSnapshot, domain.ETFPremiums) {
	ctx, span := g.tracer.Start(ctx, "marketdata.collect")
	defer span.End()

	snap := domain.MetricSnapshot{TakenAt: now}
	var premiums domain.ETFPremiums

	var eg errgroup.Group
	eg.Go(func() error {
		snap.BTC = g.FetchBTCDrawdown(ctx)
		return nil
	})
	eg.Go(func() error {
		snap.FearGreed = g.FetchFearGreed(ctx)
		return nil
	})
	eg.Go(func() error {
		snap.Volatility = g.FetchVolatility(ctx)
		return nil
	})
	eg.Go(func() error {
		snap.AHR999 = g.FetchAHR999(ctx, now)
		return nil
	})
	eg.Go(func() error {
		premiums = g.FetchETFPremiums(ctx)
		return nil
	})
	_ = eg.Wait()

	return snap, premiums
}

// FetchBTCDrawdown returns the current price measured against the all-time high.
func (g *Gateway) FetchBTCDrawdown(ctx context.Context) *domain.BTCDrawdown {
	if g.klines == nil {
		return nil
	}
	candles, err := g.klines.FetchKlines(ctx, g.cfg.Symbol, domain.IntervalMonth, g.cfg.MonthlyCandleLimit)
	if err != nil {
		logUnavailable("btc_drawdown", err)
		return nil
	}
	price, err := g.klines.FetchTickerPrice(ctx, g.cfg.Symbol)
	if err != nil {
		logUnavailable("btc_drawdown", err)
		return nil
	}
	dd, err := Drawdown(price, domain.Highs(candles), g.cfg.ATHFloor)
	if err != nil {
		logUnavailable("btc_drawdown", err)
		return nil
	}
	return &dd
}

// Drawdown computes the percent drop of current from max(highs..., floor),
// rounded to 2 decimals.
func Drawdown(current float64, highs []float64, floor float64) (domain.BTCDrawdown, error) {
	if len(highs) == 0 {
		return domain.BTCDrawdown{}, fmt.Errorf("no candle highs: %w", domain.ErrInsufficientData)
	}
	if current <= 0 || math.IsNaN(current) || math.IsInf(current, 0) {
		return domain.BTCDrawdown{}, fmt.Errorf("invalid current price %f: %w", current, domain.ErrParse)
	}
	ath := floor
	for _, h := range highs {
		if h > ath {
			ath = h
		}
	}
	if ath <= 0 {
		return domain.BTCDrawdown{}, fmt.Errorf("non-positive all-time high: %w", domain.ErrParse)
	}
	return domain.BTCDrawdown{
		CurrentPrice: current,
		AllTimeHigh:  ath,
		PercentDrop:  ta.Round((current-ath)/ath*100, 2),
	}, nil
}

func (g *Gateway) FetchFearGreed(ctx context.Context) *domain.FearGreed {
	if g.fearGreed == nil {
		return nil
	}
	point, err := g.fearGreed.FetchLatest(ctx)
	if err != nil {
		logUnavailable("fear_greed", err)
		return nil
	}
	if point == nil {
		return nil
	}
	return &domain.FearGreed{Value: point.Value, Label: point.Classification}
}

// FetchVolatility returns the VIX rounded to 2 decimals.
func (g *Gateway) FetchVolatility(ctx context.Context) *float64 {
	if g.vix == nil {
		return nil
	}
	v, err := g.vix.FetchLatest(ctx)
	if err != nil {
		logUnavailable("vix", err)
		return nil
	}
	return domain.Float(ta.Round(v, 2))
}

func (g *Gateway) FetchAHR999(ctx context.Context, now time.Time) *float64 {
	if g.klines == nil {
		return nil
	}
	candles, err := g.klines.FetchKlines(ctx, g.cfg.Symbol, domain.IntervalDay, g.cfg.DailyCandleLimit)
	if err != nil {
		logUnavailable("ahr999", err)
		return nil
	}
	v, err := valuation.AHR999From(domain.Closes(candles), now, g.cfg.ValuationOrigin)
	if err != nil {
		logUnavailable("ahr999", err)
		return nil
	}
	return domain.Float(v)
}

func logUnavailable(source string, err error) {
	log.WithFields(log.Fields{
		"source": source,
		"error":  err.Error(),
	}).Warn("metric unavailable")
}
