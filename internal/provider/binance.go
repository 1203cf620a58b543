package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"market-pulse/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const binanceBaseURL = "https://api.binance.com"

// BinanceProvider reads public spot market data (klines and ticker price).
type BinanceProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewBinanceProvider(tracer trace.Tracer, timeout time.Duration) *BinanceProvider {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &BinanceProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: binanceBaseURL,
		tracer:  tracer,
	}
}

// FetchKlines returns up to limit candles, oldest first.
func (p *BinanceProvider) FetchKlines(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error) {
	ctx, span := p.tracer.Start(ctx, "binance.fetch-klines")
	defer span.End()
	span.SetAttributes(
		attribute.String("symbol", symbol),
		attribute.String("interval", interval),
		attribute.Int("limit", limit),
	)

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("limit", strconv.Itoa(limit))

	// Rows are Binance-style mixed arrays:
	// [openTime, open, high, low, close, volume, closeTime, quoteVolume, ...]
	var raw [][]json.Number
	if err := p.getJSON(ctx, "/api/v3/klines", params, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("binance klines %s %s: empty response: %w", symbol, interval, domain.ErrParse)
	}

	candles := make([]domain.Candle, 0, len(raw))
	for i, row := range raw {
		if len(row) < 6 {
			return nil, fmt.Errorf("binance kline row %d has %d fields: %w", i, len(row), domain.ErrParse)
		}
		openMs, err := row[0].Int64()
		if err != nil {
			return nil, fmt.Errorf("binance kline row %d open time: %w: %w", i, domain.ErrParse, err)
		}
		var ohlcv [5]float64
		for j := range ohlcv {
			v, err := strconv.ParseFloat(row[j+1].String(), 64)
			if err != nil {
				return nil, fmt.Errorf("binance kline row %d field %d: %w: %w", i, j+1, domain.ErrParse, err)
			}
			ohlcv[j] = v
		}
		candles = append(candles, domain.Candle{
			Symbol:   symbol,
			Interval: interval,
			OpenTime: time.UnixMilli(openMs).UTC(),
			Open:     ohlcv[0],
			High:     ohlcv[1],
			Low:      ohlcv[2],
			Close:    ohlcv[3],
			Volume:   ohlcv[4],
		})
	}
	return candles, nil
}

// FetchTickerPrice returns the latest trade price for symbol.
func (p *BinanceProvider) FetchTickerPrice(ctx context.Context, symbol string) (float64, error) {
	ctx, span := p.tracer.Start(ctx, "binance.fetch-ticker-price")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	params := url.Values{}
	params.Set("symbol", symbol)

	var payload struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := p.getJSON(ctx, "/api/v3/ticker/price", params, &payload); err != nil {
		return 0, err
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(payload.Price), 64)
	if err != nil {
		return 0, fmt.Errorf("parse binance ticker price %q: %w: %w", payload.Price, domain.ErrParse, err)
	}
	return price, nil
}

func (p *BinanceProvider) getJSON(ctx context.Context, path string, params url.Values, target any) error {
	u := strings.TrimRight(p.baseURL, "/") + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("binance %s: %w: %w", path, domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("binance API error %d: %s: %w", resp.StatusCode, string(body), domain.ErrNetwork)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("decode binance %s: %w: %w", path, domain.ErrParse, err)
	}
	return nil
}
