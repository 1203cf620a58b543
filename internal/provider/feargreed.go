package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"market-pulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const fearGreedBaseURL = "https://api.alternative.me"

type FearGreedPoint struct {
	Value          int
	Classification string
	Timestamp      time.Time
}

type FearGreedProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
}

func NewFearGreedProvider(tracer trace.Tracer, timeout time.Duration) *FearGreedProvider {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &FearGreedProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: fearGreedBaseURL,
		tracer:  tracer,
	}
}

func (p *FearGreedProvider) FetchLatest(ctx context.Context) (*FearGreedPoint, error) {
	_, span := p.tracer.Start(ctx, "feargreed.fetch-latest")
	defer span.End()

	url := strings.TrimRight(p.baseURL, "/") + "/fng/?limit=1"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fear & greed request: %w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fear & greed API error %d: %s: %w", resp.StatusCode, string(body), domain.ErrNetwork)
	}

	var payload struct {
		Data []struct {
			Value          string `json:"value"`
			Classification string `json:"value_classification"`
			Timestamp      string `json:"timestamp"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode fear & greed response: %w: %w", domain.ErrParse, err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("fear & greed response has no rows: %w", domain.ErrParse)
	}

	row := payload.Data[0]
	value, err := strconv.Atoi(strings.TrimSpace(row.Value))
	if err != nil {
		return nil, fmt.Errorf("parse fear & greed value: %w: %w", domain.ErrParse, err)
	}
	if value < 0 || value > 100 {
		return nil, fmt.Errorf("fear & greed value %d out of range: %w", value, domain.ErrParse)
	}

	// The timestamp is informational; a malformed one does not void the reading.
	var ts time.Time
	if sec, err := strconv.ParseInt(strings.TrimSpace(row.Timestamp), 10, 64); err == nil {
		if sec > 1_000_000_000_000 {
			sec = sec / 1000
		}
		ts = time.Unix(sec, 0).UTC()
	}

	return &FearGreedPoint{
		Value:          value,
		Classification: strings.TrimSpace(row.Classification),
		Timestamp:      ts,
	}, nil
}
