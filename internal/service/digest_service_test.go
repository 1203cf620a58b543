package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"market-pulse/internal/domain"
	"market-pulse/internal/notify"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type mockTracer struct{ trace.Tracer }

func (m mockTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return ctx, mockSpan{}
}

type mockSpan struct{ trace.Span }

func (m mockSpan) End(options ...trace.SpanEndOption) {}

func (m mockSpan) SetAttributes(kv ...attribute.KeyValue) {}

type stubCollector struct {
	snap     domain.MetricSnapshot
	premiums domain.ETFPremiums
	gotNow   time.Time
}

func (c *stubCollector) Collect(_ context.Context, now time.Time) (domain.MetricSnapshot, domain.ETFPremiums) {
	c.gotNow = now
	return c.snap, c.premiums
}

type stubDeliverer struct {
	messages []notify.Message
}

func (d *stubDeliverer) Deliver(_ context.Context, msg notify.Message) int {
	d.messages = append(d.messages, msg)
	return 0
}

func fixedClock() time.Time {
	return time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC)
}

func TestDigestBuildDoesNotPush(t *testing.T) {
	collector := &stubCollector{snap: domain.MetricSnapshot{FearGreed: &domain.FearGreed{Value: 5, Label: "Extreme Fear"}}}
	deliverer := &stubDeliverer{}
	svc := NewDigestService(mockTracer{}, collector, deliverer, time.FixedZone("CST", 8*3600))
	svc.now = fixedClock

	d := svc.Build(context.Background())
	if len(deliverer.messages) != 0 {
		t.Fatalf("build must not push")
	}
	if len(d.Signals) != 1 || d.Signals[0].Category != domain.CategorySentiment {
		t.Fatalf("unexpected signals: %+v", d.Signals)
	}
	if !strings.HasPrefix(d.Title, "Market signals (09:00)") {
		t.Fatalf("unexpected title: %q", d.Title)
	}
	if collector.gotNow.Hour() != 9 {
		t.Fatalf("expected collection time in the configured zone, got %v", collector.gotNow)
	}
}

func TestDigestRunPushesEvenWhenEverythingFails(t *testing.T) {
	collector := &stubCollector{premiums: domain.ETFPremiums{
		{Fund: domain.Fund{Code: "513500", Name: "博时标普500"}, Err: domain.ErrNetwork},
	}}
	deliverer := &stubDeliverer{}
	svc := NewDigestService(mockTracer{}, collector, deliverer, nil)
	svc.now = fixedClock

	d := svc.Run(context.Background())
	if len(deliverer.messages) != 1 {
		t.Fatalf("expected one push, got %d", len(deliverer.messages))
	}
	msg := deliverer.messages[0]
	if msg.Title != d.Title || msg.Body != d.Body {
		t.Fatalf("pushed message differs from digest")
	}
	if !strings.Contains(msg.Body, "no signal today") {
		t.Fatalf("expected no-signal placeholder:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Title, "BTC: fetch failed") {
		t.Fatalf("unexpected title: %q", msg.Title)
	}
}

func TestDigestRunWithoutNotifier(t *testing.T) {
	svc := NewDigestService(mockTracer{}, &stubCollector{}, nil, nil)
	svc.now = fixedClock
	if d := svc.Run(context.Background()); d.Title == "" {
		t.Fatalf("expected a rendered digest")
	}
}
