package service

import (
	"context"
	"time"

	"market-pulse/internal/domain"
	"market-pulse/internal/notify"
	"market-pulse/internal/signal"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type MetricCollector interface {
	Collect(ctx context.Context, now time.Time) (domain.MetricSnapshot, domain.ETFPremiums)
}

type Deliverer interface {
	Deliver(ctx context.Context, msg notify.Message) int
}

// DigestService runs one collect, evaluate, format and push cycle.
type DigestService struct {
	tracer     trace.Tracer
	collector  MetricCollector
	notifier   Deliverer
	thresholds signal.Thresholds
	loc        *time.Location
	now        func() time.Time
}

func NewDigestService(
	tracer trace.Tracer,
	collector MetricCollector,
	notifier Deliverer,
	loc *time.Location,
) *DigestService {
	if loc == nil {
		loc = time.UTC
	}
	return &DigestService{
		tracer:     tracer,
		collector:  collector,
		notifier:   notifier,
		thresholds: signal.DefaultThresholds(),
		loc:        loc,
		now:        time.Now,
	}
}

// Build collects metrics and renders the digest without pushing it.
func (s *DigestService) Build(ctx context.Context) domain.Digest {
	ctx, span := s.tracer.Start(ctx, "digest-service.build")
	defer span.End()

	now := s.now().In(s.loc)
	snap, premiums := s.collector.Collect(ctx, now)
	d := domain.Digest{
		GeneratedAt: now,
		Snapshot:    snap,
		Premiums:    premiums,
		Signals:     signal.Evaluate(snap, premiums, s.thresholds),
	}
	msg := notify.Format(d, s.loc)
	d.Title = msg.Title
	d.Body = msg.Body

	span.SetAttributes(attribute.Int("digest.signals", len(d.Signals)))
	return d
}

// Run builds the digest and pushes it. Push failures never fail the run.
func (s *DigestService) Run(ctx context.Context) domain.Digest {
	ctx, span := s.tracer.Start(ctx, "digest-service.run")
	defer span.End()

	d := s.Build(ctx)
	log.WithFields(log.Fields{
		"signals": len(d.Signals),
	}).Infof("%s\n%s", d.Title, d.Body)

	if s.notifier == nil {
		return d
	}
	delivered := s.notifier.Deliver(ctx, notify.Message{Title: d.Title, Body: d.Body})
	span.SetAttributes(attribute.Int("digest.delivered", delivered))
	return d
}
