package tracing

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultServiceName = "market-pulse"
	defaultEndpoint    = "localhost:4317"
	serviceVersion     = "1.0.0"
)

var newTraceExporter = func(ctx context.Context, endpoint string, insecure bool) (sdktrace.SpanExporter, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	return otlptracegrpc.New(ctx, opts...)
}

// exportSettings is read from the environment:
// TRACING_ENABLED, OTEL_EXPORTER_OTLP_ENDPOINT, OTEL_EXPORTER_OTLP_INSECURE
// and TRACING_SAMPLE_RATIO.
type exportSettings struct {
	enabled  bool
	endpoint string
	insecure bool
	ratio    float64
}

func settingsFromEnv() exportSettings {
	s := exportSettings{
		enabled:  envBool("TRACING_ENABLED", false),
		endpoint: strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		insecure: envBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		ratio:    1,
	}
	if s.endpoint == "" {
		s.endpoint = defaultEndpoint
	}
	if raw := strings.TrimSpace(os.Getenv("TRACING_SAMPLE_RATIO")); raw != "" {
		if r, err := strconv.ParseFloat(raw, 64); err == nil && r >= 0 && r <= 1 {
			s.ratio = r
		}
	}
	return s
}

func (s exportSettings) sampler() sdktrace.Sampler {
	if s.ratio >= 1 {
		return sdktrace.ParentBased(sdktrace.AlwaysSample())
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.ratio))
}

// InitTracer installs the global tracer provider for serviceName. Spans stay
// in-process unless TRACING_ENABLED=true, in which case they are batched to an
// OTLP gRPC collector.
func InitTracer(ctx context.Context, serviceName string) (*sdktrace.TracerProvider, trace.Tracer, error) {
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	settings := settingsFromEnv()
	if !settings.enabled {
		tp := sdktrace.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp, tp.Tracer(serviceName), nil
	}

	exporter, err := newTraceExporter(ctx, settings.endpoint, settings.insecure)
	if err != nil {
		return nil, nil, fmt.Errorf("create otlp exporter for %s: %w", settings.endpoint, err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("build trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(settings.sampler()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp, tp.Tracer(serviceName), nil
}

func envBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}
