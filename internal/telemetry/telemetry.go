// Copyright 2025 Joseph Cumines

// Package telemetry records tool invocations as OpenTelemetry metrics and
// spans, and optionally exports both over OTLP/HTTP.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName scopes the meter and tracer.
const InstrumentationName = "github.com/joeycumines/things-mcp"

// Observer records one metric point and one span per tool invocation.
type Observer struct {
	tracer trace.Tracer

	invocations metric.Int64Counter
	failures    metric.Int64Counter
	latency     metric.Float64Histogram
}

// NewObserver creates an observer bound to the provided meter/tracer.
func NewObserver(meter metric.Meter, tracer trace.Tracer) (*Observer, error) {
	invocations, err := meter.Int64Counter(
		"things_mcp.tool.invocations",
		metric.WithDescription("Number of tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter(
		"things_mcp.tool.failures",
		metric.WithDescription("Number of failed tool invocations"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram(
		"things_mcp.tool.latency",
		metric.WithDescription("Tool latency in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Observer{
		tracer:      tracer,
		invocations: invocations,
		failures:    failures,
		latency:     latency,
	}, nil
}

// NewGlobalObserver binds an observer to the global providers.
func NewGlobalObserver() (*Observer, error) {
	return NewObserver(
		otel.GetMeterProvider().Meter(InstrumentationName),
		otel.GetTracerProvider().Tracer(InstrumentationName),
	)
}

// Invocation is the outcome of one tool call.
type Invocation struct {
	Tool     string
	Duration time.Duration
	// ErrorKind is empty on success.
	ErrorKind string
}

// Start opens the span for a tool call. The returned context carries it.
// Without a tracer the span is a no-op, never the caller's span.
func (o *Observer) Start(ctx context.Context, tool string) (context.Context, trace.Span) {
	if o == nil || o.tracer == nil {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return o.tracer.Start(ctx, "tool.call", trace.WithAttributes(attribute.String("tool_name", tool)))
}

// Observe records inv and ends span.
func (o *Observer) Observe(ctx context.Context, span trace.Span, inv Invocation) {
	if o == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("tool_name", inv.Tool),
		attribute.Bool("success", inv.ErrorKind == ""),
	}
	if inv.ErrorKind != "" {
		attrs = append(attrs, attribute.String("error_kind", inv.ErrorKind))
	}

	options := metric.WithAttributes(attrs...)
	o.invocations.Add(ctx, 1, options)
	o.latency.Record(ctx, inv.Duration.Seconds(), options)
	if inv.ErrorKind != "" {
		o.failures.Add(ctx, 1, options)
	}

	if span == nil {
		return
	}
	span.SetAttributes(attrs...)
	if inv.ErrorKind != "" {
		span.SetStatus(codes.Error, inv.ErrorKind)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Setup installs global tracer and meter providers exporting to endpoint
// over OTLP/HTTP. With an empty endpoint it does nothing. The returned
// shutdown flushes pending spans and metrics.
func Setup(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	shutdownTracing, err := SetupTracing(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	shutdownMetrics, err := SetupMetrics(ctx, endpoint)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, err
	}
	return func(ctx context.Context) error {
		return errors.Join(shutdownMetrics(ctx), shutdownTracing(ctx))
	}, nil
}

// signalURL appends the OTLP signal path to a base endpoint without a path,
// as with OTEL_EXPORTER_OTLP_ENDPOINT.
func signalURL(endpoint, signalPath string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid OTLP endpoint %q: %w", endpoint, err)
	}
	if strings.Trim(u.Path, "/") == "" {
		u.Path = signalPath
	}
	return u.String(), nil
}

// SetupTracing installs a global tracer provider exporting to endpoint over
// OTLP/HTTP. A base URL without a path is sent to /v1/traces. With an empty
// endpoint it does nothing. The returned shutdown flushes pending spans.
func SetupTracing(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	target, err := signalURL(endpoint, "/v1/traces")
	if err != nil {
		return nil, err
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(target))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// SetupMetrics installs a global meter provider periodically exporting to
// endpoint over OTLP/HTTP. A base URL without a path is sent to /v1/metrics.
// With an empty endpoint it does nothing. The returned shutdown exports a
// final collection.
func SetupMetrics(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	target, err := signalURL(endpoint, "/v1/metrics")
	if err != nil {
		return nil, err
	}

	exporter, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpointURL(target))
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}
