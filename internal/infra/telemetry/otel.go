package telemetry

import (
	"context"
	"log/slog"

	"condo-reservations/internal/pkg/config"
	"condo-reservations/internal/pkg/errs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Tracer interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
}

type otelImpl struct {
	provider oteltrace.TracerProvider
}

func (o *otelImpl) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := o.provider.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

// NewTracer builds an OTLP/gRPC exporting tracer. With telemetry disabled the
// tracer is a no-op and shutdown does nothing.
func NewTracer(ctx context.Context, cfg config.TelemetryConfig) (Tracer, func(context.Context) error, error) {
	if !cfg.Enabled {
		return NewNoopTracer(), func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, nil, errs.Wrap(err, "create OTLP exporter")
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.ServiceName),
		)),
	)

	// Set tracer provider global
	otel.SetTracerProvider(provider)
	slog.Info("OpenTelemetry tracing enabled", "endpoint", cfg.Endpoint, "service", cfg.ServiceName)

	return &otelImpl{provider: provider}, provider.Shutdown, nil
}

func NewNoopTracer() Tracer {
	return &otelImpl{provider: noop.NewTracerProvider()}
}
