package opentelemetry

import (
	"context"

	"github.com/autoqa/autoqa/config"
	"github.com/autoqa/autoqa/pkg/constants"
	"github.com/autoqa/autoqa/pkg/lumber"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// InitTracer configures the global tracer provider to export spans to the
// configured otel collector and returns the cleanup function.
func InitTracer(ctx context.Context, cfg *config.Config, logger lumber.Logger) func(context.Context) error {
	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(
		otlptracegrpc.WithEndpoint(cfg.Tracing.OtelEndpoint),
		otlptracegrpc.WithInsecure(),
	))
	if err != nil {
		logger.Errorf("failed to create otel exporter, endpoint %s, error: %v", cfg.Tracing.OtelEndpoint, err)
		return func(context.Context) error { return nil }
	}

	resources := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(constants.ServiceName),
		semconv.DeploymentEnvironmentKey.String(cfg.Env),
	)
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resources),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	logger.Infof("Tracer initialized, exporting to %s", cfg.Tracing.OtelEndpoint)
	return tracerProvider.Shutdown
}
