// Package observability wires OpenTelemetry tracing and log export plus the zap logger.
package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/backoffice/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// ShutdownFunc flushes and stops an exporter pipeline.
type ShutdownFunc func(context.Context) error

func newResource() (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("resource.Merge: %w", err)
	}

	return res, nil
}

// SetupLoggingSDK installs a global OTLP logger provider for the otelzap bridge.
func SetupLoggingSDK(ctx context.Context, cfg *config.Config) (ShutdownFunc, error) {
	res, err := newResource()
	if err != nil {
		return nil, err
	}

	exporter, err := otlploghttp.New(ctx,
		otlploghttp.WithEndpoint(cfg.OtelEndpoint),
		otlploghttp.WithURLPath(config.LogsPath),
		otlploghttp.WithHeaders(map[string]string{"Authorization": cfg.OtelAuthHeader}),
	)
	if err != nil {
		return nil, fmt.Errorf("otlploghttp.New: %w", err)
	}

	processor := sdklog.NewBatchProcessor(exporter,
		sdklog.WithExportTimeout(config.ExportTimeout),
		sdklog.WithMaxQueueSize(config.MaxQueueSize),
	)

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(processor),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(provider)

	return provider.Shutdown, nil
}

// SetupTracingSDK installs a global tracer provider exporting over OTLP/HTTP.
// The returned provider is also handed to the traced Kafka writers.
func SetupTracingSDK(ctx context.Context, cfg *config.Config) (*sdktrace.TracerProvider, ShutdownFunc, error) {
	res, err := newResource()
	if err != nil {
		return nil, nil, err
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.OtelEndpoint),
		otlptracehttp.WithURLPath(config.TracesPath),
		otlptracehttp.WithHeaders(map[string]string{"Authorization": cfg.OtelAuthHeader}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("otlptracehttp.New: %w", err)
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter,
		sdktrace.WithExportTimeout(config.ExportTimeout),
		sdktrace.WithMaxQueueSize(config.MaxQueueSize),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(processor),
	)
	otel.SetTracerProvider(provider)

	return provider, provider.Shutdown, nil
}

// JoinShutdown runs every non-nil func and joins their errors.
func JoinShutdown(fns ...ShutdownFunc) ShutdownFunc {
	return func(ctx context.Context) error {
		var err error
		for _, fn := range fns {
			if fn != nil {
				err = errors.Join(err, fn(ctx))
			}
		}
		return err
	}
}
