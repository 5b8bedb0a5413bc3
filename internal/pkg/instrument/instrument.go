package instrument

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Options configures the telemetry pipeline.
type Options struct {
	ServiceName    string
	ServiceVersion string
	OTLPEndpoint   string // host:port of the OTLP gRPC collector; empty disables export
	LogLevel       string // debug, info, warn, error
	MaskedKeys     []string
}

// Instrument owns the OpenTelemetry providers and the slog handler chain.
type Instrument struct {
	opts Options

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	loggerProvider *sdklog.LoggerProvider
}

// New builds the providers and installs them as the otel globals. When
// OTLPEndpoint is empty, traces and metrics stay local and logs go to
// stdout only.
func New(ctx context.Context, opts Options) (*Instrument, error) {
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName(opts.ServiceName),
		semconv.ServiceVersion(opts.ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("instrument: build resource: %w", err)
	}

	ins := &Instrument{opts: opts}

	if opts.OTLPEndpoint != "" {
		traceExp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(opts.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("instrument: trace exporter: %w", err)
		}

		metricExp, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(opts.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("instrument: metric exporter: %w", err)
		}

		logExp, err := otlploggrpc.New(ctx,
			otlploggrpc.WithEndpoint(opts.OTLPEndpoint),
			otlploggrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("instrument: log exporter: %w", err)
		}

		ins.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(traceExp),
			sdktrace.WithResource(res),
		)
		ins.meterProvider = sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
			sdkmetric.WithResource(res),
		)
		ins.loggerProvider = sdklog.NewLoggerProvider(
			sdklog.WithProcessor(sdklog.NewBatchProcessor(logExp)),
			sdklog.WithResource(res),
		)
	} else {
		ins.tracerProvider = sdktrace.NewTracerProvider(sdktrace.WithResource(res))
		ins.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithResource(res))
		ins.loggerProvider = sdklog.NewLoggerProvider(sdklog.WithResource(res))
	}

	otel.SetTracerProvider(ins.tracerProvider)
	otel.SetMeterProvider(ins.meterProvider)

	ins.setupLogging()

	return ins, nil
}

// Tracer returns a named tracer from the installed provider.
func (i *Instrument) Tracer(name string) trace.Tracer {
	return i.tracerProvider.Tracer(name)
}

// Meter returns a named meter from the installed provider.
func (i *Instrument) Meter(name string) metric.Meter {
	return i.meterProvider.Meter(name)
}

// Close flushes and shuts down every provider.
func (i *Instrument) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var firstErr error
	if err := i.tracerProvider.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := i.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := i.loggerProvider.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}
