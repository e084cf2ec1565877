package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/version"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName names the embedding application.
	ServiceName string
	// ServiceVersion is the application version.
	ServiceVersion string
	// Environment is the deployment environment (development, staging,
	// production).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g.
	// "localhost:4318").
	Endpoint string
	// Insecure allows plain HTTP connections, for development.
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.GetShortVersion(),
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the global OpenTelemetry meter provider.
// The returned provider must be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the metric instruments recorded by the pipeline
// decorators: run counts, active runs, per-stage operation timings, and
// errors.
type Metrics struct {
	runTotal          metric.Int64Counter
	runDuration       metric.Float64Histogram
	runActive         metric.Int64UpDownCounter
	operationTotal    metric.Int64Counter
	operationDuration metric.Float64Histogram
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runTotal, err := meter.Int64Counter("pipeline.run.total",
		metric.WithDescription("Total number of pipeline runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.run.total counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("pipeline.run.duration",
		metric.WithDescription("Duration of pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.run.duration histogram: %w", err)
	}

	runActive, err := meter.Int64UpDownCounter("pipeline.run.active",
		metric.WithDescription("Number of currently executing pipeline runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.run.active gauge: %w", err)
	}

	operationTotal, err := meter.Int64Counter("pipeline.operation.total",
		metric.WithDescription("Total number of stage executions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.operation.total counter: %w", err)
	}

	operationDuration, err := meter.Float64Histogram("pipeline.operation.duration",
		metric.WithDescription("Duration of stage executions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.operation.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("pipeline.error.total",
		metric.WithDescription("Total failures by type and component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.error.total counter: %w", err)
	}

	return &Metrics{
		runTotal:          runTotal,
		runDuration:       runDuration,
		runActive:         runActive,
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
		errorTotal:        errorTotal,
	}, nil
}

// RecordRunStart increments the active run count.
func (m *Metrics) RecordRunStart(ctx context.Context) {
	m.runActive.Add(ctx, 1)
}

// RecordRunEnd decrements active runs and records the completed run.
func (m *Metrics) RecordRunEnd(ctx context.Context, pipeline, status string, duration time.Duration) {
	m.runActive.Add(ctx, -1)
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("status", status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("pipeline", pipeline),
	))
}

// RecordOperation records one stage execution.
func (m *Metrics) RecordOperation(ctx context.Context, component, operation, status string, duration time.Duration) {
	m.operationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("component", component),
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
	m.operationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("component", component),
		attribute.String("operation", operation),
	))
}

// RecordError records a failure by type and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
