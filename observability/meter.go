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

	"github.com/kbukum/seqkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
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

	logger.Get("observability").Info("meter initialized", logger.Fields(
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

// Metrics holds the instruments recorded for instrumented sequences.
type Metrics struct {
	elements     metric.Int64Counter
	enumerations metric.Int64Counter
	duration     metric.Float64Histogram
	errors       metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	elements, err := meter.Int64Counter("seq.elements",
		metric.WithDescription("Elements yielded by instrumented sequences"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seq.elements counter: %w", err)
	}

	enumerations, err := meter.Int64Counter("seq.enumerations",
		metric.WithDescription("Finished enumerations by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seq.enumerations counter: %w", err)
	}

	duration, err := meter.Float64Histogram("seq.enumeration.duration",
		metric.WithDescription("Time from first pull to the end of an enumeration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seq.enumeration.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("seq.errors",
		metric.WithDescription("Enumerations that ended in an error, by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating seq.errors counter: %w", err)
	}

	return &Metrics{
		elements:     elements,
		enumerations: enumerations,
		duration:     duration,
		errors:       errorTotal,
	}, nil
}

// RecordEnumeration records one finished enumeration of pipeline.
func (m *Metrics) RecordEnumeration(ctx context.Context, pipeline, status string, elements int64, duration time.Duration) {
	byPipeline := metric.WithAttributes(attribute.String(AttrPipeline, pipeline))
	m.elements.Add(ctx, elements, byPipeline)
	m.enumerations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String(AttrStatus, status),
	))
	m.duration.Record(ctx, duration.Seconds(), byPipeline)
}

// RecordError records an enumeration failure by error code.
func (m *Metrics) RecordError(ctx context.Context, pipeline, code string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrPipeline, pipeline),
		attribute.String(AttrErrorCode, code),
	))
}
