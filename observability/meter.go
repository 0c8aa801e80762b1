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

	"github.com/kbukum/dime/logger"
	"github.com/kbukum/dime/version"
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
		ServiceVersion: "1.0.0",
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

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name, metric.WithInstrumentationVersion(version.Short()))
}

// Outcomes recorded on dime.resolve.total (hit, miss) and dime.mount.total
// (success, failure).
const (
	StatusHit     = "hit"
	StatusMiss    = "miss"
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics holds OpenTelemetry instruments for the registry lifecycle.
type Metrics struct {
	mountTotal         metric.Int64Counter
	mountDuration      metric.Float64Histogram
	providersInstalled metric.Int64Counter
	resolveTotal       metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	mountTotal, err := meter.Int64Counter("dime.mount.total",
		metric.WithDescription("Total number of mount operations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dime.mount.total counter: %w", err)
	}

	mountDuration, err := meter.Float64Histogram("dime.mount.duration",
		metric.WithDescription("Duration of mount operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dime.mount.duration histogram: %w", err)
	}

	providersInstalled, err := meter.Int64Counter("dime.providers.installed",
		metric.WithDescription("Providers installed into a registry by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dime.providers.installed counter: %w", err)
	}

	resolveTotal, err := meter.Int64Counter("dime.resolve.total",
		metric.WithDescription("Token resolutions by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating dime.resolve.total counter: %w", err)
	}

	return &Metrics{
		mountTotal:         mountTotal,
		mountDuration:      mountDuration,
		providersInstalled: providersInstalled,
		resolveTotal:       resolveTotal,
	}, nil
}

// DefaultMetrics creates instruments on the global meter. Instrument
// creation on the global meter does not fail in practice; if it does the
// returned Metrics is nil and recording becomes a no-op.
func DefaultMetrics() *Metrics {
	m, err := NewMetrics(Meter(instrumentationName))
	if err != nil {
		logger.Warn("dime metrics disabled", logger.ErrorFields("create_instruments", err))
		return nil
	}
	return m
}

// RecordMount records a completed mount attempt.
func (m *Metrics) RecordMount(ctx context.Context, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.mountTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStatus, status)))
	m.mountDuration.Record(ctx, duration.Seconds())
}

// RecordProvider records one provider installed into a registry.
func (m *Metrics) RecordProvider(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.providersInstalled.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordResolve records a token lookup.
func (m *Metrics) RecordResolve(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.resolveTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStatus, status)))
}
