package config

import (
	"context"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Environment variables of the metrics export.
const (
	EnvMetricsEndpoint = "CATALOG_OTLP_METRICS_ENDPOINT"
	EnvMetricsInterval = "CATALOG_OTLP_METRICS_INTERVAL"
)

const (
	serviceName            = "lending-catalog"
	defaultMetricsInterval = 10 * time.Second
)

// MetricsEndpoint returns the OTLP gRPC endpoint (host:port) metrics are exported to,
// or an empty string if metrics are not exported.
func MetricsEndpoint() string {
	return strings.TrimSpace(os.Getenv(EnvMetricsEndpoint))
}

// MetricsInterval returns the export interval, or 10s if it is not set or invalid.
func MetricsInterval() time.Duration {
	interval, err := time.ParseDuration(getenvOr(EnvMetricsInterval, ""))
	if err != nil || interval <= 0 {
		return defaultMetricsInterval
	}

	return interval
}

// NewMeterProvider creates a MeterProvider that periodically pushes to the OTLP collector at MetricsEndpoint.
// It returns nil without an error if no endpoint is configured.
// The caller owns the provider and must shut it down to flush the last measurements.
func NewMeterProvider(ctx context.Context) (*metric.MeterProvider, error) {
	endpoint := MetricsEndpoint()
	if endpoint == "" {
		return nil, nil //nolint:nilnil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, err
	}

	exporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	return metric.NewMeterProvider(
		metric.WithReader(metric.NewPeriodicReader(exporter, metric.WithInterval(MetricsInterval()))),
		metric.WithResource(res),
	), nil
}
