// Package telemetry provides OpenTelemetry instrumentation for Honeycomb.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "tileworld"
	serviceVersion = "0.1.0"
)

// instanceID distinguishes concurrent runs in the same dataset.
var instanceID = uuid.NewString()

// InstanceID returns the identifier reported as service.instance.id.
func InstanceID() string {
	return instanceID
}

// Setup installs a global tracer provider that batches spans to an OTLP HTTP
// endpoint taken from OTEL_EXPORTER_OTLP_ENDPOINT and
// OTEL_EXPORTER_OTLP_HEADERS. The returned function flushes pending spans.
func Setup(ctx context.Context) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	// resource.Default() is left out; its schema URL conflicts with these attributes.
	res, err := resource.New(ctx, resource.WithAttributes(Attributes()...))
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Attributes returns the resource attributes describing this process.
func Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("service.instance.id", instanceID),
		attribute.String("telemetry.sdk.language", "go"),
		attribute.String("telemetry.sdk.name", "opentelemetry"),
		attribute.String("host.name", getHostname()),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.name", "go"),
		attribute.String("process.runtime.version", runtime.Version()),
	}
}

// Tracer returns the tracer for a package, e.g. "world" or "sim".
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// NoopTracer returns a tracer whose spans are never recorded.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
