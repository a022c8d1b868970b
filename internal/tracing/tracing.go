// Package tracing installs the OpenTelemetry tracer provider used by the HTTP layer.
package tracing

import (
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Exporter names accepted by Setup.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// NewProvider builds a provider that batches spans into exporter.
func NewProvider(exporter sdktrace.SpanExporter, service string) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", service))),
	)
}

// Setup returns a provider for the named exporter, or nil when tracing is off.
// The stdout exporter writes JSON spans to w.
func Setup(exporter, service string, w io.Writer) (*sdktrace.TracerProvider, error) {
	switch exporter {
	case "", ExporterNone:
		return nil, nil
	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, fmt.Errorf("creating stdout exporter: %w", err)
		}

		return NewProvider(exp, service), nil
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", exporter)
	}
}
