package main

import (
	"context"

	// Packages
	gootel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	otlptracehttp "go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	resource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// newTracerProvider exports spans to an OTLP collector over HTTP and installs
// the provider globally. The returned function flushes and stops the exporter.
func newTracerProvider(ctx context.Context, endpoint, name string) (func(context.Context) error, error) {
	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", name),
		)),
	)
	gootel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}
