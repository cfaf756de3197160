// Package telemetry provides OpenTelemetry initialization and helpers
// for tracing and log export across the Pantry recipe ideas service.
//
// The package configures OTLP HTTP export for traces and logs; the
// endpoint comes from OTEL_EXPORTER_OTLP_ENDPOINT.
package telemetry
