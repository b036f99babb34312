// Package telemetry sets up tracing and metrics shared by the client and the
// stand-in server.
//
// Tracing exports over OTLP/gRPC only when OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Metrics are Prometheus collectors on a per-instance registry; the stand-in
// server exposes its registry on /metrics.
package telemetry
