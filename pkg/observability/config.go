// Package observability provides structured logging with trace correlation,
// OpenTelemetry tracing, and computation metrics for statkit.
package observability

import (
	"io"
	"log/slog"
	"os"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	// defaultServiceName is the default OTel service name.
	defaultServiceName = "statkit"

	// defaultShutdownTimeoutSec is the default shutdown timeout in seconds.
	defaultShutdownTimeoutSec = 5
)

// Config holds all observability configuration.
type Config struct {
	// ServiceName is the OTel resource service name.
	ServiceName string

	// ServiceVersion is the semantic version of the running binary.
	ServiceVersion string

	// Command names the CLI command being run. It is attached to every log record.
	Command string

	// LogLevel controls the minimum slog severity.
	LogLevel slog.Level

	// LogJSON enables JSON-formatted log output.
	LogJSON bool

	// LogOutput receives log records. Nil means stderr.
	LogOutput io.Writer

	// Metrics backs the meter with a Prometheus registry. When false the
	// meter is a no-op and Providers.Prometheus is nil.
	Metrics bool

	// ShutdownTimeoutSec is the maximum seconds to wait for flush on shutdown.
	ShutdownTimeoutSec int

	// OTLPEndpoint is the gRPC collector address for traces and metrics.
	// Empty disables OTLP export.
	OTLPEndpoint string

	// OTLPInsecure disables TLS for the OTLP connection.
	OTLPInsecure bool

	// OTLPHeaders are sent with every OTLP export request.
	OTLPHeaders map[string]string

	// SpanProcessors receive every finished span in addition to the OTLP exporter.
	SpanProcessors []sdktrace.SpanProcessor
}

// DefaultConfig returns a Config with sensible defaults for zero-config startup.
func DefaultConfig() Config {
	return Config{
		ServiceName:        defaultServiceName,
		LogLevel:           slog.LevelInfo,
		LogOutput:          os.Stderr,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
