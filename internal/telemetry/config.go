// Package telemetry provides OpenTelemetry instrumentation for warsync.
// It supports configurable metrics with an OTLP HTTP exporter.
package telemetry

const (
	// DefaultServiceName is the default service name for telemetry
	DefaultServiceName = "warsync"

	// DefaultEndpoint is the default OTLP endpoint for telemetry
	DefaultEndpoint = "localhost:4318"
)

// Config represents the telemetry configuration
type Config struct {
	// Enabled controls whether metrics export is enabled.
	// When false, a no-op meter provider is used.
	Enabled bool `yaml:"enabled"`

	// ServiceName is the name of the service for telemetry identification.
	// Defaults to "warsync" if not specified.
	ServiceName string `yaml:"serviceName,omitempty"`

	// ServiceVersion is the version of the service for telemetry identification
	ServiceVersion string `yaml:"serviceVersion,omitempty"`

	// Endpoint is the OTLP collector endpoint, "host:port" for HTTP.
	// Defaults to "localhost:4318" if not specified.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Insecure allows HTTP connections instead of HTTPS.
	// Should only be true for development/testing environments.
	Insecure bool `yaml:"insecure,omitempty"`
}

// GetServiceName returns the service name, using default if not specified
func (c *Config) GetServiceName() string {
	if c == nil || c.ServiceName == "" {
		return DefaultServiceName
	}
	return c.ServiceName
}

// GetServiceVersion returns the service version, using "unknown" if not specified
func (c *Config) GetServiceVersion() string {
	if c == nil || c.ServiceVersion == "" {
		return "unknown"
	}
	return c.ServiceVersion
}

// GetEndpoint returns the endpoint, using default if not specified
func (c *Config) GetEndpoint() string {
	if c == nil || c.Endpoint == "" {
		return DefaultEndpoint
	}
	return c.Endpoint
}

// IsEnabled reports whether metrics export is enabled
func (c *Config) IsEnabled() bool {
	return c != nil && c.Enabled
}
