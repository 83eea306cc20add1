// Package config loads the webhook receiver's configuration from an
// optional webhook.yaml, environment overrides, and built-in defaults.
package config

import "time"

// Config is the resolved, validated configuration.
type Config struct {
	configDir string

	HTTP     *HTTPConfig
	Receiver *ReceiverConfig
	Log      *LogConfig
	Metrics  *MetricsConfig
}

// ConfigDir returns the directory the configuration was loaded from.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// HTTPConfig controls the listener.
type HTTPConfig struct {
	// Port the receiver listens on, on all interfaces.
	Port string `yaml:"port"`

	// ReadHeaderTimeout bounds how long a client may take to send headers.
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`

	// ShutdownTimeout bounds graceful shutdown after SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr returns the listen address for Port.
func (h *HTTPConfig) Addr() string {
	return ":" + h.Port
}

// ReceiverConfig controls how POST bodies are handled.
type ReceiverConfig struct {
	// RequireContentLength makes a JSON POST without a Content-Length
	// header print the "not an alert" line instead of reading the body.
	// Disabling it reproduces the unguarded receiver, which reads whatever
	// body the transport delivers.
	RequireContentLength bool

	// MaxBodyBytes caps how much of a body is read. Larger payloads are
	// logged and dropped.
	MaxBodyBytes int64
}

// LogConfig controls diagnostic logging (stderr). The alert stream on
// stdout is not affected.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// MetricsConfig controls the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool
	// Labels are appended to every exported metric.
	Labels map[string]string
}
