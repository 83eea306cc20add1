package config

import "time"

const (
	// DefaultPort is the port the receiver has always listened on.
	DefaultPort = "8080"

	// DefaultMaxBodyBytes caps a single webhook body at 10 MiB.
	DefaultMaxBodyBytes int64 = 10 << 20

	// LogFormatText and LogFormatJSON are the accepted log.format values.
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// DefaultHTTPConfig returns the built-in listener defaults.
func DefaultHTTPConfig() *HTTPConfig {
	return &HTTPConfig{
		Port:              DefaultPort,
		ReadHeaderTimeout: 10 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

// DefaultLogConfig returns the built-in logging defaults.
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Level:  "info",
		Format: LogFormatText,
	}
}

// DefaultConfig returns a complete configuration using only built-in
// defaults, as used when no webhook.yaml exists.
func DefaultConfig() *Config {
	return &Config{
		HTTP: DefaultHTTPConfig(),
		Receiver: &ReceiverConfig{
			RequireContentLength: true,
			MaxBodyBytes:         DefaultMaxBodyBytes,
		},
		Log: DefaultLogConfig(),
		Metrics: &MetricsConfig{
			Enabled: true,
			Labels:  map[string]string{},
		},
	}
}
