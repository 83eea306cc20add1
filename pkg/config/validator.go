package config

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var metricLabelName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// usedMetricLabels are label names the exported metrics already carry:
// the receiver's request kind, histogram and summary buckets, and go_info.
// A constant label with one of these names would duplicate it.
var usedMetricLabels = []string{"kind", "le", "quantile", "version"}

// ConfigValidator validates configuration with clear error messages
type ConfigValidator struct {
	cfg *Config
}

// NewValidator creates a validator for the given configuration
func NewValidator(cfg *Config) *ConfigValidator {
	return &ConfigValidator{cfg: cfg}
}

// ValidateAll validates every section (fail-fast - stops at first error)
func (v *ConfigValidator) ValidateAll() error {
	if err := v.validateHTTP(); err != nil {
		return err
	}
	if err := v.validateReceiver(); err != nil {
		return err
	}
	if err := v.validateLog(); err != nil {
		return err
	}
	return v.validateMetrics()
}

func (v *ConfigValidator) validateHTTP() error {
	h := v.cfg.HTTP
	if h.Port == "" {
		return NewValidationError("http", "port", ErrMissingRequiredField)
	}
	port, err := strconv.Atoi(h.Port)
	if err != nil || port < 1 || port > 65535 {
		return NewValidationError("http", "port",
			fmt.Errorf("%w: %q is not a port number", ErrInvalidValue, h.Port))
	}
	if h.ReadHeaderTimeout <= 0 {
		return NewValidationError("http", "read_header_timeout",
			fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	if h.ShutdownTimeout <= 0 {
		return NewValidationError("http", "shutdown_timeout",
			fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	return nil
}

func (v *ConfigValidator) validateReceiver() error {
	if v.cfg.Receiver.MaxBodyBytes <= 0 {
		return NewValidationError("receiver", "max_body_bytes",
			fmt.Errorf("%w: must be positive", ErrInvalidValue))
	}
	return nil
}

func (v *ConfigValidator) validateLog() error {
	switch strings.ToLower(v.cfg.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return NewValidationError("log", "level",
			fmt.Errorf("%w: %q (expected debug, info, warn or error)", ErrInvalidValue, v.cfg.Log.Level))
	}

	switch v.cfg.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return NewValidationError("log", "format",
			fmt.Errorf("%w: %q (expected %s or %s)", ErrInvalidValue, v.cfg.Log.Format, LogFormatText, LogFormatJSON))
	}
	return nil
}

func (v *ConfigValidator) validateMetrics() error {
	for name := range v.cfg.Metrics.Labels {
		if !metricLabelName.MatchString(name) || strings.HasPrefix(name, "__") {
			return NewValidationError("metrics", "labels",
				fmt.Errorf("%w: %q is not a valid label name", ErrInvalidValue, name))
		}
		if slices.Contains(usedMetricLabels, name) {
			return NewValidationError("metrics", "labels",
				fmt.Errorf("%w: label %q is already used by exported metrics", ErrInvalidValue, name))
		}
	}
	return nil
}
