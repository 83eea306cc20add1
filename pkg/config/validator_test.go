package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAll(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *Config)
		wantErr   error
		wantField string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:      "empty port",
			mutate:    func(cfg *Config) { cfg.HTTP.Port = "" },
			wantErr:   ErrMissingRequiredField,
			wantField: "port",
		},
		{
			name:      "non-numeric port",
			mutate:    func(cfg *Config) { cfg.HTTP.Port = "http" },
			wantErr:   ErrInvalidValue,
			wantField: "port",
		},
		{
			name:      "port out of range",
			mutate:    func(cfg *Config) { cfg.HTTP.Port = "70000" },
			wantErr:   ErrInvalidValue,
			wantField: "port",
		},
		{
			name:      "zero read header timeout",
			mutate:    func(cfg *Config) { cfg.HTTP.ReadHeaderTimeout = 0 },
			wantErr:   ErrInvalidValue,
			wantField: "read_header_timeout",
		},
		{
			name:      "negative shutdown timeout",
			mutate:    func(cfg *Config) { cfg.HTTP.ShutdownTimeout = -1 },
			wantErr:   ErrInvalidValue,
			wantField: "shutdown_timeout",
		},
		{
			name:      "zero body limit",
			mutate:    func(cfg *Config) { cfg.Receiver.MaxBodyBytes = 0 },
			wantErr:   ErrInvalidValue,
			wantField: "max_body_bytes",
		},
		{
			name:      "unknown log level",
			mutate:    func(cfg *Config) { cfg.Log.Level = "verbose" },
			wantErr:   ErrInvalidValue,
			wantField: "level",
		},
		{name: "upper-case log level", mutate: func(cfg *Config) { cfg.Log.Level = "WARN" }},
		{
			name:      "unknown log format",
			mutate:    func(cfg *Config) { cfg.Log.Format = "logfmt" },
			wantErr:   ErrInvalidValue,
			wantField: "format",
		},
		{
			name:      "invalid metric label",
			mutate:    func(cfg *Config) { cfg.Metrics.Labels["bad-name"] = "x" },
			wantErr:   ErrInvalidValue,
			wantField: "labels",
		},
		{
			name:      "reserved metric label",
			mutate:    func(cfg *Config) { cfg.Metrics.Labels["__name__"] = "x" },
			wantErr:   ErrInvalidValue,
			wantField: "labels",
		},
		{
			name:      "metric label clashing with request kind",
			mutate:    func(cfg *Config) { cfg.Metrics.Labels["kind"] = "x" },
			wantErr:   ErrInvalidValue,
			wantField: "labels",
		},
		{
			name:      "metric label clashing with histogram bucket",
			mutate:    func(cfg *Config) { cfg.Metrics.Labels["le"] = "x" },
			wantErr:   ErrInvalidValue,
			wantField: "labels",
		},
		{name: "valid metric label", mutate: func(cfg *Config) { cfg.Metrics.Labels["cluster"] = "e2e" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := NewValidator(cfg).ValidateAll()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			var validErr *ValidationError
			require.ErrorAs(t, err, &validErr)
			assert.Equal(t, tt.wantField, validErr.Field)
		})
	}
}
