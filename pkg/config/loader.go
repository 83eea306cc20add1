package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional configuration file looked up in the
// configuration directory.
const ConfigFileName = "webhook.yaml"

// WebhookYAMLConfig represents the complete webhook.yaml file structure.
// Every section is optional.
type WebhookYAMLConfig struct {
	HTTP     *HTTPConfig         `yaml:"http"`
	Receiver *ReceiverYAMLConfig `yaml:"receiver"`
	Log      *LogConfig          `yaml:"log"`
	Metrics  *MetricsYAMLConfig  `yaml:"metrics"`
}

// ReceiverYAMLConfig holds receiver settings from YAML. Booleans are
// pointers so an explicit false can be told apart from an omitted key.
type ReceiverYAMLConfig struct {
	RequireContentLength *bool `yaml:"require_content_length,omitempty"`
	MaxBodyBytes         int64 `yaml:"max_body_bytes,omitempty"`
}

// MetricsYAMLConfig holds metrics settings from YAML.
type MetricsYAMLConfig struct {
	Enabled *bool             `yaml:"enabled,omitempty"`
	Labels  map[string]string `yaml:"labels,omitempty"`
}

// Initialize loads, validates, and returns ready-to-use configuration.
//
// Steps performed:
//  1. Start from built-in defaults
//  2. Load webhook.yaml from configDir if present, expanding {{.VAR}} references
//  3. Merge YAML values over the defaults
//  4. Apply HTTP_PORT, LOG_LEVEL and LOG_FORMAT environment overrides
//  5. Validate
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("Initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	applyEnvOverrides(cfg, os.Getenv)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Info("Configuration initialized successfully",
		"port", cfg.HTTP.Port,
		"require_content_length", cfg.Receiver.RequireContentLength,
		"max_body_bytes", cfg.Receiver.MaxBodyBytes,
		"metrics_enabled", cfg.Metrics.Enabled)

	return cfg, nil
}

func load(_ context.Context, configDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.configDir = configDir

	yamlCfg, err := loadYAML(filepath.Join(configDir, ConfigFileName))
	if err != nil {
		return nil, NewLoadError(ConfigFileName, err)
	}
	if yamlCfg == nil {
		slog.Info("No configuration file found, using built-in defaults",
			"file", ConfigFileName, "config_dir", configDir)
		return cfg, nil
	}

	if err := merge(cfg, yamlCfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadYAML returns nil without error when the file does not exist.
func loadYAML(path string) (*WebhookYAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	data = ExpandEnv(data)

	var yamlCfg WebhookYAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return &yamlCfg, nil
}

// merge applies user YAML on top of defaults (non-zero values override).
func merge(cfg *Config, y *WebhookYAMLConfig) error {
	if y.HTTP != nil {
		if err := mergo.Merge(cfg.HTTP, y.HTTP, mergo.WithOverride); err != nil {
			return fmt.Errorf("failed to merge http config: %w", err)
		}
	}
	if y.Log != nil {
		if err := mergo.Merge(cfg.Log, y.Log, mergo.WithOverride); err != nil {
			return fmt.Errorf("failed to merge log config: %w", err)
		}
	}
	if y.Receiver != nil {
		if y.Receiver.RequireContentLength != nil {
			cfg.Receiver.RequireContentLength = *y.Receiver.RequireContentLength
		}
		if y.Receiver.MaxBodyBytes != 0 {
			cfg.Receiver.MaxBodyBytes = y.Receiver.MaxBodyBytes
		}
	}
	if y.Metrics != nil {
		if y.Metrics.Enabled != nil {
			cfg.Metrics.Enabled = *y.Metrics.Enabled
		}
		for name, value := range y.Metrics.Labels {
			cfg.Metrics.Labels[name] = value
		}
	}
	return nil
}

// applyEnvOverrides lets the deployment environment win over the file,
// matching how the receiver has always been configured in test harnesses.
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("HTTP_PORT"); v != "" {
		cfg.HTTP.Port = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func validate(cfg *Config) error {
	validator := NewValidator(cfg)
	return validator.ValidateAll()
}
