// Package config provides configuration management for rtdoc.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the rtdoc configuration.
type Config struct {
	OutputFormat string `yaml:"output_format,omitempty" validate:"omitempty,oneof=table json plain"`
	DefaultFrom  string `yaml:"default_from,omitempty" validate:"omitempty,oneof=html markdown json"`
	DefaultTo    string `yaml:"default_to,omitempty" validate:"omitempty,oneof=html markdown json"`
	Sanitize     bool   `yaml:"sanitize,omitempty"`
	LogLevel     string `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
}

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks that all set fields hold allowed values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s (got %q)", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: RTDOC_* → generic name → existing config value
func (c *Config) LoadFromEnv() {
	if format := os.Getenv("RTDOC_OUTPUT_FORMAT"); format != "" {
		c.OutputFormat = format
	}
	if from := os.Getenv("RTDOC_DEFAULT_FROM"); from != "" {
		c.DefaultFrom = from
	}
	if to := os.Getenv("RTDOC_DEFAULT_TO"); to != "" {
		c.DefaultTo = to
	}
	if sanitize := os.Getenv("RTDOC_SANITIZE"); sanitize != "" {
		if v, err := strconv.ParseBool(sanitize); err == nil {
			c.Sanitize = v
		}
	}
	if level := getEnvWithFallback("RTDOC_LOG_LEVEL", "LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "rtdoc", "config.yml")
	}

	// Fall back to ~/.config/rtdoc/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".rtdoc", "config.yml")
	}

	return filepath.Join(home, ".config", "rtdoc", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		// If file doesn't exist, start with empty config
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
