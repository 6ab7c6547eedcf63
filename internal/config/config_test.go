package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "empty config",
			config: Config{},
		},
		{
			name: "valid config",
			config: Config{
				OutputFormat: "json",
				DefaultFrom:  "markdown",
				DefaultTo:    "html",
				Sanitize:     true,
				LogLevel:     "debug",
			},
		},
		{
			name:    "invalid output format",
			config:  Config{OutputFormat: "xml"},
			wantErr: true,
			errMsg:  `output_format must be one of: table, json, plain (got "xml")`,
		},
		{
			name:    "invalid source format",
			config:  Config{DefaultFrom: "docx"},
			wantErr: true,
			errMsg:  "default_from must be one of",
		},
		{
			name:    "invalid log level",
			config:  Config{LogLevel: "verbose"},
			wantErr: true,
			errMsg:  "log_level must be one of: debug, info, warn, error",
		},
		{
			name:    "all errors are reported",
			config:  Config{OutputFormat: "xml", DefaultTo: "pdf"},
			wantErr: true,
			errMsg:  "; default_to must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Run("loads all env vars", func(t *testing.T) {
		t.Setenv("RTDOC_OUTPUT_FORMAT", "plain")
		t.Setenv("RTDOC_DEFAULT_FROM", "markdown")
		t.Setenv("RTDOC_DEFAULT_TO", "json")
		t.Setenv("RTDOC_SANITIZE", "true")
		t.Setenv("RTDOC_LOG_LEVEL", "warn")

		cfg := &Config{}
		cfg.LoadFromEnv()

		assert.Equal(t, "plain", cfg.OutputFormat)
		assert.Equal(t, "markdown", cfg.DefaultFrom)
		assert.Equal(t, "json", cfg.DefaultTo)
		assert.True(t, cfg.Sanitize)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("env vars override existing values", func(t *testing.T) {
		t.Setenv("RTDOC_OUTPUT_FORMAT", "json")
		t.Setenv("RTDOC_SANITIZE", "")
		t.Setenv("RTDOC_LOG_LEVEL", "")
		t.Setenv("LOG_LEVEL", "")

		cfg := &Config{OutputFormat: "table", Sanitize: true, LogLevel: "info"}
		cfg.LoadFromEnv()

		// Output format should be overridden
		assert.Equal(t, "json", cfg.OutputFormat)
		// Empty env vars don't override
		assert.True(t, cfg.Sanitize)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("unparsable sanitize is ignored", func(t *testing.T) {
		t.Setenv("RTDOC_SANITIZE", "sometimes")

		cfg := &Config{Sanitize: true}
		cfg.LoadFromEnv()
		assert.True(t, cfg.Sanitize)
	})

	t.Run("generic log level is a fallback", func(t *testing.T) {
		t.Setenv("RTDOC_LOG_LEVEL", "")
		t.Setenv("LOG_LEVEL", "error")

		cfg := &Config{}
		cfg.LoadFromEnv()
		assert.Equal(t, "error", cfg.LogLevel)

		t.Setenv("RTDOC_LOG_LEVEL", "debug")
		cfg.LoadFromEnv()
		assert.Equal(t, "debug", cfg.LogLevel)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	path := DefaultConfigPath()

	// Should be under home directory
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, home))
	assert.Contains(t, path, "rtdoc")
	assert.True(t, filepath.Ext(path) == ".yml" || filepath.Ext(path) == ".yaml")
}

func TestDefaultConfigPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "rtdoc", "config.yml"), DefaultConfigPath())
}

func TestConfig_Save_and_Load(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yml")

	original := Config{
		OutputFormat: "json",
		DefaultFrom:  "markdown",
		DefaultTo:    "html",
		Sanitize:     true,
		LogLevel:     "debug",
	}

	err := original.Save(configPath)
	require.NoError(t, err)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, original, *loaded)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yml")
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("output_format: [json"), 0600))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Setenv("RTDOC_OUTPUT_FORMAT", "plain")

	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.OutputFormat)
}

func TestGetEnvWithFallback(t *testing.T) {
	t.Run("returns primary when set", func(t *testing.T) {
		t.Setenv("TEST_PRIMARY", "primary-value")
		t.Setenv("TEST_FALLBACK", "fallback-value")
		assert.Equal(t, "primary-value", getEnvWithFallback("TEST_PRIMARY", "TEST_FALLBACK"))
	})

	t.Run("returns fallback when primary empty", func(t *testing.T) {
		t.Setenv("TEST_PRIMARY", "")
		t.Setenv("TEST_FALLBACK", "fallback-value")
		assert.Equal(t, "fallback-value", getEnvWithFallback("TEST_PRIMARY", "TEST_FALLBACK"))
	})

	t.Run("returns empty when both empty", func(t *testing.T) {
		t.Setenv("TEST_PRIMARY", "")
		t.Setenv("TEST_FALLBACK", "")
		assert.Equal(t, "", getEnvWithFallback("TEST_PRIMARY", "TEST_FALLBACK"))
	})
}
