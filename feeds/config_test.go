package feeds

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://api.chicityclerkelms.chicago.gov", cfg.ClerkBaseURL)
	assert.Equal(t, "https://data.cityofchicago.org", cfg.DataBaseURL)
	assert.Equal(t, "Chicago Legal Document Platform/1.0", cfg.UserAgent)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, 100, cfg.DefaultLimit)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.toml")
	content := `
clerk_base_url = "https://clerk.example.com"
default_limit = 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://clerk.example.com", cfg.ClerkBaseURL)
	assert.Equal(t, 50, cfg.DefaultLimit)
	// Unset fields keep their defaults.
	assert.Equal(t, "https://data.cityofchicago.org", cfg.DataBaseURL)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("MalformedTOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feeds.toml")
		require.NoError(t, os.WriteFile(path, []byte(`clerk_base_url = [broken`), 0o644))

		_, err := LoadConfig(path)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("InvalidValue", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "feeds.toml")
		require.NoError(t, os.WriteFile(path, []byte(`timeout_seconds = -5`), 0o644))

		_, err := LoadConfig(path)
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"EmptyClerkURL", func(c *Config) { c.ClerkBaseURL = "" }},
		{"EmptyDataURL", func(c *Config) { c.DataBaseURL = "" }},
		{"ZeroTimeout", func(c *Config) { c.TimeoutSeconds = 0 }},
		{"ZeroRate", func(c *Config) { c.RequestsPerSecond = 0 }},
		{"ZeroLimit", func(c *Config) { c.DefaultLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.True(t, errors.Is(cfg.Validate(), ErrInvalidConfig))
		})
	}
}
