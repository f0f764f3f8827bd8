package feeds

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the upstream endpoints and client behavior for the Chicago
// feeds. It loads from TOML so deployments can point at mirrors or adjust
// limits without a rebuild.
type Config struct {
	// ClerkBaseURL is the City Clerk legislation API root.
	ClerkBaseURL string `toml:"clerk_base_url"`

	// DataBaseURL is the open-data portal root serving the Socrata
	// resources.
	DataBaseURL string `toml:"data_base_url"`

	// UserAgent is sent on every request.
	UserAgent string `toml:"user_agent"`

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// RequestsPerSecond throttles outbound requests.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// DefaultLimit is used when a fetch does not specify its own limit.
	DefaultLimit int `toml:"default_limit"`
}

// Socrata resource IDs on the Chicago open-data portal.
const (
	resourcePermits     = "ydr8-5enu"
	resourceLicenses    = "uupf-x98q"
	resourceMeetings    = "7c8c-9w7x"
	resourceInspections = "4ijn-s7e5"
	resourceViolations  = "22u3-xenr"
)

// DefaultConfig returns the production Chicago endpoints.
func DefaultConfig() *Config {
	return &Config{
		ClerkBaseURL:      "https://api.chicityclerkelms.chicago.gov",
		DataBaseURL:       "https://data.cityofchicago.org",
		UserAgent:         "Chicago Legal Document Platform/1.0",
		TimeoutSeconds:    30,
		RequestsPerSecond: 2,
		DefaultLimit:      100,
	}
}

// LoadConfig reads a TOML config file, filling unset fields from defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for usable values.
func (c *Config) Validate() error {
	if c.ClerkBaseURL == "" {
		return fmt.Errorf("%w: clerk_base_url is required", ErrInvalidConfig)
	}
	if c.DataBaseURL == "" {
		return fmt.Errorf("%w: data_base_url is required", ErrInvalidConfig)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: timeout_seconds must be positive", ErrInvalidConfig)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("%w: requests_per_second must be positive", ErrInvalidConfig)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("%w: default_limit must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
