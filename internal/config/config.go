package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dialmaster/docktui/internal/constants"
	"github.com/dialmaster/docktui/internal/domain"
)

// Config represents the top-level docktui configuration
type Config struct {
	App AppConfig `yaml:"app"`
	Log LogConfig `yaml:"log"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	// RefreshInterval is how often the container inventory refreshes, in seconds
	RefreshInterval float64 `yaml:"refresh_interval"`
}

// LogConfig holds the log streaming settings
type LogConfig struct {
	// MaxLines is the capacity of the log line buffer
	MaxLines int `yaml:"max_lines"`
	// Tail is the number of recent lines requested when a stream starts
	Tail int `yaml:"tail"`
	// Since is the relative time window for requested logs (e.g. "15m")
	Since string `yaml:"since"`
}

// Default returns a config with every default applied
func Default() *Config {
	return &Config{
		App: AppConfig{
			RefreshInterval: constants.DefaultRefreshInterval.Seconds(),
		},
		Log: LogConfig{
			MaxLines: constants.DefaultMaxLines,
			Tail:     constants.DefaultTail,
			Since:    constants.DefaultSince,
		},
	}
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("checking config file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse parses configuration from YAML bytes, applying defaults for any
// missing values
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	applyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.RefreshInterval <= 0 {
		cfg.App.RefreshInterval = constants.DefaultRefreshInterval.Seconds()
	}
	if cfg.Log.MaxLines <= 0 {
		cfg.Log.MaxLines = constants.DefaultMaxLines
	}
	if cfg.Log.Tail <= 0 {
		cfg.Log.Tail = constants.DefaultTail
	}
	if cfg.Log.Since == "" {
		cfg.Log.Since = constants.DefaultSince
	}
}

// Validate checks a parsed configuration for values the rest of the
// application cannot work with
func Validate(cfg *Config) error {
	if cfg.Log.MaxLines < 1 {
		return fmt.Errorf("%w: log.max_lines must be positive", domain.ErrInvalidConfig)
	}
	if cfg.Log.Tail < 1 {
		return fmt.Errorf("%w: log.tail must be positive", domain.ErrInvalidConfig)
	}
	return nil
}

// RefreshInterval returns the inventory refresh interval as a duration
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.App.RefreshInterval * float64(time.Second))
}
