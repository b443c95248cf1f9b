// Package config loads furlong settings from .furlong.yaml, FURLONG_* env
// vars and command-line flags through viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// ErrInvalidConfig indicates a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// MaxPrecision bounds the number of decimals a result may be printed with.
const MaxPrecision = 15

// WatchConfig holds settings for catalog hot reload.
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	// Events is an optional JSONL file receiving one record per reload.
	Events string `mapstructure:"events"`
}

// Config holds all runtime configuration for a furlong invocation.
// Values are populated from .furlong.yaml, FURLONG_* env vars, and CLI flags.
type Config struct {
	Catalog     string      `mapstructure:"catalog"`
	Precision   int         `mapstructure:"precision"`
	Epsilon     float64     `mapstructure:"epsilon"`
	StrictExact bool        `mapstructure:"strict_exact"`
	Locale      string      `mapstructure:"locale"`
	Verbose     bool        `mapstructure:"verbose"`
	Watch       WatchConfig `mapstructure:"watch"`
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("catalog", "")
	viper.SetDefault("precision", 2)
	viper.SetDefault("epsilon", 1e-4)
	viper.SetDefault("strict_exact", false)
	viper.SetDefault("locale", "")
	viper.SetDefault("verbose", false)
	viper.SetDefault("watch.debounce", 100*time.Millisecond)
	viper.SetDefault("watch.events", "")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// Validate reports every out-of-range value, joined into one error.
func (c Config) Validate() error {
	var errs []error
	if c.Precision < 0 || c.Precision > MaxPrecision {
		errs = append(errs, fmt.Errorf("%w: precision must be between 0 and %d, got %d",
			ErrInvalidConfig, MaxPrecision, c.Precision))
	}
	if c.Epsilon < 0 {
		errs = append(errs, fmt.Errorf("%w: epsilon must be >= 0, got %g", ErrInvalidConfig, c.Epsilon))
	}
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			errs = append(errs, fmt.Errorf("%w: locale %q: %v", ErrInvalidConfig, c.Locale, err))
		}
	}
	if c.Watch.Debounce <= 0 {
		errs = append(errs, fmt.Errorf("%w: watch.debounce must be positive, got %s", ErrInvalidConfig, c.Watch.Debounce))
	}
	return errors.Join(errs...)
}
