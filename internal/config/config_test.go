package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// resetViper clears all viper state between tests to avoid cross-contamination.
func resetViper() {
	viper.Reset()
}

func TestLoad_Defaults(t *testing.T) {
	resetViper()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Catalog", cfg.Catalog, ""},
		{"Precision", cfg.Precision, 2},
		{"Epsilon", cfg.Epsilon, 1e-4},
		{"StrictExact", cfg.StrictExact, false},
		{"Locale", cfg.Locale, ""},
		{"Verbose", cfg.Verbose, false},
		{"Watch.Debounce", cfg.Watch.Debounce, 100 * time.Millisecond},
		{"Watch.Events", cfg.Watch.Events, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name   string
		envKey string
		envVal string
		field  func(Config) any
		want   any
	}{
		{
			name:   "catalog",
			envKey: "FURLONG_CATALOG",
			envVal: "/etc/furlong/units.toml",
			field:  func(c Config) any { return c.Catalog },
			want:   "/etc/furlong/units.toml",
		},
		{
			name:   "precision",
			envKey: "FURLONG_PRECISION",
			envVal: "5",
			field:  func(c Config) any { return c.Precision },
			want:   5,
		},
		{
			name:   "epsilon",
			envKey: "FURLONG_EPSILON",
			envVal: "0.001",
			field:  func(c Config) any { return c.Epsilon },
			want:   0.001,
		},
		{
			name:   "strict_exact",
			envKey: "FURLONG_STRICT_EXACT",
			envVal: "true",
			field:  func(c Config) any { return c.StrictExact },
			want:   true,
		},
		{
			name:   "locale",
			envKey: "FURLONG_LOCALE",
			envVal: "de-CH",
			field:  func(c Config) any { return c.Locale },
			want:   "de-CH",
		},
		{
			name:   "watch.debounce",
			envKey: "FURLONG_WATCH_DEBOUNCE",
			envVal: "250ms",
			field:  func(c Config) any { return c.Watch.Debounce },
			want:   250 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper()
			// Set env prefix so FURLONG_* env vars map to config keys.
			viper.SetEnvPrefix("FURLONG")
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
			viper.AutomaticEnv()

			t.Setenv(tt.envKey, tt.envVal)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			got := tt.field(cfg)
			if got != tt.want {
				t.Errorf("%s: got %v (%T), want %v (%T)", tt.name, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	resetViper()

	path := filepath.Join(t.TempDir(), ".furlong.yaml")
	src := "catalog: units.yaml\nprecision: 4\nwatch:\n  debounce: 1s\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Catalog != "units.yaml" || cfg.Precision != 4 || cfg.Watch.Debounce != time.Second {
		t.Errorf("Load() = %+v", cfg)
	}
	// Unset keys keep their defaults.
	if cfg.Epsilon != 1e-4 {
		t.Errorf("Epsilon = %v, want default 1e-4", cfg.Epsilon)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Precision: 2, Epsilon: 1e-4, Watch: WatchConfig{Debounce: time.Millisecond}}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"valid locale", func(c *Config) { c.Locale = "fr" }, ""},
		{"negative precision", func(c *Config) { c.Precision = -1 }, "precision"},
		{"huge precision", func(c *Config) { c.Precision = MaxPrecision + 1 }, "precision"},
		{"negative epsilon", func(c *Config) { c.Epsilon = -0.1 }, "epsilon"},
		{"bad locale", func(c *Config) { c.Locale = "!!" }, "locale"},
		{"zero debounce", func(c *Config) { c.Watch.Debounce = 0 }, "watch.debounce"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}

	multi := Config{Precision: -1, Epsilon: -1}
	if got := strings.Count(multi.Validate().Error(), "invalid configuration"); got != 3 {
		t.Errorf("Validate() reported %d problems, want 3", got)
	}
}
