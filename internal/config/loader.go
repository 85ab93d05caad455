package config

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g. GRADPLAN_LLM_ENABLED.
const EnvPrefix = "GRADPLAN"

// newViper maps nested keys to environment variables with "." -> "_", so
// "planner.min_lead_days" resolves to GRADPLAN_PLANNER_MIN_LEAD_DAYS.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	return v
}

// Load reads the YAML file at path, applies GRADPLAN_* overrides and
// defaults, and validates the result. An empty path loads from the
// environment only.
func Load(path string) (*Config, error) {
	if path == "" {
		return LoadFromEnv()
	}
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}
	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config from GRADPLAN_* variables and defaults.
func LoadFromEnv() (*Config, error) {
	return unmarshalAndFinalize(newViper())
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Watch calls onChange with the re-read configuration each time the file at
// path changes. An edit that fails to parse or validate is logged and
// skipped, leaving the caller on its previous configuration. Only settings
// that are safe to swap at runtime should be applied by onChange.
func Watch(path string, log logging.Logger, onChange func(*Config)) error {
	if log == nil {
		log = logging.NewNopLogger()
	}
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: reading %q: %w", path, err)
	}

	v.OnConfigChange(func(ev fsnotify.Event) {
		cfg, err := unmarshalAndFinalize(v)
		if err != nil {
			log.Warn("config reload rejected", logging.String("path", ev.Name), logging.Err(err))
			return
		}
		log.Info("config reloaded", logging.String("path", ev.Name))
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}
