// Package config loads gradplan settings from an optional YAML file and
// GRADPLAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/alexanderramin/gradplan/internal/cache"
	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/alexanderramin/gradplan/internal/logging"
	"github.com/alexanderramin/gradplan/internal/planner"
)

type Config struct {
	DBPath  string            `mapstructure:"db_path" yaml:"db_path"`
	Log     logging.LogConfig `mapstructure:"log" yaml:"log"`
	LLM     LLMConfig         `mapstructure:"llm" yaml:"llm"`
	Planner PlannerConfig     `mapstructure:"planner" yaml:"planner"`
	Server  ServerConfig      `mapstructure:"server" yaml:"server"`
	Redis   cache.RedisConfig `mapstructure:"redis" yaml:"redis"`
	Catalog CatalogConfig     `mapstructure:"catalog" yaml:"catalog"`
}

// LLMConfig is the file/env shape of the text-generation settings.
// TaskTimeoutsMs overrides the per-task timeout, keyed by task name.
type LLMConfig struct {
	Enabled        bool           `mapstructure:"enabled" yaml:"enabled"`
	LogCalls       bool           `mapstructure:"log_calls" yaml:"log_calls"`
	Endpoint       string         `mapstructure:"endpoint" yaml:"endpoint"`
	Model          string         `mapstructure:"model" yaml:"model"`
	TimeoutMs      int            `mapstructure:"timeout_ms" yaml:"timeout_ms"`
	MaxRetries     int            `mapstructure:"max_retries" yaml:"max_retries"`
	RetryBackoffMs int            `mapstructure:"retry_backoff_ms" yaml:"retry_backoff_ms"`
	TaskTimeoutsMs map[string]int `mapstructure:"task_timeouts_ms" yaml:"task_timeouts_ms"`
}

type PlannerConfig struct {
	MinLeadDays  int  `mapstructure:"min_lead_days" yaml:"min_lead_days"`
	BufferDays   int  `mapstructure:"buffer_days" yaml:"buffer_days"`
	FallbackDays int  `mapstructure:"fallback_days" yaml:"fallback_days"`
	UseGenerator bool `mapstructure:"use_generator" yaml:"use_generator"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	Mode string `mapstructure:"mode" yaml:"mode"`
}

// CatalogConfig points at a program catalog file. An empty Path selects the
// built-in catalog.
type CatalogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Watch bool   `mapstructure:"watch" yaml:"watch"`
}

// RedisEnabled reports whether a Redis address was configured. Without one
// the in-process requirements cache is used.
func (c *Config) RedisEnabled() bool {
	return strings.TrimSpace(c.Redis.Addr) != ""
}

// Policy converts the planner section into a scheduling policy.
func (c *Config) Policy() planner.Policy {
	return planner.Policy{
		MinLeadDays:  c.Planner.MinLeadDays,
		BufferDays:   c.Planner.BufferDays,
		FallbackDays: c.Planner.FallbackDays,
	}
}

// LLMClientConfig overlays the configured values on llm.DefaultConfig so
// per-task temperatures and token limits keep their defaults.
func (c *Config) LLMClientConfig() llm.LLMConfig {
	out := llm.DefaultConfig()
	out.Enabled = c.LLM.Enabled
	out.LogCalls = c.LLM.LogCalls
	if c.LLM.Endpoint != "" {
		out.Endpoint = c.LLM.Endpoint
	}
	if c.LLM.Model != "" {
		out.Model = c.LLM.Model
	}
	if c.LLM.TimeoutMs > 0 {
		out.TimeoutMs = c.LLM.TimeoutMs
	}
	if c.LLM.MaxRetries >= 0 {
		out.MaxRetries = c.LLM.MaxRetries
	}
	if c.LLM.RetryBackoffMs > 0 {
		out.RetryBackoffMs = c.LLM.RetryBackoffMs
	}
	for name, ms := range c.LLM.TaskTimeoutsMs {
		out = out.WithTaskTimeout(llm.TaskType(strings.ToLower(name)), ms)
	}
	return out
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validServerModes = map[string]bool{"debug": true, "release": true, "test": true}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}
	if f := strings.ToLower(c.Log.Format); f != "json" && f != "console" {
		errs = append(errs, fmt.Errorf("log.format %q must be json or console", c.Log.Format))
	}
	if c.LLM.Enabled && strings.TrimSpace(c.LLM.Endpoint) == "" {
		errs = append(errs, errors.New("llm.endpoint is required when llm.enabled is true"))
	}
	if c.LLM.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("llm.max_retries must be >= 0, got %d", c.LLM.MaxRetries))
	}
	for name := range c.LLM.TaskTimeoutsMs {
		if !knownTask(name) {
			errs = append(errs, fmt.Errorf("llm.task_timeouts_ms: unknown task %q", name))
		}
	}
	if c.Planner.MinLeadDays < 1 {
		errs = append(errs, fmt.Errorf("planner.min_lead_days must be positive, got %d", c.Planner.MinLeadDays))
	}
	if c.Planner.BufferDays < planner.MinBufferDays {
		errs = append(errs, fmt.Errorf("planner.buffer_days must be >= %d, got %d", planner.MinBufferDays, c.Planner.BufferDays))
	}
	if c.Planner.FallbackDays < 1 {
		errs = append(errs, fmt.Errorf("planner.fallback_days must be positive, got %d", c.Planner.FallbackDays))
	}
	if _, _, err := net.SplitHostPort(c.Server.Addr); err != nil {
		errs = append(errs, fmt.Errorf("server.addr %q: %w", c.Server.Addr, err))
	}
	if !validServerModes[c.Server.Mode] {
		errs = append(errs, fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode))
	}
	if c.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("redis.db must be >= 0, got %d", c.Redis.DB))
	}
	if c.Redis.TTL < time.Second {
		errs = append(errs, fmt.Errorf("redis.ttl must be at least 1s, got %s", c.Redis.TTL))
	}
	if c.Catalog.Watch && strings.TrimSpace(c.Catalog.Path) == "" {
		errs = append(errs, errors.New("catalog.watch requires catalog.path"))
	}
	return errors.Join(errs...)
}

func knownTask(name string) bool {
	for _, t := range llm.AllTasks {
		if string(t) == strings.ToLower(name) {
			return true
		}
	}
	return false
}
