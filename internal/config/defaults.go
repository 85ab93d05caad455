package config

import (
	"os"
	"path/filepath"

	"github.com/alexanderramin/gradplan/internal/cache"
	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/alexanderramin/gradplan/internal/planner"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"

	DefaultServerAddr = "127.0.0.1:8080"
	DefaultServerMode = "release"
)

// DefaultDBPath is ~/.gradplan/gradplan.db, or gradplan.db in the working
// directory when no home directory is known.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "gradplan.db"
	}
	return filepath.Join(home, ".gradplan", "gradplan.db")
}

// Default returns a fully populated, valid configuration.
func Default() *Config {
	cfg := &Config{LLM: LLMConfig{MaxRetries: llm.DefaultConfig().MaxRetries}}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-value fields. Booleans and counts where zero is
// meaningful (llm.max_retries, redis.db) are left alone; their defaults come
// from setDefaults when the key is absent.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	llmDefaults := llm.DefaultConfig()
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = llmDefaults.Endpoint
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = llmDefaults.Model
	}
	if cfg.LLM.TimeoutMs == 0 {
		cfg.LLM.TimeoutMs = llmDefaults.TimeoutMs
	}
	if cfg.LLM.RetryBackoffMs == 0 {
		cfg.LLM.RetryBackoffMs = llmDefaults.RetryBackoffMs
	}

	if cfg.Planner.MinLeadDays == 0 {
		cfg.Planner.MinLeadDays = planner.DefaultMinLeadDays
	}
	if cfg.Planner.BufferDays == 0 {
		cfg.Planner.BufferDays = planner.MinBufferDays
	}
	if cfg.Planner.FallbackDays == 0 {
		cfg.Planner.FallbackDays = planner.DefaultFallbackDays
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultServerAddr
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}

	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = cache.DefaultTTL
	}
}

// setDefaults registers every key with viper. AutomaticEnv only resolves
// keys viper already knows, so env-only loading depends on this list.
func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()

	v.SetDefault("db_path", "")
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output_paths", []string{})
	v.SetDefault("log.error_output_paths", []string{})

	v.SetDefault("llm.enabled", false)
	v.SetDefault("llm.log_calls", false)
	v.SetDefault("llm.endpoint", llmDefaults.Endpoint)
	v.SetDefault("llm.model", llmDefaults.Model)
	v.SetDefault("llm.timeout_ms", llmDefaults.TimeoutMs)
	v.SetDefault("llm.max_retries", llmDefaults.MaxRetries)
	v.SetDefault("llm.retry_backoff_ms", llmDefaults.RetryBackoffMs)

	v.SetDefault("planner.min_lead_days", planner.DefaultMinLeadDays)
	v.SetDefault("planner.buffer_days", planner.MinBufferDays)
	v.SetDefault("planner.fallback_days", planner.DefaultFallbackDays)
	v.SetDefault("planner.use_generator", false)

	v.SetDefault("server.addr", DefaultServerAddr)
	v.SetDefault("server.mode", DefaultServerMode)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", cache.DefaultTTL)

	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.watch", false)
}
