package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Host        string
	Port        int
	Environment string
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// heatmap
	SnapshotCacheSizeMB           int      `toml:"snapshot_cache_size_mb"`
	SnapshotCacheTTLSeconds       int      `toml:"snapshot_cache_ttl_seconds"`
	HeatmapRateLimitAllowedPerMin int      `toml:"heatmap_rate_limit_allowed_per_min"`
	AllowedOrigins                []string `toml:"allowed_origins"`
	MCPEnabled                    bool     `toml:"mcp_enabled"`
}

func (c *Config) SnapshotCacheTTL() time.Duration {
	return time.Duration(c.SnapshotCacheTTLSeconds) * time.Second
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the config of the given env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.SnapshotCacheSizeMB <= 0 {
		cfg.SnapshotCacheSizeMB = 32
	}
	if cfg.SnapshotCacheTTLSeconds <= 0 {
		cfg.SnapshotCacheTTLSeconds = 600
	}
	if cfg.HeatmapRateLimitAllowedPerMin <= 0 {
		cfg.HeatmapRateLimitAllowedPerMin = 120
	}
}

// Secrets are never kept in the config file, only in the env.
type Secrets struct {
	PostgresPassword string `env:"METCONS_POSTGRES_PASS"`
	RedisPassword    string `env:"METCONS_REDIS_PASS"`
	SentryDSN        string `env:"SENTRY_DSN"`
	HoneycombEnabled bool   `env:"HONEYCOMB_ENABLED, default=false"`
	HoneycombAPIKey  string `env:"HONEYCOMB_API_KEY"`
}

func LoadSecrets(ctx context.Context) (*Secrets, error) {
	var s Secrets
	if err := envconfig.Process(ctx, &s); err != nil {
		return nil, fmt.Errorf("process env secrets: %w", err)
	}
	return &s, nil
}
