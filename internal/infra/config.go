package infra

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration of the console and the import tool.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Feed      FeedConfig      `mapstructure:"feed"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr is host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig points at the PostgreSQL instance holding imported datasets.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
	MinConns int32  `mapstructure:"min_conns"`
}

// RedisConfig is used by the live feed (Pub/Sub).
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig enables RS256 bearer checks on the briefing routes when a key is set.
type AuthConfig struct {
	PublicKeyPath string        `mapstructure:"public_key_path"`
	Issuer        string        `mapstructure:"issuer"`
	Leeway        time.Duration `mapstructure:"leeway"`
	PublicKey     []byte
}

// Enabled reports whether a public key was supplied.
func (a AuthConfig) Enabled() bool { return len(a.PublicKey) > 0 }

// GeneratorConfig tunes the synthetic telemetry.
type GeneratorConfig struct {
	Seed                uint64 `mapstructure:"seed"` // 0 draws a fresh seed per request
	EventCount          int    `mapstructure:"event_count"`
	MaxEventCount       int    `mapstructure:"max_event_count"`
	ChronologicalEvents bool   `mapstructure:"chronological_events"`
}

// FeedConfig controls the snapshot broadcaster.
type FeedConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	RateLimit float64       `mapstructure:"rate_limit"` // publishes per second
	Burst     int           `mapstructure:"burst"`
}

type DatasetConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggerConfig configures zap.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`  // debug, info, warn, error
	Format     string `mapstructure:"format"` // json, console
	File       string `mapstructure:"file"`   // optional, rotated by lumberjack
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoadConfig merges config.yaml (if present), environment and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	// SERVER_PORT=9000 overrides server.port
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// no file: env and defaults only
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	key, err := loadKeyResource(cfg.Auth.PublicKeyPath, "AUTH_PUBLIC_KEY_DATA")
	if err != nil {
		return nil, err
	}
	cfg.Auth.PublicKey = key

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 15)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.public_key_path", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.leeway", 30*time.Second)
	v.SetDefault("generator.seed", 0)
	v.SetDefault("generator.event_count", 8)
	v.SetDefault("generator.max_event_count", 500)
	v.SetDefault("generator.chronological_events", false)
	v.SetDefault("feed.enabled", false)
	v.SetDefault("feed.interval", 5*time.Second)
	v.SetDefault("feed.rate_limit", 10.0)
	v.SetDefault("feed.burst", 5)
	v.SetDefault("dataset.dir", "data/raw/kdd_cup_1999")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size_mb", 100)
	v.SetDefault("logger.max_backups", 10)
	v.SetDefault("logger.max_age_days", 30)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Generator.EventCount < 0 {
		return fmt.Errorf("config: generator.event_count must not be negative")
	}
	if c.Generator.MaxEventCount < c.Generator.EventCount {
		return fmt.Errorf("config: generator.max_event_count (%d) is below generator.event_count (%d)",
			c.Generator.MaxEventCount, c.Generator.EventCount)
	}
	if c.Feed.Enabled && c.Feed.Interval <= 0 {
		return fmt.Errorf("config: feed.interval must be positive when the feed is enabled")
	}
	if c.Auth.Leeway < 0 {
		return fmt.Errorf("config: auth.leeway must not be negative")
	}
	return nil
}

// loadKeyResource prefers PEM data from the environment (Docker/K8s secrets)
// over the file at path. A configured path that cannot be read is an error:
// the briefing guard must not silently turn off.
func loadKeyResource(path string, envDataKey string) ([]byte, error) {
	if data := os.Getenv(envDataKey); data != "" {
		return []byte(data), nil
	}
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read auth.public_key_path: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("config: auth.public_key_path %s is empty", path)
	}
	return data, nil
}
