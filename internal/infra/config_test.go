package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, ":8000", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 8, cfg.Generator.EventCount)
	assert.Equal(t, 500, cfg.Generator.MaxEventCount)
	assert.Zero(t, cfg.Generator.Seed)
	assert.False(t, cfg.Feed.Enabled)
	assert.Equal(t, "data/raw/kdd_cup_1999", cfg.Dataset.Dir)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.Auth.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Auth.Leeway)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `
server:
  port: 9100
generator:
  seed: 42
  event_count: 12
  chronological_events: true
feed:
  enabled: true
  interval: 2s
`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("SERVER_PORT", "9200")
	t.Setenv("AUTH_PUBLIC_KEY_DATA", "-----BEGIN PUBLIC KEY-----")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Server.Port, "env wins over file")
	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.Equal(t, 12, cfg.Generator.EventCount)
	assert.True(t, cfg.Generator.ChronologicalEvents)
	assert.True(t, cfg.Feed.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Feed.Interval)
	assert.True(t, cfg.Auth.Enabled())
}

func TestLoadConfig_PublicKeyPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Run("missing file fails", func(t *testing.T) {
		t.Setenv("AUTH_PUBLIC_KEY_PATH", filepath.Join(dir, "nonexistent", "jwt.pub"))

		cfg, err := LoadConfig()
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "auth.public_key_path")
	})

	t.Run("empty file fails", func(t *testing.T) {
		path := filepath.Join(dir, "empty.pub")
		require.NoError(t, os.WriteFile(path, nil, 0o600))
		t.Setenv("AUTH_PUBLIC_KEY_PATH", path)

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("readable file enables auth", func(t *testing.T) {
		path := filepath.Join(dir, "jwt.pub")
		require.NoError(t, os.WriteFile(path, []byte("-----BEGIN PUBLIC KEY-----"), 0o600))
		t.Setenv("AUTH_PUBLIC_KEY_PATH", path)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.Auth.Enabled())
	})

	t.Run("env data wins over a bad path", func(t *testing.T) {
		t.Setenv("AUTH_PUBLIC_KEY_PATH", filepath.Join(dir, "nonexistent", "jwt.pub"))
		t.Setenv("AUTH_PUBLIC_KEY_DATA", "-----BEGIN PUBLIC KEY-----")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.True(t, cfg.Auth.Enabled())
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server:    ServerConfig{Port: 8000},
			Generator: GeneratorConfig{EventCount: 8, MaxEventCount: 500},
			Feed:      FeedConfig{Interval: time.Second},
		}
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"negative events", func(c *Config) { c.Generator.EventCount = -1 }, "event_count"},
		{"max below default", func(c *Config) { c.Generator.MaxEventCount = 4 }, "max_event_count"},
		{"feed without interval", func(c *Config) { c.Feed.Enabled = true; c.Feed.Interval = 0 }, "feed.interval"},
		{"negative leeway", func(c *Config) { c.Auth.Leeway = -time.Second }, "auth.leeway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggerConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, logger)

	file := filepath.Join(t.TempDir(), "app.log")
	logger, err = NewLogger(LoggerConfig{Level: "info", Format: "json", File: file, MaxSizeMB: 1})
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)

	_, err = NewLogger(LoggerConfig{Level: "loud"})
	assert.Error(t, err)
	_, err = NewLogger(LoggerConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
