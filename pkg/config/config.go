// Package config loads JSONLens settings from a TOML file.
//
// The file lives at ~/.config/jsonlens/config.toml (or under
// $XDG_CONFIG_HOME when set). Every field has a default, so a missing
// file is not an error. Command-line flags override file values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jsonlens/pkg/errors"
)

// Config holds all JSONLens settings.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
	Serve  ServeConfig  `toml:"serve"`
}

// CacheConfig controls the analysis cache.
type CacheConfig struct {
	// Enabled toggles caching globally. Defaults to true.
	Enabled bool `toml:"enabled"`

	// Dir overrides the cache directory. Empty means the XDG default.
	Dir string `toml:"dir"`

	// TTL is the entry lifetime. Zero means entries never expire.
	TTL duration `toml:"ttl"`

	// RedisURL switches the backend to Redis when set
	// (e.g. redis://localhost:6379/0).
	RedisURL string `toml:"redis_url"`
}

// RenderConfig controls tree output.
type RenderConfig struct {
	// MaxValueLen truncates primitive values in text output.
	MaxValueLen int `toml:"max_value_len"`

	// MaxDepth limits rendered depth. Zero means unlimited.
	MaxDepth int `toml:"max_depth"`
}

// ServeConfig controls the HTTP server.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// MongoURL enables persistent document storage when set.
	MongoURL string `toml:"mongo_url"`

	// MaxBodyBytes caps uploaded document size.
	MaxBodyBytes int64 `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Enabled: true,
			TTL:     duration(24 * time.Hour),
		},
		Render: RenderConfig{
			MaxValueLen: 60,
		},
		Serve: ServeConfig{
			Addr:         ":8080",
			MaxBodyBytes: 10 << 20,
		},
	}
}

// Load reads the config file at path, applying defaults for absent
// fields. A missing file returns the defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %q", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %q", path)
	}
	return cfg, nil
}

// LoadDefault reads the config from the standard location.
func LoadDefault() (Config, error) {
	return Load(DefaultPath())
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "jsonlens", "config.toml")
}

// duration wraps time.Duration so TOML files can use "1h30m" strings.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// Duration converts to the standard type.
func (d duration) Duration() time.Duration {
	return time.Duration(d)
}
