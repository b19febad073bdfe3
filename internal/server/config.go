package server

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/helmward/helmboard/pkg/layout"
)

// Backend names accepted in the store and cache config sections.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"

	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// Config is the server configuration, loaded from a TOML file.
type Config struct {
	// ListenAddr is the HTTP listen address (host:port).
	ListenAddr string `toml:"listen_addr"`

	// PollInterval is how often the poller takes a fresh snapshot.
	PollInterval duration `toml:"poll_interval"`

	Canvas CanvasConfig `toml:"canvas"`
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
}

// CanvasConfig controls the layout viewport.
type CanvasConfig struct {
	Width   float64 `toml:"width"`
	Height  float64 `toml:"height"`
	Padding float64 `toml:"padding"`
}

// StoreConfig selects and configures the record store backend.
type StoreConfig struct {
	// Backend is "memory" or "mongo".
	Backend string `toml:"backend"`

	// Fixture is a JSON records file loaded into the memory backend.
	Fixture string `toml:"fixture"`

	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// CacheConfig selects and configures the view cache backend.
type CacheConfig struct {
	// Backend is "none", "file", or "redis".
	Backend string `toml:"backend"`

	// Dir is the file cache directory (file backend only).
	Dir string `toml:"dir"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// duration wraps time.Duration so TOML values can be written as "5s", "1m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// DefaultConfig returns a config with all defaults applied: memory store,
// no cache, standard canvas, 5 second polling on localhost:8080.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:   "localhost:8080",
		PollInterval: duration{5 * time.Second},
		Canvas: CanvasConfig{
			Width:  layout.DefaultCanvasWidth,
			Height: layout.DefaultCanvasHeight,
		},
		Store: StoreConfig{Backend: StoreMemory},
		Cache: CacheConfig{Backend: CacheNone},
	}
}

// LoadConfig reads a TOML config file and applies defaults for any field
// the file leaves unset.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend names and required backend-specific fields.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("store.mongo_uri is required for the mongo backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q (must be %q or %q)",
			c.Store.Backend, StoreMemory, StoreMongo)
	}

	switch c.Cache.Backend {
	case CacheNone:
	case CacheFile:
		if c.Cache.Dir == "" {
			return fmt.Errorf("cache.dir is required for the file backend")
		}
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache backend %q (must be %q, %q, or %q)",
			c.Cache.Backend, CacheNone, CacheFile, CacheRedis)
	}

	if c.PollInterval.Duration <= 0 {
		return fmt.Errorf("poll_interval must be positive")
	}
	return nil
}
