package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chromatic/pkg/cache"
	apperr "github.com/matzehuels/chromatic/pkg/errors"
	"github.com/matzehuels/chromatic/pkg/pipeline"
)

// Config is the on-disk configuration:
//
//	usage_forcing = false
//	timeout = "60s"
//	max_vertices = 1000
//
//	[cache]
//	backend = "file"        # file, redis, mongo or none
//	dir = "/var/cache/chromatic"
//	redis_addr = "localhost:6379"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "chromatic"
//	prefix = "staging:"
//	ttl = "720h"
//
//	[server]
//	addr = ":8080"
//	max_solves = 4
type Config struct {
	UsageForcing bool         `toml:"usage_forcing"`
	Timeout      Duration     `toml:"timeout"`
	MaxVertices  int          `toml:"max_vertices"`
	Cache        CacheConfig  `toml:"cache"`
	Server       ServerConfig `toml:"server"`
}

// CacheConfig selects and configures the solution cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
	Prefix        string   `toml:"prefix"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	MaxSolves int    `toml:"max_solves"`
}

// Duration is a time.Duration written as a Go duration string ("90s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Timeout: Duration{pipeline.DefaultTimeout},
		Cache: CacheConfig{
			Backend:       backendFile,
			RedisAddr:     "localhost:6379",
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: cache.DefaultMongoDatabase,
		},
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/chromatic/config.toml.
func defaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName, "config.toml"), nil
}

// LoadConfig reads path over the defaults. An empty path means the default
// location, where a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return cfg, apperr.Wrap(apperr.ErrCodeFileNotFound, err, "config %s", path)
			}
			return DefaultConfig(), nil
		}
		return cfg, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, apperr.New(apperr.ErrCodeInvalidInput, "config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendMongo, backendNone:
	default:
		return apperr.New(apperr.ErrCodeInvalidInput, "cache.backend must be file, redis, mongo or none, got %q", c.Cache.Backend)
	}
	if c.MaxVertices < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "max_vertices must not be negative, got %d", c.MaxVertices)
	}
	if c.Server.MaxSolves < 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "server.max_solves must not be negative, got %d", c.Server.MaxSolves)
	}
	if c.Timeout.Duration <= 0 {
		return apperr.New(apperr.ErrCodeInvalidInput, "timeout must be positive, got %v", c.Timeout.Duration)
	}
	if c.Cache.Backend == backendRedis && c.Cache.RedisAddr == "" {
		return apperr.New(apperr.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.Backend == backendMongo && c.Cache.MongoURI == "" {
		return apperr.New(apperr.ErrCodeInvalidInput, "cache.mongo_uri is required for the mongo backend")
	}
	return nil
}
