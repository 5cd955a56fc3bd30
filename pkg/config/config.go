// Package config loads netdraw settings from a TOML file and the
// environment.
//
// Config file locations (priority order):
//  1. the path given with --config
//  2. $NETDRAW_CONFIG
//  3. ./netdraw.toml
//  4. $XDG_CONFIG_HOME/netdraw/config.toml (default ~/.config/netdraw/config.toml)
//
// A missing file is not an error; defaults apply. Environment variables,
// including those from an optional .env file in the working directory,
// override file values.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/netdraw/pkg/cache"
	"github.com/matzehuels/netdraw/pkg/drawio"
	errs "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/frame"
	"github.com/matzehuels/netdraw/pkg/layout"
	"github.com/matzehuels/netdraw/pkg/pipeline"
)

// Environment overrides.
const (
	EnvConfigPath    = "NETDRAW_CONFIG"
	EnvCacheDir      = "NETDRAW_CACHE_DIR"
	EnvRedisAddr     = "NETDRAW_REDIS_ADDR"
	EnvRedisPassword = "NETDRAW_REDIS_PASSWORD"
	EnvServerAddr    = "NETDRAW_SERVER_ADDR"
)

// DefaultServerAddr is the listen address of the render service.
const DefaultServerAddr = ":8080"

// DefaultRequestTimeout bounds one render request.
const DefaultRequestTimeout = 30 * time.Second

// Config is the root of the configuration file.
type Config struct {
	Layout  layout.Options `toml:"layout"`
	Frame   frame.Options  `toml:"frame"`
	Diagram drawio.Options `toml:"diagram"`
	Output  OutputConfig   `toml:"output"`
	Cache   CacheConfig    `toml:"cache"`
	Server  ServerConfig   `toml:"server"`
}

// OutputConfig selects default artifacts.
type OutputConfig struct {
	Formats  []string `toml:"formats"`
	Detailed bool     `toml:"detailed"`
}

// CacheConfig selects and configures the artifact cache. When RedisAddr is
// set the CLI and server use Redis, otherwise files under Dir.
type CacheConfig struct {
	Disabled      bool     `toml:"disabled"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP render service.
type ServerConfig struct {
	Addr    string   `toml:"addr"`
	Timeout Duration `toml:"timeout"`
	// MaxUploadBytes caps the request body size.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`
}

// DefaultMaxUploadBytes caps uploads at 10 MiB.
const DefaultMaxUploadBytes = 10 << 20

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Layout:  layout.DefaultOptions(),
		Frame:   frame.DefaultOptions(),
		Diagram: drawio.DefaultOptions(),
		Output:  OutputConfig{Formats: []string{pipeline.DefaultFormat}},
		Cache: CacheConfig{
			Prefix: cache.DefaultRedisPrefix,
			TTL:    Duration{cache.TTLDocument},
		},
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			Timeout:        Duration{DefaultRequestTimeout},
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
	}
}

// Load resolves the config file (see package doc), applies environment
// overrides and validates the result. It returns the path that was read,
// or "" when defaults were used.
func Load(explicit string) (*Config, string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, "", errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse .env")
	}

	path := explicit
	if path == "" {
		path = FindConfigPath()
	} else if !fileExists(path) {
		return nil, path, errs.New(errs.ErrCodeFileNotFound, "config file not found: %s", path)
	}

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, path, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Parse decodes TOML data over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeFileNotFound, err, "read config %s", path)
	}
	if err := c.decode(data); err != nil {
		return errs.Wrap(errs.GetCode(err), err, "config %s", path)
	}
	return nil
}

func (c *Config) decode(data []byte) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errs.New(errs.ErrCodeInvalidFormat, "unknown config key %q", undecoded[0].String())
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvCacheDir); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.Cache.RedisAddr = v
	}
	if v := os.Getenv(EnvRedisPassword); v != "" {
		c.Cache.RedisPassword = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if err := c.Frame.Validate(); err != nil {
		return err
	}
	if err := c.Diagram.Validate(); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Output.Formats); err != nil {
		return err
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidOptions, "cache ttl must not be negative")
	}
	if c.Cache.RedisDB < 0 {
		return errs.New(errs.ErrCodeInvalidOptions, "redis db must not be negative")
	}
	if c.Server.Timeout.Duration < 0 || c.Server.MaxUploadBytes < 0 {
		return errs.New(errs.ErrCodeInvalidOptions, "server timeout and upload limit must not be negative")
	}
	return nil
}

// PipelineOptions converts the file settings into pipeline options.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Layout:   c.Layout,
		Frame:    c.Frame,
		Diagram:  c.Diagram,
		Formats:  append([]string(nil), c.Output.Formats...),
		Detailed: c.Output.Detailed,
	}
}

// RedisOptions converts the cache section into Redis connection options.
func (c *Config) RedisOptions() cache.RedisOptions {
	return cache.RedisOptions{
		Addr:     c.Cache.RedisAddr,
		Password: c.Cache.RedisPassword,
		DB:       c.Cache.RedisDB,
		Prefix:   c.Cache.Prefix,
	}
}

// Encode writes c as TOML.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, errs.Wrap(errs.ErrCodeSerializationIO, err, "encode config")
	}
	return buf.Bytes(), nil
}

// Save writes c to path, creating the directory.
func (c *Config) Save(path string) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := EnsureConfigDir(path); err != nil {
		return errs.Wrap(errs.ErrCodeSerializationIO, err, "create config dir")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errs.Wrap(errs.ErrCodeSerializationIO, err, "write %s", path)
	}
	return nil
}
