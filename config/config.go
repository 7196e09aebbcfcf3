package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/portfolio/cache"
	"github.com/rustyeddy/portfolio/internal/logger"
	"github.com/rustyeddy/portfolio/source"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvCacheTTL     = "PORTFOLIO_CACHE_TTL"
	EnvCacheMaxSize = "PORTFOLIO_CACHE_MAX_SIZE"
	EnvLogLevel     = "PORTFOLIO_LOG_LEVEL"
	EnvTracing      = "PORTFOLIO_TRACING"
)

// Config represents the complete engine configuration
type Config struct {
	Sources []source.Source `json:"sources" yaml:"sources"`
	Cache   CacheConfig     `json:"cache" yaml:"cache"`
	Log     LogConfig       `json:"log" yaml:"log"`
	Tracing TracingConfig   `json:"tracing" yaml:"tracing"`
	Export  ExportConfig    `json:"export" yaml:"export"`
}

// CacheConfig bounds the query cache
type CacheConfig struct {
	TTLSeconds int `json:"ttl_seconds" yaml:"ttl_seconds"`
	MaxSize    int `json:"max_size" yaml:"max_size"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

type TracingConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

// ExportConfig contains the defaults for the export command
type ExportConfig struct {
	Format     string `json:"format" yaml:"format"` // "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// TTL is the cache freshness window.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// Options turns the settings into cache options.
func (c CacheConfig) Options() []cache.Option {
	return []cache.Option{cache.WithTTL(c.TTL()), cache.WithMaxSize(c.MaxSize)}
}

// LoadFromFile loads configuration from a file, trying YAML then JSON.
// Relative source paths are taken relative to the file's directory.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = &Config{}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	cfg.fillDefaults()

	base := filepath.Dir(path)
	for i, s := range cfg.Sources {
		if s.Path != "" && !filepath.IsAbs(s.Path) {
			cfg.Sources[i].Path = filepath.Join(base, s.Path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths, JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	labels := map[string]bool{}
	for i, s := range c.Sources {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("sources[%d]: %w", i, err)
		}
		if labels[s.Label()] {
			return fmt.Errorf("sources[%d]: duplicate label %q", i, s.Label())
		}
		labels[s.Label()] = true
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache.ttl_seconds must be positive")
	}
	if c.Cache.MaxSize <= 0 {
		return fmt.Errorf("cache.max_size must be positive")
	}
	if c.Log.Level != "" && !logger.Valid(c.Log.Level) {
		return fmt.Errorf("log.level %q is not a known level", c.Log.Level)
	}
	switch c.Export.Format {
	case "", "csv", "sqlite":
	default:
		return fmt.Errorf("export.format must be 'csv' or 'sqlite'")
	}
	return nil
}

// Registry builds a source registry from the configured sources.
func (c *Config) Registry() *source.Registry {
	return source.NewRegistry(c.Sources...)
}

// ApplyEnv loads envFile (skipped when it does not exist) into the process
// environment without overriding it, then applies the PORTFOLIO_* overrides.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if v, ok := os.LookupEnv(EnvCacheTTL); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheTTL, err)
		}
		c.Cache.TTLSeconds = n
	}
	if v, ok := os.LookupEnv(EnvCacheMaxSize); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCacheMaxSize, err)
		}
		c.Cache.MaxSize = n
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Log.Level = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvTracing); ok {
		on, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTracing, err)
		}
		c.Tracing.Enabled = on
	}
	return nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Cache.TTLSeconds == 0 {
		c.Cache.TTLSeconds = d.Cache.TTLSeconds
	}
	if c.Cache.MaxSize == 0 {
		c.Cache.MaxSize = d.Cache.MaxSize
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Sources: []source.Source{},
		Cache: CacheConfig{
			TTLSeconds: int(cache.DefaultTTL / time.Second),
			MaxSize:    cache.DefaultMaxSize,
		},
		Log: LogConfig{Level: "info"},
		Export: ExportConfig{
			Format:     "csv",
			TradesFile: "./trades.csv",
			EquityFile: "./equity.csv",
			DBPath:     "./portfolio.db",
		},
	}
}

// Example is the config written by "config init".
func Example() *Config {
	cfg := Default()
	cfg.Sources = []source.Source{
		{Name: "MT4-Live", Path: "./data/mt4", Enabled: true, Delimiter: ";"},
		{Name: "MT5-Demo", Path: "./data/mt5", Enabled: false},
	}
	return cfg
}
