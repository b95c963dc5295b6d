// Package config loads CLI configuration with Viper.
//
// Values come from ~/.cleanaid/config.yaml (or an explicit file) and are
// overridden by CLEANAID_* environment variables, so CLEANAID_API_URL sets
// api.url. Unset values fall back to the defaults below.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "CLEANAID"

const (
	dirName  = ".cleanaid"
	fileName = "config.yaml"
)

// Config is the resolved CLI configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Session SessionConfig `mapstructure:"session" yaml:"session"`
}

// APIConfig locates the backend.
type APIConfig struct {
	URL       string        `mapstructure:"url" yaml:"url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit" yaml:"rate_limit"`
	Burst     int           `mapstructure:"burst" yaml:"burst"`
}

// CacheConfig tunes the query cache.
type CacheConfig struct {
	StaleTime         time.Duration `mapstructure:"stale_time" yaml:"stale_time"`
	GCTime            time.Duration `mapstructure:"gc_time" yaml:"gc_time"`
	MaxInactive       int           `mapstructure:"max_inactive" yaml:"max_inactive"`
	DashboardInterval time.Duration `mapstructure:"dashboard_interval" yaml:"dashboard_interval"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// OutputConfig controls command output.
type OutputConfig struct {
	Format  string `mapstructure:"format" yaml:"format"`
	NoColor bool   `mapstructure:"no_color" yaml:"no_color"`
}

// SessionConfig locates the stored session. An empty path uses
// ~/.cleanaid/session.yaml.
type SessionConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

var defaults = map[string]any{
	"api.url":                  "",
	"api.timeout":              10 * time.Second,
	"api.rate_limit":           0.0,
	"api.burst":                0,
	"cache.stale_time":         30 * time.Second,
	"cache.gc_time":            5 * time.Minute,
	"cache.max_inactive":       500,
	"cache.dashboard_interval": 5 * time.Minute,
	"log.level":                "warn",
	"log.format":               "text",
	"output.format":            "text",
	"output.no_color":          false,
	"session.path":             "",
}

// Keys lists every known key in dot notation.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key names a known setting.
func IsKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Dir returns ~/.cleanaid.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath returns ~/.cleanaid/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads configuration from path, or the default location when path is
// empty. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case stderrors.As(err, &notFound):
		case path != "" && os.IsNotExist(err):
			return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "config file not found: "+path, err)
		default:
			return nil, errors.NewFileUnmarshalError(v.ConfigFileUsed(), "YAML", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "invalid configuration", err)
	}
	cfg.Session.Path = expandHome(cfg.Session.Path)
	return &cfg, nil
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName(strings.TrimSuffix(fileName, filepath.Ext(fileName)))
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v, nil
}

// Validate checks values that would fail later in a less obvious way.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return errors.New(errors.ErrCodeConfigInvalid,
			fmt.Sprintf("unknown output format %q", c.Output.Format)).
			WithSuggestion("Use one of: text, json, yaml")
	}
	if c.API.Timeout < 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "api.timeout must not be negative")
	}
	if c.Cache.MaxInactive < 0 {
		return errors.New(errors.ErrCodeConfigInvalid, "cache.max_inactive must not be negative")
	}
	return nil
}

// RequireAPI fails when no API URL is configured.
func (c *Config) RequireAPI() error {
	if strings.TrimSpace(c.API.URL) != "" {
		return nil
	}
	return errors.New(errors.ErrCodeConfigMissing, "no API URL configured").
		WithSuggestion("Pass --api-url, set CLEANAID_API_URL, or run: cleanaid config set api.url <url>")
}

// Save writes cfg to path as YAML, creating the directory.
func Save(cfg *Config, path string) error {
	return write(cfg.viper(), path)
}

// Get returns the value of key as it would be written to the file.
func (c *Config) Get(key string) (string, error) {
	if !IsKey(key) {
		return "", unknownKey(key)
	}
	return c.viper().GetString(key), nil
}

// viper holds cfg in a fresh instance with durations as strings.
func (c *Config) viper() *viper.Viper {
	v := viper.New()
	v.Set("api.url", c.API.URL)
	v.Set("api.timeout", c.API.Timeout.String())
	v.Set("api.rate_limit", c.API.RateLimit)
	v.Set("api.burst", c.API.Burst)
	v.Set("cache.stale_time", c.Cache.StaleTime.String())
	v.Set("cache.gc_time", c.Cache.GCTime.String())
	v.Set("cache.max_inactive", c.Cache.MaxInactive)
	v.Set("cache.dashboard_interval", c.Cache.DashboardInterval.String())
	v.Set("log.level", c.Log.Level)
	v.Set("log.format", c.Log.Format)
	v.Set("output.format", c.Output.Format)
	v.Set("output.no_color", c.Output.NoColor)
	v.Set("session.path", c.Session.Path)
	return v
}

func unknownKey(key string) error {
	return errors.New(errors.ErrCodeConfigInvalid, fmt.Sprintf("unknown configuration key %q", key)).
		WithSuggestion("Known keys: " + strings.Join(Keys(), ", "))
}

// Set updates one key in the file at path, leaving other keys as they are.
func Set(path, key, value string) error {
	if !IsKey(key) {
		return unknownKey(key)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return errors.NewFileUnmarshalError(path, "YAML", err)
		}
	}
	v.Set(key, value)

	// Decode through the typed struct so bad values are rejected before writing.
	probe := viper.New()
	for k, val := range defaults {
		probe.SetDefault(k, val)
	}
	if err := probe.MergeConfigMap(v.AllSettings()); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "invalid configuration", err)
	}
	var cfg Config
	if err := probe.Unmarshal(&cfg); err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, fmt.Sprintf("invalid value for %s", key), err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return Save(&cfg, path)
}

func write(v *viper.Viper, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to create config directory", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write config: "+path, err)
	}
	return nil
}

func expandHome(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
