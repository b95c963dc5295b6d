package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/cleanaid/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.API.URL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Cache.StaleTime)
	assert.Equal(t, 5*time.Minute, cfg.Cache.GCTime)
	assert.Equal(t, 500, cfg.Cache.MaxInactive)
	assert.Equal(t, 5*time.Minute, cfg.Cache.DashboardInterval)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "text", cfg.Output.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  url: https://file.example
  timeout: 3s
cache:
  stale_time: 1m
log:
  level: debug
`), 0o600))

	t.Setenv("CLEANAID_API_URL", "https://env.example")
	t.Setenv("CLEANAID_OUTPUT_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", cfg.API.URL, "environment overrides the file")
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, time.Minute, cfg.Cache.StaleTime)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, 500, cfg.Cache.MaxInactive)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFileReadFailed, errors.CodeOf(err))
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFileUnmarshal, errors.CodeOf(err))
}

func TestLoad_ExpandsSessionPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLEANAID_SESSION_PATH", "~/sessions/me.yaml")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "sessions", "me.yaml"), cfg.Session.Path)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Output: OutputConfig{Format: "xml"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.CodeOf(err))

	cfg = &Config{Output: OutputConfig{Format: "yaml"}, API: APIConfig{Timeout: -time.Second}}
	assert.Error(t, cfg.Validate())
}

func TestRequireAPI(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireAPI()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigMissing, errors.CodeOf(err))

	cfg.API.URL = "https://api.example"
	assert.NoError(t, cfg.RequireAPI())
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	in := &Config{
		API:    APIConfig{URL: "https://api.example", Timeout: 7 * time.Second, Burst: 2},
		Cache:  CacheConfig{StaleTime: 45 * time.Second, GCTime: time.Minute, MaxInactive: 10, DashboardInterval: time.Minute},
		Log:    LogConfig{Level: "info", Format: "json"},
		Output: OutputConfig{Format: "yaml", NoColor: true},
	}
	require.NoError(t, Save(in, path))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, Set(path, "api.url", "https://set.example"))
	require.NoError(t, Set(path, "cache.max_inactive", "42"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://set.example", cfg.API.URL)
	assert.Equal(t, 42, cfg.Cache.MaxInactive)
}

func TestSet_Rejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := Set(path, "api.nope", "x")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.CodeOf(err))

	assert.Error(t, Set(path, "cache.max_inactive", "lots"))
	assert.Error(t, Set(path, "output.format", "xml"))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "rejected values are never written")
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "api.url")
	assert.True(t, IsKey("cache.stale_time"))
	assert.False(t, IsKey("cache"))
	assert.IsIncreasing(t, keys)
}

func TestConfig_Get(t *testing.T) {
	cfg := &Config{
		API:   APIConfig{URL: "https://api.example", Timeout: 15 * time.Second},
		Cache: CacheConfig{MaxInactive: 7},
	}

	v, err := cfg.Get("api.timeout")
	require.NoError(t, err)
	assert.Equal(t, "15s", v)

	v, err = cfg.Get("cache.max_inactive")
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	_, err = cfg.Get("api")
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.CodeOf(err))
}
