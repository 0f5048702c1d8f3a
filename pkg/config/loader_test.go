package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/i18nrouter/pkg/config"
)

type cachedConfig struct {
	Value string `env:"TEST_I18NROUTER_CACHED" envDefault:"default"`
}

type numericConfig struct {
	Count int `env:"TEST_I18NROUTER_COUNT,required"`
}

type fileConfig struct {
	FromFile string `env:"TEST_I18NROUTER_FILE"`
	Keep     string `env:"TEST_I18NROUTER_KEEP"`
}

func TestLoadSettings(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("I18NROUTER_CONFIG", "/etc/router/routes.json")
	t.Setenv("I18NROUTER_WATCH", "false")
	t.Setenv("I18NROUTER_RELOAD_DEBOUNCE", "250ms")

	var s config.Settings
	require.NoError(t, config.Load(&s))
	assert.Equal(t, "/etc/router/routes.json", s.ConfigFile)
	assert.False(t, s.Watch)
	assert.Equal(t, 250*time.Millisecond, s.ReloadDebounce)
	assert.Zero(t, s.NegotiationCache, "negotiation memo is opt-in")
}

func TestLoadIsCached(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("TEST_I18NROUTER_CACHED", "first")

	var a cachedConfig
	require.NoError(t, config.Load(&a))
	assert.Equal(t, "first", a.Value)

	t.Setenv("TEST_I18NROUTER_CACHED", "second")
	var b cachedConfig
	require.NoError(t, config.Load(&b))
	assert.Equal(t, "first", b.Value, "second load must come from cache")

	config.ResetCache()
	var c cachedConfig
	require.NoError(t, config.Load(&c))
	assert.Equal(t, "second", c.Value)
}

func TestLoadParsingError(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("TEST_I18NROUTER_COUNT", "many")

	var cfg numericConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("TEST_I18NROUTER_COUNT", "5")
	require.NoError(t, config.Load(&cfg), "a failed load can be retried")
	assert.Equal(t, 5, cfg.Count)
}

func TestLoadNilPointer(t *testing.T) {
	assert.ErrorIs(t, config.Load[config.Settings](nil), config.ErrNilPointer)
}

func TestMustLoadPanics(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("TEST_I18NROUTER_COUNT", "many")

	assert.Panics(t, func() {
		var cfg numericConfig
		config.MustLoad(&cfg)
	})
}

func TestLoadEnv(t *testing.T) {
	config.ResetCache()
	t.Cleanup(config.ResetCache)
	t.Setenv("TEST_I18NROUTER_KEEP", "from_env")
	t.Cleanup(func() { _ = os.Unsetenv("TEST_I18NROUTER_FILE") })

	require.NoError(t, config.LoadEnv("testdata/.env.test"))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from_file", cfg.FromFile)
	assert.Equal(t, "from_env", cfg.Keep, "existing variables are not overridden")

	err := config.LoadEnv("testdata/missing.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}
