package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline/internal/domain"
	"timeline/internal/eventbus"
)

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	cs := NewConfigService(filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadReadsTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[source]
location = "https://example.org/events.json"
timeout = "3s"

[accessibility]
settle_delay = "40ms"
announce_navigation = false

[ui]
default_filter = "Birds"
mouse = false
`), 0o644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "https://example.org/events.json", cfg.Source.Location)
	assert.Equal(t, 3*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 40*time.Millisecond, cfg.Accessibility.SettleDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.Accessibility.AnnounceTTL, "unset keys keep defaults")
	assert.False(t, cfg.Accessibility.AnnounceNavigation)
	assert.Equal(t, "Birds", cfg.UI.DefaultFilter)
	assert.False(t, cfg.UI.Mouse)
	assert.True(t, cfg.UI.AltScreen)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("TIMELINE_SOURCE_LOCATION", "/tmp/other.yaml")
	t.Setenv("TIMELINE_LOG_LEVEL", "debug")

	cfg, err := NewConfigService(filepath.Join(t.TempDir(), "none.toml")).Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.yaml", cfg.Source.Location)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestSaveThenLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := NewConfigService(path)

	want := DefaultConfig()
	want.UI.DefaultFilter = "Mammals"
	want.Accessibility.AnnounceTTL = 2 * time.Second
	require.NoError(t, cs.Save(want))

	got, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := NewConfigService("").LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is not toml [[["), 0o644))

	_, err := NewConfigService(path).Load()
	assert.Error(t, err)
}

func TestSetValueKeepsOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[source]\nlocation = \"mine.toml\"\n"), 0o644))
	cs := NewConfigService(path)

	require.NoError(t, cs.SetValue("ui.default_filter", "Reptiles"))

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, "mine.toml", cfg.Source.Location)
	assert.Equal(t, "Reptiles", cfg.UI.DefaultFilter)
}

func TestConfigChangedEventPersistsFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	bus := eventbus.New(nil)
	defer bus.Close()
	cs := NewConfigServiceWithBus(path, bus, nil)

	bus.Publish(eventbus.ConfigChangedEvent{LastFilter: "Birds"})

	require.Eventually(t, func() bool {
		cfg, err := cs.Load()
		return err == nil && cfg.UI.DefaultFilter == "Birds"
	}, time.Second, 10*time.Millisecond)
}

func TestEmptyFilterFallsBackToAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ndefault_filter = \"\"\n"), 0o644))

	cfg, err := NewConfigService(path).Load()
	require.NoError(t, err)
	assert.Equal(t, domain.AllCategories, cfg.UI.DefaultFilter)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", LogConfig{Level: "debug"}.SlogLevel().String())
	assert.Equal(t, "WARN", LogConfig{Level: "warn"}.SlogLevel().String())
	assert.Equal(t, "INFO", LogConfig{Level: "loud"}.SlogLevel().String())
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	t.Setenv("TIMELINE_CONFIG", "/etc/timeline.toml")
	assert.Equal(t, "/etc/timeline.toml", DefaultPath())
}
