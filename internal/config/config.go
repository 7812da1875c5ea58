package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"timeline/internal/domain"
	"timeline/internal/eventbus"
)

// EnvPrefix prefixes every environment override, e.g. TIMELINE_SOURCE_LOCATION
const EnvPrefix = "TIMELINE"

// Config represents the application configuration
type Config struct {
	Source        SourceConfig        `mapstructure:"source"`
	Accessibility AccessibilityConfig `mapstructure:"accessibility"`
	UI            UIConfig            `mapstructure:"ui"`
	Log           LogConfig           `mapstructure:"log"`
}

// SourceConfig says where the timeline events come from
type SourceConfig struct {
	Location string        `mapstructure:"location"` // file path or http(s) URL
	Timeout  time.Duration `mapstructure:"timeout"`
}

// AccessibilityConfig tunes focus handling and announcements
type AccessibilityConfig struct {
	SettleDelay        time.Duration `mapstructure:"settle_delay"`
	AnnounceTTL        time.Duration `mapstructure:"announce_ttl"`
	AnnounceNavigation bool          `mapstructure:"announce_navigation"`
}

// UIConfig represents UI-related configuration
type UIConfig struct {
	DefaultFilter string `mapstructure:"default_filter"`
	AltScreen     bool   `mapstructure:"alt_screen"`
	Mouse         bool   `mapstructure:"mouse"`
}

// LogConfig controls the log file
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// SlogLevel maps the configured level name to a slog level
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	// SetValue rewrites one key of the config file
	SetValue(key string, value interface{}) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	mu       sync.Mutex
	bus      eventbus.EventBus
	filePath string
	logger   *slog.Logger
}

// DefaultPath returns the config file location: $TIMELINE_CONFIG if set,
// otherwise timeline/config.toml under the user config directory.
func DefaultPath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return p
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "timeline", "config.toml")
}

// NewConfigService creates a config service for path ("" = DefaultPath)
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path, logger: slog.New(slog.DiscardHandler)}
}

// NewConfigServiceWithBus creates a config service that persists the last
// used filter whenever a ConfigChangedEvent is published on bus
func NewConfigServiceWithBus(path string, bus eventbus.EventBus, logger *slog.Logger) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	if logger != nil {
		cs.logger = logger
	}
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			if err := cs.SetValue("ui.default_filter", event.LastFilter); err != nil {
				cs.logger.Error("persist last filter", "err", err)
			}
		}
	})
	return cs
}

func (cs *configService) Path() string { return cs.filePath }

// Load reads the config file, falling back to defaults when it does not
// exist. Environment overrides apply either way.
func (cs *configService) Load() (*Config, error) {
	v := newViper()
	if _, err := os.Stat(cs.filePath); err == nil {
		v.SetConfigFile(cs.filePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	return decode(v)
}

// Save writes the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(v)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	v := viper.New()
	v.SetConfigType("toml")
	for key, value := range flatten(config) {
		v.Set(key, value)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetValue updates a single key in the config file, leaving the rest of
// the file untouched. Environment overrides are not written back.
func (cs *configService) SetValue(key string, value interface{}) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	v := viper.New()
	v.SetConfigType("toml")
	if _, err := os.Stat(cs.filePath); err == nil {
		v.SetConfigFile(cs.filePath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.Set(key, value)
	if err := os.MkdirAll(filepath.Dir(cs.filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.WriteConfigAs(cs.filePath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	cs.logger.Debug("config value saved", "key", key, "path", cs.filePath)
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Location: "events.json",
			Timeout:  10 * time.Second,
		},
		Accessibility: AccessibilityConfig{
			SettleDelay:        150 * time.Millisecond,
			AnnounceTTL:        1500 * time.Millisecond,
			AnnounceNavigation: true,
		},
		UI: UIConfig{
			DefaultFilter: domain.AllCategories,
			AltScreen:     true,
			Mouse:         true,
		},
		Log: LogConfig{
			File:  "timeline.log",
			Level: "info",
		},
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	for key, value := range flatten(DefaultConfig()) {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.UI.DefaultFilter == "" {
		cfg.UI.DefaultFilter = domain.AllCategories
	}
	return &cfg, nil
}

// flatten lists every config key with its value. Durations are written as
// strings ("150ms") so the TOML file stays readable.
func flatten(c *Config) map[string]interface{} {
	return map[string]interface{}{
		"source.location":                   c.Source.Location,
		"source.timeout":                    c.Source.Timeout.String(),
		"accessibility.settle_delay":        c.Accessibility.SettleDelay.String(),
		"accessibility.announce_ttl":        c.Accessibility.AnnounceTTL.String(),
		"accessibility.announce_navigation": c.Accessibility.AnnounceNavigation,
		"ui.default_filter":                 c.UI.DefaultFilter,
		"ui.alt_screen":                     c.UI.AltScreen,
		"ui.mouse":                          c.UI.Mouse,
		"log.file":                          c.Log.File,
		"log.level":                         c.Log.Level,
	}
}
