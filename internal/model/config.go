package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. MISSIONTRACKER_DISPLAY_THEME.
const envPrefix = "missiontracker"

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme   string `mapstructure:"theme" yaml:"theme"`
	Clock24 bool   `mapstructure:"clock_24h" yaml:"clock_24h"`
}

// MissionsConfig controls the mission store's timers and start-up data.
type MissionsConfig struct {
	// Seed loads the demo missions at start-up.
	Seed bool `mapstructure:"seed" yaml:"seed"`

	// OverdueCheckIntervalSec is how often active missions are rechecked.
	OverdueCheckIntervalSec int `mapstructure:"overdue_check_interval_sec" yaml:"overdue_check_interval_sec"`

	// NotificationTTLSec is how long a notification stays on screen.
	NotificationTTLSec int `mapstructure:"notification_ttl_sec" yaml:"notification_ttl_sec"`

	// GoalDays is the default countdown horizon when no mission is tracked.
	GoalDays int `mapstructure:"goal_days" yaml:"goal_days"`

	// HighlightSec is how long a just-completed mission stays highlighted.
	HighlightSec int `mapstructure:"highlight_sec" yaml:"highlight_sec"`
}

// LogConfig selects where the standard logger writes.
type LogConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Display  DisplayConfig  `mapstructure:"display" yaml:"display"`
	Missions MissionsConfig `mapstructure:"missions" yaml:"missions"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// OverdueCheckInterval returns the recheck period as a duration.
func (c MissionsConfig) OverdueCheckInterval() time.Duration {
	return secondsOr(c.OverdueCheckIntervalSec, 60)
}

// NotificationTTL returns the notification lifetime as a duration.
func (c MissionsConfig) NotificationTTL() time.Duration {
	return secondsOr(c.NotificationTTLSec, 5)
}

// HighlightDuration returns the just-completed highlight lifetime.
func (c MissionsConfig) HighlightDuration() time.Duration {
	return secondsOr(c.HighlightSec, 2)
}

func secondsOr(sec, fallback int) time.Duration {
	if sec <= 0 {
		sec = fallback
	}
	return time.Duration(sec) * time.Second
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/missiontracker/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "missiontracker", "config.yaml")
}

// DefaultLogPath returns the log file location inside the user cache dir.
func DefaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "missiontracker.log"
	}
	return filepath.Join(dir, "missiontracker", "missiontracker.log")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Display: DisplayConfig{
			Theme:   "cosmic",
			Clock24: true,
		},
		Missions: MissionsConfig{
			Seed:                    true,
			OverdueCheckIntervalSec: 60,
			NotificationTTLSec:      5,
			GoalDays:                30,
			HighlightSec:            2,
		},
		Log: LogConfig{
			File: DefaultLogPath(),
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultAppConfig()
	v.SetDefault("display.theme", d.Display.Theme)
	v.SetDefault("display.clock_24h", d.Display.Clock24)
	v.SetDefault("missions.seed", d.Missions.Seed)
	v.SetDefault("missions.overdue_check_interval_sec", d.Missions.OverdueCheckIntervalSec)
	v.SetDefault("missions.notification_ttl_sec", d.Missions.NotificationTTLSec)
	v.SetDefault("missions.goal_days", d.Missions.GoalDays)
	v.SetDefault("missions.highlight_sec", d.Missions.HighlightSec)
	v.SetDefault("log.file", d.Log.File)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with MISSIONTRACKER_ override file values.
// If the file does not exist, defaults (plus environment) are used.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := DefaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Missions.GoalDays <= 0 {
		cfg.Missions.GoalDays = 30
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("display", cfg.Display)
	v.Set("missions", cfg.Missions)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
