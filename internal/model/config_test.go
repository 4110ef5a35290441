package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	d := DefaultAppConfig()
	assert.Equal(t, d.Display, cfg.Display)
	assert.Equal(t, d.Missions, cfg.Missions)
	assert.Equal(t, 60*time.Second, cfg.Missions.OverdueCheckInterval())
	assert.Equal(t, 5*time.Second, cfg.Missions.NotificationTTL())
	assert.Equal(t, 2*time.Second, cfg.Missions.HighlightDuration())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
display:
  theme: plain
missions:
  seed: false
  notification_ttl_sec: 9
`), 0o644))
	t.Setenv("MISSIONTRACKER_MISSIONS_GOAL_DAYS", "12")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Display.Theme)
	assert.True(t, cfg.Display.Clock24)
	assert.False(t, cfg.Missions.Seed)
	assert.Equal(t, 9*time.Second, cfg.Missions.NotificationTTL())
	assert.Equal(t, 12, cfg.Missions.GoalDays)
	assert.Equal(t, 60, cfg.Missions.OverdueCheckIntervalSec)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display: [oops"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultAppConfig()
	cfg.Display.Theme = "plain"
	cfg.Missions.HighlightSec = 4

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "plain", loaded.Display.Theme)
	assert.Equal(t, 4*time.Second, loaded.Missions.HighlightDuration())
}

func TestDurationFallbacks(t *testing.T) {
	var c MissionsConfig
	assert.Equal(t, time.Minute, c.OverdueCheckInterval())
	assert.Equal(t, 5*time.Second, c.NotificationTTL())
}
