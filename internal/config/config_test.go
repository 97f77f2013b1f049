package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAndGet(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	Load()

	got := Get("missing", "default")
	require.Equal(t, "default", got)
	require.Equal(t, "127.0.0.1:6379", Get("redis_addr", ""))
	require.Equal(t, "ordertray", Get("channel_prefix", ""))
}

func TestEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.toml")
	configContent := `
redis_addr = "redis.internal:6380"
channel_prefix = "staging"
reconnect_max_attempts = 3
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("ORDERTRAY_CONFIG_PATH", configFile)
	t.Setenv("ORDERTRAY_REDIS_ADDR", "redis.override:6379")

	Load()

	require.Equal(t, "redis.override:6379", Get("redis_addr", ""), "environment should override config file")
	require.Equal(t, "staging", Get("channel_prefix", ""), "config file value should be used when not overridden by env")
	require.Equal(t, 3, GetInt("reconnect_max_attempts", 5))
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("ORDERTRAY_RECONNECT_MAX_ATTEMPTS", "-1")
	t.Setenv("ORDERTRAY_VIEWER_ROLE", "superuser")
	t.Setenv("ORDERTRAY_RECONNECT_DELAY", "soon")

	Load()

	require.Equal(t, 5, GetInt("reconnect_max_attempts", 0))
	require.Equal(t, "vendor", Get("viewer_role", ""))
	require.Equal(t, "2s", Get("reconnect_delay", ""))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("ORDERTRAY_HEARTBEAT_INTERVAL", "45s")

	Load()

	require.Equal(t, "45s", Get("heartbeat_interval", ""))
	require.Equal(t, 45.0, GetDuration("heartbeat_interval", 0).Seconds())
	require.Equal(t, 10.0, GetDuration("toast_duration_elevated", 0).Seconds())
}

func TestBoolNormalization(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("ORDERTRAY_LOGGING_ENABLED", "yes")

	Load()

	require.Equal(t, "true", Get("logging_enabled", ""))
	require.True(t, GetBool("logging_enabled", false))
}
