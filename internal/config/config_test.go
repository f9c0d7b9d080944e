package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	// An explicit path that does not exist is an error.
	require.Error(t, err)
	assert.Nil(t, cfg)

	cfg, err = Load("")
	require.NoError(t, err)

	assert.Equal(t, "adb", cfg.Device.ADBPath)
	assert.False(t, cfg.Device.UseLocal)
	assert.Equal(t, DefaultSessionName, cfg.Display.Name)
	assert.Equal(t, 1080, cfg.Display.Width)
	assert.Equal(t, 1920, cfg.Display.Height)
	assert.Equal(t, 320, cfg.Display.DPI)
	assert.Equal(t, DefaultFallbackDisplayID, cfg.Display.FallbackID)
	assert.Equal(t, 500*time.Millisecond, cfg.Display.SettleDelay)
	assert.Equal(t, 5, cfg.Display.PollAttempts)
	assert.Equal(t, "/sdcard/Download", cfg.Display.CaptureDir)
	assert.Equal(t, 10*time.Second, cfg.Shell.Timeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
device:
  serial: emulator-5554
display:
  width: 720
  height: 1280
  fallback_id: 3
logger:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "emulator-5554", cfg.Device.Serial)
	assert.Equal(t, 720, cfg.Display.Width)
	assert.Equal(t, 1280, cfg.Display.Height)
	assert.Equal(t, 3, cfg.Display.FallbackID)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultSessionName, cfg.Display.Name)
	assert.Equal(t, 320, cfg.Display.DPI)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"zero width", "display:\n  width: 0\n"},
		{"negative dpi", "display:\n  dpi: -1\n"},
		{"empty name", "display:\n  name: \"\"\n"},
		{"zero timeout", "shell:\n  timeout: 0\n"},
		{"bad logger format", "logger:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
