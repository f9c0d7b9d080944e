// Package config loads droid-cli configuration from file, environment, and
// defaults via viper. Precedence: explicit flags (bound by cmd) > environment
// (DROID_CLI_*) > config file > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DeviceConfig selects the device and the command execution channel.
type DeviceConfig struct {
	Serial   string `mapstructure:"serial"`    // adb device serial ("" = sole attached device)
	ADBPath  string `mapstructure:"adb_path"`  // adb binary ("adb" resolves via PATH)
	UseLocal bool   `mapstructure:"use_local"` // run commands through a local shell instead of adb
}

// DisplayConfig parameterizes the virtual display session.
type DisplayConfig struct {
	Name         string        `mapstructure:"name"`          // logical session label used to find the display again
	Width        int           `mapstructure:"width"`         // default creation width
	Height       int           `mapstructure:"height"`        // default creation height
	DPI          int           `mapstructure:"dpi"`           // default creation density
	FallbackID   int           `mapstructure:"fallback_id"`   // display ID assumed when the listing has no marker
	SettleDelay  time.Duration `mapstructure:"settle_delay"`  // wait before the first listing after creation
	PollAttempts int           `mapstructure:"poll_attempts"` // listing polls before giving up on resolution
	PollInterval time.Duration `mapstructure:"poll_interval"` // delay between listing polls
	CaptureDir   string        `mapstructure:"capture_dir"`   // where screenshots are written
}

// ShellConfig bounds the command execution channel.
type ShellConfig struct {
	Timeout time.Duration `mapstructure:"timeout"` // per-command deadline
}

// LoggerConfig controls the zap logger and file rotation.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // console or json
	File       string `mapstructure:"file"`        // optional rotated JSON log file
	MaxSizeMB  int    `mapstructure:"max_size"`    // rotate after this many megabytes
	MaxBackups int    `mapstructure:"max_backups"` // rotated files to keep
	MaxAgeDays int    `mapstructure:"max_age"`     // days to retain rotated files
	Compress   bool   `mapstructure:"compress"`    // gzip rotated files
}

// Config is the full droid-cli configuration.
type Config struct {
	Device  DeviceConfig  `mapstructure:"device"`
	Display DisplayConfig `mapstructure:"display"`
	Shell   ShellConfig   `mapstructure:"shell"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

const envPrefix = "DROID_CLI"

// DefaultFallbackDisplayID is the conventional identifier assumed for a
// virtual display when the listing output carries no recognizable marker.
// It is a heuristic with no cross-version guarantee, which is why it is
// configurable rather than hard-coded at the call sites.
const DefaultFallbackDisplayID = 2

// DefaultSessionName is the logical label attached to the virtual display so
// it can be located again in listing output.
const DefaultSessionName = "ZiZipVirtual"

func setDefaults(v *viper.Viper) {
	v.SetDefault("device.serial", "")
	v.SetDefault("device.adb_path", "adb")
	v.SetDefault("device.use_local", false)

	v.SetDefault("display.name", DefaultSessionName)
	v.SetDefault("display.width", 1080)
	v.SetDefault("display.height", 1920)
	v.SetDefault("display.dpi", 320)
	v.SetDefault("display.fallback_id", DefaultFallbackDisplayID)
	v.SetDefault("display.settle_delay", 500*time.Millisecond)
	v.SetDefault("display.poll_attempts", 5)
	v.SetDefault("display.poll_interval", 200*time.Millisecond)
	v.SetDefault("display.capture_dir", "/sdcard/Download")

	v.SetDefault("shell.timeout", 10*time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size", 20)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)
}

// Load reads configuration from the given file path. An empty path falls back
// to $HOME/.droid-cli/config.yaml; a missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".droid-cli", "config.yaml")
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// A missing or unreadable default file is fine; a file the
			// user asked for is not.
			if explicit {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display dimensions must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.DPI <= 0 {
		return fmt.Errorf("display dpi must be positive, got %d", c.Display.DPI)
	}
	if c.Display.Name == "" {
		return fmt.Errorf("display name must not be empty")
	}
	if c.Shell.Timeout <= 0 {
		return fmt.Errorf("shell timeout must be positive, got %s", c.Shell.Timeout)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported logger format: %s (use console or json)", c.Logger.Format)
	}
	return nil
}
