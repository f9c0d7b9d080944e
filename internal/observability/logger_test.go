package observability

import (
	"path/filepath"
	"testing"

	"github.com/zizip/droid-cli/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggerConfig
	}{
		{"console", config.LoggerConfig{Level: "debug", Format: "console"}},
		{"json", config.LoggerConfig{Level: "info", Format: "json"}},
		{"bad level falls back", config.LoggerConfig{Level: "loud", Format: "json"}},
		{"with file core", config.LoggerConfig{Level: "info", Format: "json", File: "", MaxSizeMB: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if err != nil {
				t.Fatal(err)
			}
			log.Info("hello")
			Sync(log)
		})
	}
}

func TestNew_FileLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "droid-cli.log")
	log, err := New(config.LoggerConfig{Level: "info", Format: "console", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatal(err)
	}
	log.Info("written to file")
	Sync(log)
}

func TestSync_NilLogger(t *testing.T) {
	Sync(nil) // must not panic
}
