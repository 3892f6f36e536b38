package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Cache.TTL != "7d" {
		t.Errorf("Cache.TTL = %q, want %q", cfg.Cache.TTL, "7d")
	}
	if cfg.Cache.IndexEntries != 16 {
		t.Errorf("Cache.IndexEntries = %d, want 16", cfg.Cache.IndexEntries)
	}
	if cfg.Player.Rate != 1.0 {
		t.Errorf("Player.Rate = %v, want 1.0", cfg.Player.Rate)
	}
	if cfg.Source.Endpoint != "" {
		t.Errorf("Source.Endpoint = %q, want empty", cfg.Source.Endpoint)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"24h", 24 * time.Hour, false},
		{"7d", 7 * 24 * time.Hour, false},
		{"30d", 30 * 24 * time.Hour, false},
		{"1h", time.Hour, false},
		{"", 0, true},
		{"7", 0, true},
		{"d7", 0, true},
		{"7w", 0, true},
		{"-7d", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDuration(%q) expected error, got nil", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDuration(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestConfig_Save_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Source.Endpoint = "http://localhost:9000/transcript"
	cfg.Cache.TTL = "30d"
	cfg.Player.Rate = 2.0

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.Source.Endpoint != cfg.Source.Endpoint {
		t.Errorf("Source.Endpoint = %q, want %q", loaded.Source.Endpoint, cfg.Source.Endpoint)
	}
	if loaded.Cache.TTL != "30d" {
		t.Errorf("Cache.TTL = %q, want %q", loaded.Cache.TTL, "30d")
	}
	if loaded.Player.Rate != 2.0 {
		t.Errorf("Player.Rate = %v, want 2.0", loaded.Player.Rate)
	}
}

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Cache.TTL != "7d" {
		t.Errorf("Cache.TTL = %q, want default %q", cfg.Cache.TTL, "7d")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid yaml, got nil")
	}
}

func TestGetTickInterval(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.GetTickInterval(); got != 100*time.Millisecond {
		t.Errorf("GetTickInterval() = %v, want 100ms", got)
	}

	cfg.Player.TickMillis = 0
	if got := cfg.GetTickInterval(); got != 100*time.Millisecond {
		t.Errorf("GetTickInterval() with zero = %v, want fallback 100ms", got)
	}

	cfg.Player.TickMillis = 250
	if got := cfg.GetTickInterval(); got != 250*time.Millisecond {
		t.Errorf("GetTickInterval() = %v, want 250ms", got)
	}
}

func TestAppDir(t *testing.T) {
	dir := AppDir()
	if dir == "" {
		t.Error("AppDir() returned empty string")
	}
	if filepath.Base(dir) != ".vht" {
		t.Errorf("AppDir() = %q, want path ending in .vht", dir)
	}
}
