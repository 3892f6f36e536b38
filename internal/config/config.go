package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Source SourceConfig `yaml:"source"`
	Cache  CacheConfig  `yaml:"cache"`
	Player PlayerConfig `yaml:"player"`
	Paths  PathsConfig  `yaml:"paths"`
}

// SourceConfig selects where transcripts come from
type SourceConfig struct {
	// Endpoint is the AI processing URL. Empty means the built-in offline
	// generator.
	Endpoint string `yaml:"endpoint"`
	// Seed drives the offline generator.
	Seed int64 `yaml:"seed"`
}

// CacheConfig controls the transcript cache
type CacheConfig struct {
	TTL string `yaml:"ttl"`
	// IndexEntries bounds the in-memory LRU of built indexes.
	IndexEntries int `yaml:"index_entries"`
}

// PlayerConfig controls the simulated playback clock
type PlayerConfig struct {
	// Rate is the playback speed, 1.0 = real time.
	Rate float64 `yaml:"rate"`
	// TickMillis is the time-update interval in milliseconds.
	TickMillis int `yaml:"tick_millis"`
}

// PathsConfig holds custom binary path overrides
type PathsConfig struct {
	FFprobe string `yaml:"ffprobe"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			Endpoint: "",
			Seed:     1,
		},
		Cache: CacheConfig{
			TTL:          "7d",
			IndexEntries: 16,
		},
		Player: PlayerConfig{
			Rate:       1.0,
			TickMillis: 100,
		},
		Paths: PathsConfig{},
	}
}

// AppDir returns the application directory (~/.vht)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".vht"
	}
	return filepath.Join(home, ".vht")
}

// CacheDir returns the transcript cache directory
func CacheDir() string {
	return filepath.Join(AppDir(), "cache")
}

// BinDir returns the bin directory
func BinDir() string {
	return filepath.Join(AppDir(), "bin")
}

// DownloadsDir returns where fetched videos land
func DownloadsDir() string {
	return filepath.Join(AppDir(), "downloads")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	dirs := []string{AppDir(), CacheDir(), BinDir(), DownloadsDir()}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads config from default path
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetCacheTTL returns the cache TTL as a duration
func (c *Config) GetCacheTTL() (time.Duration, error) {
	return ParseDuration(c.Cache.TTL)
}

// GetTickInterval returns the player tick interval
func (c *Config) GetTickInterval() time.Duration {
	if c.Player.TickMillis <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.Player.TickMillis) * time.Millisecond
}

var durationPattern = regexp.MustCompile(`^(\d+)(h|d)$`)

// ParseDuration parses duration strings like "24h", "7d", "30d"
func ParseDuration(s string) (time.Duration, error) {
	matches := durationPattern.FindStringSubmatch(s)
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s (use format like 24h, 7d)", s)
	}

	value, _ := strconv.Atoi(matches[1])
	unit := matches[2]

	switch unit {
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown duration unit: %s", unit)
	}
}
