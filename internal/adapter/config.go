package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// defaultEndpoint is the Open Library search endpoint.
const defaultEndpoint = "https://openlibrary.org/search.json"

// Config holds all application configuration
type Config struct {
	Search  SearchConfig  `mapstructure:"search"`
	State   StateConfig   `mapstructure:"state"`
	Cache   CacheConfig   `mapstructure:"cache"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SearchConfig holds search API configuration
type SearchConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	DefaultPageSize int           `mapstructure:"default_page_size"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// StateConfig holds the persisted-search-parameter configuration
type StateConfig struct {
	File string `mapstructure:"file"` // Query-parameter state file
}

// CacheConfig holds result cache configuration
type CacheConfig struct {
	Dir           string        `mapstructure:"dir"` // Empty disables on-disk caching
	TTL           time.Duration `mapstructure:"ttl"`
	MemoryEntries int           `mapstructure:"memory_entries"`
}

// HistoryConfig holds query history configuration
type HistoryConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Endpoint:        defaultEndpoint,
			DefaultPageSize: 10,
			Timeout:         30 * time.Second,
		},
		State: StateConfig{
			File: filepath.Join(defaultDataPath(), "state"),
		},
		Cache: CacheConfig{
			Dir:           filepath.Join(defaultDataPath(), "cache"),
			TTL:           15 * time.Minute,
			MemoryEntries: 128,
		},
		History: HistoryConfig{
			MaxEntries: 50,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "biblio.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "biblio")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "biblio")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "biblio")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "biblio")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("BIBLIO")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}
