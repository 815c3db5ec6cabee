// ABOUTME: Heat configuration: data directory override and seed file paths.
// ABOUTME: Stored as JSON under the XDG config directory.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/heat/internal/storage"
)

// Config stores heat tool configuration.
type Config struct {
	// DataDir is the root directory for data storage; heat.db lives here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/heat.
	DataDir string `json:"data_dir,omitempty"`

	// ActivitiesCSV points to a custom activity catalog used at first-run
	// seeding instead of the built-in one.
	ActivitiesCSV string `json:"activities_csv,omitempty"`

	// QuotesFile points to a custom quote list used at first-run seeding.
	QuotesFile string `json:"quotes_file,omitempty"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the database in the configured data directory.
func (c *Config) OpenStorage() (*storage.DB, error) {
	dbPath := filepath.Join(c.GetDataDir(), "heat.db")
	d, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	return d, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "heat", "config.json")
}

// Load reads config from disk.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
