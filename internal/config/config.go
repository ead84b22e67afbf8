package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Storage  StorageConfig `yaml:"storage"`
	Log      LogConfig     `yaml:"log"`
	Backup   BackupConfig  `yaml:"backup"`
	Watch    WatchConfig   `yaml:"watch"`
	TUI      TUIConfig     `yaml:"tui"`
	Keys     KeyMappings   `yaml:"key_mappings"`
	BoardKey string        `yaml:"board_key"`
}

// StorageConfig selects the key-value backend holding the board record.
type StorageConfig struct {
	Driver     string `yaml:"driver"` // sqlite, postgres, mysql, mongodb, memory
	Path       string `yaml:"path"`   // sqlite file
	DSN        string `yaml:"dsn"`    // postgres / mysql
	URI        string `yaml:"uri"`    // mongodb
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

type BackupConfig struct {
	Schedule string `yaml:"schedule"`
	Dir      string `yaml:"dir"`
	Keep     int    `yaml:"keep"`
}

// WatchConfig controls how external edits to the board are noticed.
type WatchConfig struct {
	Enabled      bool   `yaml:"enabled"`
	PollInterval string `yaml:"poll_interval"` // for non-file backends
}

// TUIConfig maps terminal cells to board pixels.
type TUIConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

const (
	appName         = "moodboard"
	envConfigPath   = "MOODBOARD_CONFIG"
	defaultBoardKey = "moodBoardItems"
)

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{Watch: WatchConfig{Enabled: true}}
	c.applyDefaults()
	return c
}

// Load loads config from MOODBOARD_CONFIG or the user's config directory.
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Watching is on unless the file turns it off.
	config := Config{Watch: WatchConfig{Enabled: true}}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Fill in any missing values with defaults
	config.applyDefaults()

	return &config, nil
}

// Save writes the config to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if p := os.Getenv(envConfigPath); p != "" {
		return p, nil
	}

	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// DataDir is where the database, logs and backups live by default.
func DataDir() string {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(homeDir, ".local", "share", appName)
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	dataDir := DataDir()

	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = filepath.Join(dataDir, appName+".db")
	}
	if c.Storage.Database == "" {
		c.Storage.Database = appName
	}
	if c.Storage.Collection == "" {
		c.Storage.Collection = "kv_store"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Path == "" {
		c.Log.Path = filepath.Join(dataDir, "logs", appName+".log")
	}

	if c.Backup.Dir == "" {
		c.Backup.Dir = filepath.Join(dataDir, "backups")
	}
	if c.Backup.Keep <= 0 {
		c.Backup.Keep = 10
	}

	if c.Watch.PollInterval == "" {
		c.Watch.PollInterval = "2s"
	}

	if c.TUI.CellWidth <= 0 {
		c.TUI.CellWidth = 8
	}
	if c.TUI.CellHeight <= 0 {
		c.TUI.CellHeight = 16
	}

	if c.BoardKey == "" {
		c.BoardKey = defaultBoardKey
	}

	c.Keys.applyDefaults()
}
