// Package config provides configuration management for quizdedup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/thebtf/quizdedup/pkg/cluster"
	"github.com/thebtf/quizdedup/pkg/models"
	"github.com/thebtf/quizdedup/pkg/similarity"
)

const (
	// DefaultDuplicateThreshold is the minimum cosine similarity for a
	// pair to be classified as duplicate.
	DefaultDuplicateThreshold = 0.85

	// DefaultNearDuplicateThreshold is the minimum cosine similarity for
	// a pair to be reported for human review.
	DefaultNearDuplicateThreshold = 0.70

	// DefaultServerPort is the default HTTP port for the analysis service.
	DefaultServerPort = 37740
)

// Config holds the application configuration.
type Config struct {
	// Engine settings
	DuplicateThreshold     float64 `json:"duplicate_threshold"`
	NearDuplicateThreshold float64 `json:"near_duplicate_threshold"`
	MergeMinSize           int     `json:"merge_min_size"`
	PreviewLength          int     `json:"preview_length"`
	Workers                int     `json:"workers"`

	// Server settings
	ServerPort int `json:"server_port"`

	// Database settings
	DBPath string `json:"db_path"`
}

var (
	globalConfig *Config
	configOnce   sync.Once
)

// DataDir returns the data directory path (~/.quizdedup).
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".quizdedup")
}

// DBPath returns the default database file path.
func DBPath() string {
	return filepath.Join(DataDir(), "quizdedup.db")
}

// SettingsPath returns the settings file path.
func SettingsPath() string {
	return filepath.Join(DataDir(), "settings.json")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0750)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DuplicateThreshold:     DefaultDuplicateThreshold,
		NearDuplicateThreshold: DefaultNearDuplicateThreshold,
		MergeMinSize:           cluster.DefaultMergeMinSize,
		PreviewLength:          similarity.DefaultPreviewLength,
		Workers:                0, // 0 = one worker per CPU
		ServerPort:             DefaultServerPort,
		DBPath:                 DBPath(),
	}
}

// Load loads configuration from the settings file, merging with defaults.
func Load() (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(SettingsPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var settings map[string]interface{}
	if err := json.Unmarshal(data, &settings); err != nil {
		return cfg, nil // Return defaults on parse error
	}

	if v, ok := settings["QUIZDEDUP_DUPLICATE_THRESHOLD"].(float64); ok {
		cfg.DuplicateThreshold = v
	}
	if v, ok := settings["QUIZDEDUP_NEAR_DUPLICATE_THRESHOLD"].(float64); ok {
		cfg.NearDuplicateThreshold = v
	}
	if v, ok := settings["QUIZDEDUP_MERGE_MIN_SIZE"].(float64); ok && v >= 2 {
		cfg.MergeMinSize = int(v)
	}
	if v, ok := settings["QUIZDEDUP_PREVIEW_LENGTH"].(float64); ok && v > 0 {
		cfg.PreviewLength = int(v)
	}
	if v, ok := settings["QUIZDEDUP_WORKERS"].(float64); ok && v >= 0 {
		cfg.Workers = int(v)
	}
	if v, ok := settings["QUIZDEDUP_SERVER_PORT"].(float64); ok && v > 0 {
		cfg.ServerPort = int(v)
	}
	if v, ok := settings["QUIZDEDUP_DB_PATH"].(string); ok && v != "" {
		cfg.DBPath = v
	}

	return cfg, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	configOnce.Do(func() {
		var err error
		globalConfig, err = Load()
		if err != nil {
			globalConfig = Default()
		}
	})
	return globalConfig
}

// Thresholds returns the configured similarity thresholds.
func (c *Config) Thresholds() models.Thresholds {
	return models.Thresholds{
		Duplicate:     c.DuplicateThreshold,
		NearDuplicate: c.NearDuplicateThreshold,
	}
}

// Validate checks the engine-facing settings.
func (c *Config) Validate() error {
	if err := c.Thresholds().Validate(); err != nil {
		return err
	}
	if c.MergeMinSize < 2 {
		return fmt.Errorf("merge min size %d must be at least 2", c.MergeMinSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d must not be negative", c.Workers)
	}
	return nil
}
