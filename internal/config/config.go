package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Sysfs mount point used for removable-media and geometry probes
	SysfsRoot string   `yaml:"sysfs_root,omitempty"`
	Database  string   `yaml:"database,omitempty"`
	LogLevel  string   `yaml:"log_level,omitempty"`
	Defaults  Defaults `yaml:"defaults"`
}

type Defaults struct {
	// Applied to layout devices that neither state nor probe a sector size
	SectorSize uint64 `yaml:"sector_size"`
}

// defaultConfig provides baseline settings
var defaultConfig = Config{
	SysfsRoot: "/sys",
	Database:  "/var/lib/partplan/plans.db",
	LogLevel:  "info",
	Defaults: Defaults{
		SectorSize: 512,
	},
}

func Load(path string) (*Config, error) {
	if path == "" {
		// Try default locations
		candidates := []string{
			"/etc/partplan/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/partplan/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	var cfg Config
	if path == "" {
		cfg = defaultConfig
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// Apply defaults for missing settings
	if cfg.SysfsRoot == "" {
		cfg.SysfsRoot = defaultConfig.SysfsRoot
	}
	if cfg.Database == "" {
		cfg.Database = defaultConfig.Database
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultConfig.LogLevel
	}
	if cfg.Defaults.SectorSize == 0 {
		cfg.Defaults.SectorSize = defaultConfig.Defaults.SectorSize
	}

	if _, err := cfg.Level(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Level parses the configured log level.
func (c *Config) Level() (log.Level, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
