package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRange     = "week"
	DefaultLegacyKey = "studySessions"
	DefaultLogLevel  = "warn"
)

// DefaultTierThresholds are the lower bounds, in seconds, of heatmap tiers 1..9.
var DefaultTierThresholds = []int64{1, 15 * 60, 30 * 60, 60 * 60, 90 * 60, 2 * 3600, 3 * 3600, 4 * 3600, 6 * 3600}

type Config struct {
	DataPath       string
	DBPath         string
	LegacyPath     string
	StopwatchPath  string
	ConfigFile     string
	Location       *time.Location
	DefaultRange   string
	TierThresholds []int64
	LegacyKey      string
	Notify         bool
	LogLevel       string
}

// fileConfig mirrors config.yaml. Every field is optional.
type fileConfig struct {
	Timezone       string  `yaml:"timezone"`
	DefaultRange   string  `yaml:"default_range"`
	TierThresholds []int64 `yaml:"tier_thresholds"`
	LegacyFile     string  `yaml:"legacy_file"`
	LegacyKey      string  `yaml:"legacy_key"`
	Notify         *bool   `yaml:"notify"`
	LogLevel       string  `yaml:"log_level"`
}

func New(dataPath string) (Config, error) {
	if dataPath == "" {
		return Config{}, fmt.Errorf("data path is required")
	}
	cfg := Config{
		DataPath:       dataPath,
		DBPath:         filepath.Join(dataPath, ".studylog", "studylog.db"),
		LegacyPath:     filepath.Join(dataPath, ".studylog", "localstorage.json"),
		StopwatchPath:  filepath.Join(dataPath, ".studylog", "stopwatch.json"),
		ConfigFile:     filepath.Join(dataPath, ".studylog", "config.yaml"),
		Location:       time.Local,
		DefaultRange:   DefaultRange,
		TierThresholds: append([]int64(nil), DefaultTierThresholds...),
		LegacyKey:      DefaultLegacyKey,
		LogLevel:       DefaultLogLevel,
	}

	payload, err := os.ReadFile(cfg.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.apply(fc); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) apply(fc fileConfig) error {
	if fc.Timezone != "" {
		loc, err := time.LoadLocation(fc.Timezone)
		if err != nil {
			return fmt.Errorf("timezone %q: %w", fc.Timezone, err)
		}
		c.Location = loc
	}
	if fc.DefaultRange != "" {
		c.DefaultRange = fc.DefaultRange
	}
	if len(fc.TierThresholds) > 0 {
		if err := ValidateThresholds(fc.TierThresholds); err != nil {
			return err
		}
		c.TierThresholds = fc.TierThresholds
	}
	if fc.LegacyFile != "" {
		if filepath.IsAbs(fc.LegacyFile) {
			c.LegacyPath = fc.LegacyFile
		} else {
			c.LegacyPath = filepath.Join(c.DataPath, fc.LegacyFile)
		}
	}
	if fc.LegacyKey != "" {
		c.LegacyKey = fc.LegacyKey
	}
	if fc.Notify != nil {
		c.Notify = *fc.Notify
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return nil
}

// ValidateThresholds requires exactly nine strictly ascending positive bounds,
// giving ten tiers with tier 0 reserved for days without activity.
func ValidateThresholds(thresholds []int64) error {
	if len(thresholds) != len(DefaultTierThresholds) {
		return fmt.Errorf("tier_thresholds: want %d values, got %d", len(DefaultTierThresholds), len(thresholds))
	}
	prev := int64(0)
	for i, t := range thresholds {
		if t <= prev {
			return fmt.Errorf("tier_thresholds: value %d at index %d must be greater than %d", t, i, prev)
		}
		prev = t
	}
	return nil
}
