package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	path := filepath.Join(dir, ".studylog", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestNewDefaultsWithoutConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, ".studylog", "studylog.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.DefaultRange != DefaultRange || cfg.LegacyKey != DefaultLegacyKey {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.TierThresholds) != 9 {
		t.Fatalf("expected 9 thresholds, got %d", len(cfg.TierThresholds))
	}
	if cfg.Notify {
		t.Fatalf("notify must default to false")
	}
}

func TestNewRequiresDataPath(t *testing.T) {
	t.Parallel()
	if _, err := New(""); err == nil {
		t.Fatalf("expected error for empty data path")
	}
}

func TestNewAppliesYAMLOverlay(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeConfig(t, dir, `timezone: Europe/Berlin
default_range: month
tier_thresholds: [60, 120, 180, 240, 300, 360, 420, 480, 540]
legacy_file: old/storage.json
legacy_key: sessions
notify: true
log_level: debug
`)
	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Location.String() != "Europe/Berlin" {
		t.Fatalf("unexpected location %s", cfg.Location)
	}
	if cfg.DefaultRange != "month" || cfg.LegacyKey != "sessions" || !cfg.Notify || cfg.LogLevel != "debug" {
		t.Fatalf("overlay not applied: %+v", cfg)
	}
	if cfg.LegacyPath != filepath.Join(dir, "old", "storage.json") {
		t.Fatalf("unexpected legacy path %s", cfg.LegacyPath)
	}
	if cfg.TierThresholds[0] != 60 || cfg.TierThresholds[8] != 540 {
		t.Fatalf("unexpected thresholds %v", cfg.TierThresholds)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"bad timezone":   "timezone: Mars/Olympus\n",
		"short tiers":    "tier_thresholds: [1, 2, 3]\n",
		"unordered":      "tier_thresholds: [1, 2, 3, 4, 4, 6, 7, 8, 9]\n",
		"non-positive":   "tier_thresholds: [0, 2, 3, 4, 5, 6, 7, 8, 9]\n",
		"malformed yaml": "timezone: [\n",
	}
	for name, body := range cases {
		name, body := name, body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			writeConfig(t, dir, body)
			if _, err := New(dir); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestValidateThresholdsMessage(t *testing.T) {
	t.Parallel()
	err := ValidateThresholds([]int64{5, 4, 6, 7, 8, 9, 10, 11, 12})
	if err == nil || !strings.Contains(err.Error(), "index 1") {
		t.Fatalf("expected index in error, got %v", err)
	}
}
