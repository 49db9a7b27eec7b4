package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
grid_size: 6
pit_count: 5
timing:
  bump_clear: 500ms
particles:
  count: 20
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.GridSize != 6 || cfg.PitCount != 5 {
		t.Errorf("Expected 6x6 grid with 5 pits, got %d / %d", cfg.GridSize, cfg.PitCount)
	}
	if cfg.Timing.BumpClear != 500*time.Millisecond {
		t.Errorf("Expected bump_clear 500ms, got %v", cfg.Timing.BumpClear)
	}
	if cfg.Timing.ScreamClear != 2*time.Second {
		t.Errorf("Unset scream_clear should keep its default, got %v", cfg.Timing.ScreamClear)
	}
	if cfg.Arrows != 1 || cfg.Particles.LinkDistance != 120 {
		t.Errorf("Unset fields lost their defaults: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Defaults should validate: %v", err)
	}

	for name, mutate := range map[string]func(*Config){
		"tiny grid":     func(c *Config) { c.GridSize = 1 },
		"negative pits": func(c *Config) { c.PitCount = -1 },
		"zero delay":    func(c *Config) { c.Timing.Recompute = 0 },
		"no link":       func(c *Config) { c.Particles.LinkDistance = 0 },
		"no turns":      func(c *Config) { c.Agent.MaxTurns = 0 },
	} {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("grid_size: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("WUMPUS_CONFIG", path)
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.GridSize != 5 || cfg.GeminiAPIKey != "secret" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	t.Setenv("WUMPUS_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := LoadConfig(); err == nil {
		t.Errorf("Expected error for a missing explicit config file")
	}
}
