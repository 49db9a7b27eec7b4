package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is read when WUMPUS_CONFIG is not set. A missing file is fine.
const DefaultPath = "wumpus.yaml"

// Timing holds the delays for percepts that expire on their own.
type Timing struct {
	BumpClear   time.Duration `yaml:"bump_clear"`
	ScreamClear time.Duration `yaml:"scream_clear"`
	Recompute   time.Duration `yaml:"recompute"`
}

// Particles configures the decorative background.
type Particles struct {
	Count        int     `yaml:"count"`
	LinkDistance float64 `yaml:"link_distance"`
}

// Agent configures the automated player used by the simulator.
type Agent struct {
	Model    string `yaml:"model"`
	MaxTurns int    `yaml:"max_turns"`
	Games    int    `yaml:"games"`
}

// Config holds the application configuration.
type Config struct {
	GridSize  int       `yaml:"grid_size"`
	PitCount  int       `yaml:"pit_count"`
	Arrows    int       `yaml:"arrows"`
	Timing    Timing    `yaml:"timing"`
	Particles Particles `yaml:"particles"`
	Agent     Agent     `yaml:"agent"`
	ReportDir string    `yaml:"report_dir"`

	GeminiAPIKey string `yaml:"-"`
	DebugLog     string `yaml:"-"`
}

// Default returns the classic 4x4 game settings.
func Default() *Config {
	return &Config{
		GridSize: 4,
		PitCount: 3,
		Arrows:   1,
		Timing: Timing{
			BumpClear:   2 * time.Second,
			ScreamClear: 2 * time.Second,
			Recompute:   time.Second,
		},
		Particles: Particles{
			Count:        50,
			LinkDistance: 120,
		},
		Agent: Agent{
			Model:    "gemini-2.5-flash",
			MaxTurns: 60,
			Games:    10,
		},
		ReportDir: ".reports",
	}
}

// LoadConfig loads the configuration from the YAML file named by
// WUMPUS_CONFIG (or DefaultPath) and then from environment variables.
func LoadConfig() (*Config, error) {
	path := os.Getenv("WUMPUS_CONFIG")
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg, err := Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			cfg = Default()
		} else {
			return nil, err
		}
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.DebugLog = os.Getenv("WUMPUS_DEBUG_LOG")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	if c.GridSize < 2 {
		return fmt.Errorf("grid_size must be at least 2, got %d", c.GridSize)
	}
	if c.PitCount < 0 {
		return fmt.Errorf("pit_count must not be negative, got %d", c.PitCount)
	}
	if c.Arrows < 0 {
		return fmt.Errorf("arrows must not be negative, got %d", c.Arrows)
	}
	if c.Timing.BumpClear <= 0 || c.Timing.ScreamClear <= 0 || c.Timing.Recompute <= 0 {
		return fmt.Errorf("timing delays must be positive")
	}
	if c.Particles.Count < 0 {
		return fmt.Errorf("particles.count must not be negative, got %d", c.Particles.Count)
	}
	if c.Particles.LinkDistance <= 0 {
		return fmt.Errorf("particles.link_distance must be positive")
	}
	if c.Agent.MaxTurns <= 0 {
		return fmt.Errorf("agent.max_turns must be positive")
	}
	return nil
}
