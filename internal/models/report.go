package models

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// TurnRecord is one action taken during a simulated game.
type TurnRecord struct {
	Turn     int        `yaml:"turn"`
	Action   Action     `yaml:"action"`
	Position Position   `yaml:"position"`
	Facing   Direction  `yaml:"facing"`
	Percepts PerceptSet `yaml:"percepts"`
	Score    int        `yaml:"score"`
	Message  string     `yaml:"message,omitempty"`
}

// GameRecord is the outcome of one simulated game.
type GameRecord struct {
	Agent  string       `yaml:"agent"`
	World  World        `yaml:"world"`
	Phase  Phase        `yaml:"phase"`
	Score  int          `yaml:"score"`
	Turns  []TurnRecord `yaml:"turns"`
	Reason string       `yaml:"reason,omitempty"`
}

// Report aggregates a batch of simulated games.
type Report struct {
	Started time.Time    `yaml:"started"`
	Games   []GameRecord `yaml:"games"`
	Wins    int          `yaml:"wins"`
	Losses  int          `yaml:"losses"`
	Aborted int          `yaml:"aborted"`
}

// Add appends a game and updates the tallies.
func (r *Report) Add(g GameRecord) {
	r.Games = append(r.Games, g)
	switch g.Phase {
	case Won:
		r.Wins++
	case Lost:
		r.Losses++
	default:
		r.Aborted++
	}
}

// Save writes the report as YAML under dir and returns the file path.
func (r *Report) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	name := fmt.Sprintf("run-%s.yaml", r.Started.Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// LoadReport reads a report written by Save.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", path, err)
	}
	return &r, nil
}
