package models

import (
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDirectionTurns(t *testing.T) {
	d := Right
	for i := 0; i < 4; i++ {
		d = d.Right()
	}
	if d != Right {
		t.Errorf("Expected four right turns to return to right, got %s", d)
	}

	if Up.Left() != Left || Left.Left() != Down || Down.Left() != Right || Right.Left() != Up {
		t.Errorf("Left turns do not follow up->left->down->right")
	}
	if Up.Right() != Right || Right.Right() != Down || Down.Right() != Left || Left.Right() != Up {
		t.Errorf("Right turns do not follow up->right->down->left")
	}
}

func TestPerceptSet(t *testing.T) {
	var s PerceptSet
	s.Add(Breeze)
	s.Add(Breeze)
	s.Add(Scream)

	if got := s.Strings(); len(got) != 2 || got[0] != "breeze" || got[1] != "scream" {
		t.Errorf("Expected [breeze scream], got %v", got)
	}

	s.Remove(Breeze)
	if s.Has(Breeze) || !s.Has(Scream) {
		t.Errorf("Remove dropped the wrong percept: %v", s)
	}
}

func TestParseAction(t *testing.T) {
	for in, want := range map[string]Action{
		"forward":    Forward,
		" Move ":     Forward,
		"turn-left":  TurnLeft,
		"turn right": TurnRight,
		"GRAB":       Grab,
		"shoot":      Shoot,
		"climb_out":  Climb,
	} {
		got, err := ParseAction(in)
		if err != nil {
			t.Errorf("ParseAction(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseAction(%q) = %s, want %s", in, got, want)
		}
	}

	if _, err := ParseAction("dance"); err == nil {
		t.Errorf("Expected error for unknown action")
	}
}

func TestWorldIndexing(t *testing.T) {
	w := NewWorld(4)
	for i := range w.Cells {
		if got := w.Index(w.Pos(i)); got != i {
			t.Errorf("Index(Pos(%d)) = %d", i, got)
		}
	}

	if n := w.Neighbors(Start); len(n) != 2 {
		t.Errorf("Expected 2 neighbours of the corner, got %v", n)
	}
	if n := w.Neighbors(Position{X: 2, Y: 2}); len(n) != 4 {
		t.Errorf("Expected 4 neighbours of an inner cell, got %v", n)
	}
	if w.In(Position{X: 0, Y: 1}) || w.In(Position{X: 1, Y: 5}) {
		t.Errorf("Out-of-bounds positions reported as in bounds")
	}
}

func TestReportYAML(t *testing.T) {
	world := NewWorld(4)
	world.At(Position{X: 3, Y: 1}).Wumpus = true

	var percepts PerceptSet
	percepts.Add(Stench)

	report := &Report{Started: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	report.Add(GameRecord{
		Agent: "explorer",
		World: world,
		Phase: Lost,
		Score: -1001,
		Turns: []TurnRecord{
			{Turn: 1, Action: Forward, Position: Position{X: 2, Y: 1}, Facing: Right, Percepts: percepts, Score: -1},
		},
	})

	data, err := yaml.Marshal(report)
	if err != nil {
		t.Fatalf("Failed to marshal report: %v", err)
	}

	var report2 Report
	if err := yaml.Unmarshal(data, &report2); err != nil {
		t.Fatalf("Failed to unmarshal report: %v\n%s", err, data)
	}

	if report2.Losses != 1 || len(report2.Games) != 1 {
		t.Fatalf("Expected one lost game, got %+v", report2)
	}
	turn := report2.Games[0].Turns[0]
	if turn.Action != Forward || turn.Facing != Right || !turn.Percepts.Has(Stench) {
		t.Errorf("Turn did not survive the round trip: %+v", turn)
	}
	if !report2.Games[0].World.At(Position{X: 3, Y: 1}).Wumpus {
		t.Errorf("World lost the wumpus on the round trip")
	}
}

func TestReportSave(t *testing.T) {
	dir := t.TempDir()
	report := &Report{Started: time.Now()}
	report.Add(GameRecord{Agent: "explorer", Phase: Won, Score: 990})

	path, err := report.Save(dir)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("Report written outside %s: %s", dir, path)
	}

	loaded, err := LoadReport(path)
	if err != nil {
		t.Fatalf("LoadReport failed: %v", err)
	}
	if loaded.Wins != 1 || loaded.Games[0].Score != 990 {
		t.Errorf("Unexpected report contents: %+v", loaded)
	}
}
