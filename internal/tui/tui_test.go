package tui

import (
	"errors"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tatianab/wumpus-world/internal/config"
	"github.com/tatianab/wumpus-world/internal/engine"
	"github.com/tatianab/wumpus-world/internal/models"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	w := models.NewWorld(4)
	w.At(models.Position{X: 3, Y: 1}).Wumpus = true
	w.At(models.Position{X: 4, Y: 4}).Gold = true

	cfg := config.Default()
	eng, err := engine.NewEngine(cfg, engine.WithWorld(w), engine.WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	m := NewModel(eng, cfg)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(model)
}

func press(m model, k tea.KeyMsg) (model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestActionKeysDriveEngine(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.feed.view.Position; got != (models.Position{X: 2, Y: 1}) {
		t.Fatalf("Expected player at [2,1], got %s", got)
	}
	if !strings.Contains(m.gameLog, "> forward") {
		t.Errorf("Action missing from the log: %q", m.gameLog)
	}

	m, _ = press(m, runes("w"))
	if m.feed.view.Phase != models.Lost {
		t.Fatalf("Expected to walk into the wumpus, phase is %s", m.feed.view.Phase)
	}
	if !strings.Contains(m.View(), "Final score: -1002") {
		t.Errorf("Game over panel not rendered")
	}

	score := m.feed.view.Score
	m, _ = press(m, runes("a"))
	if m.feed.view.Score != score {
		t.Errorf("Disabled controls still changed the score")
	}
}

func TestShootSchedulesTimers(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(m, runes("s"))
	if cmd == nil {
		t.Fatalf("Expected timer commands after killing the wumpus")
	}
	if !m.feed.view.Percepts.Has(models.Scream) {
		t.Fatalf("Expected scream after the shot")
	}

	m, _ = press(m, runes("s"))
	if m.feed.view.Arrows != 0 {
		t.Errorf("Expected no arrows left, got %d", m.feed.view.Arrows)
	}
}

func TestTimerMsgFiresEngineTimer(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, runes("d"))
	m, _ = press(m, runes("w"))
	if !m.feed.view.Percepts.Has(models.Bump) {
		t.Fatalf("Expected bump facing down at [1,1]")
	}

	next, _ := m.Update(timerMsg{timer: engine.Timer{Epoch: 0, Seq: 1, Kind: engine.ClearBump}})
	m = next.(model)
	if m.feed.view.Percepts.Has(models.Bump) {
		t.Errorf("Bump should be cleared by its timer")
	}
}

func TestRestartClearsLog(t *testing.T) {
	m := newTestModel(t)
	m, _ = press(m, runes("d"))
	m, _ = press(m, runes("r"))

	if m.engine.Epoch() != 1 {
		t.Errorf("Expected a new game, epoch is %d", m.engine.Epoch())
	}
	if strings.Contains(m.gameLog, "turn_right") {
		t.Errorf("Log kept entries from the previous game")
	}
	if m.feed.view.Score != 0 {
		t.Errorf("Expected a fresh score, got %d", m.feed.view.Score)
	}
}

func TestParticlePauseStopsFrames(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, runes("p"))
	next, cmd := m.Update(frameMsg{})
	m = next.(model)
	if cmd != nil {
		t.Errorf("Stopped field should not schedule another frame")
	}

	m, cmd = press(m, runes("p"))
	if cmd == nil || !m.field.Running() {
		t.Errorf("Resuming should restart the frame loop")
	}
}

func TestCopyResult(t *testing.T) {
	orig := copyToClipboard
	defer func() { copyToClipboard = orig }()

	var copied string
	copyToClipboard = func(s string) error {
		copied = s
		return nil
	}

	m := newTestModel(t)
	m, _ = press(m, runes("w"))
	m, _ = press(m, runes("w"))
	m, _ = press(m, runes("y"))

	if !strings.Contains(copied, "Final score: -1002") {
		t.Errorf("Unexpected clipboard contents: %q", copied)
	}
	if m.notice != "Result copied to clipboard." {
		t.Errorf("Unexpected notice %q", m.notice)
	}

	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	m, _ = press(m, runes("y"))
	if m.notice != "Could not copy to clipboard." {
		t.Errorf("Unexpected notice %q", m.notice)
	}
}

func TestLine(t *testing.T) {
	var pts [][2]int
	line(0, 0, 3, 1, func(x, y int) { pts = append(pts, [2]int{x, y}) })
	if len(pts) != 4 || pts[0] != [2]int{0, 0} || pts[3] != [2]int{3, 1} {
		t.Errorf("Unexpected line %v", pts)
	}
}

func restoreLog(t *testing.T) {
	out, prefix, flags := log.Writer(), log.Prefix(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetPrefix(prefix)
		log.SetFlags(flags)
	})
}

func TestOpenEngineWritesDebugLog(t *testing.T) {
	restoreLog(t)
	cfg := config.Default()
	cfg.DebugLog = filepath.Join(t.TempDir(), "debug.log")

	eng, closeLog, err := openEngine(cfg)
	if err != nil {
		t.Fatalf("openEngine failed: %v", err)
	}
	eng.Restart()
	closeLog()

	data, err := os.ReadFile(cfg.DebugLog)
	if err != nil {
		t.Fatalf("Reading debug log: %v", err)
	}
	if !strings.Contains(string(data), "game 1 started") {
		t.Errorf("Engine output missing from debug log: %q", data)
	}
}

func TestOpenEngineSilencesLogByDefault(t *testing.T) {
	restoreLog(t)

	eng, closeLog, err := openEngine(config.Default())
	if err != nil {
		t.Fatalf("openEngine failed: %v", err)
	}
	defer closeLog()
	if eng.Phase() != models.Playing {
		t.Errorf("Expected a game in progress, got %s", eng.Phase())
	}
	if log.Writer() != io.Discard {
		t.Errorf("Standard logger should be discarded without a debug log")
	}
}

func TestOpenEngineRejectsBadConfig(t *testing.T) {
	restoreLog(t)
	cfg := config.Default()
	cfg.GridSize = 1

	if _, _, err := openEngine(cfg); err == nil {
		t.Errorf("Expected an error for a 1x1 grid")
	}
}
