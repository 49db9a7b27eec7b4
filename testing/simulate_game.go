package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tatianab/wumpus-world/internal/agent"
	"github.com/tatianab/wumpus-world/internal/config"
	"github.com/tatianab/wumpus-world/internal/engine"
	"github.com/tatianab/wumpus-world/internal/models"
)

// Simulated time between two moves. Timers fire against this clock rather
// than the wall clock so a batch runs as fast as the agent answers.
const turnDelay = 500 * time.Millisecond

type pending struct {
	due   time.Duration
	timer engine.Timer
}

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var gemini *agent.Gemini
	if cfg.GeminiAPIKey != "" {
		gemini, err = agent.NewGemini(ctx, cfg.GeminiAPIKey, cfg.Agent.Model, log.New(os.Stderr, "gemini: ", 0))
		if err != nil {
			log.Fatalf("Failed to create player client: %v", err)
		}
		defer gemini.Close()
	}

	report := &models.Report{Started: time.Now()}
	for i := 1; i <= cfg.Agent.Games; i++ {
		var player agent.Agent = agent.NewExplorer()
		if gemini != nil {
			gemini.Reset()
			player = gemini
		}

		fmt.Printf("=== Game %d (%s) ===\n", i, player.Name())
		rec, err := playGame(ctx, cfg, player)
		if err != nil {
			log.Fatalf("Game %d failed: %v", i, err)
		}
		report.Add(rec)

		fmt.Printf("Result: %s with score %d", rec.Phase, rec.Score)
		if rec.Reason != "" {
			fmt.Printf(" (%s)", rec.Reason)
		}
		fmt.Print("\n\n")
	}

	fmt.Printf("Won %d, lost %d, aborted %d of %d games\n",
		report.Wins, report.Losses, report.Aborted, len(report.Games))

	path, err := report.Save(cfg.ReportDir)
	if err != nil {
		log.Fatalf("Failed to save report: %v", err)
	}
	fmt.Printf("Report saved to %s\n", path)
}

func playGame(ctx context.Context, cfg *config.Config, player agent.Agent) (models.GameRecord, error) {
	var view models.View
	eng, err := engine.NewEngine(cfg, engine.WithDisplay(engine.DisplayFunc(func(v models.View) { view = v })))
	if err != nil {
		return models.GameRecord{}, err
	}

	rec := models.GameRecord{Agent: player.Name(), World: eng.World()}
	fmt.Printf("%s\n", view.Message)

	var (
		now    time.Duration
		timers []pending
	)
	for turn := 1; turn <= cfg.Agent.MaxTurns && !view.Phase.Terminal(); turn++ {
		action, err := player.Next(ctx, view)
		if errors.Is(err, agent.ErrNoMove) {
			rec.Reason = "agent gave up"
			break
		}
		if err != nil {
			return rec, fmt.Errorf("turn %d: %w", turn, err)
		}

		eng.Do(action)
		for _, t := range eng.Timers() {
			timers = append(timers, pending{due: now + t.Delay, timer: t})
		}
		fmt.Printf("%3d. %-10s %s facing %-5s score %5d  [%s] %s\n",
			turn, action, view.Position, view.Facing, view.Score, view.Percepts, view.Message)
		rec.Turns = append(rec.Turns, models.TurnRecord{
			Turn:     turn,
			Action:   action,
			Position: view.Position,
			Facing:   view.Facing,
			Percepts: view.Percepts,
			Score:    view.Score,
			Message:  view.Message,
		})

		now += turnDelay
		kept := timers[:0]
		for _, p := range timers {
			if p.due > now {
				kept = append(kept, p)
				continue
			}
			eng.Fire(p.timer)
		}
		timers = kept
	}

	if !view.Phase.Terminal() && rec.Reason == "" {
		rec.Reason = fmt.Sprintf("no result after %d turns", cfg.Agent.MaxTurns)
	}
	rec.Phase = view.Phase
	rec.Score = view.Score
	return rec, nil
}
