// Command canvas plays Wumpus World in a window. Built with
// GOOS=js GOARCH=wasm it runs in a browser.
package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tatianab/wumpus-world/internal/canvas"
	"github.com/tatianab/wumpus-world/internal/config"
	"github.com/tatianab/wumpus-world/internal/engine"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var opts []engine.Option
	if cfg.DebugLog != "" {
		opts = append(opts, engine.WithLogger(log.Default()))
	}
	eng, err := engine.NewEngine(cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	ebiten.SetWindowTitle("Wumpus World")
	ebiten.SetWindowSize(960, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(canvas.New(eng, cfg)); err != nil {
		log.Fatal(err)
	}
}
