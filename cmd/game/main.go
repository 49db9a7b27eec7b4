package main

import (
	"fmt"
	"os"

	"github.com/tatianab/wumpus-world/internal/tui"
)

func main() {
	if err := tui.Start(); err != nil {
		fmt.Printf("Error running game: %v\n", err)
		os.Exit(1)
	}
}
