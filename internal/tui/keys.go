package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/tatianab/wumpus-world/internal/models"
)

type keyMap struct {
	Forward   key.Binding
	TurnLeft  key.Binding
	TurnRight key.Binding
	Grab      key.Binding
	Shoot     key.Binding
	Climb     key.Binding
	Restart   key.Binding
	Particles key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Forward:   key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "forward")),
	TurnLeft:  key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "turn left")),
	TurnRight: key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "turn right")),
	Grab:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grab")),
	Shoot:     key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space/s", "shoot")),
	Climb:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "climb")),
	Restart:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
	Particles: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause background")),
	Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy result")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
	Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// actionKeys maps bindings to the engine actions they trigger.
func (k keyMap) actionKeys() []struct {
	binding key.Binding
	action  models.Action
} {
	return []struct {
		binding key.Binding
		action  models.Action
	}{
		{k.Forward, models.Forward},
		{k.TurnLeft, models.TurnLeft},
		{k.TurnRight, models.TurnRight},
		{k.Grab, models.Grab},
		{k.Shoot, models.Shoot},
		{k.Climb, models.Climb},
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.TurnLeft, k.TurnRight, k.Grab, k.Shoot, k.Climb, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.TurnLeft, k.TurnRight},
		{k.Grab, k.Shoot, k.Climb},
		{k.Restart, k.Particles, k.Copy, k.Quit},
	}
}
