// Package agent contains automated players that drive the engine from the
// same view a human sees.
package agent

import (
	"context"
	"errors"

	"github.com/tatianab/wumpus-world/internal/models"
)

// ErrNoMove is returned when an agent has nothing sensible left to try.
var ErrNoMove = errors.New("agent has no move left")

// Agent picks the next action from the current view.
type Agent interface {
	Name() string
	Next(ctx context.Context, v models.View) (models.Action, error)
}

// Step returns the action that brings a player at from, facing facing, one
// step closer to the adjacent cell to. Reversing takes two left turns.
func Step(from models.Position, facing models.Direction, to models.Position) models.Action {
	want := facing
	for _, d := range models.Directions {
		dx, dy := d.Vector()
		if from.Add(dx, dy) == to {
			want = d
			break
		}
	}

	switch want {
	case facing:
		return models.Forward
	case facing.Right():
		return models.TurnRight
	default:
		return models.TurnLeft
	}
}

// Face returns the turn needed to look along dir, or Forward when already
// facing it.
func Face(facing, dir models.Direction) models.Action {
	switch dir {
	case facing:
		return models.Forward
	case facing.Right():
		return models.TurnRight
	default:
		return models.TurnLeft
	}
}
