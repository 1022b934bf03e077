package game

import (
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/states"
)

// TurnState is the side to move and whatever it has selected in the current phase.
type TurnState struct {
	CurrentPlayer  core.Player
	Phase          states.TurnPhase
	FusionCenter   *core.Coordinate
	SelectedHopper *core.Coordinate
}

// GameState is a caller-owned view of a game. Engine.GameState returns a fresh copy.
type GameState struct {
	ID         string
	Board      *core.Board
	Turn       TurnState
	MoveNumber int
	Over       bool
	Winner     core.Player
	EndReason  string
}

// Clone returns a deep copy of the state
func (gs *GameState) Clone() *GameState {
	if gs == nil {
		return nil
	}

	clone := *gs
	if gs.Board != nil {
		clone.Board = gs.Board.Clone()
	}
	clone.Turn.FusionCenter = copyCoordinate(gs.Turn.FusionCenter)
	clone.Turn.SelectedHopper = copyCoordinate(gs.Turn.SelectedHopper)
	return &clone
}

func copyCoordinate(c *core.Coordinate) *core.Coordinate {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
