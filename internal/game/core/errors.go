package core

import (
	"errors"
	"fmt"
)

// Rejections. A rejected action leaves the game untouched.
var (
	ErrOutOfBounds         = errors.New("coordinate out of bounds")
	ErrCellOccupied        = errors.New("cell is occupied")
	ErrCellNotActive       = errors.New("cell is not a legal destination")
	ErrNotOwnedPiece       = errors.New("piece not owned by player")
	ErrNoFusionAvailable   = errors.New("no fusion available")
	ErrInvalidFusionTarget = errors.New("invalid fusion target")
	ErrWrongPhase          = errors.New("action not allowed in current phase")
	ErrNotYourTurn         = errors.New("not this player's turn")
	ErrNothingToUndo       = errors.New("nothing to undo")
)

var (
	ErrGameOver        = errors.New("game is over")
	ErrInvalidNotation = errors.New("invalid coordinate notation")
	ErrInvalidBoard    = errors.New("invalid board")
)

var rejections = []error{
	ErrOutOfBounds,
	ErrCellOccupied,
	ErrCellNotActive,
	ErrNotOwnedPiece,
	ErrNoFusionAvailable,
	ErrInvalidFusionTarget,
	ErrWrongPhase,
	ErrNotYourTurn,
	ErrNothingToUndo,
}

// IsRejection reports whether err is a recoverable refusal of an action.
func IsRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}

// ActionError adds the acting player and action to an error while keeping it unwrappable.
type ActionError struct {
	Player Player
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("player %s: %s: %v", e.Player, e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// WrapActionError wraps err with the context of the action that caused it. nil stays nil.
func WrapActionError(action Action, err error) error {
	if err == nil {
		return nil
	}
	if action == nil {
		return fmt.Errorf("player action: %w", err)
	}
	return &ActionError{Player: action.GetPlayer(), Action: action.Describe(), Err: err}
}

// GameOverError reports the end of a game. It matches ErrGameOver with errors.Is.
type GameOverError struct {
	Winner Player
	Reason string
}

func (e *GameOverError) Error() string {
	return fmt.Sprintf("game over: %s wins (%s)", e.Winner, e.Reason)
}

func (e *GameOverError) Unwrap() error { return ErrGameOver }
