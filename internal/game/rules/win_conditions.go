package rules

import (
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/rs/zerolog"
)

// End reasons reported with a finished game.
const (
	ReasonFortressDestroyed = "fortress_destroyed"
	ReasonForfeit           = "forfeit"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver reports whether a fortress is missing from the board.
// Returns (isGameOver, winner). If both fortresses are gone the side that just moved wins.
func (wc *WinConditionChecker) CheckGameOver(b *core.Board, mover core.Player) (bool, core.Player) {
	wc.logger.Debug().Msg("Checking game over conditions")

	_, xAlive := b.FindFortress(core.PlayerX)
	_, oAlive := b.FindFortress(core.PlayerO)

	var winner core.Player
	switch {
	case xAlive && oAlive:
		return false, core.NoPlayer
	case xAlive:
		winner = core.PlayerX
	case oAlive:
		winner = core.PlayerO
	default:
		winner = mover
	}

	wc.logger.Info().
		Bool("fortress_x", xAlive).
		Bool("fortress_o", oAlive).
		Str("winner", winner.String()).
		Msg("Winner determined")
	return true, winner
}
