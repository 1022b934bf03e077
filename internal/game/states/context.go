package states

import (
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/rs/zerolog"
)

// TurnContext carries the selections that belong to the current turn phase.
type TurnContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// CurrentPlayer is the side to move
	CurrentPlayer core.Player

	// SelectedHopper is set while in PhaseHopperSelected
	SelectedHopper *core.Coordinate

	// FusionCenter is set while in PhaseFusionSelect2
	FusionCenter *core.Coordinate

	// Metadata for custom state data
	Metadata map[string]interface{}
}

// NewTurnContext creates a context with X to move
func NewTurnContext(gameID string, logger zerolog.Logger) *TurnContext {
	return &TurnContext{
		GameID:        gameID,
		Logger:        logger.With().Str("game_id", gameID).Logger(),
		CurrentPlayer: core.PlayerX,
		Metadata:      make(map[string]interface{}),
	}
}

// SelectHopper records the hopper that is about to enter moving mode
func (tc *TurnContext) SelectHopper(at core.Coordinate) {
	tc.SelectedHopper = &at
}

// SelectFusionCenter records the fusion center chosen with the first click
func (tc *TurnContext) SelectFusionCenter(at core.Coordinate) {
	tc.FusionCenter = &at
}

// ClearSelections drops any hopper or fusion selection
func (tc *TurnContext) ClearSelections() {
	tc.SelectedHopper = nil
	tc.FusionCenter = nil
}

// SetMetadata stores custom data for states
func (tc *TurnContext) SetMetadata(key string, value interface{}) {
	tc.Metadata[key] = value
}

// GetMetadata retrieves custom data stored by states
func (tc *TurnContext) GetMetadata(key string) (interface{}, bool) {
	val, exists := tc.Metadata[key]
	return val, exists
}
