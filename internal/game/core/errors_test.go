package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapActionError(t *testing.T) {
	tests := []struct {
		name     string
		action   Action
		err      error
		expected string
		isNil    bool
	}{
		{
			name:   "nil error returns nil",
			action: &PlaceAction{Player: PlayerX, At: MustParse("8D")},
			err:    nil,
			isNil:  true,
		},
		{
			name:     "place action",
			action:   &PlaceAction{Player: PlayerX, At: MustParse("5D")},
			err:      ErrCellNotActive,
			expected: "player X: place 5D: cell is not a legal destination",
		},
		{
			name:     "relocate action",
			action:   &RelocateHopperAction{Player: PlayerO, To: MustParse("3C")},
			err:      ErrCellOccupied,
			expected: "player O: relocate hopper to 3C: cell is occupied",
		},
		{
			name:     "nil action fallback",
			action:   nil,
			err:      ErrWrongPhase,
			expected: "player action: action not allowed in current phase",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WrapActionError(tt.action, tt.err)
			if tt.isNil {
				assert.Nil(t, result)
				return
			}
			assert.EqualError(t, result, tt.expected)
			assert.ErrorIs(t, result, tt.err)
		})
	}
}

func TestIsRejection(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"occupied", ErrCellOccupied, true},
		{"wrapped", fmt.Errorf("ctx: %w", ErrNoFusionAvailable), true},
		{"action error", WrapActionError(&UndoAction{}, ErrNothingToUndo), true},
		{"game over is terminal, not a rejection", &GameOverError{Winner: PlayerX}, false},
		{"foreign error", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsRejection(tt.err))
		})
	}
}

func TestGameOverError(t *testing.T) {
	err := error(&GameOverError{Winner: PlayerO, Reason: "fortress destroyed"})

	assert.ErrorIs(t, err, ErrGameOver)
	assert.EqualError(t, err, "game over: O wins (fortress destroyed)")

	var goe *GameOverError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &goe))
	assert.Equal(t, PlayerO, goe.Winner)
}
