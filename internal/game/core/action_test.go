package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActions(t *testing.T) {
	b := NewStandardBoard()
	off := Coordinate{Row: -1, Col: 0}

	tests := []struct {
		name     string
		action   Action
		typ      ActionType
		player   Player
		describe string
		wantErr  bool
	}{
		{"place", &PlaceAction{Player: PlayerX, At: MustParse("8D")}, ActionPlace, PlayerX, "place 8D", false},
		{"place off board", &PlaceAction{Player: PlayerX, At: off}, ActionPlace, PlayerX, "place (-1,0)", true},
		{"select hopper", &SelectHopperAction{Player: PlayerO, At: MustParse("2B")}, ActionSelectHopper, PlayerO, "select hopper 2B", false},
		{"relocate", &RelocateHopperAction{To: MustParse("4C")}, ActionRelocateHopper, NoPlayer, "relocate hopper to 4C", false},
		{"relocate off board", &RelocateHopperAction{To: off}, ActionRelocateHopper, NoPlayer, "relocate hopper to (-1,0)", true},
		{"toggle fusion", &ToggleFusionAction{Player: PlayerX}, ActionToggleFusion, PlayerX, "toggle fusion mode", false},
		{"fusion center", &SelectFusionCenterAction{Center: MustParse("5D")}, ActionSelectFusionCenter, NoPlayer, "select fusion center 5D", false},
		{"fusion target", &ExecuteFusionAction{Target: off}, ActionExecuteFusion, NoPlayer, "execute fusion at (-1,0)", true},
		{"undo", &UndoAction{}, ActionUndo, NoPlayer, "undo", false},
		{"reset", &ResetAction{}, ActionReset, NoPlayer, "reset", false},
		{"forfeit", &ForfeitAction{Player: PlayerO}, ActionForfeit, PlayerO, "forfeit", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.action.GetType())
			assert.Equal(t, tt.player, tt.action.GetPlayer())
			assert.Equal(t, tt.describe, tt.action.Describe())
			err := tt.action.Validate(b)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutOfBounds)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActionType_String(t *testing.T) {
	assert.Equal(t, "place", ActionPlace.String())
	assert.Equal(t, "forfeit", ActionForfeit.String())
	assert.Equal(t, "ActionType(99)", ActionType(99).String())
}
