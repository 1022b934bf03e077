package subscribers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/events"
	"github.com/mitchelldurbincs/tycerine/internal/game/events/subscribers"
)

func messages(entries []subscribers.LogEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}

func TestGameLogSubscriber_Interest(t *testing.T) {
	gl := subscribers.NewGameLogSubscriber("log", 0)
	assert.Equal(t, "log", gl.ID())
	assert.True(t, gl.InterestedIn(events.TypePiecePlaced))
	assert.True(t, gl.InterestedIn(events.TypeBattleResolved))
	assert.False(t, gl.InterestedIn(events.TypeStateTransition))
	assert.False(t, gl.InterestedIn(events.TypeHopperSelected))
}

func TestGameLogSubscriber_Messages(t *testing.T) {
	gl := subscribers.NewGameLogSubscriber("log", 0)
	xPawn := core.NewPiece(core.PlayerX, core.Pawn)
	oPawn := core.NewPiece(core.PlayerO, core.Pawn)

	testCases := []struct {
		name     string
		event    events.Event
		expected []string
	}{
		{
			name:     "placement",
			event:    events.NewPiecePlacedEvent("g", core.PlayerX, core.MustParse("8D"), 1),
			expected: []string{"X placed a Pawn at 8D"},
		},
		{
			name:     "hopper move",
			event:    events.NewHopperRelocatedEvent("g", core.PlayerO, core.MustParse("3C"), core.MustParse("4C"), core.Piece{}, 2),
			expected: []string{"O moved a Hopper from 3C to 4C"},
		},
		{
			name:     "hopper swap",
			event:    events.NewHopperRelocatedEvent("g", core.PlayerO, core.MustParse("3C"), core.MustParse("4C"), xPawn, 2),
			expected: []string{"O swapped a Hopper at 3C with X:Pawn at 4C"},
		},
		{
			name: "fusion",
			event: events.NewFusionExecutedEvent("g", core.PlayerX, "defender", core.MustParse("5D"), core.MustParse("5D"),
				nil, core.NewPiece(core.PlayerX, core.Defender), false),
			expected: []string{"X performed a defender fusion, new Defender at 5D"},
		},
		{
			name: "battle",
			event: events.NewBattleResolvedEvent("g", core.PlayerX, core.MustParse("3D"), []core.Coordinate{core.MustParse("2D")},
				0, 0, "draw", []events.RemovedPiece{
					{At: core.MustParse("2D"), Piece: oPawn},
					{At: core.MustParse("3D"), Piece: xPawn},
				}, false),
			expected: []string{
				"Battle!",
				"Attacker (X) attack power: 0",
				"Defender defense power: 0",
				"Evenly matched, all pieces involved are removed",
				"Removed O:Pawn at 2D",
				"Removed X:Pawn at 3D",
			},
		},
		{
			name:     "game over",
			event:    events.NewGameEndedEvent("g", core.PlayerX, "fortress_destroyed", 9),
			expected: []string{"Game over: X wins (fortress_destroyed)"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := len(gl.Entries())
			gl.HandleEvent(tc.event)
			assert.Equal(t, tc.expected, messages(gl.Entries()[before:]))
		})
	}
}

func TestGameLogSubscriber_BattleCategories(t *testing.T) {
	gl := subscribers.NewGameLogSubscriber("log", 0)
	gl.HandleEvent(events.NewBattleResolvedEvent("g", core.PlayerO, core.MustParse("3D"), nil, 2, 1, "attacker_wins", nil, false))

	entries := gl.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, subscribers.CategoryBattle, entries[0].Category)
	assert.Equal(t, core.PlayerO, entries[1].Player)
	assert.Equal(t, core.PlayerX, entries[2].Player)
	assert.Equal(t, "Attacker wins, defending pieces are removed", entries[3].String())
}

func TestGameLogSubscriber_ResetAndLimit(t *testing.T) {
	gl := subscribers.NewGameLogSubscriber("log", 3)
	for i := 1; i <= 5; i++ {
		gl.HandleEvent(events.NewPiecePlacedEvent("g", core.PlayerX, core.MustParse("8D"), i))
	}
	assert.Len(t, gl.Entries(), 3)
	assert.Len(t, gl.Tail(2), 2)
	assert.Len(t, gl.Tail(10), 3)

	gl.HandleEvent(events.NewGameResetEvent("g", false))
	assert.Equal(t, []string{"Board reset"}, messages(gl.Entries()))
}
