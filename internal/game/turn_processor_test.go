package game

import (
	"testing"

	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/events"
	"github.com/mitchelldurbincs/tycerine/internal/game/rules"
	"github.com/mitchelldurbincs/tycerine/internal/game/states"
	"github.com/mitchelldurbincs/tycerine/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plusMissingCenter: placing X at 5D completes a Defender recipe
func plusMissingCenter(t *testing.T) *core.Board {
	return testutil.MustBoard(t,
		"...f...",
		".......",
		".......",
		"...P...",
		"..P.P..",
		"...P...",
		".......",
		".......",
		"...F...",
	)
}

func TestPlace_DefenderFusionAccepted(t *testing.T) {
	var offers []FusionOffer
	decider := DeciderFunc(func(o FusionOffer) bool {
		offers = append(offers, o)
		return true
	})
	engine, rec := newTestEngine(t, plusMissingCenter(t), withDecider(decider))

	res, err := engine.AttemptPlace(cell("5D"))
	require.NoError(t, err)

	require.Len(t, offers, 1)
	assert.Equal(t, FusionOffer{Player: core.PlayerX, Kind: rules.DefenderFusion, Center: cell("5D"), Placed: cell("5D")}, offers[0])

	require.NotNil(t, res.Fusion)
	assert.Equal(t, rules.DefenderFusion, res.Fusion.Kind)
	assert.Equal(t, cell("5D"), res.Fusion.Target)
	assert.False(t, res.Battle.Occurred, "an accepted fusion replaces the battle")
	assert.Equal(t, core.PlayerO, res.NextPlayer)

	b := engine.GameState().Board
	assert.Equal(t, core.NewPiece(core.PlayerX, core.Defender), b.At(cell("5D")))
	for _, c := range testutil.Cells("4D", "6D", "5C", "5E") {
		assert.True(t, b.IsEmpty(c), "%s consumed", c)
	}

	executed := rec.OfType(events.TypeFusionExecuted)
	require.Len(t, executed, 1)
	ev := executed[0].(*events.FusionExecutedEvent)
	assert.False(t, ev.Manual)
	assert.Equal(t, "defender", ev.Kind)
	assert.Empty(t, rec.OfType(events.TypeBattleResolved))

	history := engine.History()
	require.Len(t, history, 1)
	assert.Equal(t, HistoryPlace, history[0].Kind)
}

func TestPlace_DefenderFusionDeclined(t *testing.T) {
	engine, rec := newTestEngine(t, plusMissingCenter(t))

	res, err := engine.AttemptPlace(cell("5D"))
	require.NoError(t, err)

	assert.Nil(t, res.Fusion)
	assert.True(t, res.FusionDeclined)
	assert.Equal(t, core.NewPiece(core.PlayerX, core.Pawn), engine.GameState().Board.At(cell("5D")))

	declined := rec.OfType(events.TypeFusionDeclined)
	require.Len(t, declined, 1)
	assert.Equal(t, cell("5D"), declined[0].(*events.FusionDeclinedEvent).Center)

	// The recipe stays on the board for a later manual fusion
	_, err = engine.AttemptPlace(cell("2D"))
	require.NoError(t, err)
	assert.True(t, engine.FusionCandidates().Has(cell("5D")))
}

func TestPlace_UndoAfterFusion(t *testing.T) {
	engine, _ := newTestEngine(t, plusMissingCenter(t), withDecider(AlwaysFuse))
	before := engine.GameState()

	_, err := engine.AttemptPlace(cell("5D"))
	require.NoError(t, err)
	require.NoError(t, engine.Undo())

	assert.Equal(t, before, engine.GameState())
}

func TestPlace_HopperFusionAccepted(t *testing.T) {
	b := testutil.MustBoard(t,
		".......",
		".......",
		".......",
		"..PPP..",
		"..PDP..",
		"..PP...",
	)
	engine, _ := newTestEngine(t, b, withDecider(AlwaysFuse))

	res, err := engine.AttemptPlace(cell("6E"))
	require.NoError(t, err)

	require.NotNil(t, res.Fusion)
	assert.Equal(t, rules.HopperFusion, res.Fusion.Kind)
	assert.Equal(t, cell("5D"), res.Fusion.Center)
	assert.Len(t, res.Fusion.Consumed, 9)

	stats := engine.Stats()[core.PlayerX]
	assert.Equal(t, 1, stats.Hoppers)
	assert.Equal(t, 1, stats.Pieces())
	assert.Equal(t, core.NewPiece(core.PlayerX, core.Hopper), engine.GameState().Board.At(cell("5D")))
}

// plusComplete holds a finished Defender recipe centred on 5D for X
func plusComplete(t *testing.T) *core.Board {
	return testutil.MustBoard(t,
		"...f...",
		".......",
		".......",
		"...P...",
		"..PPP..",
		"...P...",
		".......",
		".......",
		"...F...",
	)
}

func TestManualFusion(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantErr error
	}{
		{name: "empty cell in the block", target: "4C"},
		{name: "consumed cell", target: "4D"},
		{name: "center", target: "5D"},
		{name: "outside the block", target: "7D", wantErr: core.ErrInvalidFusionTarget},
		{name: "occupied cell in the block", target: "6E", wantErr: core.ErrInvalidFusionTarget},
	}

	board := func() *core.Board {
		b := plusComplete(t)
		testutil.Put(t, b, core.NewPiece(core.PlayerO, core.Pawn), "6E")
		return b
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, rec := newTestEngine(t, board())

			require.NoError(t, engine.ToggleFusionMode())
			assert.Equal(t, states.PhaseFusionSelect1, engine.Phase())
			modes := rec.OfType(events.TypeFusionMode)
			require.Len(t, modes, 1)
			assert.Equal(t, testutil.Cells("5D"), modes[0].(*events.FusionModeEvent).Candidates)

			highlighted, err := engine.SelectFusionCenter(cell("5D"))
			require.NoError(t, err)
			assert.Equal(t, 9, highlighted.Len())
			assert.Equal(t, states.PhaseFusionSelect2, engine.Phase())
			require.NotNil(t, engine.GameState().Turn.FusionCenter)

			before := engine.GameState()
			res, err := engine.ExecuteFusion(cell(tt.target))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, engine.GameState(), "a bad target keeps the center selected")
				assert.Empty(t, engine.History())
				return
			}

			require.NoError(t, err)
			assert.True(t, res.Moved)
			assert.Equal(t, cell("5D"), res.From)
			assert.Equal(t, core.PlayerO, res.NextPlayer)

			gs := engine.GameState()
			assert.Equal(t, core.NewPiece(core.PlayerX, core.Defender), gs.Board.At(cell(tt.target)))
			assert.Equal(t, 1, engine.Stats()[core.PlayerX].Defenders)
			assert.Equal(t, 0, engine.Stats()[core.PlayerX].Pawns)
			assert.Equal(t, states.PhaseAwaitingAction, gs.Turn.Phase)
			assert.Nil(t, gs.Turn.FusionCenter)

			history := engine.History()
			require.Len(t, history, 1)
			assert.Equal(t, HistoryFusion, history[0].Kind)
			assert.Equal(t, cell(tt.target), history[0].At)

			executed := rec.OfType(events.TypeFusionExecuted)
			require.Len(t, executed, 1)
			assert.True(t, executed[0].(*events.FusionExecutedEvent).Manual)

			require.NoError(t, engine.Undo())
			restored := engine.GameState()
			assert.True(t, restored.Board.Equal(board()))
			assert.Equal(t, core.PlayerX, restored.Turn.CurrentPlayer)
			assert.Equal(t, 0, restored.MoveNumber)
		})
	}
}

func TestManualFusion_Rejections(t *testing.T) {
	b := plusComplete(t)
	testutil.Put(t, b, core.NewPiece(core.PlayerX, core.Hopper), "7A")

	t.Run("center without a recipe", func(t *testing.T) {
		engine, _ := newTestEngine(t, b)
		require.NoError(t, engine.ToggleFusionMode())

		_, err := engine.SelectFusionCenter(cell("4D"))
		assert.ErrorIs(t, err, core.ErrNoFusionAvailable)
		assert.Equal(t, states.PhaseFusionSelect1, engine.Phase())
	})

	t.Run("other actions while in fusion mode", func(t *testing.T) {
		engine, _ := newTestEngine(t, b)
		require.NoError(t, engine.ToggleFusionMode())

		_, err := engine.AttemptPlace(cell("3D"))
		assert.ErrorIs(t, err, core.ErrWrongPhase)
		assert.ErrorIs(t, engine.SelectHopper(cell("7A")), core.ErrWrongPhase)
		_, err = engine.RelocateHopper(cell("7B"))
		assert.ErrorIs(t, err, core.ErrWrongPhase)
	})

	t.Run("toggling off keeps the turn", func(t *testing.T) {
		engine, rec := newTestEngine(t, b)
		require.NoError(t, engine.ToggleFusionMode())
		_, err := engine.SelectFusionCenter(cell("5D"))
		require.NoError(t, err)

		require.NoError(t, engine.ToggleFusionMode())

		gs := engine.GameState()
		assert.Equal(t, states.PhaseAwaitingAction, gs.Turn.Phase)
		assert.Nil(t, gs.Turn.FusionCenter)
		assert.Equal(t, core.PlayerX, gs.Turn.CurrentPlayer)
		assert.Equal(t, 0, gs.MoveNumber)
		assert.Empty(t, engine.History())
		assert.Empty(t, rec.OfType(events.TypeTurnChanged))
	})

	t.Run("fusion mode while a hopper is selected", func(t *testing.T) {
		engine, _ := newTestEngine(t, b)
		require.NoError(t, engine.SelectHopper(cell("7A")))

		assert.ErrorIs(t, engine.ToggleFusionMode(), core.ErrWrongPhase)
		assert.Equal(t, states.PhaseHopperSelected, engine.Phase())
	})
}

// hopperBoard: X Hopper at 5D next to an X Pawn at 6D, O Hopper at 2B
func hopperBoard(t *testing.T) *core.Board {
	return testutil.MustBoard(t,
		"...f...",
		".h.....",
		".......",
		".......",
		"...H...",
		"...P...",
		".......",
		".......",
		"...F...",
	)
}

func TestSelectHopper(t *testing.T) {
	engine, rec := newTestEngine(t, hopperBoard(t))

	require.NoError(t, engine.SelectHopper(cell("5D")))
	gs := engine.GameState()
	assert.Equal(t, states.PhaseHopperSelected, gs.Turn.Phase)
	require.NotNil(t, gs.Turn.SelectedHopper)
	assert.Equal(t, cell("5D"), *gs.Turn.SelectedHopper)

	selected := rec.OfType(events.TypeHopperSelected)
	require.Len(t, selected, 1)
	ev := selected[0].(*events.HopperSelectedEvent)
	assert.True(t, ev.Selected)
	assert.Len(t, ev.Destinations, 9)

	// Another cell while selected
	assert.ErrorIs(t, engine.SelectHopper(cell("6D")), core.ErrWrongPhase)
	_, err := engine.AttemptPlace(cell("4D"))
	assert.ErrorIs(t, err, core.ErrWrongPhase)

	// Same cell again deselects
	require.NoError(t, engine.SelectHopper(cell("5D")))
	gs = engine.GameState()
	assert.Equal(t, states.PhaseAwaitingAction, gs.Turn.Phase)
	assert.Nil(t, gs.Turn.SelectedHopper)
	assert.Equal(t, core.PlayerX, gs.Turn.CurrentPlayer)
	assert.Empty(t, engine.History())
}

func TestSelectHopper_NotOwned(t *testing.T) {
	tests := []struct {
		name string
		at   string
	}{
		{"opponent hopper", "2B"},
		{"own pawn", "6D"},
		{"empty cell", "4D"},
		{"own fortress", "9D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newTestEngine(t, hopperBoard(t))

			err := engine.SelectHopper(cell(tt.at))
			assert.ErrorIs(t, err, core.ErrNotOwnedPiece)
			assert.Equal(t, states.PhaseAwaitingAction, engine.Phase())
		})
	}
}

func TestRelocateHopper(t *testing.T) {
	tests := []struct {
		name        string
		to          string
		wantSwapped core.Piece
	}{
		{name: "onto an empty cell", to: "4E"},
		{name: "swap with own pawn", to: "6D", wantSwapped: core.NewPiece(core.PlayerX, core.Pawn)},
		{name: "stay in place", to: "5D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, rec := newTestEngine(t, hopperBoard(t))
			before := engine.GameState()

			require.NoError(t, engine.SelectHopper(cell("5D")))
			res, err := engine.RelocateHopper(cell(tt.to))
			require.NoError(t, err)

			assert.True(t, res.Moved)
			assert.Equal(t, cell("5D"), res.From)
			assert.Equal(t, cell(tt.to), res.At)
			assert.Equal(t, tt.wantSwapped, res.SwappedWith)
			assert.Equal(t, core.PlayerO, res.NextPlayer)

			gs := engine.GameState()
			assert.Equal(t, core.NewPiece(core.PlayerX, core.Hopper), gs.Board.At(cell(tt.to)))
			if tt.to != "5D" {
				assert.Equal(t, tt.wantSwapped, gs.Board.At(cell("5D")))
			}
			assert.Equal(t, states.PhaseAwaitingAction, gs.Turn.Phase)
			assert.Nil(t, gs.Turn.SelectedHopper)
			assert.Equal(t, 1, gs.MoveNumber)

			relocated := rec.OfType(events.TypeHopperRelocated)
			require.Len(t, relocated, 1)
			assert.Equal(t, !tt.wantSwapped.IsEmpty(), relocated[0].(*events.HopperRelocatedEvent).Swapped())

			history := engine.History()
			require.Len(t, history, 1)
			assert.Equal(t, HistoryHopperMove, history[0].Kind)
			assert.Equal(t, cell("5D"), history[0].From)

			require.NoError(t, engine.Undo())
			assert.Equal(t, before, engine.GameState())
		})
	}
}

func TestRelocateHopper_OutOfReach(t *testing.T) {
	engine, _ := newTestEngine(t, hopperBoard(t))
	require.NoError(t, engine.SelectHopper(cell("5D")))
	before := engine.GameState()

	_, err := engine.RelocateHopper(cell("7D"))
	assert.ErrorIs(t, err, core.ErrCellNotActive)
	assert.Equal(t, before, engine.GameState(), "the hopper stays selected")
}

func TestRelocateHopper_StartsBattle(t *testing.T) {
	// The hopper jumps to 3D: ap 2 from the Pawns at 4C and 4E, dp 1 from the Pawn at 1C
	b := testutil.MustBoard(t,
		"..p....",
		"...p...",
		".......",
		"..PHP..",
	)
	engine, rec := newTestEngine(t, b)

	require.NoError(t, engine.SelectHopper(cell("4D")))
	res, err := engine.RelocateHopper(cell("3D"))
	require.NoError(t, err)

	require.True(t, res.Battle.Occurred)
	assert.Equal(t, testutil.Cells("2D"), res.Battle.Defenders)
	assert.Equal(t, 2, res.Battle.AttackPower)
	assert.Equal(t, 1, res.Battle.DefensePower)
	assert.Equal(t, rules.AttackerWins, res.Battle.Outcome)
	assert.Equal(t, []rules.Removal{
		{At: cell("2D"), Piece: core.NewPiece(core.PlayerO, core.Pawn)},
		{At: cell("1C"), Piece: core.NewPiece(core.PlayerO, core.Pawn)},
	}, res.Battle.Removed)

	assert.Equal(t, 0, engine.GameState().Board.Count(core.PlayerO))
	assert.Equal(t, 3, engine.GameState().Board.Count(core.PlayerX))
	assert.Len(t, rec.OfType(events.TypeBattleResolved), 1)
}

func TestUndo_ClearsSelection(t *testing.T) {
	engine, _ := newTestEngine(t, hopperBoard(t))
	_, err := engine.AttemptPlace(cell("7D"))
	require.NoError(t, err)
	_, err = engine.AttemptPlace(cell("3B"))
	require.NoError(t, err)

	require.NoError(t, engine.SelectHopper(cell("5D")))
	require.NoError(t, engine.Undo())

	gs := engine.GameState()
	assert.Equal(t, core.PlayerO, gs.Turn.CurrentPlayer)
	assert.Equal(t, states.PhaseAwaitingAction, gs.Turn.Phase)
	assert.Nil(t, gs.Turn.SelectedHopper)
	assert.True(t, gs.Board.IsEmpty(cell("3B")))
}
