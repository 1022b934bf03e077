package game

import (
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRandomPlayout drives whole games with random clicks. Every accepted move must keep the
// board valid and be exactly undoable.
func TestRandomPlayout(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewSource(seed))
		engine, _ := newTestEngine(t, nil, withDecider(DeciderFunc(func(FusionOffer) bool {
			return rng.Intn(2) == 0
		})))

		for step := 0; step < 300 && !engine.IsGameOver(); step++ {
			action := GenerateRandomAction(engine, rng)
			require.NotNil(t, action)

			before := engine.GameState()
			res, err := engine.Apply(action)
			require.NoError(t, err, "seed %d step %d: %s", seed, step, action.Describe())

			gs := engine.GameState()
			if !gs.Over {
				require.NoError(t, gs.Board.Validate(), "seed %d step %d", seed, step)
			}

			// Hopper and fusion moves need their selection clicks again, so only placements are replayed
			if _, isPlace := action.(*core.PlaceAction); isPlace && !res.GameOver && step%7 == 0 {
				require.NoError(t, engine.Undo())
				after := engine.GameState()
				assert.True(t, before.Board.Equal(after.Board), "seed %d step %d: undo restores the board", seed, step)
				assert.Equal(t, before.Turn.CurrentPlayer, after.Turn.CurrentPlayer)
				assert.Equal(t, before.MoveNumber, after.MoveNumber)
				_, err := engine.Apply(action)
				require.NoError(t, err, "seed %d step %d: replay %s", seed, step, action.Describe())
			}
		}

		if engine.IsGameOver() {
			assert.Nil(t, GenerateRandomAction(engine, rng))
			assert.True(t, engine.GetWinner().Valid())
		}
	}
}

func TestGenerateRandomAction_FollowsPhase(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	engine, _ := newTestEngine(t, hopperBoard(t))

	require.NoError(t, engine.SelectHopper(cell("5D")))
	action := GenerateRandomAction(engine, rng)
	require.IsType(t, &core.RelocateHopperAction{}, action)
	assert.True(t, action.(*core.RelocateHopperAction).To.InBlockOf(cell("5D")))

	engine2, _ := newTestEngine(t, plusComplete(t))
	require.NoError(t, engine2.ToggleFusionMode())
	action = GenerateRandomAction(engine2, rng)
	require.IsType(t, &core.SelectFusionCenterAction{}, action)
	assert.Equal(t, cell("5D"), action.(*core.SelectFusionCenterAction).Center)

	_, err := engine2.Apply(action)
	require.NoError(t, err)
	action = GenerateRandomAction(engine2, rng)
	require.IsType(t, &core.ExecuteFusionAction{}, action)
	_, err = engine2.Apply(action)
	assert.NoError(t, err)
}
