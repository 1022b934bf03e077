package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/mitchelldurbincs/tycerine/internal/game"
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/events"
	"github.com/mitchelldurbincs/tycerine/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/tycerine/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runConsole(t *testing.T, board *core.Board, script string) (*game.Engine, string) {
	t.Helper()
	var out bytes.Buffer
	con := newConsole(bufio.NewScanner(strings.NewReader(script)), &out, consoleOptions{
		ShowLegalCells: true,
		LogTail:        3,
	})
	gameLog := subscribers.NewGameLogSubscriber(game.GameLogID, 50)

	engine, err := game.NewEngineInitializer(game.GameConfig{
		Logger:      testutil.NopLogger(),
		Board:       board,
		Decider:     con,
		Subscribers: []events.Subscriber{gameLog},
	}).Initialize(context.Background())
	require.NoError(t, err)

	con.attach(engine, gameLog)
	require.NoError(t, con.run())
	return engine, out.String()
}

func TestConsole_PlaceAndUndo(t *testing.T) {
	engine, out := runConsole(t, nil, "place 8D\nplace 2D\nundo\nquit\n")

	gs := engine.GameState()
	assert.Equal(t, core.PlayerO, gs.Turn.CurrentPlayer)
	assert.Equal(t, 1, gs.MoveNumber)
	assert.Contains(t, out, "X placed a Pawn at 8D")
	assert.Contains(t, out, "Undid place by O")
	assert.Contains(t, out, "Move 2, O to play")
}

func TestConsole_Errors(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"unknown command", "jump 5D", `unknown command "jump"`},
		{"missing cell", "place", "expected one cell"},
		{"bad notation", "place Z9", "Error:"},
		{"illegal placement", "place 5D", "Not allowed:"},
		{"nothing to undo", "undo", "Not allowed:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, out := runConsole(t, nil, tt.command+"\nquit\n")
			assert.Contains(t, out, tt.want)
			assert.Equal(t, 0, engine.GameState().MoveNumber)
		})
	}
}

func TestConsole_FusionPrompt(t *testing.T) {
	board := func() *core.Board {
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

	t.Run("accepted", func(t *testing.T) {
		engine, out := runConsole(t, board(), "place 5D\ny\nquit\n")
		assert.Contains(t, out, "X can fuse a Defender at 5D. Fuse? [y/N]")
		assert.Contains(t, out, "defender fusion")
		assert.Equal(t, 1, engine.Stats()[core.PlayerX].Defenders)
	})

	t.Run("declined", func(t *testing.T) {
		engine, out := runConsole(t, board(), "place 5D\nn\nquit\n")
		assert.Contains(t, out, "Fusion declined.")
		assert.Equal(t, 5, engine.Stats()[core.PlayerX].Pawns)
	})
}

func TestConsole_GameOver(t *testing.T) {
	engine, out := runConsole(t, nil, "forfeit\nplace 2D\nreset\nquit\n")

	assert.Contains(t, out, "Game over: O wins (forfeit)")
	assert.Contains(t, out, "The game is over, O won.")
	assert.False(t, engine.IsGameOver())
}

func TestConsole_Demo(t *testing.T) {
	engine, out := runConsole(t, nil, "demo 6\nstats\nquit\n")

	assert.Contains(t, out, "X: ")
	assert.Contains(t, out, "legal cells")
	if !engine.IsGameOver() {
		assert.GreaterOrEqual(t, engine.GameState().MoveNumber, 1)
	}
}

func TestConsole_DemoBadCount(t *testing.T) {
	_, out := runConsole(t, nil, "demo lots\nquit\n")
	assert.Contains(t, out, `demo: bad move count "lots"`)
}
