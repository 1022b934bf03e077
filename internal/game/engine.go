package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/events"
	"github.com/mitchelldurbincs/tycerine/internal/game/rules"
	"github.com/mitchelldurbincs/tycerine/internal/game/states"
	"github.com/rs/zerolog"
)

// Engine runs one game. It is not safe for concurrent use; callers drive it from a single
// goroutine and observe it through the event bus.
type Engine struct {
	gameID string
	logger zerolog.Logger

	board      *core.Board
	initial    core.Snapshot
	first      core.Player
	moveNumber int
	over       bool
	winner     core.Player
	endReason  string

	// fortressed games end as soon as a fortress is missing
	fortressed bool
	autoReset  bool

	history       *History
	decider       FusionDecider
	eventBus      *events.EventBus
	stateMachine  *states.StateMachine
	battles       *rules.BattleResolver
	winCondition  *rules.WinConditionChecker
	turnProcessor *TurnProcessor
}

// MoveResult reports what an accepted action did. Only the fields that apply to the
// action are set.
type MoveResult struct {
	Action core.ActionType
	Player core.Player
	// Moved is true when the action was a move that ended the turn
	Moved bool

	At          core.Coordinate
	From        core.Coordinate
	SwappedWith core.Piece

	Fusion         *rules.FusionResult
	FusionDeclined bool
	Battle         rules.BattleResult

	// Highlighted holds hopper destinations, fusion candidates or the chosen center's block
	Highlighted core.CellSet

	NextPlayer core.Player
	LegalCells core.CellSet

	GameOver bool
	Winner   core.Player
	Reason   string
}

// NewEngine creates an engine for a standard game with default settings
func NewEngine(ctx context.Context, logger zerolog.Logger) (*Engine, error) {
	return NewEngineInitializer(GameConfig{Logger: logger}).Initialize(ctx)
}

// Apply validates and performs an action. A rejected action leaves the game untouched,
// publishes an action.rejected event and returns a *core.ActionError.
func (e *Engine) Apply(action core.Action) (*MoveResult, error) {
	if action == nil {
		return nil, errors.New("nil action")
	}

	mover := e.currentPlayer()
	if err := e.checkAction(action, mover); err != nil {
		return nil, e.reject(action, mover, err)
	}

	res, err := e.dispatch(action, mover)
	if err != nil {
		return nil, e.reject(action, mover, err)
	}
	return res, nil
}

func (e *Engine) checkAction(action core.Action, mover core.Player) error {
	if action.GetType() == core.ActionReset {
		return nil
	}
	if e.over {
		return &core.GameOverError{Winner: e.winner, Reason: e.endReason}
	}
	if p := action.GetPlayer(); p != core.NoPlayer && p != mover {
		return fmt.Errorf("%s to move: %w", mover, core.ErrNotYourTurn)
	}
	return action.Validate(e.board)
}

func (e *Engine) dispatch(action core.Action, mover core.Player) (*MoveResult, error) {
	tp := e.turnProcessor
	switch a := action.(type) {
	case *core.PlaceAction:
		return tp.Place(mover, a.At)
	case *core.SelectHopperAction:
		return tp.SelectHopper(mover, a.At)
	case *core.RelocateHopperAction:
		return tp.RelocateHopper(mover, a.To)
	case *core.ToggleFusionAction:
		return tp.ToggleFusionMode(mover)
	case *core.SelectFusionCenterAction:
		return tp.SelectFusionCenter(mover, a.Center)
	case *core.ExecuteFusionAction:
		return tp.ExecuteFusion(mover, a.Target)
	case *core.UndoAction:
		return e.undo()
	case *core.ResetAction:
		e.reset(false)
		return &MoveResult{Action: core.ActionReset, NextPlayer: e.first, LegalCells: e.LegalPlacementCells()}, nil
	case *core.ForfeitAction:
		return e.forfeit(mover), nil
	default:
		return nil, fmt.Errorf("unsupported action %s", action.GetType())
	}
}

func (e *Engine) reject(action core.Action, mover core.Player, err error) error {
	e.logger.Debug().
		Err(err).
		Str("player", mover.String()).
		Str("action", action.Describe()).
		Msg("Action rejected")

	e.eventBus.Publish(events.NewActionRejectedEvent(e.gameID, mover, action.Describe(), err.Error()))

	wrapped := core.WrapActionError(action, err)
	var ae *core.ActionError
	if errors.As(wrapped, &ae) && ae.Player == core.NoPlayer {
		ae.Player = mover
	}
	return wrapped
}

// AttemptPlace places a Pawn for the side to move
func (e *Engine) AttemptPlace(c core.Coordinate) (*MoveResult, error) {
	return e.Apply(&core.PlaceAction{At: c})
}

// SelectHopper selects an own Hopper, or deselects it when it is already selected
func (e *Engine) SelectHopper(c core.Coordinate) error {
	_, err := e.Apply(&core.SelectHopperAction{At: c})
	return err
}

// RelocateHopper moves the selected Hopper to dest, swapping with any piece there
func (e *Engine) RelocateHopper(dest core.Coordinate) (*MoveResult, error) {
	return e.Apply(&core.RelocateHopperAction{To: dest})
}

// ToggleFusionMode enters or leaves manual fusion mode
func (e *Engine) ToggleFusionMode() error {
	_, err := e.Apply(&core.ToggleFusionAction{})
	return err
}

// SelectFusionCenter picks the fusion center and returns the cells a target may be chosen from
func (e *Engine) SelectFusionCenter(c core.Coordinate) (core.CellSet, error) {
	res, err := e.Apply(&core.SelectFusionCenterAction{Center: c})
	if err != nil {
		return nil, err
	}
	return res.Highlighted, nil
}

// ExecuteFusion completes a manual fusion at target and ends the turn
func (e *Engine) ExecuteFusion(target core.Coordinate) (*MoveResult, error) {
	return e.Apply(&core.ExecuteFusionAction{Target: target})
}

// Undo rolls back the latest move
func (e *Engine) Undo() error {
	_, err := e.Apply(&core.UndoAction{})
	return err
}

// Reset starts the game over from its initial position
func (e *Engine) Reset() {
	_, _ = e.Apply(&core.ResetAction{})
}

// Forfeit concedes the game for the side to move
func (e *Engine) Forfeit() (*MoveResult, error) {
	return e.Apply(&core.ForfeitAction{})
}

// LegalPlacementCells returns where the side to move may place a Pawn
func (e *Engine) LegalPlacementCells() core.CellSet {
	if e.over {
		return core.NewCellSet()
	}
	return rules.LegalPlacementCells(e.board, e.currentPlayer())
}

// FusionCandidates returns every fusion center available to the side to move
func (e *Engine) FusionCandidates() core.CellSet {
	if e.over {
		return core.NewCellSet()
	}
	return rules.FusionCandidates(e.board, e.currentPlayer())
}

// GameState returns a deep copy of the current state
func (e *Engine) GameState() GameState {
	ctx := e.stateMachine.GetContext()
	return GameState{
		ID:    e.gameID,
		Board: e.board.Clone(),
		Turn: TurnState{
			CurrentPlayer:  ctx.CurrentPlayer,
			Phase:          e.stateMachine.CurrentPhase(),
			FusionCenter:   copyCoordinate(ctx.FusionCenter),
			SelectedHopper: copyCoordinate(ctx.SelectedHopper),
		},
		MoveNumber: e.moveNumber,
		Over:       e.over,
		Winner:     e.winner,
		EndReason:  e.endReason,
	}
}

// Public accessors
func (e *Engine) GameID() string             { return e.gameID }
func (e *Engine) EventBus() events.Bus       { return e.eventBus }
func (e *Engine) IsGameOver() bool           { return e.over }
func (e *Engine) CurrentPlayer() core.Player { return e.currentPlayer() }
func (e *Engine) Phase() states.TurnPhase    { return e.stateMachine.CurrentPhase() }
func (e *Engine) History() []HistoryEntry    { return e.history.Entries() }
func (e *Engine) SetDecider(d FusionDecider) { e.decider = d }
func (e *Engine) Stats() map[core.Player]PlayerStats {
	return map[core.Player]PlayerStats{
		core.PlayerX: ComputeStats(e.board, core.PlayerX),
		core.PlayerO: ComputeStats(e.board, core.PlayerO),
	}
}

// GetWinner returns the winner, or NoPlayer while the game is running
func (e *Engine) GetWinner() core.Player {
	if !e.over {
		return core.NoPlayer
	}
	return e.winner
}

func (e *Engine) currentPlayer() core.Player {
	return e.stateMachine.GetContext().CurrentPlayer
}

func (e *Engine) setCurrentPlayer(p core.Player) {
	e.stateMachine.GetContext().CurrentPlayer = p
}

// undo restores the board and the side to move from the latest history entry
func (e *Engine) undo() (*MoveResult, error) {
	entry, ok := e.history.Pop()
	if !ok {
		return nil, core.ErrNothingToUndo
	}

	e.board.Restore(entry.Snapshot)
	e.setCurrentPlayer(entry.Player)
	e.moveNumber = entry.MoveNumber
	if err := e.stateMachine.Reset("undo"); err != nil {
		e.logger.Error().Err(err).Msg("Failed to reset turn phase after undo")
	}

	e.logger.Info().
		Str("kind", entry.Kind.String()).
		Str("player", entry.Player.String()).
		Int("move", e.moveNumber).
		Int("remaining", e.history.Len()).
		Msg("Move undone")

	e.eventBus.Publish(events.NewMoveUndoneEvent(e.gameID, entry.Player, entry.Kind.String(), e.moveNumber))

	return &MoveResult{
		Action:     core.ActionUndo,
		Player:     entry.Player,
		At:         entry.At,
		From:       entry.From,
		NextPlayer: entry.Player,
		LegalCells: rules.LegalPlacementCells(e.board, entry.Player),
	}, nil
}

// reset puts the initial position back and forgets the history
func (e *Engine) reset(automatic bool) {
	e.board.Restore(e.initial)
	e.setCurrentPlayer(e.first)
	e.moveNumber = 0
	e.over = false
	e.winner = core.NoPlayer
	e.endReason = ""
	e.history.Clear()
	if err := e.stateMachine.Reset("game reset"); err != nil {
		e.logger.Error().Err(err).Msg("Failed to reset turn phase")
	}

	e.logger.Info().Bool("automatic", automatic).Msg("Game reset")
	e.eventBus.Publish(events.NewGameResetEvent(e.gameID, automatic))
}

func (e *Engine) forfeit(mover core.Player) *MoveResult {
	winner := mover.Opponent()
	res := &MoveResult{Action: core.ActionForfeit, Player: mover}
	e.endGame(winner, rules.ReasonForfeit, res)
	return res
}

// endGame records the result, publishes it and optionally starts a fresh game
func (e *Engine) endGame(winner core.Player, reason string, res *MoveResult) {
	e.over = true
	e.winner = winner
	e.endReason = reason
	if err := e.stateMachine.Reset("game over"); err != nil {
		e.logger.Error().Err(err).Msg("Failed to reset turn phase at game end")
	}

	res.GameOver = true
	res.Winner = winner
	res.Reason = reason

	e.logger.Info().
		Str("winner", winner.String()).
		Str("reason", reason).
		Int("move", e.moveNumber).
		Msg("Game over")
	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, winner, reason, e.moveNumber))

	if e.autoReset {
		e.reset(true)
	}
}
