package game

import (
	"fmt"

	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/events"
	"github.com/mitchelldurbincs/tycerine/internal/game/rules"
	"github.com/mitchelldurbincs/tycerine/internal/game/states"
	"github.com/rs/zerolog"
)

// TurnProcessor runs the move pipelines: validate, snapshot, mutate, fusion decision,
// battle, end of turn.
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// moveLogger returns a logger scoped to the move about to be made
func (tp *TurnProcessor) moveLogger(p core.Player) zerolog.Logger {
	return tp.logger.With().
		Int("move", tp.engine.moveNumber+1).
		Str("player", p.String()).
		Logger()
}

// requirePhase rejects actions that the current turn phase does not accept
func (tp *TurnProcessor) requirePhase(want ...states.TurnPhase) error {
	current := tp.engine.stateMachine.CurrentPhase()
	for _, w := range want {
		if current == w {
			return nil
		}
	}
	return fmt.Errorf("phase %s: %w", current, core.ErrWrongPhase)
}

// Place puts a Pawn for p on at, then offers a fusion and otherwise resolves a battle
func (tp *TurnProcessor) Place(p core.Player, at core.Coordinate) (*MoveResult, error) {
	e := tp.engine
	if err := tp.requirePhase(states.PhaseAwaitingAction); err != nil {
		return nil, err
	}
	if err := rules.CheckPlacement(e.board, p, at); err != nil {
		return nil, err
	}

	moveLogger := tp.moveLogger(p)
	moveLogger.Debug().Str("at", at.String()).Msg("Placement validated")

	e.history.Push(HistoryEntry{
		Kind:       HistoryPlace,
		Snapshot:   e.board.Snapshot(),
		Player:     p,
		MoveNumber: e.moveNumber,
		At:         at,
	})
	if err := e.board.Set(at, core.NewPiece(p, core.Pawn)); err != nil {
		return nil, err
	}
	e.moveNumber++

	moveLogger.Info().Str("at", at.String()).Msg("Pawn placed")
	e.eventBus.Publish(events.NewPiecePlacedEvent(e.gameID, p, at, e.moveNumber))

	res := &MoveResult{Action: core.ActionPlace, Player: p, Moved: true, At: at}
	if !tp.offerFusion(p, at, res, moveLogger) {
		tp.resolveBattle(p, at, res, moveLogger)
	}
	tp.finishMove(p, res, moveLogger)
	return res, nil
}

// offerFusion asks the decider about a fusion made possible by the Pawn at placed.
// Reports whether a fusion was executed.
func (tp *TurnProcessor) offerFusion(p core.Player, placed core.Coordinate, res *MoveResult, logger zerolog.Logger) bool {
	e := tp.engine
	center, kind := rules.FindFusion(e.board, placed, p)
	if kind == rules.NoFusion {
		return false
	}

	offer := FusionOffer{Player: p, Kind: kind, Center: center, Placed: placed}
	if !e.decider.ConfirmFusion(offer) {
		res.FusionDeclined = true
		logger.Debug().
			Str("kind", kind.String()).
			Str("center", center.String()).
			Msg("Fusion declined")
		e.eventBus.Publish(events.NewFusionDeclinedEvent(e.gameID, p, kind.String(), center))
		return false
	}

	fr, err := rules.ExecuteFusion(e.board, center, center, p)
	if err != nil {
		logger.Error().Err(err).Str("center", center.String()).Msg("Offered fusion could not be executed")
		return false
	}
	res.Fusion = &fr
	tp.publishFusion(p, fr, false, logger)
	return true
}

func (tp *TurnProcessor) publishFusion(p core.Player, fr rules.FusionResult, manual bool, logger zerolog.Logger) {
	e := tp.engine
	logger.Info().
		Str("kind", fr.Kind.String()).
		Str("center", fr.Center.String()).
		Str("target", fr.Target.String()).
		Bool("manual", manual).
		Msg("Fusion executed")
	e.eventBus.Publish(events.NewFusionExecutedEvent(
		e.gameID, p, fr.Kind.String(), fr.Center, fr.Target, fr.Consumed, fr.Created, manual,
	))
}

// resolveBattle runs the battle for the piece p just moved to at
func (tp *TurnProcessor) resolveBattle(p core.Player, at core.Coordinate, res *MoveResult, logger zerolog.Logger) {
	e := tp.engine
	br := e.battles.Resolve(e.board, at, p)
	res.Battle = br
	if !br.Occurred {
		return
	}

	logger.Info().
		Str("attacker", at.String()).
		Int("attack_power", br.AttackPower).
		Int("defense_power", br.DefensePower).
		Str("outcome", br.Outcome.String()).
		Int("removed", len(br.Removed)).
		Msg("Battle resolved")

	removed := make([]events.RemovedPiece, len(br.Removed))
	for i, r := range br.Removed {
		removed[i] = events.RemovedPiece{At: r.At, Piece: r.Piece}
	}
	e.eventBus.Publish(events.NewBattleResolvedEvent(
		e.gameID, p, at, br.Defenders, br.AttackPower, br.DefensePower,
		br.Outcome.String(), removed, br.GameOver,
	))
}

// finishMove ends the game if a fortress fell, otherwise hands the turn to the opponent
func (tp *TurnProcessor) finishMove(p core.Player, res *MoveResult, logger zerolog.Logger) {
	e := tp.engine

	over, winner := res.Battle.GameOver, res.Battle.Winner
	if !over && e.fortressed {
		over, winner = e.winCondition.CheckGameOver(e.board, p)
	}
	if over {
		e.endGame(winner, rules.ReasonFortressDestroyed, res)
		return
	}

	next := p.Opponent()
	e.setCurrentPlayer(next)
	legal := rules.LegalPlacementCells(e.board, next)
	res.NextPlayer = next
	res.LegalCells = legal

	logger.Debug().
		Str("next_player", next.String()).
		Int("legal_cells", legal.Len()).
		Msg("Turn finished")
	e.eventBus.Publish(events.NewTurnChangedEvent(e.gameID, p, next, e.moveNumber, legal.Len()))
}

// SelectHopper toggles moving mode for p's Hopper at at
func (tp *TurnProcessor) SelectHopper(p core.Player, at core.Coordinate) (*MoveResult, error) {
	e := tp.engine
	if err := tp.requirePhase(states.PhaseAwaitingAction, states.PhaseHopperSelected); err != nil {
		return nil, err
	}

	res := &MoveResult{Action: core.ActionSelectHopper, Player: p, At: at, NextPlayer: p}
	ctx := e.stateMachine.GetContext()

	if e.stateMachine.CurrentPhase() == states.PhaseHopperSelected {
		if ctx.SelectedHopper == nil || *ctx.SelectedHopper != at {
			return nil, fmt.Errorf("another hopper is selected: %w", core.ErrWrongPhase)
		}
		if err := e.stateMachine.TransitionTo(states.PhaseAwaitingAction, "hopper deselected"); err != nil {
			return nil, err
		}
		e.eventBus.Publish(events.NewHopperSelectedEvent(e.gameID, p, at, false, nil))
		return res, nil
	}

	if piece := e.board.At(at); !piece.Is(core.Hopper, p) {
		return nil, fmt.Errorf("%s holds %s: %w", at, piece, core.ErrNotOwnedPiece)
	}

	ctx.SelectHopper(at)
	if err := e.stateMachine.TransitionTo(states.PhaseHopperSelected, "hopper selected"); err != nil {
		ctx.ClearSelections()
		return nil, err
	}

	destinations := rules.HopperDestinations(e.board, at)
	res.Highlighted = core.NewCellSet(destinations...)
	e.eventBus.Publish(events.NewHopperSelectedEvent(e.gameID, p, at, true, destinations))
	return res, nil
}

// RelocateHopper moves the selected Hopper to to, swapping with any piece already there
func (tp *TurnProcessor) RelocateHopper(p core.Player, to core.Coordinate) (*MoveResult, error) {
	e := tp.engine
	if err := tp.requirePhase(states.PhaseHopperSelected); err != nil {
		return nil, err
	}

	from := *e.stateMachine.GetContext().SelectedHopper
	if !core.NewCellSet(rules.HopperDestinations(e.board, from)...).Has(to) {
		return nil, fmt.Errorf("%s is not within reach of %s: %w", to, from, core.ErrCellNotActive)
	}

	moveLogger := tp.moveLogger(p)

	e.history.Push(HistoryEntry{
		Kind:       HistoryHopperMove,
		Snapshot:   e.board.Snapshot(),
		Player:     p,
		MoveNumber: e.moveNumber,
		At:         to,
		From:       from,
	})

	var swapped core.Piece
	if to != from {
		swapped = e.board.At(to)
		if err := e.board.Swap(from, to); err != nil {
			return nil, err
		}
	}
	e.moveNumber++

	if err := e.stateMachine.TransitionTo(states.PhaseAwaitingAction, "hopper relocated"); err != nil {
		moveLogger.Error().Err(err).Msg("Failed to leave hopper phase")
	}

	moveLogger.Info().
		Str("from", from.String()).
		Str("to", to.String()).
		Bool("swapped", !swapped.IsEmpty()).
		Msg("Hopper relocated")
	e.eventBus.Publish(events.NewHopperRelocatedEvent(e.gameID, p, from, to, swapped, e.moveNumber))

	res := &MoveResult{
		Action:      core.ActionRelocateHopper,
		Player:      p,
		Moved:       true,
		At:          to,
		From:        from,
		SwappedWith: swapped,
	}
	tp.resolveBattle(p, to, res, moveLogger)
	tp.finishMove(p, res, moveLogger)
	return res, nil
}

// ToggleFusionMode enters manual fusion mode, or leaves it without ending the turn
func (tp *TurnProcessor) ToggleFusionMode(p core.Player) (*MoveResult, error) {
	e := tp.engine
	res := &MoveResult{Action: core.ActionToggleFusion, Player: p, NextPlayer: p}

	switch phase := e.stateMachine.CurrentPhase(); phase {
	case states.PhaseAwaitingAction:
		candidates := rules.FusionCandidates(e.board, p)
		if candidates.Len() == 0 {
			return nil, core.ErrNoFusionAvailable
		}
		if err := e.stateMachine.TransitionTo(states.PhaseFusionSelect1, "fusion mode on"); err != nil {
			return nil, err
		}
		res.Highlighted = candidates
		e.eventBus.Publish(events.NewFusionModeEvent(e.gameID, p, true, candidates.Sorted()))

	case states.PhaseFusionSelect1, states.PhaseFusionSelect2:
		if err := e.stateMachine.TransitionTo(states.PhaseAwaitingAction, "fusion mode off"); err != nil {
			return nil, err
		}
		e.eventBus.Publish(events.NewFusionModeEvent(e.gameID, p, false, nil))

	default:
		return nil, fmt.Errorf("phase %s: %w", phase, core.ErrWrongPhase)
	}
	return res, nil
}

// SelectFusionCenter records the first click of a manual fusion and returns the center's block
func (tp *TurnProcessor) SelectFusionCenter(p core.Player, center core.Coordinate) (*MoveResult, error) {
	e := tp.engine
	if err := tp.requirePhase(states.PhaseFusionSelect1); err != nil {
		return nil, err
	}
	if rules.RecipeAt(e.board, center, p) == rules.NoFusion {
		return nil, fmt.Errorf("%s: %w", center, core.ErrNoFusionAvailable)
	}

	ctx := e.stateMachine.GetContext()
	ctx.SelectFusionCenter(center)
	if err := e.stateMachine.TransitionTo(states.PhaseFusionSelect2, "fusion center selected"); err != nil {
		ctx.FusionCenter = nil
		return nil, err
	}

	return &MoveResult{
		Action:      core.ActionSelectFusionCenter,
		Player:      p,
		At:          center,
		NextPlayer:  p,
		Highlighted: core.NewCellSet(e.board.Neighborhood(center)...),
	}, nil
}

// ExecuteFusion completes a manual fusion at target. The turn ends without a battle.
func (tp *TurnProcessor) ExecuteFusion(p core.Player, target core.Coordinate) (*MoveResult, error) {
	e := tp.engine
	if err := tp.requirePhase(states.PhaseFusionSelect2); err != nil {
		return nil, err
	}

	center := *e.stateMachine.GetContext().FusionCenter
	before := e.board.Snapshot()

	fr, err := rules.ExecuteFusion(e.board, center, target, p)
	if err != nil {
		return nil, err
	}

	moveLogger := tp.moveLogger(p)
	e.history.Push(HistoryEntry{
		Kind:       HistoryFusion,
		Snapshot:   before,
		Player:     p,
		MoveNumber: e.moveNumber,
		At:         target,
		From:       center,
	})
	e.moveNumber++

	if err := e.stateMachine.TransitionTo(states.PhaseAwaitingAction, "fusion executed"); err != nil {
		moveLogger.Error().Err(err).Msg("Failed to leave fusion phase")
	}
	tp.publishFusion(p, fr, true, moveLogger)

	res := &MoveResult{
		Action: core.ActionExecuteFusion,
		Player: p,
		Moved:  true,
		At:     target,
		From:   center,
		Fusion: &fr,
	}
	tp.finishMove(p, res, moveLogger)
	return res, nil
}
