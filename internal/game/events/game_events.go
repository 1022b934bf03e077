package events

import (
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeGameReset       = "game.reset"
	TypePiecePlaced     = "piece.placed"
	TypeHopperSelected  = "hopper.selected"
	TypeHopperRelocated = "hopper.relocated"
	TypeFusionMode      = "fusion.mode"
	TypeFusionExecuted  = "fusion.executed"
	TypeFusionDeclined  = "fusion.declined"
	TypeBattleResolved  = "battle.resolved"
	TypeTurnChanged     = "turn.changed"
	TypeMoveUndone      = "move.undone"
	TypeActionRejected  = "action.rejected"
	TypeStateTransition = "state.transition"
)

// AllTypes lists every event type the engine publishes
var AllTypes = []string{
	TypeGameStarted, TypeGameEnded, TypeGameReset, TypePiecePlaced,
	TypeHopperSelected, TypeHopperRelocated, TypeFusionMode, TypeFusionExecuted,
	TypeFusionDeclined, TypeBattleResolved, TypeTurnChanged, TypeMoveUndone,
	TypeActionRejected, TypeStateTransition,
}

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	Rows        int
	Cols        int
	FirstPlayer core.Player
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, first core.Player) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:   newBase(TypeGameStarted, gameID),
		Rows:        core.Rows,
		Cols:        core.Cols,
		FirstPlayer: first,
	}
}

// GameEndedEvent is published when a fortress falls or a player forfeits
type GameEndedEvent struct {
	BaseEvent
	Winner     core.Player
	Reason     string
	MoveNumber int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner core.Player, reason string, moveNumber int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent:  newBase(TypeGameEnded, gameID),
		Winner:     winner,
		Reason:     reason,
		MoveNumber: moveNumber,
	}
}

// GameResetEvent is published when the board returns to the starting position
type GameResetEvent struct {
	BaseEvent
	Automatic bool
}

// NewGameResetEvent creates a new GameResetEvent
func NewGameResetEvent(gameID string, automatic bool) *GameResetEvent {
	return &GameResetEvent{
		BaseEvent: newBase(TypeGameReset, gameID),
		Automatic: automatic,
	}
}

// PiecePlacedEvent is published when a Pawn is placed
type PiecePlacedEvent struct {
	BaseEvent
	Player     core.Player
	At         core.Coordinate
	MoveNumber int
}

// NewPiecePlacedEvent creates a new PiecePlacedEvent
func NewPiecePlacedEvent(gameID string, player core.Player, at core.Coordinate, moveNumber int) *PiecePlacedEvent {
	return &PiecePlacedEvent{
		BaseEvent:  newBase(TypePiecePlaced, gameID),
		Player:     player,
		At:         at,
		MoveNumber: moveNumber,
	}
}

// HopperSelectedEvent is published when a Hopper enters or leaves moving mode
type HopperSelectedEvent struct {
	BaseEvent
	Player       core.Player
	At           core.Coordinate
	Selected     bool
	Destinations []core.Coordinate
}

// NewHopperSelectedEvent creates a new HopperSelectedEvent
func NewHopperSelectedEvent(gameID string, player core.Player, at core.Coordinate, selected bool, destinations []core.Coordinate) *HopperSelectedEvent {
	return &HopperSelectedEvent{
		BaseEvent:    newBase(TypeHopperSelected, gameID),
		Player:       player,
		At:           at,
		Selected:     selected,
		Destinations: destinations,
	}
}

// HopperRelocatedEvent is published when a Hopper moves or swaps
type HopperRelocatedEvent struct {
	BaseEvent
	Player      core.Player
	From        core.Coordinate
	To          core.Coordinate
	SwappedWith core.Piece
	MoveNumber  int
}

// NewHopperRelocatedEvent creates a new HopperRelocatedEvent
func NewHopperRelocatedEvent(gameID string, player core.Player, from, to core.Coordinate, swappedWith core.Piece, moveNumber int) *HopperRelocatedEvent {
	return &HopperRelocatedEvent{
		BaseEvent:   newBase(TypeHopperRelocated, gameID),
		Player:      player,
		From:        from,
		To:          to,
		SwappedWith: swappedWith,
		MoveNumber:  moveNumber,
	}
}

// Swapped reports whether the Hopper exchanged places with another piece
func (e *HopperRelocatedEvent) Swapped() bool {
	return !e.SwappedWith.IsEmpty()
}

// FusionModeEvent is published when manual fusion mode is toggled
type FusionModeEvent struct {
	BaseEvent
	Player     core.Player
	Active     bool
	Candidates []core.Coordinate
}

// NewFusionModeEvent creates a new FusionModeEvent
func NewFusionModeEvent(gameID string, player core.Player, active bool, candidates []core.Coordinate) *FusionModeEvent {
	return &FusionModeEvent{
		BaseEvent:  newBase(TypeFusionMode, gameID),
		Player:     player,
		Active:     active,
		Candidates: candidates,
	}
}

// FusionExecutedEvent is published when a fusion creates a new piece
type FusionExecutedEvent struct {
	BaseEvent
	Player   core.Player
	Kind     string
	Center   core.Coordinate
	Target   core.Coordinate
	Consumed []core.Coordinate
	Created  core.Piece
	Manual   bool
}

// NewFusionExecutedEvent creates a new FusionExecutedEvent
func NewFusionExecutedEvent(gameID string, player core.Player, kind string, center, target core.Coordinate, consumed []core.Coordinate, created core.Piece, manual bool) *FusionExecutedEvent {
	return &FusionExecutedEvent{
		BaseEvent: newBase(TypeFusionExecuted, gameID),
		Player:    player,
		Kind:      kind,
		Center:    center,
		Target:    target,
		Consumed:  consumed,
		Created:   created,
		Manual:    manual,
	}
}

// FusionDeclinedEvent is published when an offered fusion is refused
type FusionDeclinedEvent struct {
	BaseEvent
	Player core.Player
	Kind   string
	Center core.Coordinate
}

// NewFusionDeclinedEvent creates a new FusionDeclinedEvent
func NewFusionDeclinedEvent(gameID string, player core.Player, kind string, center core.Coordinate) *FusionDeclinedEvent {
	return &FusionDeclinedEvent{
		BaseEvent: newBase(TypeFusionDeclined, gameID),
		Player:    player,
		Kind:      kind,
		Center:    center,
	}
}

// RemovedPiece is one piece taken off the board by a battle
type RemovedPiece struct {
	At    core.Coordinate
	Piece core.Piece
}

// BattleResolvedEvent is published after every battle
type BattleResolvedEvent struct {
	BaseEvent
	Player       core.Player
	Attacker     core.Coordinate
	Defenders    []core.Coordinate
	AttackPower  int
	DefensePower int
	Outcome      string
	Removed      []RemovedPiece
	GameOver     bool
}

// NewBattleResolvedEvent creates a new BattleResolvedEvent
func NewBattleResolvedEvent(gameID string, player core.Player, attacker core.Coordinate, defenders []core.Coordinate, attack, defense int, outcome string, removed []RemovedPiece, gameOver bool) *BattleResolvedEvent {
	return &BattleResolvedEvent{
		BaseEvent:    newBase(TypeBattleResolved, gameID),
		Player:       player,
		Attacker:     attacker,
		Defenders:    defenders,
		AttackPower:  attack,
		DefensePower: defense,
		Outcome:      outcome,
		Removed:      removed,
		GameOver:     gameOver,
	}
}

// TurnChangedEvent is published when the side to move changes
type TurnChangedEvent struct {
	BaseEvent
	From       core.Player
	To         core.Player
	MoveNumber int
	LegalCells int
}

// NewTurnChangedEvent creates a new TurnChangedEvent
func NewTurnChangedEvent(gameID string, from, to core.Player, moveNumber, legalCells int) *TurnChangedEvent {
	return &TurnChangedEvent{
		BaseEvent:  newBase(TypeTurnChanged, gameID),
		From:       from,
		To:         to,
		MoveNumber: moveNumber,
		LegalCells: legalCells,
	}
}

// MoveUndoneEvent is published when a history entry is rolled back
type MoveUndoneEvent struct {
	BaseEvent
	Player     core.Player
	Kind       string
	MoveNumber int
}

// NewMoveUndoneEvent creates a new MoveUndoneEvent
func NewMoveUndoneEvent(gameID string, player core.Player, kind string, moveNumber int) *MoveUndoneEvent {
	return &MoveUndoneEvent{
		BaseEvent:  newBase(TypeMoveUndone, gameID),
		Player:     player,
		Kind:       kind,
		MoveNumber: moveNumber,
	}
}

// ActionRejectedEvent is published when an action is refused
type ActionRejectedEvent struct {
	BaseEvent
	Player core.Player
	Action string
	Reason string
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(gameID string, player core.Player, action, reason string) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, gameID),
		Player:    player,
		Action:    action,
		Reason:    reason,
	}
}

// StateTransitionEvent is published when the turn state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
