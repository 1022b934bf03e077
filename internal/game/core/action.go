package core

import "fmt"

// ActionType represents the type of action
type ActionType int

const (
	ActionPlace ActionType = iota
	ActionSelectHopper
	ActionRelocateHopper
	ActionToggleFusion
	ActionSelectFusionCenter
	ActionExecuteFusion
	ActionUndo
	ActionReset
	ActionForfeit
)

var actionNames = [...]string{
	ActionPlace:              "place",
	ActionSelectHopper:       "select_hopper",
	ActionRelocateHopper:     "relocate_hopper",
	ActionToggleFusion:       "toggle_fusion",
	ActionSelectFusionCenter: "select_fusion_center",
	ActionExecuteFusion:      "execute_fusion",
	ActionUndo:               "undo",
	ActionReset:              "reset",
	ActionForfeit:            "forfeit",
}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionNames) {
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
	return actionNames[t]
}

// Action is a request from the presentation layer. Player may be NoPlayer, meaning
// "whoever is to move"; a concrete player must match the side to move.
type Action interface {
	GetPlayer() Player
	GetType() ActionType
	// Describe renders the action for logs and errors, e.g. "place 5D".
	Describe() string
	// Validate performs the checks that need only the board (bounds).
	Validate(b *Board) error
}

func validateCell(c Coordinate) error {
	if !c.IsValid() {
		return fmt.Errorf("%s: %w", c, ErrOutOfBounds)
	}
	return nil
}

// PlaceAction puts a new Pawn on an empty legal cell
type PlaceAction struct {
	Player Player
	At     Coordinate
}

func (a *PlaceAction) GetPlayer() Player       { return a.Player }
func (a *PlaceAction) GetType() ActionType     { return ActionPlace }
func (a *PlaceAction) Describe() string        { return "place " + a.At.String() }
func (a *PlaceAction) Validate(b *Board) error { return validateCell(a.At) }

// SelectHopperAction toggles moving mode for the Hopper at At
type SelectHopperAction struct {
	Player Player
	At     Coordinate
}

func (a *SelectHopperAction) GetPlayer() Player       { return a.Player }
func (a *SelectHopperAction) GetType() ActionType     { return ActionSelectHopper }
func (a *SelectHopperAction) Describe() string        { return "select hopper " + a.At.String() }
func (a *SelectHopperAction) Validate(b *Board) error { return validateCell(a.At) }

// RelocateHopperAction moves the selected Hopper to To
type RelocateHopperAction struct {
	Player Player
	To     Coordinate
}

func (a *RelocateHopperAction) GetPlayer() Player       { return a.Player }
func (a *RelocateHopperAction) GetType() ActionType     { return ActionRelocateHopper }
func (a *RelocateHopperAction) Describe() string        { return "relocate hopper to " + a.To.String() }
func (a *RelocateHopperAction) Validate(b *Board) error { return validateCell(a.To) }

// ToggleFusionAction enters or leaves manual fusion mode
type ToggleFusionAction struct {
	Player Player
}

func (a *ToggleFusionAction) GetPlayer() Player       { return a.Player }
func (a *ToggleFusionAction) GetType() ActionType     { return ActionToggleFusion }
func (a *ToggleFusionAction) Describe() string        { return "toggle fusion mode" }
func (a *ToggleFusionAction) Validate(b *Board) error { return nil }

// SelectFusionCenterAction is the first click of manual fusion
type SelectFusionCenterAction struct {
	Player Player
	Center Coordinate
}

func (a *SelectFusionCenterAction) GetPlayer() Player   { return a.Player }
func (a *SelectFusionCenterAction) GetType() ActionType { return ActionSelectFusionCenter }
func (a *SelectFusionCenterAction) Describe() string {
	return "select fusion center " + a.Center.String()
}
func (a *SelectFusionCenterAction) Validate(b *Board) error { return validateCell(a.Center) }

// ExecuteFusionAction is the second click of manual fusion
type ExecuteFusionAction struct {
	Player Player
	Target Coordinate
}

func (a *ExecuteFusionAction) GetPlayer() Player       { return a.Player }
func (a *ExecuteFusionAction) GetType() ActionType     { return ActionExecuteFusion }
func (a *ExecuteFusionAction) Describe() string        { return "execute fusion at " + a.Target.String() }
func (a *ExecuteFusionAction) Validate(b *Board) error { return validateCell(a.Target) }

// UndoAction rolls back the latest move
type UndoAction struct{}

func (a *UndoAction) GetPlayer() Player       { return NoPlayer }
func (a *UndoAction) GetType() ActionType     { return ActionUndo }
func (a *UndoAction) Describe() string        { return "undo" }
func (a *UndoAction) Validate(b *Board) error { return nil }

// ResetAction starts a fresh game
type ResetAction struct{}

func (a *ResetAction) GetPlayer() Player       { return NoPlayer }
func (a *ResetAction) GetType() ActionType     { return ActionReset }
func (a *ResetAction) Describe() string        { return "reset" }
func (a *ResetAction) Validate(b *Board) error { return nil }

// ForfeitAction concedes the game for the side to move
type ForfeitAction struct {
	Player Player
}

func (a *ForfeitAction) GetPlayer() Player       { return a.Player }
func (a *ForfeitAction) GetType() ActionType     { return ActionForfeit }
func (a *ForfeitAction) Describe() string        { return "forfeit" }
func (a *ForfeitAction) Validate(b *Board) error { return nil }
