package states

import (
	"errors"
)

var (
	errNoHopperSelected = errors.New("no hopper selected")
	errNoFusionCenter   = errors.New("no fusion center selected")
)

// AwaitingActionState is the idle phase between moves
type AwaitingActionState struct{}

func NewAwaitingActionState() State {
	return &AwaitingActionState{}
}

func (s *AwaitingActionState) Phase() TurnPhase {
	return PhaseAwaitingAction
}

func (s *AwaitingActionState) Enter(ctx *TurnContext) error {
	ctx.ClearSelections()
	ctx.Logger.Debug().
		Str("player", ctx.CurrentPlayer.String()).
		Msg("Awaiting action")
	return nil
}

func (s *AwaitingActionState) Exit(ctx *TurnContext) error {
	return nil
}

func (s *AwaitingActionState) Validate(ctx *TurnContext) error {
	return nil
}

// HopperSelectedState holds a Hopper in moving mode
type HopperSelectedState struct{}

func NewHopperSelectedState() State {
	return &HopperSelectedState{}
}

func (s *HopperSelectedState) Phase() TurnPhase {
	return PhaseHopperSelected
}

func (s *HopperSelectedState) Enter(ctx *TurnContext) error {
	ctx.Logger.Debug().
		Str("hopper", ctx.SelectedHopper.String()).
		Msg("Hopper entered moving mode")
	return nil
}

func (s *HopperSelectedState) Exit(ctx *TurnContext) error {
	ctx.SelectedHopper = nil
	return nil
}

func (s *HopperSelectedState) Validate(ctx *TurnContext) error {
	if ctx.SelectedHopper == nil {
		return errNoHopperSelected
	}
	return nil
}

// FusionSelect1State waits for the fusion center
type FusionSelect1State struct{}

func NewFusionSelect1State() State {
	return &FusionSelect1State{}
}

func (s *FusionSelect1State) Phase() TurnPhase {
	return PhaseFusionSelect1
}

func (s *FusionSelect1State) Enter(ctx *TurnContext) error {
	ctx.FusionCenter = nil
	ctx.Logger.Debug().Msg("Fusion mode on")
	return nil
}

func (s *FusionSelect1State) Exit(ctx *TurnContext) error {
	return nil
}

func (s *FusionSelect1State) Validate(ctx *TurnContext) error {
	return nil
}

// FusionSelect2State waits for the fusion target inside the center's block
type FusionSelect2State struct{}

func NewFusionSelect2State() State {
	return &FusionSelect2State{}
}

func (s *FusionSelect2State) Phase() TurnPhase {
	return PhaseFusionSelect2
}

func (s *FusionSelect2State) Enter(ctx *TurnContext) error {
	ctx.Logger.Debug().
		Str("center", ctx.FusionCenter.String()).
		Msg("Fusion center selected")
	return nil
}

func (s *FusionSelect2State) Exit(ctx *TurnContext) error {
	ctx.FusionCenter = nil
	return nil
}

func (s *FusionSelect2State) Validate(ctx *TurnContext) error {
	if ctx.FusionCenter == nil {
		return errNoFusionCenter
	}
	return nil
}
