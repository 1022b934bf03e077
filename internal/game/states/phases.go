package states

import "fmt"

// TurnPhase is the sub-state of the side to move.
type TurnPhase int

const (
	// PhaseAwaitingAction - Nothing selected; placement, hopper selection or fusion mode allowed
	PhaseAwaitingAction TurnPhase = iota

	// PhaseHopperSelected - An own Hopper is in moving mode
	PhaseHopperSelected

	// PhaseFusionSelect1 - Fusion mode on, waiting for a fusion center
	PhaseFusionSelect1

	// PhaseFusionSelect2 - Center chosen, waiting for the target cell
	PhaseFusionSelect2
)

// String returns the string representation of a TurnPhase
func (p TurnPhase) String() string {
	switch p {
	case PhaseAwaitingAction:
		return "AwaitingAction"
	case PhaseHopperSelected:
		return "HopperSelected"
	case PhaseFusionSelect1:
		return "FusionSelect1"
	case PhaseFusionSelect2:
		return "FusionSelect2"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// CanPlace returns true if a new Pawn may be placed in this phase
func (p TurnPhase) CanPlace() bool {
	return p == PhaseAwaitingAction
}

// InFusionMode returns true while the two-click fusion protocol is active
func (p TurnPhase) InFusionMode() bool {
	return p == PhaseFusionSelect1 || p == PhaseFusionSelect2
}

// AllowedTransitions returns the valid phases this phase can transition to.
// Every phase may fall back to AwaitingAction (move finished, selection cleared, undo, reset).
func (p TurnPhase) AllowedTransitions() []TurnPhase {
	switch p {
	case PhaseAwaitingAction:
		return []TurnPhase{PhaseHopperSelected, PhaseFusionSelect1}
	case PhaseHopperSelected:
		return []TurnPhase{PhaseAwaitingAction}
	case PhaseFusionSelect1:
		return []TurnPhase{PhaseFusionSelect2, PhaseAwaitingAction}
	case PhaseFusionSelect2:
		return []TurnPhase{PhaseAwaitingAction}
	default:
		return []TurnPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p TurnPhase) CanTransitionTo(target TurnPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a TurnPhase
func ParsePhase(s string) (TurnPhase, error) {
	switch s {
	case "AwaitingAction":
		return PhaseAwaitingAction, nil
	case "HopperSelected":
		return PhaseHopperSelected, nil
	case "FusionSelect1":
		return PhaseFusionSelect1, nil
	case "FusionSelect2":
		return PhaseFusionSelect2, nil
	default:
		return PhaseAwaitingAction, fmt.Errorf("unknown turn phase %q", s)
	}
}
