package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/tycerine/internal/config"
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/rules"
)

// FusionOffer describes the optional fusion that became available after a placement.
type FusionOffer struct {
	Player core.Player
	Kind   rules.FusionKind
	Center core.Coordinate
	Placed core.Coordinate
}

// FusionDecider answers whether an offered fusion should be performed.
// It is called synchronously while the move is being applied.
type FusionDecider interface {
	ConfirmFusion(offer FusionOffer) bool
}

// DeciderFunc adapts a plain function to FusionDecider
type DeciderFunc func(offer FusionOffer) bool

// ConfirmFusion implements FusionDecider
func (f DeciderFunc) ConfirmFusion(offer FusionOffer) bool { return f(offer) }

var (
	// AlwaysFuse accepts every offer
	AlwaysFuse FusionDecider = DeciderFunc(func(FusionOffer) bool { return true })
	// NeverFuse declines every offer
	NeverFuse FusionDecider = DeciderFunc(func(FusionOffer) bool { return false })
)

// DeciderForMode picks the decider for a game.fusion.auto_confirm value. In prompt mode
// the caller's decider is used; without one every offer is declined.
func DeciderForMode(mode string, prompt FusionDecider) (FusionDecider, error) {
	switch strings.ToLower(mode) {
	case config.FusionAlways:
		return AlwaysFuse, nil
	case config.FusionNever:
		return NeverFuse, nil
	case config.FusionPrompt, "":
		if prompt == nil {
			return NeverFuse, nil
		}
		return prompt, nil
	default:
		return nil, fmt.Errorf("unknown fusion mode %q", mode)
	}
}
