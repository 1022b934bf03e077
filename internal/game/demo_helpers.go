package game

import (
	"math/rand"

	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/rules"
	"github.com/mitchelldurbincs/tycerine/internal/game/states"
	"github.com/rs/zerolog/log"
)

// GenerateRandomAction picks a random action the side to move could make right now.
// It covers every kind of click: placements, hopper selection and relocation, and the
// manual fusion steps. Intended for demos and playout tests. Returns nil once the game is over.
func GenerateRandomAction(g *Engine, rng *rand.Rand) core.Action {
	if g.IsGameOver() {
		return nil
	}

	state := g.GameState()
	p := state.Turn.CurrentPlayer
	b := state.Board

	var action core.Action
	switch state.Turn.Phase {
	case states.PhaseHopperSelected:
		dests := rules.HopperDestinations(b, *state.Turn.SelectedHopper)
		action = &core.RelocateHopperAction{Player: p, To: dests[rng.Intn(len(dests))]}

	case states.PhaseFusionSelect1:
		centers := rules.FusionCandidates(b, p).Sorted()
		action = &core.SelectFusionCenterAction{Player: p, Center: centers[rng.Intn(len(centers))]}

	case states.PhaseFusionSelect2:
		targets := fusionTargets(b, *state.Turn.FusionCenter, p)
		if len(targets) == 0 {
			action = &core.ToggleFusionAction{Player: p}
			break
		}
		action = &core.ExecuteFusionAction{Player: p, Target: targets[rng.Intn(len(targets))]}

	default:
		action = randomIdleAction(b, p, rng)
	}

	log.Debug().
		Str("player", p.String()).
		Str("action", action.Describe()).
		Msg("Generated random action")
	return action
}

// randomIdleAction chooses between placing, starting a hopper move and starting a fusion
func randomIdleAction(b *core.Board, p core.Player, rng *rand.Rand) core.Action {
	var hoppers []core.Coordinate
	b.ForEach(func(c core.Coordinate, piece core.Piece) {
		if piece.Is(core.Hopper, p) {
			hoppers = append(hoppers, c)
		}
	})
	hasFusion := rules.FusionCandidates(b, p).Len() > 0
	legal := rules.LegalPlacementCells(b, p).Sorted()

	switch roll := rng.Float32(); {
	case hasFusion && roll < 0.3:
		return &core.ToggleFusionAction{Player: p}
	case len(hoppers) > 0 && roll < 0.5:
		return &core.SelectHopperAction{Player: p, At: hoppers[rng.Intn(len(hoppers))]}
	case len(legal) > 0:
		return &core.PlaceAction{Player: p, At: legal[rng.Intn(len(legal))]}
	case len(hoppers) > 0:
		return &core.SelectHopperAction{Player: p, At: hoppers[rng.Intn(len(hoppers))]}
	default:
		return &core.ForfeitAction{Player: p}
	}
}

// fusionTargets lists the cells of center's block that would be empty once the recipe
// at center is consumed
func fusionTargets(b *core.Board, center core.Coordinate, p core.Player) []core.Coordinate {
	var out []core.Coordinate
	for _, c := range b.Neighborhood(center) {
		scratch := b.Clone()
		if _, err := rules.ExecuteFusion(scratch, center, c, p); err == nil {
			out = append(out, c)
		}
	}
	return out
}
