package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/tycerine/internal/game/core"
)

// FusionKind identifies a fusion recipe.
type FusionKind int

const (
	NoFusion FusionKind = iota
	// DefenderFusion turns a plus of five Pawns into a Defender.
	DefenderFusion
	// HopperFusion turns a Defender ringed by eight Pawns into a Hopper.
	HopperFusion
)

func (k FusionKind) String() string {
	switch k {
	case DefenderFusion:
		return "defender"
	case HopperFusion:
		return "hopper"
	default:
		return "none"
	}
}

// Product is the piece type a recipe creates.
func (k FusionKind) Product() core.PieceType {
	switch k {
	case DefenderFusion:
		return core.Defender
	case HopperFusion:
		return core.Hopper
	default:
		return core.PieceNone
	}
}

// FusionResult describes an executed fusion.
type FusionResult struct {
	Kind     FusionKind
	Center   core.Coordinate
	Target   core.Coordinate
	Consumed []core.Coordinate
	Created  core.Piece
}

// plusCells returns center and its four orthogonal neighbours, or false if any is off the board.
func plusCells(center core.Coordinate) ([]core.Coordinate, bool) {
	cells := append([]core.Coordinate{center}, center.Neighbors()...)
	return cells, len(cells) == 5
}

// IsDefenderFusionCenter reports whether center and its four orthogonal neighbours all hold
// Pawns owned by p.
func IsDefenderFusionCenter(b *core.Board, center core.Coordinate, p core.Player) bool {
	cells, ok := plusCells(center)
	if !ok {
		return false
	}
	for _, c := range cells {
		if !b.At(c).Is(core.Pawn, p) {
			return false
		}
	}
	return true
}

// FindDefenderFusion returns the first Defender fusion center in the 3x3 block of touched,
// scanning rows then columns in ascending order.
func FindDefenderFusion(b *core.Board, touched core.Coordinate, p core.Player) (core.Coordinate, bool) {
	for _, c := range touched.Block() {
		if IsDefenderFusionCenter(b, c, p) {
			return c, true
		}
	}
	return core.Coordinate{}, false
}

// IsHopperFusionCenter reports whether center holds p's Defender and all eight surrounding
// cells hold p's Pawns.
func IsHopperFusionCenter(b *core.Board, center core.Coordinate, p core.Player) bool {
	if !b.At(center).Is(core.Defender, p) {
		return false
	}
	ring := center.Ring()
	if len(ring) != 8 {
		return false
	}
	for _, c := range ring {
		if !b.At(c).Is(core.Pawn, p) {
			return false
		}
	}
	return true
}

// FindHopperFusion returns the first Hopper fusion center in the 3x3 block of touched.
func FindHopperFusion(b *core.Board, touched core.Coordinate, p core.Player) (core.Coordinate, bool) {
	for _, c := range touched.Block() {
		if IsHopperFusionCenter(b, c, p) {
			return c, true
		}
	}
	return core.Coordinate{}, false
}

// FindFusion looks for a fusion around touched, Defender recipe first.
func FindFusion(b *core.Board, touched core.Coordinate, p core.Player) (core.Coordinate, FusionKind) {
	if c, ok := FindDefenderFusion(b, touched, p); ok {
		return c, DefenderFusion
	}
	if c, ok := FindHopperFusion(b, touched, p); ok {
		return c, HopperFusion
	}
	return core.Coordinate{}, NoFusion
}

// RecipeAt returns the recipe center satisfies for p, Defender recipe first.
func RecipeAt(b *core.Board, center core.Coordinate, p core.Player) FusionKind {
	switch {
	case IsDefenderFusionCenter(b, center, p):
		return DefenderFusion
	case IsHopperFusionCenter(b, center, p):
		return HopperFusion
	default:
		return NoFusion
	}
}

// FusionCandidates returns every cell that is a valid center for either recipe.
func FusionCandidates(b *core.Board, p core.Player) core.CellSet {
	set := core.NewCellSet()
	for r := 0; r < core.Rows; r++ {
		for c := 0; c < core.Cols; c++ {
			at := core.Coordinate{Row: r, Col: c}
			if RecipeAt(b, at, p) != NoFusion {
				set.Add(at)
			}
		}
	}
	return set
}

func consumedCells(kind FusionKind, center core.Coordinate) []core.Coordinate {
	if kind == DefenderFusion {
		cells, _ := plusCells(center)
		return cells
	}
	return center.Block()
}

// ExecuteFusion consumes the recipe at center and places the product at target. The target
// must lie in the 3x3 block of center and be empty once the ingredients are removed. The
// board is left untouched on error.
func ExecuteFusion(b *core.Board, center, target core.Coordinate, p core.Player) (FusionResult, error) {
	kind := RecipeAt(b, center, p)
	if kind == NoFusion {
		return FusionResult{}, fmt.Errorf("center %s: %w", center, core.ErrNoFusionAvailable)
	}
	if !b.InBounds(target) || !target.InBlockOf(center) {
		return FusionResult{}, fmt.Errorf("target %s outside block of %s: %w", target, center, core.ErrInvalidFusionTarget)
	}

	consumed := consumedCells(kind, center)
	if !b.IsEmpty(target) && !core.NewCellSet(consumed...).Has(target) {
		return FusionResult{}, fmt.Errorf("target %s holds %s: %w", target, b.At(target), core.ErrInvalidFusionTarget)
	}

	for _, c := range consumed {
		if _, err := b.Clear(c); err != nil {
			return FusionResult{}, err
		}
	}
	created := core.NewPiece(p, kind.Product())
	if err := b.Set(target, created); err != nil {
		return FusionResult{}, err
	}

	return FusionResult{
		Kind:     kind,
		Center:   center,
		Target:   target,
		Consumed: consumed,
		Created:  created,
	}, nil
}
