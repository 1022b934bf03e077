package rules

import "github.com/mitchelldurbincs/tycerine/internal/game/core"

// MarchPositions returns the empty cells one row ahead of c (toward the opponent),
// limited to the three columns centred on c.
func MarchPositions(b *core.Board, c core.Coordinate, p core.Player) []core.Coordinate {
	return rowWindow(b, c.Row+p.Forward(), c.Col)
}

// FortifyPositions returns the empty cells one row behind c in the same three-column window,
// plus the empty cells directly left and right of c.
func FortifyPositions(b *core.Board, c core.Coordinate, p core.Player) []core.Coordinate {
	out := rowWindow(b, c.Row-p.Forward(), c.Col)
	for _, side := range []core.Coordinate{c.Offset(0, -1), c.Offset(0, 1)} {
		if b.IsEmpty(side) {
			out = append(out, side)
		}
	}
	return out
}

func rowWindow(b *core.Board, row, col int) []core.Coordinate {
	out := make([]core.Coordinate, 0, 3)
	for dc := -1; dc <= 1; dc++ {
		c := core.Coordinate{Row: row, Col: col + dc}
		if b.IsEmpty(c) {
			out = append(out, c)
		}
	}
	return out
}

// LegalPlacementCells returns the union of march and fortify positions over every piece
// owned by p, fortress included.
func LegalPlacementCells(b *core.Board, p core.Player) core.CellSet {
	set := core.NewCellSet()
	for _, c := range b.PiecesOf(p) {
		set.AddAll(MarchPositions(b, c, p))
		set.AddAll(FortifyPositions(b, c, p))
	}
	return set
}

// IsLegalPlacement reports whether p may place a new Pawn at c.
func IsLegalPlacement(b *core.Board, p core.Player, c core.Coordinate) bool {
	if !b.IsEmpty(c) {
		return false
	}
	for _, owned := range c.Ring() {
		if !b.At(owned).BelongsTo(p) {
			continue
		}
		for _, cand := range MarchPositions(b, owned, p) {
			if cand == c {
				return true
			}
		}
		for _, cand := range FortifyPositions(b, owned, p) {
			if cand == c {
				return true
			}
		}
	}
	return false
}

// CheckPlacement is IsLegalPlacement with the reason for a refusal.
func CheckPlacement(b *core.Board, p core.Player, c core.Coordinate) error {
	switch {
	case !b.InBounds(c):
		return core.ErrOutOfBounds
	case !b.IsEmpty(c):
		return core.ErrCellOccupied
	case !IsLegalPlacement(b, p, c):
		return core.ErrCellNotActive
	}
	return nil
}

// HopperDestinations returns the Hopper's full in-bounds 3x3 block, its own cell included,
// regardless of occupancy.
func HopperDestinations(b *core.Board, c core.Coordinate) []core.Coordinate {
	return b.Neighborhood(c)
}
