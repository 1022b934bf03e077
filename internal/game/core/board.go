package core

import (
	"fmt"
)

// Fortress home cells: X at 9D, O at 1D. Fortresses never move.
var (
	FortressXHome = Coordinate{Row: 8, Col: 3}
	FortressOHome = Coordinate{Row: 0, Col: 3}
)

// Board is the 9x7 grid. A zero Piece is an empty cell, so a cell holds at most one piece.
// Board is a plain value; copying it copies every cell.
type Board struct {
	cells [Rows][Cols]Piece
}

// Snapshot is an immutable copy of a board, used by move history.
type Snapshot struct {
	cells [Rows][Cols]Piece
}

// NewBoard returns an empty board
func NewBoard() *Board {
	return &Board{}
}

// NewStandardBoard returns the starting position: both fortresses and nothing else.
func NewStandardBoard() *Board {
	b := NewBoard()
	b.cells[FortressXHome.Row][FortressXHome.Col] = NewPiece(PlayerX, FortressX)
	b.cells[FortressOHome.Row][FortressOHome.Col] = NewPiece(PlayerO, FortressO)
	return b
}

// InBounds checks if c is on the board
func (b *Board) InBounds(c Coordinate) bool {
	return c.IsValid()
}

// Get returns the piece at c and whether the cell is occupied. Out-of-bounds cells read as empty.
func (b *Board) Get(c Coordinate) (Piece, bool) {
	if !c.IsValid() {
		return Piece{}, false
	}
	p := b.cells[c.Row][c.Col]
	return p, !p.IsEmpty()
}

// Neighborhood returns the in-bounds 3x3 block around c, c included, row-major.
func (b *Board) Neighborhood(c Coordinate) []Coordinate {
	return c.Block()
}

// OrthogonalNeighbors returns the in-bounds cells above, below, left and right of c, in that order.
func (b *Board) OrthogonalNeighbors(c Coordinate) []Coordinate {
	return c.Neighbors()
}

// At returns the piece at c, or the empty Piece.
func (b *Board) At(c Coordinate) Piece {
	p, _ := b.Get(c)
	return p
}

// IsEmpty reports whether c is on the board and holds no piece
func (b *Board) IsEmpty(c Coordinate) bool {
	return c.IsValid() && b.cells[c.Row][c.Col].IsEmpty()
}

// Set stores p at c, replacing whatever was there. Setting the empty Piece clears the cell.
func (b *Board) Set(c Coordinate, p Piece) error {
	if !c.IsValid() {
		return fmt.Errorf("set %s: %w", c, ErrOutOfBounds)
	}
	b.cells[c.Row][c.Col] = p
	return nil
}

// Clear empties c and returns what was removed
func (b *Board) Clear(c Coordinate) (Piece, error) {
	if !c.IsValid() {
		return Piece{}, fmt.Errorf("clear %s: %w", c, ErrOutOfBounds)
	}
	old := b.cells[c.Row][c.Col]
	b.cells[c.Row][c.Col] = Piece{}
	return old, nil
}

// Swap exchanges the contents of two cells
func (b *Board) Swap(a, c Coordinate) error {
	if !a.IsValid() || !c.IsValid() {
		return fmt.Errorf("swap %s/%s: %w", a, c, ErrOutOfBounds)
	}
	b.cells[a.Row][a.Col], b.cells[c.Row][c.Col] = b.cells[c.Row][c.Col], b.cells[a.Row][a.Col]
	return nil
}

// Snapshot captures the current cells.
func (b *Board) Snapshot() Snapshot {
	return Snapshot{cells: b.cells}
}

// Restore overwrites every cell with the snapshot's contents.
func (b *Board) Restore(s Snapshot) {
	b.cells = s.cells
}

// Board materialises the snapshot as an independent board
func (s Snapshot) Board() *Board {
	return &Board{cells: s.cells}
}

// At returns the piece recorded at c
func (s Snapshot) At(c Coordinate) Piece {
	if !c.IsValid() {
		return Piece{}
	}
	return s.cells[c.Row][c.Col]
}

// Clone returns a deep copy
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// Equal reports whether both boards hold the same pieces in the same cells
func (b *Board) Equal(other *Board) bool {
	if other == nil {
		return false
	}
	return b.cells == other.cells
}

// ForEach calls fn for every occupied cell in row-major order.
func (b *Board) ForEach(fn func(c Coordinate, p Piece)) {
	for r := 0; r < Rows; r++ {
		for col := 0; col < Cols; col++ {
			if p := b.cells[r][col]; !p.IsEmpty() {
				fn(Coordinate{Row: r, Col: col}, p)
			}
		}
	}
}

// PiecesOf returns the cells holding pieces owned by player, row-major
func (b *Board) PiecesOf(player Player) []Coordinate {
	var out []Coordinate
	b.ForEach(func(c Coordinate, p Piece) {
		if p.Owner == player {
			out = append(out, c)
		}
	})
	return out
}

// Count returns the number of pieces owned by player
func (b *Board) Count(player Player) int {
	n := 0
	b.ForEach(func(_ Coordinate, p Piece) {
		if p.Owner == player {
			n++
		}
	})
	return n
}

// FindFortress returns the cell of player's fortress if it is still on the board
func (b *Board) FindFortress(player Player) (Coordinate, bool) {
	want := FortressFor(player)
	var at Coordinate
	found := false
	b.ForEach(func(c Coordinate, p Piece) {
		if !found && p.Type == want {
			at, found = c, true
		}
	})
	return at, found
}

// Validate checks the structural invariants of a live game board: exactly one fortress per
// side, each owned by its side, and only known piece types owned by a real player.
func (b *Board) Validate() error {
	counts := map[PieceType]int{}
	var err error
	b.ForEach(func(c Coordinate, p Piece) {
		if err != nil {
			return
		}
		if !p.Owner.Valid() {
			err = fmt.Errorf("%s holds %s with no owner: %w", c, p.Type, ErrInvalidBoard)
			return
		}
		if p.Type < Pawn || p.Type > FortressO {
			err = fmt.Errorf("%s holds unknown piece type %d: %w", c, int(p.Type), ErrInvalidBoard)
			return
		}
		if p.Type.IsFortress() && FortressFor(p.Owner) != p.Type {
			err = fmt.Errorf("%s holds %s owned by %s: %w", c, p.Type, p.Owner, ErrInvalidBoard)
			return
		}
		counts[p.Type]++
	})
	if err != nil {
		return err
	}
	for _, t := range []PieceType{FortressX, FortressO} {
		if counts[t] != 1 {
			return fmt.Errorf("expected exactly one %s, found %d: %w", t, counts[t], ErrInvalidBoard)
		}
	}
	return nil
}
