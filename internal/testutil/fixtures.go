package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mitchelldurbincs/tycerine/internal/game/core"
)

// Board diagrams list rows 1..9 top to bottom, one rune per column A..G.
// Upper case belongs to X, lower case to O:
//
//	.  empty      P/p  Pawn      D/d  Defender
//	H/h  Hopper   F    Fortress_X   f  Fortress_O
var glyphs = map[rune]core.Piece{
	'P': core.NewPiece(core.PlayerX, core.Pawn),
	'p': core.NewPiece(core.PlayerO, core.Pawn),
	'D': core.NewPiece(core.PlayerX, core.Defender),
	'd': core.NewPiece(core.PlayerO, core.Defender),
	'H': core.NewPiece(core.PlayerX, core.Hopper),
	'h': core.NewPiece(core.PlayerO, core.Hopper),
	'F': core.NewPiece(core.PlayerX, core.FortressX),
	'f': core.NewPiece(core.PlayerO, core.FortressO),
}

// ParseBoard builds a board from a diagram. Missing trailing rows are empty.
func ParseBoard(rows ...string) (*core.Board, error) {
	if len(rows) > core.Rows {
		return nil, fmt.Errorf("diagram has %d rows, board has %d", len(rows), core.Rows)
	}
	b := core.NewBoard()
	for r, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		runes := []rune(line)
		if len(runes) != core.Cols {
			return nil, fmt.Errorf("row %d: want %d cells, got %d", r+1, core.Cols, len(runes))
		}
		for c, g := range runes {
			if g == '.' {
				continue
			}
			piece, ok := glyphs[g]
			if !ok {
				return nil, fmt.Errorf("row %d: unknown glyph %q", r+1, g)
			}
			if err := b.Set(core.Coordinate{Row: r, Col: c}, piece); err != nil {
				return nil, err
			}
		}
	}
	return b, nil
}

// MustBoard is ParseBoard for tests.
func MustBoard(t testing.TB, rows ...string) *core.Board {
	t.Helper()
	b, err := ParseBoard(rows...)
	if err != nil {
		t.Fatalf("bad board diagram: %v", err)
	}
	return b
}

// Put places piece on every listed cell ("5D" notation).
func Put(t testing.TB, b *core.Board, piece core.Piece, cells ...string) {
	t.Helper()
	for _, s := range cells {
		c, err := core.ParseCoordinate(s)
		if err != nil {
			t.Fatalf("bad cell %q: %v", s, err)
		}
		if err := b.Set(c, piece); err != nil {
			t.Fatalf("set %s: %v", s, err)
		}
	}
}

// Cells parses a list of cells in display notation.
func Cells(cells ...string) []core.Coordinate {
	out := make([]core.Coordinate, len(cells))
	for i, s := range cells {
		out[i] = core.MustParse(s)
	}
	return out
}

// Diagram renders b in the format ParseBoard reads.
func Diagram(b *core.Board) string {
	var sb strings.Builder
	for r := 0; r < core.Rows; r++ {
		for c := 0; c < core.Cols; c++ {
			sb.WriteRune(glyphOf(b.At(core.Coordinate{Row: r, Col: c})))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func glyphOf(p core.Piece) rune {
	if p.IsEmpty() {
		return '.'
	}
	for g, piece := range glyphs {
		if piece == p {
			return g
		}
	}
	return '?'
}
