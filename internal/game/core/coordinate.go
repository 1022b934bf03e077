package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Board dimensions. Display notation numbers rows 1..9 and letters columns A..G.
const (
	Rows = 9
	Cols = 7
)

// Coordinate is a zero-based board position. Row 0 is display row 1 (O's back rank).
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a coordinate from zero-based row and column indices
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromNotation builds a coordinate from a display row (1..9) and column letter (A..G).
func FromNotation(row int, col byte) (Coordinate, error) {
	if col >= 'a' && col <= 'z' {
		col -= 'a' - 'A'
	}
	c := Coordinate{Row: row - 1, Col: int(col) - 'A'}
	if !c.IsValid() {
		return Coordinate{}, fmt.Errorf("%d%c: %w", row, col, ErrOutOfBounds)
	}
	return c, nil
}

// MustParse is ParseCoordinate for literals known to be valid. It panics otherwise.
func MustParse(s string) Coordinate {
	c, err := ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCoordinate accepts "5D", "D5" and lower-case variants.
func ParseCoordinate(s string) (Coordinate, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Coordinate{}, fmt.Errorf("%q: %w", s, ErrInvalidNotation)
	}

	var letter byte
	var digits string
	switch first := s[0]; {
	case isLetter(first):
		letter, digits = first, s[1:]
	case isLetter(s[len(s)-1]):
		letter, digits = s[len(s)-1], s[:len(s)-1]
	default:
		return Coordinate{}, fmt.Errorf("%q: %w", s, ErrInvalidNotation)
	}

	row, err := strconv.Atoi(digits)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%q: %w", s, ErrInvalidNotation)
	}
	return FromNotation(row, letter)
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// FromIndex creates a coordinate from a row-major cell index
func FromIndex(idx int) Coordinate {
	return Coordinate{Row: idx / Cols, Col: idx % Cols}
}

// IsValid checks if the coordinate lies on the 9x7 board
func (c Coordinate) IsValid() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// ToIndex converts the coordinate to a row-major cell index
func (c Coordinate) ToIndex() int {
	return c.Row*Cols + c.Col
}

// DisplayRow returns the 1-based row number used in notation.
func (c Coordinate) DisplayRow() int { return c.Row + 1 }

// ColumnLetter returns the column letter used in notation.
func (c Coordinate) ColumnLetter() byte { return byte('A' + c.Col) }

// Offset returns the coordinate shifted by dr rows and dc columns.
func (c Coordinate) Offset(dr, dc int) Coordinate {
	return Coordinate{Row: c.Row + dr, Col: c.Col + dc}
}

// IsAdjacentTo checks if this coordinate is orthogonally adjacent to another
func (c Coordinate) IsAdjacentTo(other Coordinate) bool {
	dr := abs(c.Row - other.Row)
	dc := abs(c.Col - other.Col)
	return dr+dc == 1
}

// InBlockOf reports whether c lies in the 3x3 block centred on center.
func (c Coordinate) InBlockOf(center Coordinate) bool {
	return abs(c.Row-center.Row) <= 1 && abs(c.Col-center.Col) <= 1
}

// orthogonalOffsets lists up, down, left, right. Battle and fusion scans rely on this order.
var orthogonalOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Neighbors returns the four orthogonal neighbours (up, down, left, right), in bounds only.
func (c Coordinate) Neighbors() []Coordinate {
	out := make([]Coordinate, 0, 4)
	for _, off := range orthogonalOffsets {
		if n := c.Offset(off[0], off[1]); n.IsValid() {
			out = append(out, n)
		}
	}
	return out
}

// Block returns the in-bounds cells of the 3x3 block centred on c, c included, row-major.
func (c Coordinate) Block() []Coordinate {
	out := make([]Coordinate, 0, 9)
	for r := c.Row - 1; r <= c.Row+1; r++ {
		for col := c.Col - 1; col <= c.Col+1; col++ {
			if n := (Coordinate{Row: r, Col: col}); n.IsValid() {
				out = append(out, n)
			}
		}
	}
	return out
}

// Ring returns the in-bounds cells surrounding c, c excluded, row-major.
func (c Coordinate) Ring() []Coordinate {
	block := c.Block()
	out := block[:0]
	for _, n := range block {
		if n != c {
			out = append(out, n)
		}
	}
	return out
}

// String returns display notation such as "5D"
func (c Coordinate) String() string {
	if !c.IsValid() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("%d%c", c.DisplayRow(), c.ColumnLetter())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// CellSet is an unordered set of coordinates.
type CellSet map[Coordinate]struct{}

// NewCellSet creates a set holding the given coordinates
func NewCellSet(cells ...Coordinate) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts c into the set
func (s CellSet) Add(c Coordinate) { s[c] = struct{}{} }

// Has reports membership
func (s CellSet) Has(c Coordinate) bool {
	_, ok := s[c]
	return ok
}

// Len returns the number of members
func (s CellSet) Len() int { return len(s) }

// AddAll inserts every coordinate in cells
func (s CellSet) AddAll(cells []Coordinate) {
	for _, c := range cells {
		s[c] = struct{}{}
	}
}

// Sorted returns the members in row-major order.
func (s CellSet) Sorted() []Coordinate {
	out := make([]Coordinate, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ToIndex() < out[j].ToIndex()
	})
	return out
}

// String lists members in row-major order, e.g. "{4C 4D 5C}".
func (s CellSet) String() string {
	cells := s.Sorted()
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}
