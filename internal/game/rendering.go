package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/tycerine/internal/game/core"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorGray   = "\033[90m"

	BgYellow = "\033[43m"
)

var playerColors = map[core.Player]string{
	core.PlayerX: ColorRed,
	core.PlayerO: ColorBlue,
}

var pieceSymbols = map[core.PieceType]byte{
	core.Pawn:      'P',
	core.Defender:  'D',
	core.Hopper:    'H',
	core.FortressX: 'F',
	core.FortressO: 'F',
}

const (
	EmptySymbol     = "·"
	HighlightSymbol = "+"
	RemovedSymbol   = "x"
)

// RenderOptions controls how a board is drawn
type RenderOptions struct {
	Color bool
	// Highlight marks cells such as legal placements or hopper destinations
	Highlight core.CellSet
	// Removed marks cells emptied by the last battle
	Removed []core.Coordinate
	// Selected is drawn with a background, e.g. the selected hopper or fusion center
	Selected *core.Coordinate
}

// RenderBoard draws the board with row 1 at the top and columns A to G. Pieces are shown
// as owner and type, e.g. XP for an X Pawn or OF for O's Fortress.
func RenderBoard(b *core.Board, opts RenderOptions) string {
	removed := core.NewCellSet(opts.Removed...)

	var sb strings.Builder
	sb.Grow((core.Cols*12 + 8) * (core.Rows + 3))

	sb.WriteString("   ")
	for c := 0; c < core.Cols; c++ {
		sb.WriteString(fmt.Sprintf(" %c ", 'A'+c))
	}
	sb.WriteString("\n")

	for r := 0; r < core.Rows; r++ {
		sb.WriteString(fmt.Sprintf("%2d ", r+1))
		for c := 0; c < core.Cols; c++ {
			at := core.Coordinate{Row: r, Col: c}
			color, symbol := cellDisplay(b.At(at), opts.Highlight.Has(at), removed.Has(at))
			selected := opts.Selected != nil && *opts.Selected == at
			writeCell(&sb, opts.Color, color, symbol, selected)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n" + EmptySymbol + "=empty " + HighlightSymbol + "=available " + RemovedSymbol +
		"=removed  P=pawn D=defender H=hopper F=fortress\n")

	return sb.String()
}

func cellDisplay(p core.Piece, highlighted, removed bool) (string, string) {
	switch {
	case !p.IsEmpty():
		return playerColors[p.Owner], p.Owner.String() + string(pieceSymbols[p.Type])
	case removed:
		return ColorYellow, " " + RemovedSymbol
	case highlighted:
		return ColorGreen, " " + HighlightSymbol
	default:
		return ColorGray, " " + EmptySymbol
	}
}

func writeCell(sb *strings.Builder, useColor bool, color, symbol string, selected bool) {
	if !useColor {
		if selected {
			sb.WriteString(symbol + "*")
			return
		}
		sb.WriteString(symbol + " ")
		return
	}
	if selected {
		sb.WriteString(BgYellow)
	}
	sb.WriteString(color + symbol + ColorReset + " ")
}

// Board renders the current position without color, highlighting legal placements
func (e *Engine) Board() string {
	return RenderBoard(e.board, RenderOptions{Highlight: e.LegalPlacementCells()})
}
