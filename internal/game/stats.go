package game

import (
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/rules"
)

// PlayerStats summarises one side's material on the board
type PlayerStats struct {
	Player      core.Player
	Pawns       int
	Defenders   int
	Hoppers     int
	HasFortress bool
	TotalAP     int
	TotalDP     int
	// LegalCells is how many placements the player would have if it were their turn
	LegalCells int
	// FusionCenters is how many fusion centers the player could choose from
	FusionCenters int
}

// Pieces returns the number of pieces the player owns, fortress included
func (s PlayerStats) Pieces() int {
	n := s.Pawns + s.Defenders + s.Hoppers
	if s.HasFortress {
		n++
	}
	return n
}

// ComputeStats scans the board for p's pieces
func ComputeStats(b *core.Board, p core.Player) PlayerStats {
	stats := PlayerStats{Player: p}

	b.ForEach(func(_ core.Coordinate, piece core.Piece) {
		if !piece.BelongsTo(p) {
			return
		}
		switch {
		case piece.Type == core.Pawn:
			stats.Pawns++
		case piece.Type == core.Defender:
			stats.Defenders++
		case piece.Type == core.Hopper:
			stats.Hoppers++
		case piece.Type.IsFortress():
			stats.HasFortress = true
		}
		stats.TotalAP += piece.AP()
		stats.TotalDP += piece.DP()
	})

	stats.LegalCells = rules.LegalPlacementCells(b, p).Len()
	stats.FusionCenters = rules.FusionCandidates(b, p).Len()
	return stats
}
