package core

import "fmt"

// Player identifies a side. The zero value means no owner.
type Player int

const (
	NoPlayer Player = iota
	PlayerX
	PlayerO
)

// String returns "X", "O" or "-" for no player
func (p Player) String() string {
	switch p {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return "-"
	}
}

// Valid reports whether p is one of the two sides
func (p Player) Valid() bool { return p == PlayerX || p == PlayerO }

// Opponent returns the other side; NoPlayer maps to itself.
func (p Player) Opponent() Player {
	switch p {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return NoPlayer
	}
}

// Forward is the row delta of a march step: +1 for X, -1 for O.
func (p Player) Forward() int {
	if p == PlayerO {
		return -1
	}
	return 1
}

// ParsePlayer converts "X"/"O" (any case) into a Player
func ParsePlayer(s string) (Player, error) {
	switch s {
	case "X", "x":
		return PlayerX, nil
	case "O", "o":
		return PlayerO, nil
	default:
		return NoPlayer, fmt.Errorf("unknown player %q", s)
	}
}

// PieceType is the closed set of piece kinds. PieceNone marks an empty cell.
type PieceType int

const (
	PieceNone PieceType = iota
	Pawn
	Defender
	Hopper
	FortressX
	FortressO
)

// PieceStats holds the fixed attack/defense values of a piece type.
type PieceStats struct {
	Name   string
	AP     int
	DP     int
	Symbol string
}

// pieceStats is indexed by PieceType; every type must have an entry.
var pieceStats = [...]PieceStats{
	PieceNone: {Name: "None", Symbol: "·"},
	Pawn:      {Name: "Pawn", AP: 1, DP: 1, Symbol: "p"},
	Defender:  {Name: "Defender", AP: 2, DP: 4, Symbol: "D"},
	Hopper:    {Name: "Hopper", AP: 3, DP: 3, Symbol: "H"},
	FortressX: {Name: "Fortress_X", AP: 3, DP: 3, Symbol: "✱"},
	FortressO: {Name: "Fortress_O", AP: 3, DP: 3, Symbol: "⊕"},
}

// Stats returns the constant stats for t. Unknown types get the PieceNone entry.
func (t PieceType) Stats() PieceStats {
	if t < 0 || int(t) >= len(pieceStats) {
		return pieceStats[PieceNone]
	}
	return pieceStats[t]
}

func (t PieceType) AP() int        { return t.Stats().AP }
func (t PieceType) DP() int        { return t.Stats().DP }
func (t PieceType) String() string { return t.Stats().Name }

// IsFortress reports whether t is either side's fortress
func (t PieceType) IsFortress() bool { return t == FortressX || t == FortressO }

// FortressFor returns the fortress type owned by p.
func FortressFor(p Player) PieceType {
	if p == PlayerO {
		return FortressO
	}
	return FortressX
}

// Piece is a value stored in a board cell. The zero Piece is an empty cell.
type Piece struct {
	Owner Player
	Type  PieceType
}

// NewPiece creates a piece of the given type for owner
func NewPiece(owner Player, t PieceType) Piece {
	return Piece{Owner: owner, Type: t}
}

// IsEmpty reports whether the piece is the empty-cell marker
func (p Piece) IsEmpty() bool { return p.Type == PieceNone }

// BelongsTo reports whether a real piece is owned by pl
func (p Piece) BelongsTo(pl Player) bool { return !p.IsEmpty() && p.Owner == pl }

// IsEnemyOf reports whether a real piece is owned by pl's opponent
func (p Piece) IsEnemyOf(pl Player) bool { return !p.IsEmpty() && p.Owner != pl }

// Is reports whether the piece is of type t and owned by pl
func (p Piece) Is(t PieceType, pl Player) bool { return p.Type == t && p.Owner == pl }

func (p Piece) AP() int { return p.Type.AP() }
func (p Piece) DP() int { return p.Type.DP() }

// String renders e.g. "X:Pawn"
func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Owner.String() + ":" + p.Type.String()
}
