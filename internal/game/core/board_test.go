package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStandardBoard(t *testing.T) {
	b := NewStandardBoard()

	assert.Equal(t, NewPiece(PlayerX, FortressX), b.At(MustParse("9D")))
	assert.Equal(t, NewPiece(PlayerO, FortressO), b.At(MustParse("1D")))
	assert.Equal(t, 1, b.Count(PlayerX))
	assert.Equal(t, 1, b.Count(PlayerO))
	require.NoError(t, b.Validate())
}

func TestBoard_GetSetClear(t *testing.T) {
	b := NewBoard()
	c := MustParse("5D")

	_, ok := b.Get(c)
	assert.False(t, ok)
	assert.True(t, b.IsEmpty(c))

	require.NoError(t, b.Set(c, NewPiece(PlayerX, Pawn)))
	p, ok := b.Get(c)
	assert.True(t, ok)
	assert.Equal(t, NewPiece(PlayerX, Pawn), p)
	assert.False(t, b.IsEmpty(c))

	removed, err := b.Clear(c)
	require.NoError(t, err)
	assert.Equal(t, NewPiece(PlayerX, Pawn), removed)
	assert.True(t, b.IsEmpty(c))
}

func TestBoard_OutOfBounds(t *testing.T) {
	b := NewBoard()
	off := Coordinate{Row: 9, Col: 0}

	assert.False(t, b.InBounds(off))
	assert.False(t, b.IsEmpty(off), "off-board cells are never empty placement targets")
	assert.ErrorIs(t, b.Set(off, NewPiece(PlayerX, Pawn)), ErrOutOfBounds)
	_, err := b.Clear(off)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.ErrorIs(t, b.Swap(off, MustParse("1A")), ErrOutOfBounds)
	assert.True(t, b.At(off).IsEmpty())
}

func TestBoard_Swap(t *testing.T) {
	b := NewBoard()
	a, c := MustParse("5D"), MustParse("6D")
	require.NoError(t, b.Set(a, NewPiece(PlayerX, Hopper)))
	require.NoError(t, b.Set(c, NewPiece(PlayerO, Pawn)))

	require.NoError(t, b.Swap(a, c))
	assert.Equal(t, NewPiece(PlayerO, Pawn), b.At(a))
	assert.Equal(t, NewPiece(PlayerX, Hopper), b.At(c))
}

func TestBoard_SnapshotRestore(t *testing.T) {
	b := NewStandardBoard()
	snap := b.Snapshot()

	require.NoError(t, b.Set(MustParse("8D"), NewPiece(PlayerX, Pawn)))
	assert.True(t, snap.At(MustParse("8D")).IsEmpty(), "snapshot must not observe later writes")

	b.Restore(snap)
	assert.True(t, b.Equal(NewStandardBoard()))
	assert.True(t, snap.Board().Equal(b))
}

func TestBoard_CloneIsIndependent(t *testing.T) {
	b := NewStandardBoard()
	cp := b.Clone()
	require.NoError(t, cp.Set(MustParse("5D"), NewPiece(PlayerO, Defender)))

	assert.False(t, b.Equal(cp))
	assert.True(t, b.IsEmpty(MustParse("5D")))
	assert.False(t, b.Equal(nil))
}

func TestBoard_PiecesOfAndFortress(t *testing.T) {
	b := NewStandardBoard()
	require.NoError(t, b.Set(MustParse("8C"), NewPiece(PlayerX, Pawn)))
	require.NoError(t, b.Set(MustParse("2D"), NewPiece(PlayerO, Pawn)))

	assert.Equal(t, []Coordinate{MustParse("8C"), MustParse("9D")}, b.PiecesOf(PlayerX))
	assert.Equal(t, []Coordinate{MustParse("1D"), MustParse("2D")}, b.PiecesOf(PlayerO))

	at, ok := b.FindFortress(PlayerO)
	require.True(t, ok)
	assert.Equal(t, MustParse("1D"), at)

	_, err := b.Clear(MustParse("1D"))
	require.NoError(t, err)
	_, ok = b.FindFortress(PlayerO)
	assert.False(t, ok)
}

func TestBoard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b *Board)
		wantErr bool
	}{
		{"standard board", func(b *Board) {}, false},
		{"missing fortress", func(b *Board) { _, _ = b.Clear(FortressOHome) }, true},
		{"duplicate fortress", func(b *Board) { _ = b.Set(MustParse("5D"), NewPiece(PlayerX, FortressX)) }, true},
		{"fortress with wrong owner", func(b *Board) { _ = b.Set(FortressXHome, NewPiece(PlayerO, FortressX)) }, true},
		{"ownerless piece", func(b *Board) { _ = b.Set(MustParse("5D"), NewPiece(NoPlayer, Pawn)) }, true},
		{"unknown type", func(b *Board) { _ = b.Set(MustParse("5D"), NewPiece(PlayerX, PieceType(42))) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewStandardBoard()
			tt.mutate(b)
			err := b.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBoard)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPieceStats(t *testing.T) {
	tests := []struct {
		typ    PieceType
		ap, dp int
		name   string
	}{
		{Pawn, 1, 1, "Pawn"},
		{Defender, 2, 4, "Defender"},
		{Hopper, 3, 3, "Hopper"},
		{FortressX, 3, 3, "Fortress_X"},
		{FortressO, 3, 3, "Fortress_O"},
		{PieceNone, 0, 0, "None"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ap, tt.typ.AP())
			assert.Equal(t, tt.dp, tt.typ.DP())
			assert.Equal(t, tt.name, tt.typ.String())
		})
	}
}

func TestPlayer(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
	assert.Equal(t, NoPlayer, NoPlayer.Opponent())
	assert.Equal(t, 1, PlayerX.Forward())
	assert.Equal(t, -1, PlayerO.Forward())
	assert.Equal(t, FortressX, FortressFor(PlayerX))
	assert.Equal(t, FortressO, FortressFor(PlayerO))

	p, err := ParsePlayer("o")
	require.NoError(t, err)
	assert.Equal(t, PlayerO, p)
	_, err = ParsePlayer("Z")
	assert.Error(t, err)
}

func TestPiece_Ownership(t *testing.T) {
	p := NewPiece(PlayerX, Defender)
	assert.True(t, p.BelongsTo(PlayerX))
	assert.False(t, p.IsEnemyOf(PlayerX))
	assert.True(t, p.IsEnemyOf(PlayerO))
	assert.True(t, p.Is(Defender, PlayerX))
	assert.Equal(t, "X:Defender", p.String())

	var empty Piece
	assert.True(t, empty.IsEmpty())
	assert.False(t, empty.BelongsTo(NoPlayer))
	assert.False(t, empty.IsEnemyOf(PlayerX))
	assert.Equal(t, "empty", empty.String())
}
