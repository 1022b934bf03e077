package rules

import (
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/rs/zerolog"
)

// Outcome of a battle, seen from the attacking player.
type Outcome int

const (
	NoBattle Outcome = iota
	// Draw removes every piece in the swept neighbourhoods.
	Draw
	// AttackerWins removes only defending pieces.
	AttackerWins
	// DefenderWins removes only attacking pieces.
	DefenderWins
)

func (o Outcome) String() string {
	switch o {
	case Draw:
		return "draw"
	case AttackerWins:
		return "attacker_wins"
	case DefenderWins:
		return "defender_wins"
	default:
		return "no_battle"
	}
}

// Removal records a piece taken off the board by a battle.
type Removal struct {
	At    core.Coordinate
	Piece core.Piece
}

// BattleResult describes a resolved battle. Removed keeps sweep order.
type BattleResult struct {
	Occurred     bool
	Attacker     core.Coordinate
	AttackerSide core.Player
	Defenders    []core.Coordinate
	AttackPower  int
	DefensePower int
	Outcome      Outcome
	Removed      []Removal
	GameOver     bool
	Winner       core.Player
}

// DefenderCenters returns the orthogonal neighbours of attacker holding enemy pieces,
// in up, down, left, right order.
func DefenderCenters(b *core.Board, attacker core.Coordinate, p core.Player) []core.Coordinate {
	var out []core.Coordinate
	for _, n := range b.OrthogonalNeighbors(attacker) {
		if b.At(n).IsEnemyOf(p) {
			out = append(out, n)
		}
	}
	return out
}

// AttackPower sums ap over p's pieces in the 3x3 block of attacker, the attacker cell excluded.
func AttackPower(b *core.Board, attacker core.Coordinate, p core.Player) int {
	total := 0
	for _, c := range attacker.Ring() {
		if piece := b.At(c); piece.BelongsTo(p) {
			total += piece.AP()
		}
	}
	return total
}

// DefensePower sums dp over the enemies of p found in the union of the 3x3 blocks of centers.
// Center cells never contribute and each cell counts once.
func DefensePower(b *core.Board, centers []core.Coordinate, p core.Player) int {
	excluded := core.NewCellSet(centers...)
	seen := core.NewCellSet()
	total := 0
	for _, center := range centers {
		for _, c := range center.Block() {
			if excluded.Has(c) || seen.Has(c) {
				continue
			}
			seen.Add(c)
			if piece := b.At(c); piece.IsEnemyOf(p) {
				total += piece.DP()
			}
		}
	}
	return total
}

// Decide compares the two powers.
func Decide(attack, defense int) Outcome {
	switch {
	case attack > defense:
		return AttackerWins
	case attack < defense:
		return DefenderWins
	default:
		return Draw
	}
}

// BattleResolver resolves battles on a board.
type BattleResolver struct {
	logger zerolog.Logger
}

// NewBattleResolver creates a new battle resolver
func NewBattleResolver(logger zerolog.Logger) *BattleResolver {
	return &BattleResolver{
		logger: logger.With().Str("component", "BattleResolver").Logger(),
	}
}

// Resolve runs a battle for the piece p just moved to attacker. Without an enemy orthogonal
// neighbour nothing happens. A removed Fortress ends the game and stops the sweep.
func (br *BattleResolver) Resolve(b *core.Board, attacker core.Coordinate, p core.Player) BattleResult {
	res := BattleResult{Attacker: attacker, AttackerSide: p}

	res.Defenders = DefenderCenters(b, attacker, p)
	if len(res.Defenders) == 0 {
		br.logger.Debug().Str("attacker", attacker.String()).Msg("No adjacent enemy, no battle")
		return res
	}

	res.Occurred = true
	res.AttackPower = AttackPower(b, attacker, p)
	res.DefensePower = DefensePower(b, res.Defenders, p)
	res.Outcome = Decide(res.AttackPower, res.DefensePower)

	br.logger.Debug().
		Str("attacker", attacker.String()).
		Int("defender_count", len(res.Defenders)).
		Int("attack_power", res.AttackPower).
		Int("defense_power", res.DefensePower).
		Str("outcome", res.Outcome.String()).
		Msg("Battle powers computed")

	br.sweep(b, &res)
	return res
}

func (br *BattleResolver) sweep(b *core.Board, res *BattleResult) {
	visited := core.NewCellSet()
	centers := append([]core.Coordinate{res.Attacker}, res.Defenders...)

	for _, center := range centers {
		for _, c := range center.Block() {
			if visited.Has(c) {
				continue
			}
			visited.Add(c)

			piece := b.At(c)
			if piece.IsEmpty() || !removes(res.Outcome, piece, res.AttackerSide) {
				continue
			}
			_, _ = b.Clear(c)
			res.Removed = append(res.Removed, Removal{At: c, Piece: piece})

			if piece.Type.IsFortress() {
				res.GameOver = true
				res.Winner = piece.Owner.Opponent()
				br.logger.Info().
					Str("fortress", piece.Type.String()).
					Str("at", c.String()).
					Str("winner", res.Winner.String()).
					Msg("Fortress destroyed")
				return
			}
		}
	}
}

func removes(o Outcome, piece core.Piece, attacker core.Player) bool {
	switch o {
	case Draw:
		return true
	case AttackerWins:
		return piece.IsEnemyOf(attacker)
	case DefenderWins:
		return piece.BelongsTo(attacker)
	default:
		return false
	}
}
