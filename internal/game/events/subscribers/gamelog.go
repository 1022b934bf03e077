package subscribers

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/events"
)

// LogCategory classifies a game log entry for display
type LogCategory string

const (
	CategoryNormal LogCategory = "normal"
	CategoryPlayer LogCategory = "player"
	CategoryBattle LogCategory = "battle"
)

// LogEntry is one human-readable line of the game log
type LogEntry struct {
	Time     time.Time
	Category LogCategory
	Player   core.Player
	Message  string
}

func (e LogEntry) String() string {
	return e.Message
}

// GameLogSubscriber keeps a readable account of the game for the presentation layer.
// Entries are appended as events arrive; a reset starts a fresh log.
type GameLogSubscriber struct {
	id         string
	maxEntries int

	mu      sync.RWMutex
	entries []LogEntry
}

// NewGameLogSubscriber creates a game log; maxEntries <= 0 keeps everything
func NewGameLogSubscriber(id string, maxEntries int) *GameLogSubscriber {
	return &GameLogSubscriber{id: id, maxEntries: maxEntries}
}

func (gl *GameLogSubscriber) ID() string { return gl.id }

func (gl *GameLogSubscriber) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeStateTransition, events.TypeHopperSelected, events.TypeFusionMode:
		return false
	}
	return true
}

// HandleEvent renders the event into zero or more log entries
func (gl *GameLogSubscriber) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case *events.GameStartedEvent:
		gl.add(event, CategoryNormal, core.NoPlayer, fmt.Sprintf("New game, %s moves first", e.FirstPlayer))

	case *events.GameResetEvent:
		gl.clear()
		gl.add(event, CategoryNormal, core.NoPlayer, "Board reset")

	case *events.PiecePlacedEvent:
		gl.add(event, CategoryPlayer, e.Player, fmt.Sprintf("%s placed a Pawn at %s", e.Player, e.At))

	case *events.HopperRelocatedEvent:
		msg := fmt.Sprintf("%s moved a Hopper from %s to %s", e.Player, e.From, e.To)
		if e.Swapped() {
			msg = fmt.Sprintf("%s swapped a Hopper at %s with %s at %s", e.Player, e.From, e.SwappedWith, e.To)
		}
		gl.add(event, CategoryPlayer, e.Player, msg)

	case *events.FusionExecutedEvent:
		gl.add(event, CategoryPlayer, e.Player,
			fmt.Sprintf("%s performed a %s fusion, new %s at %s", e.Player, e.Kind, e.Created.Type, e.Target))

	case *events.FusionDeclinedEvent:
		gl.add(event, CategoryPlayer, e.Player, fmt.Sprintf("%s declined a %s fusion at %s", e.Player, e.Kind, e.Center))

	case *events.BattleResolvedEvent:
		gl.add(event, CategoryBattle, core.NoPlayer, "Battle!")
		gl.add(event, CategoryPlayer, e.Player, fmt.Sprintf("Attacker (%s) attack power: %d", e.Player, e.AttackPower))
		gl.add(event, CategoryPlayer, e.Player.Opponent(), fmt.Sprintf("Defender defense power: %d", e.DefensePower))
		gl.add(event, CategoryBattle, core.NoPlayer, outcomeMessage(e.Outcome))
		for _, r := range e.Removed {
			gl.add(event, CategoryBattle, r.Piece.Owner, fmt.Sprintf("Removed %s at %s", r.Piece, r.At))
		}

	case *events.GameEndedEvent:
		gl.add(event, CategoryNormal, e.Winner, fmt.Sprintf("Game over: %s wins (%s)", e.Winner, e.Reason))

	case *events.MoveUndoneEvent:
		gl.add(event, CategoryNormal, e.Player, fmt.Sprintf("Undid %s by %s", e.Kind, e.Player))

	case *events.ActionRejectedEvent:
		gl.add(event, CategoryNormal, e.Player, fmt.Sprintf("%s: %s rejected (%s)", e.Player, e.Action, e.Reason))
	}
}

func outcomeMessage(outcome string) string {
	switch outcome {
	case "draw":
		return "Evenly matched, all pieces involved are removed"
	case "attacker_wins":
		return "Attacker wins, defending pieces are removed"
	case "defender_wins":
		return "Defender wins, attacking pieces are removed"
	default:
		return outcome
	}
}

func (gl *GameLogSubscriber) add(event events.Event, cat LogCategory, player core.Player, msg string) {
	gl.mu.Lock()
	defer gl.mu.Unlock()

	gl.entries = append(gl.entries, LogEntry{
		Time:     event.Timestamp(),
		Category: cat,
		Player:   player,
		Message:  msg,
	})
	if gl.maxEntries > 0 && len(gl.entries) > gl.maxEntries {
		gl.entries = gl.entries[len(gl.entries)-gl.maxEntries:]
	}
}

func (gl *GameLogSubscriber) clear() {
	gl.mu.Lock()
	defer gl.mu.Unlock()
	gl.entries = nil
}

// Entries returns a copy of the log
func (gl *GameLogSubscriber) Entries() []LogEntry {
	gl.mu.RLock()
	defer gl.mu.RUnlock()
	return append([]LogEntry(nil), gl.entries...)
}

// Tail returns the last n entries
func (gl *GameLogSubscriber) Tail(n int) []LogEntry {
	gl.mu.RLock()
	defer gl.mu.RUnlock()
	if n >= len(gl.entries) {
		return append([]LogEntry(nil), gl.entries...)
	}
	return append([]LogEntry(nil), gl.entries[len(gl.entries)-n:]...)
}
