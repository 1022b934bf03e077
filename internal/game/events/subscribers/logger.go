package subscribers

import (
	"encoding/json"
	"strings"

	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.InfoLevel:
		logEvent = eventLogger.Info()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("rows", e.Rows).
			Int("cols", e.Cols).
			Str("first_player", e.FirstPlayer.String())

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.Winner.String()).
			Str("reason", e.Reason).
			Int("move", e.MoveNumber)

	case *events.GameResetEvent:
		logEvent.Bool("automatic", e.Automatic)

	case *events.PiecePlacedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("at", e.At.String()).
			Int("move", e.MoveNumber)

	case *events.HopperSelectedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("at", e.At.String()).
			Bool("selected", e.Selected)

	case *events.HopperRelocatedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("from", e.From.String()).
			Str("to", e.To.String()).
			Bool("swapped", e.Swapped()).
			Int("move", e.MoveNumber)

	case *events.FusionModeEvent:
		logEvent.
			Str("player", e.Player.String()).
			Bool("active", e.Active).
			Str("candidates", joinCells(e.Candidates))

	case *events.FusionExecutedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("kind", e.Kind).
			Str("center", e.Center.String()).
			Str("target", e.Target.String()).
			Int("consumed", len(e.Consumed)).
			Bool("manual", e.Manual)

	case *events.FusionDeclinedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("kind", e.Kind).
			Str("center", e.Center.String())

	case *events.BattleResolvedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("attacker", e.Attacker.String()).
			Str("defenders", joinCells(e.Defenders)).
			Int("attack_power", e.AttackPower).
			Int("defense_power", e.DefensePower).
			Str("outcome", e.Outcome).
			Int("removed", len(e.Removed)).
			Bool("game_over", e.GameOver)

	case *events.TurnChangedEvent:
		logEvent.
			Str("from", e.From.String()).
			Str("to", e.To.String()).
			Int("move", e.MoveNumber).
			Int("legal_cells", e.LegalCells)

	case *events.MoveUndoneEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("kind", e.Kind).
			Int("move", e.MoveNumber)

	case *events.ActionRejectedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("action", e.Action).
			Str("reason", e.Reason)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}

func joinCells(cells []core.Coordinate) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
