package game

import (
	"fmt"

	"github.com/mitchelldurbincs/tycerine/internal/config"
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/events/subscribers"
	"github.com/rs/zerolog"
)

// Subscriber IDs used by the standard subscribers
const (
	EventLoggerID = "event_logger"
	GameLogID     = "game_log"
)

// GameConfigFromSettings maps loaded settings onto a GameConfig. prompt answers fusion offers
// when game.fusion.auto_confirm is "prompt".
func GameConfigFromSettings(c *config.Config, logger zerolog.Logger, prompt FusionDecider) (GameConfig, error) {
	first, err := core.ParsePlayer(c.Game.FirstPlayer)
	if err != nil {
		return GameConfig{}, fmt.Errorf("game.first_player: %w", err)
	}

	decider, err := DeciderForMode(c.Game.Fusion.AutoConfirm, prompt)
	if err != nil {
		return GameConfig{}, fmt.Errorf("game.fusion.auto_confirm: %w", err)
	}

	return GameConfig{
		Logger:              logger,
		FirstPlayer:         first,
		Decider:             decider,
		FusionMode:          c.Game.Fusion.AutoConfirm,
		HistoryDepth:        c.Game.History.MaxDepth,
		AutoResetOnGameOver: c.Game.AutoResetOnGameOver,
	}, nil
}

// NewStandardSubscribers builds the structured event logger and the readable game log
// from the events settings.
func NewStandardSubscribers(c *config.Config, logger zerolog.Logger) (*subscribers.LoggerSubscriber, *subscribers.GameLogSubscriber, error) {
	level, err := zerolog.ParseLevel(c.Events.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("events.log_level: %w", err)
	}

	logSub := subscribers.NewLoggerSubscriber(EventLoggerID, logger, level)
	logSub.SetDevMode(c.Events.DevMode)
	logSub.SetEventFilter(c.Events.Filter)

	return logSub, subscribers.NewGameLogSubscriber(GameLogID, c.Events.GameLogSize), nil
}
