package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/tycerine/internal/game/core"
	"github.com/mitchelldurbincs/tycerine/internal/game/events"
	"github.com/mitchelldurbincs/tycerine/internal/game/rules"
	"github.com/mitchelldurbincs/tycerine/internal/game/states"
	"github.com/rs/zerolog"
)

// GameConfig holds everything needed to start a game. Zero values fall back to defaults.
type GameConfig struct {
	GameID string
	Logger zerolog.Logger

	// Board is the starting position; nil means the standard one
	Board       *core.Board
	FirstPlayer core.Player

	// Decider answers fusion offers; nil falls back to FusionMode
	Decider    FusionDecider
	FusionMode string

	HistoryDepth        int
	AutoResetOnGameOver bool

	// EventBus lets callers subscribe before the game.started event; nil creates one
	EventBus *events.EventBus
	// Subscribers are attached to the bus before anything is published
	Subscribers []events.Subscriber
}

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates and initializes a new game engine
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	if err := ei.setupDefaults(); err != nil {
		return nil, err
	}

	board := ei.config.Board.Clone()
	fortressed, err := ei.checkBoard(board)
	if err != nil {
		return nil, fmt.Errorf("starting position rejected: %w", err)
	}

	engine := ei.createEngine(board, fortressed)

	ei.setupEventHandling(engine)

	engine.eventBus.Publish(events.NewGameStartedEvent(engine.gameID, engine.first))

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Str("first_player", engine.first.String()).
		Bool("fortressed", fortressed).
		Int("history_depth", ei.config.HistoryDepth).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults fills in missing configuration
func (ei *EngineInitializer) setupDefaults() error {
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}

	if ei.config.Board == nil {
		ei.logger.Debug().Msg("No board provided, using the standard starting position")
		ei.config.Board = core.NewStandardBoard()
	}

	if ei.config.FirstPlayer == core.NoPlayer {
		ei.config.FirstPlayer = core.PlayerX
	}
	if !ei.config.FirstPlayer.Valid() {
		return fmt.Errorf("invalid first player %s", ei.config.FirstPlayer)
	}

	if ei.config.Decider == nil {
		decider, err := DeciderForMode(ei.config.FusionMode, nil)
		if err != nil {
			return err
		}
		ei.config.Decider = decider
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBusWithLogger(ei.config.Logger)
	}
	return nil
}

// checkBoard validates a starting position. A board without any fortress is a sandbox
// position and never ends by fortress loss.
func (ei *EngineInitializer) checkBoard(board *core.Board) (bool, error) {
	_, hasX := board.FindFortress(core.PlayerX)
	_, hasO := board.FindFortress(core.PlayerO)
	if !hasX && !hasO {
		ei.logger.Debug().Msg("Board has no fortresses, fortress loss checks disabled")
		return false, nil
	}
	if err := board.Validate(); err != nil {
		return false, err
	}
	return true, nil
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(board *core.Board, fortressed bool) *Engine {
	gameLogger := ei.logger.With().Str("game_id", ei.config.GameID).Logger()

	turnContext := states.NewTurnContext(ei.config.GameID, ei.logger)
	turnContext.CurrentPlayer = ei.config.FirstPlayer

	engine := &Engine{
		gameID:       ei.config.GameID,
		logger:       gameLogger,
		board:        board,
		initial:      board.Snapshot(),
		first:        ei.config.FirstPlayer,
		winner:       core.NoPlayer,
		fortressed:   fortressed,
		autoReset:    ei.config.AutoResetOnGameOver,
		history:      NewHistory(ei.config.HistoryDepth),
		decider:      ei.config.Decider,
		eventBus:     ei.config.EventBus,
		stateMachine: states.NewStateMachine(turnContext, ei.config.EventBus),
		battles:      rules.NewBattleResolver(gameLogger),
		winCondition: rules.NewWinConditionChecker(gameLogger),
	}

	engine.turnProcessor = NewTurnProcessor(engine)

	return engine
}

// setupEventHandling attaches the configured subscribers to the bus
func (ei *EngineInitializer) setupEventHandling(engine *Engine) {
	for _, s := range ei.config.Subscribers {
		engine.eventBus.Subscribe(s)
	}
	ei.logger.Debug().
		Int("subscribers", engine.eventBus.GetSubscriberCount()).
		Msg("Event subscribers attached")
}
