package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/tycerine/internal/config"
	"github.com/mitchelldurbincs/tycerine/internal/game"
	"github.com/mitchelldurbincs/tycerine/internal/game/events"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", "", "Environment overlay to merge, e.g. dev loads config.dev.yaml")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	noColor := flag.Bool("no-color", false, "Disable ANSI colours")
	flag.Parse()

	// Initialize configuration
	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}

	cfg := config.Get()

	// Use config defaults if not overridden by flags
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	if *noColor {
		cfg.Console.Color = false
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	if path := config.ConfigFilePath(); path != "" {
		config.WatchConfig(func(c *config.Config) {
			if lvl, err := zerolog.ParseLevel(c.Logging.Level); err == nil {
				zerolog.SetGlobalLevel(lvl)
			}
			log.Info().Str("file", path).Str("level", c.Logging.Level).Msg("Config reloaded")
		})
	}

	in := bufio.NewScanner(os.Stdin)
	con := newConsole(in, os.Stdout, consoleOptions{
		Color:          cfg.Console.Color,
		ShowLegalCells: cfg.Console.ShowLegalCells,
		LogTail:        cfg.Console.LogTail,
	})

	gameCfg, err := game.GameConfigFromSettings(cfg, log.Logger, con)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid game settings")
	}

	logSub, gameLog, err := game.NewStandardSubscribers(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create event subscribers")
	}
	gameCfg.Subscribers = []events.Subscriber{logSub, gameLog}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	engine, err := game.NewEngineInitializer(gameCfg).Initialize(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start game")
	}

	log.Debug().
		Str("game_id", engine.GameID()).
		Str("fusion_mode", cfg.Game.Fusion.AutoConfirm).
		Msg("Starting console")

	con.attach(engine, gameLog)
	if err := con.run(); err != nil {
		log.Fatal().Err(err).Msg("Console stopped")
	}
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// The board goes to stdout, logs to stderr
	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
