package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Fusion confirmation modes for game.fusion.auto_confirm
const (
	FusionPrompt = "prompt"
	FusionAlways = "always"
	FusionNever  = "never"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig    `mapstructure:"game"`
	Logging LoggingConfig `mapstructure:"logging"`
	Events  EventsConfig  `mapstructure:"events"`
	Console ConsoleConfig `mapstructure:"console"`
}

// GameConfig holds game rule settings
type GameConfig struct {
	FirstPlayer         string        `mapstructure:"first_player"`
	AutoResetOnGameOver bool          `mapstructure:"auto_reset_on_game_over"`
	Fusion              FusionConfig  `mapstructure:"fusion"`
	History             HistoryConfig `mapstructure:"history"`
}

// FusionConfig controls the optional fusion offered after a placement
type FusionConfig struct {
	AutoConfirm string `mapstructure:"auto_confirm"`
}

// HistoryConfig controls the undo history
type HistoryConfig struct {
	// MaxDepth bounds the undo stack; 0 keeps every move
	MaxDepth int `mapstructure:"max_depth"`
}

// LoggingConfig holds process-wide logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EventsConfig holds settings for event subscribers
type EventsConfig struct {
	LogLevel    string   `mapstructure:"log_level"`
	DevMode     bool     `mapstructure:"dev_mode"`
	Filter      []string `mapstructure:"filter"`
	GameLogSize int      `mapstructure:"game_log_size"`
}

// ConsoleConfig holds settings for the terminal front end
type ConsoleConfig struct {
	ShowLegalCells bool `mapstructure:"show_legal_cells"`
	Color          bool `mapstructure:"color"`
	LogTail        int  `mapstructure:"log_tail"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Game defaults
	v.SetDefault("game.first_player", "X")
	v.SetDefault("game.auto_reset_on_game_over", false)
	v.SetDefault("game.fusion.auto_confirm", FusionPrompt)
	v.SetDefault("game.history.max_depth", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Event subscriber defaults
	v.SetDefault("events.log_level", "debug")
	v.SetDefault("events.dev_mode", false)
	v.SetDefault("events.filter", []string{})
	v.SetDefault("events.game_log_size", 200)

	// Console defaults
	v.SetDefault("console.show_legal_cells", true)
	v.SetDefault("console.color", true)
	v.SetDefault("console.log_tail", 8)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/tycerine")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("TYC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file falls back to defaults, either at an explicit path or the default locations
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath == "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml from the working directory over the
// loaded configuration.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("error merging environment config %s: %w", envFile, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	_ = v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. A reload that fails validation
// keeps the previous values.
func WatchConfig(onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			return
		}
		if err := Validate(next); err != nil {
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()
}

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}
	validFormats = []string{"console", "json"}
	validFusion  = []string{FusionPrompt, FusionAlways, FusionNever}
)

func oneOf(value string, allowed []string) bool {
	value = strings.ToLower(value)
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Validate validates the configuration values
func Validate(c *Config) error {
	switch strings.ToUpper(c.Game.FirstPlayer) {
	case "X", "O":
	default:
		return fmt.Errorf("game.first_player must be X or O, got %q", c.Game.FirstPlayer)
	}
	if !oneOf(c.Game.Fusion.AutoConfirm, validFusion) {
		return fmt.Errorf("game.fusion.auto_confirm must be one of %v, got %q", validFusion, c.Game.Fusion.AutoConfirm)
	}
	if c.Game.History.MaxDepth < 0 {
		return fmt.Errorf("game.history.max_depth must be non-negative")
	}

	if !oneOf(c.Logging.Level, validLevels) {
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	if !oneOf(c.Logging.Format, validFormats) {
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if !oneOf(c.Events.LogLevel, validLevels) {
		return fmt.Errorf("events.log_level %q is not a valid level", c.Events.LogLevel)
	}
	if c.Events.GameLogSize < 0 {
		return fmt.Errorf("events.game_log_size must be non-negative")
	}

	if c.Console.LogTail < 0 {
		return fmt.Errorf("console.log_tail must be non-negative")
	}

	return nil
}
