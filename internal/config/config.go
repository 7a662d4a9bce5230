package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"partyhub/internal/game"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Env  string `env:"ENV" envDefault:"development"` // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	MinPlayers           int           `env:"MIN_PLAYERS" envDefault:"2"`
	MaxPlayers           int           `env:"MAX_PLAYERS" envDefault:"12"`
	DefaultRoundCount    int           `env:"DEFAULT_ROUND_COUNT" envDefault:"5"`
	DefaultTimePerRound  int           `env:"DEFAULT_TIME_PER_ROUND_SECONDS" envDefault:"30"`
	VoteGraceSeconds     int           `env:"VOTE_GRACE_SECONDS" envDefault:"5"`
	RevealSeconds        int           `env:"REVEAL_SECONDS" envDefault:"3"`
	ScoresSeconds        int           `env:"SCORES_SECONDS" envDefault:"5"`
	IntermissionSeconds  int           `env:"INTERMISSION_SECONDS" envDefault:"10"`
	ReconnectGracePeriod time.Duration `env:"RECONNECT_GRACE_PERIOD" envDefault:"2m"`
	RoomCodeLength       int           `env:"ROOM_CODE_LENGTH" envDefault:"6"`
	ActionsPerSecond     float64       `env:"ACTIONS_PER_SECOND" envDefault:"5"`
	ActionBurst          int           `env:"ACTION_BURST" envDefault:"10"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Timing returns the session pauses
func (c *Config) Timing() game.Timing {
	return game.Timing{
		VoteGrace:   time.Duration(c.Game.VoteGraceSeconds) * time.Second,
		RevealPause: time.Duration(c.Game.RevealSeconds) * time.Second,
		ScoresPause: time.Duration(c.Game.ScoresSeconds) * time.Second,
	}
}
