package config

import (
	"fmt"
	"time"

	"impostorparty/internal/game"
)

// This file defines the configuration structures; loading is handled by
// viper in viper_config.go.

// ServerConfig is the full server configuration.
type ServerConfig struct {
	Server ServerSettings `yaml:"server"`
	Game   GameSettings   `yaml:"game"`
}

// ServerSettings contains network and process-wide settings.
type ServerSettings struct {
	Port            string        `yaml:"port" envconfig:"PORT"`
	Host            string        `yaml:"host" envconfig:"HOST"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"` // 0 keeps SSE streams alive
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	// Rate limiting (golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit"`
	RateLimitBurst int     `yaml:"rateLimitBurst"`

	MaxRequestSize int64 `yaml:"maxRequestSize"`

	EnableMetrics bool   `yaml:"enableMetrics"`
	MetricsPort   string `yaml:"metricsPort"`

	// Skip outbound public-IP discovery at startup (tests, offline LANs).
	SkipIPDiscovery bool `yaml:"skipIPDiscovery"`
}

// GameSettings contains the session defaults and file locations.
type GameSettings struct {
	MinPlayers            int           `yaml:"minPlayers"`
	HeartbeatTimeout      time.Duration `yaml:"heartbeatTimeout"`
	SweepInterval         time.Duration `yaml:"sweepInterval"`
	ImpostorStarterChance float64       `yaml:"impostorStarterChance"`
	AnnounceSpicyMode     bool          `yaml:"announceSpicyMode"`
	WordMode              string        `yaml:"wordMode"`
	WordsFile             string        `yaml:"wordsFile"`
	SpicyWordsFile        string        `yaml:"spicyWordsFile"`
	LeaderboardFile       string        `yaml:"leaderboardFile"`
	ControlPassword       string        `yaml:"controlPassword"`
	ControlUsers          []string      `yaml:"controlUsers"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Port:            "5000",
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     0,
			ShutdownTimeout: 30 * time.Second,
			RateLimit:       10,
			RateLimitBurst:  20,
			MaxRequestSize:  1 << 20,
			EnableMetrics:   false,
		},
		Game: GameSettings{
			MinPlayers:            3,
			HeartbeatTimeout:      6 * time.Second,
			SweepInterval:         6 * time.Second,
			ImpostorStarterChance: 0.2,
			AnnounceSpicyMode:     true,
			WordMode:              string(game.WordModeDisabled),
			WordsFile:             "words.txt",
			SpicyWordsFile:        "spicy_words.txt",
			LeaderboardFile:       "leaderboard.json",
			ControlPassword:       "admineger",
			ControlUsers:          []string{"Control", "Admin"},
		},
	}
}

// Validate checks the configuration.
func (c *ServerConfig) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("port must be set")
	}
	if c.Server.EnableMetrics && c.Server.MetricsPort == "" {
		return fmt.Errorf("metricsPort must be set when metrics are enabled")
	}
	if c.Game.MinPlayers < 3 {
		return fmt.Errorf("minPlayers must be at least 3")
	}
	if c.Game.HeartbeatTimeout <= 0 {
		return fmt.Errorf("heartbeatTimeout must be positive")
	}
	if c.Game.SweepInterval <= 0 {
		return fmt.Errorf("sweepInterval must be positive")
	}
	if c.Game.ImpostorStarterChance < 0 || c.Game.ImpostorStarterChance > 1 {
		return fmt.Errorf("impostorStarterChance must be between 0 and 1")
	}
	if !game.ValidWordMode(c.Game.WordMode) {
		return fmt.Errorf("wordMode must be one of disabled, possible, forced")
	}
	if len(c.Game.ControlPassword) < 4 {
		return fmt.Errorf("controlPassword must be at least 4 characters")
	}
	return nil
}

// SessionSettings maps the config onto the session's runtime settings.
func (c *ServerConfig) SessionSettings() game.Settings {
	return game.Settings{
		MinPlayers:            c.Game.MinPlayers,
		HeartbeatTimeout:      c.Game.HeartbeatTimeout,
		SweepInterval:         c.Game.SweepInterval,
		ImpostorStarterChance: c.Game.ImpostorStarterChance,
		AnnounceSpicyMode:     c.Game.AnnounceSpicyMode,
	}
}
