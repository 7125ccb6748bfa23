package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration using Viper.
// Priority order: environment variables > config file > defaults.
func LoadConfig(configPath string) (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("server")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/impostorparty")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Short env names in addition to IMPOSTORPARTY_SERVER_PORT style
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.enablemetrics", "ENABLE_METRICS")
	v.BindEnv("server.metricsport", "METRICS_PORT")
	v.BindEnv("server.ratelimit", "RATE_LIMIT")
	v.BindEnv("server.ratelimitburst", "RATE_LIMIT_BURST")
	v.BindEnv("game.controlpassword", "CONTROL_PASSWORD")
	v.BindEnv("game.wordsfile", "WORDS_FILE")
	v.BindEnv("game.spicywordsfile", "SPICY_WORDS_FILE")
	v.BindEnv("game.leaderboardfile", "LEADERBOARD_FILE")
	v.BindEnv("game.wordmode", "WORD_MODE")

	defaults := DefaultConfig()
	v.SetDefault("server.port", defaults.Server.Port)
	v.SetDefault("server.host", defaults.Server.Host)
	v.SetDefault("server.readtimeout", defaults.Server.ReadTimeout)
	v.SetDefault("server.writetimeout", defaults.Server.WriteTimeout)
	v.SetDefault("server.idletimeout", defaults.Server.IdleTimeout)
	v.SetDefault("server.shutdowntimeout", defaults.Server.ShutdownTimeout)
	v.SetDefault("server.ratelimit", defaults.Server.RateLimit)
	v.SetDefault("server.ratelimitburst", defaults.Server.RateLimitBurst)
	v.SetDefault("server.maxrequestsize", defaults.Server.MaxRequestSize)
	v.SetDefault("server.enablemetrics", defaults.Server.EnableMetrics)
	v.SetDefault("server.skipipdiscovery", defaults.Server.SkipIPDiscovery)
	v.SetDefault("game.minplayers", defaults.Game.MinPlayers)
	v.SetDefault("game.heartbeattimeout", defaults.Game.HeartbeatTimeout)
	v.SetDefault("game.sweepinterval", defaults.Game.SweepInterval)
	v.SetDefault("game.impostorstarterchance", defaults.Game.ImpostorStarterChance)
	v.SetDefault("game.announcespicymode", defaults.Game.AnnounceSpicyMode)
	v.SetDefault("game.wordmode", defaults.Game.WordMode)
	v.SetDefault("game.wordsfile", defaults.Game.WordsFile)
	v.SetDefault("game.spicywordsfile", defaults.Game.SpicyWordsFile)
	v.SetDefault("game.leaderboardfile", defaults.Game.LeaderboardFile)
	v.SetDefault("game.controlpassword", defaults.Game.ControlPassword)
	v.SetDefault("game.controlusers", defaults.Game.ControlUsers)

	// The config file is optional; env vars and defaults carry the rest.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !strings.Contains(err.Error(), "no such file or directory") {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &ServerConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
