package config

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"influence/internal/game"
)

// This file defines the configuration structures used by viper_config.go
// The actual loading is handled by viper in viper_config.go

// ServerConfig represents the server configuration
type ServerConfig struct {
	Server ServerSettings `yaml:"server"`
	Rules  RulesSettings  `yaml:"rules"`
}

// ServerSettings contains server-wide settings
type ServerSettings struct {
	MaxTables        int           `yaml:"maxTables"`
	TableCodeLength  int           `yaml:"tableCodeLength"`
	TableIdleTimeout time.Duration `yaml:"tableIdleTimeout"`
	SweepInterval    time.Duration `yaml:"sweepInterval"`

	// Server settings
	Port            string        `yaml:"port"`
	Host            string        `yaml:"host"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	IdleTimeout     time.Duration `yaml:"idleTimeout"` // 0 for SSE support
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"` // Timeout for regular HTTP requests (middleware)
	SSETimeout      time.Duration `yaml:"sseTimeout"`     // Timeout for SSE connections (0 = no timeout)

	// Rate limiting (using golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit"`      // requests per second
	RateLimitBurst int     `yaml:"rateLimitBurst"` // burst size

	// Request limits
	MaxRequestSize    int64 `yaml:"maxRequestSize"` // 1MB
	MaxSSEConnections int   `yaml:"maxSSEConnections"`

	LogLevel string `yaml:"logLevel"`
}

// RulesSettings are the game rules applied to every new table
type RulesSettings struct {
	MinPlayers              int           `yaml:"minPlayers"`
	MaxPlayers              int           `yaml:"maxPlayers"`
	StartingCoins           int           `yaml:"startingCoins"`
	LargeGameThreshold      int           `yaml:"largeGameThreshold"`
	BlockWindow             time.Duration `yaml:"blockWindow"`
	ChallengeWindow         time.Duration `yaml:"challengeWindow"`
	ChallengePolicy         string        `yaml:"challengePolicy"`
	ExchangeChallengeWindow bool          `yaml:"exchangeChallengeWindow"`
	// EnforceMustCoup makes the server reject anything but a coup at MustCoupAt coins.
	EnforceMustCoup bool `yaml:"enforceMustCoup"`
	MustCoupAt      int  `yaml:"mustCoupAt"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *ServerConfig {
	rules := game.DefaultRules()
	return &ServerConfig{
		Server: ServerSettings{
			MaxTables:        100,
			TableCodeLength:  5,
			TableIdleTimeout: 2 * time.Hour,
			SweepInterval:    5 * time.Minute,

			// Server defaults
			Port:            "", // Must be set via env
			Host:            "", // Must be set via env
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    0, // SSE streams stay open
			IdleTimeout:     0,
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
			SSETimeout:      24 * time.Hour,

			// Rate limiting defaults
			RateLimit:      10, // 10 requests per second
			RateLimitBurst: 20,

			// Request limits
			MaxRequestSize:    1048576, // 1MB
			MaxSSEConnections: 1000,

			LogLevel: "info",
		},
		Rules: RulesSettings{
			MinPlayers:              rules.MinPlayers,
			MaxPlayers:              rules.MaxPlayers,
			StartingCoins:           rules.StartingCoins,
			LargeGameThreshold:      rules.LargeGameThreshold,
			BlockWindow:             rules.BlockWindow,
			ChallengeWindow:         rules.ChallengeWindow,
			ChallengePolicy:         string(rules.ChallengePolicy),
			ExchangeChallengeWindow: rules.ExchangeChallengeWindow,
			EnforceMustCoup:         true,
			MustCoupAt:              rules.MustCoupAt,
		},
	}
}

// Validate checks if the configuration is valid
func (c *ServerConfig) Validate() error {
	// Required fields
	if c.Server.Port == "" {
		return fmt.Errorf("PORT environment variable must be set")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("HOST environment variable must be set")
	}

	if c.Server.MaxTables < 1 {
		return fmt.Errorf("maxTables must be at least 1")
	}
	if c.Server.TableCodeLength < 3 {
		return fmt.Errorf("tableCodeLength must be at least 3")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("rateLimit must be positive")
	}

	if err := c.GameRules().Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	return nil
}

// GameRules converts the rules section for the game engine
func (c *ServerConfig) GameRules() game.Rules {
	r := c.Rules
	return game.Rules{
		MinPlayers:              r.MinPlayers,
		MaxPlayers:              r.MaxPlayers,
		StartingCoins:           r.StartingCoins,
		LargeGameThreshold:      r.LargeGameThreshold,
		BlockWindow:             r.BlockWindow,
		ChallengeWindow:         r.ChallengeWindow,
		ChallengePolicy:         game.ChallengePolicy(r.ChallengePolicy),
		ExchangeChallengeWindow: r.ExchangeChallengeWindow,
		MustCoupAt:              r.MustCoupAt,
	}
}

// WriteYAML writes the effective configuration
func (c *ServerConfig) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
