package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration using Viper
// Priority order: Environment variables > Config file > Defaults
func LoadConfig(configPath string) (*ServerConfig, error) {
	v := viper.New()

	// Set config file details
	v.SetConfigName("server")
	v.SetConfigType("yaml")

	// Add config paths
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/influence")
	}

	// Enable environment variable binding
	// INFLUENCE_RULES_BLOCKWINDOW=3s overrides rules.blockWindow
	v.SetEnvPrefix("influence")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Short names for the settings deployments touch most
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.host", "HOST")
	v.BindEnv("server.loglevel", "LOG_LEVEL")
	v.BindEnv("server.ratelimit", "RATE_LIMIT")
	v.BindEnv("server.ratelimitburst", "RATE_LIMIT_BURST")
	v.BindEnv("server.maxrequestsize", "MAX_REQUEST_SIZE")
	v.BindEnv("server.maxsseconnections", "MAX_SSE_CONNECTIONS")
	v.BindEnv("server.maxtables", "MAX_TABLES")

	setDefaults(v, DefaultConfig())

	// Try to read config file (it's optional)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; continue with env vars and defaults
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

func setDefaults(v *viper.Viper, d *ServerConfig) {
	s := d.Server
	v.SetDefault("server.maxtables", s.MaxTables)
	v.SetDefault("server.tablecodelength", s.TableCodeLength)
	v.SetDefault("server.tableidletimeout", s.TableIdleTimeout.String())
	v.SetDefault("server.sweepinterval", s.SweepInterval.String())

	// Timeout defaults
	v.SetDefault("server.readtimeout", s.ReadTimeout.String())
	v.SetDefault("server.writetimeout", s.WriteTimeout.String())
	v.SetDefault("server.idletimeout", s.IdleTimeout.String()) // 0 for SSE support
	v.SetDefault("server.shutdowntimeout", s.ShutdownTimeout.String())
	v.SetDefault("server.requesttimeout", s.RequestTimeout.String())
	v.SetDefault("server.ssetimeout", s.SSETimeout.String())

	// Rate limiting defaults
	v.SetDefault("server.ratelimit", s.RateLimit)
	v.SetDefault("server.ratelimitburst", s.RateLimitBurst)

	// Request limits
	v.SetDefault("server.maxrequestsize", s.MaxRequestSize)
	v.SetDefault("server.maxsseconnections", s.MaxSSEConnections)
	v.SetDefault("server.loglevel", s.LogLevel)

	r := d.Rules
	v.SetDefault("rules.minplayers", r.MinPlayers)
	v.SetDefault("rules.maxplayers", r.MaxPlayers)
	v.SetDefault("rules.startingcoins", r.StartingCoins)
	v.SetDefault("rules.largegamethreshold", r.LargeGameThreshold)
	v.SetDefault("rules.blockwindow", r.BlockWindow.String())
	v.SetDefault("rules.challengewindow", r.ChallengeWindow.String())
	v.SetDefault("rules.challengepolicy", r.ChallengePolicy)
	v.SetDefault("rules.exchangechallengewindow", r.ExchangeChallengeWindow)
	v.SetDefault("rules.enforcemustcoup", r.EnforceMustCoup)
	v.SetDefault("rules.mustcoupat", r.MustCoupAt)
}
