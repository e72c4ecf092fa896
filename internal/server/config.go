package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete server configuration.
type Config struct {
	Server   Settings        `hcl:"server,block"`
	Sessions SessionSettings `hcl:"sessions,block"`
}

// Settings contains listener-level configuration.
type Settings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// SessionSettings bounds the in-memory session registry.
type SessionSettings struct {
	MaxGames        int    `hcl:"max_games,optional"`
	IdleTimeoutMins int    `hcl:"idle_timeout_minutes,optional"`
	ReapIntervalMin int    `hcl:"reap_interval_minutes,optional"`
	Seed            *int64 `hcl:"seed,optional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Sessions: SessionSettings{
			MaxGames:        100,
			IdleTimeoutMins: 60,
			ReapIntervalMin: 5,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Sessions.MaxGames == 0 {
		config.Sessions.MaxGames = defaults.Sessions.MaxGames
	}
	if config.Sessions.IdleTimeoutMins == 0 {
		config.Sessions.IdleTimeoutMins = defaults.Sessions.IdleTimeoutMins
	}
	if config.Sessions.ReapIntervalMin == 0 {
		config.Sessions.ReapIntervalMin = defaults.Sessions.ReapIntervalMin
	}
	return &config, nil
}

// IdleTimeout returns the session idle timeout as a duration.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Sessions.IdleTimeoutMins) * time.Minute
}

// ReapInterval returns how often idle sessions are collected.
func (c *Config) ReapInterval() time.Duration {
	return time.Duration(c.Sessions.ReapIntervalMin) * time.Minute
}

// ListenAddr returns the host:port listener address.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
