package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings of the local client. Environment variables
// provide the defaults; command line flags override them.
type Config struct {
	Rows         int           `env:"TETRIS_ROWS" envDefault:"20"`
	Columns      int           `env:"TETRIS_COLUMNS" envDefault:"10"`
	TickInterval time.Duration `env:"TETRIS_TICK_INTERVAL" envDefault:"500ms"`
	ScorePerLine int           `env:"TETRIS_SCORE_PER_LINE" envDefault:"100"`
	Seed         int64         `env:"TETRIS_SEED"`

	DBPath  string `env:"TETRIS_DB_PATH" envDefault:"tetris.db"`
	LogPath string `env:"TETRIS_LOG_PATH"`
	Theme   string `env:"TETRIS_THEME" envDefault:"basic"`
	Nick    string `env:"TETRIS_NICK"`
}

// ServerConfig holds the settings of the SSH host.
type ServerConfig struct {
	SSHAddr     string        `env:"TETRIS_SSH_ADDR" envDefault:":2222"`
	HostKey     string        `env:"TETRIS_HOST_KEY"`
	Binary      string        `env:"TETRIS_BINARY"`
	IdleTimeout time.Duration `env:"TETRIS_IDLE_TIMEOUT" envDefault:"5m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}

	return cfg, nil
}

// Validate rejects board and timing settings the engine cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Rows <= 0 {
		errs = append(errs, fmt.Errorf("rows must be positive, got %d", c.Rows))
	}
	if c.Columns <= 0 {
		errs = append(errs, fmt.Errorf("columns must be positive, got %d", c.Columns))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick interval must be positive, got %s", c.TickInterval))
	}
	if c.ScorePerLine <= 0 {
		errs = append(errs, fmt.Errorf("score per line must be positive, got %d", c.ScorePerLine))
	}

	return errors.Join(errs...)
}

func (c ServerConfig) Validate() error {
	if c.SSHAddr == "" {
		return errors.New("ssh address must be set")
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("idle timeout must not be negative, got %s", c.IdleTimeout)
	}

	return nil
}
