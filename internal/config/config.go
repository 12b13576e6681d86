package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	SaveDir   string `env:"RESEARCHER_SAVE_DIR" envDefault:".saves"`
	Seed      int64  `env:"RESEARCHER_SEED"`
	LogFile   string `env:"RESEARCHER_LOG_FILE"`
	LogLevel  string `env:"RESEARCHER_LOG_LEVEL" envDefault:"info"`
	GoalWeeks int    `env:"RESEARCHER_GOAL_WEEKS" envDefault:"52"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.GoalWeeks <= 0 {
		return nil, fmt.Errorf("RESEARCHER_GOAL_WEEKS must be positive, got %d", cfg.GoalWeeks)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Logger builds the slog logger described by the config. The returned close
// function releases the log file, if any.
func (c *Config) Logger() (*slog.Logger, func() error, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = io.Discard
	closeFn := func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("RESEARCHER_LOG_LEVEL: %w", err)
	}
	return level, nil
}
