package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the settings of the turtleizer binary, read from TURTLEIZER_*
// environment variables.
type Config struct {
	Width      int     `envconfig:"WIDTH" default:"500"`
	Height     int     `envconfig:"HEIGHT" default:"500"`
	Title      string  `envconfig:"TITLE" default:"Turtleizer"`
	Script     string  `envconfig:"SCRIPT"`
	ExportDir  string  `envconfig:"EXPORT_DIR" default:"export"`
	SnapRadius float64 `envconfig:"SNAP_RADIUS" default:"5"`
	SnapLines  bool    `envconfig:"SNAP_LINES" default:"true"`
	AutoUpdate bool    `envconfig:"AUTO_UPDATE" default:"true"`
	Background string  `envconfig:"BACKGROUND" default:"white"`
	ShowFPS    bool    `envconfig:"SHOW_FPS" default:"false"`
	Debug      bool    `envconfig:"DEBUG" default:"false"`
	LogLevel   string  `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("turtleizer", &cfg); err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	return &cfg, nil
}

// Level maps LogLevel to a slog level. Unknown names fall back to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
