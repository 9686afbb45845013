// Command turtleizer opens a turtle canvas and plays a JSON turtle script in
// it. Without a script it draws a demo spiral.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/turtleizer"
	"github.com/phanxgames/turtleizer/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(log)
	turtleizer.SetLogger(log)

	scene, err := newScene(cfg)
	if err != nil {
		slog.Error("set up scene", "error", err)
		os.Exit(1)
	}

	bg, err := turtleizer.ParseColor(cfg.Background)
	if err != nil {
		slog.Warn("ignoring background", "error", err)
		bg = turtleizer.ColorWhite
	}

	slog.Info("starting", "width", cfg.Width, "height", cfg.Height, "script", cfg.Script)
	err = turtleizer.Run(scene, turtleizer.RunConfig{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Background: bg,
		ShowFPS:    cfg.ShowFPS,
		Debug:      cfg.Debug,
	})
	if err != nil {
		slog.Error("run", "error", err)
		os.Exit(1)
	}
}

func newScene(cfg *config.Config) (*turtleizer.Scene, error) {
	scene := turtleizer.NewScene()
	scene.ExportDir = cfg.ExportDir
	scene.Renderer().SetAutoUpdate(cfg.AutoUpdate)
	scene.Measurer().SetSnapRadius(cfg.SnapRadius)
	scene.Measurer().SetSnapToLines(cfg.SnapLines)

	runner, err := loadScript(cfg.Script)
	if err != nil {
		return nil, err
	}
	scene.SetScript(runner)
	return scene, nil
}

func loadScript(path string) (*turtleizer.ScriptRunner, error) {
	if path == "" {
		return turtleizer.LoadScript(demoScript)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("script %s not found", path)
		}
		return nil, fmt.Errorf("read script: %w", err)
	}
	return turtleizer.LoadScript(data)
}

// demoScript draws a colored square spiral around the canvas center.
var demoScript = []byte(`{"steps": [
  {"action": "addTurtle", "x": 250, "y": 250},
  {"action": "repeat", "count": 30, "steps": [
    {"action": "forward", "value": 10, "color": "red"},
    {"action": "left", "value": 90},
    {"action": "forward", "value": 15, "color": "orange"},
    {"action": "left", "value": 90},
    {"action": "forward", "value": 20, "color": "green"},
    {"action": "left", "value": 90},
    {"action": "forward", "value": 25, "color": "blue"},
    {"action": "left", "value": 91}
  ]},
  {"action": "command", "command": "zoomBounds"}
]}`)
