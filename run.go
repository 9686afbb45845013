package turtleizer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	// Title is the window title. Defaults to "Turtleizer".
	Title string
	// Width and Height are the initial window size. Zero means the
	// default 500 x 500 canvas.
	Width, Height int
	// Background replaces the scene background when non-zero.
	Background Color
	// ShowFPS enables the status overlay with FPS and TPS.
	ShowFPS bool
	// Debug prints per-paint render stats to stderr.
	Debug bool
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	if g.scene.updateFunc != nil {
		if err := g.scene.updateFunc(); err != nil {
			return err
		}
	}
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) { g.scene.Draw(screen) }

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.viewport.SetSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// SetUpdateFunc registers fn to run at the start of every Update driven by
// Run. A non-nil error stops the game loop and is returned from Run.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Run opens a resizable window and drives the scene until the window is
// closed or the update function returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "Turtleizer"
	}
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Background != (Color{}) {
		scene.SetBackground(cfg.Background)
	}
	scene.SetDebugMode(cfg.Debug)
	scene.SetShowStatus(cfg.ShowFPS)
	scene.viewport.SetSize(cfg.Width, cfg.Height)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(&game{scene: scene}); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
