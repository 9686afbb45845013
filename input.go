package turtleizer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	return mods
}

// scrollKey maps a key to a scroll step.
type scrollKey struct {
	key     ebiten.Key
	axis    Axis
	forward bool
	large   bool
}

var scrollKeys = []scrollKey{
	{ebiten.KeyArrowLeft, AxisHorizontal, false, false},
	{ebiten.KeyArrowRight, AxisHorizontal, true, false},
	{ebiten.KeyArrowUp, AxisVertical, false, false},
	{ebiten.KeyArrowDown, AxisVertical, true, false},
	{ebiten.KeyPageUp, AxisVertical, false, true},
	{ebiten.KeyPageDown, AxisVertical, true, true},
}

// processInput is called from Scene.Update to handle keyboard, wheel and
// pointer input. Injected events replace real pointer input for the frame.
func (s *Scene) processInput() {
	mods := readModifiers()
	s.processKeys(mods)

	if !s.processInjectedInput() {
		mx, my := ebiten.CursorPosition()
		s.processPointer(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	}

	_, wy := ebiten.Wheel()
	switch {
	case wy == 0:
	case mods&ModCtrl != 0:
		s.viewport.Zoom(wy > 0)
	default:
		s.viewport.Scroll(AxisVertical, wy < 0, false, 1)
	}
}

// processKeys runs queued commands and those bound to keys pressed this
// frame, then handles the scroll keys. Scroll keys repeat while held.
func (s *Scene) processKeys(mods KeyModifiers) {
	for _, cmd := range s.keyQueue {
		s.runCommand(cmd)
	}
	s.keyQueue = s.keyQueue[:0]

	for _, b := range defaultBindings {
		if b.mods == mods && inpututil.IsKeyJustPressed(b.key) {
			s.runCommand(b.cmd)
		}
	}
	for _, k := range scrollKeys {
		d := inpututil.KeyPressDuration(k.key)
		if d == 1 || (d > 30 && d%4 == 0) {
			s.viewport.Scroll(k.axis, k.forward, k.large || mods&ModCtrl != 0, 1)
		}
	}
}

// runCommand executes cmd if it is currently available, logging failures.
func (s *Scene) runCommand(cmd Command) {
	if !s.CanExecute(cmd) {
		return
	}
	if err := s.Execute(cmd); err != nil {
		logger().Warn("command failed", "command", cmd.String(), "error", err)
	}
}
