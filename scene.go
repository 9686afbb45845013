package turtleizer

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 500
	DefaultHeight = 500
)

// EventSink is the interface for optional ECS integration. When set on a
// Scene, measuring and damage events are forwarded to it.
type EventSink interface {
	EmitEvent(event Event)
}

// Event carries scene activity for an EventSink.
type Event struct {
	Type EventType
	// Measure fields (valid for EventMeasureStart, EventMeasure, EventMeasureEnd)
	Measurement Measurement
	// Damage fields (valid for EventDamage, EventFullInvalidate)
	Area     Rect
	Segments int
}

// Scene owns the turtles, the background color, the viewport and the
// renderer. Turtles are kept in creation order; a turtle's ID is its index
// and stays valid for the life of the scene.
type Scene struct {
	turtles    []*Turtle
	background Color
	viewport   *Viewport
	renderer   *Renderer
	measurer   Measurer
	store      EventSink
	debug      bool

	showTurtles bool
	showAxes    bool
	showCoords  bool
	showStatus  bool

	// ExportDir is the directory used by the export commands.
	ExportDir string

	screen      *ebiten.Image
	screenSurf  Surface
	script      *ScriptRunner
	updateFunc  func() error
	injectQueue []syntheticPointerEvent
	keyQueue    []Command
	selected    int
}

// NewScene creates an empty scene with a white background, a
// DefaultWidth x DefaultHeight viewport and a GPU-backed render cache.
func NewScene() *Scene {
	return NewSceneWithAllocator(EbitenAllocator)
}

// NewSceneWithAllocator creates an empty scene whose render cache comes
// from alloc. Pass RasterAllocator to render without a GPU, or nil to draw
// every frame from scratch.
func NewSceneWithAllocator(alloc SurfaceAllocator) *Scene {
	s := &Scene{
		background:  ColorWhite,
		showTurtles: true,
		measurer:    newMeasurer(),
		ExportDir:   "export",
	}
	s.viewport = NewViewport(DefaultWidth, DefaultHeight, s)
	s.renderer = newRenderer(s, alloc)
	s.viewport.OnChange(s.renderer.MarkDirty)
	return s
}

// AddTurtle creates a turtle at (x, y) and returns it. The turtle's damage
// is routed to the scene's renderer.
func (s *Scene) AddTurtle(x, y float64) *Turtle {
	t := NewTurtle(x, y)
	t.id = len(s.turtles)
	t.listener = s
	s.turtles = append(s.turtles, t)
	t.damage(t.pos, true)
	return t
}

// Turtle returns the turtle with the given ID. It panics on an unknown ID.
func (s *Scene) Turtle(id int) *Turtle {
	if id < 0 || id >= len(s.turtles) {
		panic(fmt.Sprintf("turtleizer: no turtle with id %d (have %d)", id, len(s.turtles)))
	}
	return s.turtles[id]
}

// Turtles returns the scene's turtles. The returned slice MUST NOT be mutated.
func (s *Scene) Turtles() []*Turtle { return s.turtles }

// Selected returns the turtle targeted by the turtle commands, or nil when
// the scene has no turtles.
func (s *Scene) Selected() *Turtle {
	if len(s.turtles) == 0 {
		return nil
	}
	return s.turtles[s.selected]
}

// Select makes the turtle with the given ID the command target.
func (s *Scene) Select(id int) {
	s.Turtle(id)
	s.selected = id
}

// Bounds returns the union of every turtle's bounds. It is computed on
// demand. A scene without turtles has zero bounds.
func (s *Scene) Bounds() Rect {
	if len(s.turtles) == 0 {
		return Rect{}
	}
	b := s.turtles[0].bounds
	for _, t := range s.turtles[1:] {
		b = b.Union(t.bounds)
	}
	return b
}

// HasSegments reports whether any turtle has drawn something.
func (s *Scene) HasSegments() bool {
	for _, t := range s.turtles {
		if t.HasSegments() {
			return true
		}
	}
	return false
}

// Background returns the background color.
func (s *Scene) Background() Color { return s.background }

// SetBackground changes the background color and invalidates the cache.
func (s *Scene) SetBackground(c Color) {
	if c == s.background {
		return
	}
	s.background = c
	s.renderer.MarkDirty()
}

// Viewport returns the scene's viewport.
func (s *Scene) Viewport() *Viewport { return s.viewport }

// Renderer returns the scene's renderer.
func (s *Scene) Renderer() *Renderer { return s.renderer }

// Measurer returns the scene's measuring tool.
func (s *Scene) Measurer() *Measurer { return &s.measurer }

// ShowTurtles reports whether turtle icons are drawn.
func (s *Scene) ShowTurtles() bool { return s.showTurtles }

// SetShowTurtles shows or hides all turtle icons.
func (s *Scene) SetShowTurtles(on bool) { s.showTurtles = on }

// ShowAxes reports whether the axis crosshair is drawn.
func (s *Scene) ShowAxes() bool { return s.showAxes }

// SetShowAxes shows or hides the axis crosshair.
func (s *Scene) SetShowAxes(on bool) { s.showAxes = on }

// ShowCoords reports whether the pointer coordinate readout is shown.
func (s *Scene) ShowCoords() bool { return s.showCoords }

// SetShowCoords toggles the pointer coordinate readout.
func (s *Scene) SetShowCoords(on bool) { s.showCoords = on }

// ShowStatus reports whether the status overlay is drawn.
func (s *Scene) ShowStatus() bool { return s.showStatus }

// SetShowStatus toggles the status overlay.
func (s *Scene) SetShowStatus(on bool) { s.showStatus = on }

// SetEventSink sets the optional ECS bridge.
func (s *Scene) SetEventSink(store EventSink) { s.store = store }

// SetDebugMode enables or disables per-paint stats on stderr.
func (s *Scene) SetDebugMode(enabled bool) { s.debug = enabled }

// OnDamage forwards turtle damage to the renderer and the event sink.
func (s *Scene) OnDamage(world Rect, segments int) {
	s.renderer.OnDamage(world, segments)
	if s.store == nil {
		return
	}
	typ := EventDamage
	if segments < 0 {
		typ = EventFullInvalidate
	}
	s.store.EmitEvent(Event{Type: typ, Area: world, Segments: segments})
}

// OnFullInvalidate forwards a full invalidation to the renderer.
func (s *Scene) OnFullInvalidate() {
	s.renderer.OnFullInvalidate()
}

func (s *Scene) emit(e Event) {
	if s.store != nil {
		s.store.EmitEvent(e)
	}
}

// Update runs the attached script, processes input and commands, and
// advances viewport animations.
func (s *Scene) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if s.script != nil {
		s.script.step(s)
	}
	s.processInput()
	s.viewport.Update(dt)
}

// Draw paints the scene onto screen. The viewport follows the screen size.
func (s *Scene) Draw(screen *ebiten.Image) {
	if screen != s.screen {
		s.screen = screen
		s.screenSurf = NewEbitenSurface(screen)
	}
	b := screen.Bounds()
	s.viewport.SetSize(b.Dx(), b.Dy())
	s.renderer.Paint(s.screenSurf)
	if s.showStatus || s.showCoords || s.measurer.active {
		s.drawStatus(screen)
	}
}

// Paint renders the scene onto any surface, sizing the viewport to match.
func (s *Scene) Paint(target Surface) {
	w, h := target.Size()
	s.viewport.SetSize(w, h)
	s.renderer.Paint(target)
}
