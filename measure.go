package turtleizer

import (
	"fmt"
	"math"
)

// Measurement describes a measuring line in world coordinates.
type Measurement struct {
	From, To Vec2
	DeltaX   float64
	DeltaY   float64
	Distance float64
	// Orientation is the compass direction from From to To in degrees,
	// computed as atan2(dx, dy).
	Orientation float64
}

func newMeasurement(from, to Vec2) Measurement {
	dx, dy := to.X-from.X, to.Y-from.Y
	return Measurement{
		From:        from,
		To:          to,
		DeltaX:      dx,
		DeltaY:      dy,
		Distance:    math.Hypot(dx, dy),
		Orientation: math.Atan2(dx, dy) * 180 / math.Pi,
	}
}

// String formats the measurement as shown in the tooltip.
func (m Measurement) String() string {
	return fmt.Sprintf("%.2f (%.1f, %.1f) %.1f°", m.Distance, m.DeltaX, m.DeltaY, m.Orientation)
}

// Measurer is the measuring tool: dragging with the left button draws a
// line between two points, each snapped to the nearest drawn content when
// snapping is enabled.
type Measurer struct {
	snapRadius float64
	snapLines  bool

	down    bool
	active  bool
	from    Vec2
	to      Vec2
	pointer Vec2
	last    Measurement
	hasLast bool
}

func newMeasurer() Measurer {
	return Measurer{snapRadius: DefaultSnapRadius, snapLines: true}
}

// SnapRadius returns the snap radius in world units. Zero disables snapping.
func (m *Measurer) SnapRadius() float64 { return m.snapRadius }

// SetSnapRadius sets the snap radius in world units. Zero disables snapping.
func (m *Measurer) SetSnapRadius(r float64) { m.snapRadius = math.Max(0, r) }

// SnapToLines reports whether snapping considers whole segments (true) or
// only their endpoints (false).
func (m *Measurer) SnapToLines() bool { return m.snapLines }

// SetSnapToLines selects between line and endpoint snapping.
func (m *Measurer) SetSnapToLines(on bool) { m.snapLines = on }

// Active reports whether a measuring drag is in progress.
func (m *Measurer) Active() bool { return m.active }

// Current returns the measurement of the drag in progress.
func (m *Measurer) Current() (Measurement, bool) {
	if !m.active {
		return Measurement{}, false
	}
	return newMeasurement(m.from, m.to), true
}

// Last returns the most recently completed measurement.
func (m *Measurer) Last() (Measurement, bool) { return m.last, m.hasLast }

// Pointer returns the last pointer position in world coordinates.
func (m *Measurer) Pointer() Vec2 { return m.pointer }

// snapPoint snaps a world position to the scene's content.
func (s *Scene) snapPoint(p Vec2) Vec2 {
	m := &s.measurer
	if m.snapRadius <= 0 {
		return p
	}
	q, _ := s.Snap(p, m.snapRadius, m.snapLines)
	return q
}

// processPointer runs the measuring state machine for one pointer sample
// given in device pixels.
func (s *Scene) processPointer(sx, sy float64, pressed bool) {
	m := &s.measurer
	w := s.viewport.PixelToWorld(Vec2{sx, sy})
	m.pointer = w

	switch {
	case pressed && !m.down:
		m.down = true
		m.active = true
		p := s.snapPoint(w)
		m.from, m.to = p, p
		s.emit(Event{Type: EventMeasureStart, Measurement: newMeasurement(m.from, m.to)})
	case pressed && m.down:
		p := s.snapPoint(w)
		if p != m.to {
			m.to = p
			s.emit(Event{Type: EventMeasure, Measurement: newMeasurement(m.from, m.to)})
		}
	case !pressed && m.down:
		m.to = s.snapPoint(w)
		m.last = newMeasurement(m.from, m.to)
		m.hasLast = true
		m.down = false
		m.active = false
		s.emit(Event{Type: EventMeasureEnd, Measurement: m.last})
	}
}
