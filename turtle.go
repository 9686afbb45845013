package turtleizer

import "math"

// FullInvalidate is the segment count a turtle reports with its damage
// rectangle after Clear. It tells the listener to discard any cached
// rendering instead of appending to it.
const FullInvalidate = -1

// DefaultIconSize is the width and height of the turtle icon in world units.
const DefaultIconSize = 35

// DamageListener receives the world-space areas a turtle has changed.
// segments is the turtle's current segment count, or FullInvalidate.
type DamageListener interface {
	OnDamage(world Rect, segments int)
	OnFullInvalidate()
}

// Turtle is a pen-plotter cursor. Moving it with the pen down records a
// Segment; every move also extends the turtle's bounds, which therefore
// always contain the current position.
//
// Heading is in degrees. A heading of 0 points up (towards negative Y),
// positive turns rotate counter-clockwise on screen.
type Turtle struct {
	id       int
	pos      Vec2
	home     Vec2
	heading  float64
	penDown  bool
	visible  bool
	color    Color
	iconW    float64
	iconH    float64
	log      SegmentLog
	bounds   Rect
	listener DamageListener
}

// NewTurtle creates a detached turtle at (x, y): pen down, visible, heading
// 0 and drawing in black. Use Scene.AddTurtle to get one whose damage is
// rendered.
func NewTurtle(x, y float64) *Turtle {
	p := Vec2{x, y}
	return &Turtle{
		id:      -1,
		pos:     p,
		home:    p,
		penDown: true,
		visible: true,
		color:   ColorBlack,
		iconW:   DefaultIconSize,
		iconH:   DefaultIconSize,
		bounds:  UnitRect(p),
	}
}

// SetDamageListener replaces the receiver of damage notifications.
func (t *Turtle) SetDamageListener(l DamageListener) { t.listener = l }

// ID returns the turtle's index in its scene, or -1 for a detached turtle.
func (t *Turtle) ID() int { return t.id }

// Position returns the current position.
func (t *Turtle) Position() Vec2 { return t.pos }

// X returns the current x coordinate.
func (t *Turtle) X() float64 { return t.pos.X }

// Y returns the current y coordinate.
func (t *Turtle) Y() float64 { return t.pos.Y }

// Home returns the position the turtle was created at.
func (t *Turtle) Home() Vec2 { return t.home }

// Bounds returns the running union of every position the turtle has
// occupied since creation or the last Clear, as unit boxes.
func (t *Turtle) Bounds() Rect { return t.bounds }

// Segments returns the turtle's segment log.
func (t *Turtle) Segments() *SegmentLog { return &t.log }

// HasSegments reports whether anything has been drawn.
func (t *Turtle) HasSegments() bool { return t.log.Count() > 0 }

// IsPenDown reports whether motion records segments.
func (t *Turtle) IsPenDown() bool { return t.penDown }

// IsVisible reports whether the turtle icon is drawn.
func (t *Turtle) IsVisible() bool { return t.visible }

// DefaultColor returns the color used by motions without an explicit color.
func (t *Turtle) DefaultColor() Color { return t.color }

// SetDefaultColor sets the color used by motions without an explicit color.
func (t *Turtle) SetDefaultColor(c Color) { t.color = c }

// SetPenColor sets the default color from 8-bit channels.
func (t *Turtle) SetPenColor(r, g, b uint8) { t.color = RGB(r, g, b) }

// SetIconSize changes the icon extent used for damage padding and drawing.
func (t *Turtle) SetIconSize(w, h float64) {
	t.iconW, t.iconH = w, h
	t.damage(t.pos, true)
}

// IconSize returns the icon width and height.
func (t *Turtle) IconSize() (w, h float64) { return t.iconW, t.iconH }

// --- Motion ---

// Forward moves d units along the heading in the default color.
func (t *Turtle) Forward(d float64) { t.ForwardColor(d, t.color) }

// ForwardColor moves d units along the heading, drawing in c if the pen is
// down. Coordinates accumulate as floats.
func (t *Turtle) ForwardColor(d float64, c Color) {
	sin, cos := math.Sincos(t.angle())
	t.moveTo(Vec2{t.pos.X + d*cos, t.pos.Y - d*sin}, c)
}

// Backward moves d units against the heading in the default color.
func (t *Turtle) Backward(d float64) { t.ForwardColor(-d, t.color) }

// BackwardColor moves d units against the heading in color c.
func (t *Turtle) BackwardColor(d float64, c Color) { t.ForwardColor(-d, c) }

// Fd is the pixel-snapping variant of Forward. The current position is
// rounded first, and the recorded segment starts there. Then the rounded
// deltas are added, so a series of short
// moves lands on a different point than the same series of Forward calls.
func (t *Turtle) Fd(px int) { t.FdColor(px, t.color) }

// FdColor is Fd drawing in color c.
func (t *Turtle) FdColor(px int, c Color) {
	sin, cos := math.Sincos(t.angle())
	d := float64(px)
	t.pos = Vec2{math.Round(t.pos.X), math.Round(t.pos.Y)}
	t.bounds = t.bounds.Union(UnitRect(t.pos))
	t.moveTo(Vec2{t.pos.X + math.Round(d*cos), t.pos.Y - math.Round(d*sin)}, c)
}

// Bk is the pixel-snapping variant of Backward.
func (t *Turtle) Bk(px int) { t.FdColor(-px, t.color) }

// BkColor is Bk drawing in color c.
func (t *Turtle) BkColor(px int, c Color) { t.FdColor(-px, c) }

// angle converts the compass heading to the math angle used by motion.
func (t *Turtle) angle() float64 {
	return (90 + t.heading) * math.Pi / 180
}

func (t *Turtle) moveTo(to Vec2, c Color) {
	from := t.pos
	t.pos = to
	if t.penDown {
		t.log.append(Segment{From: from, To: to, Color: c})
	}
	t.bounds = t.bounds.Union(UnitRect(to))
	t.damage(from, false)
}

// --- Heading ---

// Turn adds delta degrees to the raw heading.
func (t *Turtle) Turn(delta float64) {
	t.heading += delta
	if t.visible {
		t.damage(t.pos, false)
	}
}

// Left turns counter-clockwise by deg degrees.
func (t *Turtle) Left(deg float64) { t.Turn(deg) }

// Right turns clockwise by deg degrees.
func (t *Turtle) Right(deg float64) { t.Turn(-deg) }

// Heading returns the raw heading folded into (-180, 180].
func (t *Turtle) Heading() float64 { return normalizeDegrees(t.heading) }

// Orientation returns the clockwise compass orientation: the negated,
// normalized heading.
func (t *Turtle) Orientation() float64 { return -normalizeDegrees(t.heading) }

// normalizeDegrees folds deg into (-180, 180].
func normalizeDegrees(deg float64) float64 {
	r := math.Mod(deg, 360)
	if r > 180 {
		r -= 360
	} else if r <= -180 {
		r += 360
	}
	return r
}

// --- Position, pen and visibility ---

// JumpTo moves to (x, y) without drawing, whatever the pen state. A visible
// turtle is hidden for the jump and shown again at the target.
func (t *Turtle) JumpTo(x, y float64) {
	wasVisible := t.visible
	t.SetVisible(false)
	t.pos = Vec2{x, y}
	t.bounds = t.bounds.Union(UnitRect(t.pos))
	t.SetVisible(wasVisible)
}

// GotoX jumps horizontally to x.
func (t *Turtle) GotoX(x float64) { t.JumpTo(x, t.pos.Y) }

// GotoY jumps vertically to y.
func (t *Turtle) GotoY(y float64) { t.JumpTo(t.pos.X, y) }

// SetPenDown sets whether motion records segments.
func (t *Turtle) SetPenDown(down bool) { t.penDown = down }

// PenUp stops recording segments.
func (t *Turtle) PenUp() { t.penDown = false }

// PenDown resumes recording segments.
func (t *Turtle) PenDown() { t.penDown = true }

// SetVisible shows or hides the turtle icon.
func (t *Turtle) SetVisible(v bool) {
	if t.visible == v {
		return
	}
	t.visible = v
	t.damage(t.pos, true)
}

// Show makes the icon visible.
func (t *Turtle) Show() { t.SetVisible(true) }

// Hide hides the icon.
func (t *Turtle) Hide() { t.SetVisible(false) }

// Clear discards every segment and shrinks the bounds to the unit box at the
// current position. Listeners receive the old bounds with FullInvalidate.
func (t *Turtle) Clear() {
	old := t.bounds
	t.log.clear()
	t.bounds = UnitRect(t.pos)
	if t.listener != nil {
		t.listener.OnDamage(old.Union(t.bounds), FullInvalidate)
	}
}

// damage reports the area between from and the current position, padded
// for the icon when it is visible or forceIcon is set.
func (t *Turtle) damage(from Vec2, forceIcon bool) {
	if t.listener == nil {
		return
	}
	half := 1.0
	if t.visible || forceIcon {
		half = math.Floor(math.Max(t.iconW, t.iconH)/math.Sqrt2 + 1)
	}
	minX := math.Floor(math.Min(from.X, t.pos.X)) - half
	minY := math.Floor(math.Min(from.Y, t.pos.Y)) - half
	maxX := math.Ceil(math.Max(from.X, t.pos.X)) + half
	maxY := math.Ceil(math.Max(from.Y, t.pos.Y)) + half
	t.listener.OnDamage(Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, t.log.Count())
}
