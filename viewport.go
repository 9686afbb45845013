package turtleizer

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Zoom limits and step. Zooming in divides the factor by ZoomRate, zooming
// out multiplies it.
const (
	MinZoom  = 0.01
	MaxZoom  = 2.0
	ZoomRate = 0.9
)

// Scroll steps in pixels.
const (
	scrollUnit = 10
	scrollPage = 50
)

// BoundsSource supplies the world-space extent of the drawable content.
type BoundsSource interface {
	Bounds() Rect
}

// scrollAnim holds active scroll tweens for both axes.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
	target [2]int
}

// Viewport maps world coordinates to device pixels:
//
//	pixel = (world + displacement) * zoom - scroll
//	world = (pixel + scroll) / zoom - displacement
//
// Scroll offsets are integers, never negative, and bounded by the content
// extent. Displacement only ever grows (see ShowAll).
type Viewport struct {
	zoom          float64
	scrollX       int
	scrollY       int
	disp          Vec2
	width, height int
	content       BoundsSource

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	scrollTween *scrollAnim
	onChange    func()
}

// NewViewport creates a viewport of w x h pixels at 100% zoom over the given
// content. content may be nil for an empty canvas.
func NewViewport(w, h int, content BoundsSource) *Viewport {
	return &Viewport{
		zoom:    1,
		width:   w,
		height:  h,
		content: content,
		dirty:   true,
	}
}

// OnChange registers fn to run after every change to zoom, scroll,
// displacement or size.
func (v *Viewport) OnChange(fn func()) { v.onChange = fn }

// ZoomFactor returns the current zoom factor.
func (v *Viewport) ZoomFactor() float64 { return v.zoom }

// ScrollOffset returns the scroll position in pixels.
func (v *Viewport) ScrollOffset() (x, y int) { return v.scrollX, v.scrollY }

// Displacement returns the world-space origin shift.
func (v *Viewport) Displacement() Vec2 { return v.disp }

// Size returns the viewport extent in pixels.
func (v *Viewport) Size() (w, h int) { return v.width, v.height }

// SetSize changes the viewport extent and re-clamps the scroll position.
func (v *Viewport) SetSize(w, h int) {
	if w == v.width && h == v.height {
		return
	}
	v.width, v.height = w, h
	v.clampScroll()
	v.changed()
}

func (v *Viewport) bounds() Rect {
	if v.content == nil {
		return Rect{}
	}
	return v.content.Bounds()
}

func (v *Viewport) changed() {
	v.dirty = true
	if v.onChange != nil {
		v.onChange()
	}
}

// computeViewMatrix recomputes the cached view matrix if dirty.
//
// viewMatrix = Translate(-scroll) * Scale(zoom) * Translate(displacement)
func (v *Viewport) computeViewMatrix() [6]float64 {
	if !v.dirty {
		return v.viewMatrix
	}
	v.dirty = false
	m := multiplyAffine(scaleAffine(v.zoom), translateAffine(v.disp.X, v.disp.Y))
	m = multiplyAffine(translateAffine(-float64(v.scrollX), -float64(v.scrollY)), m)
	v.viewMatrix = m
	v.invViewMatrix = invertAffine(m)
	return m
}

// WorldToPixel converts a world point to device pixels.
func (v *Viewport) WorldToPixel(p Vec2) Vec2 {
	return transformVec(v.computeViewMatrix(), p)
}

// PixelToWorld converts a device pixel position to world coordinates.
func (v *Viewport) PixelToWorld(p Vec2) Vec2 {
	v.computeViewMatrix()
	return transformVec(v.invViewMatrix, p)
}

// CenterCoord returns the world point at the center of the viewport.
func (v *Viewport) CenterCoord() Vec2 {
	return Vec2{
		X: float64(v.scrollX+v.width/2)/v.zoom - v.disp.X,
		Y: float64(v.scrollY+v.height/2)/v.zoom - v.disp.Y,
	}
}

// VisibleBounds returns the world-space rectangle currently on screen.
func (v *Viewport) VisibleBounds() Rect {
	tl := v.PixelToWorld(Vec2{})
	br := v.PixelToWorld(Vec2{float64(v.width), float64(v.height)})
	return Rect{X: tl.X, Y: tl.Y, Width: br.X - tl.X, Height: br.Y - tl.Y}
}

// ContentExtent returns the scrollable extent in pixels: the far edge of
// the content after displacement and zoom, but never less than the
// viewport size minus one.
func (v *Viewport) ContentExtent() (w, h int) {
	b := v.bounds()
	w = max(v.width-1, int(math.Ceil((b.X+b.Width+v.disp.X)*v.zoom)))
	h = max(v.height-1, int(math.Ceil((b.Y+b.Height+v.disp.Y)*v.zoom)))
	return w, h
}

// clampAxis bounds a scroll position to [0, extent-size].
func clampAxis(pos, extent, size int) int {
	return max(0, min(pos, extent-size))
}

func (v *Viewport) clampScroll() {
	xMax, yMax := v.ContentExtent()
	v.scrollX = clampAxis(v.scrollX, xMax, v.width)
	v.scrollY = clampAxis(v.scrollY, yMax, v.height)
}

// Zoom steps the zoom factor in or out by ZoomRate, clamped to
// [MinZoom, MaxZoom], keeping the world point at the viewport center in
// place as far as scroll clamping allows. Reports whether the zoom changed.
func (v *Viewport) Zoom(in bool) bool {
	z := math.Max(v.zoom*ZoomRate, MinZoom)
	if in {
		z = math.Min(v.zoom/ZoomRate, MaxZoom)
	}
	return v.setZoom(z)
}

// ZoomReset returns to 100% around the current center.
func (v *Viewport) ZoomReset() bool { return v.setZoom(1) }

func (v *Viewport) setZoom(z float64) bool {
	if z == v.zoom {
		return false
	}
	center := v.CenterCoord()
	v.zoom = z
	v.scrollToWorldPoint(center)
	v.changed()
	return true
}

// Scroll moves along axis by count steps of 10 pixels, or 50 when large is
// set. Reports whether the scroll position changed.
func (v *Viewport) Scroll(axis Axis, forward, large bool, count int) bool {
	delta := count * scrollUnit
	if large {
		delta = count * scrollPage
	}
	if !forward {
		delta = -delta
	}
	xMax, yMax := v.ContentExtent()
	oldX, oldY := v.scrollX, v.scrollY
	switch axis {
	case AxisHorizontal:
		v.scrollX = clampAxis(v.scrollX+delta, xMax, v.width)
	case AxisVertical:
		v.scrollY = clampAxis(v.scrollY+delta, yMax, v.height)
	}
	if v.scrollX == oldX && v.scrollY == oldY {
		return false
	}
	v.changed()
	return true
}

// ScrollToWorldPoint centers the viewport on p as far as the scroll limits
// allow. Any running scroll animation is cancelled.
func (v *Viewport) ScrollToWorldPoint(p Vec2) {
	v.scrollTween = nil
	v.scrollToWorldPoint(p)
	v.changed()
}

func (v *Viewport) scrollToWorldPoint(p Vec2) {
	v.scrollX, v.scrollY = v.scrollTarget(p)
}

func (v *Viewport) scrollTarget(p Vec2) (x, y int) {
	xMax, yMax := v.ContentExtent()
	x = clampAxis(int((p.X+v.disp.X)*v.zoom)-v.width/2, xMax, v.width)
	y = clampAxis(int((p.Y+v.disp.Y)*v.zoom)-v.height/2, yMax, v.height)
	return x, y
}

// AnimateScrollTo scrolls towards p over duration seconds using easeFn.
// The animation advances in Update. A non-positive duration scrolls at once.
func (v *Viewport) AnimateScrollTo(p Vec2, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		v.ScrollToWorldPoint(p)
		return
	}
	tx, ty := v.scrollTarget(p)
	v.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(v.scrollX), float32(tx), duration, easeFn),
		tweenY: gween.New(float32(v.scrollY), float32(ty), duration, easeFn),
		target: [2]int{tx, ty},
	}
}

// Scrolling reports whether a scroll animation is running.
func (v *Viewport) Scrolling() bool { return v.scrollTween != nil }

// Update advances a running scroll animation by dt seconds.
func (v *Viewport) Update(dt float32) {
	a := v.scrollTween
	if a == nil {
		return
	}
	prevX, prevY := v.scrollX, v.scrollY
	if !a.doneX {
		val, done := a.tweenX.Update(dt)
		v.scrollX = int(math.Round(float64(val)))
		a.doneX = done
	}
	if !a.doneY {
		val, done := a.tweenY.Update(dt)
		v.scrollY = int(math.Round(float64(val)))
		a.doneY = done
	}
	if a.doneX && a.doneY {
		v.scrollX, v.scrollY = a.target[0], a.target[1]
		v.scrollTween = nil
	}
	v.clampScroll()
	if v.scrollX != prevX || v.scrollY != prevY {
		v.changed()
	}
}

// ZoomToFit picks the largest zoom not above MaxZoom at which the content,
// measured from the displaced origin, fits the viewport on both axes, and
// scrolls to the top-left corner. The result is floored at MinZoom.
func (v *Viewport) ZoomToFit() {
	if v.width <= 0 || v.height <= 0 {
		return
	}
	b := v.bounds()
	zoomH := math.Min(MaxZoom, float64(v.width)/(b.Width+b.X+v.disp.X))
	zoomV := math.Min(MaxZoom, float64(v.height)/(b.Height+b.Y+v.disp.Y))
	v.zoom = math.Max(MinZoom, math.Min(zoomH, zoomV))
	v.scrollX, v.scrollY = 0, 0
	v.scrollTween = nil
	v.changed()
}

// CanShowAll reports whether part of the content lies at negative
// coordinates after displacement.
func (v *Viewport) CanShowAll() bool {
	b := v.bounds()
	return b.X+v.disp.X < 0 || b.Y+v.disp.Y < 0
}

// ShowAll grows the displacement until no content has negative displaced
// coordinates, then recenters on the world point that was centered before.
// Reports whether anything changed.
func (v *Viewport) ShowAll() bool {
	if !v.CanShowAll() {
		return false
	}
	center := v.CenterCoord()
	b := v.bounds()
	v.disp.X = math.Max(v.disp.X, -b.X)
	v.disp.Y = math.Max(v.disp.Y, -b.Y)
	v.dirty = true
	v.scrollToWorldPoint(center)
	v.changed()
	return true
}
