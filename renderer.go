package turtleizer

import (
	"image"
	"math"
	"time"
)

// Overlay colors and dash patterns, in device pixels.
var (
	measureLineColor = RGB(0xcc, 0xcc, 0xff)
	axesColor        = RGB(0xff, 0xcc, 0xcc)
	iconFillColor    = RGB(0x3c, 0xb3, 0x71)
)

const (
	measureDashOn, measureDashOff = 4, 4
	axesDashOn, axesDashOff       = 2, 2
)

// paintMode records how a frame's path layer was produced.
type paintMode uint8

const (
	paintIncremental paintMode = iota // only new segments went into the cache
	paintFull                         // cache cleared and every segment replayed
	paintDirect                       // no cache: everything drawn straight to the target
)

func (m paintMode) String() string {
	switch m {
	case paintIncremental:
		return "incremental"
	case paintFull:
		return "full"
	default:
		return "direct"
	}
}

// Renderer paints a scene's turtle paths through a cache surface. While the
// cache is clean, a paint draws only the segments appended since the last
// paint; after MarkDirty the cache is cleared to the background and every
// segment is replayed. Turtle icons, the measuring line and the axes are
// drawn on top of the cache every frame and never into it.
//
// Renderer implements DamageListener for the turtles of its scene.
type Renderer struct {
	scene *Scene
	alloc SurfaceAllocator

	cache          Surface
	cacheW, cacheH int
	failW, failH   int
	dirty          bool

	autoUpdate   bool
	flushPending bool
	flushes      int

	damage    image.Rectangle
	lastStats paintStats
}

func newRenderer(s *Scene, alloc SurfaceAllocator) *Renderer {
	return &Renderer{
		scene:      s,
		alloc:      alloc,
		dirty:      true,
		autoUpdate: true,
	}
}

// SetAllocator replaces the cache allocator. The current cache is dropped.
// A nil allocator disables caching.
func (r *Renderer) SetAllocator(alloc SurfaceAllocator) {
	r.alloc = alloc
	r.dropCache()
	r.failW, r.failH = 0, 0
}

// Cached reports whether a cache surface is in use.
func (r *Renderer) Cached() bool { return r.cache != nil }

// Dirty reports whether the next paint replays every segment.
func (r *Renderer) Dirty() bool { return r.dirty || r.cache == nil }

// MarkDirty forces the next paint to rebuild the cache. Every turtle's
// render cursor goes back to zero.
func (r *Renderer) MarkDirty() {
	r.dirty = true
	for _, t := range r.scene.turtles {
		t.log.ResetCursor()
	}
}

// AutoUpdate reports whether damage requests flushes.
func (r *Renderer) AutoUpdate() bool { return r.autoUpdate }

// SetAutoUpdate enables or disables flush requests from damage.
func (r *Renderer) SetAutoUpdate(on bool) { r.autoUpdate = on }

// Flushes returns the number of flushes requested so far.
func (r *Renderer) Flushes() int { return r.flushes }

// TakeFlush reports whether a flush was requested since the last call and
// clears the request.
func (r *Renderer) TakeFlush() bool {
	f := r.flushPending
	r.flushPending = false
	return f
}

// Damaged returns the device-space area invalidated since the last paint.
func (r *Renderer) Damaged() image.Rectangle { return r.damage }

// OnDamage records a changed world area. With auto-update on, a flush is
// requested on every (n/20+1)-th segment, so long runs of short moves flush
// less and less often.
func (r *Renderer) OnDamage(world Rect, segments int) {
	r.addDamage(world)
	if segments < 0 {
		r.OnFullInvalidate()
		return
	}
	if r.autoUpdate && segments%(segments/20+1) == 0 {
		r.requestFlush()
	}
}

// OnFullInvalidate discards the cached path layer.
func (r *Renderer) OnFullInvalidate() {
	r.MarkDirty()
	w, h := r.scene.viewport.Size()
	r.damage = image.Rect(0, 0, w, h)
	r.requestFlush()
}

func (r *Renderer) requestFlush() {
	r.flushPending = true
	r.flushes++
}

func (r *Renderer) addDamage(world Rect) {
	vp := r.scene.viewport
	a := vp.WorldToPixel(Vec2{world.X, world.Y})
	b := vp.WorldToPixel(Vec2{world.Right(), world.Bottom()})
	d := image.Rect(
		int(math.Floor(a.X)), int(math.Floor(a.Y)),
		int(math.Ceil(b.X)), int(math.Ceil(b.Y)),
	)
	r.damage = r.damage.Union(d)
}

// Paint draws the background, the path layer and the overlays onto target.
func (r *Renderer) Paint(target Surface) {
	start := time.Now()
	w, h := target.Size()
	r.ensureCache(w, h)

	bg := r.scene.background
	var st paintStats
	if r.cache == nil {
		st.mode = paintDirect
		target.Fill(bg)
		for _, t := range r.scene.turtles {
			t.log.ResetCursor()
			st.segments += r.strokeSegments(target, t.log.AdvanceAndCollect())
		}
	} else {
		st.mode = paintIncremental
		if r.dirty {
			st.mode = paintFull
			r.cache.Fill(bg)
			for _, t := range r.scene.turtles {
				t.log.ResetCursor()
			}
			r.dirty = false
		}
		for _, t := range r.scene.turtles {
			st.segments += r.strokeSegments(r.cache, t.log.AdvanceAndCollect())
		}
		target.DrawSurface(r.cache)
	}
	r.drawOverlays(target)
	r.damage = image.Rectangle{}

	st.elapsed = time.Since(start)
	r.lastStats = st
	r.scene.debugLog(st)
}

// ensureCache (re)allocates the cache when the target size changes. A size
// that failed once is not retried until the size changes again.
func (r *Renderer) ensureCache(w, h int) {
	if r.cache != nil && r.cacheW == w && r.cacheH == h {
		return
	}
	if r.alloc == nil || (r.failW == w && r.failH == h) {
		r.dropCache()
		return
	}
	r.dropCache()
	c, err := r.alloc(w, h)
	if err != nil {
		logger().Warn("render cache unavailable, drawing directly", "width", w, "height", h, "error", err)
		r.failW, r.failH = w, h
		return
	}
	r.failW, r.failH = 0, 0
	r.cache, r.cacheW, r.cacheH = c, w, h
	r.MarkDirty()
}

func (r *Renderer) dropCache() {
	if r.cache != nil {
		r.cache.Dispose()
		r.cache = nil
	}
	r.cacheW, r.cacheH = 0, 0
	r.MarkDirty()
}

// lineWidth is the stroke width in pixels: one world unit, but never
// thinner than a pixel.
func (r *Renderer) lineWidth() float64 {
	return math.Max(1, r.scene.viewport.ZoomFactor())
}

func (r *Renderer) strokeSegments(dst Surface, segs []Segment) int {
	vp := r.scene.viewport
	w := r.lineWidth()
	for i := range segs {
		dst.StrokeLine(vp.WorldToPixel(segs[i].From), vp.WorldToPixel(segs[i].To), w, segs[i].Color)
	}
	return len(segs)
}

func (r *Renderer) drawOverlays(dst Surface) {
	s := r.scene
	vp := s.viewport
	if s.measurer.active {
		from, to := vp.WorldToPixel(s.measurer.from), vp.WorldToPixel(s.measurer.to)
		dashedLine(dst, from, to, measureDashOn, measureDashOff, 1, measureLineColor)
	}
	if s.showTurtles {
		for _, t := range s.turtles {
			if t.visible {
				r.drawIcon(dst, t)
			}
		}
	}
	if s.showAxes {
		b := s.Bounds()
		dashedLine(dst, vp.WorldToPixel(Vec2{b.X, 0}), vp.WorldToPixel(Vec2{b.Right(), 0}),
			axesDashOn, axesDashOff, 1, axesColor)
		dashedLine(dst, vp.WorldToPixel(Vec2{0, b.Y}), vp.WorldToPixel(Vec2{0, b.Bottom()}),
			axesDashOn, axesDashOff, 1, axesColor)
	}
}

// iconPolygon returns the turtle icon as a triangle in device pixels,
// pointing along the heading.
func (r *Renderer) iconPolygon(t *Turtle) [3]Vec2 {
	vp := r.scene.viewport
	c := vp.WorldToPixel(t.pos)
	size := math.Max(t.iconW, t.iconH) * vp.ZoomFactor()
	half, side := size/2, size/3
	// Screen Y points down, so the math angle turns the other way.
	m := multiplyAffine(translateAffine(c.X, c.Y), rotateAffine(-t.angle()))
	return [3]Vec2{
		transformVec(m, Vec2{half, 0}),
		transformVec(m, Vec2{-half, side}),
		transformVec(m, Vec2{-half, -side}),
	}
}

func (r *Renderer) drawIcon(dst Surface, t *Turtle) {
	tri := r.iconPolygon(t)
	dst.FillPolygon(tri[:], iconFillColor)
	for i := range tri {
		dst.StrokeLine(tri[i], tri[(i+1)%3], 1, t.color)
	}
}

// dashedLine draws a-b as alternating on/off runs starting with a dash.
func dashedLine(dst Surface, a, b Vec2, on, off, width float64, c Color) {
	w, h := dst.Size()
	a, b, ok := clipSegment(a, b, -on, -on, float64(w)+on, float64(h)+on)
	if !ok {
		return
	}
	l := a.Dist(b)
	if l == 0 {
		return
	}
	ux, uy := (b.X-a.X)/l, (b.Y-a.Y)/l
	for d := 0.0; d < l; d += on + off {
		e := math.Min(d+on, l)
		dst.StrokeLine(Vec2{a.X + ux*d, a.Y + uy*d}, Vec2{a.X + ux*e, a.Y + uy*e}, width, c)
	}
}
