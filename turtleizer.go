package turtleizer

import (
	"image/color"
	"math"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque Color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// Bytes returns the color's red, green and blue channels as 8-bit values.
func (c Color) Bytes() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

// Hex formats the color as #rrggbb. Alpha is ignored.
func (c Color) Hex() string {
	const digits = "0123456789abcdef"
	r, g, b := c.Bytes()
	return string([]byte{'#',
		digits[r>>4], digits[r&0xf],
		digits[g>>4], digits[g&0xf],
		digits[b>>4], digits[b&0xf],
	})
}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(clamp01(c.R*c.A) * 255)),
		G: uint8(math.Round(clamp01(c.G*c.A) * 255)),
		B: uint8(math.Round(clamp01(c.B*c.A) * 255)),
		A: uint8(math.Round(clamp01(c.A) * 255)),
	}
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Palette colors. The default pen is ColorBlack and the default background
// is ColorWhite.
var (
	ColorBlack   = RGB(0, 0, 0)
	ColorWhite   = RGB(255, 255, 255)
	ColorRed     = RGB(255, 0, 0)
	ColorYellow  = RGB(255, 255, 0)
	ColorGreen   = RGB(0, 255, 0)
	ColorCyan    = RGB(0, 255, 255)
	ColorBlue    = RGB(0, 0, 255)
	ColorMagenta = RGB(255, 0, 255)
	ColorGrey    = RGB(127, 127, 127)
	ColorOrange  = RGB(255, 127, 0)
	ColorViolet  = RGB(127, 0, 255)
)

var paletteByName = map[string]Color{
	"black":     ColorBlack,
	"white":     ColorWhite,
	"red":       ColorRed,
	"yellow":    ColorYellow,
	"green":     ColorGreen,
	"cyan":      ColorCyan,
	"lightblue": ColorCyan,
	"blue":      ColorBlue,
	"magenta":   ColorMagenta,
	"grey":      ColorGrey,
	"gray":      ColorGrey,
	"orange":    ColorOrange,
	"violet":    ColorViolet,
}

// ColorByName looks up a palette color by case-insensitive name.
func ColorByName(name string) (Color, bool) {
	c, ok := paletteByName[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Vec2 is a 2D vector used for positions, offsets and sizes. World space has
// its origin at the top-left with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// UnitRect returns the 1x1 box whose top-left corner is p.
func UnitRect(p Vec2) Rect {
	return Rect{X: p.X, Y: p.Y, Width: 1, Height: 1}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.Width <= r.X+r.Width &&
		o.Y+o.Height <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing both r and o. Empty
// rectangles are not special-cased: their origin still takes part.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.Width, o.X+o.Width)
	maxY := math.Max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Axis selects a viewport scroll direction.
type Axis uint8

const (
	AxisHorizontal Axis = iota // scrolls along X
	AxisVertical               // scrolls along Y
)

// EventType identifies a kind of scene event forwarded to an EventSink.
type EventType uint8

const (
	EventMeasureStart   EventType = iota // measuring drag began
	EventMeasure                         // measuring line changed
	EventMeasureEnd                      // measuring drag released
	EventDamage                          // a turtle reported a damaged area
	EventFullInvalidate                  // a turtle cleared its path
)

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
)
