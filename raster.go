package turtleizer

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// RasterSurface is a CPU Surface over an *image.RGBA. Shapes are rasterized
// with golang.org/x/image/vector into an alpha mask covering the shape's
// bounding box and composited with draw.Over, so the result depends only on
// the sequence of calls. It backs PNG export and headless rendering.
type RasterSurface struct {
	img  *image.RGBA
	ras  vector.Rasterizer
	mask []byte
	quad [4]Vec2
}

// NewRasterSurface creates a transparent w x h surface.
func NewRasterSurface(w, h int) *RasterSurface {
	return &RasterSurface{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// RasterAllocator allocates CPU surfaces for the render cache.
func RasterAllocator(w, h int) (Surface, error) {
	if err := checkSurfaceSize(w, h); err != nil {
		return nil, err
	}
	return NewRasterSurface(w, h), nil
}

// Image returns the backing image. Pixels are premultiplied.
func (s *RasterSurface) Image() *image.RGBA { return s.img }

// Pix returns the premultiplied RGBA pixel bytes, row by row.
func (s *RasterSurface) Pix() []byte { return s.img.Pix }

// NRGBA returns a straight-alpha copy of the surface for encoding.
func (s *RasterSurface) NRGBA() *image.NRGBA {
	return toNRGBA(s.img.Pix, s.img.Rect.Dx(), s.img.Rect.Dy())
}

func (s *RasterSurface) Size() (int, int) {
	return s.img.Rect.Dx(), s.img.Rect.Dy()
}

func (s *RasterSurface) Fill(c Color) {
	draw.Draw(s.img, s.img.Rect, image.NewUniform(c.toRGBA()), image.Point{}, draw.Src)
}

func (s *RasterSurface) StrokeLine(from, to Vec2, width float64, c Color) {
	if from == to || width <= 0 {
		return
	}
	// Clip the centerline first so far-off segments never produce huge masks.
	pad := width + 1
	w, h := s.Size()
	from, to, ok := clipSegment(from, to, -pad, -pad, float64(w)+pad, float64(h)+pad)
	if !ok {
		return
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	s.quad = [4]Vec2{
		{from.X + nx, from.Y + ny},
		{to.X + nx, to.Y + ny},
		{to.X - nx, to.Y - ny},
		{from.X - nx, from.Y - ny},
	}
	s.fill(s.quad[:], c)
}

func (s *RasterSurface) FillPolygon(pts []Vec2, c Color) {
	if len(pts) < 3 {
		return
	}
	s.fill(pts, c)
}

// fill rasterizes pts into a mask the size of their bounding box and
// composites c through it.
func (s *RasterSurface) fill(pts []Vec2, c Color) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	r := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	if r.Empty() || !r.Overlaps(s.img.Rect) || r.Dx() > maxSurfaceSize || r.Dy() > maxSurfaceSize {
		return
	}
	w, h := r.Dx(), r.Dy()
	ox, oy := float64(r.Min.X), float64(r.Min.Y)

	s.ras.Reset(w, h)
	s.ras.DrawOp = draw.Src
	s.ras.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		s.ras.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	s.ras.ClosePath()

	if cap(s.mask) < w*h {
		s.mask = make([]byte, w*h)
	}
	mask := &image.Alpha{Pix: s.mask[:w*h], Stride: w, Rect: image.Rect(0, 0, w, h)}
	s.ras.Draw(mask, mask.Rect, image.Opaque, image.Point{})

	draw.DrawMask(s.img, r, image.NewUniform(c.toRGBA()), image.Point{}, mask, image.Point{}, draw.Over)
}

func (s *RasterSurface) DrawSurface(src Surface) {
	switch v := src.(type) {
	case *RasterSurface:
		draw.Draw(s.img, v.img.Rect, v.img, image.Point{}, draw.Over)
	case *ebitenSurface:
		draw.Draw(s.img, v.image.Bounds(), v.image, v.image.Bounds().Min, draw.Over)
	default:
		logger().Warn("draw surface: unsupported source")
	}
}

func (s *RasterSurface) Dispose() {}

// clipSegment clips the segment a-b to the rectangle [x0,x1] x [y0,y1]
// (Liang-Barsky). ok is false when nothing remains.
func clipSegment(a, b Vec2, x0, y0, x1, y1 float64) (Vec2, Vec2, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return false
			}
			t1 = math.Min(t1, r)
		}
		return true
	}
	if !clip(-dx, a.X-x0) || !clip(dx, x1-a.X) || !clip(-dy, a.Y-y0) || !clip(dy, y1-a.Y) {
		return a, b, false
	}
	ca, cb := a, b
	if t0 > 0 {
		ca = Vec2{a.X + t0*dx, a.Y + t0*dy}
	}
	if t1 < 1 {
		cb = Vec2{a.X + t1*dx, a.Y + t1*dy}
	}
	return ca, cb, true
}
