package turtleizer

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// maxSurfaceSize is the largest edge accepted by the allocators.
const maxSurfaceSize = 16384

// ErrSurfaceSize is returned by allocators for empty or oversized surfaces.
var ErrSurfaceSize = errors.New("turtleizer: invalid surface size")

// Surface is a drawing target in device pixels. The renderer paints its
// cache, the turtles and the overlays through this interface.
type Surface interface {
	// Size returns the surface extent in pixels.
	Size() (w, h int)
	// Fill replaces every pixel with c.
	Fill(c Color)
	// StrokeLine draws an antialiased line of the given width.
	StrokeLine(from, to Vec2, width float64, c Color)
	// FillPolygon fills a closed polygon with the nonzero rule.
	FillPolygon(pts []Vec2, c Color)
	// DrawSurface copies src onto this surface at the origin.
	DrawSurface(src Surface)
	// Dispose releases the pixel storage.
	Dispose()
}

// SurfaceAllocator creates an offscreen surface for the render cache.
type SurfaceAllocator func(w, h int) (Surface, error)

func checkSurfaceSize(w, h int) error {
	if w <= 0 || h <= 0 || w > maxSurfaceSize || h > maxSurfaceSize {
		return fmt.Errorf("%w: %dx%d", ErrSurfaceSize, w, h)
	}
	return nil
}

// --- ebiten ---

// ebitenSurface draws onto an *ebiten.Image.
type ebitenSurface struct {
	image *ebiten.Image
	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenSurface wraps an ebiten image, typically the screen.
func NewEbitenSurface(img *ebiten.Image) Surface {
	return &ebitenSurface{image: img}
}

// EbitenAllocator allocates GPU-backed offscreen surfaces.
func EbitenAllocator(w, h int) (Surface, error) {
	if err := checkSurfaceSize(w, h); err != nil {
		return nil, err
	}
	return &ebitenSurface{image: ebiten.NewImage(w, h)}, nil
}

// Image returns the wrapped ebiten image.
func (s *ebitenSurface) Image() *ebiten.Image { return s.image }

func (s *ebitenSurface) Size() (int, int) {
	b := s.image.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ebitenSurface) Fill(c Color) {
	s.image.Fill(c.toRGBA())
}

func (s *ebitenSurface) StrokeLine(from, to Vec2, width float64, c Color) {
	if from == to {
		return
	}
	vector.StrokeLine(s.image,
		float32(from.X), float32(from.Y), float32(to.X), float32(to.Y),
		float32(width), c.toRGBA(), true)
}

func (s *ebitenSurface) FillPolygon(pts []Vec2, c Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	s.verts, s.inds = path.AppendVerticesAndIndicesForFilling(s.verts[:0], s.inds[:0])
	rgba := c.toRGBA()
	for i := range s.verts {
		s.verts[i].SrcX = 1
		s.verts[i].SrcY = 1
		s.verts[i].ColorR = float32(rgba.R) / 0xff
		s.verts[i].ColorG = float32(rgba.G) / 0xff
		s.verts[i].ColorB = float32(rgba.B) / 0xff
		s.verts[i].ColorA = float32(rgba.A) / 0xff
	}
	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	op.FillRule = ebiten.FillRuleNonZero
	s.image.DrawTriangles(s.verts, s.inds, solidSubImage(), &op)
}

func (s *ebitenSurface) DrawSurface(src Surface) {
	switch v := src.(type) {
	case *ebitenSurface:
		s.image.DrawImage(v.image, nil)
	case *RasterSurface:
		w, h := s.Size()
		if sw, sh := v.Size(); sw != w || sh != h {
			logger().Warn("draw surface: size mismatch", "src", fmt.Sprintf("%dx%d", sw, sh), "dst", fmt.Sprintf("%dx%d", w, h))
			return
		}
		s.image.WritePixels(v.Pix())
	default:
		logger().Warn("draw surface: unsupported source", "type", fmt.Sprintf("%T", src))
	}
}

func (s *ebitenSurface) Dispose() {
	if s.image != nil {
		s.image.Deallocate()
	}
}

// solidImage backs solidSubImage, the inner pixel of a 3x3 white image used
// as the texture of untextured triangles.
var solidImage *ebiten.Image

func solidSubImage() *ebiten.Image {
	if solidImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		solidImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return solidImage
}
