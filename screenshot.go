package turtleizer

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"strings"
)

// maxExportEdge limits the PNG export size in pixels.
const maxExportEdge = 8192

// RenderImage draws every turtle path at the given scale onto a fresh CPU
// surface covering the scene bounds, background included. Icons and
// overlays are left out.
func (s *Scene) RenderImage(scale float64) (*RasterSurface, error) {
	if scale <= 0 {
		scale = 1
	}
	b := s.Bounds()
	w := int(math.Ceil(b.Width * scale))
	h := int(math.Ceil(b.Height * scale))
	if w > maxExportEdge || h > maxExportEdge {
		return nil, fmt.Errorf("render image: %w: %dx%d", ErrSurfaceSize, w, h)
	}
	if err := checkSurfaceSize(w, h); err != nil {
		return nil, fmt.Errorf("render image: %w", err)
	}
	surf := NewRasterSurface(w, h)
	surf.Fill(s.background)

	// pixel = (world - bounds.origin) * scale
	m := multiplyAffine(scaleAffine(scale), translateAffine(-b.X, -b.Y))
	width := math.Max(1, scale)
	for _, t := range s.turtles {
		for _, seg := range t.log.All() {
			surf.StrokeLine(transformVec(m, seg.From), transformVec(m, seg.To), width, seg.Color)
		}
	}
	return surf, nil
}

// WritePNG encodes the drawing at the given scale as PNG.
func (s *Scene) WritePNG(w io.Writer, scale float64) error {
	surf, err := s.RenderImage(scale)
	if err != nil {
		return err
	}
	if err := png.Encode(w, surf.NRGBA()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// toNRGBA converts premultiplied RGBA bytes to straight-alpha NRGBA.
func toNRGBA(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
