package turtleizer

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statusText builds the overlay lines: FPS and viewport state when the
// status overlay is on, the pointer position when coordinates are shown,
// and the measurement while measuring.
func (s *Scene) statusText() string {
	var b strings.Builder
	if s.showStatus {
		sx, sy := s.viewport.ScrollOffset()
		fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f\n", ebiten.ActualFPS(), ebiten.ActualTPS())
		fmt.Fprintf(&b, "zoom: %.0f%%  scroll: (%d, %d)\n", s.viewport.ZoomFactor()*100, sx, sy)
	}
	if s.showCoords {
		p := s.measurer.pointer
		fmt.Fprintf(&b, "(%d, %d)\n", int(p.X), int(p.Y))
	}
	if m, ok := s.measurer.Current(); ok {
		b.WriteString(m.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// drawStatus prints the overlay text on a translucent panel in the top-left
// corner.
func (s *Scene) drawStatus(screen *ebiten.Image) {
	text := s.statusText()
	if text == "" {
		return
	}
	lines := strings.Count(text, "\n")
	w := 0
	for _, l := range strings.Split(text, "\n") {
		w = max(w, len(l))
	}
	// DebugPrint glyphs are 6x16.
	panel := screen.SubImage(image.Rect(0, 0, w*6+8, lines*16+4)).(*ebiten.Image)
	panel.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrintAt(screen, text, 4, 2)
}
