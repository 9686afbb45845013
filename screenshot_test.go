package turtleizer

import (
	"image/color"
	"testing"
)

func TestToNRGBAUnpremultiplies(t *testing.T) {
	pix := []byte{
		128, 0, 64, 128, // half-transparent red-ish
		0, 0, 0, 0, // transparent
		10, 20, 30, 255, // opaque
	}
	img := toNRGBA(pix, 3, 1)
	tests := []struct {
		x    int
		want color.NRGBA
	}{
		{0, color.NRGBA{255, 0, 127, 128}},
		{1, color.NRGBA{}},
		{2, color.NRGBA{10, 20, 30, 255}},
	}
	for _, tt := range tests {
		if got := img.NRGBAAt(tt.x, 0); got != tt.want {
			t.Errorf("pixel %d = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestRenderImageIncludesBackground(t *testing.T) {
	s := NewSceneWithAllocator(nil)
	s.SetBackground(RGB(0, 0, 255))
	tt := s.AddTurtle(5, 5)
	tt.Right(90)
	tt.Fd(4)

	surf, err := s.RenderImage(0) // non-positive scale means 1
	if err != nil {
		t.Fatal(err)
	}
	if w, h := surf.Size(); w != 5 || h != 1 {
		t.Fatalf("size = %dx%d, want 5x1", w, h)
	}
	if got := surf.Image().RGBAAt(4, 0); got.B == 0 {
		t.Errorf("pixel %v lacks the blue background", got)
	}
}
