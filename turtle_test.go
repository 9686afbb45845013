package turtleizer

import (
	"math"
	"testing"
)

type damageCall struct {
	area     Rect
	segments int
}

type recordingListener struct {
	calls []damageCall
	full  int
}

func (l *recordingListener) OnDamage(world Rect, segments int) {
	l.calls = append(l.calls, damageCall{world, segments})
}

func (l *recordingListener) OnFullInvalidate() { l.full++ }

func (l *recordingListener) last() damageCall {
	return l.calls[len(l.calls)-1]
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if !approxEqual(got.X, want.X, epsilon) || !approxEqual(got.Y, want.Y, epsilon) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertRect(t *testing.T, name string, got, want Rect) {
	t.Helper()
	if !approxEqual(got.X, want.X, epsilon) || !approxEqual(got.Y, want.Y, epsilon) ||
		!approxEqual(got.Width, want.Width, epsilon) || !approxEqual(got.Height, want.Height, epsilon) {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

func TestNewTurtleDefaults(t *testing.T) {
	tt := NewTurtle(10, 20)
	if tt.ID() != -1 {
		t.Errorf("ID = %d, want -1", tt.ID())
	}
	if !tt.IsPenDown() || !tt.IsVisible() {
		t.Error("new turtle should have pen down and be visible")
	}
	if tt.DefaultColor() != ColorBlack {
		t.Errorf("color = %v, want black", tt.DefaultColor())
	}
	if tt.Heading() != 0 {
		t.Errorf("heading = %v, want 0", tt.Heading())
	}
	assertRect(t, "bounds", tt.Bounds(), Rect{10, 20, 1, 1})
	if tt.Home() != (Vec2{10, 20}) {
		t.Errorf("home = %v", tt.Home())
	}
}

func TestForwardNorth(t *testing.T) {
	tt := NewTurtle(100, 100)
	tt.Forward(50)

	if n := tt.Segments().Count(); n != 1 {
		t.Fatalf("segments = %d, want 1", n)
	}
	seg := tt.Segments().At(0)
	assertVec(t, "from", seg.From, Vec2{100, 100})
	assertVec(t, "to", seg.To, Vec2{100, 50})
	assertVec(t, "pos", tt.Position(), Vec2{100, 50})
	assertRect(t, "bounds", tt.Bounds(), Rect{100, 50, 1, 51})
}

func TestPenUpMovesWithoutDrawing(t *testing.T) {
	tt := NewTurtle(100, 100)
	tt.Forward(50)
	tt.PenUp()
	tt.Forward(30)
	tt.PenDown()

	if n := tt.Segments().Count(); n != 1 {
		t.Errorf("segments = %d, want 1", n)
	}
	assertVec(t, "pos", tt.Position(), Vec2{100, 20})
	if !tt.Bounds().Contains(tt.X(), tt.Y()) {
		t.Errorf("bounds %+v do not contain %v", tt.Bounds(), tt.Position())
	}
	assertRect(t, "bounds", tt.Bounds(), Rect{100, 20, 1, 81})
}

func TestClearAfterSegments(t *testing.T) {
	var l recordingListener
	tt := NewTurtle(0, 0)
	tt.SetDamageListener(&l)
	for range 5 {
		tt.Forward(10)
		tt.Right(72)
	}
	if n := tt.Segments().Count(); n != 5 {
		t.Fatalf("segments = %d, want 5", n)
	}
	before := tt.Bounds()
	tt.Clear()

	if n := tt.Segments().Count(); n != 0 {
		t.Errorf("segments after Clear = %d, want 0", n)
	}
	if tt.HasSegments() {
		t.Error("HasSegments after Clear")
	}
	assertRect(t, "bounds", tt.Bounds(), UnitRect(tt.Position()))

	c := l.last()
	if c.segments != FullInvalidate {
		t.Errorf("damage segments = %d, want %d", c.segments, FullInvalidate)
	}
	if !c.area.ContainsRect(before) {
		t.Errorf("damage %+v does not cover old bounds %+v", c.area, before)
	}
}

func TestBoundsAlwaysContainPosition(t *testing.T) {
	tt := NewTurtle(50, 50)
	moves := []func(){
		func() { tt.Forward(33.3) },
		func() { tt.Left(123) },
		func() { tt.Backward(80) },
		func() { tt.PenUp() },
		func() { tt.Forward(-200) },
		func() { tt.JumpTo(-40, 900) },
		func() { tt.PenDown() },
		func() { tt.Fd(17) },
		func() { tt.GotoX(3) },
		func() { tt.Bk(9) },
		func() { tt.Clear() },
		func() { tt.GotoY(-7) },
	}
	for i, m := range moves {
		m()
		if !tt.Bounds().Contains(tt.X(), tt.Y()) {
			t.Fatalf("step %d: bounds %+v do not contain %v", i, tt.Bounds(), tt.Position())
		}
	}
}

func TestSegmentsChainEndToStart(t *testing.T) {
	tt := NewTurtle(0, 0)
	for i := range 12 {
		tt.Forward(float64(10 + i))
		tt.Right(30)
	}
	log := tt.Segments()
	for i := 1; i < log.Count(); i++ {
		if log.At(i).From != log.At(i-1).To {
			t.Errorf("segment %d starts at %v, previous ended at %v", i, log.At(i).From, log.At(i-1).To)
		}
	}
}

func TestFdRoundsDeltas(t *testing.T) {
	// Forward accumulates floats; Fd rounds at every step.
	f := NewTurtle(0, 0)
	p := NewTurtle(0, 0)
	f.Right(20)
	p.Right(20)
	for range 10 {
		f.Forward(3)
		p.Fd(3)
	}
	// 3*cos(70°) = 1.03 and 3*sin(70°) = 2.82 round to 1 and 3.
	assertVec(t, "Fd pos", p.Position(), Vec2{10, -30})
	rad := 70 * math.Pi / 180
	assertVec(t, "Forward pos", f.Position(), Vec2{30 * math.Cos(rad), -30 * math.Sin(rad)})
}

func TestFdFromFractionalPosition(t *testing.T) {
	tt := NewTurtle(10.4, 10.6)
	tt.Fd(5)
	assertVec(t, "pos", tt.Position(), Vec2{10, 6})
	if got := tt.Segments().At(0).From; got != (Vec2{10, 11}) {
		t.Errorf("segment from = %v, want the rounded start (10,11)", got)
	}
	lb, _ := tt.Segments().Bounds()
	if !tt.Bounds().ContainsRect(lb) {
		t.Errorf("turtle bounds %v do not contain the segment bounds %v", tt.Bounds(), lb)
	}
}

func TestZeroDistanceRecordsSegment(t *testing.T) {
	tt := NewTurtle(5.5, 5)
	tt.Forward(0)
	tt.Fd(0)
	if n := tt.Segments().Count(); n != 2 {
		t.Fatalf("segments = %d, want 2", n)
	}
	first, second := tt.Segments().At(0), tt.Segments().At(1)
	if first.From != (Vec2{5.5, 5}) || first.To != first.From {
		t.Errorf("Forward(0) segment = %+v, want zero length at (5.5,5)", first)
	}
	// Fd rounds half away from zero before moving.
	if second.From != (Vec2{6, 5}) || second.To != second.From {
		t.Errorf("Fd(0) segment = %+v, want zero length at (6,5)", second)
	}
	assertRect(t, "bounds", tt.Bounds(), Rect{5.5, 5, 1.5, 1})
	lb, ok := tt.Segments().Bounds()
	if !ok {
		t.Fatal("log bounds not ok")
	}
	assertRect(t, "log bounds", lb, Rect{5.5, 5, 1.5, 1})
}

func TestHeadingNormalization(t *testing.T) {
	tests := []struct {
		turn        float64
		heading     float64
		orientation float64
	}{
		{0, 0, 0},
		{90, 90, -90},
		{-90, -90, 90},
		{180, 180, -180},
		{-180, 180, -180},
		{270, -90, 90},
		{720, 0, 0},
		{-450, -90, 90},
	}
	for _, tt := range tests {
		tu := NewTurtle(0, 0)
		tu.Turn(tt.turn)
		if got := tu.Heading(); !approxEqual(got, tt.heading, epsilon) {
			t.Errorf("Turn(%v): heading = %v, want %v", tt.turn, got, tt.heading)
		}
		if got := tu.Orientation(); !approxEqual(got, tt.orientation, epsilon) {
			t.Errorf("Turn(%v): orientation = %v, want %v", tt.turn, got, tt.orientation)
		}
	}
}

func TestLeftIsCounterClockwise(t *testing.T) {
	tt := NewTurtle(0, 0)
	tt.Left(90)
	tt.Forward(10)
	assertVec(t, "pos", tt.Position(), Vec2{-10, 0})

	tt = NewTurtle(0, 0)
	tt.Right(90)
	tt.Forward(10)
	assertVec(t, "pos", tt.Position(), Vec2{10, 0})
}

func TestJumpToNeverDraws(t *testing.T) {
	tt := NewTurtle(0, 0)
	tt.JumpTo(40, 40)
	tt.GotoX(10)
	tt.GotoY(-5)
	if tt.HasSegments() {
		t.Error("jumps recorded segments")
	}
	if !tt.IsVisible() {
		t.Error("jump left the turtle hidden")
	}
	assertRect(t, "bounds", tt.Bounds(), Rect{0, -5, 41, 46})
}

func TestForwardColor(t *testing.T) {
	tt := NewTurtle(0, 0)
	tt.ForwardColor(5, ColorRed)
	tt.Forward(5)
	if c := tt.Segments().At(0).Color; c != ColorRed {
		t.Errorf("explicit color = %v, want red", c)
	}
	if c := tt.Segments().At(1).Color; c != ColorBlack {
		t.Errorf("default color = %v, want black", c)
	}
	tt.SetPenColor(0, 0, 255)
	tt.Bk(5)
	if c := tt.Segments().At(2).Color; c != RGB(0, 0, 255) {
		t.Errorf("pen color = %v, want blue", c)
	}
}

func TestDamagePadding(t *testing.T) {
	var l recordingListener
	tt := NewTurtle(100, 100)
	tt.SetDamageListener(&l)

	tt.Forward(10)
	// floor(35/sqrt2 + 1) = 25
	c := l.last()
	assertRect(t, "visible damage", c.area, Rect{75, 65, 50, 60})
	if c.segments != 1 {
		t.Errorf("segments = %d, want 1", c.segments)
	}

	tt.Hide()
	tt.Forward(10)
	c = l.last()
	assertRect(t, "hidden damage", c.area, Rect{99, 79, 2, 12})
}

func TestVisibilityChangeDamagesIcon(t *testing.T) {
	var l recordingListener
	tt := NewTurtle(0, 0)
	tt.SetDamageListener(&l)

	tt.Hide()
	if len(l.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(l.calls))
	}
	assertRect(t, "hide damage", l.last().area, Rect{-25, -25, 50, 50})

	tt.Hide()
	if len(l.calls) != 1 {
		t.Error("hiding a hidden turtle reported damage")
	}

	// Turning a hidden turtle changes nothing on screen.
	tt.Left(45)
	if len(l.calls) != 1 {
		t.Error("turning a hidden turtle reported damage")
	}
}

func TestSetIconSizeAffectsPadding(t *testing.T) {
	var l recordingListener
	tt := NewTurtle(0, 0)
	tt.SetDamageListener(&l)
	tt.SetIconSize(10, 20)
	w, h := tt.IconSize()
	if w != 10 || h != 20 {
		t.Errorf("IconSize = %v, %v", w, h)
	}
	// floor(20/sqrt2 + 1) = 15
	assertRect(t, "damage", l.last().area, Rect{-15, -15, 30, 30})
}
