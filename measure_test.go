package turtleizer

import (
	"math"
	"strings"
	"testing"
)

type recordingSink struct {
	events []Event
}

func (r *recordingSink) EmitEvent(e Event) { r.events = append(r.events, e) }

func (r *recordingSink) ofType(types ...EventType) []Event {
	var out []Event
	for _, e := range r.events {
		for _, typ := range types {
			if e.Type == typ {
				out = append(out, e)
			}
		}
	}
	return out
}

// baseline returns a scene with one hidden turtle that drew (0,0)-(100,0).
func baseline() *Scene {
	s := NewSceneWithAllocator(nil)
	tt := s.AddTurtle(0, 0)
	tt.Hide()
	tt.Right(90)
	tt.Fd(100)
	return s
}

func TestMeasurementValues(t *testing.T) {
	m := newMeasurement(Vec2{10, 10}, Vec2{13, 14})
	assertNear(t, "dx", m.DeltaX, 3)
	assertNear(t, "dy", m.DeltaY, 4)
	assertNear(t, "distance", m.Distance, 5)
	assertNear(t, "orientation", m.Orientation, math.Atan2(3, 4)*180/math.Pi)

	tests := []struct {
		to   Vec2
		want float64
	}{
		{Vec2{0, 1}, 0},
		{Vec2{1, 0}, 90},
		{Vec2{0, -1}, 180},
		{Vec2{-1, 0}, -90},
	}
	for _, tt := range tests {
		got := newMeasurement(Vec2{}, tt.to).Orientation
		assertNear(t, "orientation", got, tt.want)
	}
}

func TestMeasurementString(t *testing.T) {
	s := newMeasurement(Vec2{0, 0}, Vec2{3, 4}).String()
	if !strings.HasPrefix(s, "5.00 (3.0, 4.0)") {
		t.Errorf("String = %q", s)
	}
}

func TestMeasureDragWithSnapping(t *testing.T) {
	s := baseline()
	var sink recordingSink
	s.SetEventSink(&sink)

	s.InjectDrag(3, 2, 50, 40, 3)
	if s.PendingInput() != 3 {
		t.Fatalf("pending = %d, want 3", s.PendingInput())
	}

	s.Update()
	if !s.Measurer().Active() {
		t.Fatal("measuring not active after press")
	}
	cur, ok := s.Measurer().Current()
	if !ok || cur.From != (Vec2{3, 0}) {
		t.Errorf("start = %v, want snapped to (3,0)", cur.From)
	}

	s.Update()
	s.Update()
	if s.Measurer().Active() {
		t.Error("measuring still active after release")
	}
	m, ok := s.Measurer().Last()
	if !ok {
		t.Fatal("no completed measurement")
	}
	assertVec(t, "from", m.From, Vec2{3, 0})
	assertVec(t, "to", m.To, Vec2{50, 40})
	assertNear(t, "distance", m.Distance, math.Hypot(47, 40))

	got := sink.ofType(EventMeasureStart, EventMeasure, EventMeasureEnd)
	want := []EventType{EventMeasureStart, EventMeasure, EventMeasureEnd}
	if len(got) != len(want) {
		t.Fatalf("measure events = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Type != want[i] {
			t.Errorf("event %d type = %v, want %v", i, got[i].Type, want[i])
		}
	}
	if got[2].Measurement != m {
		t.Errorf("end event carries %+v, want %+v", got[2].Measurement, m)
	}
}

func TestMeasureEndpointSnapping(t *testing.T) {
	s := baseline()
	s.Measurer().SetSnapToLines(false)

	s.processPointer(97, 3, true)
	s.processPointer(40, 2, true)
	s.processPointer(40, 2, false)

	m, _ := s.Measurer().Last()
	assertVec(t, "from", m.From, Vec2{100, 0})
	// Midway along the line there is no endpoint within reach.
	assertVec(t, "to", m.To, Vec2{40, 2})
}

func TestMeasureSnappingDisabled(t *testing.T) {
	s := baseline()
	s.Measurer().SetSnapRadius(0)
	s.processPointer(3, 2, true)
	s.processPointer(3, 2, false)
	m, _ := s.Measurer().Last()
	assertVec(t, "from", m.From, Vec2{3, 2})
	if s.Measurer().SnapRadius() != 0 {
		t.Errorf("SnapRadius = %v", s.Measurer().SnapRadius())
	}
	s.Measurer().SetSnapRadius(-4)
	if s.Measurer().SnapRadius() != 0 {
		t.Errorf("negative radius stored as %v", s.Measurer().SnapRadius())
	}
}

func TestMeasureUsesViewportMapping(t *testing.T) {
	s := NewSceneWithAllocator(nil)
	s.Viewport().zoom = 2
	s.Viewport().dirty = true

	s.processPointer(20, 40, true)
	s.processPointer(60, 40, false)
	m, _ := s.Measurer().Last()
	assertVec(t, "from", m.From, Vec2{10, 20})
	assertVec(t, "to", m.To, Vec2{30, 20})
	assertVec(t, "pointer", s.Measurer().Pointer(), Vec2{30, 20})
}

func TestMeasureMoveWithoutChangeEmitsNothing(t *testing.T) {
	s := NewSceneWithAllocator(nil)
	var sink recordingSink
	s.SetEventSink(&sink)
	s.processPointer(5, 5, true)
	s.processPointer(5, 5, true)
	s.processPointer(5, 5, true)
	if n := len(sink.ofType(EventMeasure)); n != 0 {
		t.Errorf("measure events = %d, want 0", n)
	}
}

func TestInjectDragFrames(t *testing.T) {
	s := NewSceneWithAllocator(nil)
	s.InjectDrag(0, 0, 100, 50, 1)
	if s.PendingInput() != 2 {
		t.Errorf("pending = %d, want 2 (press and release)", s.PendingInput())
	}

	s = NewSceneWithAllocator(nil)
	s.InjectDrag(0, 0, 100, 50, 6)
	if s.PendingInput() != 6 {
		t.Fatalf("pending = %d, want 6", s.PendingInput())
	}
	mid := s.injectQueue[2]
	if !approxEqual(mid.screenX, 40, epsilon) || !approxEqual(mid.screenY, 20, epsilon) || !mid.pressed {
		t.Errorf("second move = %+v, want pressed at (40,20)", mid)
	}
	last := s.injectQueue[5]
	if last.pressed || last.screenX != 100 {
		t.Errorf("last event = %+v, want release at x=100", last)
	}
}

func TestInjectedEventsConsumedOnePerFrame(t *testing.T) {
	s := NewSceneWithAllocator(nil)
	s.InjectPress(10, 10)
	s.InjectMove(20, 10)
	s.InjectRelease(30, 10)
	for want := 2; want >= 0; want-- {
		s.Update()
		if s.PendingInput() != want {
			t.Fatalf("pending = %d, want %d", s.PendingInput(), want)
		}
	}
	m, ok := s.Measurer().Last()
	if !ok || m.Distance != 20 {
		t.Errorf("measurement = %+v, want distance 20", m)
	}
}
