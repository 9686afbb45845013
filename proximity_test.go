package turtleizer

import (
	"math"
	"testing"
)

// lineScene returns a scene with one turtle that drew (0,0)-(10,0) and
// (10,0)-(10,5).
func lineScene() *Scene {
	s := NewSceneWithAllocator(nil)
	tt := s.AddTurtle(0, 0)
	tt.Right(90)
	tt.Fd(10)
	tt.Right(90)
	tt.Fd(5)
	return s
}

func TestFindNearestOnLine(t *testing.T) {
	s := lineScene()
	tests := []struct {
		name  string
		query Vec2
		want  Vec2
		dist  float64
		seg   int
	}{
		{"above first segment", Vec2{5, -3}, Vec2{5, 0}, 3, 0},
		{"past the end", Vec2{13, 9}, Vec2{10, 5}, 5, 1},
		{"before the start", Vec2{-3, -4}, Vec2{0, 0}, 5, 0},
		{"beside second segment", Vec2{12, 2}, Vec2{10, 2}, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := s.FindNearest(tt.query, 6, true)
			if !ok {
				t.Fatal("nothing found")
			}
			assertVec(t, "point", n.Point, tt.want)
			assertNear(t, "distance", n.Distance, tt.dist)
			if n.Segment != tt.seg || n.Turtle != 0 {
				t.Errorf("hit turtle %d segment %d, want 0/%d", n.Turtle, n.Segment, tt.seg)
			}
		})
	}
}

func TestFindNearestPointOnLine(t *testing.T) {
	s := lineScene()
	n, ok := s.FindNearest(Vec2{3, 0}, 1, true)
	if !ok {
		t.Fatal("nothing found")
	}
	if n.Point != (Vec2{3, 0}) || n.Distance != 0 {
		t.Errorf("got %v at %v, want the query point at 0", n.Point, n.Distance)
	}
}

func TestFindNearestRadiusIsStrict(t *testing.T) {
	s := lineScene()
	if _, ok := s.FindNearest(Vec2{5, -5}, 5, true); ok {
		t.Error("point at exactly the radius was accepted")
	}
	if _, ok := s.FindNearest(Vec2{5, -5}, 5.001, true); !ok {
		t.Error("point just inside the radius was rejected")
	}
	if _, ok := s.FindNearest(Vec2{5, -3}, 0, true); ok {
		t.Error("zero radius found something")
	}
}

func TestFindNearestEndpoints(t *testing.T) {
	s := lineScene()
	n, ok := s.FindNearest(Vec2{5, -1}, 10, false)
	if !ok {
		t.Fatal("nothing found")
	}
	// (0,0) and (10,0) are equally far; the segment start wins.
	if n.Point != (Vec2{0, 0}) || n.Segment != 0 {
		t.Errorf("got %v on segment %d, want (0,0) on 0", n.Point, n.Segment)
	}

	n, ok = s.FindNearest(Vec2{9, 4}, 10, false)
	if !ok {
		t.Fatal("nothing found")
	}
	assertVec(t, "point", n.Point, Vec2{10, 5})
	assertNear(t, "distance", n.Distance, math.Sqrt2)
}

func TestFindNearestTiesPreferLowestTurtle(t *testing.T) {
	s := NewSceneWithAllocator(nil)
	for range 3 {
		tt := s.AddTurtle(0, 0)
		tt.Right(90)
		tt.Fd(10)
	}
	n, ok := s.FindNearest(Vec2{4, 2}, 5, true)
	if !ok {
		t.Fatal("nothing found")
	}
	if n.Turtle != 0 {
		t.Errorf("turtle = %d, want 0", n.Turtle)
	}

	// A strictly closer hit on a later turtle still wins.
	late := s.AddTurtle(0, 1)
	late.Right(90)
	late.Fd(10)
	n, _ = s.FindNearest(Vec2{4, 2}, 5, true)
	if n.Turtle != 3 {
		t.Errorf("turtle = %d, want 3", n.Turtle)
	}
}

func TestFindNearestZeroLengthSegment(t *testing.T) {
	s := NewSceneWithAllocator(nil)
	s.AddTurtle(3, 4).Forward(0)

	for _, onLine := range []bool{true, false} {
		n, ok := s.FindNearest(Vec2{0, 0}, 10, onLine)
		if !ok {
			t.Fatalf("onLine=%v: nothing found", onLine)
		}
		assertVec(t, "point", n.Point, Vec2{3, 4})
		assertNear(t, "distance", n.Distance, 5)
		if n.Segment != 0 {
			t.Errorf("segment = %d, want 0", n.Segment)
		}
	}
	n, ok := s.FindNearest(Vec2{3, 4}, 1, true)
	if !ok || n.Distance != 0 {
		t.Errorf("query on the point: %+v, %v", n, ok)
	}
}

func TestSegmentLogNearestEmpty(t *testing.T) {
	var l SegmentLog
	if _, _, idx, ok := l.Nearest(Vec2{}, 100, true); ok || idx != -1 {
		t.Errorf("empty log: ok = %v, index = %d", ok, idx)
	}
}

func TestSnap(t *testing.T) {
	s := lineScene()
	p, ok := s.Snap(Vec2{5, 1}, DefaultSnapRadius, true)
	if !ok || p != (Vec2{5, 0}) {
		t.Errorf("Snap = %v, %v; want (5,0), true", p, ok)
	}
	q := Vec2{50, 50}
	p, ok = s.Snap(q, DefaultSnapRadius, true)
	if ok || p != q {
		t.Errorf("Snap far away = %v, %v; want the query point", p, ok)
	}
}
