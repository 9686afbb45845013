package turtleizer

import "math"

// DefaultSnapRadius is the search radius, in world units, used when
// snapping the measuring line to drawn content.
const DefaultSnapRadius = 5.0

// Nearest is the result of a proximity query.
type Nearest struct {
	Point    Vec2    // closest point found
	Distance float64 // distance from the query point
	Turtle   int     // ID of the turtle owning the segment
	Segment  int     // index of the segment in that turtle's log
}

// nearestOnSegment returns the point of seg closest to p. With onLine set
// the whole segment is considered, otherwise only its endpoints; on equal
// distances From wins.
func nearestOnSegment(seg Segment, p Vec2, onLine bool) (Vec2, float64) {
	a, b := seg.From, seg.To
	if !onLine {
		da, db := p.Dist(a), p.Dist(b)
		if db < da {
			return b, db
		}
		return a, da
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	px, py := p.X-a.X, p.Y-a.Y
	dotp := px*dx + py*dy
	dSquared := dx*dx + dy*dy
	switch {
	case dotp <= 0:
		return a, p.Dist(a)
	case dotp >= dSquared:
		return b, p.Dist(b)
	}
	// Exactly on the line: report the query point itself.
	if px*dy-py*dx == 0 {
		return p, 0
	}
	t := dotp / dSquared
	q := Vec2{a.X + t*dx, a.Y + t*dy}
	return q, p.Dist(q)
}

// Nearest scans the log for the point closest to p that lies strictly
// within radius. Earlier segments win ties. A zero distance stops the scan.
func (l *SegmentLog) Nearest(p Vec2, radius float64, onLine bool) (pt Vec2, dist float64, index int, ok bool) {
	best := math.Inf(1)
	index = -1
	for i := range l.segs {
		q, d := nearestOnSegment(l.segs[i], p, onLine)
		if d < best {
			best, pt, index = d, q, i
			if d == 0 {
				break
			}
		}
	}
	if index < 0 || best >= radius {
		return Vec2{}, 0, -1, false
	}
	return pt, best, index, true
}

// FindNearest returns the point of any turtle's path closest to p, provided
// its distance is strictly less than radius. With onLine set any point along
// a segment qualifies, otherwise only segment endpoints. Ties resolve to the
// lowest turtle ID, then the lowest segment index.
func (s *Scene) FindNearest(p Vec2, radius float64, onLine bool) (Nearest, bool) {
	var best Nearest
	found := false
	for id, t := range s.turtles {
		pt, d, i, ok := t.log.Nearest(p, radius, onLine)
		if !ok || (found && d >= best.Distance) {
			continue
		}
		best = Nearest{Point: pt, Distance: d, Turtle: id, Segment: i}
		found = true
		if d == 0 {
			break
		}
	}
	return best, found
}

// Snap returns the nearest path point within radius of p, or p itself when
// nothing is close enough.
func (s *Scene) Snap(p Vec2, radius float64, onLine bool) (Vec2, bool) {
	if n, ok := s.FindNearest(p, radius, onLine); ok {
		return n.Point, true
	}
	return p, false
}
