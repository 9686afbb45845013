package turtleizer

// Segment is one recorded line stroke. Segments are never modified after
// they are appended.
type Segment struct {
	From, To Vec2
	Color    Color
}

// SegmentLog is the append-only list of a turtle's segments together with
// the render cursor: the number of segments already drawn into a cache.
//
// Callers reference segments by index only. Slices returned by Since and
// AdvanceAndCollect are capped, so appending to them never writes into the
// log.
type SegmentLog struct {
	segs      []Segment
	rendered  int
	bounds    Rect
	hasBounds bool
}

// Count returns the number of recorded segments.
func (l *SegmentLog) Count() int { return len(l.segs) }

// At returns the i-th segment in insertion order.
func (l *SegmentLog) At(i int) Segment { return l.segs[i] }

// All returns every segment. The slice must not be modified.
func (l *SegmentLog) All() []Segment { return l.Since(0) }

// Since returns the segments from index i to the end of the log.
func (l *SegmentLog) Since(i int) []Segment {
	n := len(l.segs)
	if i < 0 {
		i = 0
	}
	if i >= n {
		return nil
	}
	return l.segs[i:n:n]
}

// Bounds returns the union of the unit boxes around every endpoint in the
// log. ok is false when the log is empty.
func (l *SegmentLog) Bounds() (r Rect, ok bool) {
	return l.bounds, l.hasBounds
}

// Rendered returns the render cursor.
func (l *SegmentLog) Rendered() int { return l.rendered }

// AdvanceAndCollect returns the segments appended since the last call and
// moves the render cursor to the end of the log.
func (l *SegmentLog) AdvanceAndCollect() []Segment {
	out := l.Since(l.rendered)
	l.rendered = len(l.segs)
	return out
}

// ResetCursor moves the render cursor back to zero so the next collect
// replays the whole log.
func (l *SegmentLog) ResetCursor() { l.rendered = 0 }

func (l *SegmentLog) append(s Segment) {
	l.segs = append(l.segs, s)
	l.extend(UnitRect(s.From))
	l.extend(UnitRect(s.To))
}

func (l *SegmentLog) extend(r Rect) {
	if !l.hasBounds {
		l.bounds = r
		l.hasBounds = true
		return
	}
	l.bounds = l.bounds.Union(r)
}

func (l *SegmentLog) clear() {
	l.segs = nil
	l.rendered = 0
	l.bounds = Rect{}
	l.hasBounds = false
}
