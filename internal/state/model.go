package state

import "PhotoMarkup/internal/render"

// StrokePoint is one entry in the stroke log: either a sampled pointer
// position in the surface's local coordinate space, or a pen-lift
// sentinel (Lift=true) marking the end of a stroke. Points are never
// connected across a sentinel.
type StrokePoint struct {
	X, Y float32
	Lift bool
}

// PenUp returns the pen-lift sentinel.
func PenUp() StrokePoint {
	return StrokePoint{Lift: true}
}

// StrokeLog is the append-only sequence of pointer samples for one
// editing session. Insertion order is significant: the log is replayed
// left to right to reconstruct strokes. A sentinel at the start, at the
// end, or repeated back to back is legal and simply draws nothing.
type StrokeLog struct {
	points []StrokePoint
}

// Append adds a sampled position to the log.
func (l *StrokeLog) Append(x, y float32) {
	l.points = append(l.points, StrokePoint{X: x, Y: y})
}

// EndStroke appends exactly one pen-lift sentinel.
func (l *StrokeLog) EndStroke() {
	l.points = append(l.points, PenUp())
}

// Len returns the number of log entries, sentinels included.
func (l *StrokeLog) Len() int {
	return len(l.points)
}

// Points returns a copy of the raw log.
func (l *StrokeLog) Points() []StrokePoint {
	out := make([]StrokePoint, len(l.points))
	copy(out, l.points)
	return out
}

// Segments walks the log and pairs up adjacent entries: a segment is
// drawn between p[i] and p[i+1] only when neither is a sentinel.
func (l *StrokeLog) Segments() []render.Segment {
	var segs []render.Segment
	for i := 0; i+1 < len(l.points); i++ {
		a, b := l.points[i], l.points[i+1]
		if a.Lift || b.Lift {
			continue
		}
		segs = append(segs, render.Segment{X1: a.X, Y1: a.Y, X2: b.X, Y2: b.Y})
	}
	return segs
}
