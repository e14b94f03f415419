package zoomview

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PinchPhase identifies the stage of a pinch gesture.
type PinchPhase uint8

const (
	PinchNone  PinchPhase = iota
	PinchBegin            // a second pointer went down
	PinchScale            // pointers moved; Factor holds the incremental scale
	PinchEnd              // fewer than two pointers remain
)

// Pinch is the output of a PinchRecognizer step.
type Pinch struct {
	Phase PinchPhase
	// Factor is the span ratio since the previous step (1 when unchanged).
	Factor float64
	// FocusX and FocusY are the centroid of the pointers.
	FocusX, FocusY float64
}

// PinchRecognizer derives an incremental scale factor and a focal point from
// two or more pointers. The span is the diagonal of the mean absolute
// deviation of the pointers around their centroid.
type PinchRecognizer struct {
	active   bool
	prevSpan float64
	xs, ys   []float64
}

// Active reports whether a pinch is in progress.
func (p *PinchRecognizer) Active() bool {
	return p.active
}

// PointersChanged re-baselines the recognizer after a pointer went down or
// up. pts are the positions of the pointers still down.
func (p *PinchRecognizer) PointersChanged(pts []Vec2) Pinch {
	fx, fy, span := p.measure(pts)
	switch {
	case len(pts) >= 2 && !p.active:
		p.active = true
		p.prevSpan = span
		return Pinch{Phase: PinchBegin, Factor: 1, FocusX: fx, FocusY: fy}
	case len(pts) < 2 && p.active:
		p.active = false
		p.prevSpan = 0
		return Pinch{Phase: PinchEnd, Factor: 1, FocusX: fx, FocusY: fy}
	case p.active:
		// Pointer set changed mid-pinch: new baseline, no scale jump.
		p.prevSpan = span
	}
	return Pinch{}
}

// Move computes the scale step for the current pointer positions.
func (p *PinchRecognizer) Move(pts []Vec2) Pinch {
	if !p.active || len(pts) < 2 {
		return Pinch{}
	}
	fx, fy, span := p.measure(pts)
	factor := 1.0
	if p.prevSpan > 0 && span > 0 {
		factor = span / p.prevSpan
	}
	p.prevSpan = span
	return Pinch{Phase: PinchScale, Factor: factor, FocusX: fx, FocusY: fy}
}

// Reset abandons any pinch in progress.
func (p *PinchRecognizer) Reset() {
	p.active = false
	p.prevSpan = 0
}

// measure returns the focal point and span of pts.
func (p *PinchRecognizer) measure(pts []Vec2) (fx, fy, span float64) {
	if len(pts) == 0 {
		return 0, 0, 0
	}
	p.xs, p.ys = p.xs[:0], p.ys[:0]
	for _, pt := range pts {
		p.xs = append(p.xs, pt.X)
		p.ys = append(p.ys, pt.Y)
	}
	fx = stat.Mean(p.xs, nil)
	fy = stat.Mean(p.ys, nil)

	var devX, devY float64
	for i := range pts {
		devX += math.Abs(p.xs[i] - fx)
		devY += math.Abs(p.ys[i] - fy)
	}
	n := float64(len(pts))
	spanX := devX / n * 2
	spanY := devY / n * 2
	return fx, fy, math.Hypot(spanX, spanY)
}
