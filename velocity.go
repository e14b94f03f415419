package zoomview

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	// velocityHorizon is how far back samples contribute to an estimate.
	velocityHorizon = 100 * time.Millisecond
	// velocityHistory bounds the samples kept per pointer.
	velocityHistory = 20
)

type velocitySample struct {
	x, y float64
	t    time.Duration
}

// sampleRing is a fixed-size ring of samples for one pointer.
type sampleRing struct {
	buf   [velocityHistory]velocitySample
	head  int // index of the next write
	count int
}

func (r *sampleRing) add(s velocitySample) {
	r.buf[r.head] = s
	r.head = (r.head + 1) % velocityHistory
	if r.count < velocityHistory {
		r.count++
	}
}

// newest returns the i-th most recent sample (0 = latest).
func (r *sampleRing) newest(i int) velocitySample {
	idx := (r.head - 1 - i + 2*velocityHistory) % velocityHistory
	return r.buf[idx]
}

// VelocityEstimator accumulates pointer motion samples and estimates
// per-pointer velocity with a least-squares line fit over the last 100ms.
// Estimates are capped at a maximum speed per axis.
//
// It is shared by the Controller (fling detection) and the
// HandoffCoordinator (page-swipe arbitration).
type VelocityEstimator struct {
	max     float64
	pointer map[int]*sampleRing

	// scratch buffers reused by Velocity.
	ts, xs, ys []float64
}

// NewVelocityEstimator creates an estimator capping each axis at maxVelocity
// pixels per second. A non-positive maxVelocity disables the cap.
func NewVelocityEstimator(maxVelocity float64) *VelocityEstimator {
	return &VelocityEstimator{
		max:     maxVelocity,
		pointer: make(map[int]*sampleRing, 2),
	}
}

// AddSample records the position of pointer id at time t.
func (v *VelocityEstimator) AddSample(id int, x, y float64, t time.Duration) {
	r := v.pointer[id]
	if r == nil {
		r = &sampleRing{}
		v.pointer[id] = r
	}
	r.add(velocitySample{x: x, y: y, t: t})
}

// HasData reports whether any sample was recorded for pointer id since the
// last Clear.
func (v *VelocityEstimator) HasData(id int) bool {
	r := v.pointer[id]
	return r != nil && r.count > 0
}

// Forget drops the samples of a single pointer.
func (v *VelocityEstimator) Forget(id int) {
	delete(v.pointer, id)
}

// Clear drops all samples.
func (v *VelocityEstimator) Clear() {
	clear(v.pointer)
}

// Velocity estimates the velocity of pointer id, in pixels per second, as of
// time now. Only samples no older than the horizon take part; a pointer that
// has not moved within the horizon has zero velocity. ok is false when the
// pointer has no samples at all.
func (v *VelocityEstimator) Velocity(id int, now time.Duration) (vel Vec2, ok bool) {
	r := v.pointer[id]
	if r == nil || r.count == 0 {
		return Vec2{}, false
	}

	v.ts, v.xs, v.ys = v.ts[:0], v.xs[:0], v.ys[:0]
	latest := r.newest(0).t
	if now < latest {
		now = latest
	}
	for i := 0; i < r.count; i++ {
		s := r.newest(i)
		age := now - s.t
		if age > velocityHorizon {
			break
		}
		// Seconds relative to now keep the regression well conditioned.
		v.ts = append(v.ts, -age.Seconds())
		v.xs = append(v.xs, s.x)
		v.ys = append(v.ys, s.y)
	}
	if len(v.ts) < 2 || v.ts[0] == v.ts[len(v.ts)-1] {
		return Vec2{}, true
	}

	_, vx := stat.LinearRegression(v.ts, v.xs, nil, false)
	_, vy := stat.LinearRegression(v.ts, v.ys, nil, false)
	return Vec2{v.clamp(vx), v.clamp(vy)}, true
}

func (v *VelocityEstimator) clamp(s float64) float64 {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	if v.max > 0 {
		s = math.Max(-v.max, math.Min(s, v.max))
	}
	return s
}
