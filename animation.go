package zoomview

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// segment interpolates a 2D value from one endpoint to another. A gween
// tween drives the normalised progress from 0 to 1; the value itself is
// interpolated in float64 so the final tick lands exactly on the target.
type segment struct {
	tween    *gween.Tween
	from, to Vec2
	done     bool
}

func newSegment(from, to Vec2, duration time.Duration, fn ease.TweenFunc) *segment {
	return &segment{
		tween: gween.New(0, 1, float32(duration.Seconds()), fn),
		from:  from,
		to:    to,
	}
}

// advance moves the segment forward by dt and returns its current value.
func (s *segment) advance(dt time.Duration) Vec2 {
	p, finished := s.tween.Update(float32(dt.Seconds()))
	if finished {
		s.done = true
		return s.to
	}
	progress := float64(p)
	return Vec2{
		X: s.from.X + (s.to.X-s.from.X)*progress,
		Y: s.from.Y + (s.to.Y-s.from.Y)*progress,
	}
}

// scaleSegment animates ScaleX/ScaleY about a fixed pivot.
type scaleSegment struct {
	*segment
	pivot Vec2
}

// translateSegment animates the translation. last is the value applied on
// the previous tick; each tick applies only the difference.
type translateSegment struct {
	*segment
	last Vec2
}

// pendingTranslate is a translation segment waiting for its start delay,
// used for the spring-back after an over-translated fling. offset is applied
// relative to wherever the transform is when the delay elapses.
type pendingTranslate struct {
	delay  time.Duration
	offset Vec2
}

// AnimationDriver runs at most one scale segment and one translation segment
// concurrently and composes their effect into a Transform on each Tick.
// Starting a segment replaces a running segment of the same kind.
type AnimationDriver struct {
	duration time.Duration
	ease     ease.TweenFunc

	scale     *scaleSegment
	translate *translateSegment
	pending   *pendingTranslate
}

// NewAnimationDriver creates a driver whose segments last duration and are
// shaped by fn.
func NewAnimationDriver(duration time.Duration, fn ease.TweenFunc) *AnimationDriver {
	if fn == nil {
		fn = ease.InOutSine
	}
	return &AnimationDriver{duration: duration, ease: fn}
}

// Duration returns the length of every segment.
func (d *AnimationDriver) Duration() time.Duration {
	return d.duration
}

// AnimateScale starts scaling from `from` to `to` about pivot.
func (d *AnimationDriver) AnimateScale(from, to, pivot Vec2) {
	d.scale = &scaleSegment{
		segment: newSegment(from, to, d.duration, d.ease),
		pivot:   pivot,
	}
}

// AnimateTranslation starts translating from `from` to `to`. When a scale
// segment is running at the same time, the per-tick deltas are corrected so
// the total displacement is `to - from` in final-scale terms.
func (d *AnimationDriver) AnimateTranslation(from, to Vec2) {
	d.translate = &translateSegment{
		segment: newSegment(from, to, d.duration, d.ease),
		last:    from,
	}
}

// ScheduleTranslation queues a translation by offset that starts after delay.
// A later call replaces an earlier pending one.
func (d *AnimationDriver) ScheduleTranslation(delay time.Duration, offset Vec2) {
	d.pending = &pendingTranslate{delay: delay, offset: offset}
}

// Active reports whether any segment is running or pending.
func (d *AnimationDriver) Active() bool {
	return d.scale != nil || d.translate != nil || d.pending != nil
}

// ScaleActive reports whether a scale segment is running.
func (d *AnimationDriver) ScaleActive() bool {
	return d.scale != nil
}

// TranslationActive reports whether a translation segment is running.
func (d *AnimationDriver) TranslationActive() bool {
	return d.translate != nil
}

// Cancel stops every segment, including a pending one. A canceled segment
// never ticks again.
func (d *AnimationDriver) Cancel() {
	d.scale = nil
	d.translate = nil
	d.pending = nil
}

// Tick advances all segments by dt and applies them to t. It reports whether
// t changed.
func (d *AnimationDriver) Tick(t *Transform, dt time.Duration) bool {
	if dt < 0 {
		dt = 0
	}
	changed := false

	if d.scale != nil {
		v := d.scale.advance(dt)
		t.scaleTo(v.X, v.Y, d.scale.pivot.X, d.scale.pivot.Y)
		changed = true
	}
	if d.translate != nil {
		changed = d.tickTranslation(t, dt) || changed
	}
	if d.scale != nil && d.scale.done {
		d.scale = nil
	}

	if d.pending != nil {
		d.pending.delay -= dt
		if d.pending.delay <= 0 {
			overflow := -d.pending.delay
			offset := d.pending.offset
			d.pending = nil
			if d.translate != nil {
				changed = d.finishTranslation(t) || changed
			}
			from := t.Translation()
			d.AnimateTranslation(from, Vec2{from.X + offset.X, from.Y + offset.Y})
			if overflow > 0 {
				changed = d.tickTranslation(t, overflow) || changed
			}
		}
	}
	return changed
}

// tickTranslation advances the translation segment and applies the delta
// since the previous tick.
func (d *AnimationDriver) tickTranslation(t *Transform, dt time.Duration) bool {
	seg := d.translate
	return d.applyTranslation(t, seg.advance(dt))
}

// finishTranslation jumps the translation segment to its end.
func (d *AnimationDriver) finishTranslation(t *Transform) bool {
	seg := d.translate
	seg.done = true
	return d.applyTranslation(t, seg.to)
}

func (d *AnimationDriver) applyTranslation(t *Transform, v Vec2) bool {
	seg := d.translate
	dx := v.X - seg.last.X
	dy := v.Y - seg.last.Y
	if d.scale != nil && !d.scale.done {
		// Keep the displacement anchored while the scale is still changing:
		// later scale steps stretch it to the full amount.
		dx *= scaleRatio(t.ScaleX, d.scale.to.X)
		dy *= scaleRatio(t.ScaleY, d.scale.to.Y)
	}
	t.PostTranslate(dx, dy)
	seg.last = v
	if seg.done {
		d.translate = nil
	}
	return dx != 0 || dy != 0
}
