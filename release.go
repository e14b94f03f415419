package zoomview

import (
	"math"
	"time"
)

// resolveRelease brings the transform back into legal bounds once the last
// pointer of a dragging or scaling gesture lifts. Content above the maximum
// scale is zoomed out about the viewport centre; content below the initial
// scale is zoomed in about its top-left corner; otherwise a fast enough
// release flings the content and a slow one settles it.
func (c *Controller) resolveRelease(at time.Duration) {
	t := c.transform
	b := ResolveBounds(t, c.content)
	switch {
	case t.ScaleX > c.limits.Max || t.ScaleY > c.limits.Max:
		Logger().Debug("zoomview: release above max scale", "scale", t.ScaleX, "max", c.limits.Max)
		c.animateScaleTo(c.limits.Max, Vec2{c.viewport.Width / 2, c.viewport.Height / 2})
		return
	case t.ScaleX < c.limits.Initial || t.ScaleY < c.limits.Initial:
		Logger().Debug("zoomview: release below initial scale", "scale", t.ScaleX, "initial", c.limits.Initial)
		c.animateScaleTo(c.limits.Initial, Vec2{b.Left(), b.Top()})
		return
	}

	if s := c.session; s != nil && s.activePointer != invalidPointer {
		if vel, ok := c.velocity.Velocity(s.activePointer, at); ok && c.fling(b, vel) {
			return
		}
	}
	c.settle()
}

// animateScaleTo animates the scale to target about pivot, together with the
// translation that settles the content once the scale has landed.
func (c *Controller) animateScaleTo(target float64, pivot Vec2) {
	cur := c.transform
	if degenerate(cur.ScaleX) || degenerate(cur.ScaleY) {
		return
	}
	candidate := cur
	candidate.scaleTo(target, target, pivot.X, pivot.Y)
	dx, dy := SettleTranslation(candidate, c.content, c.viewport)

	// The scale segment moves the translation about the pivot by itself; the
	// translation segment carries only the settle delta.
	from := cur.Translation()
	c.anim.AnimateScale(Vec2{cur.ScaleX, cur.ScaleY}, Vec2{target, target}, pivot)
	c.anim.AnimateTranslation(from, Vec2{from.X + dx, from.Y + dy})
}

// fling starts a fling animation when vel is fast enough along an axis on
// which the content overflows the viewport. It reports whether the release
// was resolved.
func (c *Controller) fling(b Rect, vel Vec2) bool {
	minV := c.cfg.MinFlingVelocity
	if math.Abs(vel.X) < minV && math.Abs(vel.Y) < minV {
		return false
	}
	vw, vh := c.viewport.Width, c.viewport.Height
	if b.Width <= vw && b.Height <= vh {
		return false
	}

	dx, overX := c.flingAxis(b.Left(), b.Right(), b.Width, vw, vel.X*flingOffsetRatio)
	dy, overY := c.flingAxis(b.Top(), b.Bottom(), b.Height, vh, vel.Y*flingOffsetRatio)
	Logger().Debug("zoomview: fling", "vx", vel.X, "vy", vel.Y, "dx", dx, "dy", dy)
	if dx == 0 && dy == 0 {
		return true
	}
	from := c.transform.Translation()
	c.anim.AnimateTranslation(from, Vec2{from.X + dx, from.Y + dy})
	if overX != 0 || overY != 0 {
		c.anim.ScheduleTranslation(c.anim.Duration(), Vec2{-overX, -overY})
	}
	return true
}

// flingAxis computes the fling offset along one axis. Overflowing content
// may overshoot an edge by OverTranslation when it starts inside the
// viewport's span on that side; the overshoot is returned so it can spring
// back. Content that fits is centred.
func (c *Controller) flingAxis(lo, hi, size, view, offset float64) (d, over float64) {
	if size <= view {
		return (view+size)/2 - hi, 0
	}
	switch {
	case lo+offset >= 0:
		if lo < 0 {
			over = c.cfg.OverTranslation
		}
		return -lo + over, over
	case hi+offset <= view:
		if hi > view {
			over = -c.cfg.OverTranslation
		}
		return view - hi + over, over
	}
	return offset, 0
}

// settle animates the translation by the plain settle delta.
func (c *Controller) settle() {
	dx, dy := SettleTranslation(c.transform, c.content, c.viewport)
	if dx == 0 && dy == 0 {
		return
	}
	Logger().Debug("zoomview: settle", "dx", dx, "dy", dy)
	from := c.transform.Translation()
	c.anim.AnimateTranslation(from, Vec2{from.X + dx, from.Y + dy})
}

// onDoubleTap toggles between the initial scale and half the maximum scale
// about the tap point.
func (c *Controller) onDoubleTap(tap Tap) {
	c.cancelAnimations()
	target := c.limits.Max / 2
	if c.transform.ScaleX > c.limits.Initial+doubleTapEpsilon {
		target = c.limits.Initial
	}
	Logger().Debug("zoomview: double tap", "x", tap.X, "y", tap.Y, "target", target)
	c.animateScaleTo(target, Vec2{tap.X, tap.Y})
}
