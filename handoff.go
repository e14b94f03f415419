package zoomview

import "math"

// HandoffCoordinator arbitrates horizontal swipes between a paging container
// and the magnifiable image on its current page. It sees every pointer event
// before the image does; when Intercept returns true the container takes the
// rest of the gesture as a page swipe.
//
// The image keeps a swipe while it is magnified and can still scroll toward
// the swipe direction, or when the release is too slow to count as a page
// fling at an edge. An unmagnified image never keeps a horizontal swipe.
type HandoffCoordinator struct {
	cfg Config
	// threshold is the horizontal speed a swipe at a magnified image's edge
	// must reach to change pages.
	threshold float64

	session    *touchSession
	velocity   *VelocityEstimator
	disallowed bool
	claimed    bool

	handlers handlerRegistry
}

// NewHandoffCoordinator creates a coordinator using the slop and fling limits
// in cfg.
func NewHandoffCoordinator(cfg Config) *HandoffCoordinator {
	cfg = cfg.withDefaults()
	return &HandoffCoordinator{
		cfg:       cfg,
		threshold: math.Round(cfg.MaxFlingVelocity / 10),
		velocity:  NewVelocityEstimator(cfg.MaxFlingVelocity),
	}
}

// Threshold returns the page-fling speed for a magnified image, in pixels
// per second.
func (h *HandoffCoordinator) Threshold() float64 {
	return h.threshold
}

// OnPageSwipe registers a callback fired when the coordinator hands a swipe
// to the container.
func (h *HandoffCoordinator) OnPageSwipe(fn func(HandoffContext)) CallbackHandle {
	hd := h.handlers.handle(EventPageSwipe)
	h.handlers.pageSwipe = append(h.handlers.pageSwipe, handler[func(HandoffContext)]{id: hd.id, fn: fn})
	return hd
}

// OnDisallowIntercept registers a callback fired when the container claims a
// swipe, so that any container further out stops intercepting.
func (h *HandoffCoordinator) OnDisallowIntercept(fn func()) CallbackHandle {
	hd := h.handlers.handle(EventDisallowIntercept)
	h.handlers.disallow = append(h.handlers.disallow, handler[func()]{id: hd.id, fn: fn})
	return hd
}

// RequestDisallowIntercept stops the coordinator from intercepting for the
// rest of the current gesture. Wire it to the image Controller's
// OnDisallowIntercept.
func (h *HandoffCoordinator) RequestDisallowIntercept() {
	if h.session != nil && !h.claimed {
		h.disallowed = true
	}
}

// Claimed reports whether the current gesture belongs to the container.
func (h *HandoffCoordinator) Claimed() bool {
	return h.claimed
}

// Intercept observes one pointer event and reports whether the container
// should handle it instead of the image. Once it returns true it keeps
// returning true until the gesture ends. image may be nil when the current
// page shows no magnifiable image, in which case any horizontal swipe is
// intercepted.
func (h *HandoffCoordinator) Intercept(ev PointerEvent, image ImageView) bool {
	switch ev.Phase {
	case PhaseDown:
		h.reset()
		h.session = newTouchSession()
		h.session.pointerDown(ev.ID, ev.X, ev.Y)
		h.velocity.AddSample(ev.ID, ev.X, ev.Y, ev.Time)
		return false

	case PhasePointerDown:
		if h.session == nil {
			return false
		}
		h.session.pointerDown(ev.ID, ev.X, ev.Y)
		h.velocity.AddSample(ev.ID, ev.X, ev.Y, ev.Time)
		return h.claimed

	case PhaseMove:
		if h.session == nil || !h.session.tracked(ev.ID) {
			Logger().Warn("zoomview: handoff pointer not tracked", "id", ev.ID)
			return false
		}
		h.session.pointers[ev.ID] = Vec2{ev.X, ev.Y}
		h.velocity.AddSample(ev.ID, ev.X, ev.Y, ev.Time)
		if h.claimed {
			return true
		}
		if h.disallowed || ev.ID != h.session.activePointer {
			return false
		}
		return h.evaluate(ev, image)

	case PhasePointerUp:
		if h.session == nil {
			return false
		}
		if h.session.count() <= 1 {
			claimed := h.claimed
			h.reset()
			return claimed
		}
		h.session.pointerUp(ev.ID)
		h.velocity.Forget(ev.ID)
		return h.claimed

	case PhaseUp, PhaseCancel:
		claimed := h.claimed
		h.reset()
		return claimed
	}
	return false
}

// evaluate decides whether a single-pointer move hands the swipe to the
// container.
func (h *HandoffCoordinator) evaluate(ev PointerEvent, image ImageView) bool {
	s := h.session
	if s.count() != 1 {
		return false
	}
	dx, dy := ev.X-s.downX, ev.Y-s.downY
	// Radial slop, as in the image controller.
	if !exceedsSlop(dx, dy, h.cfg.TouchSlop) || math.Abs(dx) <= math.Abs(dy) {
		return false
	}

	vel, _ := h.velocity.Velocity(ev.ID, ev.Time)
	intercept := true
	if image != nil {
		if b, ok := image.ImageBounds(); ok {
			vw := image.Viewport().Width
			if b.Width > vw {
				pageRight := b.Left() >= 0 && vel.X >= h.threshold
				pageLeft := b.Right() <= vw && vel.X <= -h.threshold
				intercept = pageLeft || pageRight
			}
		}
	}
	if !intercept {
		return false
	}

	Logger().Debug("zoomview: swipe handed to container", "dx", dx, "vx", vel.X)
	h.claimed = true
	h.handlers.fireDisallow()
	h.handlers.firePageSwipe(HandoffContext{PointerID: ev.ID, DeltaX: dx, VelocityX: vel.X})
	return true
}

func (h *HandoffCoordinator) reset() {
	h.session = nil
	h.velocity.Clear()
	h.disallowed = false
	h.claimed = false
}
