package zoomview

import (
	"time"
)

// ImageView is the read-only view of a magnifiable image that a
// HandoffCoordinator needs to arbitrate swipes.
type ImageView interface {
	// ImageBounds returns the content rectangle mapped into the viewport, or
	// false if no content is bound.
	ImageBounds() (Rect, bool)
	// Viewport returns the size of the display area.
	Viewport() Extent
}

// Controller turns a stream of pointer events into a continuously valid
// scale+translation transform for one image inside a fixed viewport. It
// recognizes pans, pinches, flings, taps, double taps, and long presses, and
// animates the transform back into legal bounds when a gesture ends.
//
// A Controller is single-threaded: pointer events and ticks must be delivered
// from one goroutine, in order.
type Controller struct {
	cfg Config

	content    Extent
	hasContent bool
	viewport   Extent
	resolved   bool
	transform  Transform
	limits     ScaleLimits

	session  *touchSession
	state    GestureState
	tap      *TapRecognizer
	pinch    PinchRecognizer
	velocity *VelocityEstimator
	anim     *AnimationDriver

	now      time.Duration
	handlers handlerRegistry
	ptBuf    []Vec2
}

// NewController creates a Controller with no content bound.
func NewController(cfg Config) *Controller {
	cfg = cfg.withDefaults()
	return &Controller{
		cfg:       cfg,
		transform: IdentityTransform,
		tap:       NewTapRecognizer(cfg),
		velocity:  NewVelocityEstimator(cfg.MaxFlingVelocity),
		anim:      NewAnimationDriver(cfg.AnimationDuration, cfg.Ease),
	}
}

// --- Callbacks ---

// OnTransformChanged registers a callback fired after every transform change.
func (c *Controller) OnTransformChanged(fn func(TransformContext)) CallbackHandle {
	h := c.handlers.handle(EventTransformChanged)
	c.handlers.transform = append(c.handlers.transform, handler[func(TransformContext)]{id: h.id, fn: fn})
	return h
}

// OnClick registers a callback fired on a confirmed single tap, and on
// release after a long press that no handler accepted.
func (c *Controller) OnClick(fn func(ClickContext)) CallbackHandle {
	h := c.handlers.handle(EventClick)
	c.handlers.click = append(c.handlers.click, handler[func(ClickContext)]{id: h.id, fn: fn})
	return h
}

// OnLongClick registers a callback fired once per gesture on long press.
// Returning true accepts the long click and suppresses the click on release.
func (c *Controller) OnLongClick(fn func(LongClickContext) bool) CallbackHandle {
	h := c.handlers.handle(EventLongClick)
	c.handlers.longClick = append(c.handlers.longClick, handler[func(LongClickContext) bool]{id: h.id, fn: fn})
	return h
}

// OnDisallowIntercept registers a callback fired when the image claims the
// current gesture for dragging or scaling. An enclosing container should stop
// intercepting events until the gesture ends.
func (c *Controller) OnDisallowIntercept(fn func()) CallbackHandle {
	h := c.handlers.handle(EventDisallowIntercept)
	c.handlers.disallow = append(c.handlers.disallow, handler[func()]{id: h.id, fn: fn})
	return h
}

// --- Content and viewport ---

// Bind sets the intrinsic size of the displayed content and re-initializes
// the transform. A zero or non-finite size leaves the controller unresolved,
// with gestures disabled, until a valid Bind.
func (c *Controller) Bind(content Extent) {
	c.content = content
	c.hasContent = true
	c.reset()
	c.initialize()
}

// Unbind detaches the content. All pointer events then pass through.
func (c *Controller) Unbind() {
	c.content = Extent{}
	c.hasContent = false
	c.reset()
	c.resolved = false
	c.transform = IdentityTransform
	c.limits = ScaleLimits{}
}

// SetViewport sets the size of the display area. A change re-initializes the
// transform.
func (c *Controller) SetViewport(v Extent) {
	if v == c.viewport {
		return
	}
	Logger().Debug("zoomview: viewport changed", "old", c.viewport, "new", v)
	c.viewport = v
	c.reset()
	c.initialize()
}

// Viewport returns the size of the display area.
func (c *Controller) Viewport() Extent {
	return c.viewport
}

// Content returns the bound content size and whether content is bound.
func (c *Controller) Content() (Extent, bool) {
	return c.content, c.hasContent
}

// Reinitialize discards any magnification and restores the fit transform.
func (c *Controller) Reinitialize() {
	c.reset()
	c.initialize()
}

// Rescale snaps the content back to its initial scale, keeping it within
// bounds. If the transform was never resolved it is initialized instead.
func (c *Controller) Rescale() {
	c.cancelAnimations()
	if !c.resolved {
		c.initialize()
		return
	}
	t := Transform{ScaleX: c.limits.Initial, ScaleY: c.limits.Initial}
	dx, dy := SettleTranslation(t, c.content, c.viewport)
	t.PostTranslate(dx, dy)
	c.transform = t
	c.notifyTransform()
}

// initialize computes the fit transform when both extents are valid.
func (c *Controller) initialize() {
	if !c.hasContent {
		return
	}
	t, limits, ok := Initialize(c.viewport, c.content)
	if !ok {
		c.resolved = false
		Logger().Debug("zoomview: initialization skipped", "content", c.content, "viewport", c.viewport)
		return
	}
	c.transform = t
	c.limits = limits
	c.resolved = true
	c.notifyTransform()
}

// reset cancels animations and abandons the current gesture.
func (c *Controller) reset() {
	c.cancelAnimations()
	c.endSession()
	c.tap.Reset()
}

// --- Configuration ---

// SetGesturesEnabled turns gesture handling on or off. Disabling abandons
// the current gesture and restores the fit transform.
func (c *Controller) SetGesturesEnabled(enabled bool) {
	if c.cfg.GesturesEnabled == enabled {
		return
	}
	c.cfg.GesturesEnabled = enabled
	if !enabled {
		c.reset()
		c.initialize()
	}
}

// GesturesEnabled reports whether gesture handling is on.
func (c *Controller) GesturesEnabled() bool {
	return c.cfg.GesturesEnabled
}

// SetPanWhenUnmagnified allows or forbids single-pointer panning while the
// content is not magnified.
func (c *Controller) SetPanWhenUnmagnified(allowed bool) {
	c.cfg.PanWhenUnmagnified = allowed
}

// PanWhenUnmagnified reports whether single-pointer panning is allowed while
// the content is not magnified.
func (c *Controller) PanWhenUnmagnified() bool {
	return c.cfg.PanWhenUnmagnified
}

// --- Queries ---

// Transform returns the current transform.
func (c *Controller) Transform() Transform {
	return c.transform
}

// Limits returns the scale limits and whether they are resolved.
func (c *Controller) Limits() (ScaleLimits, bool) {
	return c.limits, c.resolved
}

// ImageBounds returns the content rectangle mapped through the current
// transform, or false when no content is bound or its transform is
// unresolved.
func (c *Controller) ImageBounds() (Rect, bool) {
	if !c.hasContent || !c.resolved {
		return Rect{}, false
	}
	return ResolveBounds(c.transform, c.content), true
}

// ImageScale returns the current uniform scale.
func (c *Controller) ImageScale() float64 {
	return c.transform.ScaleX
}

// ImageTranslation returns the current translation.
func (c *Controller) ImageTranslation() Vec2 {
	return c.transform.Translation()
}

// ViewToContent maps a viewport point into content coordinates.
func (c *Controller) ViewToContent(x, y float64) (cx, cy float64) {
	return transformPoint(invertAffine(c.transform.Matrix()), x, y)
}

// State returns the current gesture state.
func (c *Controller) State() GestureState {
	if c.session != nil {
		return c.state
	}
	if c.anim.Active() {
		return StateAnimating
	}
	return StateIdle
}

// Now returns the controller clock: the latest event time or tick.
func (c *Controller) Now() time.Duration {
	return c.now
}

// enabled reports whether pointer events should be interpreted.
func (c *Controller) enabled() bool {
	return c.cfg.GesturesEnabled && c.hasContent && c.resolved
}

// --- Event processing ---

// Update advances the controller clock by dt, fires timed tap recognitions,
// and ticks running animations.
func (c *Controller) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	c.now += dt
	if c.enabled() {
		c.pollTaps()
	}
	if c.anim.Active() && c.anim.Tick(&c.transform, dt) {
		c.notifyTransform()
	}
}

// HandlePointer interprets one pointer event. It returns false when the event
// was not handled: gestures are disabled, no content is bound, or the event
// refers to a pointer that is not part of the current gesture.
func (c *Controller) HandlePointer(ev PointerEvent) bool {
	if !c.enabled() {
		return false
	}
	if ev.Time > c.now {
		c.now = ev.Time
	}
	if !c.acceptPointer(ev) {
		return false
	}

	// A long press or tap confirmation may have come due before this event.
	c.pollTaps()

	tap, consumed := c.tap.Handle(ev)
	if tap.Kind == TapDouble {
		c.onDoubleTap(tap)
	}
	if consumed {
		c.trackConsumed(ev)
		return true
	}

	switch ev.Phase {
	case PhaseDown:
		c.onDown(ev)
	case PhasePointerDown:
		c.onPointerDown(ev)
	case PhaseMove:
		c.onMove(ev)
	case PhasePointerUp:
		c.onPointerUp(ev)
	case PhaseUp:
		c.onUp(ev)
	case PhaseCancel:
		c.onCancel()
	}
	return true
}

// acceptPointer drops events for pointers the current gesture does not
// track, logging a diagnostic. State is left untouched.
func (c *Controller) acceptPointer(ev PointerEvent) bool {
	switch ev.Phase {
	case PhaseDown, PhasePointerDown, PhaseCancel:
		return true
	}
	if c.session == nil || !c.session.tracked(ev.ID) {
		Logger().Warn("zoomview: pointer not tracked, event dropped",
			"id", ev.ID, "phase", ev.Phase.String())
		return false
	}
	return true
}

// trackConsumed keeps pointer bookkeeping current for events that belong to
// a double-tap sequence, without dragging or scaling.
func (c *Controller) trackConsumed(ev PointerEvent) {
	switch ev.Phase {
	case PhaseDown:
		c.beginSession(ev)
	case PhaseMove:
		c.session.pointers[ev.ID] = Vec2{ev.X, ev.Y}
	case PhaseUp, PhaseCancel:
		c.endSession()
	}
}

func (c *Controller) beginSession(ev PointerEvent) {
	if c.session != nil {
		Logger().Debug("zoomview: down without prior up, restarting gesture", "id", ev.ID)
	}
	c.session = newTouchSession()
	c.session.pointerDown(ev.ID, ev.X, ev.Y)
	c.state = StatePending
	c.velocity.Clear()
	c.pinch.Reset()
}

func (c *Controller) endSession() {
	c.session = nil
	c.state = StateIdle
	c.velocity.Clear()
	c.pinch.Reset()
}

// onDown starts a gesture. A touch landing on running animations stops
// them where they are; the release then settles the content even if the
// pointer never drags.
func (c *Controller) onDown(ev PointerEvent) {
	interrupted := c.anim.Active()
	c.beginSession(ev)
	c.cancelAnimations()
	c.session.interrupted = interrupted
}

func (c *Controller) onPointerDown(ev PointerEvent) {
	if c.session == nil {
		c.onDown(ev)
		return
	}
	c.session.pointerDown(ev.ID, ev.X, ev.Y)
	if p := c.pinch.PointersChanged(c.pointerPositions()); p.Phase == PinchBegin {
		c.beginGesture(StateScaling)
	}
}

func (c *Controller) onPointerUp(ev PointerEvent) {
	s := c.session
	if s.count() <= 1 {
		// Some hosts report the last pointer as pointer-up.
		c.onUp(ev)
		return
	}
	s.pointerUp(ev.ID)
	c.velocity.Forget(ev.ID)
	if p := c.pinch.PointersChanged(c.pointerPositions()); p.Phase == PinchEnd && s.dragging {
		c.setState(StateDragging)
	}
}

func (c *Controller) onMove(ev PointerEvent) {
	s := c.session
	s.pointers[ev.ID] = Vec2{ev.X, ev.Y}
	changed := false

	if c.pinch.Active() {
		if p := c.pinch.Move(c.pointerPositions()); p.Phase == PinchScale {
			changed = c.applyPinch(p) || changed
		}
	}

	if s.dragging && c.panAllowed() {
		c.velocity.AddSample(ev.ID, ev.X, ev.Y, ev.Time)
	}
	if ev.ID == s.activePointer {
		s.markTouch(ev.X, ev.Y)
		if !s.dragging {
			if exceedsSlop(s.touchX[1]-s.downX, s.touchY[1]-s.downY, c.cfg.TouchSlop) {
				c.beginGesture(StateDragging)
			}
		} else if c.panAllowed() {
			dx, dy := s.lastDelta()
			if dx != 0 || dy != 0 {
				c.transform.PostTranslate(dx, dy)
				changed = true
			}
		}
	}

	if changed {
		c.notifyTransform()
	}
}

func (c *Controller) onUp(ev PointerEvent) {
	s := c.session
	if !s.dragging && s.hasFiredLongPress && !s.longPressConsumed {
		c.handlers.fireClick(ClickContext{X: ev.X, Y: ev.Y})
	}
	if s.dragging || s.interrupted {
		c.resolveRelease(ev.Time)
	}
	c.endSession()
}

func (c *Controller) onCancel() {
	if c.session != nil && (c.session.dragging || c.session.interrupted) {
		c.resolveRelease(c.now)
	}
	c.endSession()
}

// beginGesture moves the session into dragging or scaling. The first such
// transition of a gesture claims it from any enclosing container and stops
// running animations.
func (c *Controller) beginGesture(state GestureState) {
	s := c.session
	if !s.dragging {
		s.dragging = true
		c.handlers.fireDisallow()
		c.cancelAnimations()
	}
	c.setState(state)
}

func (c *Controller) setState(state GestureState) {
	if c.state != state {
		Logger().Debug("zoomview: state", "from", c.state.String(), "to", state.String())
		c.state = state
	}
}

// panAllowed reports whether pointer motion should move the content.
func (c *Controller) panAllowed() bool {
	return c.cfg.PanWhenUnmagnified ||
		c.transform.ScaleX > c.limits.Initial ||
		c.transform.ScaleY > c.limits.Initial ||
		(c.session != nil && c.session.count() > 1)
}

// applyPinch scales about the focal point, clamping the result into
// [Min, LiveCap]. Both axes receive the same factor.
func (c *Controller) applyPinch(p Pinch) bool {
	cur := c.transform.ScaleX
	if degenerate(cur) {
		return false
	}
	target := cur * p.Factor
	switch {
	case target > c.limits.LiveCap:
		target = c.limits.LiveCap
	case target < c.limits.Min:
		target = c.limits.Min
	}
	if target == cur {
		return false
	}
	c.transform.scaleTo(target, target, p.FocusX, p.FocusY)
	return true
}

func (c *Controller) pointerPositions() []Vec2 {
	if c.session == nil {
		return c.ptBuf[:0]
	}
	c.ptBuf = c.session.positions(c.ptBuf[:0])
	return c.ptBuf
}

// pollTaps fires long presses and single-tap confirmations that are due.
func (c *Controller) pollTaps() {
	tap := c.tap.Poll(c.now)
	switch tap.Kind {
	case TapLongPress:
		c.onLongPress(tap)
	case TapSingle:
		c.handlers.fireClick(ClickContext{X: tap.X, Y: tap.Y})
	}
}

func (c *Controller) onLongPress(tap Tap) {
	s := c.session
	if s == nil || s.hasFiredLongPress || s.dragging {
		return
	}
	s.hasFiredLongPress = true
	if c.handlers.fireLongClick(LongClickContext{X: tap.X, Y: tap.Y}) {
		s.longPressConsumed = true
	}
}

func (c *Controller) cancelAnimations() {
	if c.anim.Active() {
		Logger().Debug("zoomview: animations canceled")
		c.anim.Cancel()
	}
}

func (c *Controller) notifyTransform() {
	if len(c.handlers.transform) == 0 {
		return
	}
	c.handlers.fireTransform(TransformContext{
		Transform: c.transform,
		Bounds:    ResolveBounds(c.transform, c.content),
	})
}
