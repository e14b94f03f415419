package zoomview

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

// harness drives a Controller with a shared clock.
type harness struct {
	t   *testing.T
	c   *Controller
	now time.Duration
}

// newHarness returns a controller showing 2000x500 content in a 1000x1000
// viewport: initial scale 0.5, min 0.1, max 2.5, live cap 3.75.
func newHarness(t *testing.T) *harness {
	t.Helper()
	c := NewController(DefaultConfig())
	c.SetViewport(Extent{1000, 1000})
	c.Bind(Extent{2000, 500})
	return &harness{t: t, c: c}
}

func (h *harness) send(phase Phase, id int, x, y float64) bool {
	return h.c.HandlePointer(PointerEvent{Phase: phase, ID: id, X: x, Y: y, Time: h.now})
}

// advance ticks the controller in frame-sized steps.
func (h *harness) advance(d time.Duration) {
	for d > 0 {
		step := min(frame, d)
		h.now += step
		h.c.Update(step)
		d -= step
	}
}

// doubleTap performs a double tap at (x, y) and lets the animation finish.
func (h *harness) doubleTap(x, y float64) {
	h.send(PhaseDown, 0, x, y)
	h.advance(48 * ms)
	h.send(PhaseUp, 0, x, y)
	h.advance(96 * ms)
	h.send(PhaseDown, 0, x, y)
	h.advance(32 * ms)
	h.send(PhaseUp, 0, x, y)
	h.advance(time.Second)
}

func assertCovers(t *testing.T, b Rect, view Extent) {
	t.Helper()
	const tol = 1e-6
	if b.Left() > tol || b.Top() > tol || b.Right() < view.Width-tol || b.Bottom() < view.Height-tol {
		t.Errorf("bounds %+v leave a gap in %vx%v viewport", b, view.Width, view.Height)
	}
}

// --- Binding ---

func TestControllerInitialTransform(t *testing.T) {
	h := newHarness(t)
	limits, ok := h.c.Limits()
	if !ok {
		t.Fatal("limits unresolved")
	}
	assertNear(t, "Initial", limits.Initial, 0.5)
	assertNear(t, "ImageScale", h.c.ImageScale(), 0.5)
	tr := h.c.ImageTranslation()
	assertNear(t, "TranslateX", tr.X, 0)
	assertNear(t, "TranslateY", tr.Y, 375)
	if h.c.State() != StateIdle {
		t.Errorf("State = %v, want idle", h.c.State())
	}
}

func TestControllerNoContentPassesThrough(t *testing.T) {
	c := NewController(DefaultConfig())
	c.SetViewport(Extent{1000, 1000})
	if c.HandlePointer(PointerEvent{Phase: PhaseDown}) {
		t.Error("HandlePointer handled an event with no content bound")
	}
	if _, ok := c.ImageBounds(); ok {
		t.Error("ImageBounds ok with no content bound")
	}
}

func TestControllerZeroContentUnresolved(t *testing.T) {
	c := NewController(DefaultConfig())
	c.SetViewport(Extent{1000, 1000})
	c.Bind(Extent{0, 0})
	if _, ok := c.Limits(); ok {
		t.Error("limits resolved for zero-size content")
	}
	if c.HandlePointer(PointerEvent{Phase: PhaseDown}) {
		t.Error("HandlePointer handled an event for zero-size content")
	}
	if _, ok := c.ImageBounds(); ok {
		t.Error("ImageBounds ok for zero-size content")
	}

	c.Bind(Extent{2000, 500})
	if _, ok := c.Limits(); !ok {
		t.Fatal("limits unresolved after valid bind")
	}
	if !c.HandlePointer(PointerEvent{Phase: PhaseDown, X: 1, Y: 1}) {
		t.Error("HandlePointer ignored an event after valid bind")
	}
}

func TestControllerUnbind(t *testing.T) {
	h := newHarness(t)
	h.c.Unbind()
	if h.send(PhaseDown, 0, 10, 10) {
		t.Error("HandlePointer handled an event after Unbind")
	}
	if _, ok := h.c.Content(); ok {
		t.Error("Content reported bound after Unbind")
	}
}

func TestControllerViewportChangeReinitializes(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)
	h.c.SetViewport(Extent{500, 500})
	limits, _ := h.c.Limits()
	assertNear(t, "Initial", limits.Initial, 0.25)
	assertNear(t, "ImageScale", h.c.ImageScale(), 0.25)
	if h.c.Viewport() != (Extent{500, 500}) {
		t.Errorf("Viewport = %+v", h.c.Viewport())
	}
}

func TestControllerViewToContent(t *testing.T) {
	h := newHarness(t)
	x, y := h.c.ViewToContent(500, 500)
	assertNear(t, "x", x, 1000)
	assertNear(t, "y", y, 250)
}

// --- Pinch ---

func TestPinchClampedAtLiveCap(t *testing.T) {
	h := newHarness(t)
	h.send(PhaseDown, 0, 400, 500)
	h.send(PhasePointerDown, 1, 600, 500)
	if h.c.State() != StateScaling {
		t.Fatalf("State = %v, want scaling", h.c.State())
	}
	h.advance(frame)
	h.send(PhaseMove, 1, 10000, 500)
	if got := h.c.ImageScale(); got != 3.75 {
		t.Fatalf("ImageScale = %v, want exactly 3.75", got)
	}
	h.advance(frame)
	h.send(PhaseMove, 1, 20000, 500)
	if got := h.c.ImageScale(); got != 3.75 {
		t.Errorf("ImageScale after further spread = %v, want 3.75", got)
	}
}

func TestPinchClampedAtMin(t *testing.T) {
	h := newHarness(t)
	h.send(PhaseDown, 0, 400, 500)
	h.send(PhasePointerDown, 1, 600, 500)
	h.advance(frame)
	h.send(PhaseMove, 1, 402, 500)
	if got := h.c.ImageScale(); got != 0.1 {
		t.Fatalf("ImageScale = %v, want exactly 0.1", got)
	}

	h.send(PhasePointerUp, 1, 402, 500)
	h.send(PhaseUp, 0, 400, 500)
	if h.c.State() != StateAnimating {
		t.Fatalf("State after release = %v, want animating", h.c.State())
	}
	h.advance(time.Second)
	if got := h.c.ImageScale(); got != 0.5 {
		t.Errorf("ImageScale after release = %v, want exactly 0.5", got)
	}
	tr := h.c.ImageTranslation()
	if math.Abs(tr.X) > 1e-6 || math.Abs(tr.Y-375) > 1e-6 {
		t.Errorf("translation = %+v, want (0, 375)", tr)
	}
	if h.c.State() != StateIdle {
		t.Errorf("State = %v, want idle", h.c.State())
	}
}

func TestReleaseAboveMaxAnimatesToMax(t *testing.T) {
	h := newHarness(t)
	h.send(PhaseDown, 0, 400, 500)
	h.send(PhasePointerDown, 1, 600, 500)
	h.advance(frame)
	// Span 200 -> 1280 takes the scale from 0.5 to 3.2.
	h.send(PhaseMove, 1, 1680, 500)
	if got := h.c.ImageScale(); math.Abs(got-3.2) > 1e-9 {
		t.Fatalf("ImageScale = %v, want 3.2", got)
	}
	h.send(PhasePointerUp, 1, 1680, 500)
	if h.c.State() != StateDragging {
		t.Errorf("State after pointer up = %v, want dragging", h.c.State())
	}
	h.send(PhaseUp, 0, 400, 500)
	h.advance(time.Second)

	if got := h.c.ImageScale(); got != 2.5 {
		t.Errorf("ImageScale = %v, want exactly 2.5", got)
	}
	b, _ := h.c.ImageBounds()
	assertCovers(t, b, h.c.Viewport())
}

func TestLiveScaleStaysWithinLimits(t *testing.T) {
	h := newHarness(t)
	h.send(PhaseDown, 0, 500, 500)
	h.send(PhasePointerDown, 1, 600, 500)
	limits, _ := h.c.Limits()
	xs := []float64{900, 3000, 501, 520, 8000, 500.5, 700}
	for _, x := range xs {
		h.advance(frame)
		h.send(PhaseMove, 1, x, 500)
		s := h.c.ImageScale()
		if s < limits.Min || s > limits.LiveCap {
			t.Fatalf("live scale %v outside [%v, %v]", s, limits.Min, limits.LiveCap)
		}
	}
	h.send(PhasePointerUp, 1, 700, 500)
	h.send(PhaseUp, 0, 500, 500)
	h.advance(time.Second)
	if s := h.c.ImageScale(); s < limits.Min || s > limits.Max {
		t.Errorf("settled scale %v outside [%v, %v]", s, limits.Min, limits.Max)
	}
}

func TestLastPointerReportedAsPointerUp(t *testing.T) {
	h := newHarness(t)
	h.send(PhaseDown, 0, 400, 500)
	h.send(PhasePointerDown, 1, 600, 500)
	h.advance(frame)
	h.send(PhaseMove, 1, 1680, 500)
	h.send(PhasePointerUp, 1, 1680, 500)
	// The host reports the final pointer as pointer-up instead of up.
	h.send(PhasePointerUp, 0, 400, 500)
	if h.c.State() != StateAnimating {
		t.Errorf("State = %v, want animating", h.c.State())
	}
	h.advance(time.Second)
	if got := h.c.ImageScale(); got != 2.5 {
		t.Errorf("ImageScale = %v, want exactly 2.5", got)
	}
	if h.send(PhaseUp, 0, 400, 500) {
		t.Error("trailing up handled after the gesture ended")
	}
}

// --- Double tap ---

func TestDoubleTapToggles(t *testing.T) {
	h := newHarness(t)
	clicks := 0
	h.c.OnClick(func(ClickContext) { clicks++ })

	h.doubleTap(500, 500)
	if got := h.c.ImageScale(); got != 1.25 {
		t.Fatalf("ImageScale after first double tap = %v, want exactly 1.25", got)
	}
	tr := h.c.ImageTranslation()
	assertNear(t, "TranslateX", tr.X, -750)
	assertNear(t, "TranslateY", tr.Y, 187.5)

	h.doubleTap(500, 500)
	if got := h.c.ImageScale(); got != 0.5 {
		t.Errorf("ImageScale after second double tap = %v, want exactly 0.5", got)
	}
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
	if h.c.State() != StateIdle {
		t.Errorf("State = %v, want idle", h.c.State())
	}
}

// --- Drag and fling ---

func TestSlowDragDoesNotFling(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)
	before := h.c.ImageTranslation()

	h.send(PhaseDown, 0, 500, 500)
	for i := 1; i <= 10; i++ {
		h.advance(frame)
		h.send(PhaseMove, 0, 500+float64(i)*2, 500)
	}
	if h.c.State() != StateDragging {
		t.Fatalf("State = %v, want dragging", h.c.State())
	}
	h.advance(frame)
	h.send(PhaseUp, 0, 520, 500)
	if h.c.State() != StateIdle {
		t.Errorf("State after slow release = %v, want idle", h.c.State())
	}
	after := h.c.ImageTranslation()
	assertNear(t, "pan", after.X-before.X, 10)
	assertNear(t, "vertical", after.Y-before.Y, 0)
}

func TestFastDragFlings(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)
	before := h.c.ImageTranslation()

	h.send(PhaseDown, 0, 500, 500)
	for i := 1; i <= 5; i++ {
		h.advance(frame)
		h.send(PhaseMove, 0, 500+float64(i)*40, 500)
	}
	released := h.c.ImageTranslation()
	assertNear(t, "pan before release", released.X-before.X, 160)

	h.advance(frame)
	h.send(PhaseUp, 0, 700, 500)
	if h.c.State() != StateAnimating {
		t.Fatalf("State after fast release = %v, want animating", h.c.State())
	}
	h.advance(time.Second)
	after := h.c.ImageTranslation()
	// 2500 px/s flings 250 px.
	if math.Abs(after.X-released.X-250) > 1e-6 {
		t.Errorf("fling distance = %v, want 250", after.X-released.X)
	}
	b, _ := h.c.ImageBounds()
	if b.Left() > 0 || b.Right() < 1000 {
		t.Errorf("fling left a horizontal gap: %+v", b)
	}
}

func TestFlingOnlyOnOverflowingAxis(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)
	before := h.c.ImageTranslation()

	// Fast vertical drag; content height 625 fits the 1000px viewport.
	h.send(PhaseDown, 0, 500, 500)
	for i := 1; i <= 5; i++ {
		h.advance(frame)
		h.send(PhaseMove, 0, 500, 500+float64(i)*50)
	}
	h.advance(frame)
	h.send(PhaseUp, 0, 500, 750)
	h.advance(time.Second)

	after := h.c.ImageTranslation()
	assertNear(t, "horizontal", after.X, before.X)
	assertNear(t, "vertical recentred", after.Y, before.Y)
}

func TestFlingOverTranslationSpringsBack(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)
	// Bounds are x -750..1750. Pan right until the left edge is 100px away
	// from the viewport edge, then fling right hard.
	h.send(PhaseDown, 0, 100, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 120, 500) // crosses slop
	for i := 1; i <= 13; i++ {
		h.advance(frame)
		h.send(PhaseMove, 0, 120+float64(i)*50, 500)
	}
	b, _ := h.c.ImageBounds()
	assertNear(t, "left before fling", b.Left(), -100)

	h.advance(frame)
	h.send(PhaseUp, 0, 770, 500)

	// The content overshoots the edge by at most OverTranslation.
	peak := math.Inf(-1)
	for i := 0; i < 60; i++ {
		h.advance(frame)
		b, _ = h.c.ImageBounds()
		peak = math.Max(peak, b.Left())
	}
	if peak <= 0 || peak > DefaultOverTranslation+1e-6 {
		t.Errorf("peak overshoot = %v, want in (0, %v]", peak, DefaultOverTranslation)
	}
	assertNear(t, "left after spring-back", b.Left(), 0)
	if h.c.State() != StateIdle {
		t.Errorf("State = %v, want idle", h.c.State())
	}
}

func TestDownStopsFling(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)
	h.send(PhaseDown, 0, 500, 500)
	for i := 1; i <= 5; i++ {
		h.advance(frame)
		h.send(PhaseMove, 0, 500+float64(i)*40, 500)
	}
	h.advance(frame)
	h.send(PhaseUp, 0, 700, 500)
	h.advance(100 * ms)
	if !h.c.anim.Active() {
		t.Fatal("fling finished before the second touch")
	}

	h.send(PhaseDown, 0, 500, 500)
	if h.c.anim.Active() {
		t.Error("animation still active after down")
	}
	held := h.c.ImageTranslation()
	h.advance(200 * ms)
	if got := h.c.ImageTranslation(); got != held {
		t.Errorf("translation under a still pointer moved %+v -> %+v", held, got)
	}
	if h.c.State() != StatePending {
		t.Errorf("State = %v, want pending", h.c.State())
	}

	h.send(PhaseUp, 0, 500, 500)
	h.advance(time.Second)
	b, _ := h.c.ImageBounds()
	assertCovers(t, b, h.c.Viewport())
	if h.c.State() != StateIdle {
		t.Errorf("State = %v, want idle", h.c.State())
	}
}

func TestDragCancelsSpringBack(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)
	h.send(PhaseDown, 0, 100, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 120, 500)
	for i := 1; i <= 13; i++ {
		h.advance(frame)
		h.send(PhaseMove, 0, 120+float64(i)*50, 500)
	}
	h.advance(frame)
	h.send(PhaseUp, 0, 770, 500)
	h.advance(4 * frame)
	if h.c.anim.pending == nil {
		t.Fatal("no spring-back scheduled after the over-translating fling")
	}

	h.send(PhaseDown, 0, 400, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 420, 500)
	if h.c.State() != StateDragging {
		t.Fatalf("State = %v, want dragging", h.c.State())
	}
	if h.c.anim.Active() {
		t.Fatal("animation still active after the drag began")
	}
	held := h.c.ImageTranslation()
	// Well past the point where the spring-back would have run.
	h.advance(time.Second)
	if got := h.c.ImageTranslation(); got != held {
		t.Errorf("translation changed during a held drag: %+v -> %+v", held, got)
	}

	h.send(PhaseUp, 0, 420, 500)
	h.advance(time.Second)
	b, _ := h.c.ImageBounds()
	assertCovers(t, b, h.c.Viewport())
}

func TestPinchCancelsDoubleTapAnimation(t *testing.T) {
	h := newHarness(t)
	h.send(PhaseDown, 0, 500, 500)
	h.advance(48 * ms)
	h.send(PhaseUp, 0, 500, 500)
	h.advance(96 * ms)
	h.send(PhaseDown, 0, 500, 500)
	h.advance(frame)
	if !h.c.anim.ScaleActive() {
		t.Fatal("double tap did not start a scale animation")
	}

	h.send(PhasePointerDown, 1, 700, 500)
	if h.c.anim.Active() {
		t.Error("animation still active after the pinch began")
	}
	if h.c.State() != StateScaling {
		t.Errorf("State = %v, want scaling", h.c.State())
	}
	scale := h.c.ImageScale()
	h.advance(time.Second)
	if got := h.c.ImageScale(); got != scale {
		t.Errorf("scale changed during a held pinch: %v -> %v", scale, got)
	}
}

func TestUnmagnifiedDragDoesNotPan(t *testing.T) {
	h := newHarness(t)
	before := h.c.ImageTranslation()
	h.send(PhaseDown, 0, 500, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 600, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 700, 500)
	if got := h.c.ImageTranslation(); got != before {
		t.Errorf("translation = %+v, want unchanged %+v", got, before)
	}
	h.send(PhaseUp, 0, 700, 500)

	h.c.SetPanWhenUnmagnified(true)
	h.advance(time.Second)
	h.send(PhaseDown, 0, 500, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 510, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 530, 500)
	if got := h.c.ImageTranslation(); math.Abs(got.X-before.X-20) > epsilon {
		t.Errorf("pan = %v, want 20", got.X-before.X)
	}
}

// --- Pointer bookkeeping ---

func TestPointerContinuityAfterActivePointerUp(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)

	h.send(PhaseDown, 0, 500, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 520, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 530, 500)

	h.send(PhasePointerDown, 1, 800, 800)
	h.advance(frame)
	h.send(PhasePointerUp, 1, 800, 800)
	before := h.c.ImageTranslation()

	h.advance(frame)
	h.send(PhaseMove, 0, 535, 500)
	after := h.c.ImageTranslation()
	assertNear(t, "pan after reassignment", after.X-before.X, 5)
	assertNear(t, "vertical", after.Y-before.Y, 0)
}

func TestUnknownPointerIgnored(t *testing.T) {
	var buf bytes.Buffer
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	h := newHarness(t)
	h.send(PhaseDown, 0, 500, 500)
	before := h.c.Transform()

	if h.send(PhaseMove, 7, 900, 900) {
		t.Error("move for unknown pointer reported handled")
	}
	if h.send(PhaseUp, 7, 900, 900) {
		t.Error("up for unknown pointer reported handled")
	}
	if h.c.State() != StatePending {
		t.Errorf("State = %v, want pending", h.c.State())
	}
	if h.c.Transform() != before {
		t.Error("transform changed on unknown pointer")
	}
	if !strings.Contains(buf.String(), "pointer not tracked") {
		t.Errorf("missing diagnostic, log: %s", buf.String())
	}
}

func TestMoveWithoutDownIgnored(t *testing.T) {
	h := newHarness(t)
	if h.send(PhaseMove, 0, 10, 10) {
		t.Error("move without down reported handled")
	}
}

// --- Taps and callbacks ---

func TestClickAfterTapTimeout(t *testing.T) {
	h := newHarness(t)
	var got []ClickContext
	h.c.OnClick(func(ctx ClickContext) { got = append(got, ctx) })

	h.send(PhaseDown, 0, 300, 400)
	h.advance(48 * ms)
	h.send(PhaseUp, 0, 300, 400)
	h.advance(200 * ms)
	if len(got) != 0 {
		t.Fatal("click fired inside the double-tap window")
	}
	h.advance(200 * ms)
	if len(got) != 1 || got[0] != (ClickContext{300, 400}) {
		t.Errorf("clicks = %+v, want one at (300, 400)", got)
	}
}

func TestLongClick(t *testing.T) {
	tests := []struct {
		name       string
		accept     bool
		wantClicks int
	}{
		{"accepted", true, 0},
		{"not accepted", false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			longs, clicks := 0, 0
			h.c.OnLongClick(func(ctx LongClickContext) bool {
				longs++
				if ctx.X != 200 || ctx.Y != 300 {
					t.Errorf("long click at (%v, %v), want (200, 300)", ctx.X, ctx.Y)
				}
				return tt.accept
			})
			h.c.OnClick(func(ClickContext) { clicks++ })

			h.send(PhaseDown, 0, 200, 300)
			h.advance(time.Second)
			h.send(PhaseUp, 0, 201, 300)
			h.advance(time.Second)

			if longs != 1 {
				t.Errorf("long clicks = %d, want 1", longs)
			}
			if clicks != tt.wantClicks {
				t.Errorf("clicks = %d, want %d", clicks, tt.wantClicks)
			}
		})
	}
}

func TestDisallowInterceptOncePerGesture(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)
	n := 0
	h.c.OnDisallowIntercept(func() { n++ })

	h.send(PhaseDown, 0, 500, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 520, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 540, 500)
	h.send(PhasePointerDown, 1, 700, 700)
	h.advance(frame)
	h.send(PhaseMove, 1, 750, 700)
	if n != 1 {
		t.Errorf("disallow fired %d times, want 1", n)
	}
}

func TestTransformChangedAndRemove(t *testing.T) {
	h := newHarness(t)
	n := 0
	var last TransformContext
	handle := h.c.OnTransformChanged(func(ctx TransformContext) {
		n++
		last = ctx
	})
	h.doubleTap(500, 500)
	if n == 0 {
		t.Fatal("no transform notifications during double tap")
	}
	if last.Transform != h.c.Transform() {
		t.Errorf("last notified transform %+v, want %+v", last.Transform, h.c.Transform())
	}
	b, _ := h.c.ImageBounds()
	if last.Bounds != b {
		t.Errorf("last notified bounds %+v, want %+v", last.Bounds, b)
	}

	handle.Remove()
	n = 0
	h.doubleTap(500, 500)
	if n != 0 {
		t.Errorf("removed handler fired %d times", n)
	}
}

func TestCancelResolvesWithoutClick(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)
	clicks := 0
	h.c.OnClick(func(ClickContext) { clicks++ })

	h.send(PhaseDown, 0, 500, 500)
	h.advance(frame)
	h.send(PhaseMove, 0, 520, 300)
	h.advance(frame)
	h.send(PhaseMove, 0, 520, 100)
	h.send(PhaseCancel, 0, 0, 0)
	h.advance(time.Second)

	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
	// The vertical pan is undone: the 625px tall content is recentred.
	tr := h.c.ImageTranslation()
	assertNear(t, "TranslateY", tr.Y, 187.5)
	if h.c.State() != StateIdle {
		t.Errorf("State = %v, want idle", h.c.State())
	}
}

// --- Runtime options ---

func TestDisablingGesturesResets(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)
	h.c.SetGesturesEnabled(false)
	if h.c.GesturesEnabled() {
		t.Error("GesturesEnabled = true")
	}
	assertNear(t, "ImageScale", h.c.ImageScale(), 0.5)
	if h.send(PhaseDown, 0, 500, 500) {
		t.Error("HandlePointer handled an event while disabled")
	}
	h.c.SetGesturesEnabled(true)
	if !h.send(PhaseDown, 0, 500, 500) {
		t.Error("HandlePointer ignored an event after re-enabling")
	}
}

func TestRescale(t *testing.T) {
	h := newHarness(t)
	h.doubleTap(500, 500)
	h.c.Rescale()
	assertNear(t, "ImageScale", h.c.ImageScale(), 0.5)
	tr := h.c.ImageTranslation()
	assertNear(t, "TranslateX", tr.X, 0)
	assertNear(t, "TranslateY", tr.Y, 375)
}

func TestReinitializeCancelsAnimation(t *testing.T) {
	h := newHarness(t)
	h.send(PhaseDown, 0, 500, 500)
	h.advance(48 * ms)
	h.send(PhaseUp, 0, 500, 500)
	h.advance(96 * ms)
	h.send(PhaseDown, 0, 500, 500)
	h.send(PhaseUp, 0, 500, 500)
	h.advance(frame)

	h.c.Reinitialize()
	if h.c.State() != StateIdle {
		t.Errorf("State = %v, want idle", h.c.State())
	}
	h.advance(time.Second)
	assertNear(t, "ImageScale", h.c.ImageScale(), 0.5)
}

func TestGestureStateString(t *testing.T) {
	tests := []struct {
		s    GestureState
		want string
	}{
		{StateIdle, "idle"},
		{StatePending, "pending"},
		{StateDragging, "dragging"},
		{StateScaling, "scaling"},
		{StateAnimating, "animating"},
		{GestureState(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("GestureState(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
