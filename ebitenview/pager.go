package ebitenview

import (
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/zoomview"
)

// Pager shows a horizontal strip of zoomable pages, one at a time. Pointer
// input goes through a zoomview.HandoffCoordinator first: swipes it claims
// drag the strip, everything else reaches the current page's controller.
type Pager struct {
	input

	cfg      zoomview.Config
	coord    *zoomview.HandoffCoordinator
	velocity *zoomview.VelocityEstimator
	pages    []*View
	current  int
	rect     image.Rectangle
	now      time.Duration

	// offset is the horizontal displacement of the current page, in pixels.
	// Positive values reveal the previous page.
	offset     float64
	dragID     int
	dragStartX float64
	claimDelta float64

	tween  *gween.Tween
	target int

	onPageChanged []func(old, new int)

	// Background, if set, is passed to every page added after it is set.
	Background *ebiten.Image
	// Debug draws the current page's gesture state.
	Debug bool
}

// NewPager creates an empty pager. Every page controller and the handoff
// coordinator share cfg.
func NewPager(cfg zoomview.Config) *Pager {
	if cfg.AnimationDuration <= 0 {
		cfg.AnimationDuration = zoomview.DefaultAnimationDuration
	}
	if cfg.Ease == nil {
		cfg.Ease = ease.InOutSine
	}
	maxFling := cfg.MaxFlingVelocity
	if maxFling <= 0 {
		maxFling = zoomview.DefaultMaxFlingVelocity
	}
	p := &Pager{
		cfg:      cfg,
		coord:    zoomview.NewHandoffCoordinator(cfg),
		velocity: zoomview.NewVelocityEstimator(maxFling),
	}
	p.coord.OnPageSwipe(p.beginDrag)
	return p
}

// Coordinator returns the pager's handoff coordinator.
func (p *Pager) Coordinator() *zoomview.HandoffCoordinator {
	return p.coord
}

// OnPageChanged registers a callback fired after a page change settles.
func (p *Pager) OnPageChanged(fn func(old, new int)) {
	p.onPageChanged = append(p.onPageChanged, fn)
}

// AddPage appends a page showing img and returns its view.
func (p *Pager) AddPage(img *ebiten.Image) *View {
	v := NewView(p.cfg)
	v.Background = p.Background
	v.SetRect(p.rect)
	v.SetImage(img)
	v.ctrl.OnDisallowIntercept(p.coord.RequestDisallowIntercept)
	p.pages = append(p.pages, v)
	return v
}

// Pages returns the page views in order.
func (p *Pager) Pages() []*View {
	return p.pages
}

// Current returns the index of the visible page, or -1 if there are none.
func (p *Pager) Current() int {
	if len(p.pages) == 0 {
		return -1
	}
	return p.current
}

// Offset returns the horizontal displacement of the current page.
func (p *Pager) Offset() float64 {
	return p.offset
}

// Settling reports whether a page animation is running.
func (p *Pager) Settling() bool {
	return p.tween != nil
}

// SetPage jumps to page i without animation.
func (p *Pager) SetPage(i int) {
	if i < 0 || i >= len(p.pages) {
		return
	}
	p.tween = nil
	p.offset = 0
	p.changePage(i)
}

// SetRect places the pager on screen. Every page shares the rectangle.
func (p *Pager) SetRect(r image.Rectangle) {
	p.rect = r
	for _, v := range p.pages {
		v.SetRect(r)
	}
}

// Rect returns the pager's screen rectangle.
func (p *Pager) Rect() image.Rectangle {
	return p.rect
}

// Update polls input, routes it, and advances page and image animations by
// one tick.
func (p *Pager) Update() error {
	p.step(tickDuration(), p.poll)
	return nil
}

// step advances the pager clock by dt and routes the events produced by poll.
func (p *Pager) step(dt time.Duration, poll pollFunc) {
	p.now += dt
	for _, ev := range poll(p.now, float64(p.rect.Min.X), float64(p.rect.Min.Y)) {
		p.handle(ev)
	}
	for _, v := range p.pages {
		v.ctrl.Update(dt)
	}
	p.advance(dt)
}

// handle routes one pointer event to the strip or the current page.
func (p *Pager) handle(ev zoomview.PointerEvent) {
	page := p.page()
	if page == nil {
		return
	}
	if ev.Phase == zoomview.PhaseDown {
		p.velocity.Clear()
		if p.tween != nil {
			p.finish()
			page = p.page()
		}
	}
	switch ev.Phase {
	case zoomview.PhaseDown, zoomview.PhasePointerDown, zoomview.PhaseMove:
		p.velocity.AddSample(ev.ID, ev.X, ev.Y, ev.Time)
	}

	claimed := p.coord.Claimed()
	if !p.coord.Intercept(ev, page.ctrl) {
		page.ctrl.HandlePointer(ev)
		return
	}
	if !claimed {
		page.ctrl.HandlePointer(zoomview.PointerEvent{
			Phase: zoomview.PhaseCancel, ID: ev.ID, X: ev.X, Y: ev.Y, Time: ev.Time,
		})
	}
	p.drag(ev)
}

// beginDrag starts dragging the strip from a claimed swipe.
func (p *Pager) beginDrag(ctx zoomview.HandoffContext) {
	p.dragID = ctx.PointerID
	p.dragStartX = math.NaN()
	p.claimDelta = ctx.DeltaX
	p.offset = p.clampOffset(ctx.DeltaX)
}

// drag moves the strip with the claiming pointer and settles it on release.
func (p *Pager) drag(ev zoomview.PointerEvent) {
	switch ev.Phase {
	case zoomview.PhaseMove:
		if ev.ID != p.dragID {
			return
		}
		if math.IsNaN(p.dragStartX) {
			p.dragStartX = ev.X - p.claimDelta
		}
		p.offset = p.clampOffset(ev.X - p.dragStartX)
	case zoomview.PhaseUp:
		p.release(ev)
	case zoomview.PhaseCancel:
		p.settleTo(p.current)
	}
}

// release picks the page the strip settles on: a fast enough swipe or one
// past half the width turns the page.
func (p *Pager) release(ev zoomview.PointerEvent) {
	vel, _ := p.velocity.Velocity(p.dragID, ev.Time)
	half := float64(p.rect.Dx()) / 2
	thr := p.coord.Threshold()
	target := p.current
	switch {
	case p.offset < 0 && (vel.X <= -thr || p.offset < -half):
		target++
	case p.offset > 0 && (vel.X >= thr || p.offset > half):
		target--
	}
	zoomview.Logger().Debug("ebitenview: page release", "offset", p.offset, "vx", vel.X, "target", target)
	p.settleTo(target)
}

// clampOffset stops the strip at the first and last page.
func (p *Pager) clampOffset(dx float64) float64 {
	if dx > 0 && p.current == 0 {
		return 0
	}
	if dx < 0 && p.current == len(p.pages)-1 {
		return 0
	}
	w := float64(p.rect.Dx())
	return math.Max(-w, math.Min(w, dx))
}

// settleTo animates the strip so page target ends up in view.
func (p *Pager) settleTo(target int) {
	target = max(0, min(len(p.pages)-1, target))
	end := float64(p.current-target) * float64(p.rect.Dx())
	p.target = target
	if p.offset == end {
		p.finish()
		return
	}
	p.tween = gween.New(float32(p.offset), float32(end), float32(p.cfg.AnimationDuration.Seconds()), p.cfg.Ease)
}

// advance ticks the page tween.
func (p *Pager) advance(dt time.Duration) {
	if p.tween == nil {
		return
	}
	v, done := p.tween.Update(float32(dt.Seconds()))
	p.offset = float64(v)
	if done {
		p.finish()
	}
}

// finish completes a running or pending settle immediately.
func (p *Pager) finish() {
	p.tween = nil
	p.offset = 0
	p.changePage(p.target)
}

func (p *Pager) changePage(i int) {
	old := p.current
	p.current = i
	p.target = i
	if old == i {
		return
	}
	p.pages[old].ctrl.Reinitialize()
	zoomview.Logger().Debug("ebitenview: page changed", "old", old, "new", i)
	for _, fn := range p.onPageChanged {
		fn(old, i)
	}
}

func (p *Pager) page() *View {
	if len(p.pages) == 0 {
		return nil
	}
	return p.pages[p.current]
}

// Draw renders the current page and whichever neighbour the strip reveals.
func (p *Pager) Draw(dst *ebiten.Image) {
	page := p.page()
	if page == nil {
		return
	}
	dx := int(math.Round(p.offset))
	w := p.rect.Dx()
	if dx > 0 && p.current > 0 {
		p.pages[p.current-1].drawAt(dst, dx-w)
	}
	if dx < 0 && p.current < len(p.pages)-1 {
		p.pages[p.current+1].drawAt(dst, dx+w)
	}
	page.Debug = p.Debug
	page.drawAt(dst, dx)
}
