package zoomview

// TransformContext carries the transform after a change and the content
// bounds it produces.
type TransformContext struct {
	Transform Transform
	Bounds    Rect
}

// ClickContext carries the location of a confirmed tap.
type ClickContext struct {
	X, Y float64
}

// LongClickContext carries the down location of a long press.
type LongClickContext struct {
	X, Y float64
}

// HandoffContext describes a swipe handed to the paging container.
type HandoffContext struct {
	PointerID int
	// DeltaX is the horizontal displacement since pointer down.
	DeltaX float64
	// VelocityX is the horizontal velocity at the moment of the decision,
	// in pixels per second.
	VelocityX float64
}

// --- Handler registry ---

type handler[F any] struct {
	id uint32
	fn F
}

type handlerRegistry struct {
	transform []handler[func(TransformContext)]
	click     []handler[func(ClickContext)]
	longClick []handler[func(LongClickContext) bool]
	disallow  []handler[func()]
	pageSwipe []handler[func(HandoffContext)]
	nextID    uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventTransformChanged:
		h.reg.transform = removeHandler(h.reg.transform, h.id)
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id)
	case EventLongClick:
		h.reg.longClick = removeHandler(h.reg.longClick, h.id)
	case EventDisallowIntercept:
		h.reg.disallow = removeHandler(h.reg.disallow, h.id)
	case EventPageSwipe:
		h.reg.pageSwipe = removeHandler(h.reg.pageSwipe, h.id)
	}
}

func removeHandler[F any](s []handler[F], id uint32) []handler[F] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[F]{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) handle(event EventType) CallbackHandle {
	r.nextID++
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

func (r *handlerRegistry) fireTransform(ctx TransformContext) {
	for _, h := range r.transform {
		h.fn(ctx)
	}
}

func (r *handlerRegistry) fireClick(ctx ClickContext) {
	for _, h := range r.click {
		h.fn(ctx)
	}
}

// fireLongClick reports whether any handler accepted the long click. Every
// handler runs regardless.
func (r *handlerRegistry) fireLongClick(ctx LongClickContext) bool {
	accepted := false
	for _, h := range r.longClick {
		if h.fn(ctx) {
			accepted = true
		}
	}
	return accepted
}

func (r *handlerRegistry) fireDisallow() {
	for _, h := range r.disallow {
		h.fn()
	}
}

func (r *handlerRegistry) firePageSwipe(ctx HandoffContext) {
	for _, h := range r.pageSwipe {
		h.fn(ctx)
	}
}
