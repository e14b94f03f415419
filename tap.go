package zoomview

import "time"

// TapKind classifies the output of a TapRecognizer.
type TapKind uint8

const (
	TapNone      TapKind = iota
	TapSingle            // single tap confirmed (no second tap followed)
	TapDouble            // second tap landed within the double-tap window
	TapLongPress         // pointer held still past the long-press timeout
)

func (k TapKind) String() string {
	switch k {
	case TapSingle:
		return "single"
	case TapDouble:
		return "double"
	case TapLongPress:
		return "long-press"
	default:
		return "none"
	}
}

// Tap is a recognized tap gesture located at X, Y.
type Tap struct {
	Kind TapKind
	X, Y float64
}

// TapRecognizer classifies a touch sequence into single taps, double taps,
// and long presses, independently of drag and pinch handling. It is driven
// by Handle for every pointer event and by Poll for the passage of time.
type TapRecognizer struct {
	cfg Config

	stillDown         bool
	inTapRegion       bool
	inLongPress       bool
	doubleTapping     bool
	downX, downY      float64
	longPressDeadline time.Duration
	longPressArmed    bool

	// The previous completed tap, a candidate for the first half of a
	// double tap.
	prevTap         bool
	prevDownX       float64
	prevDownY       float64
	prevUpTime      time.Duration
	confirmDeadline time.Duration
	confirmArmed    bool
}

// NewTapRecognizer creates a recognizer using the timeouts and slops in cfg.
func NewTapRecognizer(cfg Config) *TapRecognizer {
	return &TapRecognizer{cfg: cfg.withDefaults()}
}

// Handle feeds one pointer event. It returns any tap recognized by this event
// and whether the event belongs to a double-tap sequence, in which case the
// caller should not interpret it as a drag or pinch.
func (r *TapRecognizer) Handle(ev PointerEvent) (tap Tap, consumed bool) {
	switch ev.Phase {
	case PhaseDown:
		return r.onDown(ev)
	case PhasePointerDown:
		r.cancelTaps()
	case PhaseMove:
		if r.doubleTapping {
			return Tap{}, true
		}
		if r.inTapRegion && exceedsSlop(ev.X-r.downX, ev.Y-r.downY, r.cfg.TouchSlop) {
			r.inTapRegion = false
			r.longPressArmed = false
			r.confirmArmed = false
		}
	case PhaseUp:
		return r.onUp(ev)
	case PhaseCancel:
		r.Reset()
	}
	return Tap{}, false
}

func (r *TapRecognizer) onDown(ev PointerEvent) (Tap, bool) {
	var tap Tap
	consumed := false
	if r.isDoubleTap(ev) {
		r.doubleTapping = true
		r.confirmArmed = false
		tap = Tap{Kind: TapDouble, X: r.prevDownX, Y: r.prevDownY}
		consumed = true
	} else {
		r.confirmArmed = false
		r.longPressDeadline = ev.Time + r.cfg.LongPressTimeout
		r.longPressArmed = true
	}
	r.stillDown = true
	r.inTapRegion = true
	r.inLongPress = false
	r.downX, r.downY = ev.X, ev.Y
	return tap, consumed
}

func (r *TapRecognizer) onUp(ev PointerEvent) (Tap, bool) {
	r.stillDown = false
	r.longPressArmed = false
	switch {
	case r.doubleTapping:
		r.doubleTapping = false
		r.prevTap = false
		return Tap{}, true
	case r.inLongPress:
		r.inLongPress = false
		r.prevTap = false
	case r.inTapRegion:
		r.prevTap = true
		r.prevDownX, r.prevDownY = r.downX, r.downY
		r.prevUpTime = ev.Time
		r.confirmDeadline = ev.Time + r.cfg.DoubleTapTimeout
		r.confirmArmed = true
	default:
		r.prevTap = false
	}
	return Tap{}, false
}

// isDoubleTap reports whether a down event completes a double tap with the
// previous tap.
func (r *TapRecognizer) isDoubleTap(ev PointerEvent) bool {
	if !r.prevTap || !r.confirmArmed {
		return false
	}
	if ev.Time-r.prevUpTime > r.cfg.DoubleTapTimeout {
		return false
	}
	return !exceedsSlop(ev.X-r.prevDownX, ev.Y-r.prevDownY, r.cfg.DoubleTapSlop)
}

// Poll fires time-based recognitions: a long press once the pointer has been
// held still past the timeout, or a single-tap confirmation once the
// double-tap window closes without a second tap.
func (r *TapRecognizer) Poll(now time.Duration) Tap {
	if r.longPressArmed && r.stillDown && r.inTapRegion && now >= r.longPressDeadline {
		r.longPressArmed = false
		r.inLongPress = true
		r.confirmArmed = false
		return Tap{Kind: TapLongPress, X: r.downX, Y: r.downY}
	}
	if r.confirmArmed && !r.stillDown && now >= r.confirmDeadline {
		r.confirmArmed = false
		r.prevTap = false
		return Tap{Kind: TapSingle, X: r.prevDownX, Y: r.prevDownY}
	}
	return Tap{}
}

// InLongPress reports whether the current touch has already fired a long
// press.
func (r *TapRecognizer) InLongPress() bool {
	return r.inLongPress
}

// cancelTaps abandons every pending recognition for the current gesture.
func (r *TapRecognizer) cancelTaps() {
	r.longPressArmed = false
	r.confirmArmed = false
	r.inTapRegion = false
	r.doubleTapping = false
	r.inLongPress = false
	r.prevTap = false
}

// Reset returns the recognizer to its initial state.
func (r *TapRecognizer) Reset() {
	cfg := r.cfg
	*r = TapRecognizer{cfg: cfg}
}
