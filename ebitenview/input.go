package ebitenview

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/zoomview"
)

// maxPointers bounds the pointer slots: slot 0 is the mouse, 1-9 are touches.
const maxPointers = 10

// slotState is the last polled state of one pointer slot.
type slotState struct {
	down bool
	x, y float64
}

// syntheticPointer is one injected pointer sample, in view coordinates.
type syntheticPointer struct {
	slot    int
	x, y    float64
	pressed bool
}

// input polls Ebitengine mouse and touch state each frame and turns it into
// zoomview.PointerEvents. Injected samples take priority over real input so
// scripted sessions are reproducible.
type input struct {
	slots     [maxPointers]slotState
	touchMap  [maxPointers]ebiten.TouchID
	touchUsed [maxPointers]bool
	touchIDs  []ebiten.TouchID
	downCount int

	injectQueue []syntheticPointer
	events      []zoomview.PointerEvent
}

// InjectPress queues a press of pointer slot at (x, y) in view coordinates.
// Each injected sample is consumed on its own frame.
func (in *input) InjectPress(slot int, x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointer{slot: slot, x: x, y: y, pressed: true})
}

// InjectMove queues a move of a pressed pointer slot to (x, y).
func (in *input) InjectMove(slot int, x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointer{slot: slot, x: x, y: y, pressed: true})
}

// InjectRelease queues a release of pointer slot at (x, y).
func (in *input) InjectRelease(slot int, x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointer{slot: slot, x: x, y: y, pressed: false})
}

// InjectTap queues a press followed by a release at (x, y). Consumes two
// frames.
func (in *input) InjectTap(x, y float64) {
	in.InjectPress(0, x, y)
	in.InjectRelease(0, x, y)
}

// InjectDrag queues a press at (fromX, fromY), linearly interpolated moves,
// and a release at (toX, toY). The sequence consumes frames frames, at
// least 2.
func (in *input) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(0, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectMove(0, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectRelease(0, toX, toY)
}

// InjectPinch queues a two-finger pinch centred on (cx, cy): the fingers
// start fromSpan apart horizontally and end toSpan apart after steps moves
// of each finger.
func (in *input) InjectPinch(cx, cy, fromSpan, toSpan float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	in.InjectPress(1, cx-fromSpan/2, cy)
	in.InjectPress(2, cx+fromSpan/2, cy)
	for i := 1; i <= steps; i++ {
		half := (fromSpan + (toSpan-fromSpan)*float64(i)/float64(steps)) / 2
		in.InjectMove(1, cx-half, cy)
		in.InjectMove(2, cx+half, cy)
	}
	in.InjectRelease(2, cx+toSpan/2, cy)
	in.InjectRelease(1, cx-toSpan/2, cy)
}

// Injecting reports whether injected samples are still queued.
func (in *input) Injecting() bool {
	return len(in.injectQueue) > 0
}

// pollFunc produces the pointer events for one frame.
type pollFunc func(now time.Duration, originX, originY float64) []zoomview.PointerEvent

// poll returns the pointer events for this frame, stamped with now. Screen
// coordinates are shifted by (-originX, -originY) into view coordinates.
// While injected samples are queued, real devices are ignored. The returned
// slice is reused by the next call.
func (in *input) poll(now time.Duration, originX, originY float64) []zoomview.PointerEvent {
	if in.Injecting() {
		return in.pollInjected(now, originX, originY)
	}
	in.events = in.events[:0]
	in.pollMouse(now, originX, originY)
	in.pollTouches(now, originX, originY)
	return in.events
}

// pollInjected pops at most one injected sample and feeds it through the
// same path as real input. Injected samples are already in view coordinates.
func (in *input) pollInjected(now time.Duration, _, _ float64) []zoomview.PointerEvent {
	in.events = in.events[:0]
	if len(in.injectQueue) == 0 {
		return in.events
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]
	in.sample(evt.slot, evt.x, evt.y, evt.pressed, now)
	return in.events
}

// pollMouse handles the mouse (slot 0). Any button counts as pressed.
func (in *input) pollMouse(now time.Duration, originX, originY float64) {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) ||
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	in.sample(0, float64(mx)-originX, float64(my)-originY, pressed, now)
}

// pollTouches handles touch input (slots 1-9).
func (in *input) pollTouches(now time.Duration, originX, originY float64) {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range in.touchIDs {
		slot := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		in.sample(slot, float64(tx)-originX, float64(ty)-originY, true, now)
	}

	// Release slots whose touch ended this frame.
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && !active[i] {
			s := in.slots[i]
			in.sample(i, s.x, s.y, false, now)
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9). Returns the
// existing slot or allocates a new one. Returns -1 if full.
func (in *input) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// sample compares one slot's polled state with its previous state and emits
// the matching pointer event, if any.
func (in *input) sample(slot int, x, y float64, pressed bool, now time.Duration) {
	if slot < 0 || slot >= maxPointers {
		zoomview.Logger().Warn("ebitenview: pointer slot out of range", "slot", slot)
		return
	}
	s := &in.slots[slot]
	switch {
	case pressed && !s.down:
		phase := zoomview.PhasePointerDown
		if in.downCount == 0 {
			phase = zoomview.PhaseDown
		}
		in.downCount++
		*s = slotState{down: true, x: x, y: y}
		in.emit(phase, slot, x, y, now)
	case pressed && (s.x != x || s.y != y):
		s.x, s.y = x, y
		in.emit(zoomview.PhaseMove, slot, x, y, now)
	case !pressed && s.down:
		in.downCount--
		phase := zoomview.PhasePointerUp
		if in.downCount == 0 {
			phase = zoomview.PhaseUp
		}
		*s = slotState{x: x, y: y}
		in.emit(phase, slot, x, y, now)
	}
}

func (in *input) emit(phase zoomview.Phase, slot int, x, y float64, now time.Duration) {
	in.events = append(in.events, zoomview.PointerEvent{Phase: phase, ID: slot, X: x, Y: y, Time: now})
}
