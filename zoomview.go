package zoomview

import (
	"math"
	"time"
)

// Vec2 is a 2D vector used for points, deltas, and velocities.
type Vec2 struct {
	X, Y float64
}

// Extent is a width/height pair. It describes both the intrinsic size of the
// bound content and the size of the viewport it is displayed in.
type Extent struct {
	Width, Height float64
}

// valid reports whether both dimensions are positive and finite.
func (e Extent) valid() bool {
	return e.Width > 0 && e.Height > 0 &&
		!math.IsInf(e.Width, 0) && !math.IsInf(e.Height, 0)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Left returns the X coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the Y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Phase identifies where a pointer event sits in a touch sequence.
type Phase uint8

const (
	PhaseDown        Phase = iota // first pointer of a gesture touches down
	PhasePointerDown              // an additional pointer touches down
	PhaseMove                     // a tracked pointer moves
	PhasePointerUp                // a non-last pointer lifts
	PhaseUp                       // the last pointer lifts
	PhaseCancel                   // the host aborted the gesture
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhasePointerDown:
		return "pointer-down"
	case PhaseMove:
		return "move"
	case PhasePointerUp:
		return "pointer-up"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent is a single raw input event delivered by the host.
// Time is a monotonic host timestamp; only differences between events and
// ticks matter.
type PointerEvent struct {
	Phase Phase
	ID    int
	X, Y  float64
	Time  time.Duration
}

// GestureState is the externally visible state of a Controller.
type GestureState uint8

const (
	StateIdle      GestureState = iota // no touch, no animation
	StatePending                       // pointer down, slop not yet exceeded
	StateDragging                      // single-pointer drag past touch slop
	StateScaling                       // two or more pointers pinching
	StateAnimating                     // no touch, release or double-tap animation running
)

func (s GestureState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateDragging:
		return "dragging"
	case StateScaling:
		return "scaling"
	case StateAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of controller or coordinator output.
type EventType uint8

const (
	EventTransformChanged  EventType = iota // fires after the transform is mutated
	EventClick                              // fires on a confirmed single tap
	EventLongClick                          // fires once per gesture on long press
	EventDisallowIntercept                  // fires when the image claims the gesture
	EventPageSwipe                          // fires when the coordinator hands a swipe to the container
)
