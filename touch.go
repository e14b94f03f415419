package zoomview

// invalidPointer marks the absence of an active pointer.
const invalidPointer = -1

// exceedsSlop reports whether the displacement (dx, dy) is strictly beyond
// slop. The squared form avoids a square root on every move.
func exceedsSlop(dx, dy, slop float64) bool {
	return dx*dx+dy*dy > slop*slop
}

// touchSession is the per-gesture record kept by a Controller. It is created
// on the first pointer down and cleared on up, cancel, or when gestures are
// disabled.
type touchSession struct {
	activePointer int
	downX, downY  float64
	// touchX and touchY hold the last two positions of the active pointer;
	// index 1 is the most recent.
	touchX [2]float64
	touchY [2]float64

	dragging          bool
	interrupted       bool // the down stopped a running animation
	hasFiredLongPress bool
	longPressConsumed bool

	// pointers maps every tracked pointer id to its last known position.
	pointers map[int]Vec2
	// order keeps pointer ids in touch-down order so reassignment is stable.
	order []int
}

func newTouchSession() *touchSession {
	return &touchSession{
		activePointer: invalidPointer,
		pointers:      make(map[int]Vec2, 4),
	}
}

// markTouch shifts the two-slot ring and records (x, y) as the latest point.
func (s *touchSession) markTouch(x, y float64) {
	s.touchX[0] = s.touchX[1]
	s.touchX[1] = x
	s.touchY[0] = s.touchY[1]
	s.touchY[1] = y
}

// lastDelta returns the movement between the two most recent touch points.
func (s *touchSession) lastDelta() (dx, dy float64) {
	return s.touchX[1] - s.touchX[0], s.touchY[1] - s.touchY[0]
}

// pointerDown starts tracking id and makes it the active pointer.
func (s *touchSession) pointerDown(id int, x, y float64) {
	if _, ok := s.pointers[id]; !ok {
		s.order = append(s.order, id)
	}
	s.pointers[id] = Vec2{x, y}
	s.activePointer = id
	s.downX, s.downY = x, y
	s.markTouch(x, y)
}

// tracked reports whether id is a pointer of this gesture.
func (s *touchSession) tracked(id int) bool {
	_, ok := s.pointers[id]
	return ok
}

// pointerUp stops tracking id. When id was the active pointer, the oldest
// remaining pointer becomes active and its current position becomes the new
// down point, so the next pan delta starts from there.
func (s *touchSession) pointerUp(id int) {
	delete(s.pointers, id)
	for i, pid := range s.order {
		if pid == id {
			copy(s.order[i:], s.order[i+1:])
			s.order = s.order[:len(s.order)-1]
			break
		}
	}
	if id != s.activePointer {
		return
	}
	if len(s.order) == 0 {
		s.activePointer = invalidPointer
		return
	}
	next := s.order[0]
	p := s.pointers[next]
	s.activePointer = next
	s.downX, s.downY = p.X, p.Y
	s.markTouch(p.X, p.Y)
}

// count returns the number of pointers currently down.
func (s *touchSession) count() int {
	return len(s.pointers)
}

// positions appends the positions of all tracked pointers to buf in
// touch-down order.
func (s *touchSession) positions(buf []Vec2) []Vec2 {
	for _, id := range s.order {
		buf = append(buf, s.pointers[id])
	}
	return buf
}
