package zoomview

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// DefaultFrame is the frame length a Player uses when none is given.
const DefaultFrame = time.Second / 60

var (
	// ErrNoSteps is returned when a gesture script contains no steps.
	ErrNoSteps = errors.New("gesture script has no steps")
	// ErrUnknownAction is returned when a script step names an action the
	// player does not know.
	ErrUnknownAction = errors.New("unknown gesture script action")
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	ID     int     `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Ms     int     `json:"ms,omitempty"`
}

type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

var scriptPhases = map[string]Phase{
	"down":         PhaseDown,
	"pointer_down": PhasePointerDown,
	"move":         PhaseMove,
	"pointer_up":   PhasePointerUp,
	"up":           PhaseUp,
	"cancel":       PhaseCancel,
}

// GestureScript is a parsed sequence of gesture steps. A script is
// immutable; replay it with a Player.
//
// Steps are JSON objects with an "action" and its arguments:
//
//	{"action": "down", "id": 0, "x": 10, "y": 20}
//	{"action": "pointer_down" | "move" | "pointer_up" | "up", "id": 1, "x": 0, "y": 0}
//	{"action": "cancel"}
//	{"action": "tick", "ms": 300}
//	{"action": "tap", "x": 10, "y": 20}
//	{"action": "drag", "fromX": 0, "fromY": 0, "toX": 100, "toY": 0, "frames": 10}
type GestureScript struct {
	steps []scriptStep
}

// LoadGestureScript parses a JSON gesture script.
func LoadGestureScript(jsonData []byte) (*GestureScript, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: %w", ErrNoSteps)
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tick", "tap", "drag":
		default:
			if _, ok := scriptPhases[st.Action]; !ok {
				return nil, fmt.Errorf("parse gesture script: step %d: %w %q", i, ErrUnknownAction, st.Action)
			}
		}
	}
	return &GestureScript{steps: script.Steps}, nil
}

// Len returns the number of steps.
func (s *GestureScript) Len() int {
	return len(s.steps)
}

// Player replays a GestureScript into a Controller one frame at a time. Each
// frame it executes at most one step (or one queued event of a multi-frame
// step), then advances the controller by the frame length.
type Player struct {
	script *GestureScript
	frame  time.Duration

	cursor int
	queue  []PointerEvent
	wait   time.Duration
	now    time.Duration
	done   bool
}

// NewPlayer creates a player for script that advances by frame per Step.
// A non-positive frame uses DefaultFrame.
func NewPlayer(script *GestureScript, frame time.Duration) *Player {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Player{script: script, frame: frame}
}

// Done reports whether every step has been executed.
func (p *Player) Done() bool {
	return p.done
}

// Elapsed returns the script time played so far.
func (p *Player) Elapsed() time.Duration {
	return p.now
}

// Step executes one frame of the script against c.
func (p *Player) Step(c *Controller) {
	if p.done {
		return
	}
	start := c.Now()
	switch {
	case len(p.queue) > 0:
		ev := p.queue[0]
		p.queue = p.queue[1:]
		p.dispatch(c, start, ev)
	case p.wait > 0:
		p.wait -= p.frame
	case p.cursor < len(p.script.steps):
		st := p.script.steps[p.cursor]
		p.cursor++
		p.execute(c, start, st)
	}
	c.Update(p.frame)
	p.now += p.frame

	if p.cursor >= len(p.script.steps) && len(p.queue) == 0 && p.wait <= 0 {
		p.done = true
	}
}

// Run plays the remaining script to completion.
func (p *Player) Run(c *Controller) {
	for !p.done {
		p.Step(c)
	}
}

func (p *Player) execute(c *Controller, now time.Duration, st scriptStep) {
	switch st.Action {
	case "tick":
		// This frame counts toward the wait.
		p.wait = time.Duration(st.Ms)*time.Millisecond - p.frame
	case "tap":
		p.dispatch(c, now, PointerEvent{Phase: PhaseDown, ID: st.ID, X: st.X, Y: st.Y})
		p.queue = append(p.queue, PointerEvent{Phase: PhaseUp, ID: st.ID, X: st.X, Y: st.Y})
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		p.dispatch(c, now, PointerEvent{Phase: PhaseDown, ID: st.ID, X: st.FromX, Y: st.FromY})
		for i := 1; i <= frames; i++ {
			t := float64(i) / float64(frames)
			p.queue = append(p.queue, PointerEvent{
				Phase: PhaseMove,
				ID:    st.ID,
				X:     st.FromX + (st.ToX-st.FromX)*t,
				Y:     st.FromY + (st.ToY-st.FromY)*t,
			})
		}
		p.queue = append(p.queue, PointerEvent{Phase: PhaseUp, ID: st.ID, X: st.ToX, Y: st.ToY})
	default:
		p.dispatch(c, now, PointerEvent{Phase: scriptPhases[st.Action], ID: st.ID, X: st.X, Y: st.Y})
	}
}

func (p *Player) dispatch(c *Controller, now time.Duration, ev PointerEvent) {
	ev.Time = now
	c.HandlePointer(ev)
}
