package zoomview

import (
	"time"

	"github.com/tanema/gween/ease"
)

// Default gesture tuning, in viewport pixels and host time.
const (
	DefaultTouchSlop         = 8.0
	DefaultMaxFlingVelocity  = 8000.0 // px/s
	DefaultOverTranslation   = 25.0
	DefaultAnimationDuration = 250 * time.Millisecond
	DefaultLongPressTimeout  = 500 * time.Millisecond
	DefaultDoubleTapTimeout  = 300 * time.Millisecond
	DefaultDoubleTapSlop     = 100.0
)

// Config holds the tunables shared by a Controller and a HandoffCoordinator.
// Zero numeric fields are replaced by their defaults; use DefaultConfig to get
// a fully populated value with gestures enabled.
type Config struct {
	// GesturesEnabled turns pan, pinch, fling, and tap handling on. When false,
	// every pointer event passes through unhandled.
	GesturesEnabled bool
	// PanWhenUnmagnified allows a single pointer to pan the content while it
	// sits at or below its initial scale.
	PanWhenUnmagnified bool

	// TouchSlop is the distance a pointer must travel before a drag begins.
	TouchSlop float64
	// MaxFlingVelocity caps velocity estimates, in pixels per second.
	MaxFlingVelocity float64
	// MinFlingVelocity is the speed at which a release counts as a fling.
	// Defaults to MaxFlingVelocity/20.
	MinFlingVelocity float64
	// OverTranslation is how far a fling may overshoot an edge before
	// springing back.
	OverTranslation float64

	// AnimationDuration is the length of every scale and translation segment.
	AnimationDuration time.Duration
	// Ease shapes every animation segment. Defaults to ease.InOutSine.
	Ease ease.TweenFunc

	LongPressTimeout time.Duration
	DoubleTapTimeout time.Duration
	DoubleTapSlop    float64
}

// DefaultConfig returns the default configuration with gestures enabled.
func DefaultConfig() Config {
	return Config{GesturesEnabled: true}.withDefaults()
}

// withDefaults fills zero fields from the package defaults.
func (c Config) withDefaults() Config {
	if c.TouchSlop <= 0 {
		c.TouchSlop = DefaultTouchSlop
	}
	if c.MaxFlingVelocity <= 0 {
		c.MaxFlingVelocity = DefaultMaxFlingVelocity
	}
	if c.MinFlingVelocity <= 0 {
		c.MinFlingVelocity = c.MaxFlingVelocity / 20
	}
	if c.OverTranslation <= 0 {
		c.OverTranslation = DefaultOverTranslation
	}
	if c.AnimationDuration <= 0 {
		c.AnimationDuration = DefaultAnimationDuration
	}
	if c.Ease == nil {
		c.Ease = ease.InOutSine
	}
	if c.LongPressTimeout <= 0 {
		c.LongPressTimeout = DefaultLongPressTimeout
	}
	if c.DoubleTapTimeout <= 0 {
		c.DoubleTapTimeout = DefaultDoubleTapTimeout
	}
	if c.DoubleTapSlop <= 0 {
		c.DoubleTapSlop = DefaultDoubleTapSlop
	}
	return c
}
