// Package zoomview is a gesture-driven transform engine for magnifiable
// images: pan, pinch-zoom, double-tap zoom, fling, and the hand-off of
// horizontal swipes between an image and the paging container around it.
//
// The engine has no rendering or windowing dependency. A host feeds it
// [PointerEvent]s and periodic ticks and draws whatever [Transform] it
// reports. The [github.com/phanxgames/zoomview/ebitenview] package is such
// a host for [Ebitengine].
//
// # Quick start
//
//	c := zoomview.NewController(zoomview.DefaultConfig())
//	c.SetViewport(zoomview.Extent{Width: 1000, Height: 1000})
//	c.Bind(zoomview.Extent{Width: 2000, Height: 500})
//	c.OnTransformChanged(func(ctx zoomview.TransformContext) {
//		// redraw using ctx.Transform.Matrix()
//	})
//
//	// every input event:
//	c.HandlePointer(zoomview.PointerEvent{Phase: zoomview.PhaseDown, ID: 0, X: 500, Y: 500, Time: now})
//	// every frame:
//	c.Update(dt)
//
// # Transform and limits
//
// [Initialize] fits content into the viewport: it is centred and scaled by
// the smaller of the two axis ratios. That scale is the initial scale; the
// minimum is a fifth of it and the maximum five times it. A live pinch may
// overshoot the maximum by half again, and release animates it back.
//
// [SettleTranslation] computes how far a transform must move so that content
// larger than the viewport shows no gap at an edge and smaller content is
// centred.
//
// # Gestures
//
// A [Controller] runs the gesture state machine. Its states are reported by
// [Controller.State]:
//
//	idle -> pending -> dragging | scaling -> animating -> idle
//
// A drag begins once the pointer moves past the touch slop; a second pointer
// begins a pinch. When the last pointer lifts, release resolution animates
// the transform back into bounds, flinging it first if the release was fast.
// Double tap toggles between the initial scale and half the maximum. Long
// press fires once per gesture; accepting it suppresses the click.
//
// # Container hand-off
//
// A [HandoffCoordinator] sees each event before the image does and decides
// whether a horizontal swipe turns the page. Wire the controller's
// [Controller.OnDisallowIntercept] to [HandoffCoordinator.RequestDisallowIntercept]
// so that a swipe the image has claimed stays with it.
//
// # Scripts
//
// [LoadGestureScript] parses a JSON gesture script and a [Player] replays it
// frame by frame, which is how the tests and the gallery demo drive
// reproducible gestures.
//
// # Logging
//
// Diagnostics go to a [log/slog] logger that is silent by default. Enable
// them with [SetLogger].
//
// [Ebitengine]: https://ebitengine.org
package zoomview
