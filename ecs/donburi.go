package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/zoomview"
)

// TransformEvent reports a transform change of the entity's controller.
type TransformEvent struct {
	Entity donburi.Entity
	zoomview.TransformContext
}

// ClickEvent reports a confirmed single tap on the entity's image.
type ClickEvent struct {
	Entity donburi.Entity
	zoomview.ClickContext
}

// LongClickEvent reports a long press on the entity's image.
type LongClickEvent struct {
	Entity donburi.Entity
	zoomview.LongClickContext
}

// PageSwipeEvent reports a swipe handed to a paging container.
type PageSwipeEvent struct {
	Entity donburi.Entity
	zoomview.HandoffContext
}

var (
	TransformEventType = events.NewEventType[TransformEvent]()
	ClickEventType     = events.NewEventType[ClickEvent]()
	LongClickEventType = events.NewEventType[LongClickEvent]()
	PageSwipeEventType = events.NewEventType[PageSwipeEvent]()
)

// BridgeController publishes c's transform, click, and long-click callbacks
// into world, tagged with entity. Events are queued until ProcessEvents, so a
// long click is never accepted through the bridge and the release still
// produces a click. Remove the returned handles to stop bridging.
func BridgeController(world donburi.World, entity donburi.Entity, c *zoomview.Controller) []zoomview.CallbackHandle {
	return []zoomview.CallbackHandle{
		c.OnTransformChanged(func(ctx zoomview.TransformContext) {
			TransformEventType.Publish(world, TransformEvent{Entity: entity, TransformContext: ctx})
		}),
		c.OnClick(func(ctx zoomview.ClickContext) {
			ClickEventType.Publish(world, ClickEvent{Entity: entity, ClickContext: ctx})
		}),
		c.OnLongClick(func(ctx zoomview.LongClickContext) bool {
			LongClickEventType.Publish(world, LongClickEvent{Entity: entity, LongClickContext: ctx})
			return false
		}),
	}
}

// BridgeHandoff publishes page swipes claimed by h into world, tagged with
// entity.
func BridgeHandoff(world donburi.World, entity donburi.Entity, h *zoomview.HandoffCoordinator) zoomview.CallbackHandle {
	return h.OnPageSwipe(func(ctx zoomview.HandoffContext) {
		PageSwipeEventType.Publish(world, PageSwipeEvent{Entity: entity, HandoffContext: ctx})
	})
}
