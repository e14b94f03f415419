// Package ecs bridges zoomview gesture events into a [Donburi] world.
//
// [BridgeController] forwards a Controller's transform, click, and long-click
// callbacks as typed events tagged with an entity; [BridgeHandoff] does the
// same for page swipes claimed by a HandoffCoordinator. Subscribe to the
// event types in your ECS systems and drain them with ProcessEvents.
//
// Usage:
//
//	entity := world.Create()
//	handles := ecs.BridgeController(world, entity, ctrl)
//	ecs.ClickEventType.Subscribe(world, onClick)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
