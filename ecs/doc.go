// Package ecs provides ECS adapters for placard's change notifications.
//
// The primary adapter is [Attach], which bridges a controller's sticky
// state changes into a [Donburi] world as typed events. Subscribe to
// [StickyChangeEventType] in your ECS systems to receive them.
//
// Usage:
//
//	handle := ecs.Attach(ctrl, world)
//	defer handle.Remove()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
