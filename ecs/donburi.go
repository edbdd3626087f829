package ecs

import (
	"github.com/phanxgames/placard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// StickyChangeEventType is the Donburi event type for placard change
// notifications. Subscribe to this in your ECS systems to react to sticky
// header, footer, and child snapshot changes.
var StickyChangeEventType = events.NewEventType[placard.ChangeContext]()

// Attach subscribes the controller's change notifications to a Donburi
// world. Each change is published to StickyChangeEventType and can be
// consumed with events.Subscribe and ProcessEvents. The returned handle
// detaches the bridge.
func Attach(ctrl *placard.Controller, world donburi.World) placard.CallbackHandle {
	return ctrl.OnChange(func(ctx placard.ChangeContext) {
		StickyChangeEventType.Publish(world, ctx)
	})
}
