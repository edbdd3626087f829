package ecs

import (
	"testing"

	"github.com/phanxgames/placard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// attachedController builds a controller with a fake host so scroll
// notifications can be delivered.
func attachedController() *placard.Controller {
	ctrl := placard.NewController(placard.Config{})
	ctrl.AttachHost(stubSurface{})
	return ctrl
}

type stubSurface struct{}

func (stubSurface) CurrentOffset() float64 { return 0 }
func (stubSurface) Extent() float64        { return 1000 }
func (stubSurface) JumpTo(float64)         {}
func (stubSurface) CreateMomentumSimulation(float64, float64) placard.Simulation {
	return nil
}
func (stubSurface) Reversed() bool { return false }

func TestAttachPublishesChanges(t *testing.T) {
	world := donburi.NewWorld()
	ctrl := attachedController()
	handle := Attach(ctrl, world)
	defer handle.Remove()

	var received []placard.ChangeContext
	StickyChangeEventType.Subscribe(world, func(w donburi.World, ctx placard.ChangeContext) {
		received = append(received, ctx)
	})

	h := placard.NewHeader(0, 0)
	h.Extent = 48
	if err := ctrl.Register(h); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := ctrl.OnScrollPositionChanged(10); err != nil {
		t.Fatalf("OnScrollPositionChanged: %v", err)
	}

	// Events are queued — process them.
	StickyChangeEventType.ProcessEvents(world)

	if len(received) == 0 {
		t.Fatal("expected at least one published change")
	}
	last := received[len(received)-1]
	if last.Active.Index != 0 {
		t.Errorf("active index = %d, want 0", last.Active.Index)
	}
}

func TestAttachHandleRemove(t *testing.T) {
	world := donburi.NewWorld()
	ctrl := attachedController()
	handle := Attach(ctrl, world)

	var count int
	StickyChangeEventType.Subscribe(world, func(w donburi.World, ctx placard.ChangeContext) {
		count++
	})

	handle.Remove()
	handle.Remove() // idempotent

	if err := ctrl.Register(placard.NewHeader(0, 0)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := ctrl.OnScrollPositionChanged(5); err != nil {
		t.Fatalf("OnScrollPositionChanged: %v", err)
	}
	events.ProcessAllEvents(world)

	if count != 0 {
		t.Errorf("expected no published changes after Remove, got %d", count)
	}
}
