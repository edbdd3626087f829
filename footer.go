package placard

// FooterContentResolver supplies the preview content rendered in the footer
// overlay for a header index. A nil return marks the footer invisible for
// that index even though the header exists structurally.
type FooterContentResolver func(index int) any

// maxFlingVelocity is the magnitude cap applied to footer release
// velocities before they are handed to the host's momentum physics, in px/s.
const maxFlingVelocity = 1000.0

// footerState tracks the footer drag/fling machine.
type footerState uint8

const (
	footerIdle footerState = iota
	footerDragging
	footerFlinging
)

// footerSync keeps a draggable footer overlay in lockstep with the host
// scroll surface. Drags translate one-to-one into immediate host jumps (the
// footer is a direct scroll handle); releases request a momentum simulation
// from the host's own physics and replay its positions tick by tick, so the
// user-facing feel matches native scrolling exactly.
type footerSync struct {
	ctrl  *Controller
	state footerState

	sim     Simulation
	simTime float64
}

// sign returns the drag-to-offset sign convention: dragging the footer
// toward the scroll origin advances the content, so deltas invert unless
// the axis itself is reversed.
func (f *footerSync) sign() float64 {
	if f.ctrl.reversed() {
		return 1
	}
	return -1
}

// dragStart begins a footer drag. A drag gesture supersedes an in-flight
// fling: the animation is stopped before any jumpTo calls begin.
func (f *footerSync) dragStart() {
	f.stopFling()
	f.state = footerDragging
}

// dragBy applies one drag delta, jumping the host immediately.
func (f *footerSync) dragBy(delta float64) error {
	host := f.ctrl.host
	if host == nil {
		return ErrNoHost
	}
	if f.state != footerDragging {
		// Deltas without an explicit start still behave as a drag.
		f.dragStart()
	}
	host.JumpTo(host.CurrentOffset() + f.sign()*delta)
	return nil
}

// dragEnd releases the drag with the measured velocity in px/s. The signed,
// clamped velocity is handed to the host's momentum physics; a nil
// simulation means no motion is warranted and the machine returns to idle.
// Without a tick source no animation can run.
func (f *footerSync) dragEnd(velocity float64) error {
	host := f.ctrl.host
	if host == nil {
		return ErrNoHost
	}
	f.state = footerIdle

	v := clampVelocity(f.sign() * velocity)
	sim := host.CreateMomentumSimulation(host.CurrentOffset(), v)
	if sim == nil || f.ctrl.ticks == nil {
		return nil
	}
	f.sim = sim
	f.simTime = 0
	f.state = footerFlinging
	f.ctrl.ticks.Schedule(f.tick)
	return nil
}

// tick advances the fling by one frame, jumping the host to the
// simulation's current value (not merely an equivalent velocity).
func (f *footerSync) tick(dt float64) {
	if f.state != footerFlinging {
		return // superseded by a new drag or disposal
	}
	f.simTime += dt
	f.ctrl.host.JumpTo(f.sim.Position(f.simTime))
	if f.sim.Done(f.simTime) {
		f.stopFling()
		return
	}
	f.ctrl.ticks.Schedule(f.tick)
}

// stopFling cancels any in-flight fling animation.
func (f *footerSync) stopFling() {
	f.state = footerIdle
	f.sim = nil
	f.simTime = 0
}

// flinging reports whether a release animation is in flight.
func (f *footerSync) flinging() bool {
	return f.state == footerFlinging
}

// clampVelocity caps a signed velocity at ±maxFlingVelocity.
func clampVelocity(v float64) float64 {
	if v > maxFlingVelocity {
		return maxFlingVelocity
	}
	if v < -maxFlingVelocity {
		return -maxFlingVelocity
	}
	return v
}
