package placard

// ScrollSurface is the host scroll surface the engine drives. The engine
// never owns scroll physics or layout; it reads positions from the host and
// repositions it through JumpTo.
//
// Placard ships one implementation, [ScrollView], for Ebitengine hosts.
type ScrollSurface interface {
	// CurrentOffset returns the current scroll position in pixels from the
	// scroll origin.
	CurrentOffset() float64

	// Extent returns the total scrollable content length in pixels.
	Extent() float64

	// JumpTo repositions the surface immediately, without animation.
	JumpTo(offset float64)

	// CreateMomentumSimulation returns a ballistic position function for a
	// release at the given position with the given signed velocity, or nil
	// when no motion is warranted (velocity effectively zero, already at
	// rest against a boundary).
	CreateMomentumSimulation(offset, velocity float64) Simulation

	// Reversed reports whether the scroll axis is inverted. Consulted when
	// Config.Reverse is nil ("inherit from host").
	Reversed() bool
}

// Simulation is a time-parameterized scroll position produced by the host's
// momentum physics. t is seconds since the simulation started.
type Simulation interface {
	// Position returns the scroll offset at time t.
	Position(t float64) float64
	// Velocity returns the signed velocity at time t, in px/s.
	Velocity(t float64) float64
	// Done reports whether the simulation has settled at time t.
	Done(t float64) bool
}

// TickSource delivers "once before the next frame renders" callbacks. The
// engine uses it to coalesce scroll recomputation and to drive jump and
// fling animations; an animation keeps itself alive by re-scheduling from
// inside its callback.
type TickSource interface {
	// Schedule requests fn be invoked once before the next frame renders,
	// with the elapsed time since the previous frame in seconds.
	Schedule(fn func(dt float64))
}
