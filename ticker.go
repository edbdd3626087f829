package placard

// FrameTicker is a TickSource pumped from a host game loop. Call Tick once
// per frame from Update with the elapsed time; scheduled callbacks run once
// and are dropped. Callbacks scheduled from inside a tick run on the next
// one, which is what lets animations keep themselves alive frame to frame.
//
// FrameTicker is single-threaded like the rest of the engine.
type FrameTicker struct {
	scheduled []func(dt float64)
	running   []func(dt float64) // reused swap buffer
}

// Schedule queues fn to run once on the next Tick.
func (t *FrameTicker) Schedule(fn func(dt float64)) {
	if fn == nil {
		panic("placard: nil tick callback")
	}
	t.scheduled = append(t.scheduled, fn)
}

// Tick runs all callbacks scheduled before this frame. dt is the elapsed
// time since the previous frame in seconds.
func (t *FrameTicker) Tick(dt float64) {
	if len(t.scheduled) == 0 {
		return
	}
	// Swap so callbacks scheduled during the run land in the next frame.
	t.running, t.scheduled = t.scheduled, t.running[:0]
	for i, fn := range t.running {
		t.running[i] = nil
		fn(dt)
	}
	t.running = t.running[:0]
}

// Pending returns the number of callbacks waiting for the next Tick.
func (t *FrameTicker) Pending() int {
	return len(t.scheduled)
}
