package placard

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultWheelSpeed   = 40.0 // px of scroll per wheel unit
	defaultDragDeadZone = 4.0  // px of movement before a drag starts
	defaultFriction     = 4.0  // momentum velocity decay, 1/s
	minFlingVelocity    = 50.0 // px/s below which a release warrants no motion
	settleVelocity      = 4.0  // px/s below which a simulation is settled
)

// ViewConfig configures a ScrollView.
type ViewConfig struct {
	// Viewport is the screen-space rectangle the view occupies.
	Viewport Rect
	// Extent is the total scrollable content length in pixels.
	Extent float64
	// Reverse inverts the scroll axis: the sticky slot moves to the far
	// edge and drag conventions flip.
	Reverse bool
	// Spacing offsets the sticky slot from the scroll edge.
	Spacing float64
	// JumpDuration is the JumpToHeader animation length in seconds.
	JumpDuration float64
	// FooterContentResolver supplies footer preview content per index.
	FooterContentResolver FooterContentResolver
	// FooterBand is the height of the footer's drag hit band at the far
	// edge of the viewport. Zero disables footer dragging.
	FooterBand float64
	// WheelSpeed overrides the wheel scroll speed (px per unit).
	WheelSpeed float64
	// DragDeadZone overrides the minimum movement before a drag starts.
	DragDeadZone float64
	// Friction overrides the momentum decay coefficient (1/s).
	Friction float64
}

// syntheticScrollEvent is a single injected input event. Injected events
// are consumed one per Update, bypassing real device input, so automated
// tests can script scrolling without a window.
type syntheticScrollEvent struct {
	wheel   float64
	y       float64
	pressed bool
	isWheel bool
}

// ScrollView is an Ebitengine-backed vertical scroll surface with a sticky
// header overlay. It owns a Controller, implements ScrollSurface for it,
// translates wheel and pointer input into scroll motion with momentum
// physics, and paints the overlay through the Draw* callbacks.
//
// Wire it into an ebiten.Game by calling Update each tick and Draw each
// frame, the same shape as any retained-mode scene object.
type ScrollView struct {
	ctrl   *Controller
	ticker FrameTicker

	viewport Rect
	extent   float64
	reverse  bool
	spacing  float64
	offset   float64

	wheelSpeed   float64
	dragDeadZone float64
	footerBand   float64
	friction     float64

	// One-axis pointer drag machine.
	down       bool
	dragging   bool
	footerDrag bool
	startY     float64
	lastY      float64
	velocity   float64 // px/s of the most recent move

	// Surface fling (drag release momentum).
	fling     Simulation
	flingTime float64

	// Scroll-end detection.
	prevOffset float64
	wasMoving  bool

	injectQueue []syntheticScrollEvent
	script      *ScriptRunner

	// DrawContent paints the scrolled content for the current offset.
	DrawContent func(screen *ebiten.Image, offset float64)
	// DrawHeader paints the sticky header at its slot position y (the
	// header's leading edge in screen space, already shifted by the
	// hand-off transition).
	DrawHeader func(screen *ebiten.Image, snap HeaderSnapshot, y float64)
	// DrawFooter paints the footer preview overlay at its band position.
	DrawFooter func(screen *ebiten.Image, snap HeaderSnapshot, y float64)

	debug       bool
	debugHandle CallbackHandle
	stats       debugStats
}

// NewScrollView creates a scroll view and its controller. The view attaches
// itself as the controller's host surface and tick source.
func NewScrollView(cfg ViewConfig) *ScrollView {
	v := &ScrollView{
		viewport:     cfg.Viewport,
		extent:       cfg.Extent,
		reverse:      cfg.Reverse,
		spacing:      cfg.Spacing,
		footerBand:   cfg.FooterBand,
		wheelSpeed:   cfg.WheelSpeed,
		dragDeadZone: cfg.DragDeadZone,
		friction:     cfg.Friction,
	}
	if v.wheelSpeed == 0 {
		v.wheelSpeed = defaultWheelSpeed
	}
	if v.dragDeadZone == 0 {
		v.dragDeadZone = defaultDragDeadZone
	}
	if v.friction == 0 {
		v.friction = defaultFriction
	}

	v.ctrl = NewController(Config{
		Spacing:               cfg.Spacing,
		JumpDuration:          cfg.JumpDuration,
		FooterContentResolver: cfg.FooterContentResolver,
	})
	v.ctrl.AttachHost(v)
	v.ctrl.SetTickSource(&v.ticker)
	return v
}

// Controller returns the view's sticky-header controller.
func (v *ScrollView) Controller() *Controller {
	return v.ctrl
}

// SetExtent updates the scrollable content length, re-clamping the offset.
func (v *ScrollView) SetExtent(extent float64) {
	v.extent = extent
	v.JumpTo(v.offset)
}

// SetDebugMode enables per-frame stats on stderr and the controller's
// debug checks.
func (v *ScrollView) SetDebugMode(enabled bool) {
	if enabled == v.debug {
		return
	}
	v.debug = enabled
	v.ctrl.SetDebugMode(enabled)
	if enabled {
		v.debugHandle = v.ctrl.OnChange(func(ChangeContext) { v.stats.broadcasts++ })
		return
	}
	v.debugHandle.Remove()
	v.debugHandle = CallbackHandle{}
}

// --- ScrollSurface ---

// CurrentOffset returns the current scroll position.
func (v *ScrollView) CurrentOffset() float64 {
	return v.offset
}

// Extent returns the total content length.
func (v *ScrollView) Extent() float64 {
	return v.extent
}

// Reversed reports whether the scroll axis is inverted.
func (v *ScrollView) Reversed() bool {
	return v.reverse
}

// maxOffset returns the largest reachable scroll offset.
func (v *ScrollView) maxOffset() float64 {
	m := v.extent - v.viewport.Height
	if m < 0 {
		m = 0
	}
	return m
}

// JumpTo repositions the surface immediately, clamps to the scrollable
// range, and feeds the controller's scroll notification.
func (v *ScrollView) JumpTo(offset float64) {
	if offset < 0 {
		offset = 0
	}
	if m := v.maxOffset(); offset > m {
		offset = m
	}
	v.offset = offset
	v.stats.scrollEvents++
	_ = v.ctrl.OnScrollPositionChanged(offset) // host is attached by construction
}

// CreateMomentumSimulation returns a friction simulation for a release at
// the given position and signed velocity, or nil when the velocity is too
// small to warrant motion or the release pushes against a boundary.
func (v *ScrollView) CreateMomentumSimulation(offset, velocity float64) Simulation {
	if math.Abs(velocity) < minFlingVelocity {
		return nil
	}
	if (offset <= 0 && velocity < 0) || (offset >= v.maxOffset() && velocity > 0) {
		return nil
	}
	return NewFrictionSimulation(offset, velocity, v.friction, 0, v.maxOffset())
}

// --- Input injection (for automated tests and scripts) ---

// InjectWheel queues a synthetic wheel event with the given vertical wheel
// delta. Consumed on the next Update.
func (v *ScrollView) InjectWheel(dy float64) {
	v.injectQueue = append(v.injectQueue, syntheticScrollEvent{wheel: dy, isWheel: true})
}

// InjectPress queues a synthetic pointer press at viewport y.
func (v *ScrollView) InjectPress(y float64) {
	v.injectQueue = append(v.injectQueue, syntheticScrollEvent{y: y, pressed: true})
}

// InjectMove queues a synthetic pointer move with the button held down.
func (v *ScrollView) InjectMove(y float64) {
	v.injectQueue = append(v.injectQueue, syntheticScrollEvent{y: y, pressed: true})
}

// InjectRelease queues a synthetic pointer release at viewport y.
func (v *ScrollView) InjectRelease(y float64) {
	v.injectQueue = append(v.injectQueue, syntheticScrollEvent{y: y, pressed: false})
}

// InjectDrag queues a full drag sequence: press at fromY, linearly
// interpolated moves, release at toY. Consumes frames Updates in total;
// minimum is 2 (press + release).
func (v *ScrollView) InjectDrag(fromY, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	v.InjectPress(fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		v.InjectMove(fromY + (toY-fromY)*t)
	}
	v.InjectRelease(toY)
}

// --- Frame loop ---

// Update processes input, advances animations, and pumps the tick source.
// Call once per ebiten tick.
func (v *ScrollView) Update() {
	dt := 1.0 / float64(ebiten.TPS())

	var t0 time.Time
	if v.debug {
		t0 = time.Now()
		v.stats = debugStats{}
	}

	if v.script != nil {
		v.script.step(v)
	}
	if !v.processInjectedInput(dt) {
		v.processRealInput(dt)
	}
	v.advanceFling(dt)
	v.ticker.Tick(dt)
	v.detectScrollEnd()

	if v.debug {
		v.stats.resolveTime = time.Since(t0)
		debugLog(v.stats)
	}
}

// processInjectedInput pops one synthetic event from the queue and feeds it
// through the same machine as real input. Returns true if an event was
// consumed (real device input is skipped that frame).
func (v *ScrollView) processInjectedInput(dt float64) bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	if evt.isWheel {
		v.applyWheel(evt.wheel)
		return true
	}
	v.processPointer(evt.y, evt.pressed, dt)
	return true
}

// processRealInput reads the mouse wheel and pointer from ebiten.
func (v *ScrollView) processRealInput(dt float64) {
	if _, wy := ebiten.Wheel(); wy != 0 {
		v.applyWheel(wy)
	}
	_, cy := ebiten.CursorPosition()
	y := float64(cy) - v.viewport.Y
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if pressed || v.down {
		v.processPointer(y, pressed, dt)
	}
}

// applyWheel converts a wheel delta into an immediate scroll jump.
// Wheel-down advances the content on a normal axis and retreats on a
// reversed one.
func (v *ScrollView) applyWheel(wy float64) {
	delta := -wy * v.wheelSpeed
	if v.reverse {
		delta = -delta
	}
	v.stopFling()
	v.JumpTo(v.offset + delta)
}

// processPointer runs the one-axis drag state machine. Drags inside the
// footer band route to the controller's footer synchronizer; everywhere
// else the content follows the pointer directly, with a fling on release.
func (v *ScrollView) processPointer(y float64, pressed bool, dt float64) {
	switch {
	case pressed && !v.down:
		v.down = true
		v.dragging = false
		v.footerDrag = v.inFooterBand(y)
		v.startY = y
		v.lastY = y
		v.velocity = 0
		v.stopFling()

	case pressed && v.down:
		dy := y - v.lastY
		if !v.dragging && math.Abs(y-v.startY) > v.dragDeadZone {
			v.dragging = true
			if v.footerDrag {
				v.ctrl.FooterDragStart()
			}
		}
		if v.dragging && dy != 0 {
			if v.footerDrag {
				_ = v.ctrl.FooterDragBy(dy)
			} else {
				v.dragContentBy(dy)
			}
			v.velocity = dy / dt
		}
		v.lastY = y

	case !pressed && v.down:
		if v.dragging {
			if v.footerDrag {
				_ = v.ctrl.FooterDragEnd(v.velocity)
			} else {
				v.releaseContentDrag()
			}
		}
		v.down = false
		v.dragging = false
		v.footerDrag = false
	}
}

// inFooterBand reports whether viewport y falls inside the footer's drag
// hit band at the far edge.
func (v *ScrollView) inFooterBand(y float64) bool {
	if v.footerBand <= 0 {
		return false
	}
	if v.reverse {
		return y >= 0 && y <= v.footerBand
	}
	return y >= v.viewport.Height-v.footerBand && y <= v.viewport.Height
}

// dragContentBy scrolls the content under a direct surface drag: the
// content follows the pointer, so the offset moves opposite the delta.
func (v *ScrollView) dragContentBy(dy float64) {
	if v.reverse {
		v.JumpTo(v.offset + dy)
		return
	}
	v.JumpTo(v.offset - dy)
}

// releaseContentDrag converts the measured pointer velocity into a
// surface fling through the view's own momentum physics.
func (v *ScrollView) releaseContentDrag() {
	vel := -v.velocity
	if v.reverse {
		vel = v.velocity
	}
	sim := v.CreateMomentumSimulation(v.offset, vel)
	if sim == nil {
		return
	}
	v.fling = sim
	v.flingTime = 0
}

// advanceFling steps the surface's own fling animation.
func (v *ScrollView) advanceFling(dt float64) {
	if v.fling == nil {
		return
	}
	v.flingTime += dt
	v.JumpTo(v.fling.Position(v.flingTime))
	if v.fling.Done(v.flingTime) {
		v.stopFling()
	}
}

// stopFling cancels the surface fling.
func (v *ScrollView) stopFling() {
	v.fling = nil
	v.flingTime = 0
}

// detectScrollEnd fires the controller's scroll-end notification once all
// motion — drags, flings, and jump ticks — has settled.
func (v *ScrollView) detectScrollEnd() {
	moving := v.offset != v.prevOffset || v.dragging || v.fling != nil ||
		v.ctrl.FooterFlinging() || v.ticker.Pending() > 0
	if v.wasMoving && !moving {
		v.ctrl.OnScrollEnd()
	}
	v.wasMoving = moving
	v.prevOffset = v.offset
}

// --- Drawing ---

// Draw paints the content and the sticky overlay. Call once per ebiten
// frame. Painting is entirely callback-driven; the view only decides where
// the sticky slot sits and how far the hand-off has progressed.
func (v *ScrollView) Draw(screen *ebiten.Image) {
	if v.DrawContent != nil {
		v.DrawContent(screen, v.offset)
	}

	active := v.ctrl.ActiveHeader()
	if !active.None() && active.Visible && v.DrawHeader != nil {
		v.DrawHeader(screen, active, v.headerSlotY(active))
	}

	footer := v.ctrl.FooterHeader()
	if footer.Visible && v.DrawFooter != nil {
		v.DrawFooter(screen, footer, v.footerSlotY())
	}
}

// headerSlotY computes the active header's leading edge in screen space.
// Fully pinned, the header sits at the sticky slot (spacing from the
// scroll edge); during hand-off the incoming header pushes it out by the
// remainder of its extent.
func (v *ScrollView) headerSlotY(snap HeaderSnapshot) float64 {
	extent := 0.0
	if slot := v.ctrl.reg.entry(snap.Index); slot != nil {
		extent = slot.Extent
	}
	shift := (1 - snap.StickyAmount) * extent
	if v.reverse {
		return v.viewport.Y + v.viewport.Height - v.spacing - extent + shift
	}
	return v.viewport.Y + v.spacing - shift
}

// footerSlotY computes the footer band's leading edge in screen space.
func (v *ScrollView) footerSlotY() float64 {
	if v.reverse {
		return v.viewport.Y
	}
	return v.viewport.Y + v.viewport.Height - v.footerBand
}

// Dispose releases the view's controller. Safe to call more than once.
func (v *ScrollView) Dispose() {
	v.stopFling()
	v.ctrl.Dispose()
}

// --- Momentum physics ---

// FrictionSimulation is an exponential-decay momentum curve: velocity
// decays by the friction coefficient each second and the position
// asymptotically approaches its natural stopping point, clamped to the
// scrollable range.
type FrictionSimulation struct {
	start    float64
	v0       float64
	friction float64
	min, max float64
}

// NewFrictionSimulation creates a friction simulation starting at offset
// with the given signed velocity in px/s, clamped to [min, max].
func NewFrictionSimulation(offset, velocity, friction, min, max float64) *FrictionSimulation {
	return &FrictionSimulation{
		start:    offset,
		v0:       velocity,
		friction: friction,
		min:      min,
		max:      max,
	}
}

// Position returns the offset at time t.
func (s *FrictionSimulation) Position(t float64) float64 {
	x := s.start + s.v0/s.friction*(1-math.Exp(-s.friction*t))
	if x < s.min {
		return s.min
	}
	if x > s.max {
		return s.max
	}
	return x
}

// Velocity returns the signed velocity at time t.
func (s *FrictionSimulation) Velocity(t float64) float64 {
	return s.v0 * math.Exp(-s.friction*t)
}

// Done reports whether the simulation has settled: velocity below the
// settle tolerance or position pinned at a boundary.
func (s *FrictionSimulation) Done(t float64) bool {
	if math.Abs(s.Velocity(t)) < settleVelocity {
		return true
	}
	x := s.start + s.v0/s.friction*(1-math.Exp(-s.friction*t))
	return x <= s.min || x >= s.max
}
