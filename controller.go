package placard

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// defaultJumpDuration is the jump-to-header animation length in seconds
// when Config.JumpDuration is zero.
const defaultJumpDuration = 0.3

// Config configures a Controller at construction.
type Config struct {
	// Spacing offsets the sticky slot from the scroll edge, in pixels.
	Spacing float64

	// Reverse inverts the scroll axis sign conventions. Nil inherits the
	// host surface's own direction.
	Reverse *bool

	// JumpDuration is the JumpToHeader animation length in seconds.
	// Zero means the default; negative disables animation (jumps snap).
	JumpDuration float64

	// FooterContentResolver supplies footer preview content per header
	// index. Nil leaves every footer snapshot invisible.
	FooterContentResolver FooterContentResolver
}

// ChangeContext carries the recomputed snapshots delivered to change
// listeners. One notification covers all three; listeners diff what they
// care about.
type ChangeContext struct {
	Active HeaderSnapshot
	Footer HeaderSnapshot
	Child  HeaderSnapshot
}

type changeHandler struct {
	id uint32
	fn func(ChangeContext)
}

// CallbackHandle allows removing a registered change listener.
type CallbackHandle struct {
	id   uint32
	ctrl *Controller
}

// Remove unregisters this listener so it no longer fires. Removing an
// already-removed handle is a no-op.
func (h CallbackHandle) Remove() {
	if h.ctrl == nil {
		return
	}
	s := h.ctrl.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = changeHandler{}
			h.ctrl.handlers = s[:len(s)-1]
			return
		}
	}
}

// Controller owns the header registry, recomputes sticky state on each
// scroll notification, caches the last snapshots, and broadcasts change
// notifications to listeners. It also owns the jump-to-index state machine
// and the footer drag synchronizer.
//
// A Controller is single-owner mutable state: all mutation goes through its
// methods, synchronously, on one logical thread. Construct it where the
// scrollable composition lives, pass it down explicitly, and Dispose it
// with the owner.
type Controller struct {
	reg headerRegistry

	host  ScrollSurface
	ticks TickSource

	spacing        float64
	reverse        *bool
	jumpDuration   float64
	footerResolver FooterContentResolver

	footer footerSync

	active     HeaderSnapshot
	footerSnap HeaderSnapshot
	child      HeaderSnapshot
	lastOffset float64

	handlers      []changeHandler
	nextHandlerID uint32
	notifying     bool

	jumping   bool
	jumpTween *gween.Tween

	// Scroll coalescing: the first update in a frame recomputes
	// synchronously; later ones defer to the post-frame callback.
	frameDirty    bool
	pendingOffset float64
	pendingValid  bool

	disposed bool
	debug    bool
}

// NewController creates a controller with the given configuration. Attach a
// host with AttachHost before delivering scroll or jump operations.
func NewController(cfg Config) *Controller {
	c := &Controller{
		spacing:        cfg.Spacing,
		reverse:        cfg.Reverse,
		jumpDuration:   cfg.JumpDuration,
		footerResolver: cfg.FooterContentResolver,
		active:         emptySnapshot,
		footerSnap:     emptySnapshot,
		child:          emptySnapshot,
	}
	if c.jumpDuration == 0 {
		c.jumpDuration = defaultJumpDuration
	}
	c.footer.ctrl = c
	return c
}

// AttachHost connects the host scroll surface the controller drives.
func (c *Controller) AttachHost(host ScrollSurface) {
	c.host = host
}

// SetTickSource connects the frame tick source used for scroll coalescing
// and for jump and fling animations. Without one, scroll updates all
// recompute synchronously and jumps snap instead of animating.
func (c *Controller) SetTickSource(ticks TickSource) {
	c.ticks = ticks
}

// SetDebugMode enables debug checks: mutating the registry from inside a
// change listener panics instead of being silently undefined.
func (c *Controller) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// reversed resolves the effective axis direction.
func (c *Controller) reversed() bool {
	if c.reverse != nil {
		return *c.reverse
	}
	if c.host != nil {
		return c.host.Reversed()
	}
	return false
}

// --- Registry operations ---

// Register adds a header entry. The entry is rejected — and not added —
// when its index is already present or its parent reference is invalid, so
// a rendered header can never silently desync from sticky state.
func (c *Controller) Register(e HeaderEntry) error {
	if c.debug {
		debugCheckNotNotifying(c, "Register")
	}
	if err := c.reg.register(e); err != nil {
		return err
	}
	c.recompute(c.lastOffset, false)
	return nil
}

// Unregister removes the header at index, typically on widget unmount.
// Unknown indices are a no-op.
func (c *Controller) Unregister(index int) {
	if c.debug {
		debugCheckNotNotifying(c, "Unregister")
	}
	c.reg.unregister(index)
	c.recompute(c.lastOffset, false)
}

// UpdateEntry applies a partial mutation to the entry at index. The index
// itself is immutable; parent invariants are revalidated and violating
// mutations rolled back. A successful update always broadcasts, since
// content changes are invisible to snapshot diffing.
func (c *Controller) UpdateEntry(index int, fn func(*HeaderEntry)) error {
	if c.debug {
		debugCheckNotNotifying(c, "UpdateEntry")
	}
	if err := c.reg.update(index, fn); err != nil {
		return err
	}
	c.recompute(c.lastOffset, true)
	return nil
}

// NumHeaders returns the number of registered headers.
func (c *Controller) NumHeaders() int {
	return c.reg.len()
}

// --- Scroll notifications ---

// OnScrollPositionChanged recomputes sticky state for the new offset and
// broadcasts one change notification when any snapshot differs from its
// cached predecessor. Recomputation is coalesced to at most once per
// rendered frame: with a tick source attached, updates beyond the first in
// a frame are deferred to a post-frame callback.
func (c *Controller) OnScrollPositionChanged(offset float64) error {
	if c.host == nil {
		return ErrNoHost
	}
	if c.frameDirty {
		c.pendingOffset = offset
		c.pendingValid = true
		return nil
	}
	c.recompute(offset, false)
	if c.ticks != nil {
		c.frameDirty = true
		c.ticks.Schedule(c.endFrame)
	}
	return nil
}

// OnScrollEnd signals that scroll motion — from user scrolling or a jump —
// has settled. Returns the jump state machine to idle.
func (c *Controller) OnScrollEnd() {
	c.jumping = false
	c.jumpTween = nil
}

// endFrame closes the coalescing window and flushes a deferred update.
func (c *Controller) endFrame(float64) {
	c.frameDirty = false
	if c.pendingValid {
		c.pendingValid = false
		c.recompute(c.pendingOffset, false)
	}
}

// recompute re-derives all three snapshots for offset and broadcasts when
// anything changed by value (or force is set).
func (c *Controller) recompute(offset float64, force bool) {
	c.lastOffset = offset

	active := resolveActive(&c.reg, offset, c.spacing)
	child := resolveChild(&c.reg, active)
	footer := resolveFooter(&c.reg, active, c.footerResolver)

	changed := force ||
		!equalSnapshots(active, c.active) ||
		!equalSnapshots(child, c.child) ||
		!equalSnapshots(footer, c.footerSnap)

	c.active = active
	c.child = child
	c.footerSnap = footer

	if changed {
		c.broadcast()
	}
}

// broadcast delivers one change notification to every listener.
// Listener callbacks must not mutate the registry; defer such mutations to
// the next tick.
func (c *Controller) broadcast() {
	ctx := ChangeContext{Active: c.active, Footer: c.footerSnap, Child: c.child}
	c.notifying = true
	for _, h := range c.handlers {
		if h.fn != nil {
			h.fn(ctx)
		}
	}
	c.notifying = false
}

// --- Pull accessors ---

// ActiveHeader returns the last-computed sticky header snapshot.
func (c *Controller) ActiveHeader() HeaderSnapshot {
	return c.active
}

// FooterHeader returns the last-computed footer preview snapshot.
func (c *Controller) FooterHeader() HeaderSnapshot {
	return c.footerSnap
}

// ChildHeaderInfo returns the last-computed child sticky snapshot, or the
// "no header" snapshot when the active header has no parent group.
func (c *Controller) ChildHeaderInfo() HeaderSnapshot {
	return c.child
}

// --- Listeners ---

// OnChange registers a change listener and returns its removal handle.
// Notification is synchronous; one call covers all snapshot changes of a
// recomputation. Panics if fn is nil.
func (c *Controller) OnChange(fn func(ChangeContext)) CallbackHandle {
	if fn == nil {
		panic("placard: nil change callback")
	}
	c.nextHandlerID++
	id := c.nextHandlerID
	c.handlers = append(c.handlers, changeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, ctrl: c}
}

// --- Jump state machine ---

// JumpToHeader animates the host's scroll position to the entry at index.
// A new jump supersedes a prior in-flight one; there is no queue. The
// controller stays in the jumping state until the host delivers
// OnScrollEnd, so dependent UI can tell jump-driven scroll events from
// user-initiated ones.
func (c *Controller) JumpToHeader(index int) error {
	if c.host == nil {
		return ErrNoHost
	}
	slot := c.reg.entry(index)
	if slot == nil {
		return fmt.Errorf("jump to header %d: %w", index, ErrUnknownHeader)
	}

	target := slot.offset()
	c.jumping = true

	if c.ticks == nil || c.jumpDuration <= 0 {
		c.jumpTween = nil
		c.host.JumpTo(target)
		return nil
	}

	tween := gween.New(float32(c.host.CurrentOffset()), float32(target),
		float32(c.jumpDuration), ease.OutQuad)
	c.jumpTween = tween
	c.ticks.Schedule(func(dt float64) { c.jumpTick(tween, dt) })
	return nil
}

// jumpTick advances the jump animation by one frame. A stale tween means
// this jump was superseded or the motion settled.
func (c *Controller) jumpTick(tween *gween.Tween, dt float64) {
	if !c.jumping || c.jumpTween != tween {
		return
	}
	v, done := tween.Update(float32(dt))
	c.host.JumpTo(float64(v))
	if done {
		// Hold the jumping state until the host reports scroll end.
		c.jumpTween = nil
		return
	}
	c.ticks.Schedule(func(dt float64) { c.jumpTick(tween, dt) })
}

// IsJumping reports whether a programmatic jump is in flight (the host has
// not yet delivered its scroll-end notification).
func (c *Controller) IsJumping() bool {
	return c.jumping
}

// --- Footer drag surface ---

// FooterDragStart begins a footer drag, stopping any in-flight fling
// before the drag's jumps begin.
func (c *Controller) FooterDragStart() {
	c.footer.dragStart()
}

// FooterDragBy applies one drag delta in pixels along the scroll axis,
// jumping the host immediately — the footer behaves as a direct scroll
// handle.
func (c *Controller) FooterDragBy(delta float64) error {
	return c.footer.dragBy(delta)
}

// FooterDragEnd releases the footer drag with the measured velocity in
// px/s and hands off to the host's momentum physics.
func (c *Controller) FooterDragEnd(velocity float64) error {
	return c.footer.dragEnd(velocity)
}

// FooterFlinging reports whether a footer release animation is in flight.
func (c *Controller) FooterFlinging() bool {
	return c.footer.flinging()
}

// --- Disposal ---

// Dispose stops animations, drops all listeners, and detaches the
// controller from its host and tick source. Safe to call more than once.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.footer.stopFling()
	c.jumping = false
	c.jumpTween = nil
	c.handlers = nil
	c.host = nil
	c.ticks = nil
}

// IsDisposed reports whether Dispose has been called.
func (c *Controller) IsDisposed() bool {
	return c.disposed
}
