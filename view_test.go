package placard

import (
	"math"
	"testing"
)

// testView builds a ScrollView over the shared three-header layout.
func testView(t *testing.T, cfg ViewConfig) *ScrollView {
	t.Helper()
	if cfg.Viewport.Height == 0 {
		cfg.Viewport = Rect{Width: 480, Height: 640}
	}
	if cfg.Extent == 0 {
		cfg.Extent = 5000
	}
	view := NewScrollView(cfg)
	for idx, off := range map[int]float64{0: 0, 1: 500, 2: 1200} {
		e := NewHeader(idx, off)
		e.Extent = 100
		if err := view.Controller().Register(e); err != nil {
			t.Fatalf("register(%d): %v", idx, err)
		}
	}
	return view
}

func TestViewClampsOffset(t *testing.T) {
	view := testView(t, ViewConfig{})
	view.JumpTo(-50)
	if view.CurrentOffset() != 0 {
		t.Errorf("offset = %v, want clamp at 0", view.CurrentOffset())
	}
	view.JumpTo(99999)
	if got, want := view.CurrentOffset(), 5000.0-640; got != want {
		t.Errorf("offset = %v, want clamp at %v", got, want)
	}
}

func TestViewJumpFeedsController(t *testing.T) {
	view := testView(t, ViewConfig{})
	view.JumpTo(650)
	active := view.Controller().ActiveHeader()
	if active.Index != 1 || active.StickyAmount != 1.0 {
		t.Errorf("active = %+v after JumpTo(650), want header 1 fully stuck", active)
	}
}

func TestViewMomentumSimulationGating(t *testing.T) {
	view := testView(t, ViewConfig{})
	if sim := view.CreateMomentumSimulation(300, 20); sim != nil {
		t.Error("simulation created below the minimum fling velocity")
	}
	if sim := view.CreateMomentumSimulation(0, -500); sim != nil {
		t.Error("simulation created pushing against the start boundary")
	}
	if sim := view.CreateMomentumSimulation(view.maxOffset(), 500); sim != nil {
		t.Error("simulation created pushing against the end boundary")
	}
	if sim := view.CreateMomentumSimulation(300, 500); sim == nil {
		t.Error("no simulation for a legitimate fling")
	}
}

func TestFrictionSimulation(t *testing.T) {
	sim := NewFrictionSimulation(100, 800, 4, 0, 10000)

	if got := sim.Position(0); !approxEqual(got, 100, epsilon) {
		t.Errorf("Position(0) = %v, want 100", got)
	}
	if got := sim.Velocity(0); !approxEqual(got, 800, epsilon) {
		t.Errorf("Velocity(0) = %v, want 800", got)
	}

	// Position advances monotonically, velocity decays.
	prev := sim.Position(0)
	for s := 0.1; s <= 3; s += 0.1 {
		p := sim.Position(s)
		if p < prev-epsilon {
			t.Fatalf("Position(%v) = %v went backwards from %v", s, p, prev)
		}
		prev = p
	}
	if !sim.Done(3) {
		t.Error("Done(3) = false, want settled")
	}
	// Natural stopping point: start + v0/friction.
	if got, want := sim.Position(10), 100.0+800.0/4; !approxEqual(got, want, 0.1) {
		t.Errorf("rest position = %v, want %v", got, want)
	}
}

func TestFrictionSimulationClampsAtBound(t *testing.T) {
	sim := NewFrictionSimulation(100, 800, 4, 0, 150)
	if got := sim.Position(5); got != 150 {
		t.Errorf("Position(5) = %v, want pinned at 150", got)
	}
	settled := false
	for s := 0.0; s <= 5; s += 0.01 {
		if sim.Done(s) {
			settled = true
			break
		}
	}
	if !settled {
		t.Error("simulation never settled against the boundary")
	}
}

func TestViewInjectWheel(t *testing.T) {
	view := testView(t, ViewConfig{})
	view.InjectWheel(-1) // wheel down
	view.Update()
	if got := view.CurrentOffset(); !approxEqual(got, defaultWheelSpeed, epsilon) {
		t.Errorf("offset = %v after wheel down, want %v", got, defaultWheelSpeed)
	}

	view.InjectWheel(1) // wheel up
	view.Update()
	if got := view.CurrentOffset(); !approxEqual(got, 0, epsilon) {
		t.Errorf("offset = %v after wheel up, want 0", got)
	}
}

func TestViewInjectDragScrollsAndFlings(t *testing.T) {
	view := testView(t, ViewConfig{})
	view.InjectDrag(500, 100, 6)
	for i := 0; i < 6; i++ {
		view.Update()
	}
	dragged := view.CurrentOffset()
	if dragged < 300 {
		t.Fatalf("offset = %v after dragging 400 px up, want at least the dead-zoned distance", dragged)
	}

	// The release fling keeps the content moving, then settles.
	for i := 0; i < 300; i++ {
		view.Update()
	}
	settled := view.CurrentOffset()
	if settled <= dragged {
		t.Errorf("offset = %v after fling, want beyond the drag's %v", settled, dragged)
	}
	view.Update()
	if view.CurrentOffset() != settled {
		t.Error("offset still moving after the fling settled")
	}
}

func TestViewFooterBandDragRoutesToFooter(t *testing.T) {
	view := testView(t, ViewConfig{
		FooterBand:            48,
		FooterContentResolver: func(int) any { return "next" },
	})
	view.JumpTo(650)
	start := view.CurrentOffset()

	// Drag upward starting inside the bottom band: footer deltas are
	// negative, the sign convention turns them into forward scrolling.
	view.InjectDrag(620, 520, 8)
	for i := 0; i < 8; i++ {
		view.Update()
	}
	if view.CurrentOffset() <= start {
		t.Errorf("offset = %v, want forward motion from a footer drag (start %v)",
			view.CurrentOffset(), start)
	}
}

func TestViewJumpToHeaderSettles(t *testing.T) {
	view := testView(t, ViewConfig{})
	ctrl := view.Controller()

	if err := ctrl.JumpToHeader(2); err != nil {
		t.Fatal(err)
	}
	if !ctrl.IsJumping() {
		t.Fatal("IsJumping = false right after JumpToHeader")
	}

	for i := 0; i < 120 && ctrl.IsJumping(); i++ {
		view.Update()
	}
	if ctrl.IsJumping() {
		t.Fatal("jump never settled")
	}
	if got := view.CurrentOffset(); math.Abs(got-1200) > 1 {
		t.Errorf("offset = %v after jump, want 1200", got)
	}
	if got := ctrl.ActiveHeader().Index; got != 2 {
		t.Errorf("active index = %d after jump, want 2", got)
	}
}

func TestViewHeaderSlotY(t *testing.T) {
	view := testView(t, ViewConfig{Spacing: 10})

	pinned := HeaderSnapshot{Index: 1, StickyAmount: 1, Visible: true}
	if got := view.headerSlotY(pinned); !approxEqual(got, 10, epsilon) {
		t.Errorf("slot y = %v fully pinned, want the spacing offset 10", got)
	}

	half := HeaderSnapshot{Index: 1, StickyAmount: 0.5, Visible: true}
	// Half handed off: pushed out by half the 100 px extent.
	if got := view.headerSlotY(half); !approxEqual(got, -40, epsilon) {
		t.Errorf("slot y = %v at half hand-off, want -40", got)
	}
}

func TestViewDisposeIdempotent(t *testing.T) {
	view := testView(t, ViewConfig{})
	view.Dispose()
	view.Dispose()
	if !view.Controller().IsDisposed() {
		t.Error("controller not disposed with the view")
	}
}
