// Package placard pins sticky headers to the edge of a scrollable surface.
//
// Among a set of headers registered at known positions along the scroll
// axis, exactly one — the one whose region spans the scroll edge — is held
// in the sticky slot, with a smooth hand-off as scrolling crosses from one
// header's region into the next. Placard decides only *which* header is
// active and *how far* its transition has progressed; painting stays with
// the caller.
//
// # Quick start
//
// Create a [Controller], attach a host surface, and register headers as
// they enter the registration window:
//
//	ctrl := placard.NewController(placard.Config{Spacing: 0})
//	ctrl.AttachHost(surface)
//
//	h := placard.NewHeader(0, 0)
//	h.Extent = 48
//	h.Content = "Contacts"
//	if err := ctrl.Register(h); err != nil { ... }
//
// On every scroll position update, feed the controller and read the
// snapshots back:
//
//	ctrl.OnScrollPositionChanged(offset)
//	active := ctrl.ActiveHeader()
//	footer := ctrl.FooterHeader()
//
// For Ebitengine hosts, [ScrollView] is a ready-made surface that owns a
// Controller, handles wheel and drag input with momentum physics, and
// paints the sticky overlay through caller-supplied draw callbacks:
//
//	view := placard.NewScrollView(placard.ViewConfig{
//		Viewport: placard.Rect{Width: 480, Height: 640},
//		Extent:   4000,
//	})
//	view.DrawHeader = func(screen *ebiten.Image, snap placard.HeaderSnapshot, y float64) { ... }
//
// # Grouping and footers
//
// A header may name a parent header ([HeaderEntry.ParentIndex]); while a
// child is active the controller also exposes a child snapshot via
// [Controller.ChildHeaderInfo] so the parent's builder can react to it.
// The footer overlay previews the *next* header and can itself be dragged
// as a direct scroll handle; releases run through the host's own momentum
// physics so the feel matches native scrolling.
//
// Placard is single-threaded and event-driven: every operation runs
// synchronously inside a host-delivered event (scroll update, drag delta,
// frame tick) and completes within it. Change listeners registered with
// [Controller.OnChange] must not mutate the registry from inside the
// callback; defer such mutations to the next tick.
package placard
