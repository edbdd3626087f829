package placard

import "errors"

// NoHeader is the sentinel index meaning "no header". It is the value of
// [HeaderSnapshot.Index] when nothing is pinned and of
// [HeaderEntry.ParentIndex] when an entry has no parent.
const NoHeader = -1

// Registration and operation errors. All are recoverable: the engine never
// fails fatally into the host's rendering pipeline.
var (
	// ErrDuplicateIndex is returned by Register when the index is already present.
	ErrDuplicateIndex = errors.New("placard: duplicate header index")
	// ErrInvalidParent is returned when ParentIndex does not reference an
	// already-registered entry with a strictly smaller index.
	ErrInvalidParent = errors.New("placard: invalid parent index")
	// ErrUnknownHeader is returned for operations on an unregistered index.
	ErrUnknownHeader = errors.New("placard: unknown header index")
	// ErrNoHost is returned when a scroll or jump operation runs before a
	// host surface is attached.
	ErrNoHost = errors.New("placard: no host surface attached")
)

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HeaderEntry is one registered header. Entries are registered as header
// widgets enter the registration window (mount) and unregistered on
// unmount, so the registry is a sparse, dynamically changing view of only
// the currently-known headers, not the full logical list.
type HeaderEntry struct {
	// Index is the unique, caller-assigned position key. Indices need not
	// be contiguous; ordering is by numeric value, not registration order.
	Index int

	// Pixels is the scroll-axis position of this header's leading edge,
	// in scroll pixels. Ignored when OffsetFunc is set.
	Pixels float64

	// OffsetFunc, when non-nil, derives the offset from layout geometry at
	// query time. With PerformancePriority set the first result is cached
	// and reused; otherwise the function runs on every query (slower, but
	// correct under dynamic layout).
	OffsetFunc func() float64

	// Extent is this header's rendered size along the scroll axis. It
	// drives the hand-off transition when this entry is the incoming
	// header: the outgoing header's StickyAmount falls from 1 to 0 as this
	// entry's leading edge crosses its own extent toward the sticky slot.
	// Zero or negative means the hand-off snaps.
	Extent float64

	// Visible excludes the header from being rendered as sticky when
	// false. The resolver still tracks it internally so transition math
	// stays continuous.
	Visible bool

	// ParentIndex optionally nests this header under a parent header
	// group. NoHeader means no parent. A set parent must reference an
	// already-registered entry with a strictly smaller index.
	ParentIndex int

	// OverlapParent is a rendering hint: when true, the child's sticky
	// transition stacks visually on top of the parent's sticky slot rather
	// than replacing its content. It never changes which header is selected.
	OverlapParent bool

	// PerformancePriority caches the OffsetFunc result once known instead
	// of re-deriving it every frame.
	PerformancePriority bool

	// Content is an opaque caller-owned payload carried through snapshots
	// untouched.
	Content any
}

// NewHeader creates a header entry at the given index and scroll offset
// with the default field values (visible, no parent).
func NewHeader(index int, offset float64) HeaderEntry {
	return HeaderEntry{
		Index:       index,
		Pixels:      offset,
		Visible:     true,
		ParentIndex: NoHeader,
	}
}

// HeaderSnapshot is the engine's per-tick output: the header currently
// pinned at the scroll edge and its transition progress. The same shape
// describes the footer preview (the *next* header) and the child sticky
// info emitted while a grouped child is active.
type HeaderSnapshot struct {
	// Index is the snapshot's header index, or NoHeader when nothing is
	// pinned.
	Index int

	// Content is the entry's opaque payload. For footer snapshots it is
	// the value returned by the configured FooterContentResolver.
	Content any

	// StickyAmount is the transition progress in [0, 1]. 1 means fully
	// pinned; it falls toward 0 as the next header pushes this one out of
	// the sticky slot. 0 with Index == NoHeader means no header is pinned.
	StickyAmount float64

	// ParentIndex is the entry's parent group index, or NoHeader.
	ParentIndex int

	// OverlapParent passes through the entry's rendering hint.
	OverlapParent bool

	// Visible reports whether the snapshot should be rendered. An entry
	// registered with Visible false still drives the transition math but
	// reports false here.
	Visible bool
}

// None reports whether the snapshot describes "no header".
func (s HeaderSnapshot) None() bool {
	return s.Index == NoHeader
}

// emptySnapshot is the "no active header" value.
var emptySnapshot = HeaderSnapshot{Index: NoHeader, ParentIndex: NoHeader}

// equalSnapshots compares two snapshots by value. Content is excluded:
// payloads may not be comparable, and content changes arrive through
// UpdateEntry, which forces a broadcast regardless.
func equalSnapshots(a, b HeaderSnapshot) bool {
	return a.Index == b.Index &&
		a.StickyAmount == b.StickyAmount &&
		a.ParentIndex == b.ParentIndex &&
		a.OverlapParent == b.OverlapParent &&
		a.Visible == b.Visible
}

// clamp01 clamps v to the unit interval.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
