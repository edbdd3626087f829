package placard

import (
	"fmt"
	"sort"
)

// headerSlot is a registered entry plus its offset cache. The cache is only
// consulted for entries with PerformancePriority set.
type headerSlot struct {
	HeaderEntry
	cachedOffset float64
	offsetCached bool
}

// offset resolves the slot's current scroll-axis offset. Direct Pixels
// entries are free; OffsetFunc entries either run the function every query
// or, with PerformancePriority, run it once and cache.
func (s *headerSlot) offset() float64 {
	if s.OffsetFunc == nil {
		return s.Pixels
	}
	if s.PerformancePriority {
		if !s.offsetCached {
			s.cachedOffset = s.OffsetFunc()
			s.offsetCached = true
		}
		return s.cachedOffset
	}
	return s.OffsetFunc()
}

// headerRegistry is an ordered store of header entries keyed by index.
// Entries are kept sorted by index; resolved offsets are assumed
// nondecreasing in index order, mirroring a list laid out along the scroll
// axis. The registry is owned by a single Controller and never shared.
type headerRegistry struct {
	slots []headerSlot // sorted by Index
}

// slotPosition returns the position of index in the sorted slice and
// whether it is present.
func (r *headerRegistry) slotPosition(index int) (int, bool) {
	i := sort.Search(len(r.slots), func(i int) bool {
		return r.slots[i].Index >= index
	})
	return i, i < len(r.slots) && r.slots[i].Index == index
}

// register inserts an entry, keeping the slice sorted by index.
// Rejects duplicate indices and invalid parent references: a set parent
// must already be registered and have a strictly smaller index.
func (r *headerRegistry) register(e HeaderEntry) error {
	i, present := r.slotPosition(e.Index)
	if present {
		return fmt.Errorf("register header %d: %w", e.Index, ErrDuplicateIndex)
	}
	if err := r.validateParent(e); err != nil {
		return err
	}
	r.slots = append(r.slots, headerSlot{})
	copy(r.slots[i+1:], r.slots[i:])
	r.slots[i] = headerSlot{HeaderEntry: e}
	return nil
}

// validateParent checks the parent invariant for e.
func (r *headerRegistry) validateParent(e HeaderEntry) error {
	if e.ParentIndex == NoHeader {
		return nil
	}
	if e.ParentIndex >= e.Index {
		return fmt.Errorf("register header %d: parent %d not smaller: %w",
			e.Index, e.ParentIndex, ErrInvalidParent)
	}
	if _, ok := r.slotPosition(e.ParentIndex); !ok {
		return fmt.Errorf("register header %d: parent %d not registered: %w",
			e.Index, e.ParentIndex, ErrInvalidParent)
	}
	return nil
}

// unregister removes the entry at index. Unknown indices are a no-op: the
// mount/unmount window can race past an entry that was never accepted.
// Uses copy+zero removal to avoid retaining stale closures in the backing
// array.
func (r *headerRegistry) unregister(index int) {
	i, present := r.slotPosition(index)
	if !present {
		return
	}
	copy(r.slots[i:], r.slots[i+1:])
	r.slots[len(r.slots)-1] = headerSlot{}
	r.slots = r.slots[:len(r.slots)-1]
}

// update applies a partial mutation to the entry at index via fn. The
// index key and parent invariant are revalidated afterwards; a violating
// mutation is rolled back and reported.
func (r *headerRegistry) update(index int, fn func(*HeaderEntry)) error {
	i, present := r.slotPosition(index)
	if !present {
		return fmt.Errorf("update header %d: %w", index, ErrUnknownHeader)
	}
	slot := &r.slots[i]
	prev := slot.HeaderEntry
	fn(&slot.HeaderEntry)
	if slot.Index != index {
		slot.HeaderEntry = prev
		return fmt.Errorf("update header %d: index is immutable: %w", index, ErrUnknownHeader)
	}
	if err := r.validateParentUpdate(i); err != nil {
		slot.HeaderEntry = prev
		return err
	}
	// Geometry may have changed; drop the offset cache.
	slot.offsetCached = false
	return nil
}

// validateParentUpdate checks the parent invariant for the slot at position i,
// excluding the slot itself from the existence lookup.
func (r *headerRegistry) validateParentUpdate(i int) error {
	e := r.slots[i].HeaderEntry
	if e.ParentIndex == NoHeader {
		return nil
	}
	if e.ParentIndex >= e.Index {
		return fmt.Errorf("update header %d: parent %d not smaller: %w",
			e.Index, e.ParentIndex, ErrInvalidParent)
	}
	if _, ok := r.slotPosition(e.ParentIndex); !ok {
		return fmt.Errorf("update header %d: parent %d not registered: %w",
			e.Index, e.ParentIndex, ErrInvalidParent)
	}
	return nil
}

// entry returns the slot for index, or nil.
func (r *headerRegistry) entry(index int) *headerSlot {
	i, present := r.slotPosition(index)
	if !present {
		return nil
	}
	return &r.slots[i]
}

// entryAtOrBefore returns the entry with the largest resolved offset <=
// offset, or nil when no entry lies at or before it. Binary search over the
// index-sorted slice; the rightmost match makes the larger index win when
// two entries share an offset.
func (r *headerRegistry) entryAtOrBefore(offset float64) *headerSlot {
	i := sort.Search(len(r.slots), func(i int) bool {
		return r.slots[i].offset() > offset
	})
	if i == 0 {
		return nil
	}
	return &r.slots[i-1]
}

// entryAfter returns the entry with the smallest index strictly greater
// than index, regardless of visibility, or nil.
func (r *headerRegistry) entryAfter(index int) *headerSlot {
	i := sort.Search(len(r.slots), func(i int) bool {
		return r.slots[i].Index > index
	})
	if i == len(r.slots) {
		return nil
	}
	return &r.slots[i]
}

// len returns the number of registered entries.
func (r *headerRegistry) len() int {
	return len(r.slots)
}

// linearAtOrBefore is the brute-force reference for entryAtOrBefore, used
// by tests to validate the binary search. Not a production path.
func (r *headerRegistry) linearAtOrBefore(offset float64) *headerSlot {
	var best *headerSlot
	for i := range r.slots {
		s := &r.slots[i]
		if s.offset() <= offset {
			best = s
		}
	}
	return best
}
