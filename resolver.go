package placard

// resolveActive maps a scroll offset to the currently sticky header.
//
// spacing shifts the sticky slot away from the scroll edge, so the search
// position is offset+spacing. The selected entry is the one whose leading
// edge lies at or before that position, with the largest such offset; its
// StickyAmount is 1 while fully pinned and falls linearly to 0 as the next
// entry's leading edge crosses its own extent toward the slot:
//
//	amount = clamp((next.offset - offset - spacing) / next.Extent, 0, 1)
//
// A next entry with no positive extent snaps (the amount stays 1 until the
// hand-off). The last registered entry stays fully stuck once reached. An
// entry registered with Visible false still drives the math but the
// snapshot reports Visible false, suppressing rendering without breaking
// amount continuity.
func resolveActive(reg *headerRegistry, offset, spacing float64) HeaderSnapshot {
	pos := offset + spacing
	cur := reg.entryAtOrBefore(pos)
	if cur == nil {
		return emptySnapshot
	}

	amount := 1.0
	if nxt := reg.entryAfter(cur.Index); nxt != nil {
		if e := nxt.Extent; e > 0 {
			amount = clamp01((nxt.offset() - pos) / e)
		}
	}

	return HeaderSnapshot{
		Index:         cur.Index,
		Content:       cur.Content,
		StickyAmount:  amount,
		ParentIndex:   cur.ParentIndex,
		OverlapParent: cur.OverlapParent,
		Visible:       cur.Visible,
	}
}

// resolveChild derives the parent/child sticky relationship from the active
// snapshot. When the active header belongs to a parent group it returns a
// snapshot identical in shape but scoped to the child, for consumption by
// the parent header's builder (so a parent's displayed content can react to
// which child is currently active and by how much). OverlapParent rides
// along as a rendering hint; it never changes which header is selected.
//
// Relations resolve by index lookup at query time — the registry is the
// single owner of entries and no back-references are stored.
func resolveChild(reg *headerRegistry, active HeaderSnapshot) HeaderSnapshot {
	if active.None() || active.ParentIndex == NoHeader {
		return emptySnapshot
	}
	if reg.entry(active.ParentIndex) == nil {
		// Parent unmounted since the child registered; no group to report.
		return emptySnapshot
	}
	return active
}

// resolveFooter derives the preview of the header after the active one.
// Structural existence comes from the registry; visibility additionally
// requires the caller's content resolver to produce non-nil content for
// the index (a header that exists structurally but has no footer preview
// is legitimately invisible). The resolved content replaces the entry's
// own payload in the snapshot.
func resolveFooter(reg *headerRegistry, active HeaderSnapshot, resolver FooterContentResolver) HeaderSnapshot {
	if active.None() {
		return emptySnapshot
	}
	nxt := reg.entryAfter(active.Index)
	if nxt == nil {
		return emptySnapshot
	}

	var content any
	if resolver != nil {
		content = resolver(nxt.Index)
	}
	return HeaderSnapshot{
		Index:         nxt.Index,
		Content:       content,
		StickyAmount:  1 - active.StickyAmount,
		ParentIndex:   nxt.ParentIndex,
		OverlapParent: nxt.OverlapParent,
		Visible:       nxt.Visible && content != nil,
	}
}
