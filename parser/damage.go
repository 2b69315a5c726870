// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: parser/damage.go
// Summary: Damage and cursor-movement tracking, consumed by polling.
// Usage: VTerm records every cell mutation and cursor change here; hosts
//        call Poll to fetch and clear the accumulated state.

package parser

// Pos is a zero-based grid position.
type Pos struct {
	Row, Col int
}

// Rect is a grid region. End coordinates are exclusive.
type Rect struct {
	StartRow, StartCol int
	EndRow, EndCol     int
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.StartRow >= r.EndRow || r.StartCol >= r.EndCol
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Rect{
		StartRow: min(r.StartRow, o.StartRow),
		StartCol: min(r.StartCol, o.StartCol),
		EndRow:   max(r.EndRow, o.EndRow),
		EndCol:   max(r.EndCol, o.EndCol),
	}
}

// Contains reports whether the position lies inside the rectangle.
func (r Rect) Contains(p Pos) bool {
	return p.Row >= r.StartRow && p.Row < r.EndRow && p.Col >= r.StartCol && p.Col < r.EndCol
}

// Notification is the result of one poll.
//
// Before notifications are enabled every cursor field is -1 and
// DamagePending is false.
type Notification struct {
	CursorRow     int
	CursorCol     int
	CursorVisible int // 1 visible, 0 hidden, -1 unavailable
	CursorMoved   bool
	OldRow        int
	OldCol        int
	DamagePending bool
	Damage        Rect
}

// SentinelNotification is what Poll returns while tracking is disabled.
var SentinelNotification = Notification{
	CursorRow:     -1,
	CursorCol:     -1,
	CursorVisible: -1,
	OldRow:        -1,
	OldCol:        -1,
}

// DamageTracker accumulates the damaged region and the latest cursor
// movement between polls. A pending region is only ever extended.
type DamageTracker struct {
	enabled bool

	pending bool
	rect    Rect

	moved   bool
	oldPos  Pos
	cursor  Pos
	visible bool
}

// Enable starts tracking from an empty state, seeded with the current cursor.
func (d *DamageTracker) Enable(cursor Pos, visible bool) {
	*d = DamageTracker{enabled: true, cursor: cursor, oldPos: cursor, visible: visible}
}

// Disable stops tracking and discards anything pending.
func (d *DamageTracker) Disable() { *d = DamageTracker{} }

// Enabled reports whether tracking is on.
func (d *DamageTracker) Enabled() bool { return d.enabled }

// Damage extends the pending region by r.
func (d *DamageTracker) Damage(r Rect) {
	if !d.enabled || r.Empty() {
		return
	}
	if d.pending {
		d.rect = d.rect.Union(r)
		return
	}
	d.pending = true
	d.rect = r
}

// MoveCursor records a cursor change; the latest value wins.
func (d *DamageTracker) MoveCursor(oldPos, newPos Pos, visible bool) {
	if !d.enabled {
		return
	}
	if !d.moved {
		d.oldPos = oldPos
	}
	d.moved = true
	d.cursor = newPos
	d.visible = visible
}

// Pending reports whether damage is waiting to be polled.
func (d *DamageTracker) Pending() bool { return d.enabled && d.pending }

// Poll returns the accumulated state and clears it.
func (d *DamageTracker) Poll() Notification {
	if !d.enabled {
		return SentinelNotification
	}
	n := Notification{
		CursorRow:     d.cursor.Row,
		CursorCol:     d.cursor.Col,
		CursorVisible: boolToInt(d.visible),
		CursorMoved:   d.moved,
		OldRow:        d.oldPos.Row,
		OldCol:        d.oldPos.Col,
		DamagePending: d.pending,
	}
	if d.pending {
		n.Damage = d.rect
	}
	d.pending = false
	d.rect = Rect{}
	d.moved = false
	d.oldPos = d.cursor
	return n
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
