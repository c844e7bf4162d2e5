// Copyright © 2025 SSSUtility contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/allocator.go
// Summary: Hands out contiguous, monotonically increasing global id ranges
// and maintains the versioned flattened buffer of all active widgets.

package registry

import (
	"log"
	"math"
	"sync"

	"github.com/Ducstii/SSSUtility/widget"
)

// DefaultBase is the first identifier the allocator hands out. Identifiers
// below it are reserved for the host and its other subsystems.
const DefaultBase = 10000

// Allocator assigns non-overlapping global id ranges to menus. The counter
// only moves forward; a range wasted by a failed registration is never
// reused. A single lock guards the counter, the flattened buffer and the
// version number.
type Allocator struct {
	mu      sync.Mutex
	base    int
	next    int
	version uint64
	buffer  []*widget.Widget
}

// NewAllocator creates an allocator starting at base. A base below 1 falls
// back to DefaultBase.
func NewAllocator(base int) *Allocator {
	if base < 1 {
		base = DefaultBase
	}
	return &Allocator{base: base, next: base}
}

// Allocate rewrites menu's widget identifiers into a fresh range and
// advances the counter past it. If the range would overflow the
// representable space the counter resets to the base — a soft degradation,
// logged; Validate on the registry audits the pathological wrap.
func (a *Allocator) Allocate(menu *widget.Menu) (start, end int) {
	if menu == nil {
		log.Printf("Allocator: nil menu")
		return 0, -1
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	need := menu.WidgetCount()
	if a.next > math.MaxInt32-need {
		log.Printf("Allocator: id counter would overflow at %d, resetting to %d", a.next, a.base)
		a.next = a.base
	}

	start = a.next
	end = menu.Allocate(start)
	a.next = end + 1
	return start, end
}

// Rebuild recomputes the flattened concatenation of every registered menu's
// widgets and bumps the version clients compare against to detect a stale
// surface. Call after every registration change.
func (a *Allocator) Rebuild(menus []*widget.Menu) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf := make([]*widget.Widget, 0, len(a.buffer))
	for _, m := range menus {
		buf = append(buf, m.AllWidgets()...)
	}
	a.buffer = buf
	a.version++
	return a.version
}

// Snapshot returns the current flattened buffer and its version. The slice
// is a copy and safe to iterate without the lock.
func (a *Allocator) Snapshot() ([]*widget.Widget, uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*widget.Widget, len(a.buffer))
	copy(out, a.buffer)
	return out, a.version
}

// Version returns the current buffer version.
func (a *Allocator) Version() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.version
}

// CheckOverlap audits that no two menus hold intersecting [Start, End]
// ranges. Overlap is only possible if the monotonic-counter invariant was
// violated, so this is a defensive audit, not the correctness mechanism.
func CheckOverlap(menus []*widget.Menu) bool {
	for i, m := range menus {
		for _, other := range menus[i+1:] {
			if m.Start <= other.End && other.Start <= m.End {
				log.Printf("Allocator: range overlap between %q [%d-%d] and %q [%d-%d]",
					m.Name, m.Start, m.End, other.Name, other.Start, other.End)
				return false
			}
		}
	}
	return true
}
