// Copyright © 2025 SSSUtility contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Owns the set of active menus keyed by owning-plugin identity and
// the reverse mapping from global widget id to menu.

package registry

import (
	"log"
	"sync"

	"github.com/Ducstii/SSSUtility/widget"
)

// Registry tracks registered menus and resolves inbound widget identifiers
// back to their owning menu. All operations take a single coarse lock:
// registration is rare and lookups are map reads.
//
// The registry does not allocate identifiers itself; pair it with an
// Allocator and call Allocate before Register (see settings.Service).
type Registry struct {
	mu       sync.Mutex
	menus    map[string]*widget.Menu // owner id -> menu
	byWidget map[int]*widget.Menu    // global widget id -> menu
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		menus:    make(map[string]*widget.Menu),
		byWidget: make(map[int]*widget.Menu),
	}
}

// Register stores menu under ownerID and indexes every widget it contains.
// Caller misuse (empty owner, nil menu) logs and no-ops. If ownerID already
// has a menu the previous one is unregistered first, so re-registering is
// an idempotent replace.
//
// Precondition: the menu has been through the allocator. Registering menus
// with externally assigned, overlapping ids silently re-attributes the
// colliding entries to the last writer; Validate detects the damage.
func (r *Registry) Register(ownerID string, menu *widget.Menu) {
	if ownerID == "" {
		log.Printf("Registry: rejecting registration with empty owner id")
		return
	}
	if menu == nil {
		log.Printf("Registry: rejecting nil menu from %q", ownerID)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.menus[ownerID]; ok {
		log.Printf("Registry: replacing existing menu %q of %q", prev.Name, ownerID)
		r.removeLocked(ownerID, prev)
	}

	menu.Owner = ownerID
	r.menus[ownerID] = menu
	for _, w := range menu.AllWidgets() {
		if other, ok := r.byWidget[w.ID]; ok && other != menu {
			log.Printf("Registry: widget id %d of %q overwrites entry owned by %q", w.ID, ownerID, other.Owner)
		}
		r.byWidget[w.ID] = menu
	}
	log.Printf("Registry: registered menu %q for %q (ids %d-%d)", menu.Name, ownerID, menu.Start, menu.End)
}

// Unregister removes the owner's menu and every reverse-mapping entry it
// created. Unknown owners log a warning and no-op.
func (r *Registry) Unregister(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	menu, ok := r.menus[ownerID]
	if !ok {
		log.Printf("Registry: unregister for unknown owner %q", ownerID)
		return
	}
	r.removeLocked(ownerID, menu)
	log.Printf("Registry: unregistered menu %q of %q", menu.Name, ownerID)
}

// removeLocked drops the reverse entries before the menu itself so a
// concurrent lookup never resolves a half-removed menu.
func (r *Registry) removeLocked(ownerID string, menu *widget.Menu) {
	for _, w := range menu.AllWidgets() {
		if r.byWidget[w.ID] == menu {
			delete(r.byWidget, w.ID)
		}
	}
	delete(r.menus, ownerID)
}

// Menu returns the menu registered by ownerID, or nil.
func (r *Registry) Menu(ownerID string) *widget.Menu {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.menus[ownerID]
}

// MenuByWidget resolves a global widget id to its owning menu, or nil when
// the id belongs to no registered menu.
func (r *Registry) MenuByWidget(id int) *widget.Menu {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byWidget[id]
}

// Menus returns a snapshot of all registered menus.
func (r *Registry) Menus() []*widget.Menu {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*widget.Menu, 0, len(r.menus))
	for _, m := range r.menus {
		out = append(out, m)
	}
	return out
}

// Count returns the number of registered menus.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.menus)
}

// Clear drops all registry state. Used on global reset.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.menus = make(map[string]*widget.Menu)
	r.byWidget = make(map[int]*widget.Menu)
}

// Validate walks every registered menu and reports false if any global id
// appears in more than one menu, which indicates a mis-allocation or
// external tampering. Diagnostic, not fatal.
func (r *Registry) Validate() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[int]string)
	ok := true
	for owner, m := range r.menus {
		for _, w := range m.AllWidgets() {
			if prev, dup := seen[w.ID]; dup {
				log.Printf("Registry: id %d claimed by both %q and %q", w.ID, prev, owner)
				ok = false
				continue
			}
			seen[w.ID] = owner
		}
	}
	return ok
}
