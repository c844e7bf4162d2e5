// Copyright © 2025 SSSUtility contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dispatch/dispatch.go
// Summary: Pushes targeted label/hint mutations and full-page refreshes to
// connected clients without a menu rebuild.

package dispatch

import (
	"log"

	"github.com/Ducstii/SSSUtility/registry"
	"github.com/Ducstii/SSSUtility/session"
	"github.com/Ducstii/SSSUtility/widget"
)

// Filter selects which connected clients receive an update. A nil Filter
// means every client.
type Filter func(c widget.Client) bool

// Dispatcher issues partial widget updates and page refreshes. It reads
// registry and navigation state under their own locks and performs all
// pushes outside them: pushes may block on the host's network layer.
type Dispatcher struct {
	registry *registry.Registry
	tracker  *session.Tracker
	roster   session.Roster
}

// New creates a dispatcher. roster may be nil, in which case updates reach
// nobody and refreshes only work per-client.
func New(reg *registry.Registry, tracker *session.Tracker, roster session.Roster) *Dispatcher {
	return &Dispatcher{registry: reg, tracker: tracker, roster: roster}
}

// UpdateWidget mutates the live display fields of one widget and pushes the
// changed fields to every connected client the filter accepts. Only label
// and hint are live-updatable; structural changes need RefreshAll. A nil
// pointer leaves the corresponding field untouched.
func (d *Dispatcher) UpdateWidget(ownerID string, globalID int, label, hint *string, filter Filter) {
	if label == nil && hint == nil {
		return
	}
	menu := d.registry.Menu(ownerID)
	if menu == nil {
		log.Printf("Dispatch: update for unregistered owner %q", ownerID)
		return
	}
	w, ok := menu.Widget(globalID)
	if !ok {
		log.Printf("Dispatch: owner %q has no widget %d", ownerID, globalID)
		return
	}

	updates := make([]widget.Update, 0, 2)
	if label != nil {
		w.Label = widget.ClampLabel(*label)
		updates = append(updates, widget.Update{WidgetID: globalID, Field: widget.FieldLabel, Value: w.Label})
	}
	if hint != nil {
		w.Hint = widget.ClampHint(*hint)
		updates = append(updates, widget.Update{WidgetID: globalID, Field: widget.FieldHint, Value: w.Hint})
	}

	for _, c := range d.clients(filter) {
		for _, u := range updates {
			if err := c.PushUpdate(u); err != nil {
				log.Printf("Dispatch: %s update of widget %d to %s failed: %v", u.Field, globalID, c.ID(), err)
			}
		}
	}
}

// RefreshClient re-derives the client's current page from navigation state
// and re-pushes its full flattened buffer. Used after structural changes.
func (d *Dispatcher) RefreshClient(c widget.Client) {
	state, ok := d.tracker.Get(c)
	if !ok || !state.Viewing() {
		return
	}
	menu := d.registry.Menu(state.Owner)
	if menu == nil {
		return
	}
	buf := menu.PageBuffer(state.Page)
	if buf == nil {
		return
	}
	if err := c.Push(buf); err != nil {
		log.Printf("Dispatch: refresh of %s failed: %v", c.ID(), err)
	}
}

// RefreshAll re-pushes the current page of every connected client that is
// viewing a menu.
func (d *Dispatcher) RefreshAll() {
	for _, c := range d.clients(nil) {
		d.RefreshClient(c)
	}
}

// clients snapshots the roster, applying the filter. Runs without holding
// any core lock.
func (d *Dispatcher) clients(filter Filter) []widget.Client {
	if d.roster == nil {
		return nil
	}
	all := d.roster.Clients()
	if filter == nil {
		return all
	}
	out := make([]widget.Client, 0, len(all))
	for _, c := range all {
		if filter(c) {
			out = append(out, c)
		}
	}
	return out
}
