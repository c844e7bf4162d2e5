// Copyright © 2025 SSSUtility contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: session/tracker.go
// Summary: Per-client navigation state machine. Owns the state map and the
// SendMenu/SwitchPage transitions; pushes happen outside the lock.

package session

import (
	"log"
	"sync"

	"github.com/Ducstii/SSSUtility/widget"
)

// Tracker holds one navigation record per connected client, created lazily
// on first contact and destroyed on disconnect. One lock guards the map so
// two concurrent events for the same client cannot interleave a page
// switch.
type Tracker struct {
	mu     sync.Mutex
	states map[string]*State // client id -> record
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{states: make(map[string]*State)}
}

// Get returns a copy of the client's record. ok is false when the client
// has never interacted.
func (t *Tracker) Get(c Client) (State, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.states[c.ID()]
	if !ok {
		return State{}, false
	}
	return *s, true
}

func (t *Tracker) ensureLocked(id string) *State {
	s, ok := t.states[id]
	if !ok {
		s = &State{}
		t.states[id] = s
	}
	return s
}

// SendMenu displays menu to the client, starting at page. Out-of-range page
// indices clamp to zero. Pushes the page's flattened buffer and then fires
// the menu's join callback. A menu with zero pages logs and no-ops.
func (t *Tracker) SendMenu(c Client, menu *widget.Menu, page int) {
	if menu == nil {
		log.Printf("Session: send of nil menu to %s", c.ID())
		return
	}
	if menu.PageCount() == 0 {
		log.Printf("Session: menu %q has no pages, nothing to send to %s", menu.Name, c.ID())
		return
	}
	if page < 0 || page >= menu.PageCount() {
		page = 0
	}

	t.mu.Lock()
	s := t.ensureLocked(c.ID())
	s.Owner = menu.Owner
	s.Page = page
	t.mu.Unlock()

	if err := c.Push(menu.PageBuffer(page)); err != nil {
		log.Printf("Session: push of %q page %d to %s failed: %v", menu.Name, page, c.ID(), err)
		return
	}
	if join := menu.JoinHandler(); join != nil {
		join(c, page)
	}
}

// SwitchPage moves the client to another page of the menu it is viewing.
// Out-of-range targets are rejected without touching state or pushing.
// Fires the outgoing page's exit callback, updates state, fires the
// incoming page's enter callback, then pushes the new page's buffer.
//
// Triggered exclusively by page-selector events; plugins never call it.
func (t *Tracker) SwitchPage(c Client, menu *widget.Menu, page int) {
	if menu == nil {
		return
	}
	if page < 0 || page >= menu.PageCount() {
		log.Printf("Session: %s requested page %d of %q, out of range", c.ID(), page, menu.Name)
		return
	}

	t.mu.Lock()
	s := t.ensureLocked(c.ID())
	from := s.Page
	if s.Owner == menu.Owner && from == page {
		t.mu.Unlock()
		return
	}
	s.Owner = menu.Owner
	s.Page = page
	t.mu.Unlock()

	if from >= 0 && from < menu.PageCount() {
		if exit := menu.Pages[from].Exit; exit != nil {
			exit(c, from)
		}
	}
	if enter := menu.Pages[page].Enter; enter != nil {
		enter(c, page)
	}
	if err := c.Push(menu.PageBuffer(page)); err != nil {
		log.Printf("Session: page switch push to %s failed: %v", c.ID(), err)
	}
}

// SetTabOpen records whether the settings surface is open on the client.
// Pure state update; nothing is pushed.
func (t *Tracker) SetTabOpen(c Client, open bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ensureLocked(c.ID()).TabOpen = open
}

// Remove deletes the client's record. Call on disconnect.
func (t *Tracker) Remove(c Client) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, c.ID())
}

// Clear drops every record. Used on global reset.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states = make(map[string]*State)
}

// Active returns how many clients currently have a record.
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.states)
}

// ForEachViewing calls fn for every tracked client id currently viewing the
// given owner's menu, passing the page index. fn runs under the tracker
// lock and must not push.
func (t *Tracker) ForEachViewing(owner string, fn func(clientID string, page int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, s := range t.states {
		if s.Owner == owner {
			fn(id, s.Page)
		}
	}
}
