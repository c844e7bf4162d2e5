// Copyright © 2025 SSSUtility contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: router/router.go
// Summary: Single entry point for inbound client events. Resolves the
// owning menu, intercepts page-selector events, and dispatches to plugin
// callbacks behind a panic-proof boundary.

package router

import (
	"log"
	"strconv"

	"github.com/Ducstii/SSSUtility/registry"
	"github.com/Ducstii/SSSUtility/session"
	"github.com/Ducstii/SSSUtility/widget"
)

// Recorder observes validated value changes, keyed by the widget's
// build-time local id so recorded values survive re-registration.
// Implementations must not panic; failures are theirs to log.
type Recorder interface {
	Record(clientID, owner string, localID int, kind widget.Kind, value string)
}

// Router connects raw value-change notifications to the correct
// plugin-supplied callbacks. It holds no lock of its own: the registry and
// tracker each guard their state, and callbacks run outside both.
type Router struct {
	registry *registry.Registry
	tracker  *session.Tracker
	recorder Recorder // optional
}

// New creates a router over the given registry and tracker. recorder may be
// nil when value persistence is disabled.
func New(reg *registry.Registry, tracker *session.Tracker, recorder Recorder) *Router {
	return &Router{registry: reg, tracker: tracker, recorder: recorder}
}

// HandleValue routes one value-change notification. Unknown widget ids are
// ignored: the event belongs to a different subsystem of the host.
func (r *Router) HandleValue(c widget.Client, ev ValueEvent) {
	menu := r.registry.MenuByWidget(ev.WidgetID)
	if menu == nil {
		return
	}
	w, ok := menu.Widget(ev.WidgetID)
	if !ok {
		log.Printf("Router: menu %q resolved for id %d but has no widget record", menu.Name, ev.WidgetID)
		return
	}

	switch w.Kind {
	case widget.KindButton:
		if w.ID == menu.SelectorID() {
			return
		}
		own, any := menu.ButtonHandlers(w.ID)
		r.invoke(c, w, func() {
			if own != nil {
				own(c, w)
			}
		})
		r.invoke(c, w, func() {
			if any != nil {
				any(c, w)
			}
		})

	case widget.KindDropdown:
		idx := ev.Index
		if w.Dropdown != nil {
			if n := len(w.Dropdown.Options); n > 0 && (idx < 0 || idx >= n) {
				idx = 0
			}
		}
		if w.ID == menu.SelectorID() {
			// Navigation, never a user callback.
			r.tracker.SwitchPage(c, menu, idx)
			return
		}
		own, any := menu.DropdownHandlers(w.ID)
		r.invoke(c, w, func() {
			if own != nil {
				own(c, w, idx)
			}
		})
		r.invoke(c, w, func() {
			if any != nil {
				any(c, w, idx)
			}
		})
		r.record(c, menu, w, strconv.Itoa(idx))

	case widget.KindSlider:
		own, any := menu.SliderHandlers(w.ID)
		r.invoke(c, w, func() {
			if own != nil {
				own(c, w, ev.Value)
			}
		})
		r.invoke(c, w, func() {
			if any != nil {
				any(c, w, ev.Value)
			}
		})
		r.record(c, menu, w, strconv.FormatFloat(ev.Value, 'g', -1, 64))

	case widget.KindKeybind:
		own, any := menu.KeybindHandlers(w.ID)
		r.invoke(c, w, func() {
			if own != nil {
				own(c, w, ev.Pressed, ev.KeyCode)
			}
		})
		r.invoke(c, w, func() {
			if any != nil {
				any(c, w, ev.Pressed, ev.KeyCode)
			}
		})
		r.record(c, menu, w, strconv.Itoa(ev.KeyCode))

	case widget.KindPlaintext:
		if fn := menu.PlaintextHandler(w.ID); fn != nil {
			r.invoke(c, w, func() { fn(c, w, ev.Text) })
		}
		r.record(c, menu, w, ev.Text)

	case widget.KindTwoState:
		if fn := menu.TwoStateHandler(w.ID); fn != nil {
			r.invoke(c, w, func() { fn(c, w, ev.OptionB) })
		}
		r.record(c, menu, w, strconv.FormatBool(ev.OptionB))

	case widget.KindTextArea:
		// Read-only: the callback observes the static label, never a
		// value change, and nothing is recorded.
		if fn := menu.TextAreaHandler(w.ID); fn != nil {
			r.invoke(c, w, func() { fn(c, w, w.Label) })
		}

	case widget.KindHeader:
		// Headers produce no events; tolerated for forward compatibility.
	}
}

// HandleStatus forwards a host status notification to navigation state.
func (r *Router) HandleStatus(c widget.Client, ev StatusEvent) {
	r.tracker.SetTabOpen(c, ev.TabOpen)
}

// HandleDisconnect drops the client's navigation record.
func (r *Router) HandleDisconnect(c widget.Client) {
	r.tracker.Remove(c)
}

// invoke runs one callback behind a recover so a misbehaving plugin cannot
// break event delivery for other widgets or clients.
func (r *Router) invoke(c widget.Client, w *widget.Widget, fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("Router: callback panic (client %s, widget %d, %s): %v", c.ID(), w.ID, w.Kind, rec)
		}
	}()
	fn()
}

func (r *Router) record(c widget.Client, menu *widget.Menu, w *widget.Widget, value string) {
	if r.recorder == nil {
		return
	}
	local, ok := menu.LocalID(w.ID)
	if !ok {
		return
	}
	r.recorder.Record(c.ID(), menu.Owner, local, w.Kind, value)
}
