// Copyright © 2025 SSSUtility contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: settings/service.go
// Summary: The owned facade over registry, allocator, navigation state,
// router and dispatcher. One Service per host; no process-wide state.

package settings

import (
	"log"

	"github.com/Ducstii/SSSUtility/dispatch"
	"github.com/Ducstii/SSSUtility/registry"
	"github.com/Ducstii/SSSUtility/router"
	"github.com/Ducstii/SSSUtility/session"
	"github.com/Ducstii/SSSUtility/store"
	"github.com/Ducstii/SSSUtility/widget"
)

// Options configures a Service. The zero value is usable: default id base,
// no roster, no persistence.
type Options struct {
	// IDBase overrides the allocator's reserved base (default 10000).
	IDBase int
	// Roster lets SendMenuToAll, updates and refreshes reach connected
	// clients. Without it those operations reach nobody.
	Roster session.Roster
	// Store enables widget-value persistence. The Service takes ownership
	// and closes it on Shutdown.
	Store *store.Store
}

// Service is the plugin-facing surface of the settings core. Create one per
// host with New and release it with Shutdown; independent instances (e.g.
// in tests) do not interfere.
type Service struct {
	registry   *registry.Registry
	allocator  *registry.Allocator
	tracker    *session.Tracker
	router     *router.Router
	dispatcher *dispatch.Dispatcher
	roster     session.Roster
	store      *store.Store
}

// New wires a Service from its parts.
func New(opts Options) *Service {
	reg := registry.New()
	tracker := session.NewTracker()

	var recorder router.Recorder
	if opts.Store != nil {
		recorder = opts.Store
	}

	return &Service{
		registry:   reg,
		allocator:  registry.NewAllocator(opts.IDBase),
		tracker:    tracker,
		router:     router.New(reg, tracker, recorder),
		dispatcher: dispatch.New(reg, tracker, opts.Roster),
		roster:     opts.Roster,
		store:      opts.Store,
	}
}

// Shutdown releases owned resources. The Service must not be used after.
func (s *Service) Shutdown() {
	s.Reset()
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("Settings: store close failed: %v", err)
		}
	}
}

// Reset drops all registered menus and navigation state. Used on a
// full-system reset such as a round restart. Persisted values survive.
func (s *Service) Reset() {
	s.registry.Clear()
	s.tracker.Clear()
}

// Register allocates a global id range for menu and makes it live. The
// sequence is allocate, then register, then rebuild the flattened buffer:
// the allocator and registry locks are never nested.
func (s *Service) Register(ownerID string, menu *widget.Menu) {
	if ownerID == "" || menu == nil {
		log.Printf("Settings: invalid registration (owner %q, menu %v)", ownerID, menu != nil)
		return
	}
	s.allocator.Allocate(menu)
	s.registry.Register(ownerID, menu)
	s.allocator.Rebuild(s.registry.Menus())
}

// Unregister tears down the owner's menu and reverses every mapping its
// registration created.
func (s *Service) Unregister(ownerID string) {
	s.registry.Unregister(ownerID)
	s.allocator.Rebuild(s.registry.Menus())
}

// Menu returns the owner's registered menu, or nil.
func (s *Service) Menu(ownerID string) *widget.Menu {
	return s.registry.Menu(ownerID)
}

// Validate audits global-id uniqueness and range disjointness across every
// registered menu.
func (s *Service) Validate() bool {
	return s.registry.Validate() && registry.CheckOverlap(s.registry.Menus())
}

// Version returns the flattened-buffer version clients compare against to
// detect a stale surface.
func (s *Service) Version() uint64 {
	return s.allocator.Version()
}

// ActiveWidgets returns the flattened buffer of every registered menu's
// widgets along with its version.
func (s *Service) ActiveWidgets() ([]*widget.Widget, uint64) {
	return s.allocator.Snapshot()
}

// SendMenu displays the owner's menu to one client, starting at page.
func (s *Service) SendMenu(c widget.Client, ownerID string, page int) {
	menu := s.registry.Menu(ownerID)
	if menu == nil {
		log.Printf("Settings: send for unregistered owner %q", ownerID)
		return
	}
	s.tracker.SendMenu(c, menu, page)
}

// SendMenuToAll displays the owner's menu to every connected client.
func (s *Service) SendMenuToAll(ownerID string, page int) {
	if s.roster == nil {
		log.Printf("Settings: SendMenuToAll without a roster")
		return
	}
	menu := s.registry.Menu(ownerID)
	if menu == nil {
		log.Printf("Settings: send for unregistered owner %q", ownerID)
		return
	}
	for _, c := range s.roster.Clients() {
		s.tracker.SendMenu(c, menu, page)
	}
}

// ClientState returns the client's navigation record; ok is false when the
// client has never interacted.
func (s *Service) ClientState(c widget.Client) (session.State, bool) {
	return s.tracker.Get(c)
}

// HandleValueChanged is the host's entry point for inbound value events.
func (s *Service) HandleValueChanged(c widget.Client, ev router.ValueEvent) {
	s.router.HandleValue(c, ev)
}

// HandleStatusChanged is the host's entry point for tab open/close events.
func (s *Service) HandleStatusChanged(c widget.Client, ev router.StatusEvent) {
	s.router.HandleStatus(c, ev)
}

// HandleDisconnect removes the client's navigation record.
func (s *Service) HandleDisconnect(c widget.Client) {
	s.router.HandleDisconnect(c)
}

// UpdateWidgetLabel pushes a label change for one widget to every client
// the filter accepts (all clients when filter is nil).
func (s *Service) UpdateWidgetLabel(ownerID string, globalID int, label string, filter dispatch.Filter) {
	s.dispatcher.UpdateWidget(ownerID, globalID, &label, nil, filter)
}

// UpdateWidgetHint pushes a hint change for one widget.
func (s *Service) UpdateWidgetHint(ownerID string, globalID int, hint string, filter dispatch.Filter) {
	s.dispatcher.UpdateWidget(ownerID, globalID, nil, &hint, filter)
}

// UpdateWidget pushes label and hint changes together.
func (s *Service) UpdateWidget(ownerID string, globalID int, label, hint string, filter dispatch.Filter) {
	s.dispatcher.UpdateWidget(ownerID, globalID, &label, &hint, filter)
}

// RefreshClientPage re-pushes the client's current page. Use after a
// structural change that a partial update cannot express.
func (s *Service) RefreshClientPage(c widget.Client) {
	s.dispatcher.RefreshClient(c)
}

// RefreshAllClients re-pushes every viewing client's current page.
func (s *Service) RefreshAllClients() {
	s.dispatcher.RefreshAll()
}

// SavedValues returns the persisted values of one client for one owner,
// keyed by local widget id. Returns nil without a store.
func (s *Service) SavedValues(clientID, ownerID string) map[int]string {
	if s.store == nil {
		return nil
	}
	values, err := s.store.Values(clientID, ownerID)
	if err != nil {
		log.Printf("Settings: loading saved values for %s/%s failed: %v", clientID, ownerID, err)
		return nil
	}
	return values
}
