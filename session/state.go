package session

import "github.com/Ducstii/SSSUtility/widget"

// Client is re-exported for brevity; the host hands the same value to every
// inbound notification.
type Client = widget.Client

// State is one client's navigation record: which menu is displayed, which
// page of it, and whether the settings surface is open client-side.
//
// Mutated only by the Tracker while holding its lock.
type State struct {
	// Owner is the owning-plugin identity of the displayed menu, or the
	// empty string when no menu is shown.
	Owner string
	// Page is the current page index, always within the displayed menu's
	// page range while Owner is set.
	Page int
	// TabOpen mirrors the host's status notification for the client.
	TabOpen bool
}

// Viewing reports whether the client currently has a menu on screen.
func (s State) Viewing() bool { return s.Owner != "" }

// Roster enumerates the currently connected clients. The host owns the
// connection lifecycle and provides the implementation.
type Roster interface {
	Clients() []Client
}
