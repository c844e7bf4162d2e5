package router

// ValueEvent is a raw value-change notification as delivered by the host.
// WidgetID is the global identifier the client interacted with; the value
// fields are populated per variant and ignored otherwise.
type ValueEvent struct {
	WidgetID int

	// Dropdown: selected option index (validated against the option list
	// before dispatch).
	Index int
	// Slider: current value.
	Value float64
	// Keybind: pressed state and host key code.
	Pressed bool
	KeyCode int
	// Plaintext: current text.
	Text string
	// TwoState: true when option B is selected.
	OptionB bool
}

// StatusEvent is a host status notification for one client.
type StatusEvent struct {
	// TabOpen reports whether the settings surface is open client-side.
	TabOpen bool
}
