// Copyright © 2025 SSSUtility contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widget/widget.go
// Summary: Typed widget records pushed to clients, plus the host-facing
// client abstraction. Serialization to the wire is the host's concern.

package widget

import "github.com/mattn/go-runewidth"

// Display-width limits of the host's settings surface. Longer strings are
// truncated by cell width, not byte count, so CJK labels clip cleanly.
const (
	MaxLabelWidth = 64
	MaxHintWidth  = 160
)

// Widget is one element on a settings page. Exactly one of the settings
// pointers is non-nil, matching Kind; Header and TextArea carry none.
//
// ID is the widget's local identifier until its menu passes through the
// allocator, and the process-wide global identifier afterwards.
type Widget struct {
	ID    int
	Kind  Kind
	Label string
	Hint  string

	Button   *ButtonSettings
	Dropdown *DropdownSettings
	Slider   *SliderSettings
	Keybind  *KeybindSettings
	Text     *TextSettings
	TwoState *TwoStateSettings
	TextArea *TextAreaSettings
}

// ButtonSettings configures a press-and-optionally-hold button.
type ButtonSettings struct {
	// HoldSeconds is how long the client must hold the button before the
	// press fires. Zero means an instant press.
	HoldSeconds float64
}

// EntryKind selects how a dropdown presents its options.
type EntryKind uint8

const (
	EntryRegular EntryKind = iota
	EntryScrollable
	EntryScrollableLoop
	EntryHybrid
)

// DropdownSettings configures an option list.
type DropdownSettings struct {
	Options []string
	Default int
	Entry   EntryKind
}

// SliderSettings configures a bounded numeric slider.
type SliderSettings struct {
	Min     float64
	Max     float64
	Default float64
	Integer bool
}

// KeybindSettings configures a client-side key binding.
type KeybindSettings struct {
	// Suggested is the host key code preselected for the client.
	Suggested int
	// PreventOnGUI suppresses the bind while the client has a UI open.
	PreventOnGUI bool
}

// ContentType constrains what a plaintext input accepts. The host applies
// the constraint client-side; the router still receives raw text.
type ContentType uint8

const (
	ContentStandard ContentType = iota
	ContentIntegerNumber
	ContentDecimalNumber
	ContentAlphabet
	ContentPassword
)

// TextSettings configures a plaintext input field.
type TextSettings struct {
	Placeholder    string
	CharacterLimit int
	Content        ContentType
}

// TwoStateSettings configures a two-button toggle.
type TwoStateSettings struct {
	OptionA  string
	OptionB  string
	DefaultB bool
}

// TextAreaSettings configures a read-only text block.
type TextAreaSettings struct {
	// Foldout renders the area collapsed until the client expands it.
	Foldout bool
}

// UpdateField names a live-updatable display field. Structural fields
// (slider bounds, dropdown options) require a full page resend instead.
type UpdateField uint8

const (
	FieldLabel UpdateField = iota
	FieldHint
)

func (f UpdateField) String() string {
	if f == FieldHint {
		return "hint"
	}
	return "label"
}

// Update is a single-field mutation pushed to a client without a rebuild.
type Update struct {
	WidgetID int
	Field    UpdateField
	Value    string
}

// Client is one connected player as seen by this core. The host owns the
// identity and the synchronization protocol behind Push/PushUpdate.
type Client interface {
	// ID returns a stable identity for the connection (e.g. the host's
	// user id). Navigation state is keyed by it.
	ID() string
	// Push sends a full widget buffer, replacing the client's surface.
	Push(widgets []*Widget) error
	// PushUpdate sends a single-field mutation for one widget.
	PushUpdate(u Update) error
}

// ClampLabel truncates s to the label width budget of the settings surface.
func ClampLabel(s string) string {
	return runewidth.Truncate(s, MaxLabelWidth, "…")
}

// ClampHint truncates s to the hint width budget.
func ClampHint(s string) string {
	return runewidth.Truncate(s, MaxHintWidth, "…")
}
