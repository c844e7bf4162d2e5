package widget

// Kind identifies the variant of a widget. The set is closed: the router
// switches exhaustively over it and treats anything else as a decoding bug.
type Kind uint8

const (
	KindHeader Kind = iota
	KindButton
	KindDropdown
	KindSlider
	KindKeybind
	KindPlaintext
	KindTextArea
	KindTwoState
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindButton:
		return "button"
	case KindDropdown:
		return "dropdown"
	case KindSlider:
		return "slider"
	case KindKeybind:
		return "keybind"
	case KindPlaintext:
		return "plaintext"
	case KindTextArea:
		return "textarea"
	case KindTwoState:
		return "twostate"
	}
	return "unknown"
}

// HasValue reports whether the variant carries a client-adjustable value.
// Headers are display-only; text areas report their label for observability
// but never represent a true value change.
func (k Kind) HasValue() bool {
	switch k {
	case KindButton, KindDropdown, KindSlider, KindKeybind, KindPlaintext, KindTwoState:
		return true
	}
	return false
}
