// Copyright © 2025 SSSUtility contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widget/menu.go
// Summary: The menu tree handed to the registry: ordered pages of widgets,
// the generated page selector, and the per-widget/menu-wide callback slots.

package widget

import "log"

// Callback signatures for value changes. The router invokes the per-widget
// slot first, then the menu-wide slot, passing the originating client and
// the live widget record.
type (
	ButtonFunc    func(c Client, w *Widget)
	DropdownFunc  func(c Client, w *Widget, index int)
	SliderFunc    func(c Client, w *Widget, value float64)
	KeybindFunc   func(c Client, w *Widget, pressed bool, key int)
	PlaintextFunc func(c Client, w *Widget, text string)
	TextAreaFunc  func(c Client, w *Widget, text string)
	TwoStateFunc  func(c Client, w *Widget, optionB bool)

	// JoinFunc fires after a menu is first pushed to a client.
	JoinFunc func(c Client, page int)
	// PageFunc fires on page enter/exit during navigation.
	PageFunc func(c Client, page int)
)

// Page is one ordered screen of widgets. Insertion order is rendering order.
type Page struct {
	Name    string
	Header  *Widget // generated page-name header, never nil after Build
	Widgets []*Widget

	// Enter and Exit fire around page switches driven by the selector.
	Enter PageFunc
	Exit  PageFunc
}

// Menu is a plugin's contribution to the settings surface. The widget tree
// is frozen by the builder; only identifiers and the id-keyed maps mutate,
// and only while the owning registry holds its lock.
type Menu struct {
	Name  string
	Owner string // set by the registry on Register

	Pages    []*Page
	Selector *Widget // page-selector dropdown, nil for single-page menus

	// Start and End bound the assigned global id range, inclusive.
	// Both are zero until the menu passes through the allocator.
	Start, End int

	widgets       map[int]*Widget // current id -> widget
	localToGlobal map[int]int

	buttonFns    map[int]ButtonFunc
	dropdownFns  map[int]DropdownFunc
	sliderFns    map[int]SliderFunc
	keybindFns   map[int]KeybindFunc
	plaintextFns map[int]PlaintextFunc
	textAreaFns  map[int]TextAreaFunc
	twoStateFns  map[int]TwoStateFunc

	anyButton   ButtonFunc
	anyDropdown DropdownFunc
	anySlider   SliderFunc
	anyKeybind  KeybindFunc

	joinFn JoinFunc

	local map[int]int // current id -> build-time local id
}

// PageCount returns the number of pages.
func (m *Menu) PageCount() int { return len(m.Pages) }

// WidgetCount returns how many identifiers an allocation consumes:
// the selector (if any) plus every page's header and widgets.
func (m *Menu) WidgetCount() int {
	n := 0
	if m.Selector != nil {
		n++
	}
	for _, p := range m.Pages {
		if p.Header != nil {
			n++
		}
		n += len(p.Widgets)
	}
	return n
}

// walk visits every widget in allocation order: selector first, then each
// page's header followed by its widgets, pages in order.
func (m *Menu) walk(fn func(w *Widget)) {
	if m.Selector != nil {
		fn(m.Selector)
	}
	for _, p := range m.Pages {
		if p.Header != nil {
			fn(p.Header)
		}
		for _, w := range p.Widgets {
			fn(w)
		}
	}
}

// AllWidgets returns every widget in allocation order.
func (m *Menu) AllWidgets() []*Widget {
	out := make([]*Widget, 0, m.WidgetCount())
	m.walk(func(w *Widget) { out = append(out, w) })
	return out
}

// Allocate rewrites every widget identifier into the contiguous range
// beginning at start and re-keys the callback maps through the same
// translation table in one pass. It returns the inclusive range end.
//
// Called by the registry's allocator; plugins never invoke it directly.
// Safe to call again on re-registration: the translation is keyed by the
// widgets' current identifiers, whatever round assigned them.
func (m *Menu) Allocate(start int) int {
	trans := make(map[int]int, m.WidgetCount())
	widgets := make(map[int]*Widget, m.WidgetCount())
	locals := make(map[int]int, m.WidgetCount())
	l2g := make(map[int]int, m.WidgetCount())

	next := start
	m.walk(func(w *Widget) {
		local := w.ID
		if m.local != nil {
			local = m.local[w.ID]
		}
		trans[w.ID] = next
		w.ID = next
		widgets[next] = w
		locals[next] = local
		l2g[local] = next
		next++
	})

	m.Start, m.End = start, next-1
	m.widgets = widgets
	m.local = locals
	m.localToGlobal = l2g

	m.buttonFns = rekey(m.Name, "button", m.buttonFns, trans)
	m.dropdownFns = rekey(m.Name, "dropdown", m.dropdownFns, trans)
	m.sliderFns = rekey(m.Name, "slider", m.sliderFns, trans)
	m.keybindFns = rekey(m.Name, "keybind", m.keybindFns, trans)
	m.plaintextFns = rekey(m.Name, "plaintext", m.plaintextFns, trans)
	m.textAreaFns = rekey(m.Name, "textarea", m.textAreaFns, trans)
	m.twoStateFns = rekey(m.Name, "twostate", m.twoStateFns, trans)

	return m.End
}

func rekey[F any](menu, variant string, fns map[int]F, trans map[int]int) map[int]F {
	if len(fns) == 0 {
		return fns
	}
	out := make(map[int]F, len(fns))
	for id, fn := range fns {
		mapped, ok := trans[id]
		if !ok {
			log.Printf("Menu %q: dropping %s callback for unknown id %d", menu, variant, id)
			continue
		}
		out[mapped] = fn
	}
	return out
}

// Allocated reports whether the menu has passed through the allocator.
func (m *Menu) Allocated() bool { return m.widgets != nil }

// Widget resolves a current (post-allocation: global) identifier.
func (m *Menu) Widget(id int) (*Widget, bool) {
	w, ok := m.widgets[id]
	return w, ok
}

// Contains reports whether id belongs to this menu.
func (m *Menu) Contains(id int) bool {
	_, ok := m.widgets[id]
	return ok
}

// GlobalID translates a build-time local identifier to the current global
// one. ok is false before allocation or for unknown locals.
func (m *Menu) GlobalID(localID int) (int, bool) {
	g, ok := m.localToGlobal[localID]
	return g, ok
}

// LocalID translates a global identifier back to its build-time local id.
func (m *Menu) LocalID(globalID int) (int, bool) {
	l, ok := m.local[globalID]
	return l, ok
}

// SelectorID returns the page selector's current id, or -1 when the menu
// has a single page.
func (m *Menu) SelectorID() int {
	if m.Selector == nil {
		return -1
	}
	return m.Selector.ID
}

// PageBuffer returns the flattened buffer pushed for one page: selector,
// page header, then the page's own widgets, in that order. Returns nil for
// an out-of-range index.
func (m *Menu) PageBuffer(page int) []*Widget {
	if page < 0 || page >= len(m.Pages) {
		return nil
	}
	p := m.Pages[page]
	buf := make([]*Widget, 0, len(p.Widgets)+2)
	if m.Selector != nil {
		buf = append(buf, m.Selector)
	}
	if p.Header != nil {
		buf = append(buf, p.Header)
	}
	return append(buf, p.Widgets...)
}

// key maps a build-time local id onto the callback-map key space, which
// tracks the widgets' current identifiers.
func (m *Menu) key(localID int) int {
	if m.localToGlobal == nil {
		return localID
	}
	if g, ok := m.localToGlobal[localID]; ok {
		return g
	}
	log.Printf("Menu %q: callback registration for unknown local id %d", m.Name, localID)
	return -1
}

// OnButton registers a callback for the button with the given local id.
func (m *Menu) OnButton(localID int, fn ButtonFunc) *Menu {
	if k := m.key(localID); k >= 0 {
		if m.buttonFns == nil {
			m.buttonFns = make(map[int]ButtonFunc)
		}
		m.buttonFns[k] = fn
	}
	return m
}

// OnDropdown registers a callback for the dropdown with the given local id.
func (m *Menu) OnDropdown(localID int, fn DropdownFunc) *Menu {
	if k := m.key(localID); k >= 0 {
		if m.dropdownFns == nil {
			m.dropdownFns = make(map[int]DropdownFunc)
		}
		m.dropdownFns[k] = fn
	}
	return m
}

// OnSlider registers a callback for the slider with the given local id.
func (m *Menu) OnSlider(localID int, fn SliderFunc) *Menu {
	if k := m.key(localID); k >= 0 {
		if m.sliderFns == nil {
			m.sliderFns = make(map[int]SliderFunc)
		}
		m.sliderFns[k] = fn
	}
	return m
}

// OnKeybind registers a callback for the keybind with the given local id.
func (m *Menu) OnKeybind(localID int, fn KeybindFunc) *Menu {
	if k := m.key(localID); k >= 0 {
		if m.keybindFns == nil {
			m.keybindFns = make(map[int]KeybindFunc)
		}
		m.keybindFns[k] = fn
	}
	return m
}

// OnPlaintext registers a callback for the text input with the given local id.
func (m *Menu) OnPlaintext(localID int, fn PlaintextFunc) *Menu {
	if k := m.key(localID); k >= 0 {
		if m.plaintextFns == nil {
			m.plaintextFns = make(map[int]PlaintextFunc)
		}
		m.plaintextFns[k] = fn
	}
	return m
}

// OnTextArea registers an observability callback for a read-only text area.
func (m *Menu) OnTextArea(localID int, fn TextAreaFunc) *Menu {
	if k := m.key(localID); k >= 0 {
		if m.textAreaFns == nil {
			m.textAreaFns = make(map[int]TextAreaFunc)
		}
		m.textAreaFns[k] = fn
	}
	return m
}

// OnTwoState registers a callback for the toggle with the given local id.
func (m *Menu) OnTwoState(localID int, fn TwoStateFunc) *Menu {
	if k := m.key(localID); k >= 0 {
		if m.twoStateFns == nil {
			m.twoStateFns = make(map[int]TwoStateFunc)
		}
		m.twoStateFns[k] = fn
	}
	return m
}

// Menu-wide slots fire for every event of their variant regardless of which
// widget produced it.

func (m *Menu) OnAnyButton(fn ButtonFunc) *Menu     { m.anyButton = fn; return m }
func (m *Menu) OnAnyDropdown(fn DropdownFunc) *Menu { m.anyDropdown = fn; return m }
func (m *Menu) OnAnySlider(fn SliderFunc) *Menu     { m.anySlider = fn; return m }
func (m *Menu) OnAnyKeybind(fn KeybindFunc) *Menu   { m.anyKeybind = fn; return m }

// OnJoin registers a callback fired after the menu is pushed to a client
// for the first time.
func (m *Menu) OnJoin(fn JoinFunc) *Menu { m.joinFn = fn; return m }

// Handler accessors used by the router. Each returns the per-widget slot
// for the given current id plus the menu-wide slot; either may be nil.

func (m *Menu) ButtonHandlers(id int) (ButtonFunc, ButtonFunc) {
	return m.buttonFns[id], m.anyButton
}

func (m *Menu) DropdownHandlers(id int) (DropdownFunc, DropdownFunc) {
	return m.dropdownFns[id], m.anyDropdown
}

func (m *Menu) SliderHandlers(id int) (SliderFunc, SliderFunc) {
	return m.sliderFns[id], m.anySlider
}

func (m *Menu) KeybindHandlers(id int) (KeybindFunc, KeybindFunc) {
	return m.keybindFns[id], m.anyKeybind
}

func (m *Menu) PlaintextHandler(id int) PlaintextFunc { return m.plaintextFns[id] }
func (m *Menu) TextAreaHandler(id int) TextAreaFunc   { return m.textAreaFns[id] }
func (m *Menu) TwoStateHandler(id int) TwoStateFunc   { return m.twoStateFns[id] }
func (m *Menu) JoinHandler() JoinFunc                 { return m.joinFn }
