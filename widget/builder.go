// Copyright © 2025 SSSUtility contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: widget/builder.go
// Summary: Fluent construction of menu descriptions. Build freezes the
// tree, assigns dense local ids and generates the selector and headers.

package widget

import "log"

// Builder assembles a menu description. Widgets are appended to the most
// recently opened page; Build finalizes identifiers and generated widgets.
//
// The zero Builder is not usable; start with NewBuilder.
type Builder struct {
	name  string
	pages []*builderPage
}

type builderPage struct {
	name    string
	widgets []*Widget
	enter   PageFunc
	exit    PageFunc
}

// NewBuilder starts a menu description with the given display name.
func NewBuilder(name string) *Builder {
	return &Builder{name: ClampLabel(name)}
}

// Page opens a new page. All subsequent widget calls land on it until the
// next Page call.
func (b *Builder) Page(name string) *Builder {
	b.pages = append(b.pages, &builderPage{name: ClampLabel(name)})
	return b
}

// OnEnter sets the enter callback of the current page.
func (b *Builder) OnEnter(fn PageFunc) *Builder {
	if p := b.current(); p != nil {
		p.enter = fn
	}
	return b
}

// OnExit sets the exit callback of the current page.
func (b *Builder) OnExit(fn PageFunc) *Builder {
	if p := b.current(); p != nil {
		p.exit = fn
	}
	return b
}

func (b *Builder) current() *builderPage {
	if len(b.pages) == 0 {
		log.Printf("Builder %q: widget added before any page; opening page %q", b.name, b.name)
		b.pages = append(b.pages, &builderPage{name: b.name})
	}
	return b.pages[len(b.pages)-1]
}

func (b *Builder) add(w *Widget) *Builder {
	w.Label = ClampLabel(w.Label)
	w.Hint = ClampHint(w.Hint)
	b.current().widgets = append(b.current().widgets, w)
	return b
}

// Header adds a section header within the current page.
func (b *Builder) Header(label string) *Builder {
	return b.add(&Widget{Kind: KindHeader, Label: label})
}

// Button adds a press button. holdSeconds of zero means an instant press.
func (b *Builder) Button(label, hint string, holdSeconds float64) *Builder {
	return b.add(&Widget{Kind: KindButton, Label: label, Hint: hint,
		Button: &ButtonSettings{HoldSeconds: holdSeconds}})
}

// Dropdown adds an option list.
func (b *Builder) Dropdown(label, hint string, options []string, def int, entry EntryKind) *Builder {
	if len(options) == 0 {
		options = []string{""}
	}
	if def < 0 || def >= len(options) {
		def = 0
	}
	return b.add(&Widget{Kind: KindDropdown, Label: label, Hint: hint,
		Dropdown: &DropdownSettings{Options: options, Default: def, Entry: entry}})
}

// Slider adds a bounded numeric slider. Inverted bounds are swapped and the
// default is clamped into range.
func (b *Builder) Slider(label, hint string, min, max, def float64, integer bool) *Builder {
	if min > max {
		min, max = max, min
	}
	if def < min {
		def = min
	}
	if def > max {
		def = max
	}
	return b.add(&Widget{Kind: KindSlider, Label: label, Hint: hint,
		Slider: &SliderSettings{Min: min, Max: max, Default: def, Integer: integer}})
}

// Keybind adds a client key binding.
func (b *Builder) Keybind(label, hint string, suggested int, preventOnGUI bool) *Builder {
	return b.add(&Widget{Kind: KindKeybind, Label: label, Hint: hint,
		Keybind: &KeybindSettings{Suggested: suggested, PreventOnGUI: preventOnGUI}})
}

// Plaintext adds a free-text input. A characterLimit of zero means the
// host's default limit applies.
func (b *Builder) Plaintext(label, hint, placeholder string, characterLimit int, content ContentType) *Builder {
	return b.add(&Widget{Kind: KindPlaintext, Label: label, Hint: hint,
		Text: &TextSettings{Placeholder: placeholder, CharacterLimit: characterLimit, Content: content}})
}

// TextArea adds a read-only text block.
func (b *Builder) TextArea(label string, foldout bool) *Builder {
	return b.add(&Widget{Kind: KindTextArea, Label: label,
		TextArea: &TextAreaSettings{Foldout: foldout}})
}

// TwoState adds a two-button toggle.
func (b *Builder) TwoState(label, hint, optionA, optionB string, defaultB bool) *Builder {
	return b.add(&Widget{Kind: KindTwoState, Label: label, Hint: hint,
		TwoState: &TwoStateSettings{OptionA: optionA, OptionB: optionB, DefaultB: defaultB}})
}

// Build freezes the description into a Menu. Local identifiers are assigned
// densely from zero in allocation order (selector, then each page's header
// and widgets), a page selector is generated iff the menu has more than one
// page, and every page receives a generated name header.
//
// The builder must not be reused after Build.
func (b *Builder) Build() *Menu {
	m := &Menu{Name: b.name}

	if len(b.pages) == 0 {
		log.Printf("Builder %q: building menu with no pages", b.name)
	}

	if len(b.pages) > 1 {
		names := make([]string, len(b.pages))
		for i, p := range b.pages {
			names[i] = p.name
		}
		m.Selector = &Widget{
			Kind:     KindDropdown,
			Label:    "Page",
			Dropdown: &DropdownSettings{Options: names, Entry: EntryHybrid},
		}
	}

	for _, bp := range b.pages {
		m.Pages = append(m.Pages, &Page{
			Name:    bp.name,
			Header:  &Widget{Kind: KindHeader, Label: bp.name},
			Widgets: bp.widgets,
			Enter:   bp.enter,
			Exit:    bp.exit,
		})
	}

	next := 0
	m.walk(func(w *Widget) {
		w.ID = next
		next++
	})
	return m
}
