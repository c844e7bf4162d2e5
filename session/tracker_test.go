package session

import (
	"errors"
	"testing"

	"github.com/Ducstii/SSSUtility/widget"
)

// fakeClient records every push it receives.
type fakeClient struct {
	id      string
	pushes  [][]*widget.Widget
	updates []widget.Update
	fail    bool
}

func (c *fakeClient) ID() string { return c.id }

func (c *fakeClient) Push(ws []*widget.Widget) error {
	if c.fail {
		return errors.New("push refused")
	}
	c.pushes = append(c.pushes, ws)
	return nil
}

func (c *fakeClient) PushUpdate(u widget.Update) error {
	c.updates = append(c.updates, u)
	return nil
}

func threePageMenu() *widget.Menu {
	m := widget.NewBuilder("m").
		Page("one").Button("btn", "", 0).
		Page("two").
		Page("three").
		Build()
	m.Allocate(10000)
	m.Owner = "p1"
	return m
}

func TestSendMenuPushesAndTracks(t *testing.T) {
	tr := NewTracker()
	c := &fakeClient{id: "c1"}
	m := threePageMenu()

	joined := -1
	m.OnJoin(func(cl Client, page int) { joined = page })

	tr.SendMenu(c, m, 0)

	if len(c.pushes) != 1 {
		t.Fatalf("expected one push, got %d", len(c.pushes))
	}
	if len(c.pushes[0]) != 3 {
		t.Fatalf("expected selector+header+button, got %d entries", len(c.pushes[0]))
	}
	if joined != 0 {
		t.Fatalf("join callback must fire with the landing page, got %d", joined)
	}
	state, ok := tr.Get(c)
	if !ok || state.Owner != "p1" || state.Page != 0 {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestSendMenuClampsPage(t *testing.T) {
	tr := NewTracker()
	c := &fakeClient{id: "c1"}
	tr.SendMenu(c, threePageMenu(), 99)

	state, _ := tr.Get(c)
	if state.Page != 0 {
		t.Fatalf("out-of-range page must clamp to 0, got %d", state.Page)
	}
}

func TestSendMenuEmptyMenuIsNoop(t *testing.T) {
	tr := NewTracker()
	c := &fakeClient{id: "c1"}
	empty := &widget.Menu{Name: "empty"}

	tr.SendMenu(c, empty, 0)

	if len(c.pushes) != 0 {
		t.Fatalf("zero-page menu must not push")
	}
	if _, ok := tr.Get(c); ok {
		t.Fatalf("zero-page menu must not create state")
	}
}

func TestSendMenuJoinSkippedOnPushFailure(t *testing.T) {
	tr := NewTracker()
	c := &fakeClient{id: "c1", fail: true}
	m := threePageMenu()
	joined := false
	m.OnJoin(func(cl Client, page int) { joined = true })

	tr.SendMenu(c, m, 0)

	if joined {
		t.Fatalf("join must not fire when the push failed")
	}
}

func TestSwitchPage(t *testing.T) {
	tr := NewTracker()
	c := &fakeClient{id: "c1"}
	m := threePageMenu()

	var events []string
	m.Pages[0].Exit = func(cl Client, page int) { events = append(events, "exit0") }
	m.Pages[1].Enter = func(cl Client, page int) { events = append(events, "enter1") }

	tr.SendMenu(c, m, 0)
	tr.SwitchPage(c, m, 1)

	state, _ := tr.Get(c)
	if state.Page != 1 {
		t.Fatalf("expected page 1, got %d", state.Page)
	}
	if len(c.pushes) != 2 {
		t.Fatalf("switch must push the new page, got %d pushes", len(c.pushes))
	}
	if len(events) != 2 || events[0] != "exit0" || events[1] != "enter1" {
		t.Fatalf("expected exit-then-enter, got %v", events)
	}
}

func TestSwitchPageRejectsOutOfRange(t *testing.T) {
	tr := NewTracker()
	c := &fakeClient{id: "c1"}
	m := threePageMenu()
	tr.SendMenu(c, m, 0)

	tr.SwitchPage(c, m, 7)
	tr.SwitchPage(c, m, -1)

	state, _ := tr.Get(c)
	if state.Page != 0 {
		t.Fatalf("rejected switch must not change state, got page %d", state.Page)
	}
	if len(c.pushes) != 1 {
		t.Fatalf("rejected switch must not push, got %d pushes", len(c.pushes))
	}
}

func TestTabOpenAndLifecycle(t *testing.T) {
	tr := NewTracker()
	c := &fakeClient{id: "c1"}

	tr.SetTabOpen(c, true)
	state, ok := tr.Get(c)
	if !ok || !state.TabOpen {
		t.Fatalf("tab-open must create and flag the record")
	}
	if state.Viewing() {
		t.Fatalf("tab-open alone must not mark a menu as displayed")
	}

	tr.SetTabOpen(c, false)
	if state, _ := tr.Get(c); state.TabOpen {
		t.Fatalf("tab-close must clear the flag")
	}

	tr.Remove(c)
	if _, ok := tr.Get(c); ok {
		t.Fatalf("record must be gone after remove")
	}

	tr.SetTabOpen(c, true)
	tr.Clear()
	if tr.Active() != 0 {
		t.Fatalf("clear must drop all records")
	}
}

func TestForEachViewing(t *testing.T) {
	tr := NewTracker()
	m := threePageMenu()
	c1 := &fakeClient{id: "c1"}
	c2 := &fakeClient{id: "c2"}

	tr.SendMenu(c1, m, 0)
	tr.SendMenu(c2, m, 2)
	tr.SetTabOpen(&fakeClient{id: "c3"}, true)

	pages := make(map[string]int)
	tr.ForEachViewing("p1", func(id string, page int) { pages[id] = page })

	if len(pages) != 2 || pages["c1"] != 0 || pages["c2"] != 2 {
		t.Fatalf("unexpected viewers %v", pages)
	}
}
