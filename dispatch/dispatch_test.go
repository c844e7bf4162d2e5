package dispatch

import (
	"testing"

	"github.com/Ducstii/SSSUtility/registry"
	"github.com/Ducstii/SSSUtility/session"
	"github.com/Ducstii/SSSUtility/widget"
)

type fakeClient struct {
	id      string
	pushes  [][]*widget.Widget
	updates []widget.Update
}

func (c *fakeClient) ID() string                       { return c.id }
func (c *fakeClient) Push(ws []*widget.Widget) error   { c.pushes = append(c.pushes, ws); return nil }
func (c *fakeClient) PushUpdate(u widget.Update) error { c.updates = append(c.updates, u); return nil }

type fakeRoster struct {
	clients []widget.Client
}

func (r *fakeRoster) Clients() []widget.Client { return r.clients }

func harness(t *testing.T) (*Dispatcher, *session.Tracker, *widget.Menu, *fakeClient, *fakeClient) {
	t.Helper()
	reg := registry.New()
	alloc := registry.NewAllocator(0)
	tracker := session.NewTracker()

	m := widget.NewBuilder("m").
		Page("one").Button("btn", "old hint", 0).
		Page("two").
		Build()
	alloc.Allocate(m)
	reg.Register("p1", m)

	c1 := &fakeClient{id: "c1"}
	c2 := &fakeClient{id: "c2"}
	d := New(reg, tracker, &fakeRoster{clients: []widget.Client{c1, c2}})
	return d, tracker, m, c1, c2
}

func TestUpdateWidgetLabelBroadcasts(t *testing.T) {
	d, _, m, c1, c2 := harness(t)
	id, _ := m.GlobalID(2) // the button

	label := "new label"
	d.UpdateWidget("p1", id, &label, nil, nil)

	for _, c := range []*fakeClient{c1, c2} {
		if len(c.updates) != 1 {
			t.Fatalf("%s: expected one update, got %d", c.id, len(c.updates))
		}
		u := c.updates[0]
		if u.WidgetID != id || u.Field != widget.FieldLabel || u.Value != "new label" {
			t.Fatalf("%s: unexpected update %+v", c.id, u)
		}
	}
	w, _ := m.Widget(id)
	if w.Label != "new label" {
		t.Fatalf("live record must mutate, got %q", w.Label)
	}
}

func TestUpdateWidgetFilter(t *testing.T) {
	d, _, m, c1, c2 := harness(t)
	id, _ := m.GlobalID(2)

	hint := "fresh"
	d.UpdateWidget("p1", id, nil, &hint, func(c widget.Client) bool { return c.ID() == "c2" })

	if len(c1.updates) != 0 {
		t.Fatalf("filtered-out client must receive nothing")
	}
	if len(c2.updates) != 1 || c2.updates[0].Field != widget.FieldHint {
		t.Fatalf("expected one hint update for c2, got %+v", c2.updates)
	}
}

func TestUpdateWidgetBothFields(t *testing.T) {
	d, _, m, c1, _ := harness(t)
	id, _ := m.GlobalID(2)

	label, hint := "l", "h"
	d.UpdateWidget("p1", id, &label, &hint, nil)

	if len(c1.updates) != 2 {
		t.Fatalf("expected label and hint updates, got %d", len(c1.updates))
	}
}

func TestUpdateUnknownTargetIsNoop(t *testing.T) {
	d, _, m, c1, _ := harness(t)
	label := "x"

	d.UpdateWidget("ghost", m.Start, &label, nil, nil)
	d.UpdateWidget("p1", 99999, &label, nil, nil)

	if len(c1.updates) != 0 {
		t.Fatalf("unknown targets must push nothing")
	}
}

func TestRefreshClientRepushesCurrentPage(t *testing.T) {
	d, tracker, m, c1, _ := harness(t)

	tracker.SendMenu(c1, m, 1)
	before := len(c1.pushes)

	d.RefreshClient(c1)

	if len(c1.pushes) != before+1 {
		t.Fatalf("refresh must re-push, got %d pushes", len(c1.pushes))
	}
	last := c1.pushes[len(c1.pushes)-1]
	// Page two is empty: selector + header only.
	if len(last) != 2 {
		t.Fatalf("expected the client's current page, got %d entries", len(last))
	}
}

func TestRefreshAllSkipsIdleClients(t *testing.T) {
	d, tracker, m, c1, c2 := harness(t)
	tracker.SendMenu(c1, m, 0)
	before1, before2 := len(c1.pushes), len(c2.pushes)

	d.RefreshAll()

	if len(c1.pushes) != before1+1 {
		t.Fatalf("viewing client must be refreshed")
	}
	if len(c2.pushes) != before2 {
		t.Fatalf("idle client must not be pushed to")
	}
}
