package store

import (
	"path/filepath"
	"testing"

	"github.com/Ducstii/SSSUtility/widget"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "values.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndValues(t *testing.T) {
	s := open(t)

	if err := s.Save("c1", "p1", 4, widget.KindSlider, "12.5"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save("c1", "p1", 7, widget.KindPlaintext, "hello"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save("c1", "p2", 2, widget.KindTwoState, "true"); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Values("c1", "p1")
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if len(got) != 2 || got[4] != "12.5" || got[7] != "hello" {
		t.Fatalf("unexpected values %v", got)
	}

	other, err := s.Values("c2", "p1")
	if err != nil {
		t.Fatalf("values: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("clients must not see each other's values, got %v", other)
	}
}

func TestSaveUpserts(t *testing.T) {
	s := open(t)

	s.Save("c1", "p1", 4, widget.KindSlider, "1")
	s.Save("c1", "p1", 4, widget.KindSlider, "2")

	got, _ := s.Values("c1", "p1")
	if len(got) != 1 || got[4] != "2" {
		t.Fatalf("latest write must win, got %v", got)
	}
}

func TestDeleteOwner(t *testing.T) {
	s := open(t)

	s.Save("c1", "p1", 4, widget.KindSlider, "1")
	s.Save("c2", "p1", 4, widget.KindSlider, "2")
	s.Save("c1", "p2", 4, widget.KindSlider, "3")

	if err := s.DeleteOwner("p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if got, _ := s.Values("c1", "p1"); len(got) != 0 {
		t.Fatalf("owner values must be gone, got %v", got)
	}
	if got, _ := s.Values("c1", "p2"); len(got) != 1 {
		t.Fatalf("other owners must survive, got %v", got)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Save("c1", "p1", 4, widget.KindSlider, "12.5")
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, _ := s.Values("c1", "p1")
	if got[4] != "12.5" {
		t.Fatalf("values must survive reopen, got %v", got)
	}
}

func TestClosedStore(t *testing.T) {
	s := open(t)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("double close must be a no-op, got %v", err)
	}

	if err := s.Save("c1", "p1", 0, widget.KindButton, ""); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, err := s.Values("c1", "p1"); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := s.DeleteOwner("p1"); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
