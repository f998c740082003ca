package search

import (
	"testing"

	"github.com/tclarray/tclarray/pkg/tt"
)

func newRegistry() *Registry {
	var n int64
	return NewRegistry(func() int64 { n++; return n })
}

var (
	ownerA = Owner{ID: 1, Name: "a"}
	ownerB = Owner{ID: 2, Name: "b"}
)

func TestRegistry_Protocol(t *testing.T) {
	r := newRegistry()
	id := r.Start(ownerA, []string{"y", "x"})
	if id != "arraySearch#1" {
		t.Errorf("Start -> %q, want arraySearch#1", id)
	}

	var got []string
	for {
		more, err := r.AnyMore(id, ownerA)
		if err != nil {
			t.Fatal(err)
		}
		next, err := r.Next(id, ownerA)
		if err != nil {
			t.Fatal(err)
		}
		if more != (next != "") {
			t.Fatalf("AnyMore = %v but Next = %q", more, next)
		}
		if !more {
			break
		}
		got = append(got, next)
	}
	if len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Errorf("iterated %v, want [x y]", got)
	}

	// Exhausted searches keep returning "" without error.
	if next, err := r.Next(id, ownerA); next != "" || err != nil {
		t.Errorf("Next after exhaustion -> (%q, %v)", next, err)
	}
	c, _ := r.Get(id)
	if c.State() != Exhausted {
		t.Errorf("state = %v, want exhausted", c.State())
	}

	if err := r.Done(id, ownerA); err != nil {
		t.Fatal(err)
	}
	if c.State() != Closed || r.Len() != 0 {
		t.Errorf("Done didn't close the search")
	}
}

func TestRegistry_EmptySnapshot(t *testing.T) {
	r := newRegistry()
	id := r.Start(ownerA, nil)
	if more, _ := r.AnyMore(id, ownerA); more {
		t.Errorf("AnyMore on empty search -> true")
	}
}

func TestRegistry_IndependentCursors(t *testing.T) {
	r := newRegistry()
	id1 := r.Start(ownerA, []string{"a", "b", "c"})
	id2 := r.Start(ownerA, []string{"a", "b", "c"})

	r.Next(id1, ownerA)
	r.Next(id1, ownerA)
	if next, _ := r.Next(id2, ownerA); next != "a" {
		t.Errorf("second cursor -> %q, want a", next)
	}
	if next, _ := r.Next(id1, ownerA); next != "c" {
		t.Errorf("first cursor -> %q, want c", next)
	}
}

func TestRegistry_Errors(t *testing.T) {
	r := newRegistry()
	id := r.Start(ownerA, []string{"x"})

	tt.Test(t, tt.Fn("AnyMore", r.AnyMore), tt.Table{
		tt.Args("nope", ownerA).Rets(false, tt.ErrorWithMessage(`couldn't find search "nope"`)),
		tt.Args(id, ownerB).Rets(false,
			tt.ErrorWithMessage(`search identifier "arraySearch#1" isn't for variable "b"`)),
	})

	// A failed call must not advance the cursor.
	if _, err := r.Next(id, ownerB); err == nil {
		t.Errorf("Next with wrong owner succeeded")
	}
	if next, _ := r.Next(id, ownerA); next != "x" {
		t.Errorf("Next -> %q, want x", next)
	}

	r.Done(id, ownerA)
	if _, err := r.AnyMore(id, ownerA); err == nil || err.Error() != `couldn't find search "arraySearch#1"` {
		t.Errorf("AnyMore after Done -> %v", err)
	}
	if err := r.Done(id, ownerA); err == nil {
		t.Errorf("second Done succeeded")
	}
}

func TestRegistry_DropOwner(t *testing.T) {
	r := newRegistry()
	r.Start(ownerA, []string{"x"})
	r.Start(ownerA, []string{"x"})
	idB := r.Start(ownerB, []string{"x"})

	if n := r.DropOwner(ownerA.ID); n != 2 {
		t.Errorf("DropOwner -> %d, want 2", n)
	}
	if _, ok := r.Get(idB); !ok {
		t.Errorf("DropOwner removed another variable's search")
	}
}
