package vars

import (
	"errors"
	"testing"

	"github.com/tclarray/tclarray/pkg/elems"
	"github.com/tclarray/tclarray/pkg/tt"
)

func TestSplitName(t *testing.T) {
	tt.Test(t, tt.Fn("SplitName", SplitName), tt.Table{
		tt.Args("a").Rets("a", "", false),
		tt.Args("a(x)").Rets("a", "x", true),
		tt.Args("a(x y)").Rets("a", "x y", true),
		tt.Args("(x)").Rets("(x)", "", false),
		tt.Args("a(x").Rets("a(x", "", false),
	})
}

func TestNormalizeName(t *testing.T) {
	tt.Test(t, tt.Fn("NormalizeName", NormalizeName), tt.Table{
		tt.Args("::a").Rets("a"),
		tt.Args("a").Rets("a"),
		tt.Args(":::a").Rets("a"),
	})
}

func TestTable_DeclareAndUnset(t *testing.T) {
	tb := NewTable()
	v := tb.Declare("::a")
	if !v.IsUndefined() || v.IsArray() {
		t.Errorf("declared variable should be undefined")
	}
	if v.QualifiedName() != "::a" || v.Name() != "a" {
		t.Errorf("names: %q %q", v.Name(), v.QualifiedName())
	}
	if tb.Declare("a") != v {
		t.Errorf("Declare of existing name created a new variable")
	}

	v.SetElems(elems.FromPairs("x", "1"))
	if !v.IsArray() || v.IsUndefined() {
		t.Errorf("SetElems didn't make an array")
	}
	if err := v.SetScalar("s"); err == nil {
		t.Errorf("SetScalar on array succeeded")
	}

	tb.Unset(v)
	if _, ok := tb.Lookup("a"); ok {
		t.Errorf("Lookup finds unset variable")
	}
	w := tb.Declare("a")
	if w.ID() == v.ID() || w.Handle() == v.Handle() {
		t.Errorf("recreated variable reuses identity")
	}
}

func TestVariable_ScalarArrayExclusive(t *testing.T) {
	v := NewTable().Declare("s")
	if err := v.SetScalar("1"); err != nil {
		t.Fatal(err)
	}
	if val, ok := v.Scalar(); val != "1" || !ok {
		t.Errorf("Scalar() -> (%v, %v)", val, ok)
	}
	v.SetElems(elems.New())
	if _, ok := v.Scalar(); ok {
		t.Errorf("array still reports a scalar")
	}
	v.Bind(Environment, nil)
	if v.Elems() != nil || v.Kind() != Environment {
		t.Errorf("Bind kept native store")
	}
}

func TestTable_Follow(t *testing.T) {
	tb := NewTable()
	a := tb.Declare("a")
	a.SetElems(elems.New())
	tb.Link("b", "a")
	tb.Link("c", "b")

	got, err := tb.Resolve("c")
	if err != nil || got != a {
		t.Errorf("Resolve(c) -> (%v, %v), want a", got, err)
	}
	if v, err := tb.Resolve("nope"); v != nil || err != nil {
		t.Errorf("Resolve(nope) -> (%v, %v), want (nil, nil)", v, err)
	}
}

func TestTable_FollowTrueCycle(t *testing.T) {
	tb := NewTable()
	x := tb.Declare("x")
	y := tb.Declare("y")
	x.flags, x.link, x.linkID = flagLink, y.handle, y.id
	y.flags, y.link, y.linkID = flagLink, x.handle, x.id

	if _, err := tb.Follow(x); !errors.Is(err, ErrLinkCycle) {
		t.Errorf("Follow -> %v, want ErrLinkCycle", err)
	}
}

func TestTable_FollowDepth(t *testing.T) {
	tb := NewTable()
	tb.Declare(name(0)).SetElems(elems.New())
	for i := 1; i <= MaxLinkDepth+1; i++ {
		tb.Link(name(i), name(i-1))
	}
	last, _ := tb.Lookup(name(MaxLinkDepth + 1))
	if _, err := tb.Follow(last); !errors.Is(err, ErrLinkDepth) {
		t.Errorf("Follow -> %v, want ErrLinkDepth", err)
	}
}

func TestTable_FollowDangling(t *testing.T) {
	tb := NewTable()
	tb.Declare("a").SetElems(elems.New())
	tb.Link("b", "a")
	a, _ := tb.Lookup("a")
	tb.Unset(a)
	tb.Declare("a").SetElems(elems.New())

	b, _ := tb.Lookup("b")
	if _, err := tb.Follow(b); !errors.Is(err, ErrLinkDangling) {
		t.Errorf("Follow -> %v, want ErrLinkDangling", err)
	}
}

func TestTable_LinkErrors(t *testing.T) {
	tb := NewTable()
	if _, err := tb.Link("a", "::a"); err == nil {
		t.Errorf("self link succeeded")
	}
	tb.Declare("s").SetScalar("1")
	if _, err := tb.Link("s", "t"); err == nil {
		t.Errorf("linking a defined variable succeeded")
	}
}

func TestFire(t *testing.T) {
	var calls []string
	veto := errors.New("vetoed")
	traces := []Trace{
		func(ev TraceEvent) error { calls = append(calls, "1:"+ev.Op.String()); return nil },
		func(ev TraceEvent) error { calls = append(calls, "2"); return veto },
		func(ev TraceEvent) error { calls = append(calls, "3"); return nil },
	}
	if err := Fire(traces, TraceEvent{Op: BeforeUnset}); err != veto {
		t.Errorf("Fire -> %v, want veto", err)
	}
	if len(calls) != 2 || calls[0] != "1:BeforeUnset" {
		t.Errorf("calls = %v", calls)
	}
}

func name(i int) string {
	return "v" + string(rune('0'+i/10)) + string(rune('0'+i%10))
}
