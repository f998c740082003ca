package elems

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tclarray/tclarray/pkg/match"
	"github.com/tclarray/tclarray/pkg/tt"
)

func glob(p string) match.Matcher {
	m, _ := match.Spec{Mode: match.Glob, Pattern: p}.Compile()
	return m
}

func TestStore_SetGetRemove(t *testing.T) {
	s := New()
	s.Set("x", "1")
	s.Set("x", "2")
	s.Set("y", 3)

	if s.Len() != 2 {
		t.Errorf("Len() -> %d, want 2", s.Len())
	}
	if v, ok := s.Get("x"); v != "2" || !ok {
		t.Errorf(`Get("x") -> (%v, %v), want ("2", true)`, v, ok)
	}
	if _, ok := s.Get("z"); ok {
		t.Errorf(`Get("z") -> ok, want not found`)
	}
	if !s.Remove("x") || s.Remove("x") {
		t.Errorf("Remove should succeed once and then report absence")
	}
	if s.Len() != 1 {
		t.Errorf("Len() after Remove -> %d, want 1", s.Len())
	}
}

func TestStore_Default(t *testing.T) {
	s := FromPairs("x", "1")
	if s.HasDefault() {
		t.Errorf("new store has a default")
	}
	s.SetDefault("dflt")
	if s.Len() != 1 {
		t.Errorf("SetDefault created elements")
	}
	if v, ok := s.Get("missing"); v != "dflt" || !ok {
		t.Errorf(`Get("missing") -> (%v, %v), want ("dflt", true)`, v, ok)
	}
	if s.Has("missing") {
		t.Errorf("Has reports default as element")
	}
	if !s.UnsetDefault() || s.UnsetDefault() {
		t.Errorf("UnsetDefault should succeed once")
	}
	if _, ok := s.Get("missing"); ok {
		t.Errorf("Get after UnsetDefault still finds a value")
	}
}

func sorted(s []string) []string {
	sort.Strings(s)
	return s
}

func TestStore_Filters(t *testing.T) {
	s := FromPairs("apple", "red", "avocado", "green", "banana", "yellow")

	tt.Test(t, tt.Fn("Keys", func(p string) []string { return s.Keys(glob(p)) }), tt.Table{
		tt.Args("a*").Rets(tt.ElementsOf("apple", "avocado")),
		tt.Args("*").Rets(tt.ElementsOf("apple", "avocado", "banana")),
		tt.Args("cherry").Rets(tt.ElementsOf()),
	})
	tt.Test(t, tt.Fn("Values", func(p string) []string { return s.Values(glob(p)) }), tt.Table{
		tt.Args("*e*").Rets(tt.ElementsOf("red", "green", "yellow")),
		tt.Args("r*").Rets(tt.ElementsOf("red")),
	})

	pairs := s.Pairs(glob("b*"))
	if diff := cmp.Diff([]string{"banana", "yellow"}, pairs); diff != "" {
		t.Errorf("Pairs (-want +got):\n%s", diff)
	}
	if got := sorted(s.Keys(nil)); len(got) != 3 {
		t.Errorf("Keys(nil) -> %v, want all keys", got)
	}
}

func TestStore_KeysRestartable(t *testing.T) {
	s := FromPairs("a", "1", "b", "2")
	first := sorted(s.Keys(nil))
	second := sorted(s.Keys(nil))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated Keys differ:\n%s", diff)
	}
}

func TestStore_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, ok := New().Random(rng); ok {
		t.Errorf("Random on empty store -> ok")
	}
	s := FromPairs("a", "1", "b", "2", "c", "3")
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		k, ok := s.Random(rng)
		if !ok || !s.Has(k) {
			t.Fatalf("Random -> (%q, %v), want an existing key", k, ok)
		}
		seen[k] = true
	}
	if len(seen) != 3 {
		t.Errorf("Random over 200 draws saw %v, want all 3 keys", seen)
	}
}

func TestStore_CloneIsolated(t *testing.T) {
	s := FromPairs("x", "1")
	s.SetDefault("d")
	c := s.Clone()
	s.Set("x", "changed")
	s.Set("y", "new")

	if v, _ := c.Get("x"); v != "1" {
		t.Errorf("clone saw source mutation: x = %v", v)
	}
	if c.Has("y") {
		t.Errorf("clone saw new source element")
	}
	if v, ok := c.Default(); v != "d" || !ok {
		t.Errorf("clone lost default")
	}
}

func TestStore_Merge(t *testing.T) {
	s := FromPairs("x", "1", "keep", "k")
	s.Merge(FromPairs("x", "2", "y", "3"))
	got := sorted(s.Pairs(nil))
	want := sorted([]string{"x", "2", "keep", "k", "y", "3"})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge (-want +got):\n%s", diff)
	}
}

func TestToString(t *testing.T) {
	tt.Test(t, tt.Fn("ToString", ToString), tt.Table{
		tt.Args(nil).Rets(""),
		tt.Args("s").Rets("s"),
		tt.Args(42).Rets("42"),
		tt.Args(1.5).Rets("1.5"),
		tt.Args(true).Rets("true"),
		tt.Args([]byte("b")).Rets("b"),
	})
}
