// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tclarray/tclarray/pkg/store/storedefs"
)

// TestArray tests the array functionality of a Store.
func TestArray(t *testing.T, store storedefs.Store) {
	t.Helper()

	if _, err := store.ArrayLen("a"); !matchErr(err, storedefs.ErrNoArray) {
		t.Errorf("ArrayLen of missing array -> %v, want %v", err, storedefs.ErrNoArray)
	}

	err := store.ArraySet("a", []storedefs.Pair{{Key: "y", Value: "2"}, {Key: "x", Value: "1"}})
	if err != nil {
		t.Fatalf("ArraySet -> %v", err)
	}
	err = store.ArraySet("a", []storedefs.Pair{{Key: "x", Value: "10"}})
	if err != nil {
		t.Fatalf("ArraySet -> %v", err)
	}

	if n, err := store.ArrayLen("a"); n != 2 || err != nil {
		t.Errorf("ArrayLen -> (%d, %v), want (2, nil)", n, err)
	}
	pairs, err := store.ArrayPairs("a")
	wantPairs := []storedefs.Pair{{Key: "x", Value: "10"}, {Key: "y", Value: "2"}}
	if diff := cmp.Diff(wantPairs, pairs); err != nil || diff != "" {
		t.Errorf("ArrayPairs -> err %v, (-want +got):\n%s", err, diff)
	}
	if v, err := store.ArrayGet("a", "x"); v != "10" || err != nil {
		t.Errorf(`ArrayGet("a", "x") -> (%q, %v)`, v, err)
	}
	if _, err := store.ArrayGet("a", "z"); !matchErr(err, storedefs.ErrNoElement) {
		t.Errorf("ArrayGet of missing element -> %v", err)
	}

	if err := store.ArrayDel("a", "x"); err != nil {
		t.Errorf("ArrayDel -> %v", err)
	}
	if err := store.ArrayDel("a", "x"); !matchErr(err, storedefs.ErrNoElement) {
		t.Errorf("second ArrayDel -> %v", err)
	}

	if err := store.CreateArray("empty"); err != nil {
		t.Errorf("CreateArray -> %v", err)
	}
	names, err := store.Arrays()
	if diff := cmp.Diff([]string{"a", "empty"}, names); err != nil || diff != "" {
		t.Errorf("Arrays -> err %v, (-want +got):\n%s", err, diff)
	}
	if err := store.DelArray("empty"); err != nil {
		t.Errorf("DelArray -> %v", err)
	}
	if err := store.DelArray("empty"); !matchErr(err, storedefs.ErrNoArray) {
		t.Errorf("second DelArray -> %v", err)
	}
}

func matchErr(e1, e2 error) bool {
	return (e1 == nil && e2 == nil) || (e1 != nil && e2 != nil && e1.Error() == e2.Error())
}
