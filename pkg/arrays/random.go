package arrays

import (
	"errors"
	"fmt"

	"github.com/tclarray/tclarray/pkg/backend"
	"github.com/tclarray/tclarray/pkg/elems"
	"github.com/tclarray/tclarray/pkg/match"
)

var errEmpty = errors.New("array is empty")

// RandomOptions controls Random.
type RandomOptions struct {
	// Strict makes an empty selection an error.
	Strict bool
	// Pair returns the name and the value.
	Pair bool
	// ValueOnly returns the value instead of the name.
	ValueOnly bool
	// MatchName and MatchValue select what the pattern is matched against.
	// With neither set, names are matched; with both, "<name> <value>".
	MatchName  bool
	MatchValue bool
}

// Random picks a uniformly random element among those selected by spec. It
// returns the name, the value, or both when opts.Pair is set. An empty
// selection gives an empty result, or an error when opts.Strict is set.
func (it *Interp) Random(name string, spec *match.Spec, opts RandomOptions) ([]string, error) {
	// The generator is not safe for concurrent use.
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.mustResolveArray(name)
	if err != nil {
		return nil, err
	}
	m, err := it.compile(spec)
	if err != nil {
		return nil, err
	}
	src, err := it.source(name, v)
	if err != nil {
		return nil, err
	}
	view, err := backend.Filter(src, backend.FilterSpec{
		Matcher: m, MatchName: opts.MatchName, MatchValue: opts.MatchValue})
	if err != nil {
		return nil, err
	}
	key, ok := view.Random(it.rng)
	if !ok {
		if opts.Strict {
			return nil, errEmpty
		}
		return nil, nil
	}
	if !opts.Pair && !opts.ValueOnly {
		return []string{key}, nil
	}
	val, ok, err := src.Get(key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("can't read \"%s(%s)\": no such element in array", name, key)
	}
	if opts.Pair {
		return []string{key, elems.ToString(val)}, nil
	}
	return []string{elems.ToString(val)}, nil
}
