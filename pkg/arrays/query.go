package arrays

import (
	"github.com/tclarray/tclarray/pkg/backend"
	"github.com/tclarray/tclarray/pkg/match"
)

// Exists reports whether the variable is an array. An empty array exists.
func (it *Interp) Exists(name string) (bool, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, err := it.resolveArray(name)
	return v != nil, err
}

// Get returns alternating names and values of the elements whose names
// match spec, in no particular order. A nil spec selects every element. It
// returns nothing for a variable that is not an array.
func (it *Interp) Get(name string, spec *match.Spec) ([]string, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, err := it.resolveArray(name)
	if v == nil {
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
	return backend.KeyValues(src, m)
}

// Names returns the element names that match spec.
func (it *Interp) Names(name string, spec *match.Spec) ([]string, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, err := it.resolveArray(name)
	if v == nil {
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
	return backend.Keys(src, m)
}

// Values returns the element values that match spec.
func (it *Interp) Values(name string, spec *match.Spec) ([]string, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, err := it.resolveArray(name)
	if v == nil {
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
	return backend.Values(src, m)
}

// Size returns the number of elements, or 0 for a variable that is not an
// array.
func (it *Interp) Size(name string) (int, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, err := it.resolveArray(name)
	if v == nil {
		return 0, err
	}
	src, err := it.source(name, v)
	if err != nil {
		return 0, err
	}
	return src.Len()
}
