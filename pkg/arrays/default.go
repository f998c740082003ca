package arrays

import (
	"errors"

	"github.com/tclarray/tclarray/pkg/vars"
)

var errNoDefault = errors.New("array has no default value")

// Default values are only kept by native arrays.
func (it *Interp) nativeArray(name string) (*vars.Variable, error) {
	v, err := it.mustResolveArray(name)
	if err != nil {
		return nil, err
	}
	if v.Kind() != vars.Native {
		return nil, notArray(name)
	}
	return v, nil
}

// DefaultExists reports whether the array has a default value.
func (it *Interp) DefaultExists(name string) (bool, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, err := it.nativeArray(name)
	if err != nil {
		return false, err
	}
	return v.Elems().HasDefault(), nil
}

// DefaultGet returns the default value of the array.
func (it *Interp) DefaultGet(name string) (any, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, err := it.nativeArray(name)
	if err != nil {
		return nil, err
	}
	def, ok := v.Elems().Default()
	if !ok {
		return nil, errNoDefault
	}
	return def, nil
}

// DefaultSet sets the default value of the array. No element is created.
func (it *Interp) DefaultSet(name string, val any) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.nativeArray(name)
	if err != nil {
		return err
	}
	v.Elems().SetDefault(val)
	return nil
}

// DefaultUnset removes the default value of the array.
func (it *Interp) DefaultUnset(name string) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.nativeArray(name)
	if err != nil {
		return err
	}
	if !v.Elems().UnsetDefault() {
		return errNoDefault
	}
	return nil
}
