package arrays

import (
	"fmt"
	"sort"

	"github.com/tclarray/tclarray/pkg/backend"
	"github.com/tclarray/tclarray/pkg/elems"
	"github.com/tclarray/tclarray/pkg/vars"
)

// GetElement returns the value of one element. A missing element of a native
// array with a default value reads as the default.
func (it *Interp) GetElement(name, elem string) (any, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, err := it.resolve(name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("can't read \"%s(%s)\": no such variable", name, elem)
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("can't read \"%s(%s)\": variable isn't array", name, elem)
	}
	src, err := it.source(name, v)
	if err != nil {
		return nil, err
	}
	val, ok, err := src.Get(elem)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("can't read \"%s(%s)\": no such element in array", name, elem)
	}
	return val, nil
}

// SetElement sets one element, creating the array if the variable doesn't
// exist.
func (it *Interp) SetElement(name, elem string, val any) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.declare(name)
	if err != nil {
		return err
	}
	created := v.IsUndefined()
	if !created && !v.IsArray() {
		return fmt.Errorf("can't set \"%s(%s)\": variable isn't array", name, elem)
	}
	var src backend.Source
	if !created && v.Kind().Virtual() {
		if src, err = it.source(name, v); err != nil {
			return err
		}
		if src.ReadOnly() {
			return fmt.Errorf("can't set \"%s(%s)\": %w", name, elem, backend.NotSupportedError{Kind: v.Kind()})
		}
	}
	newElems := elems.New()
	newElems.Set(elem, val)
	ev := vars.TraceEvent{Op: vars.BeforeSet, Name: name, Element: elem, Old: v.Elems(), New: newElems}
	if src != nil && it.traced(v) {
		if ev.Old, err = snapshot(src); err != nil {
			return err
		}
	}
	if err := it.fire(v, ev); err != nil {
		if created {
			it.vars.Unset(v)
		}
		return err
	}
	switch {
	case created:
		v.SetElems(newElems)
	case src == nil:
		v.Elems().Set(elem, val)
	default:
		if err := src.Set([]backend.Pair{{Key: elem, Value: val}}); err != nil {
			return fmt.Errorf("can't set \"%s(%s)\": %w", name, elem, err)
		}
	}
	it.signalDirty(name)
	return nil
}

// UnsetElement removes one element.
func (it *Interp) UnsetElement(name, elem string) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.resolve(name)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("can't unset \"%s(%s)\": no such variable", name, elem)
	}
	if !v.IsArray() {
		return fmt.Errorf("can't unset \"%s(%s)\": variable isn't array", name, elem)
	}
	src, err := it.source(name, v)
	if err != nil {
		return err
	}
	keys, err := backend.Keys(src, nil)
	if err != nil {
		return err
	}
	found := false
	for _, k := range keys {
		if k == elem {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("can't unset \"%s(%s)\": no such element in array", name, elem)
	}
	ev := vars.TraceEvent{Op: vars.BeforeUnset, Name: name, Element: elem, Old: v.Elems()}
	if err := it.fire(v, ev); err != nil {
		return err
	}
	if err := src.Remove(elem); err != nil {
		return fmt.Errorf("can't unset \"%s(%s)\": %w", name, elem, err)
	}
	return nil
}

// ForEach calls f with every element name the array has when the loop
// starts. Elements removed during the loop are skipped. The lock is not held
// while f runs, so f may use the Interp. f may return ErrBreak or
// ErrContinue; any other error ends the loop and is returned.
func (it *Interp) ForEach(name string, f func(key string) error) error {
	return it.forEach(name, func(key string, _ any) error { return f(key) })
}

// ForEachPair is like ForEach, but also passes the current value.
func (it *Interp) ForEachPair(name string, f func(key string, val any) error) error {
	return it.forEach(name, f)
}

func (it *Interp) forEach(name string, f func(string, any) error) error {
	keys, err := it.snapshotKeys(name)
	if err != nil {
		return err
	}
	for _, key := range keys {
		val, ok := it.lookupElement(name, key)
		if !ok {
			continue
		}
		switch err := f(key, val); err {
		case nil, ErrContinue:
		case ErrBreak:
			return nil
		default:
			return err
		}
	}
	return nil
}

func (it *Interp) snapshotKeys(name string) ([]string, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, err := it.mustResolveArray(name)
	if err != nil {
		return nil, err
	}
	src, err := it.source(name, v)
	if err != nil {
		return nil, err
	}
	keys, err := backend.Keys(src, nil)
	sort.Strings(keys)
	return keys, err
}

// lookupElement reads an element without the defaulting of GetElement.
func (it *Interp) lookupElement(name, key string) (any, bool) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, _ := it.resolveArray(name)
	if v == nil {
		return nil, false
	}
	if v.Kind() == vars.Native {
		if !v.Elems().Has(key) {
			return nil, false
		}
	}
	src, err := it.source(name, v)
	if err != nil {
		return nil, false
	}
	val, ok, err := src.Get(key)
	return val, ok && err == nil
}
