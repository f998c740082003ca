package arrays

import (
	"errors"
	"fmt"

	"github.com/tclarray/tclarray/pkg/backend"
	"github.com/tclarray/tclarray/pkg/elems"
	"github.com/tclarray/tclarray/pkg/match"
	"github.com/tclarray/tclarray/pkg/vars"
)

var errOddList = errors.New("list must have an even number of elements")

// Set upserts alternating names and values into an array, creating the
// array if the variable doesn't exist. Elements not named in pairs are kept.
//
// The new elements are collected in a separate store first, and the
// BeforeSet traces see both the current and the new content. Nothing is
// changed when a trace fails or when the element limit would be exceeded.
func (it *Interp) Set(name string, pairs []string) error {
	if len(pairs)%2 != 0 {
		return errOddList
	}
	it.mu.Lock()
	defer it.mu.Unlock()

	v, err := it.declare(name)
	if err != nil {
		return err
	}
	created := v.IsUndefined()
	if !created && !v.IsArray() {
		return notArray(name)
	}

	// The limit check counts every new pair as a new element, even if the
	// name already exists.
	nNew := len(pairs) / 2
	if it.limit > 0 {
		if nNew > it.limit {
			if created {
				it.vars.Unset(v)
			}
			return limitExceeded(name)
		}
		if !created {
			src, err := it.source(name, v)
			if err != nil {
				return err
			}
			n, err := src.Len()
			if err != nil {
				return err
			}
			if n > 0 && n+nNew > it.limit {
				return limitExceeded(name)
			}
		}
	}

	newElems := elems.NewWithCapacity(nNew)
	for i := 0; i < len(pairs); i += 2 {
		newElems.Set(pairs[i], pairs[i+1])
	}

	if !created && v.Kind().Virtual() {
		src, err := it.source(name, v)
		if err != nil {
			return err
		}
		if src.ReadOnly() {
			return fmt.Errorf("can't set \"%s\": %w", name, backend.NotSupportedError{Kind: v.Kind()})
		}
		ev := vars.TraceEvent{Op: vars.BeforeSet, Name: name, New: newElems}
		if it.traced(v) {
			if ev.Old, err = snapshot(src); err != nil {
				return err
			}
		}
		if err := it.fire(v, ev); err != nil {
			return err
		}
		bp := make([]backend.Pair, 0, nNew)
		for i := 0; i < len(pairs); i += 2 {
			bp = append(bp, backend.Pair{Key: pairs[i], Value: pairs[i+1]})
		}
		if err := src.Set(bp); err != nil {
			return fmt.Errorf("can't set \"%s\": %w", name, err)
		}
		it.signalDirty(name)
		logger.Printf("set %d elements of %v array %s", nNew, v.Kind(), name)
		return nil
	}

	old := v.Elems()
	if err := it.fire(v, vars.TraceEvent{Op: vars.BeforeSet, Name: name, Old: old, New: newElems}); err != nil {
		if created {
			it.vars.Unset(v)
		}
		return err
	}
	if old != nil {
		old.Merge(newElems)
	} else {
		v.SetElems(newElems)
	}
	it.signalDirty(name)
	logger.Printf("set %d elements of %s", nNew, name)
	return nil
}

func limitExceeded(name string) error {
	return fmt.Errorf("can't set \"%s\": array element limit exceeded", name)
}

// CopyOptions controls Copy.
type CopyOptions struct {
	// Deep gives the destination its own elements instead of sharing the
	// source's.
	Deep bool
	// NoSignal suppresses the dirty signal of the source.
	NoSignal bool
}

// Copy makes a new array variable dst holding the content of the array src.
// The destination must not exist. It inherits the kind, binding and traces
// of the source.
//
// A shallow copy shares the element store of a native source and the binding
// of a virtual one. A deep copy of a reflected array clones the backing Go
// array. Any other deep copy gives a native array with its own store holding
// the source's elements (values are shared, not copied); the BeforeSet
// traces of the destination fire before it becomes visible.
func (it *Interp) Copy(src, dst string, opts CopyOptions) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	sv, err := it.mustResolveArray(src)
	if err != nil {
		return err
	}
	if dv, _ := it.vars.Lookup(dst); dv != nil && !dv.IsUndefined() {
		return fmt.Errorf("cannot copy array to \"%s\" variable already exists", dst)
	}
	dv, err := it.declare(dst)
	if err != nil {
		return err
	}

	for _, tr := range sv.Traces() {
		dv.AddTrace(tr)
	}
	switch kind := sv.Kind(); {
	case kind == vars.ReflectedArray && opts.Deep:
		clone, err := backend.CloneReflected(sv.Binding())
		if err != nil {
			it.vars.Unset(dv)
			return err
		}
		dv.Bind(kind, clone)
	case opts.Deep:
		clone, err := it.cloneElems(src, sv)
		if err != nil {
			it.vars.Unset(dv)
			return err
		}
		ev := vars.TraceEvent{Op: vars.BeforeSet, Name: dst, New: clone}
		if err := it.fire(dv, ev); err != nil {
			it.vars.Unset(dv)
			return err
		}
		dv.SetElems(clone)
	case kind == vars.Native:
		dv.SetElems(sv.Elems())
	default:
		dv.Bind(kind, sv.Binding())
	}

	if !opts.NoSignal {
		it.signalDirty(src)
	}
	logger.Printf("copied %s to %s (deep: %v)", src, dst, opts.Deep)
	return nil
}

// cloneElems returns a new store with the elements of an array.
func (it *Interp) cloneElems(name string, v *vars.Variable) (*elems.Store, error) {
	if v.Kind() == vars.Native {
		return v.Elems().Clone(), nil
	}
	src, err := it.source(name, v)
	if err != nil {
		return nil, err
	}
	s, err := snapshot(src)
	if err != nil {
		return nil, fmt.Errorf("can't copy \"%s\": %w", name, err)
	}
	return s, nil
}

// Unset removes the whole variable when spec is nil, or else the elements
// whose names match spec. A missing variable is not an error.
//
// With a pattern, the matching names are collected before any is removed,
// and they are removed one at a time, each after its BeforeUnset traces.
// The first failure stops the removal and is returned.
func (it *Interp) Unset(name string, spec *match.Spec) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.resolve(name)
	if v == nil {
		return err
	}
	if spec == nil {
		return it.unsetVar(name, v)
	}
	if !v.IsArray() {
		return nil
	}
	m, err := it.compile(spec)
	if err != nil {
		return err
	}
	src, err := it.source(name, v)
	if err != nil {
		return err
	}
	keys, err := backend.Keys(src, m)
	if err != nil {
		return err
	}
	for _, key := range keys {
		ev := vars.TraceEvent{Op: vars.BeforeUnset, Name: name, Element: key, Old: v.Elems()}
		if err := it.fire(v, ev); err != nil {
			return err
		}
		if err := src.Remove(key); err != nil {
			return fmt.Errorf("can't unset matching \"%s\" elements: %w", name, err)
		}
	}
	logger.Printf("unset %d elements of %s", len(keys), name)
	return nil
}

func (it *Interp) unsetVar(name string, v *vars.Variable) error {
	ev := vars.TraceEvent{Op: vars.BeforeUnset, Name: name, Old: v.Elems()}
	if err := it.fire(v, ev); err != nil {
		return err
	}
	if n := it.searches.DropOwner(v.ID()); n > 0 {
		logger.Printf("closed %d searches of %s", n, name)
	}
	it.vars.Unset(v)
	return nil
}
