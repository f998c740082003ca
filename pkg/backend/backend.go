// Package backend presents the content of array variables through one
// interface, whatever stores it: the native element store or one of the
// virtual backends (environment, diagnostics registry, reflected Go arrays,
// thread stores, databases, network stores and registry keys).
package backend

import (
	"errors"
	"fmt"

	"github.com/tclarray/tclarray/pkg/elems"
	"github.com/tclarray/tclarray/pkg/match"
	"github.com/tclarray/tclarray/pkg/vars"
)

// ErrNotSupported is matched, with errors.Is, by errors returned when a
// source doesn't support an operation.
var ErrNotSupported = errors.New("operation not supported")

// NotSupportedError is returned by sources that reject an operation.
type NotSupportedError struct {
	Kind vars.Kind
}

func (e NotSupportedError) Error() string {
	return "operation not supported for " + e.Kind.String()
}

// Is makes errors.Is(err, ErrNotSupported) true.
func (e NotSupportedError) Is(target error) bool { return target == ErrNotSupported }

// Pair is an element of a source.
type Pair struct {
	Key   string
	Value any
}

// Source is the uniform view of an array's content. Keys are always strings.
// Pairs is recomputed on every call.
type Source interface {
	Kind() vars.Kind
	Len() (int, error)
	Pairs() ([]Pair, error)
	// Get returns the value of one element; the bool is false if it doesn't
	// exist.
	Get(key string) (any, bool, error)
	// Set upserts elements. Read-only sources return NotSupportedError.
	Set(pairs []Pair) error
	// Remove removes one element.
	Remove(key string) error
	// ReadOnly reports whether Set is rejected.
	ReadOnly() bool
}

// For returns the Source of an array variable. The kind is resolved once and
// matched exhaustively; a binding of the wrong type is an error.
func For(v *vars.Variable) (Source, error) {
	switch k := v.Kind(); k {
	case vars.Native:
		if v.Elems() == nil {
			return nil, invalidBinding(k)
		}
		return Native{v.Elems()}, nil
	case vars.Environment:
		return Env{}, nil
	case vars.Diagnostics:
		if r, ok := v.Binding().(*Registry); ok {
			return r, nil
		}
		return nil, invalidBinding(k)
	case vars.ReflectedArray:
		return NewReflected(v.Binding())
	case vars.Thread:
		if ts, ok := v.Binding().(*ThreadStore); ok {
			return ts, nil
		}
		return nil, invalidBinding(k)
	case vars.Database:
		if db, ok := v.Binding().(Database); ok {
			return db, nil
		}
		return nil, invalidBinding(k)
	case vars.Network:
		if n, ok := v.Binding().(Network); ok {
			return n, nil
		}
		return nil, invalidBinding(k)
	case vars.RegistryKey:
		if rk, ok := v.Binding().(RegistryKey); ok {
			return rk, nil
		}
		return nil, invalidBinding(k)
	default:
		return nil, fmt.Errorf("unknown backend kind %v", k)
	}
}

func invalidBinding(k vars.Kind) error {
	return fmt.Errorf("invalid %s variable", k)
}

// Keys returns the keys that match m. A nil Matcher matches everything.
func Keys(src Source, m match.Matcher) ([]string, error) {
	if n, ok := src.(Native); ok {
		return n.Store.Keys(m), nil
	}
	pairs, err := src.Pairs()
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, p := range pairs {
		if m == nil || m.Match(p.Key) {
			keys = append(keys, p.Key)
		}
	}
	return keys, nil
}

// Values returns the string values that match m.
func Values(src Source, m match.Matcher) ([]string, error) {
	if n, ok := src.(Native); ok {
		return n.Store.Values(m), nil
	}
	pairs, err := src.Pairs()
	if err != nil {
		return nil, err
	}
	var values []string
	for _, p := range pairs {
		if s := elems.ToString(p.Value); m == nil || m.Match(s) {
			values = append(values, s)
		}
	}
	return values, nil
}

// KeyValues returns alternating keys and string values of the elements whose
// keys match m.
func KeyValues(src Source, m match.Matcher) ([]string, error) {
	if n, ok := src.(Native); ok {
		return n.Store.Pairs(m), nil
	}
	pairs, err := src.Pairs()
	if err != nil {
		return nil, err
	}
	var kvs []string
	for _, p := range pairs {
		if m == nil || m.Match(p.Key) {
			kvs = append(kvs, p.Key, elems.ToString(p.Value))
		}
	}
	return kvs, nil
}

// FilterSpec selects what a pattern is matched against in Filter.
type FilterSpec struct {
	Matcher    match.Matcher
	MatchName  bool
	MatchValue bool
}

// Filter copies the elements selected by spec into a new store. With a
// Matcher and neither flag set, names are matched. With both flags set, the
// Matcher sees "<name> <value>".
func Filter(src Source, spec FilterSpec) (*elems.Store, error) {
	pairs, err := src.Pairs()
	if err != nil {
		return nil, err
	}
	if spec.Matcher != nil && !spec.MatchName && !spec.MatchValue {
		spec.MatchName = true
	}
	s := elems.NewWithCapacity(len(pairs))
	for _, p := range pairs {
		if spec.Matcher != nil {
			var subject string
			switch {
			case spec.MatchName && spec.MatchValue:
				subject = p.Key + " " + elems.ToString(p.Value)
			case spec.MatchName:
				subject = p.Key
			default:
				subject = elems.ToString(p.Value)
			}
			if !spec.Matcher.Match(subject) {
				continue
			}
		}
		s.Set(p.Key, p.Value)
	}
	return s, nil
}

// Native is the Source of a native array.
type Native struct {
	Store *elems.Store
}

func (Native) Kind() vars.Kind { return vars.Native }

func (n Native) Len() (int, error) { return n.Store.Len(), nil }

func (n Native) Pairs() ([]Pair, error) {
	pairs := make([]Pair, 0, n.Store.Len())
	for _, k := range n.Store.Keys(nil) {
		v, _ := n.Store.Get(k)
		pairs = append(pairs, Pair{k, v})
	}
	return pairs, nil
}

func (n Native) Get(key string) (any, bool, error) {
	v, ok := n.Store.Get(key)
	return v, ok, nil
}

func (n Native) Set(pairs []Pair) error {
	for _, p := range pairs {
		n.Store.Set(p.Key, p.Value)
	}
	return nil
}

func (n Native) Remove(key string) error {
	n.Store.Remove(key)
	return nil
}

func (Native) ReadOnly() bool { return false }
