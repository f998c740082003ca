package backend

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/tclarray/tclarray/pkg/vars"
)

// Reflected is the read-only Source of a Go slice or array bound to a
// ReflectedArray variable. Keys are decimal indices; nested fixed-size arrays
// are flattened and their keys are comma-joined indices, such as "1,2".
type Reflected struct {
	v reflect.Value
}

// NewReflected wraps a slice, an array or a pointer to either.
func NewReflected(binding any) (Reflected, error) {
	v := reflect.ValueOf(binding)
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return Reflected{v}, nil
	}
	return Reflected{}, fmt.Errorf("invalid %s variable", vars.ReflectedArray)
}

// CloneReflected returns an independent copy of a binding accepted by
// NewReflected. Fixed-size arrays are copied by value; slices get a fresh
// backing array.
func CloneReflected(binding any) (any, error) {
	r, err := NewReflected(binding)
	if err != nil {
		return nil, err
	}
	v := r.v
	if v.Kind() == reflect.Slice {
		if v.IsNil() {
			return reflect.Zero(v.Type()).Interface(), nil
		}
		clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(clone, v)
		return clone.Interface(), nil
	}
	clone := reflect.New(v.Type())
	clone.Elem().Set(v)
	return clone.Interface(), nil
}

func (Reflected) Kind() vars.Kind { return vars.ReflectedArray }

func (r Reflected) Len() (int, error) {
	n := r.v.Len()
	for t := r.v.Type().Elem(); t.Kind() == reflect.Array; t = t.Elem() {
		n *= t.Len()
	}
	return n, nil
}

func (r Reflected) Pairs() ([]Pair, error) {
	n, _ := r.Len()
	pairs := make([]Pair, 0, n)
	var walk func(v reflect.Value, prefix string)
	walk = func(v reflect.Value, prefix string) {
		for i := 0; i < v.Len(); i++ {
			key := prefix + strconv.Itoa(i)
			if e := v.Index(i); e.Kind() == reflect.Array {
				walk(e, key+",")
			} else {
				pairs = append(pairs, Pair{key, e.Interface()})
			}
		}
	}
	walk(r.v, "")
	return pairs, nil
}

func (r Reflected) Get(key string) (any, bool, error) {
	v := r.v
	for _, part := range strings.Split(key, ",") {
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			return nil, false, nil
		}
		i, err := strconv.Atoi(part)
		if err != nil || i < 0 || i >= v.Len() || strconv.Itoa(i) != part {
			return nil, false, nil
		}
		v = v.Index(i)
	}
	if v.Kind() == reflect.Array {
		return nil, false, nil
	}
	return v.Interface(), true, nil
}

func (Reflected) Set([]Pair) error { return NotSupportedError{vars.ReflectedArray} }

func (Reflected) Remove(string) error { return NotSupportedError{vars.ReflectedArray} }

func (Reflected) ReadOnly() bool { return true }
