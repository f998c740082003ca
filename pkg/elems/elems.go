// Package elems implements the element store that holds the content of a
// native array variable.
package elems

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"

	"github.com/tclarray/tclarray/pkg/match"
)

// Store maps element names to element values. Values are opaque to the
// store; Pairs and Values convert them to strings with ToString. The zero
// value is not usable; use New.
type Store struct {
	m          map[string]any
	def        any
	hasDefault bool
}

// New creates an empty Store.
func New() *Store { return NewWithCapacity(0) }

// NewWithCapacity creates an empty Store with room for n elements.
func NewWithCapacity(n int) *Store {
	return &Store{m: make(map[string]any, n)}
}

// FromPairs creates a Store from alternating names and values. A later
// occurrence of a name overrides an earlier one. It panics if len(pairs) is
// odd.
func FromPairs(pairs ...string) *Store {
	if len(pairs)%2 != 0 {
		panic("odd number of arguments to elems.FromPairs")
	}
	s := NewWithCapacity(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		s.m[pairs[i]] = pairs[i+1]
	}
	return s
}

// Len returns the number of elements.
func (s *Store) Len() int { return len(s.m) }

// Get returns the value of an element. If the element doesn't exist, it
// returns the default value; the second return value is false only when
// there is neither an element nor a default.
func (s *Store) Get(name string) (any, bool) {
	if v, ok := s.m[name]; ok {
		return v, true
	}
	return s.def, s.hasDefault
}

// Has reports whether the element exists. Default values are not taken into
// account.
func (s *Store) Has(name string) bool {
	_, ok := s.m[name]
	return ok
}

// Set sets the value of an element, creating it if necessary.
func (s *Store) Set(name string, value any) { s.m[name] = value }

// Remove removes an element and reports whether it existed.
func (s *Store) Remove(name string) bool {
	if _, ok := s.m[name]; !ok {
		return false
	}
	delete(s.m, name)
	return true
}

// Merge upserts every element of other into s.
func (s *Store) Merge(other *Store) {
	for k, v := range other.m {
		s.m[k] = v
	}
}

// Clone returns a new Store with the same elements and default. Values are
// shared, not copied.
func (s *Store) Clone() *Store {
	c := &Store{m: make(map[string]any, len(s.m)), def: s.def, hasDefault: s.hasDefault}
	for k, v := range s.m {
		c.m[k] = v
	}
	return c
}

// Keys returns the names of the elements whose names match m, in no
// particular order. A nil Matcher matches every name.
func (s *Store) Keys(m match.Matcher) []string {
	var keys []string
	for k := range s.m {
		if m == nil || m.Match(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Values returns the string forms of the values whose string forms match m.
func (s *Store) Values(m match.Matcher) []string {
	var values []string
	for _, v := range s.m {
		str := ToString(v)
		if m == nil || m.Match(str) {
			values = append(values, str)
		}
	}
	return values
}

// Pairs returns alternating names and string values for the elements whose
// names match m.
func (s *Store) Pairs(m match.Matcher) []string {
	var pairs []string
	for k, v := range s.m {
		if m == nil || m.Match(k) {
			pairs = append(pairs, k, ToString(v))
		}
	}
	return pairs
}

// Random returns the name of a uniformly chosen element. It returns false
// when the store is empty.
func (s *Store) Random(rng *rand.Rand) (string, bool) {
	if len(s.m) == 0 {
		return "", false
	}
	// Map iteration order is not uniform, so pick by index over sorted keys.
	keys := s.Keys(nil)
	sort.Strings(keys)
	return keys[rng.Intn(len(keys))], true
}

// HasDefault reports whether a default value is set.
func (s *Store) HasDefault() bool { return s.hasDefault }

// Default returns the default value and whether it is set.
func (s *Store) Default() (any, bool) { return s.def, s.hasDefault }

// SetDefault sets the default value. No element is created.
func (s *Store) SetDefault(v any) { s.def, s.hasDefault = v, true }

// UnsetDefault removes the default value and reports whether one was set.
func (s *Store) UnsetDefault() bool {
	had := s.hasDefault
	s.def, s.hasDefault = nil, false
	return had
}

// ToString converts an element value to its string form.
func ToString(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
