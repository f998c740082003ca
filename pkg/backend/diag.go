package backend

import (
	"sort"
	"sync"

	"github.com/tclarray/tclarray/pkg/vars"
)

// Registry is a diagnostics registry: the engine records named diagnostic
// entries (test results, warnings) into it, and scripts read them through a
// Diagnostics array. Scripts may remove entries but not add them.
type Registry struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]string)}
}

// Record adds or replaces an entry.
func (r *Registry) Record(name, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = text
}

// Forget removes an entry and reports whether it existed.
func (r *Registry) Forget(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[name]
	delete(r.entries, name)
	return ok
}

func (*Registry) Kind() vars.Kind { return vars.Diagnostics }

func (r *Registry) Len() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries), nil
}

func (r *Registry) Pairs() ([]Pair, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pairs := make([]Pair, 0, len(r.entries))
	for k, v := range r.entries {
		pairs = append(pairs, Pair{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs, nil
}

func (r *Registry) Get(key string) (any, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.entries[key]
	return v, ok, nil
}

func (*Registry) Set([]Pair) error { return NotSupportedError{vars.Diagnostics} }

func (r *Registry) Remove(key string) error {
	r.Forget(key)
	return nil
}

func (*Registry) ReadOnly() bool { return true }
