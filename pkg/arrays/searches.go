package arrays

import (
	"github.com/tclarray/tclarray/pkg/backend"
	"github.com/tclarray/tclarray/pkg/search"
)

// StartSearch starts a search over the element names the array has now and
// returns its id.
func (it *Interp) StartSearch(name string) (string, error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.mustResolveArray(name)
	if err != nil {
		return "", err
	}
	src, err := it.source(name, v)
	if err != nil {
		return "", err
	}
	keys, err := backend.Keys(src, nil)
	if err != nil {
		return "", err
	}
	return it.searches.Start(search.Owner{ID: v.ID(), Name: name}, keys), nil
}

// AnyMore reports whether NextElement would return another name.
func (it *Interp) AnyMore(name, id string) (bool, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, err := it.mustResolveArray(name)
	if err != nil {
		return false, err
	}
	return it.searches.AnyMore(id, search.Owner{ID: v.ID(), Name: name})
}

// NextElement returns the next name of a search, or "" when there are no
// more.
func (it *Interp) NextElement(name, id string) (string, error) {
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.mustResolveArray(name)
	if err != nil {
		return "", err
	}
	return it.searches.Next(id, search.Owner{ID: v.ID(), Name: name})
}

// DoneSearch ends a search.
func (it *Interp) DoneSearch(name, id string) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.mustResolveArray(name)
	if err != nil {
		return err
	}
	return it.searches.Done(id, search.Owner{ID: v.ID(), Name: name})
}

// Searches returns the number of open searches.
func (it *Interp) Searches() int {
	it.mu.RLock()
	defer it.mu.RUnlock()
	return it.searches.Len()
}
