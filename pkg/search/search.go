// Package search implements array search cursors: id-addressed iterators
// over a snapshot of an array's element names.
package search

import (
	"fmt"
	"sort"
)

// State is the state of a Cursor.
type State uint8

// Possible values of State.
const (
	Active State = iota
	Exhausted
	Closed
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Exhausted:
		return "exhausted"
	default:
		return "closed"
	}
}

// Owner identifies the variable a cursor belongs to. ID is compared for
// identity; Name is only used in error messages.
type Owner struct {
	ID   uint64
	Name string
}

// Cursor is a search over the element names an array had when the search
// started.
type Cursor struct {
	id    string
	owner uint64
	keys  []string
	pos   int
	state State
}

// ID returns the search identifier.
func (c *Cursor) ID() string { return c.id }

// State returns the state of the cursor.
func (c *Cursor) State() State { return c.state }

func (c *Cursor) next() string {
	if c.state != Active {
		return ""
	}
	key := c.keys[c.pos]
	c.pos++
	if c.pos == len(c.keys) {
		c.state = Exhausted
	}
	return key
}

// Registry holds the cursors of one interpreter. It is not safe for
// concurrent use; the interpreter lock guards it.
type Registry struct {
	cursors map[string]*Cursor
	nextID  func() int64
}

// NewRegistry creates a Registry. Search ids are "arraySearch#<n>", with n
// taken from nextID, which is usually the interpreter's id counter.
func NewRegistry(nextID func() int64) *Registry {
	return &Registry{cursors: make(map[string]*Cursor), nextID: nextID}
}

// Start creates a cursor over keys for the owner and returns its id. The
// keys slice is owned by the cursor afterwards.
func (r *Registry) Start(owner Owner, keys []string) string {
	// Keys come from map iteration; fix an order so that a search is
	// reproducible for the same content.
	sort.Strings(keys)
	c := &Cursor{
		id:    fmt.Sprintf("arraySearch#%d", r.nextID()),
		owner: owner.ID,
		keys:  keys,
	}
	if len(keys) == 0 {
		c.state = Exhausted
	}
	r.cursors[c.id] = c
	return c.id
}

// AnyMore reports whether NextElement would return another name.
func (r *Registry) AnyMore(id string, owner Owner) (bool, error) {
	c, err := r.lookup(id, owner)
	if err != nil {
		return false, err
	}
	return c.state == Active, nil
}

// Next returns the next element name, or "" once the search is exhausted.
func (r *Registry) Next(id string, owner Owner) (string, error) {
	c, err := r.lookup(id, owner)
	if err != nil {
		return "", err
	}
	return c.next(), nil
}

// Done closes a search and removes it from the registry.
func (r *Registry) Done(id string, owner Owner) error {
	c, err := r.lookup(id, owner)
	if err != nil {
		return err
	}
	c.state = Closed
	delete(r.cursors, id)
	return nil
}

// DropOwner closes every search of a variable. It returns the number of
// searches closed.
func (r *Registry) DropOwner(ownerID uint64) int {
	n := 0
	for id, c := range r.cursors {
		if c.owner == ownerID {
			c.state = Closed
			delete(r.cursors, id)
			n++
		}
	}
	return n
}

// Len returns the number of open searches.
func (r *Registry) Len() int { return len(r.cursors) }

// Get returns the cursor with the given id, if it is open.
func (r *Registry) Get(id string) (*Cursor, bool) {
	c, ok := r.cursors[id]
	return c, ok
}

func (r *Registry) lookup(id string, owner Owner) (*Cursor, error) {
	c, ok := r.cursors[id]
	if !ok {
		return nil, fmt.Errorf("couldn't find search \"%s\"", id)
	}
	if c.owner != owner.ID {
		return nil, fmt.Errorf("search identifier \"%s\" isn't for variable \"%s\"", id, owner.Name)
	}
	return c, nil
}
