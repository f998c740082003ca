package vars

import (
	"errors"
	"fmt"
	"strings"
)

// MaxLinkDepth is the maximum number of links Follow traverses.
const MaxLinkDepth = 64

// Errors returned when following links.
var (
	ErrLinkDepth    = errors.New("too many nested links")
	ErrLinkCycle    = errors.New("link cycle detected")
	ErrLinkDangling = errors.New("link target no longer exists")
)

// Table holds the variables of one interpreter, addressed by name or by
// Handle. It is not safe for concurrent use; the interpreter lock guards it.
type Table struct {
	slots  []*Variable
	byName map[string]Handle
	nextID uint64
}

// NewTable creates an empty Table.
func NewTable() *Table {
	// Slot 0 stays empty so that the zero Handle is invalid.
	return &Table{slots: []*Variable{nil}, byName: make(map[string]Handle)}
}

// NormalizeName strips the global namespace qualifier from a name.
func NormalizeName(name string) string {
	return strings.TrimLeft(strings.TrimPrefix(name, "::"), ":")
}

// SplitName splits a reference like "a(x)" into the variable name and the
// element name. ok is false when the reference names no element.
func SplitName(ref string) (name, elem string, ok bool) {
	if i := strings.IndexByte(ref, '('); i > 0 && strings.HasSuffix(ref, ")") {
		return ref[:i], ref[i+1 : len(ref)-1], true
	}
	return ref, "", false
}

// Lookup finds a variable by name. It does not follow links.
func (t *Table) Lookup(name string) (*Variable, bool) {
	h, ok := t.byName[NormalizeName(name)]
	if !ok {
		return nil, false
	}
	return t.slots[h], true
}

// Get returns the variable with the given handle, or nil if the handle is
// invalid or the variable was unset.
func (t *Table) Get(h Handle) *Variable {
	if h == 0 || int(h) >= len(t.slots) {
		return nil
	}
	return t.slots[h]
}

// Declare returns the named variable, creating it in the undefined state if
// it doesn't exist.
func (t *Table) Declare(name string) *Variable {
	if v, ok := t.Lookup(name); ok {
		return v
	}
	name = NormalizeName(name)
	t.nextID++
	v := &Variable{
		table:  t,
		handle: Handle(len(t.slots)),
		id:     t.nextID,
		name:   name,
		flags:  flagUndefined,
	}
	t.slots = append(t.slots, v)
	t.byName[name] = v.handle
	return v
}

// Link makes name an alias of target. The target is declared if it doesn't
// exist. Linking a name that already holds a value is an error.
func (t *Table) Link(name, target string) (*Variable, error) {
	if NormalizeName(name) == NormalizeName(target) {
		return nil, fmt.Errorf("can't link %q to itself", name)
	}
	v := t.Declare(name)
	if !v.IsUndefined() && !v.IsLink() {
		return nil, fmt.Errorf("variable %q already exists", name)
	}
	tv := t.Declare(target)
	v.flags = flagLink
	v.link, v.linkID = tv.handle, tv.id
	return v, nil
}

// LinkTarget returns the variable a link refers to directly, without
// following further links.
func (t *Table) LinkTarget(v *Variable) (*Variable, error) {
	if !v.IsLink() {
		return v, nil
	}
	tv := t.Get(v.link)
	if tv == nil || tv.id != v.linkID {
		return nil, ErrLinkDangling
	}
	return tv, nil
}

// Follow follows links from v to the terminal variable. It fails when the
// chain is longer than MaxLinkDepth, contains a cycle or ends in a variable
// that was unset.
func (t *Table) Follow(v *Variable) (*Variable, error) {
	seen := make(map[Handle]struct{})
	for depth := 0; v.IsLink(); depth++ {
		if depth >= MaxLinkDepth {
			return nil, ErrLinkDepth
		}
		if _, ok := seen[v.handle]; ok {
			return nil, ErrLinkCycle
		}
		seen[v.handle] = struct{}{}
		next, err := t.LinkTarget(v)
		if err != nil {
			return nil, err
		}
		v = next
	}
	return v, nil
}

// Resolve looks up a name and follows links. The first return value is nil
// when the name doesn't exist.
func (t *Table) Resolve(name string) (*Variable, error) {
	v, ok := t.Lookup(name)
	if !ok {
		return nil, nil
	}
	return t.Follow(v)
}

// Unset removes a variable from the table. Its handle is never reused, and
// links pointing to it become dangling.
func (t *Table) Unset(v *Variable) {
	if t.Get(v.handle) != v {
		return
	}
	t.slots[v.handle] = nil
	delete(t.byName, v.name)
}

// Names returns the names of all variables, in creation order.
func (t *Table) Names() []string {
	var names []string
	for _, v := range t.slots {
		if v != nil {
			names = append(names, v.name)
		}
	}
	return names
}
