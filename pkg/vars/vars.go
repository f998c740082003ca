// Package vars contains the variable table of an interpreter: variables that
// hold a scalar or an array, the links between them, and the backend kind
// that decides where an array's content lives.
package vars

import (
	"fmt"

	"github.com/tclarray/tclarray/pkg/elems"
)

// Kind classifies where the content of an array variable lives.
type Kind uint8

// Possible values of Kind. Native arrays keep their elements in an
// elems.Store; all other kinds are views of an external resource.
const (
	Native Kind = iota
	Environment
	Diagnostics
	ReflectedArray
	Thread
	Database
	Network
	RegistryKey
)

var kindNames = [...]string{
	Native:         "native",
	Environment:    "environment",
	Diagnostics:    "diagnostics",
	ReflectedArray: "reflected array",
	Thread:         "thread",
	Database:       "database",
	Network:        "network",
	RegistryKey:    "registry key",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Virtual reports whether the kind is backed by something other than an
// elems.Store.
func (k Kind) Virtual() bool { return k != Native }

// Handle identifies a slot in a Table. The zero Handle is never valid.
type Handle uint32

type flag uint8

const (
	flagArray flag = 1 << iota
	flagUndefined
	flagLink
)

// Variable is a storage slot. It holds either a scalar value or an array,
// never both; a link variable holds neither and refers to another variable.
type Variable struct {
	table   *Table
	handle  Handle
	id      uint64
	name    string
	flags   flag
	link    Handle
	linkID  uint64
	kind    Kind
	scalar  any
	elems   *elems.Store
	binding any
	traces  []Trace
}

// Name returns the name of the variable, without namespace qualifiers.
func (v *Variable) Name() string { return v.name }

// QualifiedName returns the fully qualified name of the variable.
func (v *Variable) QualifiedName() string { return "::" + v.name }

// Handle returns the handle of the variable in its table.
func (v *Variable) Handle() Handle { return v.handle }

// ID returns a number that identifies the variable for its whole life. IDs
// are never reused, so they can be held as weak references.
func (v *Variable) ID() uint64 { return v.id }

// Table returns the table the variable belongs to.
func (v *Variable) Table() *Table { return v.table }

// IsArray reports whether the variable is an array.
func (v *Variable) IsArray() bool { return v.flags&flagArray != 0 }

// IsUndefined reports whether the variable is declared but has no value.
func (v *Variable) IsUndefined() bool { return v.flags&flagUndefined != 0 }

// IsLink reports whether the variable is a link to another variable.
func (v *Variable) IsLink() bool { return v.flags&flagLink != 0 }

// Kind returns the backend kind of the variable.
func (v *Variable) Kind() Kind { return v.kind }

// Elems returns the element store of a native array, or nil.
func (v *Variable) Elems() *elems.Store { return v.elems }

// Binding returns the backend-specific value a virtual array is bound to.
func (v *Variable) Binding() any { return v.binding }

// Scalar returns the scalar value and whether the variable holds one.
func (v *Variable) Scalar() (any, bool) {
	if v.flags&(flagArray|flagUndefined|flagLink) != 0 {
		return nil, false
	}
	return v.scalar, true
}

// SetScalar makes the variable a scalar holding val. It fails if the
// variable is an array.
func (v *Variable) SetScalar(val any) error {
	if v.IsArray() {
		return fmt.Errorf("can't set %q: variable is array", v.name)
	}
	v.scalar = val
	v.flags &^= flagUndefined
	return nil
}

// SetElems makes the variable a native array with the given store.
func (v *Variable) SetElems(s *elems.Store) {
	v.kind, v.binding = Native, nil
	v.elems = s
	v.scalar = nil
	v.flags = v.flags&^flagUndefined | flagArray
}

// Bind makes the variable a virtual array of the given kind. The binding is
// interpreted by the backend package.
func (v *Variable) Bind(kind Kind, binding any) {
	v.kind, v.binding = kind, binding
	v.elems = nil
	v.scalar = nil
	v.flags = v.flags&^flagUndefined | flagArray
}

// Traces returns the traces attached to the variable.
func (v *Variable) Traces() []Trace { return v.traces }

// AddTrace attaches a trace to the variable.
func (v *Variable) AddTrace(tr Trace) { v.traces = append(v.traces, tr) }
