package vars

import "github.com/tclarray/tclarray/pkg/elems"

// Op is the kind of mutation a trace is told about.
type Op uint8

// Possible values of Op.
const (
	BeforeSet Op = iota
	BeforeUnset
)

func (op Op) String() string {
	if op == BeforeUnset {
		return "BeforeUnset"
	}
	return "BeforeSet"
}

// TraceEvent describes a pending mutation.
type TraceEvent struct {
	Op   Op
	Name string
	// Element names the single element being set or unset, if any.
	Element string
	Var     *Variable
	// Old is the current content (nil if the array is being created; a
	// snapshot for virtual arrays) and New the content about to be merged
	// in or installed.
	Old, New *elems.Store
}

// Trace is called before a mutation. Returning an error vetoes the mutation;
// the error is reported to the caller unchanged.
type Trace func(ev TraceEvent) error

// Fire calls the traces in order, stopping at the first error.
func Fire(traces []Trace, ev TraceEvent) error {
	for _, tr := range traces {
		if err := tr(ev); err != nil {
			return err
		}
	}
	return nil
}
