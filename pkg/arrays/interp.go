// Package arrays implements the array verbs of an interpreter: queries,
// the set/copy/unset mutation pipeline, random selection, default values and
// search cursors, over native and virtual arrays alike.
//
// Every verb runs under the interpreter lock for its whole duration: queries
// take the read lock and mutations the write lock. Traces run with the lock
// held and must not call back into the Interp.
package arrays

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/tclarray/tclarray/pkg/backend"
	"github.com/tclarray/tclarray/pkg/elems"
	"github.com/tclarray/tclarray/pkg/errutil"
	"github.com/tclarray/tclarray/pkg/logutil"
	"github.com/tclarray/tclarray/pkg/match"
	"github.com/tclarray/tclarray/pkg/search"
	"github.com/tclarray/tclarray/pkg/vars"
)

var logger = logutil.GetLogger("[arrays] ")

// Options configures an Interp.
type Options struct {
	// ElementLimit caps the number of elements "set" may bring an array to.
	// Zero means no limit.
	ElementLimit int
	// NoCase makes patterns match case-insensitively unless a Spec says
	// otherwise.
	NoCase bool
	// RandomSeed seeds the generator used by Random. Zero means a seed
	// derived from the current time.
	RandomSeed int64
}

// Interp holds the variables of one interpreter and the state the array
// verbs share.
type Interp struct {
	mu       sync.RWMutex
	vars     *vars.Table
	searches *search.Registry
	rng      *rand.Rand
	limit    int
	noCase   bool
	nextID   int64
	traces   []vars.Trace
	onDirty  func(name string)
}

// New creates an Interp.
func New(opts Options) *Interp {
	seed := opts.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	it := &Interp{
		vars:   vars.NewTable(),
		rng:    rand.New(rand.NewSource(seed)),
		limit:  opts.ElementLimit,
		noCase: opts.NoCase,
	}
	it.searches = search.NewRegistry(it.newID)
	return it
}

// newID returns the next value of the interpreter-wide id counter.
func (it *Interp) newID() int64 {
	it.nextID++
	return it.nextID
}

// OnDirty sets the function called with the variable name whenever "set" or
// "copy" signals that an array changed.
func (it *Interp) OnDirty(f func(name string)) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.onDirty = f
}

// AddGlobalTrace adds a trace that fires for mutations of every array.
func (it *Interp) AddGlobalTrace(tr vars.Trace) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.traces = append(it.traces, tr)
}

// AddTrace adds a trace to a variable, declaring it if necessary.
func (it *Interp) AddTrace(name string, tr vars.Trace) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.declare(name)
	if err != nil {
		return err
	}
	v.AddTrace(tr)
	return nil
}

// SetScalar sets a variable to a scalar value.
func (it *Interp) SetScalar(name string, val any) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.declare(name)
	if err != nil {
		return err
	}
	return v.SetScalar(val)
}

// GetScalar returns the value of a scalar variable.
func (it *Interp) GetScalar(name string) (any, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	v, err := it.resolve(name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("can't read \"%s\": no such variable", name)
	}
	val, ok := v.Scalar()
	if !ok {
		return nil, fmt.Errorf("can't read \"%s\": variable is array", name)
	}
	return val, nil
}

// Link makes name an alias of target.
func (it *Interp) Link(name, target string) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	_, err := it.vars.Link(name, target)
	return err
}

// Bind makes a variable a virtual array of the given kind. The binding must
// be what the backend package expects for that kind. A variable that already
// has a value can't be bound.
func (it *Interp) Bind(name string, kind vars.Kind, binding any) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	v, err := it.declare(name)
	if err != nil {
		return err
	}
	if !v.IsUndefined() {
		return fmt.Errorf("variable %q already exists", name)
	}
	v.Bind(kind, binding)
	if _, err := backend.For(v); err != nil {
		it.vars.Unset(v)
		return err
	}
	logger.Printf("bound %s to a %v array", name, kind)
	return nil
}

// Close releases the resources of bindings that hold them, such as thread
// stores. It returns all the errors encountered.
func (it *Interp) Close() error {
	it.mu.Lock()
	defer it.mu.Unlock()
	var errs []error
	closed := make(map[io.Closer]bool)
	for _, name := range it.vars.Names() {
		v, _ := it.vars.Lookup(name)
		if v == nil || !v.IsArray() || !v.Kind().Virtual() {
			continue
		}
		if c, ok := v.Binding().(io.Closer); ok && !closed[c] {
			closed[c] = true
			errs = append(errs, c.Close())
		}
	}
	return errutil.Multi(errs...)
}

// resolve looks up a variable and follows links. It returns nil when the
// variable doesn't exist or is undefined.
func (it *Interp) resolve(name string) (*vars.Variable, error) {
	v, err := it.vars.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("can't resolve %q: %w", name, err)
	}
	if v == nil || v.IsUndefined() {
		return nil, nil
	}
	return v, nil
}

// resolveArray is like resolve, but returns nil for variables that are not
// arrays as well.
func (it *Interp) resolveArray(name string) (*vars.Variable, error) {
	v, err := it.resolve(name)
	if v == nil || !v.IsArray() {
		return nil, err
	}
	return v, nil
}

// mustResolveArray fails with the "isn't an array" error when the variable
// is not an array.
func (it *Interp) mustResolveArray(name string) (*vars.Variable, error) {
	v, err := it.resolveArray(name)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, notArray(name)
	}
	return v, nil
}

// declare resolves a variable, creating it in the undefined state when
// missing. Links are followed; a link to a missing variable declares the
// link target.
func (it *Interp) declare(name string) (*vars.Variable, error) {
	v, err := it.vars.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("can't resolve %q: %w", name, err)
	}
	if v == nil {
		v = it.vars.Declare(name)
	}
	return v, nil
}

func (it *Interp) source(name string, v *vars.Variable) (backend.Source, error) {
	src, err := backend.For(v)
	if err != nil {
		logger.Printf("backend of %s: %v", name, err)
		return nil, err
	}
	return src, nil
}

// compile compiles a pattern, applying the interpreter's case setting. A nil
// Spec compiles to a nil Matcher, which matches everything.
func (it *Interp) compile(spec *match.Spec) (match.Matcher, error) {
	if spec == nil {
		return nil, nil
	}
	sp := *spec
	sp.NoCase = sp.NoCase || it.noCase
	return sp.Compile()
}

func (it *Interp) traced(v *vars.Variable) bool {
	return len(it.traces) > 0 || len(v.Traces()) > 0
}

// snapshot copies the current content of a source into a new native store.
func snapshot(src backend.Source) (*elems.Store, error) {
	pairs, err := src.Pairs()
	if err != nil {
		return nil, err
	}
	s := elems.NewWithCapacity(len(pairs))
	for _, p := range pairs {
		s.Set(p.Key, p.Value)
	}
	return s, nil
}

func (it *Interp) fire(v *vars.Variable, ev vars.TraceEvent) error {
	ev.Var = v
	if err := vars.Fire(it.traces, ev); err != nil {
		return err
	}
	return vars.Fire(v.Traces(), ev)
}

func (it *Interp) signalDirty(name string) {
	if it.onDirty != nil {
		it.onDirty(name)
	}
}

func notArray(name string) error {
	return fmt.Errorf("\"%s\" isn't an array", name)
}

// ErrBreak and ErrContinue may be returned by ForEach and ForEachPair
// callbacks to end the loop or skip to the next element.
var (
	ErrBreak    = errors.New("break")
	ErrContinue = errors.New("continue")
)
