package backend

import (
	"errors"
	"sort"

	"github.com/tclarray/tclarray/pkg/vars"
)

// ErrThreadStoreClosed is returned by operations on a closed ThreadStore.
var ErrThreadStoreClosed = errors.New("thread store is closed")

// ThreadStore is an array owned by a dedicated goroutine. Every operation is
// sent to that goroutine and runs there, so the map itself is never shared.
type ThreadStore struct {
	reqs chan func(map[string]any)
	quit chan struct{}
	done chan struct{}
}

// NewThreadStore starts the owning goroutine of a new, empty store.
func NewThreadStore() *ThreadStore {
	ts := &ThreadStore{
		reqs: make(chan func(map[string]any)),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go ts.loop()
	return ts
}

func (ts *ThreadStore) loop() {
	defer close(ts.done)
	m := make(map[string]any)
	for {
		select {
		case f := <-ts.reqs:
			f(m)
		case <-ts.quit:
			return
		}
	}
}

// do runs f on the owning goroutine and waits for it to finish.
func (ts *ThreadStore) do(f func(map[string]any)) error {
	finished := make(chan struct{})
	select {
	case ts.reqs <- func(m map[string]any) { f(m); close(finished) }:
		<-finished
		return nil
	case <-ts.done:
		return ErrThreadStoreClosed
	}
}

// Close stops the owning goroutine. It is safe to call more than once.
func (ts *ThreadStore) Close() error {
	select {
	case <-ts.done:
	default:
		select {
		case ts.quit <- struct{}{}:
		case <-ts.done:
		}
		<-ts.done
	}
	return nil
}

func (*ThreadStore) Kind() vars.Kind { return vars.Thread }

func (ts *ThreadStore) Len() (int, error) {
	var n int
	err := ts.do(func(m map[string]any) { n = len(m) })
	return n, err
}

func (ts *ThreadStore) Pairs() ([]Pair, error) {
	var pairs []Pair
	err := ts.do(func(m map[string]any) {
		pairs = make([]Pair, 0, len(m))
		for k, v := range m {
			pairs = append(pairs, Pair{k, v})
		}
	})
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs, err
}

func (ts *ThreadStore) Get(key string) (any, bool, error) {
	var (
		v  any
		ok bool
	)
	err := ts.do(func(m map[string]any) { v, ok = m[key] })
	return v, ok, err
}

func (ts *ThreadStore) Set(pairs []Pair) error {
	return ts.do(func(m map[string]any) {
		for _, p := range pairs {
			m[p.Key] = p.Value
		}
	})
}

func (ts *ThreadStore) Remove(key string) error {
	return ts.do(func(m map[string]any) { delete(m, key) })
}

func (*ThreadStore) ReadOnly() bool { return false }
