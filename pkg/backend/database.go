package backend

import (
	"errors"

	"github.com/tclarray/tclarray/pkg/elems"
	"github.com/tclarray/tclarray/pkg/store/storedefs"
	"github.com/tclarray/tclarray/pkg/vars"
)

// Database is the binding of a Database variable: a named array kept in a
// store. A missing array reads as empty and is created on the first write.
type Database struct {
	Store storedefs.Store
	Array string
}

func (Database) Kind() vars.Kind { return vars.Database }

func (db Database) Len() (int, error) {
	n, err := db.Store.ArrayLen(db.Array)
	if errors.Is(err, storedefs.ErrNoArray) {
		return 0, nil
	}
	return n, err
}

func (db Database) Pairs() ([]Pair, error) {
	stored, err := db.Store.ArrayPairs(db.Array)
	if errors.Is(err, storedefs.ErrNoArray) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	pairs := make([]Pair, len(stored))
	for i, p := range stored {
		pairs[i] = Pair{p.Key, p.Value}
	}
	return pairs, nil
}

func (db Database) Get(key string) (any, bool, error) {
	v, err := db.Store.ArrayGet(db.Array, key)
	switch {
	case err == nil:
		return v, true, nil
	case errors.Is(err, storedefs.ErrNoElement), errors.Is(err, storedefs.ErrNoArray):
		return nil, false, nil
	default:
		return nil, false, err
	}
}

func (db Database) Set(pairs []Pair) error {
	stored := make([]storedefs.Pair, len(pairs))
	for i, p := range pairs {
		stored[i] = storedefs.Pair{Key: p.Key, Value: elems.ToString(p.Value)}
	}
	return db.Store.ArraySet(db.Array, stored)
}

func (db Database) Remove(key string) error {
	err := db.Store.ArrayDel(db.Array, key)
	if errors.Is(err, storedefs.ErrNoElement) || errors.Is(err, storedefs.ErrNoArray) {
		return nil
	}
	return err
}

func (Database) ReadOnly() bool { return false }
