// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoElement is returned by ArrayGet when the element doesn't exist.
var ErrNoElement = errors.New("no such element")

// ErrNoArray is returned when the named array doesn't exist.
var ErrNoArray = errors.New("no such array")

// Store is an interface satisfied by the storage service. It keeps named
// arrays of string elements, which the Database backend presents as array
// variables.
type Store interface {
	Arrays() ([]string, error)
	CreateArray(name string) error
	DelArray(name string) error

	ArrayLen(name string) (int, error)
	ArrayPairs(name string) ([]Pair, error)
	ArrayGet(name, key string) (string, error)
	ArraySet(name string, pairs []Pair) error
	ArrayDel(name, key string) error
}

// Pair is an element of a stored array.
type Pair struct {
	Key   string
	Value string
}
