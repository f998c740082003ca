// Package testutil contains helpers that set up temporary directories and
// environment variables for tests, undoing the changes when the test ends.
package testutil

// Cleanuper is the part of testing.TB the helpers need. Tests of this
// package supply their own implementation.
type Cleanuper interface {
	Cleanup(func())
}
