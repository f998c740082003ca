//go:build !windows
// +build !windows

package backend

import "github.com/tclarray/tclarray/pkg/vars"

func (RegistryKey) Len() (int, error) { return 0, NotSupportedError{vars.RegistryKey} }

func (RegistryKey) Pairs() ([]Pair, error) { return nil, NotSupportedError{vars.RegistryKey} }

func (RegistryKey) Get(string) (any, bool, error) {
	return nil, false, NotSupportedError{vars.RegistryKey}
}

func (RegistryKey) Set([]Pair) error { return NotSupportedError{vars.RegistryKey} }

func (RegistryKey) Remove(string) error { return NotSupportedError{vars.RegistryKey} }
