package backend

import "github.com/tclarray/tclarray/pkg/vars"

// RegistryKey is the binding of a RegistryKey variable: the values of a
// Windows registry key, named by a root such as HKCU and a path, as in
// `HKCU\Software\Example`. Values are read as strings or integers and written
// as strings.
type RegistryKey struct {
	Path string
}

func (RegistryKey) Kind() vars.Kind { return vars.RegistryKey }

func (RegistryKey) ReadOnly() bool { return false }
