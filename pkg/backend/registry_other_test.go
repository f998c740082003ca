//go:build !windows
// +build !windows

package backend

import (
	"errors"
	"testing"
)

func TestRegistryKey_NotSupported(t *testing.T) {
	rk := RegistryKey{`HKCU\Software\Example`}
	if _, err := rk.Pairs(); !errors.Is(err, ErrNotSupported) {
		t.Errorf("Pairs -> %v", err)
	}
	if err := rk.Set([]Pair{{"a", "b"}}); err == nil || err.Error() != "operation not supported for registry key" {
		t.Errorf("Set -> %v", err)
	}
}
