//go:build windows
// +build windows

package backend

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sys/windows/registry"

	"github.com/tclarray/tclarray/pkg/elems"
)

var roots = map[string]registry.Key{
	"HKCR": registry.CLASSES_ROOT,
	"HKCU": registry.CURRENT_USER,
	"HKLM": registry.LOCAL_MACHINE,
	"HKU":  registry.USERS,
	"HKCC": registry.CURRENT_CONFIG,
}

func (rk RegistryKey) open(access uint32) (registry.Key, error) {
	root, path, _ := strings.Cut(rk.Path, `\`)
	k, ok := roots[strings.ToUpper(root)]
	if !ok {
		return 0, fmt.Errorf("unknown registry root %q", root)
	}
	if access&registry.SET_VALUE != 0 {
		key, _, err := registry.CreateKey(k, path, access)
		return key, err
	}
	return registry.OpenKey(k, path, access)
}

func readValue(key registry.Key, name string) (any, bool, error) {
	s, _, err := key.GetStringValue(name)
	if err == nil {
		return s, true, nil
	}
	if errors.Is(err, registry.ErrNotExist) {
		return nil, false, nil
	}
	if errors.Is(err, registry.ErrUnexpectedType) {
		if n, _, err := key.GetIntegerValue(name); err == nil {
			return strconv.FormatUint(n, 10), true, nil
		}
		if b, _, err := key.GetBinaryValue(name); err == nil {
			return string(b), true, nil
		}
	}
	return nil, false, err
}

func (rk RegistryKey) Len() (int, error) {
	key, err := rk.open(registry.QUERY_VALUE)
	if err != nil {
		return 0, err
	}
	defer key.Close()
	info, err := key.Stat()
	if err != nil {
		return 0, err
	}
	return int(info.ValueCount), nil
}

func (rk RegistryKey) Pairs() ([]Pair, error) {
	key, err := rk.open(registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer key.Close()
	names, err := key.ReadValueNames(-1)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	pairs := make([]Pair, 0, len(names))
	for _, name := range names {
		v, ok, err := readValue(key, name)
		if err != nil {
			return nil, err
		}
		if ok {
			pairs = append(pairs, Pair{name, v})
		}
	}
	return pairs, nil
}

func (rk RegistryKey) Get(name string) (any, bool, error) {
	key, err := rk.open(registry.QUERY_VALUE)
	if err != nil {
		return nil, false, err
	}
	defer key.Close()
	return readValue(key, name)
}

func (rk RegistryKey) Set(pairs []Pair) error {
	key, err := rk.open(registry.QUERY_VALUE | registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()
	for _, p := range pairs {
		if err := key.SetStringValue(p.Key, elems.ToString(p.Value)); err != nil {
			return err
		}
	}
	return nil
}

func (rk RegistryKey) Remove(name string) error {
	key, err := rk.open(registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()
	if err := key.DeleteValue(name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return err
	}
	return nil
}
