package backend

import (
	"errors"
	"os"
	"strings"

	"github.com/tclarray/tclarray/pkg/elems"
	"github.com/tclarray/tclarray/pkg/vars"
)

var errEnvMustBeString = errors.New("environment variable can only be set string values")

// Env is the Source of the process environment.
type Env struct{}

func (Env) Kind() vars.Kind { return vars.Environment }

func (e Env) Len() (int, error) {
	pairs, _ := e.Pairs()
	return len(pairs), nil
}

func (Env) Pairs() ([]Pair, error) {
	environ := os.Environ()
	pairs := make([]Pair, 0, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		// Windows has entries like "=C:=C:\", which have no name.
		if !ok || k == "" {
			continue
		}
		pairs = append(pairs, Pair{k, v})
	}
	return pairs, nil
}

func (Env) Get(key string) (any, bool, error) {
	v, ok := os.LookupEnv(key)
	return v, ok, nil
}

func (Env) Set(pairs []Pair) error {
	for _, p := range pairs {
		switch v := p.Value.(type) {
		case string:
			if err := os.Setenv(p.Key, v); err != nil {
				return err
			}
		case nil:
			return errEnvMustBeString
		default:
			if err := os.Setenv(p.Key, elems.ToString(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (Env) Remove(key string) error { return os.Unsetenv(key) }

func (Env) ReadOnly() bool { return false }
