package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tclarray/tclarray/pkg/arraycmd"
	"github.com/tclarray/tclarray/pkg/arrays"
	"github.com/tclarray/tclarray/pkg/backend"
	"github.com/tclarray/tclarray/pkg/config"
	"github.com/tclarray/tclarray/pkg/elems"
	"github.com/tclarray/tclarray/pkg/errutil"
	"github.com/tclarray/tclarray/pkg/kvrpc"
	"github.com/tclarray/tclarray/pkg/store"
	"github.com/tclarray/tclarray/pkg/tcllist"
	"github.com/tclarray/tclarray/pkg/vars"
)

// Names of the built-in arrays.
const (
	EnvArray    = "env"
	DiagArray   = "diag"
	ThreadArray = "thread"
	DBArray     = "db"
	NetArray    = "net"
)

// Bucket of the database that backs the db array.
const dbBucket = "array"

// errExit is returned by the exit command.
type errExit struct{ code int }

func (e errExit) Error() string { return "exit " + strconv.Itoa(e.code) }

// runtime is an interpreter with the built-in arrays bound.
type runtime struct {
	it     *arrays.Interp
	diag   *backend.Registry
	db     store.DBStore
	client *kvrpc.Client
	errors int
}

func newRuntime(cfg config.Config) (*runtime, error) {
	rt := &runtime{
		it: arrays.New(arrays.Options{
			ElementLimit: cfg.ElementLimit,
			NoCase:       cfg.NoCase,
			RandomSeed:   cfg.RandomSeed,
		}),
		diag: backend.NewRegistry(),
	}
	rt.it.OnDirty(func(name string) { logger.Printf("array %q changed", name) })

	bind := func(name string, kind vars.Kind, binding any) error {
		if err := rt.it.Bind(name, kind, binding); err != nil {
			return fmt.Errorf("cannot bind %s: %w", name, err)
		}
		return nil
	}
	err := errutil.Multi(
		bind(EnvArray, vars.Environment, backend.Env{}),
		bind(DiagArray, vars.Diagnostics, rt.diag),
		bind(ThreadArray, vars.Thread, backend.NewThreadStore()))
	if err != nil {
		rt.close()
		return nil, err
	}

	if cfg.DB != "" {
		db, err := store.NewStore(cfg.DB)
		if err != nil {
			rt.close()
			return nil, fmt.Errorf("cannot open database %s: %w", cfg.DB, err)
		}
		rt.db = db
		if err := bind(DBArray, vars.Database, backend.Database{Store: db, Array: dbBucket}); err != nil {
			rt.close()
			return nil, err
		}
	}
	if cfg.Network != "" {
		timeout := time.Duration(cfg.NetworkTimeout)
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		client, err := kvrpc.Dial(ctx, cfg.Network)
		if err != nil {
			rt.close()
			return nil, fmt.Errorf("cannot connect to %s: %w", cfg.Network, err)
		}
		rt.client = client
		net := backend.Network{Client: client, Namespace: dbBucket, Timeout: timeout}
		if err := bind(NetArray, vars.Network, net); err != nil {
			rt.close()
			return nil, err
		}
	}
	return rt, nil
}

// eval runs one line. Empty lines and lines starting with "#" do nothing.
// Failures are recorded in the diag array.
func (rt *runtime) eval(line string) (string, error) {
	words, err := tcllist.Split(line)
	if err == nil && (len(words) == 0 || words[0] == "" || words[0][0] == '#') {
		return "", nil
	}
	var result string
	if err == nil {
		result, err = rt.call(words)
	}
	if err != nil {
		var exit errExit
		if !errors.As(err, &exit) {
			rt.errors++
			rt.diag.Record("error"+strconv.Itoa(rt.errors), err.Error())
		}
	}
	return result, err
}

func (rt *runtime) call(words []string) (string, error) {
	switch words[0] {
	case "array":
		return arraycmd.Call(rt.it, words)
	case "set":
		return rt.set(words)
	case "unset":
		return rt.unset(words)
	case "upvar":
		if len(words) != 3 {
			return "", wrongArgs("upvar otherVar myVar")
		}
		return "", rt.it.Link(words[2], words[1])
	case "exit":
		code := 0
		if len(words) > 2 {
			return "", wrongArgs("exit ?returnCode?")
		} else if len(words) == 2 {
			var err error
			code, err = strconv.Atoi(words[1])
			if err != nil {
				return "", fmt.Errorf("expected integer but got \"%s\"", words[1])
			}
		}
		return "", errExit{code}
	}
	return "", fmt.Errorf("invalid command name \"%s\"", words[0])
}

// set reads or writes a scalar, or an element when the name has the form
// "arr(elem)".
func (rt *runtime) set(words []string) (string, error) {
	if len(words) < 2 || len(words) > 3 {
		return "", wrongArgs("set varName ?newValue?")
	}
	name, elem, isElem := vars.SplitName(words[1])
	if len(words) == 3 {
		if isElem {
			return words[2], rt.it.SetElement(name, elem, words[2])
		}
		return words[2], rt.it.SetScalar(name, words[2])
	}
	if isElem {
		v, err := rt.it.GetElement(name, elem)
		return elems.ToString(v), err
	}
	v, err := rt.it.GetScalar(name)
	return elems.ToString(v), err
}

func (rt *runtime) unset(words []string) (string, error) {
	for _, word := range words[1:] {
		name, elem, isElem := vars.SplitName(word)
		var err error
		if isElem {
			err = rt.it.UnsetElement(name, elem)
		} else {
			err = rt.it.Unset(name, nil)
		}
		if err != nil {
			return "", err
		}
	}
	return "", nil
}

func wrongArgs(usage string) error {
	return errors.New("wrong # args: should be \"" + usage + "\"")
}

func (rt *runtime) close() error {
	err := rt.it.Close()
	if rt.client != nil {
		err = errutil.Multi(err, rt.client.Close())
	}
	if rt.db != nil {
		err = errutil.Multi(err, rt.db.Close())
	}
	return err
}
