package backend

import (
	"context"
	"errors"
	"time"

	"github.com/tclarray/tclarray/pkg/elems"
	"github.com/tclarray/tclarray/pkg/kvrpc"
	"github.com/tclarray/tclarray/pkg/vars"
)

// Network is the binding of a Network variable: a namespace on a key-value
// server reached through a kvrpc.Client.
type Network struct {
	Client    *kvrpc.Client
	Namespace string
	// Timeout bounds each call. Zero means no limit.
	Timeout time.Duration
}

func (n Network) ctx() (context.Context, context.CancelFunc) {
	if n.Timeout > 0 {
		return context.WithTimeout(context.Background(), n.Timeout)
	}
	return context.WithCancel(context.Background())
}

func (Network) Kind() vars.Kind { return vars.Network }

func (n Network) Len() (int, error) {
	ctx, cancel := n.ctx()
	defer cancel()
	return n.Client.Len(ctx, n.Namespace)
}

func (n Network) Pairs() ([]Pair, error) {
	ctx, cancel := n.ctx()
	defer cancel()
	flat, err := n.Client.Pairs(ctx, n.Namespace)
	if err != nil {
		return nil, err
	}
	pairs := make([]Pair, 0, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		pairs = append(pairs, Pair{flat[i], flat[i+1]})
	}
	return pairs, nil
}

// Get fetches the whole namespace; the protocol has no single-key read.
func (n Network) Get(key string) (any, bool, error) {
	pairs, err := n.Pairs()
	if err != nil {
		return nil, false, err
	}
	for _, p := range pairs {
		if p.Key == key {
			return p.Value, true, nil
		}
	}
	return nil, false, nil
}

func (n Network) Set(pairs []Pair) error {
	ctx, cancel := n.ctx()
	defer cancel()
	flat := make([]string, 0, 2*len(pairs))
	for _, p := range pairs {
		flat = append(flat, p.Key, elems.ToString(p.Value))
	}
	return n.Client.Set(ctx, n.Namespace, flat...)
}

func (n Network) Remove(key string) error {
	ctx, cancel := n.ctx()
	defer cancel()
	err := n.Client.Del(ctx, n.Namespace, key)
	if errors.Is(err, kvrpc.ErrNoKey) {
		return nil
	}
	return err
}

func (Network) ReadOnly() bool { return false }
