package kvrpc

import (
	"context"
	"errors"
	"net"

	"github.com/sourcegraph/jsonrpc2"
)

// Client talks to a Server. Its methods are safe for concurrent use.
type Client struct {
	conn *jsonrpc2.Conn
}

// Dial connects to a Server listening on a TCP address.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var d net.Dialer
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return NewClient(ctx, c), nil
}

// NewClient creates a Client over an established connection.
func NewClient(ctx context.Context, c net.Conn) *Client {
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(c, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(func(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) (any, error) {
			return nil, errMethodNotFound
		}))
	return &Client{conn}
}

// Len returns the number of keys in a namespace.
func (c *Client) Len(ctx context.Context, ns string) (int, error) {
	var n int
	err := c.call(ctx, MethodLen, Params{Namespace: ns}, &n)
	return n, err
}

// Pairs returns alternating keys and values of a namespace, ordered by key.
func (c *Client) Pairs(ctx context.Context, ns string) ([]string, error) {
	var pairs []string
	err := c.call(ctx, MethodPairs, Params{Namespace: ns}, &pairs)
	return pairs, err
}

// Set upserts alternating keys and values into a namespace.
func (c *Client) Set(ctx context.Context, ns string, pairs ...string) error {
	return c.call(ctx, MethodSet, Params{Namespace: ns, Pairs: pairs}, nil)
}

// Del deletes a key from a namespace.
func (c *Client) Del(ctx context.Context, ns, key string) error {
	return c.call(ctx, MethodDel, Params{Namespace: ns, Key: key}, nil)
}

// Close closes the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) call(ctx context.Context, method string, params Params, result any) error {
	err := c.conn.Call(ctx, method, params, result)
	var rpcErr *jsonrpc2.Error
	if errors.As(err, &rpcErr) {
		if rpcErr.Message == ErrNoKey.Error() {
			return ErrNoKey
		}
		return errors.New(rpcErr.Message)
	}
	return err
}
