package kvrpc

import (
	"context"
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func setup(t *testing.T) *Client {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	serverConn, clientConn := net.Pipe()
	NewServer().ServeConn(ctx, serverConn)
	c := NewClient(ctx, clientConn)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClientServer(t *testing.T) {
	ctx := context.Background()
	c := setup(t)

	if n, err := c.Len(ctx, "a"); n != 0 || err != nil {
		t.Errorf("Len of new namespace -> (%d, %v)", n, err)
	}
	if err := c.Set(ctx, "a", "y", "2", "x", "1"); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "b", "other", "ns"); err != nil {
		t.Fatal(err)
	}
	if n, _ := c.Len(ctx, "a"); n != 2 {
		t.Errorf("Len -> %d, want 2", n)
	}
	pairs, err := c.Pairs(ctx, "a")
	if diff := cmp.Diff([]string{"x", "1", "y", "2"}, pairs); err != nil || diff != "" {
		t.Errorf("Pairs -> err %v, (-want +got):\n%s", err, diff)
	}

	if err := c.Del(ctx, "a", "x"); err != nil {
		t.Errorf("Del -> %v", err)
	}
	if err := c.Del(ctx, "a", "x"); err == nil || err.Error() != "no such key" {
		t.Errorf("Del of missing key -> %v, want no such key", err)
	}
}

func TestServer_RejectsOddPairs(t *testing.T) {
	c := setup(t)
	if err := c.Set(context.Background(), "a", "lonely"); err == nil || err.Error() != "invalid params" {
		t.Errorf("Set with odd pairs -> %v", err)
	}
}

func TestServe_Listener(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skip("cannot listen:", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServer().Serve(ctx, l) }()

	c, err := Dial(ctx, l.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "n", "k", "v"); err != nil {
		t.Errorf("Set -> %v", err)
	}
	c.Close()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Serve -> %v", err)
	}
}
