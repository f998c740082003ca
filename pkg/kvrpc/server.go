// Package kvrpc implements a small JSON-RPC 2.0 key/value service. A server
// keeps named namespaces of string pairs; the Network array backend binds an
// array variable to one namespace of a remote server through Client.
package kvrpc

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"sort"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/tclarray/tclarray/pkg/logutil"
)

var logger = logutil.GetLogger("[kvrpc] ")

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// Method names.
const (
	MethodLen   = "kv/len"
	MethodPairs = "kv/pairs"
	MethodSet   = "kv/set"
	MethodDel   = "kv/del"
)

// Params is the parameter object of every method.
type Params struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key,omitempty"`
	// Pairs holds alternating keys and values for kv/set.
	Pairs []string `json:"pairs,omitempty"`
}

// Server holds the namespaces served to clients.
type Server struct {
	mu sync.Mutex
	ns map[string]map[string]string
}

// NewServer creates a Server with no namespaces.
func NewServer() *Server {
	return &Server{ns: make(map[string]map[string]string)}
}

// Serve accepts connections from l until it fails or ctx is done, serving
// each on its own goroutine.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	go func() {
		<-ctx.Done()
		l.Close()
	}()
	for {
		c, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		logger.Println("accepted connection from", c.RemoteAddr())
		s.ServeConn(ctx, c)
	}
}

// ServeConn serves one connection. It returns immediately; the connection
// is closed when the peer disconnects or ctx is done.
func (s *Server) ServeConn(ctx context.Context, c net.Conn) *jsonrpc2.Conn {
	return jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(c, jsonrpc2.VSCodeObjectCodec{}),
		s.handler())
}

func (s *Server) handler() jsonrpc2.Handler {
	return routingHandler(map[string]method{
		MethodLen:   s.len,
		MethodPairs: s.pairs,
		MethodSet:   s.set,
		MethodDel:   s.del,
	})
}

type method func(Params) (any, error)

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params Params
		if req.Params == nil || json.Unmarshal(*req.Params, &params) != nil {
			return nil, errInvalidParams
		}
		return fn(params)
	})
}

// Handler implementations. These are all called synchronously.

func (s *Server) len(p Params) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ns[p.Namespace]), nil
}

func (s *Server) pairs(p Params) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.ns[p.Namespace]
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs, nil
}

func (s *Server) set(p Params) (any, error) {
	if len(p.Pairs)%2 != 0 {
		return nil, errInvalidParams
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.ns[p.Namespace]
	if m == nil {
		m = make(map[string]string)
		s.ns[p.Namespace] = m
	}
	for i := 0; i < len(p.Pairs); i += 2 {
		m[p.Pairs[i]] = p.Pairs[i+1]
	}
	return nil, nil
}

// ErrNoKey is the error message returned when deleting a missing key.
var ErrNoKey = errors.New("no such key")

func (s *Server) del(p Params) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.ns[p.Namespace]
	if _, ok := m[p.Key]; !ok {
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: ErrNoKey.Error()}
	}
	delete(m, p.Key)
	return nil, nil
}
