package prog

import (
	"context"
	"net"
	"os"
	"os/signal"

	"github.com/tclarray/tclarray/pkg/kvrpc"
	"github.com/tclarray/tclarray/pkg/logutil"
)

var logger = logutil.GetLogger("[prog] ")

// ServeProgram runs a key-value server that Network arrays of other
// processes can bind to. It runs only when -serve is given.
type ServeProgram struct {
	// Listen opens the listener; net.Listen on "tcp" when nil.
	Listen func(addr string) (net.Listener, error)
	// Ctx bounds the server; a context cancelled by an interrupt when nil.
	Ctx context.Context
}

func (p ServeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	if f.Serve == "" {
		return ErrNotSuitable
	}
	if len(args) > 0 {
		return BadUsage("arguments are not allowed with -serve")
	}
	listen := p.Listen
	if listen == nil {
		listen = func(addr string) (net.Listener, error) { return net.Listen("tcp", addr) }
	}
	l, err := listen(f.Serve)
	if err != nil {
		return err
	}
	ctx := p.Ctx
	if ctx == nil {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
	}
	logger.Println("serving arrays at", l.Addr())
	return kvrpc.NewServer().Serve(ctx, l)
}
