// Package shell is the line-oriented array shell of tclarray. Each line is a
// Tcl list whose first word is the command; the only commands are "array",
// "set", "unset", "upvar" and "exit".
package shell

import (
	"os"

	"github.com/tclarray/tclarray/pkg/logutil"
	"github.com/tclarray/tclarray/pkg/prog"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram. It runs when no other subprogram does.
type Program struct{}

func (Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	rt, err := newRuntime(f.Settings)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.close(); err != nil {
			logger.Println("closing runtime:", err)
		}
	}()

	if f.CodeInArg {
		if len(args) == 0 {
			return prog.BadUsage("-c requires at least one argument")
		}
		return prog.Exit(runLines(rt, fds, args))
	}
	if len(args) > 0 {
		return prog.Exit(script(rt, fds, args[0]))
	}
	return prog.Exit(interact(rt, fds))
}
