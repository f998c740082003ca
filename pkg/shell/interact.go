package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// interact runs commands read from stdin until EOF or "exit", printing the
// result of each to stdout and errors to stderr. Errors don't end the
// session.
func interact(rt *runtime, fds [3]*os.File) int {
	r := newLineReader(fds[0], fds[2])
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			return 0
		} else if err != nil {
			fmt.Fprintln(fds[2], "cannot read input:", err)
			return 2
		}
		if code, exited := show(rt, fds, line); exited {
			return code
		}
	}
}

// show evaluates one line and prints its outcome. It reports whether the
// line was an exit command, and with which code.
func show(rt *runtime, fds [3]*os.File, line string) (int, bool) {
	result, err := rt.eval(line)
	var exit errExit
	switch {
	case errors.As(err, &exit):
		return exit.code, true
	case err != nil:
		fmt.Fprintln(fds[2], "error:", err)
	case result != "":
		fmt.Fprintln(fds[1], result)
	}
	return 0, false
}
