package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// script runs a file of commands, one per line.
func script(rt *runtime, fds [3]*os.File, fname string) int {
	abs, err := filepath.Abs(fname)
	if err != nil {
		fmt.Fprintf(fds[2], "cannot get full path of script %q: %v\n", fname, err)
		return 2
	}
	code, err := os.ReadFile(abs)
	if err != nil {
		fmt.Fprintf(fds[2], "cannot read script %q: %v\n", abs, err)
		return 2
	}
	lines := strings.Split(strings.ReplaceAll(string(code), "\r\n", "\n"), "\n")
	return runLines(rt, fds, lines)
}

// runLines runs commands in order, printing non-empty results. It stops at
// the first error and returns 2 in that case.
func runLines(rt *runtime, fds [3]*os.File, lines []string) int {
	for i, line := range lines {
		result, err := rt.eval(line)
		var exit errExit
		switch {
		case errors.As(err, &exit):
			return exit.code
		case err != nil:
			fmt.Fprintf(fds[2], "error: %v\n", err)
			logger.Printf("command %d failed: %v", i+1, err)
			return 2
		case result != "":
			fmt.Fprintln(fds[1], result)
		}
	}
	return 0
}
