// Tclarray is a shell for Tcl-style associative arrays. It reads "array"
// commands, one per line, and runs them against native arrays and arrays
// backed by the environment, a bbolt database, a key-value server or a
// goroutine-owned store. With -serve it runs such a key-value server instead.
package main

import (
	"os"

	"github.com/tclarray/tclarray/pkg/prog"
	"github.com/tclarray/tclarray/pkg/shell"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(prog.ServeProgram{}, shell.Program{})))
}
