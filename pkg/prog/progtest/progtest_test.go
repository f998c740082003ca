package progtest

import (
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/tclarray/tclarray/pkg/prog"
)

// echoProgram copies stdin to stdout and its arguments to stderr.
type echoProgram struct{}

func (echoProgram) Run(fds [3]*os.File, _ *prog.Flags, args []string) error {
	io.Copy(fds[1], fds[0])
	fmt.Fprint(fds[2], args)
	if len(args) > 0 && args[0] == "fail" {
		return prog.Exit(3)
	}
	return nil
}

func TestRun(t *testing.T) {
	exit, stdout, stderr := Run(echoProgram{}, "input", "tclarray", "a", "b")
	if exit != 0 || stdout != "input" || stderr != "[a b]" {
		t.Errorf("Run -> (%v, %q, %q)", exit, stdout, stderr)
	}
}

func TestTest(t *testing.T) {
	Test(t, echoProgram{},
		ThatTclarray().DoesNothing().WritesStderr("[]"),
		ThatTclarray("x").WithStdin("hello\n").
			WritesStdout("hello\n").WritesStderrContaining("x"),
		ThatTclarray("fail").ExitsWith(3).WritesStderr("[fail]").
			WritesStdoutContaining(""),
	)
}
