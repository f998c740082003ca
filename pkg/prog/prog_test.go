package prog_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/tclarray/tclarray/pkg/config"
	"github.com/tclarray/tclarray/pkg/logutil"
	"github.com/tclarray/tclarray/pkg/must"
	. "github.com/tclarray/tclarray/pkg/prog"
	"github.com/tclarray/tclarray/pkg/prog/progtest"
	"github.com/tclarray/tclarray/pkg/testutil"
)

var (
	Test         = progtest.Test
	ThatTclarray = progtest.ThatTclarray
)

func TestCommonFlagHandling(t *testing.T) {
	Test(t, testProgram{},
		ThatTclarray("-bad-flag").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -bad-flag\nUsage:"),
		// -h is treated as a bad flag
		ThatTclarray("-h").
			ExitsWith(2).
			WritesStderrContaining("flag provided but not defined: -h\nUsage:"),

		ThatTclarray("-help").
			WritesStdoutContaining("Usage: tclarray [flags] [script]"),

		ThatTclarray("-limit", "-1").
			ExitsWith(2).
			WritesStderr("-limit must not be negative, got -1\n"),
		ThatTclarray("-config", "/a/bad/path.yaml").
			ExitsWith(2).
			WritesStderrContaining("/a/bad/path.yaml"),
	)
}

func TestSettings(t *testing.T) {
	dir := testutil.TempDir(t)
	cfgFile := filepath.Join(dir, "tclarray.yaml")
	must.WriteFile(cfgFile, "element-limit: 10\ndb: from-file.db\nno-case: true\n")
	logFile := filepath.Join(dir, "log")
	t.Cleanup(func() { logutil.SetOutput(io.Discard) })

	p := &settingsProgram{}
	Test(t, p,
		ThatTclarray("-config", cfgFile, "-db", "from-flag.db", "-log", logFile).
			DoesNothing(),
	)
	want := config.Default()
	want.ElementLimit = 10
	want.NoCase = true
	want.DB = "from-flag.db"
	want.Log = logFile
	if diff := cmp.Diff(want, p.got); diff != "" {
		t.Errorf("settings (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("log file not created: %v", err)
	}

	Test(t, p, ThatTclarray("-limit", "0", "-nocase").DoesNothing())
	want = config.Default()
	want.NoCase = true
	if diff := cmp.Diff(want, p.got); diff != "" {
		t.Errorf("settings (-want +got):\n%s", diff)
	}
}

func TestNoSuitableSubprogram(t *testing.T) {
	Test(t, testProgram{notSuitable: true},
		ThatTclarray().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{writeOut: "program 2"}),
		ThatTclarray().WritesStdout("program 2"),
	)
}

func TestComposite_NoSuitableSubprogram(t *testing.T) {
	Test(t,
		Composite(testProgram{notSuitable: true}, testProgram{notSuitable: true}),
		ThatTclarray().
			ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestComposite_PreferEarlierSubprogram(t *testing.T) {
	Test(t,
		Composite(
			testProgram{writeOut: "program 1"}, testProgram{writeOut: "program 2"}),
		ThatTclarray().WritesStdout("program 1"),
	)
}

func TestBadUsageError(t *testing.T) {
	Test(t,
		testProgram{returnErr: BadUsage("lorem ipsum")},
		ThatTclarray().ExitsWith(2).WritesStderrContaining("lorem ipsum\n"),
	)
}

func TestExitError(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(3)},
		ThatTclarray().ExitsWith(3),
	)
}

func TestExitError_0(t *testing.T) {
	Test(t, testProgram{returnErr: Exit(0)},
		ThatTclarray().ExitsWith(0),
	)
}

func TestServeProgram(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	listen := func(string) (net.Listener, error) { return net.Listen("tcp", "127.0.0.1:0") }
	serve := ServeProgram{Listen: listen, Ctx: ctx}

	Test(t, Composite(serve, testProgram{writeOut: "shell"}),
		ThatTclarray().WritesStdout("shell"),
		ThatTclarray("-serve", "x").DoesNothing(),
		ThatTclarray("-serve", "x", "arg").
			ExitsWith(2).
			WritesStderrContaining("arguments are not allowed with -serve"),
	)

	failing := ServeProgram{Listen: func(addr string) (net.Listener, error) {
		return nil, fmt.Errorf("cannot listen on %s", addr)
	}}
	Test(t, failing,
		ThatTclarray("-serve", "bad:addr").
			ExitsWith(2).
			WritesStderr("cannot listen on bad:addr\n"),
	)
}

func TestServeProgram_ServesUntilCancelled(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skip("cannot listen:", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int)
	go func() {
		serve := ServeProgram{
			Listen: func(string) (net.Listener, error) { return l, nil },
			Ctx:    ctx,
		}
		exit, _, _ := progtest.Run(serve, "", "tclarray", "-serve", l.Addr().String())
		done <- exit
	}()

	c, err := net.DialTimeout("tcp", l.Addr().String(), time.Second)
	if err != nil {
		t.Fatal(err)
	}
	c.Close()
	cancel()
	select {
	case exit := <-done:
		if exit != 0 {
			t.Errorf("exit code %d, want 0", exit)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server didn't stop after cancellation")
	}
}

type testProgram struct {
	notSuitable bool
	writeOut    string
	returnErr   error
}

func (p testProgram) Run(fds [3]*os.File, _ *Flags, args []string) error {
	if p.notSuitable {
		return ErrNotSuitable
	}
	fds[1].WriteString(p.writeOut)
	return p.returnErr
}

type settingsProgram struct{ got config.Config }

func (p *settingsProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	p.got = f.Settings
	return nil
}
