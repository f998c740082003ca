// Package prog provides the entry point to tclarray. It parses flags, merges
// them with the configuration file and runs the appropriate subprogram: the
// key-value server or the array shell.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/tclarray/tclarray/pkg/config"
	"github.com/tclarray/tclarray/pkg/logutil"
)

// Flags keeps command-line flags, and the settings that result from merging
// them with the configuration file.
type Flags struct {
	Config, Log string

	Help, CodeInArg bool

	DB, Network, Serve string

	Limit  int
	NoCase bool

	// Settings is the configuration file overridden by any flag given
	// explicitly. It is filled in by Run.
	Settings config.Config
}

func newFlagSet(f *Flags) *flag.FlagSet {
	fs := flag.NewFlagSet("tclarray", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&f.Config, "config", "", "a YAML file to read settings from")
	fs.StringVar(&f.Log, "log", "", "a file to write debug log to")

	fs.BoolVar(&f.Help, "help", false, "show usage help and quit")
	fs.BoolVar(&f.CodeInArg, "c", false, "run the arguments as commands, one per argument")

	fs.StringVar(&f.DB, "db", "", "path to the database backing the db array")
	fs.StringVar(&f.Network, "network", "", "address of the key-value server backing the net array")
	fs.StringVar(&f.Serve, "serve", "", "serve arrays over the network at this address instead of running the shell")

	fs.IntVar(&f.Limit, "limit", 0, "maximum number of elements \"array set\" may create; 0 means no limit")
	fs.BoolVar(&f.NoCase, "nocase", false, "match patterns case-insensitively")

	return fs
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: tclarray [flags] [script]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// settings loads the configuration file and applies the flags that were set
// explicitly on top of it.
func settings(f *Flags, fs *flag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if f.Config != "" {
		var err error
		cfg, err = config.Load(f.Config)
		if err != nil {
			return config.Config{}, err
		}
	}
	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "log":
			cfg.Log = f.Log
		case "db":
			cfg.DB = f.DB
		case "network":
			cfg.Network = f.Network
		case "nocase":
			cfg.NoCase = f.NoCase
		case "limit":
			if f.Limit < 0 {
				err = fmt.Errorf("-limit must not be negative, got %d", f.Limit)
			}
			cfg.ElementLimit = f.Limit
		}
	})
	return cfg, err
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f := &Flags{}
	fs := newFlagSet(f)
	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// -h is not defined, only -help; report it like any other
			// unknown flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.Help {
		usage(fds[1], fs)
		return 0
	}

	f.Settings, err = settings(f, fs)
	if err != nil {
		fmt.Fprintln(fds[2], err)
		return 2
	}
	if f.Settings.Log != "" {
		err = logutil.SetOutputFile(f.Settings.Log)
		if err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	err = p.Run(fds, f, fs.Args())
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Composite returns a Program that runs the first of programs that doesn't
// return ErrNotSuitable.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	return ErrNotSuitable
}

// ErrNotSuitable is returned by Program.Run when the flags select some other
// subprogram, so that Composite moves on to the next one.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns an error that makes Run print msg followed by the usage
// and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns an error that makes Run exit with the given code silently.
// Exit(0) is nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program is a subprogram. fds are stdin, stdout and stderr; args are the
// words left after the flags.
type Program interface {
	Run(fds [3]*os.File, f *Flags, args []string) error
}
