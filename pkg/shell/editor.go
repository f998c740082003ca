package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// lineReader reads commands one line at a time, showing a prompt when the
// input is a terminal.
type lineReader struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

func newLineReader(in, out *os.File) *lineReader {
	r := &lineReader{in: bufio.NewReader(in), out: out}
	if isTerminal(in) {
		r.prompt = "% "
	}
	return r
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ReadLine returns the next line without its line ending. It returns io.EOF
// only when there is no more input at all.
func (r *lineReader) ReadLine() (string, error) {
	if r.prompt != "" {
		fmt.Fprint(r.out, r.prompt)
	}
	line, err := r.in.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	return chopLineEnding(line), err
}

func chopLineEnding(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
