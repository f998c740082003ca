// Package must turns errors into panics, for test setup code where an error
// means the environment is broken rather than the code under test.
package must

import (
	"io"
	"os"
)

// OK panics on a non-nil error.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 returns v, panicking on a non-nil error.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// OK2 returns v1 and v2, panicking on a non-nil error.
func OK2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	OK(err)
	return v1, v2
}

// Pipe returns the read and write ends of a new os.Pipe.
func Pipe() (r, w *os.File) { return OK2(os.Pipe()) }

// ReadAllAndClose drains r and closes it.
func ReadAllAndClose(r io.ReadCloser) []byte {
	data := OK1(io.ReadAll(r))
	OK(r.Close())
	return data
}

// WriteFile creates or truncates a file readable only by its owner.
func WriteFile(name, content string) {
	OK(os.WriteFile(name, []byte(content), 0600))
}
