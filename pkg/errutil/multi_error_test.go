package errutil

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var (
	err1 = errors.New("error 1")
	err2 = errors.New("error 2")
	err3 = errors.New("error 3")
)

func TestMulti(t *testing.T) {
	if Multi() != nil || Multi(nil, nil) != nil {
		t.Errorf("Multi of no errors should be nil")
	}
	if err := Multi(nil, err1, nil); err != err1 {
		t.Errorf("Multi of one error -> %v, want %v", err, err1)
	}
	err := Multi(Multi(err1, err2), nil, err3)
	want := "multiple errors: error 1; error 2; error 3"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
	if diff := cmp.Diff([]error{err1, err2, err3}, Errors(err), cmpopts.EquateErrors()); diff != "" {
		t.Errorf("Errors (-want +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	if Errors(nil) != nil {
		t.Errorf("Errors(nil) should be nil")
	}
	if got := Errors(err1); len(got) != 1 || got[0] != err1 {
		t.Errorf("Errors(err1) -> %v", got)
	}
}

func TestMulti_IsAndAs(t *testing.T) {
	_, statErr := os.Stat("/non/existent/file")
	err := Multi(err1, statErr)
	if !errors.Is(err, err1) || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is doesn't see combined errors")
	}
	if errors.Is(err, err2) {
		t.Errorf("errors.Is matches an error that wasn't combined")
	}
	var pathErr *fs.PathError
	if !errors.As(err, &pathErr) || pathErr.Path != "/non/existent/file" {
		t.Errorf("errors.As -> %v", pathErr)
	}
}
