// Package errutil combines errors from operations that release several
// resources at once.
package errutil

import (
	"errors"
	"strings"
)

// Multi combines multiple errors into one. Nil errors are dropped; with no
// error left it returns nil, and with one it returns that error unchanged.
// Errors that are themselves results of Multi are flattened, so
//
//	Multi(Multi(err1, err2), err3)
//
// is the same as Multi(err1, err2, err3).
func Multi(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if multi, ok := err.(multiError); ok {
			nonNil = append(nonNil, multi...)
		} else {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return multiError(nonNil)
	}
}

// Errors returns the errors combined in err: the flattened list for a result
// of Multi, a single-element list otherwise, and nil for nil.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	if multi, ok := err.(multiError); ok {
		return append([]error(nil), multi...)
	}
	return []error{err}
}

type multiError []error

func (me multiError) Error() string {
	var sb strings.Builder
	sb.WriteString("multiple errors: ")
	for i, e := range me {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

// Is reports whether any of the combined errors matches target.
func (me multiError) Is(target error) bool {
	for _, e := range me {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}

// As finds the first combined error that matches target.
func (me multiError) As(target any) bool {
	for _, e := range me {
		if errors.As(e, target) {
			return true
		}
	}
	return false
}
