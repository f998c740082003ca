// Package match implements the string matching modes used to filter array
// element names and values: exact comparison, substring search, Tcl-style
// glob patterns and regular expressions.
package match

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode is a matching mode.
type Mode uint8

// Possible values of Mode.
const (
	Exact Mode = iota
	Substring
	Glob
	Regexp
)

// Default is the mode used when no mode is given explicitly.
const Default = Glob

var modeNames = [...]string{
	Exact:     "exact",
	Substring: "substring",
	Glob:      "glob",
	Regexp:    "regexp",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode parses a mode option such as "-glob". The leading dash is
// optional and the comparison ignores case.
func ParseMode(s string) (Mode, bool) {
	name := strings.ToLower(strings.TrimPrefix(s, "-"))
	for i, modeName := range modeNames {
		if name == modeName {
			return Mode(i), true
		}
	}
	return 0, false
}

// Matcher wraps the Match method.
type Matcher interface {
	// Match reports whether the string matches.
	Match(s string) bool
}

// Func adapts an ordinary function to a Matcher.
type Func func(s string) bool

// Match calls f(s).
func (f Func) Match(s string) bool { return f(s) }

// Spec describes a pattern together with how it is to be matched.
type Spec struct {
	Mode    Mode
	Pattern string
	NoCase  bool
}

// Compile compiles the Spec into a Matcher. It only fails when the mode is
// Regexp and the pattern is not a valid regular expression.
func (sp Spec) Compile() (Matcher, error) {
	switch sp.Mode {
	case Exact:
		if sp.NoCase {
			return Func(func(s string) bool { return strings.EqualFold(s, sp.Pattern) }), nil
		}
		return Func(func(s string) bool { return s == sp.Pattern }), nil
	case Substring:
		if sp.NoCase {
			p := strings.ToLower(sp.Pattern)
			return Func(func(s string) bool { return strings.Contains(strings.ToLower(s), p) }), nil
		}
		return Func(func(s string) bool { return strings.Contains(s, sp.Pattern) }), nil
	case Glob:
		p := []rune(sp.Pattern)
		return Func(func(s string) bool { return globRunes(p, []rune(s), sp.NoCase) }), nil
	case Regexp:
		expr := sp.Pattern
		if sp.NoCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("couldn't compile regular expression pattern: %v", err)
		}
		return Func(re.MatchString), nil
	}
	return nil, fmt.Errorf("unsupported match mode %v", sp.Mode)
}

// Match matches s against the Spec. It is a shorthand for compiling the Spec
// and calling Match on the result.
func (sp Spec) Match(s string) (bool, error) {
	m, err := sp.Compile()
	if err != nil {
		return false, err
	}
	return m.Match(s), nil
}
