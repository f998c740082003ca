package match

import (
	"testing"

	"github.com/tclarray/tclarray/pkg/tt"
)

func TestGlob(t *testing.T) {
	tt.Test(t, tt.Fn("GlobMatch", GlobMatch), tt.Table{
		tt.Args("*", "", false).Rets(true),
		tt.Args("a*", "abc", false).Rets(true),
		tt.Args("a*", "bac", false).Rets(false),
		tt.Args("*c", "abc", false).Rets(true),
		tt.Args("a?c", "abc", false).Rets(true),
		tt.Args("a?c", "ac", false).Rets(false),
		tt.Args("[a-c]x", "bx", false).Rets(true),
		tt.Args("[a-c]x", "dx", false).Rets(false),
		tt.Args("[c-a]x", "bx", false).Rets(true),
		tt.Args("[xyz]", "y", false).Rets(true),
		tt.Args("[abc", "a", false).Rets(false),
		tt.Args(`\*`, "*", false).Rets(true),
		tt.Args(`\*`, "a", false).Rets(false),
		tt.Args(`a\`, `a\`, false).Rets(true),
		tt.Args("ABC", "abc", false).Rets(false),
		tt.Args("ABC", "abc", true).Rets(true),
		tt.Args("[A-C]*", "bcd", true).Rets(true),
		tt.Args("αβ*", "αβγ", false).Rets(true),
		tt.Args("?", "γ", false).Rets(true),
	})
}

func TestParseMode(t *testing.T) {
	tt.Test(t, tt.Fn("ParseMode", ParseMode), tt.Table{
		tt.Args("-exact").Rets(Exact, true),
		tt.Args("-SUBSTRING").Rets(Substring, true),
		tt.Args("glob").Rets(Glob, true),
		tt.Args("-regexp").Rets(Regexp, true),
		tt.Args("-fuzzy").Rets(Mode(0), false),
	})
}

func TestSpec_Match(t *testing.T) {
	tt.Test(t, tt.Fn("Spec.Match", Spec.Match), tt.Table{
		tt.Args(Spec{Exact, "a*", false}, "a*").Rets(true, nil),
		tt.Args(Spec{Exact, "a*", false}, "ab").Rets(false, nil),
		tt.Args(Spec{Exact, "AB", true}, "ab").Rets(true, nil),
		tt.Args(Spec{Substring, "ell", false}, "hello").Rets(true, nil),
		tt.Args(Spec{Substring, "ELL", true}, "hello").Rets(true, nil),
		tt.Args(Spec{Glob, "h*o", false}, "hello").Rets(true, nil),
		tt.Args(Spec{Regexp, "^h.*o$", false}, "hello").Rets(true, nil),
		tt.Args(Spec{Regexp, "^H", true}, "hello").Rets(true, nil),
		tt.Args(Spec{Regexp, "^H", false}, "hello").Rets(false, nil),
		tt.Args(Spec{Regexp, "(", false}, "x").Rets(false, tt.AnyError),
	})
}

func TestMode_String(t *testing.T) {
	tt.Test(t, tt.Fn("Mode.String", Mode.String), tt.Table{
		tt.Args(Glob).Rets("glob"),
		tt.Args(Mode(9)).Rets("Mode(9)"),
	})
}
