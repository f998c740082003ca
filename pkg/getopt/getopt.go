// Package getopt parses the words of Tcl-style commands: leading options
// such as "-deep", ended by the first word that doesn't start with "-" or by
// "--", and subcommand or option names that may be abbreviated to any unique
// prefix.
package getopt

import (
	"fmt"
	"strings"
)

// Arity indicates whether an option takes an argument.
type Arity uint

const (
	// NoArgument means the option is a flag.
	NoArgument Arity = iota
	// RequiredArgument means the word after the option is its argument.
	RequiredArgument
)

// OptionSpec is an option, named with its leading dash, such as "-deep".
type OptionSpec struct {
	Name  string
	Arity Arity
}

// Option is a parsed option.
type Option struct {
	Spec     *OptionSpec
	Argument string
}

// Parse parses the options at the start of args. The last minArgs words are
// never taken as options, so that positional arguments starting with "-"
// still work. It returns the options and the remaining words.
func Parse(args []string, specs []*OptionSpec, minArgs int) ([]*Option, []string, error) {
	names := make([]string, len(specs))
	for i, spec := range specs {
		names[i] = spec.Name
	}
	var opts []*Option
	i := 0
	for ; i < len(args)-minArgs; i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if !strings.HasPrefix(arg, "-") {
			break
		}
		idx, err := Index(arg, names, "option")
		if err != nil {
			return nil, nil, err
		}
		opt := &Option{Spec: specs[idx]}
		if opt.Spec.Arity == RequiredArgument {
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("value for \"%s\" missing", opt.Spec.Name)
			}
			i++
			opt.Argument = args[i]
		}
		opts = append(opts, opt)
	}
	return opts, args[i:], nil
}

// Has reports whether an option with the given name was parsed.
func Has(opts []*Option, name string) bool {
	for _, opt := range opts {
		if opt.Spec.Name == name {
			return true
		}
	}
	return false
}

// Index finds word in table, which must be sorted the way it should appear
// in error messages. An exact match wins; otherwise word may be a prefix of
// exactly one entry. what names the kind of word in error messages, as in
// `bad option "x": must be a, b, or c`.
func Index(word string, table []string, what string) (int, error) {
	found := -1
	for i, name := range table {
		if name == word {
			return i, nil
		}
		if word != "" && strings.HasPrefix(name, word) {
			if found >= 0 {
				return -1, fmt.Errorf("ambiguous %s \"%s\": must be %s", what, word, alternatives(table))
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("bad %s \"%s\": must be %s", what, word, alternatives(table))
	}
	return found, nil
}

// alternatives formats a table as "a", "a or b" or "a, b, or c".
func alternatives(table []string) string {
	switch len(table) {
	case 0:
		return ""
	case 1:
		return table[0]
	case 2:
		return table[0] + " or " + table[1]
	}
	return strings.Join(table[:len(table)-1], ", ") + ", or " + table[len(table)-1]
}
