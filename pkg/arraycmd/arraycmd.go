// Package arraycmd implements the "array" command: it parses the words of a
// command such as `array names a -glob x*`, calls the matching verb of an
// arrays.Interp and formats the result as a Tcl string.
package arraycmd

import (
	"errors"
	"sort"
	"strconv"

	"github.com/tclarray/tclarray/pkg/arrays"
	"github.com/tclarray/tclarray/pkg/elems"
	"github.com/tclarray/tclarray/pkg/getopt"
	"github.com/tclarray/tclarray/pkg/match"
	"github.com/tclarray/tclarray/pkg/tcllist"
)

type verb struct {
	usage string
	// Accepted number of words, including "array" and the verb. A maxArgs of
	// -1 means no upper bound.
	minArgs, maxArgs int
	call             func(it *arrays.Interp, args []string) (string, error)
}

const (
	copyUsage   = "array copy ?options? source destination"
	randomUsage = "array random ?options? arrayName ?pattern?"
)

var verbs = map[string]verb{
	"anymore":     {"array anymore arrayName searchId", 4, 4, anymore},
	"copy":        {copyUsage, 4, -1, copyVerb},
	"default":     {"array default option arrayName ?value?", 4, 5, defaultVerb},
	"donesearch":  {"array donesearch arrayName searchId", 4, 4, donesearch},
	"exists":      {"array exists arrayName", 3, 3, exists},
	"get":         {"array get arrayName ?pattern?", 3, 4, get},
	"names":       {"array names arrayName ?mode? ?pattern?", 3, 5, names},
	"nextelement": {"array nextelement arrayName searchId", 4, 4, nextelement},
	"random":      {randomUsage, 3, -1, random},
	"set":         {"array set arrayName list", 4, 4, set},
	"size":        {"array size arrayName", 3, 3, size},
	"startsearch": {"array startsearch arrayName", 3, 3, startsearch},
	"unset":       {"array unset arrayName ?pattern?", 3, 4, unset},
	"values":      {"array values arrayName ?mode? ?pattern?", 3, 5, values},
}

var verbNames = sortedKeys(verbs)

func sortedKeys(m map[string]verb) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs an "array" command. args[0] is the command name itself and
// args[1] the verb, which may be abbreviated to a unique prefix.
func Call(it *arrays.Interp, args []string) (string, error) {
	if len(args) < 2 {
		return "", wrongArgs("array option ?arg ...?")
	}
	i, err := getopt.Index(args[1], verbNames, "option")
	if err != nil {
		return "", err
	}
	v := verbs[verbNames[i]]
	if len(args) < v.minArgs || (v.maxArgs >= 0 && len(args) > v.maxArgs) {
		return "", wrongArgs(v.usage)
	}
	return v.call(it, args)
}

func wrongArgs(usage string) error {
	return errors.New("wrong # args: should be \"" + usage + "\"")
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func globSpec(pattern string) *match.Spec {
	return &match.Spec{Mode: match.Glob, Pattern: pattern}
}

var modeNames = []string{"-exact", "-substring", "-glob", "-regexp"}

// patternArgs parses the "?mode? ?pattern?" words of names and values.
func patternArgs(args []string) (*match.Spec, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 1:
		return globSpec(args[0]), nil
	}
	i, err := getopt.Index(args[0], modeNames, "option")
	if err != nil {
		return nil, err
	}
	mode, _ := match.ParseMode(modeNames[i])
	return &match.Spec{Mode: mode, Pattern: args[1]}, nil
}

func exists(it *arrays.Interp, args []string) (string, error) {
	ok, err := it.Exists(args[2])
	return formatBool(ok), err
}

func get(it *arrays.Interp, args []string) (string, error) {
	var spec *match.Spec
	if len(args) == 4 {
		spec = globSpec(args[3])
	}
	kvs, err := it.Get(args[2], spec)
	if err != nil {
		return "", err
	}
	return tcllist.Format(sortPairs(kvs)...), nil
}

// sortPairs orders alternating names and values by name, so that output is
// stable.
func sortPairs(kvs []string) []string {
	pairs := make([][2]string, len(kvs)/2)
	for i := range pairs {
		pairs[i] = [2]string{kvs[2*i], kvs[2*i+1]}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })
	sorted := make([]string, 0, len(kvs))
	for _, p := range pairs {
		sorted = append(sorted, p[0], p[1])
	}
	return sorted
}

func names(it *arrays.Interp, args []string) (string, error) {
	spec, err := patternArgs(args[3:])
	if err != nil {
		return "", err
	}
	keys, err := it.Names(args[2], spec)
	if err != nil {
		return "", err
	}
	sort.Strings(keys)
	return tcllist.Format(keys...), nil
}

func values(it *arrays.Interp, args []string) (string, error) {
	spec, err := patternArgs(args[3:])
	if err != nil {
		return "", err
	}
	vals, err := it.Values(args[2], spec)
	if err != nil {
		return "", err
	}
	sort.Strings(vals)
	return tcllist.Format(vals...), nil
}

func set(it *arrays.Interp, args []string) (string, error) {
	pairs, err := tcllist.Split(args[3])
	if err != nil {
		return "", err
	}
	return "", it.Set(args[2], pairs)
}

func size(it *arrays.Interp, args []string) (string, error) {
	n, err := it.Size(args[2])
	return strconv.Itoa(n), err
}

func unset(it *arrays.Interp, args []string) (string, error) {
	var spec *match.Spec
	if len(args) == 4 {
		spec = globSpec(args[3])
	}
	return "", it.Unset(args[2], spec)
}

var copyOptions = []*getopt.OptionSpec{
	{Name: "-deep"},
	{Name: "-nosignal"},
}

func copyVerb(it *arrays.Interp, args []string) (string, error) {
	opts, rest, err := getopt.Parse(args[2:], copyOptions, 2)
	if err != nil {
		return "", err
	}
	if len(rest) != 2 {
		return "", wrongArgs(copyUsage)
	}
	return "", it.Copy(rest[0], rest[1], arrays.CopyOptions{
		Deep:     getopt.Has(opts, "-deep"),
		NoSignal: getopt.Has(opts, "-nosignal"),
	})
}

var randomOptions = []*getopt.OptionSpec{
	{Name: "-matchname"},
	{Name: "-matchvalue"},
	{Name: "-pair"},
	{Name: "-strict"},
	{Name: "-valueonly"},
}

func random(it *arrays.Interp, args []string) (string, error) {
	opts, rest, err := getopt.Parse(args[2:], randomOptions, 1)
	if err != nil {
		return "", err
	}
	if len(rest) < 1 || len(rest) > 2 {
		return "", wrongArgs(randomUsage)
	}
	var spec *match.Spec
	if len(rest) == 2 {
		spec = globSpec(rest[1])
	}
	ropts := arrays.RandomOptions{
		Strict:     getopt.Has(opts, "-strict"),
		Pair:       getopt.Has(opts, "-pair"),
		ValueOnly:  getopt.Has(opts, "-valueonly"),
		MatchName:  getopt.Has(opts, "-matchname"),
		MatchValue: getopt.Has(opts, "-matchvalue"),
	}
	r, err := it.Random(rest[0], spec, ropts)
	switch {
	case err != nil || len(r) == 0:
		return "", err
	case ropts.Pair:
		return tcllist.Format(r...), nil
	default:
		return r[0], nil
	}
}

func startsearch(it *arrays.Interp, args []string) (string, error) {
	return it.StartSearch(args[2])
}

func anymore(it *arrays.Interp, args []string) (string, error) {
	more, err := it.AnyMore(args[2], args[3])
	return formatBool(more), err
}

func nextelement(it *arrays.Interp, args []string) (string, error) {
	return it.NextElement(args[2], args[3])
}

func donesearch(it *arrays.Interp, args []string) (string, error) {
	return "", it.DoneSearch(args[2], args[3])
}

var defaultSubs = []string{"exists", "get", "set", "unset"}

func defaultVerb(it *arrays.Interp, args []string) (string, error) {
	i, err := getopt.Index(args[2], defaultSubs, "option")
	if err != nil {
		return "", err
	}
	sub := defaultSubs[i]
	want := 4
	if sub == "set" {
		want = 5
	}
	if len(args) != want {
		usage := "array default " + sub + " arrayName"
		if sub == "set" {
			usage += " value"
		}
		return "", wrongArgs(usage)
	}
	name := args[3]
	switch sub {
	case "exists":
		ok, err := it.DefaultExists(name)
		return formatBool(ok), err
	case "get":
		v, err := it.DefaultGet(name)
		return elems.ToString(v), err
	case "set":
		return "", it.DefaultSet(name, args[4])
	default:
		return "", it.DefaultUnset(name)
	}
}
