// Package tcllist converts between Tcl list strings and string slices.
//
// Array contents travel through the command surface as flat lists: "array set"
// takes one and "array get" produces one.
package tcllist

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	errUnmatchedBrace = errors.New("unmatched open brace in list")
	errUnmatchedQuote = errors.New("unmatched open quote in list")
	errBraceGarbage   = errors.New("list element in braces followed by garbage instead of space")
	errQuoteGarbage   = errors.New("list element in quotes followed by garbage instead of space")
)

// Split parses a Tcl list into its elements.
func Split(s string) ([]string, error) {
	var elems []string
	p := &parser{src: s}
	for {
		p.skipSpace()
		if p.eof() {
			return elems, nil
		}
		elem, err := p.element()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) skipSpace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) element() (string, error) {
	switch p.src[p.pos] {
	case '{':
		return p.braced()
	case '"':
		return p.quoted()
	}
	var sb strings.Builder
	for !p.eof() && !isSpace(p.src[p.pos]) {
		if p.src[p.pos] == '\\' {
			p.backslash(&sb)
			continue
		}
		sb.WriteByte(p.src[p.pos])
		p.pos++
	}
	return sb.String(), nil
}

func (p *parser) braced() (string, error) {
	depth := 0
	start := p.pos + 1
	for i := p.pos; i < len(p.src); i++ {
		switch p.src[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos = i + 1
				if !p.eof() && !isSpace(p.src[p.pos]) {
					return "", errBraceGarbage
				}
				return p.src[start:i], nil
			}
		}
	}
	return "", errUnmatchedBrace
}

func (p *parser) quoted() (string, error) {
	var sb strings.Builder
	p.pos++
	for !p.eof() {
		switch p.src[p.pos] {
		case '"':
			p.pos++
			if !p.eof() && !isSpace(p.src[p.pos]) {
				return "", errQuoteGarbage
			}
			return sb.String(), nil
		case '\\':
			p.backslash(&sb)
		default:
			sb.WriteByte(p.src[p.pos])
			p.pos++
		}
	}
	return "", errUnmatchedQuote
}

// backslash consumes a backslash sequence starting at p.pos and writes its
// substitution.
func (p *parser) backslash(sb *strings.Builder) {
	p.pos++
	if p.eof() {
		sb.WriteByte('\\')
		return
	}
	c := p.src[p.pos]
	p.pos++
	switch c {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'v':
		sb.WriteByte('\v')
	case 'f':
		sb.WriteByte('\f')
	case 'a':
		sb.WriteByte('\a')
	case 'b':
		sb.WriteByte('\b')
	case '\n':
		for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
			p.pos++
		}
		sb.WriteByte(' ')
	default:
		r, size := utf8.DecodeRuneInString(p.src[p.pos-1:])
		sb.WriteRune(r)
		p.pos += size - 1
	}
}

// Format formats elements as a Tcl list that Split turns back into the same
// elements.
func Format(elems ...string) string {
	var sb strings.Builder
	for i, elem := range elems {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(Quote(elem))
	}
	return sb.String()
}

// Quote quotes one list element.
func Quote(s string) string {
	if s == "" {
		return "{}"
	}
	if !needsQuoting(s) {
		return s
	}
	if canBrace(s) {
		return "{" + s + "}"
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case '\v':
			sb.WriteString(`\v`)
		case '\f':
			sb.WriteString(`\f`)
		case ' ', '{', '}', '[', ']', '$', '"', ';', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func needsQuoting(s string) bool {
	if s[0] == '#' {
		return true
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '{', '}', '[', ']', '$', '"', ';', '\\':
			return true
		default:
			if isSpace(c) {
				return true
			}
		}
	}
	return false
}

// canBrace reports whether s can be wrapped in braces verbatim: its braces
// must balance and it must not end in a backslash.
func canBrace(s string) bool {
	if s[len(s)-1] == '\\' {
		return false
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
