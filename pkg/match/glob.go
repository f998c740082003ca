package match

import "unicode"

// GlobMatch reports whether s matches the Tcl-style glob pattern. The pattern
// supports "*" (any sequence), "?" (any single character), "[...]" (a set of
// characters and ranges such as "a-z") and "\" to quote the next character.
func GlobMatch(pattern, s string, noCase bool) bool {
	return globRunes([]rune(pattern), []rune(s), noCase)
}

func globRunes(p, s []rune, noCase bool) bool {
	for len(p) > 0 {
		switch p[0] {
		case '*':
			for len(p) > 0 && p[0] == '*' {
				p = p[1:]
			}
			if len(p) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if globRunes(p, s[i:], noCase) {
					return true
				}
			}
			return false
		case '?':
			if len(s) == 0 {
				return false
			}
		case '[':
			if len(s) == 0 {
				return false
			}
			rest, ok := matchSet(p[1:], s[0], noCase)
			if !ok {
				return false
			}
			p, s = rest, s[1:]
			continue
		case '\\':
			if len(p) > 1 {
				p = p[1:]
			}
			fallthrough
		default:
			if len(s) == 0 || !sameRune(p[0], s[0], noCase) {
				return false
			}
		}
		p, s = p[1:], s[1:]
	}
	return len(s) == 0
}

// matchSet matches r against the set that starts right after "[". It returns
// the pattern following the closing "]". An unterminated set never matches.
func matchSet(p []rune, r rune, noCase bool) ([]rune, bool) {
	if noCase {
		r = unicode.ToLower(r)
	}
	matched := false
	for {
		if len(p) == 0 {
			return nil, false
		}
		if p[0] == ']' {
			return p[1:], matched
		}
		lo := p[0]
		if lo == '\\' && len(p) > 1 {
			p = p[1:]
			lo = p[0]
		}
		p = p[1:]
		hi := lo
		if len(p) >= 2 && p[0] == '-' && p[1] != ']' {
			hi = p[1]
			if hi == '\\' && len(p) > 2 {
				p = p[1:]
				hi = p[1]
			}
			p = p[2:]
		}
		if noCase {
			lo, hi = unicode.ToLower(lo), unicode.ToLower(hi)
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo <= r && r <= hi {
			matched = true
		}
	}
}

func sameRune(a, b rune, noCase bool) bool {
	if a == b {
		return true
	}
	return noCase && unicode.ToLower(a) == unicode.ToLower(b)
}
