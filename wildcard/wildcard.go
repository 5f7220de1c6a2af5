// Package wildcard implements shell-style pattern matching for file names.
//
// Supported syntax:
//
//	*       any run of characters, including the empty run
//	?       exactly one character
//	[abc]   one character out of the set
//	[a-z]   one character out of the inclusive range
//	[^a-z]  one character not in the set (! is accepted as well)
//	\*      a literal *, only when escaping is enabled
//
// Unlike path.Match a star also crosses path delimiters, so "*.txt" matches
// "dir/a.txt". Malformed patterns never panic; they simply fail to match.
package wildcard

import (
	"strings"
	"unicode"
)

// NotFound is returned by Find when a pattern holds no wildcard.
const NotFound = -1

// Flags tune how a pattern is matched.
type Flags uint8

const (
	// CaseSensitive compares characters exactly. Without it both sides are
	// upper-cased before comparison.
	CaseSensitive Flags = 1 << iota
	// AllowEscape makes a backslash quote the following pattern character.
	AllowEscape
)

const (
	escapeChar = '\\'
	setOpen    = '['
	setClose   = ']'
	setRange   = '-'
)

// HasWildcard reports whether s contains any of the wildcard characters
// *, ? or [. Escapes are not considered.
func HasWildcard(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// Find returns the byte index of the first wildcard character in pattern,
// or NotFound. With allowEscape a backslash counts as a wildcard character.
func Find(pattern string, allowEscape bool) int {
	chars := "*?["
	if allowEscape {
		chars += `\`
	}
	if i := strings.IndexAny(pattern, chars); i >= 0 {
		return i
	}
	return NotFound
}

// Match reports whether name matches pattern in its entirety.
func Match(pattern, name string, flags Flags) bool {
	return New(pattern, flags).Match(name)
}

// Matcher is a pattern prepared for repeated matching.
type Matcher struct {
	pattern []rune
	flags   Flags
}

// New prepares pattern for matching with the given flags.
func New(pattern string, flags Flags) *Matcher {
	return &Matcher{pattern: []rune(pattern), flags: flags}
}

// Pattern returns the source pattern.
func (m *Matcher) Pattern() string {
	return string(m.pattern)
}

// Match reports whether name matches the whole pattern.
func (m *Matcher) Match(name string) bool {
	return m.matchAt(0, []rune(name), 0)
}

func (m *Matcher) fold(r rune) rune {
	if m.flags&CaseSensitive != 0 {
		return r
	}
	return unicode.ToUpper(r)
}

func (m *Matcher) matchAt(pi int, text []rune, si int) bool {
	pat := m.pattern
	escape := m.flags&AllowEscape != 0

	for pi < len(pat) {
		if si >= len(text) && pat[pi] != '*' {
			return false
		}

		c := pat[pi]
		pi++

		switch {
		case c == '*':
			for pi < len(pat) && pat[pi] == '*' {
				pi++
			}
			if pi == len(pat) {
				return true
			}
			// Skip ahead to the next place the following literal can match.
			if next := pat[pi]; next != '?' && next != setOpen && !(escape && next == escapeChar) {
				want := m.fold(next)
				for si < len(text) && m.fold(text[si]) != want {
					si++
				}
			}
			for ; si < len(text); si++ {
				if m.matchAt(pi, text, si) {
					return true
				}
			}
			return false

		case c == '?':

		case c == setOpen:
			end, ok := m.matchSet(pi, m.fold(text[si]))
			if !ok {
				return false
			}
			pi = end

		default:
			if c == escapeChar && escape && pi < len(pat) {
				c = pat[pi]
				pi++
			}
			if m.fold(c) != m.fold(text[si]) {
				return false
			}
		}
		si++
	}

	return si == len(text)
}

// matchSet evaluates the bracket expression starting at pi (just past the
// opening bracket) against the folded rune sc. It returns the index after
// the closing bracket and whether the set accepted sc. A set without a
// closing bracket never matches.
func (m *Matcher) matchSet(pi int, sc rune) (int, bool) {
	pat := m.pattern

	negate := false
	if pi < len(pat) && (pat[pi] == '^' || pat[pi] == '!') {
		negate = true
		pi++
	}

	matched := false
	first := true
	for {
		if pi >= len(pat) {
			return pi, false
		}
		c := pat[pi]
		if c == setClose && !first {
			pi++
			break
		}
		first = false
		pi++

		lo := m.fold(c)
		if pi < len(pat) && pat[pi] == setRange {
			if pi+1 >= len(pat) {
				return pi, false
			}
			if pat[pi+1] == setClose {
				// Open ended range: [c-] accepts everything from c upwards.
				if sc >= lo {
					matched = true
				}
				pi++
				continue
			}
			hi := m.fold(pat[pi+1])
			pi += 2
			if sc == lo || sc == hi || (sc > lo && sc < hi) {
				matched = true
			}
			continue
		}

		if sc == lo {
			matched = true
		}
	}

	return pi, matched != negate
}
