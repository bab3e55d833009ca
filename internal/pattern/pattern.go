// Package pattern compiles user-supplied pattern strings into matchers used
// for column aliasing and row filtering.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher tests and rewrites text with a compiled pattern.
type Matcher interface {
	Test(text string) bool
	// Replace substitutes the match in text with template, where $1, ${1},
	// $& and $$ refer to capture groups, the whole match and a literal $.
	Replace(text, template string) string
}

type Compiler interface {
	Compile(pattern string) (Matcher, error)
}

// CompilerFunc adapts a function to Compiler.
type CompilerFunc func(pattern string) (Matcher, error)

func (f CompilerFunc) Compile(pattern string) (Matcher, error) { return f(pattern) }

var (
	// Style compiles column style patterns: "/body/flags" uses the body with
	// its flags, anything else must match the whole text.
	Style Compiler = CompilerFunc(compileStyle)
	// Search compiles free-text queries as unanchored expressions.
	Search Compiler = CompilerFunc(compileSearch)
)

// Error reports a pattern that could not be compiled.
type Error struct {
	Pattern string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var delimited = regexp.MustCompile(`^/(.*?)/([gimy]*)$`)

func compileStyle(p string) (Matcher, error) {
	if !strings.HasPrefix(p, "/") {
		return compile(p, "^(?:"+p+")$", false)
	}
	m := delimited.FindStringSubmatch(p)
	if m == nil {
		return nil, &Error{Pattern: p, Err: fmt.Errorf("expected /pattern/flags")}
	}
	expr, global := m[1], false
	var prefix string
	for _, f := range m[2] {
		switch f {
		case 'g':
			global = true
		case 'i':
			prefix += "i"
		case 'm':
			prefix += "m"
		}
	}
	if prefix != "" {
		expr = "(?" + prefix + ")" + expr
	}
	return compile(p, expr, global)
}

func compileSearch(p string) (Matcher, error) {
	return compile(p, p, false)
}

func compile(orig, expr string, global bool) (Matcher, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &Error{Pattern: orig, Err: err}
	}
	return &regexpMatcher{re: re, global: global}, nil
}

type regexpMatcher struct {
	re     *regexp.Regexp
	global bool
}

func (m *regexpMatcher) Test(text string) bool { return m.re.MatchString(text) }

func (m *regexpMatcher) Replace(text, template string) string {
	tmpl := expandable(template)
	n := 1
	if m.global {
		n = -1
	}
	matches := m.re.FindAllStringSubmatchIndex(text, n)
	if len(matches) == 0 {
		return text
	}
	var b []byte
	last := 0
	for _, loc := range matches {
		b = append(b, text[last:loc[0]]...)
		b = m.re.ExpandString(b, tmpl, text, loc)
		last = loc[1]
	}
	b = append(b, text[last:]...)
	return string(b)
}

// expandable rewrites a replacement template into regexp.Expand syntax:
// $n -> ${n}, $& -> ${0}, $$ stays a literal dollar.
func expandable(t string) string {
	var b strings.Builder
	for i := 0; i < len(t); i++ {
		c := t[i]
		if c != '$' || i+1 >= len(t) {
			b.WriteByte(c)
			continue
		}
		next := t[i+1]
		switch {
		case next == '$':
			b.WriteString("$$")
			i++
		case next == '&':
			b.WriteString("${0}")
			i++
		case next >= '0' && next <= '9':
			j := i + 1
			for j < len(t) && t[j] >= '0' && t[j] <= '9' && j-i <= 2 {
				j++
			}
			b.WriteString("${" + t[i+1:j] + "}")
			i = j - 1
		case next == '{':
			end := strings.IndexByte(t[i:], '}')
			if end < 0 {
				b.WriteString("$$")
				continue
			}
			b.WriteString(t[i : i+end+1])
			i += end
		default:
			b.WriteString("$$")
		}
	}
	return b.String()
}
