package route

import (
	"fmt"
	"regexp"
)

// MatcherFunc reports whether a path segment is acceptable for a typed
// parameter such as ":id=number".
type MatcherFunc func(value string) bool

var matcherNameRegex = regexp.MustCompile(`^[a-zA-Z]+$`)

// RegexpMatcher returns a MatcherFunc accepting values matched by re.
func RegexpMatcher(re *regexp.Regexp) MatcherFunc {
	return re.MatchString
}

type matchers map[string]MatcherFunc

func builtinMatchers() matchers {
	return matchers{
		"word":   RegexpMatcher(regexp.MustCompile(`^\w+$`)),
		"letter": RegexpMatcher(regexp.MustCompile(`(?i)^[a-z]+$`)),
		"number": RegexpMatcher(regexp.MustCompile(`^\d+$`)),
	}
}

func (m matchers) set(name string, fn MatcherFunc) error {
	if fn == nil {
		return fmt.Errorf("matcher %q: %w: predicate is nil", name, ErrInvalidMatcher)
	}
	if !matcherNameRegex.MatchString(name) {
		return fmt.Errorf("matcher %q: %w: name must consist of letters", name, ErrInvalidMatcher)
	}
	m[name] = fn
	return nil
}

// test runs the named predicate. Unknown names never match.
func (m matchers) test(name, value string) bool {
	fn, ok := m[name]
	return ok && fn(value)
}
