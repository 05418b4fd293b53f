// Package screening provides the text defense primitives shared by the
// inbound and outbound halves of the conversation guard: input
// sanitization, and regex-based classification of free text against
// curated rule sets.
//
// The rule sets are heuristic and known to be incomplete. They are a
// best-effort layer in front of (and behind) the model call, not a
// complete security boundary.
package screening

import (
	"fmt"
	"regexp"
)

// compiledRule pairs a rule name with its compiled expression.
type compiledRule struct {
	name    string
	pattern *regexp.Regexp
}

// Matcher evaluates text against a compiled pattern set. A Matcher is
// immutable after construction and safe for concurrent use.
type Matcher struct {
	rules []compiledRule
}

// NewMatcher compiles a rule set into a Matcher. It returns an error if
// any rule fails to compile, naming the offending rule.
func NewMatcher(rules []Rule) (*Matcher, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(r.Expr)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{name: r.Name, pattern: re})
	}
	return &Matcher{rules: compiled}, nil
}

// MustMatcher is NewMatcher that panics on a compile error. Intended for
// the built-in rule sets, which are validated by tests.
func MustMatcher(rules []Rule) *Matcher {
	m, err := NewMatcher(rules)
	if err != nil {
		panic(err)
	}
	return m
}

// Match reports whether any rule matches text, returning the name of the
// first matching rule for logging. Rule order carries no semantic
// meaning; matching is a logical OR over the set.
func (m *Matcher) Match(text string) (string, bool) {
	for _, r := range m.rules {
		if r.pattern.MatchString(text) {
			return r.name, true
		}
	}
	return "", false
}

// Matches reports whether any rule in the set matches text.
func (m *Matcher) Matches(text string) bool {
	_, ok := m.Match(text)
	return ok
}

// RuleNames returns the names of all rules in the set.
func (m *Matcher) RuleNames() []string {
	names := make([]string, len(m.rules))
	for i, r := range m.rules {
		names[i] = r.name
	}
	return names
}
