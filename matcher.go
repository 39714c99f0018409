package pipelinegrep

import (
	"fmt"
	"regexp"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lowerers hands out Unicode lower-casing Casers. A Caser keeps state while
// transforming and must not be shared between goroutines.
var lowerers = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// PatternSet is an immutable OR of compiled regular expressions.
type PatternSet struct {
	patterns   []*regexp.Regexp
	ignoreCase bool
}

// CompilePatterns compiles exprs in order. With ignoreCase, each expression
// is compiled case-insensitively and lines are lower-cased before testing.
//
// Case folding goes through the (?i) flag rather than lower-casing the
// expression text, so escapes such as \D or \S keep their meaning. The
// line is still lower-cased with full Unicode mappings: (?i) only applies
// simple one-rune folds, so a lower-case pattern such as "i̇" would miss
// "İ" without it.
func CompilePatterns(exprs []string, ignoreCase bool) (*PatternSet, error) {
	if len(exprs) == 0 {
		return nil, ErrNoPatterns
	}

	ps := &PatternSet{
		patterns:   make([]*regexp.Regexp, 0, len(exprs)),
		ignoreCase: ignoreCase,
	}
	for _, expr := range exprs {
		src := expr
		if ignoreCase {
			src = "(?i)" + expr
		}
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, expr, err)
		}
		ps.patterns = append(ps.patterns, re)
	}
	return ps, nil
}

// Len returns the number of patterns.
func (ps *PatternSet) Len() int {
	return len(ps.patterns)
}

// IgnoreCase reports whether matching is case-insensitive.
func (ps *PatternSet) IgnoreCase() bool {
	return ps.ignoreCase
}

// Match reports whether any pattern matches line.
func (ps *PatternSet) Match(line string) bool {
	if ps.ignoreCase {
		c := lowerers.Get().(*cases.Caser)
		line = c.String(line)
		lowerers.Put(c)
	}
	for _, re := range ps.patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
