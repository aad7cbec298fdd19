// Package gitignore contains the parser and the matching engine for
// .gitignore rules.
//
// Rules come from two kinds of sources: scoped rulesets (.gitignore
// files, which only apply below the directory that holds them) and
// absolute rulesets (the user's global ignore file and the repo's
// info/exclude, which apply everywhere)
package gitignore

import (
	"errors"
	"path"
	"path/filepath"
	"strings"

	"github.com/danwakefield/fnmatch"
)

// ErrPathAbsolute is an error thrown when an absolute path is checked
// against the rules. Rules are relative to the root of the work tree,
// so matching an absolute path cannot mean anything
var ErrPathAbsolute = errors.New("cannot check an absolute path")

// Rule represents a single gitignore pattern.
// Ignore states the polarity: true to ignore matching paths, false to
// un-ignore them (pattern had a leading "!")
type Rule struct {
	Pattern string
	Ignore  bool
}

// ParseLine parses a single line of a gitignore file.
// ok is false when the line carries no rule (blank or comment)
func ParseLine(line string) (rule Rule, ok bool) {
	line = strings.TrimSpace(line)

	switch {
	case line == "" || line[0] == '#':
		return Rule{}, false
	case line[0] == '!':
		return Rule{Pattern: line[1:], Ignore: false}, true
	case line[0] == '\\':
		// a leading backslash escapes a literal first character
		// (ex. "\#important" matches the file "#important")
		return Rule{Pattern: line[1:], Ignore: true}, true
	default:
		return Rule{Pattern: line, Ignore: true}, true
	}
}

// Parse parses the content of a gitignore file into the rules it
// carries, in order
func Parse(data []byte) []Rule {
	rules := []Rule{}
	for _, line := range strings.Split(string(data), "\n") {
		if rule, ok := ParseLine(line); ok {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Ruleset aggregates every ignore rule that applies to a repository
type Ruleset struct {
	// Absolute contains the rule lists that apply to the whole work
	// tree, in the order they are tried (global ignore file, then the
	// repo's info/exclude); the first list with a matching rule decides
	Absolute [][]Rule
	// Scoped maps a directory (relative to the work tree root, "."
	// for the root itself) to the rules of the .gitignore it holds
	Scoped map[string][]Rule
}

// NewRuleset returns an empty Ruleset
func NewRuleset() *Ruleset {
	return &Ruleset{
		Absolute: [][]Rule{},
		Scoped:   map[string][]Rule{},
	}
}

// CheckIgnore returns whether the given path is ignored.
//
// Scoped rulesets are tried first, from the path's own directory up
// to the root; the first directory producing a decision wins. If none
// does, absolute rulesets are tried in order. Paths are never matched
// against rulesets scoped to directories that don't contain them
func (rs *Ruleset) CheckIgnore(p string) (bool, error) {
	if path.IsAbs(p) || filepath.IsAbs(p) {
		return false, ErrPathAbsolute
	}

	if result := rs.checkScoped(p); result != nil {
		return *result, nil
	}
	return rs.checkAbsolute(p), nil
}

// checkScoped walks the path's parent directories, deepest first, and
// returns the decision of the first directory whose rules match
func (rs *Ruleset) checkScoped(p string) *bool {
	for dir := path.Dir(p); ; dir = path.Dir(dir) {
		if rules, ok := rs.Scoped[dir]; ok {
			if result := checkRules(rules, p); result != nil {
				return result
			}
		}
		if dir == "." {
			return nil
		}
	}
}

// checkAbsolute tries the absolute rulesets in order and returns the
// decision of the first one that matches. Paths matching nothing are
// not ignored
func (rs *Ruleset) checkAbsolute(p string) bool {
	for _, rules := range rs.Absolute {
		if result := checkRules(rules, p); result != nil {
			return *result
		}
	}
	return false
}

// checkRules matches the path against every rule in order; the last
// matching rule wins. A nil return means no rule matched
func checkRules(rules []Rule, p string) *bool {
	var result *bool
	for _, r := range rules {
		if fnmatch.Match(r.Pattern, p, 0) {
			ignore := r.Ignore
			result = &ignore
		}
	}
	return result
}
