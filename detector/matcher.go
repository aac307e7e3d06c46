package detector

import (
	"strings"

	"github.com/viant/patternlint/tree"
)

// Matcher matches call expressions against call patterns:
// name matches callee name, name* matches callee name prefix,
// root.* matches calls on root identifier, a.b matches dotted callee path suffix
type Matcher struct {
	names    map[string]bool
	prefixes []string
	roots    map[string]bool
	paths    []string
}

// NewMatcher creates a matcher
func NewMatcher(patterns ...string) *Matcher {
	ret := &Matcher{names: map[string]bool{}, roots: map[string]bool{}}
	for _, pattern := range patterns {
		switch {
		case strings.HasSuffix(pattern, ".*"):
			ret.roots[strings.TrimSuffix(pattern, ".*")] = true
		case strings.HasSuffix(pattern, "*"):
			ret.prefixes = append(ret.prefixes, strings.TrimSuffix(pattern, "*"))
		case strings.Contains(pattern, "."):
			ret.paths = append(ret.paths, pattern)
		case pattern != "":
			ret.names[pattern] = true
		}
	}
	return ret
}

// Match returns matched callee name
func (m *Matcher) Match(call tree.Node) (string, bool) {
	if m == nil || !tree.IsCall(call) {
		return "", false
	}
	return m.MatchChain(tree.CalleeChain(call))
}

// MatchChain matches flattened callee chain
func (m *Matcher) MatchChain(chain []string) (string, bool) {
	if m == nil || len(chain) == 0 {
		return "", false
	}
	name := chain[len(chain)-1]
	if m.names[name] {
		return name, true
	}
	for _, prefix := range m.prefixes {
		if strings.HasPrefix(name, prefix) {
			return name, true
		}
	}
	if len(chain) > 1 && m.roots[chain[0]] {
		return name, true
	}
	if len(m.paths) > 0 {
		calleePath := strings.Join(chain, ".")
		for _, candidate := range m.paths {
			if calleePath == candidate || strings.HasSuffix(calleePath, "."+candidate) {
				return name, true
			}
		}
	}
	return "", false
}

// Contains returns true if any call under root matches
func (m *Matcher) Contains(root tree.Node) bool {
	if m == nil {
		return false
	}
	return tree.Contains(root, func(n tree.Node) bool {
		_, ok := m.Match(n)
		return ok
	})
}
