package tree

import "unicode/utf8"

// DefaultSnippetLength is the default maximum snippet length (in runes)
const DefaultSnippetLength = 200

// Predicate tests node
type Predicate func(n Node) bool

// Walk visits root and its named descendants in pre-order; returning false from visit skips the subtree
func Walk(root Node, visit func(n Node) bool) {
	if root.IsZero() {
		return
	}
	if !visit(root) {
		return
	}
	for _, child := range root.Children() {
		Walk(child, visit)
	}
}

// FindWhere returns root and descendants matching predicate, in document order
func FindWhere(root Node, predicate Predicate) []Node {
	var result []Node
	Walk(root, func(n Node) bool {
		if predicate(n) {
			result = append(result, n)
		}
		return true
	})
	return result
}

// FindByKind returns root and descendants of any of the supplied kinds, in document order
func FindByKind(root Node, kinds ...string) []Node {
	if len(kinds) == 1 {
		kind := kinds[0]
		return FindWhere(root, func(n Node) bool { return n.Kind() == kind })
	}
	set := make(map[string]bool, len(kinds))
	for _, kind := range kinds {
		set[kind] = true
	}
	return FindWhere(root, func(n Node) bool { return set[n.Kind()] })
}

// Contains returns true if any node in the subtree of root matches predicate
func Contains(root Node, predicate Predicate) bool {
	found := false
	Walk(root, func(n Node) bool {
		if found {
			return false
		}
		if predicate(n) {
			found = true
			return false
		}
		return true
	})
	return found
}

// Enclosing returns the closest ancestor matching predicate
func Enclosing(n Node, predicate Predicate) Node {
	for current := n.Parent(); !current.IsZero(); current = current.Parent() {
		if predicate(current) {
			return current
		}
	}
	return Node{}
}

// Snippet returns node text truncated to maxLen runes, it is meant for display only
func Snippet(n Node, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSnippetLength
	}
	text := n.Text()
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen]) + "..."
}

// NestingDepth counts ancestors that are conditionals, loops, switch cases or try/catch constructs
func NestingDepth(n Node) int {
	depth := 0
	for current := n.Parent(); !current.IsZero(); current = current.Parent() {
		if nestingKinds[current.Kind()] {
			depth++
		}
	}
	return depth
}
