package detector

import (
	"github.com/viant/patternlint/tree"
)

const errorBinding = "error"

// HasErrorHandling returns true if an operation call shows handling evidence:
// an enclosing try with a non-empty catch, a checked error binding, or a chained rejection handler
func HasErrorHandling(ctx *Context, call tree.Node) bool {
	return inHandledTry(call) || hasChainedHandler(call) || hasCheckedBinding(call, ctx.Thresholds.EvidenceWindow)
}

// inHandledTry returns true if call sits in the body of a try whose catch clause is not empty
func inHandledTry(call tree.Node) bool {
	for current := call.Parent(); !current.IsZero(); current = current.Parent() {
		if current.Kind() != tree.KindTry {
			continue
		}
		body := current.Field("body")
		if call.Start() < body.Start() || call.End() > body.End() {
			continue
		}
		handler := current.Field("handler")
		if handler.IsZero() {
			continue
		}
		if !tree.IsEmptyBlock(handler.Field("body")) {
			return true
		}
	}
	return false
}

// hasChainedHandler returns true if call or any call it is chained on is .catch(h) or .then(ok, h)
func hasChainedHandler(call tree.Node) bool {
	for current := tree.OutermostChainCall(call); tree.IsCall(current); current = tree.Receiver(current) {
		args := len(tree.Arguments(current))
		switch tree.CalleeName(current) {
		case "catch":
			if args >= 1 {
				return true
			}
		case "then":
			if args >= 2 {
				return true
			}
		}
	}
	return false
}

// hasCheckedBinding returns true if call result is bound in a declaration and the error is
// referenced by a conditional or throw within the next window sibling statements
func hasCheckedBinding(call tree.Node, window int) bool {
	declarator := BindingDeclarator(call)
	if declarator.IsZero() {
		return false
	}
	references := bindingReferences(declarator.Field("name"))
	if references == nil {
		return false
	}
	for _, sibling := range followingStatements(declarator, window) {
		if checks(sibling, references) {
			return true
		}
	}
	return false
}

// BindingDeclarator returns variable declarator whose value is call, looking through await, parentheses and assertions
func BindingDeclarator(call tree.Node) tree.Node {
	current := tree.OutermostChainCall(call)
	for {
		parent := current.Parent()
		switch parent.Kind() {
		case tree.KindAwait, tree.KindParenthesized, tree.KindNonNull, tree.KindAs, tree.KindSatisfies:
			current = parent
			continue
		case tree.KindVariableDeclarator:
			if parent.Field("value").Same(current) {
				return parent
			}
		}
		return tree.Node{}
	}
}

// ErrorBindingName returns local name of destructured error property, i.e. error or err for { error: err }
func ErrorBindingName(pattern tree.Node) string {
	if pattern.Kind() != tree.KindObjectPattern {
		return ""
	}
	for _, child := range pattern.Children() {
		switch child.Kind() {
		case tree.KindShorthandPattern:
			if child.Text() == errorBinding {
				return errorBinding
			}
		case tree.KindPairPattern:
			if child.Field("key").Text() != errorBinding {
				continue
			}
			if value := child.Field("value"); value.Kind() == tree.KindIdentifier {
				return value.Text()
			}
		case tree.KindObjectAssignmentPattern:
			if left := child.Field("left"); left.Text() == errorBinding {
				return errorBinding
			}
		}
	}
	return ""
}

// bindingReferences returns predicate matching references to the bound error: the destructured name
// or result.error for a plain identifier binding
func bindingReferences(pattern tree.Node) tree.Predicate {
	switch pattern.Kind() {
	case tree.KindObjectPattern:
		name := ErrorBindingName(pattern)
		if name == "" {
			return nil
		}
		return func(n tree.Node) bool {
			return (n.Kind() == tree.KindIdentifier || n.Kind() == tree.KindShorthandProperty) && n.Text() == name
		}
	case tree.KindIdentifier:
		name := pattern.Text()
		return func(n tree.Node) bool {
			return n.Kind() == tree.KindMember &&
				n.Field("property").Text() == errorBinding &&
				tree.Unwrap(n.Field("object")).Text() == name
		}
	}
	return nil
}

// followingStatements returns up to window statements that follow the declaration owning declarator
func followingStatements(declarator tree.Node, window int) []tree.Node {
	declaration := declarator.Parent()
	siblings := declaration.NextSiblings()
	if window > 0 && len(siblings) > window {
		siblings = siblings[:window]
	}
	return siblings
}

// checks returns true if statement holds a conditional testing a reference or a throw of one
func checks(statement tree.Node, references tree.Predicate) bool {
	return tree.Contains(statement, func(n tree.Node) bool {
		switch n.Kind() {
		case tree.KindIf:
			return tree.Contains(n.Field("condition"), references)
		case tree.KindThrow:
			return tree.Contains(n, references)
		case tree.KindTernary:
			return tree.Contains(n.Field("condition"), references)
		}
		return false
	})
}
