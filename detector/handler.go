package detector

import (
	"fmt"
	"strings"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
)

// Handler represents an error handler: a catch clause or a promise rejection callback
type Handler struct {
	// Node is the catch clause or the .catch/.then call
	Node tree.Node
	// Param is the caught error binding, empty when omitted
	Param string
	// Body is the handler block or concise arrow expression
	Body tree.Node
	// Promise is set for rejection callbacks
	Promise bool
}

// Handlers returns error handlers under root in document order
func Handlers(root tree.Node) []Handler {
	var result []Handler
	tree.Walk(root, func(n tree.Node) bool {
		switch {
		case n.Kind() == tree.KindCatch:
			result = append(result, Handler{Node: n, Param: n.Field("parameter").Text(), Body: n.Field("body")})
		case tree.IsCall(n):
			if callback := RejectionCallback(n); !callback.IsZero() {
				handler := Handler{Node: n, Body: tree.FunctionBody(callback), Promise: true}
				if params := tree.FunctionParams(callback); len(params) > 0 {
					handler.Param = params[0]
				}
				result = append(result, handler)
			}
		}
		return true
	})
	return result
}

// RejectionCallback returns function literal handling rejection in .catch(fn) or .then(ok, fn)
func RejectionCallback(call tree.Node) tree.Node {
	if tree.Callee(call).Kind() != tree.KindMember {
		return tree.Node{}
	}
	args := tree.Arguments(call)
	index := -1
	switch tree.CalleeName(call) {
	case "catch":
		index = 0
	case "then":
		index = 1
	}
	if index < 0 || len(args) <= index || !tree.IsFunction(args[index]) {
		return tree.Node{}
	}
	return args[index]
}

// IsEmpty returns true if handler body has no statements
func (h *Handler) IsEmpty() bool {
	return tree.IsEmptyBlock(h.Body)
}

// Recovers returns true if handler returns, rethrows, answers with a concise expression
// or refers to a recovery routine named by lower case keywords, i.e. retry or fallback
func (h *Handler) Recovers(keywords []string) bool {
	if h.Body.IsZero() {
		return false
	}
	if h.Body.Kind() != tree.KindStatementBlock {
		return true
	}
	return tree.Contains(h.Body, func(n tree.Node) bool {
		switch n.Kind() {
		case tree.KindReturn, tree.KindThrow:
			return true
		case tree.KindIdentifier, tree.KindPropertyIdentifier:
			return MatchesKeyword(n.Text(), keywords)
		}
		return false
	})
}

// IsTyped returns true if caught binding has a concrete type annotation or is narrowed with instanceof
func (h *Handler) IsTyped() bool {
	if h.Promise {
		return false
	}
	switch strings.TrimSpace(tree.DeclaredType(h.Node)) {
	case "", "any", "unknown":
	default:
		return true
	}
	if h.Param == "" {
		return false
	}
	return tree.Contains(h.Body, func(n tree.Node) bool {
		return n.Kind() == tree.KindBinary &&
			n.Field("operator").Text() == "instanceof" &&
			tree.Unwrap(n.Field("left")).Text() == h.Param
	})
}

// EmptyHandler reports a handler that swallows errors silently
func EmptyHandler(ctx *Context, handler Handler) (*issue.Issue, error) {
	if !handler.IsEmpty() {
		return nil, nil
	}
	spec := issue.Spec{
		Type:           issue.MissingErrorHandling,
		Severity:       issue.High,
		Node:           handler.Node,
		Description:    "Empty catch block detected. Errors are being silently swallowed without any handling, logging, or recovery.",
		Recommendation: "Add proper error handling in the catch block: log the error, notify monitoring systems, provide user feedback, or implement recovery logic.",
		Effort:         issue.EffortSmall,
		Tags:           ctx.tags("empty-catch", "reliability"),
	}
	if handler.Promise {
		spec.Description = "Empty .catch() handler detected. Errors are being silently swallowed."
		spec.Recommendation = "Add proper error handling in the .catch() handler: log the error, notify users, or implement recovery logic."
		spec.Tags = ctx.tags("promise", "reliability")
	}
	return ctx.Create(spec)
}

// RethrowWithoutContext reports a catch clause whose only statement rethrows the caught binding
func RethrowWithoutContext(ctx *Context, handler Handler) (*issue.Issue, error) {
	if handler.Promise || handler.Param == "" {
		return nil, nil
	}
	statements := tree.Statements(handler.Body)
	if len(statements) != 1 || statements[0].Kind() != tree.KindThrow {
		return nil, nil
	}
	if tree.Unwrap(statements[0].FirstChild()).Text() != handler.Param {
		return nil, nil
	}
	return ctx.Create(issue.Spec{
		Type:           issue.ConfusingLogic,
		Severity:       issue.Low,
		Node:           handler.Node,
		Description:    "Catch block re-throws error without adding context. If not adding value, consider removing the try-catch or add contextual information.",
		Recommendation: "Either remove the unnecessary try-catch or wrap the error with additional context before re-throwing.",
		Effort:         issue.EffortTrivial,
		Tags:           ctx.tags("code-quality"),
	})
}

// TryWithoutCatch reports a try statement that only has a finally clause
func TryWithoutCatch(ctx *Context, try tree.Node) (*issue.Issue, error) {
	if try.Kind() != tree.KindTry || !try.Field("handler").IsZero() {
		return nil, nil
	}
	return ctx.Create(issue.Spec{
		Type:           issue.MissingErrorHandling,
		Severity:       issue.Medium,
		Node:           try,
		Description:    "Try statement without catch clause. Errors will propagate without being handled.",
		Recommendation: "Add a catch clause to handle potential errors, or ensure errors are handled by a caller.",
		Effort:         issue.EffortSmall,
		Tags:           ctx.tags("try-catch"),
	})
}

// UncheckedErrorCallback reports a node style callback whose leading error parameter is never referenced
func UncheckedErrorCallback(ctx *Context, fn tree.Node) (*issue.Issue, error) {
	if !tree.IsFunction(fn) || fn.Parent().Kind() != tree.KindArguments {
		return nil, nil
	}
	call := fn.Parent().Parent()
	if RejectionCallback(call).Same(fn) {
		return nil, nil
	}
	params := tree.FunctionParams(fn)
	if len(params) == 0 {
		return nil, nil
	}
	name := params[0]
	if strings.HasPrefix(name, "_") || !strings.Contains(strings.ToLower(name), "err") {
		return nil, nil
	}
	if tree.Contains(tree.FunctionBody(fn), func(n tree.Node) bool {
		return (n.Kind() == tree.KindIdentifier || n.Kind() == tree.KindShorthandProperty) && n.Text() == name
	}) {
		return nil, nil
	}
	return ctx.Create(issue.Spec{
		Type:           issue.MissingErrorHandling,
		Severity:       issue.High,
		Node:           fn,
		Description:    fmt.Sprintf("Error callback parameter '%v' is not checked. This can lead to silent failures.", name),
		Recommendation: fmt.Sprintf("Add error checking at the start of the callback: if (%v) { /* handle error */ }", name),
		Effort:         issue.EffortTrivial,
		Tags:           ctx.tags("callback", "reliability"),
	})
}
