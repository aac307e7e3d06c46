package detector

import (
	"fmt"
	"strings"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
)

const anonymous = "anonymous"

// UnhandledAsync reports an async function calling risky operations with neither a try statement,
// a chained .catch nor a returned error
func UnhandledAsync(ctx *Context, risky *Matcher, fn tree.Node) (*issue.Issue, error) {
	if !tree.IsAsync(fn) {
		return nil, nil
	}
	body := tree.FunctionBody(fn)
	if body.IsZero() || !risky.Contains(body) {
		return nil, nil
	}
	if tree.Contains(body, isTry) || tree.Contains(body, isCatchCall) || tree.Contains(body, returnsError) {
		return nil, nil
	}
	name := tree.FunctionName(fn)
	if name == "" {
		name = anonymous
	}
	return ctx.Create(issue.Spec{
		Type:           issue.MissingErrorHandling,
		Severity:       issue.Medium,
		Node:           fn,
		Description:    fmt.Sprintf("Async function '%v' contains operations that may fail but lacks error handling.", name),
		Recommendation: "Add a try-catch block around the failing operations or make sure errors are returned or propagated to callers.",
		Effort:         issue.EffortSmall,
		Tags:           ctx.tags("async", "reliability"),
	})
}

func isCatchCall(n tree.Node) bool {
	return tree.IsCall(n) && tree.CalleeName(n) == "catch"
}

// returnsError returns true for a return statement handing an error value back, i.e. return { data, error }
func returnsError(n tree.Node) bool {
	if n.Kind() != tree.KindReturn {
		return false
	}
	return tree.Contains(n, func(child tree.Node) bool {
		switch child.Kind() {
		case tree.KindIdentifier, tree.KindPropertyIdentifier, tree.KindShorthandProperty:
			return strings.Contains(strings.ToLower(child.Text()), "err")
		}
		return false
	})
}
