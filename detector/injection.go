package detector

import (
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
)

const rpcVerb = "rpc"

// Injection reports remote procedure calls whose arguments are built with interpolation or concatenation.
// The check is structural only: it does not track whether interpolated values are user controlled.
func Injection(ctx *Context, call tree.Node) (*issue.Issue, error) {
	if !tree.IsCall(call) || tree.CalleeName(call) != rpcVerb {
		return nil, nil
	}
	constructed := false
	for _, arg := range tree.Arguments(call) {
		if tree.Contains(arg, IsStringConstruction) {
			constructed = true
			break
		}
	}
	if !constructed {
		return nil, nil
	}
	return ctx.Create(issue.Spec{
		Type:           issue.Architectural,
		Severity:       issue.Critical,
		Node:           call,
		Description:    "Potential SQL injection vulnerability detected. RPC call uses string concatenation or template literals, which can be exploited if user input is not properly sanitized.",
		Recommendation: "Use parameterized queries or query builder methods instead of string concatenation. Pass user input as separate parameters that will be properly escaped.",
		Effort:         issue.EffortMedium,
		Tags:           ctx.tags("security", "sql-injection"),
	})
}

// IsStringConstruction returns true for a template literal with a substitution or a + with a string operand
func IsStringConstruction(n tree.Node) bool {
	switch n.Kind() {
	case tree.KindTemplateString:
		for _, child := range n.Children() {
			if child.Kind() == tree.KindTemplateSubstitution {
				return true
			}
		}
	case tree.KindBinary:
		if n.Field("operator").Text() != "+" {
			return false
		}
		return isStringLiteral(n.Field("left")) || isStringLiteral(n.Field("right"))
	}
	return false
}

func isStringLiteral(n tree.Node) bool {
	switch tree.Unwrap(n).Kind() {
	case tree.KindString, tree.KindTemplateString:
		return true
	}
	return false
}
