package detector

import (
	"fmt"
	"strings"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
)

var untypedNames = map[string]bool{"any": true, "unknown": true}

// TypeSafety reports a declarator typed any or unknown whose initializer holds a risky operation
func TypeSafety(ctx *Context, declarator tree.Node) (*issue.Issue, error) {
	if declarator.Kind() != tree.KindVariableDeclarator {
		return nil, nil
	}
	value := declarator.Field("value")
	declared := strings.TrimSpace(tree.DeclaredType(declarator))
	if !untypedNames[declared] {
		declared = strings.TrimSpace(tree.AssertedType(tree.Unwrap(value)))
	}
	if !untypedNames[declared] || !ctx.Domain.ContainsOperation(value) {
		return nil, nil
	}
	return ctx.Create(issue.Spec{
		Type:           issue.TypeSafety,
		Severity:       issue.Medium,
		Node:           declarator,
		Description:    fmt.Sprintf("%v operation result typed as '%v', losing type safety. This makes it harder to catch type-related bugs at compile time.", ctx.Domain.Noun, declared),
		Recommendation: "Use proper TypeScript types for entities. Prefer generated schema types or define explicit interfaces instead of any or unknown.",
		Effort:         issue.EffortSmall,
		Tags:           ctx.tags("type-safety", "typescript"),
	})
}
