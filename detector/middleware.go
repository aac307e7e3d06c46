package detector

import (
	"fmt"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/source"
	"github.com/viant/patternlint/tree"
)

// RedundantMiddleware reports every top level function of a middleware file that performs auth checks,
// when there is more than one of them
func RedundantMiddleware(ctx *Context, keywords []string) ([]issue.Issue, error) {
	if ctx.File.Category() != source.Middleware {
		return nil, nil
	}
	keywords = lower(keywords)
	var candidates []tree.Node
	for _, fn := range tree.Functions(ctx.Root()) {
		if !tree.Enclosing(fn, tree.IsFunction).IsZero() {
			continue
		}
		if CallsKeyword(tree.FunctionBody(fn), keywords) {
			candidates = append(candidates, fn)
		}
	}
	if len(candidates) < 2 {
		return nil, nil
	}
	var result []issue.Issue
	for _, fn := range candidates {
		created, err := ctx.Create(issue.Spec{
			Type:           issue.CodeDuplication,
			Severity:       issue.Medium,
			Node:           fn,
			Description:    fmt.Sprintf("Redundant auth middleware detected. Found %v auth middleware functions in the same file.", len(candidates)),
			Recommendation: "Consolidate auth middleware into a single, reusable function. Consider a composable middleware pattern if different auth checks are needed.",
			Effort:         issue.EffortSmall,
			Tags:           ctx.tags("middleware", "duplication"),
		})
		if err != nil {
			return result, err
		}
		result = append(result, *created)
	}
	return result, nil
}

// CallsKeyword returns true if root holds a call whose callee chain has a segment containing any lower case keyword
func CallsKeyword(root tree.Node, keywords []string) bool {
	return tree.Contains(root, func(n tree.Node) bool {
		if !tree.IsCall(n) {
			return false
		}
		for _, segment := range tree.CalleeChain(n) {
			if MatchesKeyword(segment, keywords) {
				return true
			}
		}
		return false
	})
}
