package detector

import (
	"fmt"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
)

// MissingErrorHandling reports risky operations without handling evidence, mutations are rated high
func MissingErrorHandling(ctx *Context, operations []Operation) ([]issue.Issue, error) {
	var result []issue.Issue
	for _, operation := range operations {
		if HasErrorHandling(ctx, operation.Call) {
			continue
		}
		severity := issue.Medium
		if operation.Mutation {
			severity = issue.High
		}
		created, err := ctx.Create(issue.Spec{
			Type:           issue.MissingErrorHandling,
			Severity:       severity,
			Node:           operation.Call,
			Description:    fmt.Sprintf("%v operation '%v' lacks proper error handling. This can lead to unhandled promise rejections and silent failures.", ctx.Domain.Noun, operation.Verb),
			Recommendation: "Add proper error handling using try-catch blocks or by checking the returned error property. Example: const { data, error } = await client.from(...); if (error) { /* handle error */ }",
			Effort:         issue.EffortSmall,
			Tags:           ctx.tags("error-handling", "reliability"),
		})
		if err != nil {
			return result, err
		}
		result = append(result, *created)
	}
	return result, nil
}

// MixedErrorHandling reports a file where only some of risky operations handle errors, anchored at the first unhandled one
func MixedErrorHandling(ctx *Context, operations []Operation) (*issue.Issue, error) {
	var unhandled []tree.Node
	for _, operation := range operations {
		if !HasErrorHandling(ctx, operation.Call) {
			unhandled = append(unhandled, operation.Call)
		}
	}
	if len(unhandled) == 0 || len(unhandled) == len(operations) {
		return nil, nil
	}
	percentage := len(unhandled) * 100 / len(operations)
	return ctx.Create(issue.Spec{
		Type:           issue.InconsistentPattern,
		Severity:       issue.Medium,
		Node:           unhandled[0],
		Description:    fmt.Sprintf("Inconsistent error handling in %v operations. %v%% of operations (%v/%v) lack error handling while others have it.", ctx.Domain.Name, percentage, len(unhandled), len(operations)),
		Recommendation: "Standardize error handling across all operations. Either use try-catch blocks consistently or always check the returned error property.",
		Effort:         issue.EffortMedium,
		Tags:           ctx.tags("error-handling", "inconsistency"),
	})
}

// UncheckedErrorBinding reports a declaration destructuring an error that is never tested nor thrown within the evidence window
func UncheckedErrorBinding(ctx *Context, declarator tree.Node) (*issue.Issue, error) {
	name := ErrorBindingName(declarator.Field("name"))
	if name == "" || !tree.IsCall(tree.Unwrap(declarator.Field("value"))) {
		return nil, nil
	}
	references := bindingReferences(declarator.Field("name"))
	for _, sibling := range followingStatements(declarator, ctx.Thresholds.EvidenceWindow) {
		if checks(sibling, references) || returns(sibling, references) {
			return nil, nil
		}
	}
	return ctx.Create(issue.Spec{
		Type:           issue.MissingErrorHandling,
		Severity:       issue.High,
		Node:           declarator.Parent(),
		Description:    "Error property destructured but never checked. This can lead to silent failures and unexpected behavior.",
		Recommendation: fmt.Sprintf("Add error checking after the operation: if (%v) { /* handle error */ }", name),
		Effort:         issue.EffortTrivial,
		Tags:           ctx.tags("error-return", "reliability"),
	})
}

// returns returns true if statement hands the error back to the caller
func returns(statement tree.Node, references tree.Predicate) bool {
	return tree.Contains(statement, func(n tree.Node) bool {
		return n.Kind() == tree.KindReturn && tree.Contains(n, references)
	})
}
