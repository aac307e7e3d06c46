package analyzer

import (
	"github.com/viant/patternlint/detector"
	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
	"github.com/viant/patternlint/variant"
)

// passThrough reports pass-through wrappers of the analyzer domain
func passThrough(ctx *detector.Context) ([]issue.Issue, error) {
	return detector.Each(ctx, tree.Functions(ctx.Root()), detector.PassThrough)
}

// missingErrorHandling reports unhandled risky operations of the analyzer domain
func missingErrorHandling(ctx *detector.Context) ([]issue.Issue, error) {
	return detector.MissingErrorHandling(ctx, ctx.Domain.Operations(ctx.Root()))
}

// record feeds candidate nodes of the file into accumulator and reports the divergence
func record(accumulator *variant.Accumulator[string], divergence *detector.Divergence, candidate tree.Predicate) step {
	return func(ctx *detector.Context) ([]issue.Issue, error) {
		return detector.Each(ctx, tree.FindWhere(ctx.Root(), candidate), func(ctx *detector.Context, node tree.Node) (*issue.Issue, error) {
			return detector.Record(ctx, accumulator, divergence, node)
		})
	}
}
