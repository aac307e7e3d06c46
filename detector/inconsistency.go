package detector

import (
	"fmt"
	"strings"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
	"github.com/viant/patternlint/variant"
)

// Divergence describes the issue raised when an accumulator observes its second distinct label
type Divergence struct {
	// Concern is used in the description, i.e. auth client instantiation pattern
	Concern string
	// Variants names label kind, i.e. patterns or approaches
	Variants       string
	Severity       issue.Severity
	Effort         issue.Effort
	Recommendation string
	Tags           []string
}

// Record classifies node with accumulator and reports the divergence when it introduces the second distinct label
func Record(ctx *Context, accumulator *variant.Accumulator[string], divergence *Divergence, node tree.Node) (*issue.Issue, error) {
	outcome, ok := accumulator.Record(ctx.Path(), node)
	if !ok || !outcome.Diverged {
		return nil, nil
	}
	return Inconsistency(ctx, outcome, divergence)
}

// Inconsistency creates an inconsistent pattern issue anchored at the diverging observation
func Inconsistency(ctx *Context, outcome variant.Outcome[string], divergence *Divergence) (*issue.Issue, error) {
	return ctx.Create(issue.Spec{
		Type:           issue.InconsistentPattern,
		Severity:       divergence.Severity,
		Node:           outcome.Observation.Node,
		Description:    fmt.Sprintf("Inconsistent %v detected. Found %v different %v: %v", divergence.Concern, len(outcome.Labels), divergence.Variants, strings.Join(outcome.Labels, ", ")),
		Recommendation: divergence.Recommendation,
		Effort:         divergence.Effort,
		Tags:           ctx.tags(append([]string{"inconsistency"}, divergence.Tags...)...),
	})
}
