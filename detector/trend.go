package detector

import (
	"fmt"
	"strings"

	"github.com/viant/patternlint/issue"
	"github.com/viant/patternlint/tree"
	"github.com/viant/patternlint/variant"
)

const trendExamples = 3

// TypedErrorAdoption feeds catch clauses into the run-wide trend; when typed catches passed the adoption
// ratio and every catch of this file is generic, it reports an opportunity at the first one
func TypedErrorAdoption(ctx *Context, trend *variant.Trend, handlers []Handler) (*issue.Issue, error) {
	var generic []Handler
	catches := 0
	for i := range handlers {
		handler := &handlers[i]
		if handler.Promise {
			continue
		}
		catches++
		typed := handler.IsTyped()
		trend.Observe(ctx.Path(), handler.Node, typed, handler.typeName())
		if !typed {
			generic = append(generic, *handler)
		}
	}
	if catches == 0 || len(generic) != catches || trend.Ratio() <= ctx.Thresholds.TypedErrorRatio {
		return nil, nil
	}
	description := fmt.Sprintf("Opportunity for typed error classes detected. This file has %v catch blocks using generic error types, while %.0f%% of catch blocks across the codebase use typed errors.", len(generic), trend.Ratio()*100)
	if examples := trend.Examples(trendExamples); len(examples) > 0 {
		description += " Examples: " + strings.Join(examples, ", ")
	}
	return ctx.Create(issue.Spec{
		Type:           issue.TypeSafety,
		Severity:       issue.Low,
		Node:           generic[0].Node,
		Description:    description,
		Recommendation: "Define custom error classes that extend Error for different error scenarios. This enables error handling based on error type and improves type safety. Example: class ValidationError extends Error {}",
		Effort:         issue.EffortMedium,
		Tags:           ctx.tags("type-safety", "typescript", "cross-file"),
	})
}

// LoggingAdoption feeds handlers into the run-wide logging trend; when logging handlers passed the adoption
// ratio and this file has handlers without logging, it reports the first one
func LoggingAdoption(ctx *Context, trend *variant.Trend, handlers []Handler) (*issue.Issue, error) {
	var unlogged []Handler
	for _, handler := range handlers {
		if handler.IsEmpty() {
			continue
		}
		logged := ctx.Logging.Contains(handler.Body)
		trend.Observe(ctx.Path(), handler.Node, logged, "")
		if !logged {
			unlogged = append(unlogged, handler)
		}
	}
	if len(unlogged) == 0 || trend.Ratio() <= ctx.Thresholds.LoggingRatio {
		return nil, nil
	}
	return ctx.Create(issue.Spec{
		Type:           issue.MissingErrorHandling,
		Severity:       issue.Medium,
		Node:           unlogged[0].Node,
		Description:    fmt.Sprintf("Missing error logging pattern detected. This file has %v error handlers without logging, while %.0f%% of error handlers across the codebase include logging.", len(unlogged), trend.Ratio()*100),
		Recommendation: "Add error logging to all error handlers for debugging and monitoring. Use console.error, a logging library, or an error monitoring service.",
		Effort:         issue.EffortSmall,
		Tags:           ctx.tags("logging", "observability", "cross-file"),
	})
}

// RecoveryAdoption feeds handlers into the run-wide recovery trend; when recovering handlers passed the adoption
// ratio and this file has more handlers without recovery than the limit, it reports the first one
func RecoveryAdoption(ctx *Context, trend *variant.Trend, handlers []Handler, keywords []string) (*issue.Issue, error) {
	keywords = lower(keywords)
	var unrecovered []Handler
	for _, handler := range handlers {
		recovers := handler.Recovers(keywords)
		trend.Observe(ctx.Path(), handler.Node, recovers, "")
		if !recovers {
			unrecovered = append(unrecovered, handler)
		}
	}
	if len(unrecovered) <= ctx.Thresholds.RecoveryHandlerLimit || trend.Ratio() <= ctx.Thresholds.RecoveryRatio {
		return nil, nil
	}
	return ctx.Create(issue.Spec{
		Type:           issue.MissingErrorHandling,
		Severity:       issue.Medium,
		Node:           unrecovered[0].Node,
		Description:    fmt.Sprintf("Missing error recovery pattern detected. This file has %v error handlers without recovery logic, while %.0f%% of error handlers across the codebase include recovery mechanisms.", len(unrecovered), trend.Ratio()*100),
		Recommendation: "Add error recovery logic to error handlers: retry transient failures, fall back to default values for non-critical operations, degrade gracefully or propagate the error to callers.",
		Effort:         issue.EffortMedium,
		Tags:           ctx.tags("recovery", "resilience", "cross-file"),
	})
}

// typeName returns the caught type annotation or the first class the binding is narrowed to
func (h *Handler) typeName() string {
	if declared := strings.TrimSpace(tree.DeclaredType(h.Node)); !untypedNames[declared] && declared != "" {
		return declared
	}
	if h.Param == "" {
		return ""
	}
	for _, binary := range tree.FindByKind(h.Body, tree.KindBinary) {
		if binary.Field("operator").Text() == "instanceof" && tree.Unwrap(binary.Field("left")).Text() == h.Param {
			return binary.Field("right").Text()
		}
	}
	return ""
}
